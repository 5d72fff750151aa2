package security

import (
	"regexp"
	"strings"
)

var (
	// classic (ghp_, gho_, ghu_, ghs_, ghr_) and fine-grained tokens
	githubTokenRegex = regexp.MustCompile(`(?:gh[pousr]_[A-Za-z0-9]{20,}|github_pat_[A-Za-z0-9_]{22,})`)
	authHeaderRegex  = regexp.MustCompile(`(?i)authorization:\s*(?:bearer|token|basic)\s+[A-Za-z0-9+/=_.-]{10,}`)
)

// SanitizeString redacts GitHub tokens and authorization headers from s.
func SanitizeString(s string) string {
	s = authHeaderRegex.ReplaceAllString(s, "Authorization: [redacted]")
	return githubTokenRegex.ReplaceAllString(s, "[github-token-redacted]")
}

// sanitizedError carries a redacted message while keeping the original chain
// reachable through errors.Is.
type sanitizedError struct {
	msg string
	err error
}

func (e *sanitizedError) Error() string { return e.msg }
func (e *sanitizedError) Unwrap() error { return e.err }

// SanitizeError returns err with [SanitizeString] applied to its message.
// Returns nil if err is nil.
func SanitizeError(err error) error {
	if err == nil {
		return nil
	}
	return &sanitizedError{msg: SanitizeString(err.Error()), err: err}
}

// SanitizeErrorWithToken redacts the given token value in addition to the
// patterns handled by [SanitizeString].
func SanitizeErrorWithToken(err error, token SecureToken) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if !token.IsEmpty() {
		msg = strings.ReplaceAll(msg, token.Value(), token.String())
	}
	return &sanitizedError{msg: SanitizeString(msg), err: err}
}
