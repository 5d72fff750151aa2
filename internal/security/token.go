// Package security keeps repository tokens out of logs and error messages.
package security

import "fmt"

const (
	minTokenLengthForPartialMask = 8
	maskShowChars                = 4
	maskEmpty                    = "[empty]"
	maskRedacted                 = "[redacted]"
)

// SecureToken wraps a repository token. Formatting it with any verb prints a
// masked value.
//
//	token := NewSecureToken("ghp_secret123456")
//	fmt.Printf("%v", token) // [token:****3456]
type SecureToken struct {
	value string
}

// NewSecureToken creates a new SecureToken from a string value.
func NewSecureToken(token string) SecureToken {
	return SecureToken{value: token}
}

// String implements fmt.Stringer and returns a masked representation.
func (t SecureToken) String() string {
	if t.value == "" {
		return maskEmpty
	}
	if len(t.value) < minTokenLengthForPartialMask {
		return maskRedacted
	}
	return fmt.Sprintf("[token:****%s]", t.value[len(t.value)-maskShowChars:])
}

// GoString implements fmt.GoStringer so %#v is masked as well.
func (t SecureToken) GoString() string {
	return t.String()
}

// Value returns the raw token. Only pass it to an authenticating transport.
func (t SecureToken) Value() string {
	return t.value
}

// IsEmpty returns true if the token is empty.
func (t SecureToken) IsEmpty() bool {
	return t.value == ""
}
