package github

import "errors"

// Error definitions for GitHub API operations.
var (
	errTokenRequired       = errors.New("a repository token is required (repo-token input or GITHUB_TOKEN)")
	errRequestFailed       = errors.New("GraphQL request failed")
	errMalformedResponse   = errors.New("malformed GraphQL response")
	errPullRequestNotFound = errors.New("pull request not found")
	errEmptyLabelName      = errors.New("label name cannot be empty")
	errEmptyComment        = errors.New("comment body cannot be empty")
	errEmptySubject        = errors.New("subject ID cannot be empty")

	// ErrTokenRequired is returned when no token is available.
	ErrTokenRequired = errTokenRequired
	// ErrRequestFailed wraps transport failures, non-200 responses and GraphQL errors.
	ErrRequestFailed = errRequestFailed
	// ErrMalformedResponse is returned when the response data has an unexpected shape.
	ErrMalformedResponse = errMalformedResponse
	// ErrPullRequestNotFound is returned when the repository has no such pull request.
	ErrPullRequestNotFound = errPullRequestNotFound
)
