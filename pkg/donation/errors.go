package donation

import "errors"

// Error definitions for donation workflow operations.
var (
	errLabelNotSet      = errors.New("donation label missing")
	errOwnerRequired    = errors.New("repository owner is required")
	errRepoRequired     = errors.New("repository name is required")
	errInvalidPRNumber  = errors.New("pull request number must be positive")
	errAddressRequired  = errors.New("donation address is required")
	errNetworkRequired  = errors.New("donation network is required")
	errSiteURLInvalid   = errors.New("invalid donation site URL")
	errSnapshotRequired = errors.New("pull request snapshot is nil")

	// ErrLabelNotSet is returned when one of the donation labels is not defined in the repository.
	ErrLabelNotSet = errLabelNotSet
	// ErrSiteURLInvalid is returned when the donation site base URL cannot be parsed.
	ErrSiteURLInvalid = errSiteURLInvalid
)
