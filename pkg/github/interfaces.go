package github

import "context"

// LabelManager lists and creates repository labels.
// The labels command depends on it so it can run against a mock.
type LabelManager interface {
	// ListLabelNames returns the names of all repository labels.
	ListLabelNames(ctx context.Context, owner, repo string) ([]string, error)

	// CreateLabel creates a repository label.
	CreateLabel(ctx context.Context, owner, repo string, label NewLabel) error
}
