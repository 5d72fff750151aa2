// Package git resolves the GitHub repository of a local checkout.
package git

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
)

// DefaultRemote is the remote read when none is specified.
const DefaultRemote = "origin"

const slugParts = 2

var (
	errNoRemoteURL      = errors.New("remote has no URL")
	errInvalidRemoteURL = errors.New("cannot extract owner/name from remote URL")

	// ErrInvalidRemoteURL is returned when a remote URL has no owner/name path.
	ErrInvalidRemoteURL = errInvalidRemoteURL
)

// Repository is a local git checkout.
type Repository struct {
	repo *git.Repository
}

// OpenRepository opens the repository containing path, walking up parent
// directories like git does.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	return &Repository{repo: repo}, nil
}

// RemoteURL returns the first URL of the named remote.
func (r *Repository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s remote: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: %s", errNoRemoteURL, name)
	}
	return urls[0], nil
}

// Slug returns the "owner/name" slug of the named remote.
func (r *Repository) Slug(remote string) (string, error) {
	url, err := r.RemoteURL(remote)
	if err != nil {
		return "", err
	}
	return ParseSlug(url)
}

// ParseSlug extracts "owner/name" from a remote URL. Supported formats:
//   - https://github.com/owner/name(.git)
//   - git@github.com:owner/name(.git)
//   - ssh://git@github.com/owner/name(.git)
func ParseSlug(url string) (string, error) {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(url), "/"), ".git")

	var path string
	switch {
	case strings.Contains(trimmed, "://"):
		rest := trimmed[strings.Index(trimmed, "://")+len("://"):]
		idx := strings.Index(rest, "/")
		if idx < 0 {
			return "", fmt.Errorf("%w: %q", errInvalidRemoteURL, url)
		}
		path = rest[idx+1:]
	case strings.Contains(trimmed, ":"):
		// scp-like syntax: user@host:owner/name
		path = trimmed[strings.LastIndex(trimmed, ":")+1:]
	default:
		return "", fmt.Errorf("%w: %q", errInvalidRemoteURL, url)
	}

	parts := strings.Split(path, "/")
	if len(parts) < slugParts {
		return "", fmt.Errorf("%w: %q", errInvalidRemoteURL, url)
	}
	owner, name := parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || name == "" {
		return "", fmt.Errorf("%w: %q", errInvalidRemoteURL, url)
	}

	return owner + "/" + name, nil
}
