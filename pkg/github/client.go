// Package github provides the GitHub API adapters of donation-action: a
// GraphQL client for the pull request query and mutations, and a REST client
// for repository label management.
package github

import (
	"context"
	"net/http"
	"time"

	"github.com/xrpdonation/donation-action/internal/security"
	"golang.org/x/oauth2"
)

// NewHTTPClient returns an HTTP client sending token as a bearer credential.
// A zero timeout leaves the client without a deadline.
func NewHTTPClient(ctx context.Context, token security.SecureToken, timeout time.Duration) (*http.Client, error) {
	if token.IsEmpty() {
		return nil, errTokenRequired
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token.Value()},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = timeout

	return tc, nil
}
