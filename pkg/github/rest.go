package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v69/github"
	"github.com/sgaunet/bullets"
	"github.com/xrpdonation/donation-action/internal/logger"
)

const (
	// DefaultAPIURL is the public GitHub REST endpoint.
	DefaultAPIURL = "https://api.github.com"

	maxLabelsPerPage = 100
)

// NewLabel describes a label to create.
type NewLabel struct {
	Name        string
	Color       string
	Description string
}

// RESTClient wraps go-github for repository label management.
type RESTClient struct {
	client *github.Client
	log    *bullets.Logger
}

// Ensure RESTClient implements LabelManager at compile time.
var _ LabelManager = (*RESTClient)(nil)

// NewRESTClient creates a REST client. apiURL selects a GitHub Enterprise
// server when it differs from DefaultAPIURL.
func NewRESTClient(httpClient *http.Client, apiURL string) (*RESTClient, error) {
	client := github.NewClient(httpClient)

	apiURL = strings.TrimSuffix(apiURL, "/")
	if apiURL != "" && apiURL != DefaultAPIURL {
		var err error
		client, err = client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure API URL: %w", err)
		}
	}

	return &RESTClient{
		client: client,
		log:    logger.NoLogger(),
	}, nil
}

// SetLogger sets the logger for the REST client.
func (c *RESTClient) SetLogger(log *bullets.Logger) {
	c.log = log
}

// ListLabelNames returns the names of all repository labels.
func (c *RESTClient) ListLabelNames(ctx context.Context, owner, repo string) ([]string, error) {
	c.log.Debug(fmt.Sprintf("Listing labels of %s/%s", owner, repo))

	var names []string
	opts := &github.ListOptions{PerPage: maxLabelsPerPage}
	for {
		labels, resp, err := c.client.Issues.ListLabels(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list labels: %w", err)
		}
		for _, l := range labels {
			names = append(names, l.GetName())
		}
		if resp == nil || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.log.Debug(fmt.Sprintf("Labels retrieved, count: %d", len(names)))
	return names, nil
}

// CreateLabel creates a repository label.
func (c *RESTClient) CreateLabel(ctx context.Context, owner, repo string, label NewLabel) error {
	if strings.TrimSpace(label.Name) == "" {
		return errEmptyLabelName
	}

	c.log.Debug("Creating label " + label.Name)
	_, _, err := c.client.Issues.CreateLabel(ctx, owner, repo, &github.Label{
		Name:        github.Ptr(label.Name),
		Color:       github.Ptr(strings.TrimPrefix(label.Color, "#")),
		Description: github.Ptr(label.Description),
	})
	if err != nil {
		return fmt.Errorf("failed to create label %q: %w", label.Name, err)
	}
	return nil
}
