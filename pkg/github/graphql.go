package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/sgaunet/bullets"
	"github.com/shurcooL/githubv4"
	"github.com/xrpdonation/donation-action/internal/logger"
	"github.com/xrpdonation/donation-action/pkg/donation"
)

// DefaultGraphQLEndpoint is the public GitHub GraphQL endpoint.
const DefaultGraphQLEndpoint = "https://api.github.com/graphql"

// GraphQLClient provides access to GitHub's GraphQL API.
type GraphQLClient struct {
	client *githubv4.Client
	log    *bullets.Logger
}

// Ensure GraphQLClient implements donation.API at compile time.
var _ donation.API = (*GraphQLClient)(nil)

// NewGraphQLClient creates a GraphQL client. The HTTP client is expected to
// authenticate requests, see NewHTTPClient. An empty endpoint selects
// DefaultGraphQLEndpoint.
func NewGraphQLClient(httpClient *http.Client, endpoint string) *GraphQLClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if endpoint == "" {
		endpoint = DefaultGraphQLEndpoint
	}
	return &GraphQLClient{
		client: githubv4.NewEnterpriseClient(endpoint, httpClient),
		log:    logger.NoLogger(),
	}
}

// SetLogger sets the logger for the GraphQL client.
func (c *GraphQLClient) SetLogger(log *bullets.Logger) {
	c.log = log
	c.log.Debug("GraphQL client logger configured")
}

type labelConnection struct {
	Nodes []struct {
		ID   string
		Name string
	}
}

func (lc labelConnection) labels() []donation.Label {
	labels := make([]donation.Label, len(lc.Nodes))
	for i, n := range lc.Nodes {
		labels[i] = donation.Label{ID: n.ID, Name: n.Name}
	}
	return labels
}

// pullRequestQuery is the snapshot query. Nullable objects are pointers so
// a missing repository or pull request can be told apart from an empty one.
type pullRequestQuery struct {
	Repository *struct {
		PullRequest *struct {
			ID       string
			BodyText string
			Labels   labelConnection `graphql:"labels(first: 100)"`
			Comments struct {
				Nodes []struct {
					Body string
				}
			} `graphql:"comments(last: 1)"`
		} `graphql:"pullRequest(number: $number)"`
		Labels labelConnection `graphql:"labels(first: 100, query: $labelQuery)"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// FetchPullRequest returns the snapshot of a pull request together with the
// repository labels matching labelQuery.
func (c *GraphQLClient) FetchPullRequest(
	ctx context.Context, owner, repo string, number int, labelQuery string,
) (*donation.Snapshot, error) {
	c.log.Debug(fmt.Sprintf("Querying pull request %s/%s#%d", owner, repo, number))

	var q pullRequestQuery
	err := c.client.Query(ctx, &q, map[string]any{
		"owner":      githubv4.String(owner),
		"name":       githubv4.String(repo),
		"number":     githubv4.Int(number), // #nosec G115 - pull request numbers fit in int32
		"labelQuery": githubv4.String(labelQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errRequestFailed, err)
	}

	if q.Repository == nil {
		return nil, fmt.Errorf("%w: repository %s/%s missing", errMalformedResponse, owner, repo)
	}
	pr := q.Repository.PullRequest
	if pr == nil {
		return nil, fmt.Errorf("%w: %s/%s#%d", errPullRequestNotFound, owner, repo, number)
	}
	if pr.ID == "" {
		return nil, fmt.Errorf("%w: pull request id missing", errMalformedResponse)
	}

	snap := &donation.Snapshot{
		ID:               pr.ID,
		BodyText:         pr.BodyText,
		Labels:           pr.Labels.labels(),
		RepositoryLabels: q.Repository.Labels.labels(),
	}
	if n := len(pr.Comments.Nodes); n > 0 {
		last := pr.Comments.Nodes[n-1].Body
		snap.LastComment = &last
	}

	c.log.Debug(fmt.Sprintf("Pull request fetched, labels: %d, repository donation labels: %d",
		len(snap.Labels), len(snap.RepositoryLabels)))
	return snap, nil
}

// ReplaceLabels sets the labels of a pull request to exactly labelIDs.
// An empty list clears every label.
func (c *GraphQLClient) ReplaceLabels(ctx context.Context, pullRequestID string, labelIDs []string) error {
	if pullRequestID == "" {
		return errEmptySubject
	}

	ids := make([]githubv4.ID, len(labelIDs))
	for i, id := range labelIDs {
		ids[i] = githubv4.ID(id)
	}

	var m struct {
		UpdatePullRequest struct {
			PullRequest struct {
				ID string
			}
		} `graphql:"updatePullRequest(input: $input)"`
	}
	input := githubv4.UpdatePullRequestInput{
		PullRequestID: githubv4.ID(pullRequestID),
		LabelIDs:      &ids,
	}

	c.log.Debug(fmt.Sprintf("Replacing labels on %s: %v", pullRequestID, labelIDs))
	if err := c.client.Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("failed to update pull request labels: %w: %w", errRequestFailed, err)
	}
	return nil
}

// AddComment posts a comment on an issue or pull request.
func (c *GraphQLClient) AddComment(ctx context.Context, subjectID, body string) error {
	if subjectID == "" {
		return errEmptySubject
	}
	if strings.TrimSpace(body) == "" {
		return errEmptyComment
	}

	var m struct {
		AddComment struct {
			ClientMutationID *string
		} `graphql:"addComment(input: $input)"`
	}
	input := githubv4.AddCommentInput{
		SubjectID: githubv4.ID(subjectID),
		Body:      githubv4.String(body),
	}

	c.log.Debug("Adding comment on " + subjectID)
	if err := c.client.Mutate(ctx, &m, input, nil); err != nil {
		return fmt.Errorf("failed to add comment: %w: %w", errRequestFailed, err)
	}
	return nil
}
