package donation

import (
	"context"
	"fmt"

	"github.com/sgaunet/bullets"
	"github.com/xrpdonation/donation-action/internal/logger"
)

// API is the remote side of a run: one query and two mutations.
type API interface {
	// FetchPullRequest returns the pull request snapshot, including the
	// repository labels whose names match labelQuery.
	FetchPullRequest(ctx context.Context, owner, repo string, number int, labelQuery string) (*Snapshot, error)

	// ReplaceLabels sets the pull request labels to exactly labelIDs.
	ReplaceLabels(ctx context.Context, pullRequestID string, labelIDs []string) error

	// AddComment posts body as a comment on the subject.
	AddComment(ctx context.Context, subjectID, body string) error
}

// Request describes one invocation.
type Request struct {
	Owner   string
	Repo    string
	Number  int
	Address string
	Network string
	// DryRun decides and reports without mutating the pull request.
	DryRun bool
}

// Validate checks that the request identifies a pull request and a wallet.
func (r Request) Validate() error {
	switch {
	case r.Owner == "":
		return errOwnerRequired
	case r.Repo == "":
		return errRepoRequired
	case r.Number <= 0:
		return errInvalidPRNumber
	case r.Address == "":
		return errAddressRequired
	case r.Network == "":
		return errNetworkRequired
	}
	return nil
}

// Result is the outcome of a run.
type Result struct {
	Status   string
	Decision Decision
	// Target is nil when the body carries no target.
	Target *Target
	// DonationURL is set when a donation comment was rendered.
	DonationURL string
	Mutated     bool
}

// Runner wires the state machine to the remote API.
type Runner struct {
	api             API
	taxonomy        Taxonomy
	siteURL         string
	commentTemplate string
	log             *bullets.Logger
}

// NewRunner creates a runner posting donation links under siteURL.
func NewRunner(api API, taxonomy Taxonomy, siteURL string) *Runner {
	return &Runner{
		api:      api,
		taxonomy: taxonomy,
		siteURL:  siteURL,
		log:      logger.NoLogger(),
	}
}

// SetLogger sets the logger for the runner.
func (r *Runner) SetLogger(log *bullets.Logger) {
	r.log = log
}

// SetCommentTemplate overrides the donation comment template.
func (r *Runner) SetCommentTemplate(tmpl string) {
	r.commentTemplate = tmpl
}

// Run performs a single pass: fetch, validate labels, decide, mutate.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	r.log.Debug(fmt.Sprintf("Fetching pull request %s/%s#%d", req.Owner, req.Repo, req.Number))
	snap, err := r.api.FetchPullRequest(ctx, req.Owner, req.Repo, req.Number, r.taxonomy.LabelPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request: %w", err)
	}
	if snap == nil {
		return nil, errSnapshotRequired
	}

	labels, err := ResolveLabels(snap.RepositoryLabels, r.taxonomy)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	if target, ok := ParseTarget(snap.BodyText, r.taxonomy); ok {
		result.Target = &target
		r.log.Debug("Donation target found: " + target.String())
	}

	decision := Decide(snap, result.Target, labels, r.taxonomy)
	result.Decision = decision
	result.Status = decision.Status
	r.log.Debug(fmt.Sprintf("Decision: action=%s stage=%s status=%q", decision.Action, decision.Stage, decision.Status))

	if decision.Action == ActionNone {
		return result, nil
	}

	var comment string
	if decision.Action == ActionAddNew {
		link := LinkParams{
			Owner:   req.Owner,
			Repo:    req.Repo,
			Number:  req.Number,
			Address: req.Address,
			Network: req.Network,
			Target:  *result.Target,
		}
		result.DonationURL, err = DonationURL(r.siteURL, link)
		if err != nil {
			return nil, err
		}
		comment, err = CommentBody(r.commentTemplate, result.DonationURL, link)
		if err != nil {
			return nil, err
		}
	}

	if req.DryRun {
		r.log.Info("Dry run, skipping mutations")
		return result, nil
	}

	r.log.Debug(fmt.Sprintf("Setting %d labels on %s", len(decision.LabelIDs), snap.ID))
	if err := r.api.ReplaceLabels(ctx, snap.ID, decision.LabelIDs); err != nil {
		return nil, fmt.Errorf("failed to update labels: %w", err)
	}
	result.Mutated = true

	if comment != "" {
		r.log.Debug("Posting donation comment")
		if err := r.api.AddComment(ctx, snap.ID, comment); err != nil {
			return nil, fmt.Errorf("failed to add comment: %w", err)
		}
	}

	return result, nil
}
