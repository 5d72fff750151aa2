package donation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xrpdonation/donation-action/pkg/donation"
	"github.com/xrpdonation/donation-action/testing/fixtures"
	"github.com/xrpdonation/donation-action/testing/mocks"
)

const siteURL = "https://xrpdonation.app/donate"

func request() donation.Request {
	return donation.Request{
		Owner:   "octo",
		Repo:    "project",
		Number:  7,
		Address: "rDonationWallet",
		Network: "mainnet",
	}
}

func TestRunner_AddsNewLabelAndComment(t *testing.T) {
	api := mocks.NewDonationAPI(fixtures.Snapshot("", fixtures.BugLabel))
	runner := donation.NewRunner(api, donation.DefaultTaxonomy(), siteURL)

	result, err := runner.Run(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, donation.StatusNewAdded, result.Status)
	assert.True(t, result.Mutated)
	require.NotNil(t, result.Target)
	assert.Equal(t, "50", result.Target.String())
	assert.Contains(t, result.DonationURL, "repo=octo%2Fproject")

	fetch := api.GetLastCall("FetchPullRequest")
	require.NotNil(t, fetch)
	assert.Equal(t, "octo", fetch.Args["owner"])
	assert.Equal(t, "project", fetch.Args["repo"])
	assert.Equal(t, 7, fetch.Args["number"])
	assert.Equal(t, donation.DefaultLabelPrefix, fetch.Args["labelQuery"])

	assert.Equal(t, []string{"FetchPullRequest", "ReplaceLabels", "AddComment"}, api.Calls())

	replace := api.GetLastCall("ReplaceLabels")
	assert.Equal(t, fixtures.PullRequestID, replace.Args["pullRequestID"])
	assert.Equal(t, []string{fixtures.BugLabelID, fixtures.NewLabelID}, replace.Args["labelIDs"])

	comment := api.GetLastCall("AddComment")
	assert.Equal(t, fixtures.PullRequestID, comment.Args["subjectID"])
	assert.Contains(t, comment.Args["body"], "Target: 50 XRP")
}

func TestRunner_Transitions(t *testing.T) {
	tests := []struct {
		name       string
		snap       *donation.Snapshot
		wantStatus string
		wantIDs    []string
	}{
		{
			name:       "funded",
			snap:       fixtures.Snapshot(fixtures.FundedComment, fixtures.NewLabel),
			wantStatus: donation.StatusFundingUpdated,
			wantIDs:    []string{fixtures.FundingID},
		},
		{
			name:       "achieved",
			snap:       fixtures.Snapshot(fixtures.AchievedComment, fixtures.FundingLabel),
			wantStatus: donation.StatusDoneUpdated,
			wantIDs:    []string{fixtures.DoneID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewDonationAPI(tt.snap)
			runner := donation.NewRunner(api, donation.DefaultTaxonomy(), siteURL)

			result, err := runner.Run(context.Background(), request())
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.Equal(t, 1, api.GetCallCount("ReplaceLabels"))
			assert.Equal(t, tt.wantIDs, api.GetLastCall("ReplaceLabels").Args["labelIDs"])
			assert.Equal(t, 0, api.GetCallCount("AddComment"))
			assert.Empty(t, result.DonationURL)
		})
	}
}

func TestRunner_NoMutation(t *testing.T) {
	noTarget := fixtures.Snapshot(fixtures.FundedComment, fixtures.NewLabel)
	noTarget.BodyText = "No donation here"

	tests := []struct {
		name       string
		snap       *donation.Snapshot
		wantStatus string
	}{
		{"already funding", fixtures.Snapshot(fixtures.FundedComment, fixtures.FundingLabel), donation.StatusNoChange},
		{"no comment", fixtures.Snapshot("", fixtures.NewLabel), donation.StatusNoComment},
		{"no target", noTarget, donation.StatusTargetNotFound},
		{"plain comment", fixtures.Snapshot(fixtures.PlainComment, fixtures.DoneLabel), donation.StatusNoAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewDonationAPI(tt.snap)
			runner := donation.NewRunner(api, donation.DefaultTaxonomy(), siteURL)

			result, err := runner.Run(context.Background(), request())
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, result.Status)
			assert.False(t, result.Mutated)
			assert.Equal(t, []string{"FetchPullRequest"}, api.Calls())
		})
	}
}

func TestRunner_DryRun(t *testing.T) {
	api := mocks.NewDonationAPI(fixtures.Snapshot(""))
	runner := donation.NewRunner(api, donation.DefaultTaxonomy(), siteURL)

	req := request()
	req.DryRun = true
	result, err := runner.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, donation.StatusNewAdded, result.Status)
	assert.False(t, result.Mutated)
	assert.NotEmpty(t, result.DonationURL)
	assert.Equal(t, []string{"FetchPullRequest"}, api.Calls())
}

func TestRunner_MissingLabelFailsBeforeMutation(t *testing.T) {
	snap := fixtures.Snapshot("", fixtures.BugLabel)
	snap.RepositoryLabels = []donation.Label{fixtures.NewLabel, fixtures.DoneLabel}

	api := mocks.NewDonationAPI(snap)
	runner := donation.NewRunner(api, donation.DefaultTaxonomy(), siteURL)

	_, err := runner.Run(context.Background(), request())
	require.Error(t, err)
	assert.ErrorIs(t, err, donation.ErrLabelNotSet)
	assert.Contains(t, err.Error(), "XRPDonation:Funding label not set!")
	assert.Equal(t, 0, api.GetCallCount("ReplaceLabels"))
	assert.Equal(t, 0, api.GetCallCount("AddComment"))
}

func TestRunner_Errors(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("fetch", func(t *testing.T) {
		api := mocks.NewDonationAPI(nil)
		api.FetchPullRequestError = errBoom
		runner := donation.NewRunner(api, donation.DefaultTaxonomy(), siteURL)

		_, err := runner.Run(context.Background(), request())
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 0, api.GetCallCount("ReplaceLabels"))
	})

	t.Run("nil snapshot", func(t *testing.T) {
		api := mocks.NewDonationAPI(nil)
		runner := donation.NewRunner(api, donation.DefaultTaxonomy(), siteURL)

		_, err := runner.Run(context.Background(), request())
		assert.Error(t, err)
	})

	t.Run("replace labels", func(t *testing.T) {
		api := mocks.NewDonationAPI(fixtures.Snapshot(""))
		api.ReplaceLabelsError = errBoom
		runner := donation.NewRunner(api, donation.DefaultTaxonomy(), siteURL)

		_, err := runner.Run(context.Background(), request())
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 0, api.GetCallCount("AddComment"))
	})

	t.Run("add comment", func(t *testing.T) {
		api := mocks.NewDonationAPI(fixtures.Snapshot(""))
		api.AddCommentError = errBoom
		runner := donation.NewRunner(api, donation.DefaultTaxonomy(), siteURL)

		_, err := runner.Run(context.Background(), request())
		assert.ErrorIs(t, err, errBoom)
		assert.Equal(t, 1, api.GetCallCount("ReplaceLabels"))
	})

	t.Run("invalid site url", func(t *testing.T) {
		api := mocks.NewDonationAPI(fixtures.Snapshot(""))
		runner := donation.NewRunner(api, donation.DefaultTaxonomy(), "not a url")

		_, err := runner.Run(context.Background(), request())
		assert.ErrorIs(t, err, donation.ErrSiteURLInvalid)
		assert.Equal(t, 0, api.GetCallCount("ReplaceLabels"))
	})
}

func TestRunner_InvalidRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*donation.Request)
	}{
		{"owner", func(r *donation.Request) { r.Owner = "" }},
		{"repo", func(r *donation.Request) { r.Repo = "" }},
		{"number", func(r *donation.Request) { r.Number = 0 }},
		{"address", func(r *donation.Request) { r.Address = "" }},
		{"network", func(r *donation.Request) { r.Network = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := mocks.NewDonationAPI(fixtures.Snapshot(""))
			runner := donation.NewRunner(api, donation.DefaultTaxonomy(), siteURL)

			req := request()
			tt.mutate(&req)
			_, err := runner.Run(context.Background(), req)
			require.Error(t, err)
			assert.Empty(t, api.Calls())
		})
	}
}

func TestRunner_CustomTaxonomy(t *testing.T) {
	tax := donation.Taxonomy{
		LabelPrefix:    "Bounty:",
		TargetMarker:   "BountyTarget",
		FundedMarker:   "Bounty:Funded",
		AchievedMarker: "Bounty:Achieved",
	}
	newLabel := donation.Label{ID: "LA_bn", Name: "Bounty:New"}
	snap := &donation.Snapshot{
		ID:       fixtures.PullRequestID,
		BodyText: "BountyTarget: 10",
		RepositoryLabels: []donation.Label{
			newLabel,
			{ID: "LA_bf", Name: "Bounty:Funding"},
			{ID: "LA_bd", Name: "Bounty:Done"},
		},
	}

	api := mocks.NewDonationAPI(snap)
	runner := donation.NewRunner(api, tax, siteURL)
	runner.SetCommentTemplate("Donate {{ .Target }} at {{ .URL }}")

	result, err := runner.Run(context.Background(), request())
	require.NoError(t, err)

	assert.Equal(t, donation.StatusNewAdded, result.Status)
	assert.Equal(t, "Bounty:", api.GetLastCall("FetchPullRequest").Args["labelQuery"])
	assert.Equal(t, []string{newLabel.ID}, api.GetLastCall("ReplaceLabels").Args["labelIDs"])
	assert.Contains(t, api.GetLastCall("AddComment").Args["body"], "Donate 10 at https://xrpdonation.app/donate?")
}
