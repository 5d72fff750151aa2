// Package fixtures provides common test data for donation-action tests.
package fixtures

import "github.com/xrpdonation/donation-action/pkg/donation"

// Label IDs used by the fixtures.
const (
	PullRequestID = "PR_kwDOfixture"
	NewLabelID    = "LA_new"
	FundingID     = "LA_funding"
	DoneID        = "LA_done"
	BugLabelID    = "LA_bug"
)

// Comments carrying the lifecycle markers.
const (
	FundedComment   = "Thanks! XRPDonation:Funded by rXYZ"
	AchievedComment = "Goal reached. XRPDonation:Achieved"
	PlainComment    = "LGTM"
)

// NewLabel, FundingLabel and DoneLabel are the default donation labels.
var (
	NewLabel     = donation.Label{ID: NewLabelID, Name: "XRPDonation:New"}
	FundingLabel = donation.Label{ID: FundingID, Name: "XRPDonation:Funding"}
	DoneLabel    = donation.Label{ID: DoneID, Name: "XRPDonation:Done"}
	BugLabel     = donation.Label{ID: BugLabelID, Name: "bug"}
)

// DonationLabels returns the resolved default donation labels.
func DonationLabels() donation.Labels {
	return donation.Labels{New: NewLabel, Funding: FundingLabel, Done: DoneLabel}
}

// RepositoryLabels returns the repository labels matching the default prefix.
func RepositoryLabels() []donation.Label {
	return []donation.Label{NewLabel, FundingLabel, DoneLabel}
}

// Snapshot returns a pull request with a target of 50, the given labels and
// last comment. An empty comment means the pull request has no comments.
func Snapshot(comment string, labels ...donation.Label) *donation.Snapshot {
	snap := &donation.Snapshot{
		ID:               PullRequestID,
		BodyText:         "Implements the feature.\nXRPDonationTarget: 50",
		Labels:           labels,
		RepositoryLabels: RepositoryLabels(),
	}
	if comment != "" {
		snap.LastComment = &comment
	}
	return snap
}
