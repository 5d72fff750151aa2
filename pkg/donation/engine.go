package donation

import "strings"

// Decide runs the donation state machine over a snapshot.
//
// target is nil when the pull request body carries no target marker.
// The funded check precedes the achieved check, so a comment carrying both
// markers resolves as funded.
func Decide(snap *Snapshot, target *Target, labels Labels, tax Taxonomy) Decision {
	if target == nil {
		return Decision{Action: ActionNone, Status: StatusTargetNotFound}
	}

	if !hasDonationLabel(snap, labels) {
		return Decision{
			Action:   ActionAddNew,
			Stage:    StageNew,
			LabelIDs: replaceDonationLabel(snap.Labels, labels, labels.New),
			Status:   StatusNewAdded,
		}
	}

	if snap.LastComment == nil {
		return Decision{Action: ActionNone, Status: StatusNoComment}
	}
	comment := *snap.LastComment

	if tax.FundedMarker != "" && strings.Contains(comment, tax.FundedMarker) {
		if snap.HasLabel(labels.New.ID) {
			return Decision{
				Action:   ActionTransition,
				Stage:    StageFunding,
				LabelIDs: replaceDonationLabel(snap.Labels, labels, labels.Funding),
				Status:   StatusFundingUpdated,
			}
		}
		return Decision{Action: ActionNone, Status: StatusNoChange}
	}

	if tax.AchievedMarker != "" && strings.Contains(comment, tax.AchievedMarker) &&
		!snap.HasLabel(labels.Done.ID) {
		return Decision{
			Action:   ActionTransition,
			Stage:    StageDone,
			LabelIDs: replaceDonationLabel(snap.Labels, labels, labels.Done),
			Status:   StatusDoneUpdated,
		}
	}

	return Decision{Action: ActionNone, Status: StatusNoAction}
}

func hasDonationLabel(snap *Snapshot, labels Labels) bool {
	for _, l := range snap.Labels {
		if labels.Contains(l.ID) {
			return true
		}
	}
	return false
}

// replaceDonationLabel returns the IDs of current minus every donation label,
// followed by chosen. Non-donation labels keep their order.
func replaceDonationLabel(current []Label, labels Labels, chosen Label) []string {
	ids := make([]string, 0, len(current)+1)
	for _, l := range current {
		if labels.Contains(l.ID) {
			continue
		}
		ids = append(ids, l.ID)
	}
	return append(ids, chosen.ID)
}
