// Package donation implements the donation label lifecycle of a pull request.
//
// A pull request advertises a donation target in its description. The
// lifecycle is tracked with three mutually exclusive labels:
//
//	New     -> target detected, donation link posted
//	Funding -> a comment reported the donation as funded
//	Done    -> a comment reported the target as achieved
//
// [Decide] is a pure function from a [Snapshot] to a [Decision]. [Runner]
// performs the fetch and mutation calls around it.
package donation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default taxonomy values.
const (
	DefaultLabelPrefix    = "XRPDonation:"
	DefaultTargetMarker   = "XRPDonationTarget"
	DefaultFundedMarker   = "XRPDonation:Funded"
	DefaultAchievedMarker = "XRPDonation:Achieved"
)

// Status values reported back to the host platform.
const (
	StatusTargetNotFound = "target not found"
	StatusNewAdded       = "New added"
	StatusNoComment      = "no comment"
	StatusFundingUpdated = "Funding updated"
	StatusNoChange       = "no change"
	StatusDoneUpdated    = "Done updated"
	StatusNoAction       = "No action"
)

// Stage is a step of the donation lifecycle.
type Stage string

// Lifecycle stages.
const (
	StageNew     Stage = "New"
	StageFunding Stage = "Funding"
	StageDone    Stage = "Done"
)

// Stages lists the lifecycle stages in order.
func Stages() []Stage {
	return []Stage{StageNew, StageFunding, StageDone}
}

// Label is a repository label as returned by the GraphQL API.
type Label struct {
	ID   string
	Name string
}

// Snapshot is the pull request state fetched for one decision pass.
type Snapshot struct {
	ID       string
	BodyText string
	Labels   []Label
	// LastComment is nil when the pull request has no comments.
	LastComment *string
	// RepositoryLabels holds the repository labels matching the donation prefix.
	RepositoryLabels []Label
}

// HasLabel reports whether the pull request carries a label with the given ID.
func (s *Snapshot) HasLabel(id string) bool {
	for _, l := range s.Labels {
		if l.ID == id {
			return true
		}
	}
	return false
}

// Target is the donation goal parsed from the pull request body.
type Target struct {
	Amount decimal.Decimal
}

// String returns the canonical decimal representation of the amount.
func (t Target) String() string {
	return t.Amount.String()
}

// Taxonomy names the labels and comment markers of the lifecycle.
type Taxonomy struct {
	LabelPrefix    string `yaml:"label_prefix"`
	TargetMarker   string `yaml:"target_marker"`
	FundedMarker   string `yaml:"funded_marker"`
	AchievedMarker string `yaml:"achieved_marker"`
}

// DefaultTaxonomy returns the XRPDonation taxonomy.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{
		LabelPrefix:    DefaultLabelPrefix,
		TargetMarker:   DefaultTargetMarker,
		FundedMarker:   DefaultFundedMarker,
		AchievedMarker: DefaultAchievedMarker,
	}
}

// LabelName returns the full label name of a stage, e.g. "XRPDonation:New".
func (t Taxonomy) LabelName(stage Stage) string {
	return t.LabelPrefix + string(stage)
}

// Labels is the resolved set of donation labels of a repository.
type Labels struct {
	New     Label
	Funding Label
	Done    Label
}

// Get returns the label of a stage.
func (l Labels) Get(stage Stage) Label {
	switch stage {
	case StageNew:
		return l.New
	case StageFunding:
		return l.Funding
	case StageDone:
		return l.Done
	default:
		panic(fmt.Sprintf("unknown donation stage %q", stage))
	}
}

// Contains reports whether id is one of the donation label IDs.
func (l Labels) Contains(id string) bool {
	return id == l.New.ID || id == l.Funding.ID || id == l.Done.ID
}

// Action is the kind of change a [Decision] requires.
type Action int

// Decision actions.
const (
	// ActionNone leaves the pull request untouched.
	ActionNone Action = iota
	// ActionAddNew attaches the New label and posts the donation comment.
	ActionAddNew
	// ActionTransition replaces the current donation label.
	ActionTransition
)

// String implements fmt.Stringer.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAddNew:
		return "add-new"
	case ActionTransition:
		return "transition"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Decision is the outcome of one pass of the state machine.
type Decision struct {
	Action Action
	// Stage is the donation stage to apply. Empty for ActionNone.
	Stage Stage
	// LabelIDs is the complete label set to write. Nil for ActionNone.
	LabelIDs []string
	Status   string
}
