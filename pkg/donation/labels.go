package donation

import "fmt"

// ResolveLabels picks the New, Funding and Done labels out of the repository
// labels by exact name. It fails on the first missing stage, checked in
// lifecycle order.
func ResolveLabels(repoLabels []Label, tax Taxonomy) (Labels, error) {
	byName := make(map[string]Label, len(repoLabels))
	for _, l := range repoLabels {
		byName[l.Name] = l
	}

	var resolved Labels
	for _, stage := range Stages() {
		name := tax.LabelName(stage)
		l, ok := byName[name]
		if !ok {
			return Labels{}, fmt.Errorf("%w: %s label not set!", errLabelNotSet, name)
		}
		switch stage {
		case StageNew:
			resolved.New = l
		case StageFunding:
			resolved.Funding = l
		case StageDone:
			resolved.Done = l
		}
	}

	return resolved, nil
}

// MissingLabelNames returns the names of the donation labels absent from
// existing, in lifecycle order.
func MissingLabelNames(existing []string, tax Taxonomy) []string {
	have := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		have[name] = struct{}{}
	}

	var missing []string
	for _, stage := range Stages() {
		name := tax.LabelName(stage)
		if _, ok := have[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
