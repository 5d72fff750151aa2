// Package ui holds the interactive prompts of the CLI.
package ui

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// Prompter asks the operator for confirmation.
type Prompter interface {
	Confirm(message string) (bool, error)
}

// SurveyPrompter prompts on the terminal.
type SurveyPrompter struct{}

// NewSurveyPrompter creates a terminal prompter.
func NewSurveyPrompter() *SurveyPrompter {
	return &SurveyPrompter{}
}

// Confirm asks a yes/no question, defaulting to no.
func (p *SurveyPrompter) Confirm(message string) (bool, error) {
	answer := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}
	return answer, nil
}

// AutoConfirm answers every question with yes. Used for --yes and CI runs.
type AutoConfirm struct{}

// Confirm implements Prompter.
func (AutoConfirm) Confirm(string) (bool, error) {
	return true, nil
}

// CreateLabelsMessage formats the confirmation question for missing labels.
func CreateLabelsMessage(repo string, names []string) string {
	return fmt.Sprintf("Create %d missing label(s) in %s: %s?", len(names), repo, strings.Join(names, ", "))
}
