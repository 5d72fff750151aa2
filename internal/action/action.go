// Package action talks to the GitHub Actions runner: it reads the step
// inputs, publishes the status output and reports failures.
package action

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sethvargo/go-githubactions"
)

// Input names declared in action.yml.
const (
	InputAddress   = "address"
	InputNetwork   = "network"
	InputPRNumber  = "pr-number"
	InputRepoToken = "repo-token"

	// OutputStatus is the name of the single step output.
	OutputStatus = "status"
)

var errInvalidPRNumber = errors.New("invalid pr-number input")

// ErrInvalidPRNumber is returned when the pr-number input is not a positive integer.
var ErrInvalidPRNumber = errInvalidPRNumber

// Inputs holds the step inputs. Empty strings mean the input was not set.
type Inputs struct {
	Address   string
	Network   string
	PRNumber  int
	RepoToken string
}

// Runner wraps the actions toolkit.
type Runner struct {
	gha *githubactions.Action
}

// New creates a runner bound to the process environment and stdout.
// Options are passed to the toolkit, which lets tests swap both.
func New(opts ...githubactions.Option) *Runner {
	return &Runner{gha: githubactions.New(opts...)}
}

// Inputs reads the step inputs.
func (r *Runner) Inputs() (Inputs, error) {
	in := Inputs{
		Address:   r.gha.GetInput(InputAddress),
		Network:   r.gha.GetInput(InputNetwork),
		RepoToken: r.gha.GetInput(InputRepoToken),
	}

	raw := strings.TrimSpace(r.gha.GetInput(InputPRNumber))
	if raw == "" {
		return in, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return in, fmt.Errorf("%w: %q", errInvalidPRNumber, raw)
	}
	in.PRNumber = n

	return in, nil
}

// SetStatus publishes the status output.
func (r *Runner) SetStatus(status string) {
	r.gha.SetOutput(OutputStatus, status)
}

// Mask registers a secret so the runner hides it in the logs.
func (r *Runner) Mask(secret string) {
	if secret != "" {
		r.gha.AddMask(secret)
	}
}

// Fail reports err as the step failure message. The caller is responsible
// for the non-zero exit.
func (r *Runner) Fail(err error) {
	r.gha.Errorf("%s", err.Error())
}
