// Package mocks provides call-tracking test doubles for donation-action interfaces.
package mocks

import (
	"context"
	"sync"

	"github.com/xrpdonation/donation-action/pkg/donation"
	ghpkg "github.com/xrpdonation/donation-action/pkg/github"
)

// MethodCall represents a tracked method call with its parameters.
type MethodCall struct {
	Method string
	Args   map[string]any
}

type callTracker struct {
	mu    sync.Mutex
	calls []MethodCall
}

func (c *callTracker) trackCall(method string, args map[string]any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, MethodCall{Method: method, Args: args})
}

// GetCallCount returns the number of times a method was called.
func (c *callTracker) GetCallCount(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	count := 0
	for _, call := range c.calls {
		if call.Method == method {
			count++
		}
	}
	return count
}

// GetLastCall returns the most recent call of a method, or nil.
func (c *callTracker) GetLastCall(method string) *MethodCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.calls) - 1; i >= 0; i-- {
		if c.calls[i].Method == method {
			call := c.calls[i]
			return &call
		}
	}
	return nil
}

// Calls returns the method names in call order.
func (c *callTracker) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, len(c.calls))
	for i, call := range c.calls {
		names[i] = call.Method
	}
	return names
}

// DonationAPI is a mock implementation of donation.API.
type DonationAPI struct {
	callTracker

	FetchPullRequestResponse *donation.Snapshot
	FetchPullRequestError    error
	ReplaceLabelsError       error
	AddCommentError          error
}

var _ donation.API = (*DonationAPI)(nil)

// NewDonationAPI creates a mock returning snap from FetchPullRequest.
func NewDonationAPI(snap *donation.Snapshot) *DonationAPI {
	return &DonationAPI{FetchPullRequestResponse: snap}
}

// FetchPullRequest implements donation.API.
func (m *DonationAPI) FetchPullRequest(
	_ context.Context, owner, repo string, number int, labelQuery string,
) (*donation.Snapshot, error) {
	m.trackCall("FetchPullRequest", map[string]any{
		"owner":      owner,
		"repo":       repo,
		"number":     number,
		"labelQuery": labelQuery,
	})
	return m.FetchPullRequestResponse, m.FetchPullRequestError
}

// ReplaceLabels implements donation.API.
func (m *DonationAPI) ReplaceLabels(_ context.Context, pullRequestID string, labelIDs []string) error {
	m.trackCall("ReplaceLabels", map[string]any{
		"pullRequestID": pullRequestID,
		"labelIDs":      labelIDs,
	})
	return m.ReplaceLabelsError
}

// AddComment implements donation.API.
func (m *DonationAPI) AddComment(_ context.Context, subjectID, body string) error {
	m.trackCall("AddComment", map[string]any{
		"subjectID": subjectID,
		"body":      body,
	})
	return m.AddCommentError
}

// LabelManager is a mock implementation of github.LabelManager.
type LabelManager struct {
	callTracker

	ListLabelNamesResponse []string
	ListLabelNamesError    error
	CreateLabelError       error
}

var _ ghpkg.LabelManager = (*LabelManager)(nil)

// NewLabelManager creates a mock listing the given label names.
func NewLabelManager(names ...string) *LabelManager {
	return &LabelManager{ListLabelNamesResponse: names}
}

// ListLabelNames implements github.LabelManager.
func (m *LabelManager) ListLabelNames(_ context.Context, owner, repo string) ([]string, error) {
	m.trackCall("ListLabelNames", map[string]any{"owner": owner, "repo": repo})
	return m.ListLabelNamesResponse, m.ListLabelNamesError
}

// CreateLabel implements github.LabelManager.
func (m *LabelManager) CreateLabel(_ context.Context, owner, repo string, label ghpkg.NewLabel) error {
	m.trackCall("CreateLabel", map[string]any{"owner": owner, "repo": repo, "label": label})
	return m.CreateLabelError
}

// Prompter is a mock implementation of ui.Prompter.
type Prompter struct {
	callTracker

	Answer bool
	Error  error
}

// Confirm implements ui.Prompter.
func (m *Prompter) Confirm(message string) (bool, error) {
	m.trackCall("Confirm", map[string]any{"message": message})
	return m.Answer, m.Error
}
