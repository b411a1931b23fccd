// Package testutil provides test helpers for reagent (e.g. ScriptedModel).
package testutil

import (
	"context"
	"sync"

	"github.com/skosovsky/reagent"
)

// ScriptedModel is a reagent.ModelClient that replays canned completions in
// order. After the script runs out it keeps returning the last entry. Err, if
// set, is returned on every call instead.
type ScriptedModel struct {
	Replies []string
	Err     error

	mu       sync.Mutex
	calls    int
	requests []reagent.CompletionRequest
}

// Complete returns the next scripted reply and records the request.
func (m *ScriptedModel) Complete(_ context.Context, req reagent.CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.requests = append(m.requests, req)
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Replies) == 0 {
		return "", nil
	}
	idx := m.calls - 1
	if idx >= len(m.Replies) {
		idx = len(m.Replies) - 1
	}
	return m.Replies[idx], nil
}

// Calls returns how many completions were requested.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Requests returns every recorded request in call order.
func (m *ScriptedModel) Requests() []reagent.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]reagent.CompletionRequest(nil), m.requests...)
}

// LastRequest returns the most recent recorded request, or a zero value when
// no call was made.
func (m *ScriptedModel) LastRequest() reagent.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return reagent.CompletionRequest{}
	}
	return m.requests[len(m.requests)-1]
}

var _ reagent.ModelClient = (*ScriptedModel)(nil)

// StaticTool builds a tool that accepts an optional "input" string and always
// returns reply. Handy for registry and dispatch tests that need a registered
// name but no real behavior.
func StaticTool(name, reply string) (*reagent.Tool, error) {
	type args struct {
		Input *string `json:"input,omitempty" description:"Ignored."`
	}
	return reagent.NewTool(name, "Returns a canned reply.",
		func(_ context.Context, _ args) (string, error) {
			return reply, nil
		})
}
