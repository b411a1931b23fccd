package reagent

import (
	"context"
)

// Role identifies the author of a transcript message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in a run's transcript.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest carries one transcript snapshot plus sampling settings
// to a ModelClient. Messages are read-only for the client.
type CompletionRequest struct {
	Messages    []Message
	Model       string
	Temperature float64
	MaxTokens   int64
}

// ModelClient is the transport to a language-model provider. Complete returns
// one assistant completion for the given transcript, or a TransportError
// (auth, rate limit, network, timeout). Clients must not retry internally in
// a way that changes the one-call-per-iteration contract of Agent.Run.
type ModelClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Observation is the textual result of dispatching one action. IsError marks
// observations synthesized from a lookup or execution failure; either way the
// text is fed back into the transcript and the run continues.
type Observation struct {
	Text    string
	IsError bool
}
