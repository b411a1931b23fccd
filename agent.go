package reagent

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// exhaustedAnswer is returned when the iteration budget runs out without a
// final answer or a best-effort fallback. Callers rely on the exact text.
const exhaustedAnswer = "I apologize, but I couldn't complete the task within the maximum number of steps. Please try rephrasing your question or breaking it into smaller parts."

// formatNudge is appended as a user message when a completion carries no
// recognizable intent and iterations remain.
const formatNudge = "Please respond in the required format with either an Action or Final Answer."

// Agent drives the reason-act-observe loop over one ModelClient and one
// Registry. Construct with New; register tools before (or when) calling Run.
// A single Agent runs one loop at a time; the transcript lives only for the
// duration of a Run call.
type Agent struct {
	client     ModelClient
	registry   *Registry
	dispatcher *Dispatcher
	opts       agentOptions
}

// New creates an Agent with its own empty Registry.
func New(client ModelClient, opts ...Option) (*Agent, error) {
	if client == nil {
		return nil, errors.New("model client is required")
	}
	o := defaultAgentOptions()
	for _, opt := range opts {
		opt(&o)
	}
	registry := NewRegistry()
	dispatcherOpts := append([]DispatcherOption{WithDispatchLogger(o.log)}, o.dispatcherOpts...)
	return &Agent{
		client:     client,
		registry:   registry,
		dispatcher: NewDispatcher(registry, dispatcherOpts...),
		opts:       o,
	}, nil
}

// Register adds a tool to the agent's registry.
func (a *Agent) Register(tools ...*Tool) error {
	for _, t := range tools {
		if err := a.registry.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Registry exposes the agent's tool registry, e.g. for catalog inspection.
func (a *Agent) Registry() *Registry { return a.registry }

// Run answers a query by alternating model calls, tool dispatches, and
// observations until the model produces a Final Answer or the iteration
// budget is exhausted. Extra tools, if given, are registered first.
//
// Tool failures and unparsable completions never abort the run; they are
// turned into transcript content so the model can recover. Only model
// transport failures (and invalid extra-tool registrations, detected before
// the first model call) return an error.
func (a *Agent) Run(ctx context.Context, query string, tools ...*Tool) (string, error) {
	if err := a.Register(tools...); err != nil {
		return "", err
	}

	runID := uuid.NewString()
	log := a.opts.log.With("run_id", runID)
	log.Infow("run started", "query", query, "tools", a.registry.Names())

	transcript := []Message{
		{Role: RoleSystem, Content: BuildSystemPrompt(a.opts.systemPrompt, a.registry)},
		{Role: RoleUser, Content: query},
	}

	for iteration := 1; iteration <= a.opts.maxIterations; iteration++ {
		log.Infow("iteration", "n", iteration)
		reply, err := a.complete(ctx, transcript)
		if err != nil {
			log.Errorw("model call failed", "iteration", iteration, "error", err)
			return "", err
		}

		intent := Parse(reply)
		switch intent.Type {
		case IntentFinalAnswer:
			log.Infow("run finished", "iterations", iteration)
			return intent.FinalAnswer, nil

		case IntentAction:
			obs := a.dispatcher.Dispatch(ctx, intent)
			transcript = append(transcript,
				Message{Role: RoleAssistant, Content: reply},
				Message{Role: RoleUser, Content: "Observation: " + obs.Text},
			)

		case IntentUnrecognized:
			if looksLikeAnswer(reply) {
				// Best effort: the reply mentions a final answer, just not
				// in protocol form. Return it verbatim.
				log.Warnw("run finished without structured answer", "iterations", iteration)
				return reply, nil
			}
			if iteration < a.opts.maxIterations {
				transcript = append(transcript,
					Message{Role: RoleAssistant, Content: reply},
					Message{Role: RoleUser, Content: formatNudge},
				)
			}
		}
	}

	log.Warnw("iteration budget exhausted", "max_iterations", a.opts.maxIterations)
	return exhaustedAnswer, nil
}

// Chat answers a single message without tools or protocol parsing.
func (a *Agent) Chat(ctx context.Context, message string) (string, error) {
	return a.complete(ctx, []Message{
		{Role: RoleSystem, Content: "You are a helpful AI assistant."},
		{Role: RoleUser, Content: message},
	})
}

// looksLikeAnswer reports whether an unrecognized reply plausibly contains
// the answer anyway (a final-answer mention that the protocol regex missed).
func looksLikeAnswer(reply string) bool {
	return strings.Contains(strings.ToLower(reply), "final answer")
}

func (a *Agent) complete(ctx context.Context, transcript []Message) (string, error) {
	return a.client.Complete(ctx, CompletionRequest{
		Messages:    transcript,
		Model:       a.opts.model,
		Temperature: a.opts.temperature,
		MaxTokens:   a.opts.maxTokens,
	})
}
