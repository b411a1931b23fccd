// Package reagent drives a ReAct-style tool-calling loop for LLM agents:
// reason, act, observe, repeat, until the model states a final answer.
//
// # Overview
//
// The model speaks a line-oriented textual protocol (Thought / Action /
// Action Input / Final Answer). This package turns a Go function into a
// machine-readable capability description shown to the model, parses the
// model's free-form completions into structured intents, and dispatches
// proposed actions safely: lookup misses, bad arguments, executor errors, and
// panics all become Observation text fed back into the transcript so the
// model can correct itself.
//
// Pipeline: Go function → NewTool / NewDocTool (schema synthesis) → Registry →
// Agent.Run → ModelClient completion → Parse → Dispatcher → Observation → loop.
//
// # Key concepts
//
//   - Single Source of Truth: for NewTool, one argument struct drives both
//     the JSON Schema shown to the model and the validation of incoming input.
//   - Final Answer wins: a completion carrying both an Action and a Final
//     Answer marker terminates the run; the action is never dispatched.
//   - Self-Correction: ClientError messages travel back to the model;
//     SystemError hides internals. Only transport failures abort a run.
//
// # Example
//
//	type Args struct { Expression string `json:"expression" description:"Expression to evaluate"` }
//	tool, err := reagent.NewTool("calculator", "Evaluate arithmetic", func(_ context.Context, a Args) (float64, error) {
//	    return eval(a.Expression)
//	})
//	if err != nil { ... }
//	agent, err := reagent.New(client)
//	if err != nil { ... }
//	answer, err := agent.Run(ctx, "Calculate 2+2", tool)
package reagent
