package reagent

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

// toolOptions hold optional per-tool settings.
type toolOptions struct {
	timeout time.Duration
}

// ToolOption configures a tool built with NewTool or NewDocTool.
type ToolOption func(*toolOptions)

// WithTimeout sets a per-tool execution timeout, overriding the dispatcher default.
func WithTimeout(d time.Duration) ToolOption {
	return func(o *toolOptions) {
		o.timeout = d
	}
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*dispatcherOptions)

type dispatcherOptions struct {
	timeout       time.Duration
	recoverPanics bool
	log           *zap.SugaredLogger
	onBefore      func(ctx context.Context, tool string, input json.RawMessage)
	onAfter       func(ctx context.Context, tool string, obs Observation, dur time.Duration)
}

func defaultDispatcherOptions() dispatcherOptions {
	return dispatcherOptions{
		timeout:       5 * time.Second,
		recoverPanics: true,
		log:           zap.NewNop().Sugar(),
	}
}

// WithDefaultTimeout sets the default execution timeout for tools that carry
// no timeout of their own. Pass 0 to disable.
func WithDefaultTimeout(d time.Duration) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.timeout = d
	}
}

// WithRecoverPanics enables panic recovery around executor invocation
// (a panic becomes a SystemError observation). Enabled by default.
func WithRecoverPanics(enable bool) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.recoverPanics = enable
	}
}

// WithDispatchLogger sets the dispatcher's logger.
func WithDispatchLogger(log *zap.SugaredLogger) DispatcherOption {
	return func(o *dispatcherOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithOnBeforeDispatch sets a hook called before each tool execution.
func WithOnBeforeDispatch(fn func(ctx context.Context, tool string, input json.RawMessage)) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.onBefore = fn
	}
}

// WithOnAfterDispatch sets a hook called after each tool execution with the
// observation that will enter the transcript.
func WithOnAfterDispatch(fn func(ctx context.Context, tool string, obs Observation, dur time.Duration)) DispatcherOption {
	return func(o *dispatcherOptions) {
		o.onAfter = fn
	}
}

// Option configures an Agent.
type Option func(*agentOptions)

type agentOptions struct {
	model          string
	temperature    float64
	maxTokens      int64
	maxIterations  int
	systemPrompt   string
	log            *zap.SugaredLogger
	dispatcherOpts []DispatcherOption
}

func defaultAgentOptions() agentOptions {
	return agentOptions{
		model:         "anthropic/claude-3.5-sonnet",
		temperature:   0.7,
		maxTokens:     4096,
		maxIterations: 10,
		systemPrompt:  DefaultSystemPrompt,
		log:           zap.NewNop().Sugar(),
	}
}

// WithModel sets the model identifier sent to the client.
func WithModel(model string) Option {
	return func(o *agentOptions) {
		if model != "" {
			o.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Option {
	return func(o *agentOptions) {
		o.temperature = t
	}
}

// WithMaxTokens sets the maximum output tokens per completion.
func WithMaxTokens(n int64) Option {
	return func(o *agentOptions) {
		if n > 0 {
			o.maxTokens = n
		}
	}
}

// WithMaxIterations bounds the reason-act-observe loop.
func WithMaxIterations(n int) Option {
	return func(o *agentOptions) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithSystemPrompt replaces the default operating instructions. The tool
// catalog is still appended when tools are registered.
func WithSystemPrompt(prompt string) Option {
	return func(o *agentOptions) {
		if prompt != "" {
			o.systemPrompt = prompt
		}
	}
}

// WithLogger sets the agent's logger; the dispatcher inherits it unless
// overridden via WithDispatcherOptions.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *agentOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithDispatcherOptions forwards options to the agent's Dispatcher.
func WithDispatcherOptions(opts ...DispatcherOption) Option {
	return func(o *agentOptions) {
		o.dispatcherOpts = append(o.dispatcherOpts, opts...)
	}
}
