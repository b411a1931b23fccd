package reagent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Dispatcher resolves action intents against a Registry and invokes executors.
// It is the sole boundary where tool failures are absorbed: lookup misses,
// executor errors, and panics all become error observations, never escaping
// to the loop.
type Dispatcher struct {
	registry *Registry
	opts     dispatcherOptions
}

// NewDispatcher creates a Dispatcher over the given registry.
func NewDispatcher(registry *Registry, opts ...DispatcherOption) *Dispatcher {
	o := defaultDispatcherOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Dispatcher{registry: registry, opts: o}
}

// Dispatch executes one action intent and returns the observation to feed
// back into the transcript. It never returns an error: failures are encoded
// in the observation text with IsError set.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent) Observation {
	name := intent.Action
	tool, ok := d.registry.Lookup(name)
	if !ok {
		names := d.registry.Names()
		d.opts.log.Warnw("tool not found", "tool", name, "available", names)
		return Observation{
			Text:    fmt.Sprintf("Error: Tool '%s' not found. Available tools: [%s]", name, strings.Join(names, ", ")),
			IsError: true,
		}
	}

	timeout := d.opts.timeout
	if tool.Timeout() > 0 {
		timeout = tool.Timeout()
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if d.opts.onBefore != nil {
		d.opts.onBefore(ctx, name, intent.ActionInput)
	}
	d.opts.log.Infow("executing tool", "tool", name, "input", string(intent.ActionInput))
	start := time.Now()
	result, err := d.invoke(ctx, tool, intent)
	dur := time.Since(start)

	var obs Observation
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = ErrTimeout
		}
		d.opts.log.Errorw("tool failed", "tool", name, "duration", dur, "error", err)
		obs = Observation{
			Text:    fmt.Sprintf("Error executing tool %s: %s", name, err.Error()),
			IsError: true,
		}
	} else {
		d.opts.log.Infow("tool succeeded", "tool", name, "duration", dur)
		obs = Observation{Text: result}
	}
	if d.opts.onAfter != nil {
		d.opts.onAfter(ctx, name, obs, dur)
	}
	return obs
}

// invoke calls the executor, converting a panic into a SystemError when
// recovery is enabled.
func (d *Dispatcher) invoke(ctx context.Context, tool *Tool, intent Intent) (result string, err error) {
	if d.opts.recoverPanics {
		defer func() {
			if p := recover(); p != nil {
				err = &SystemError{Err: &panicError{p: p}}
			}
		}()
	}
	return tool.execute(ctx, intent.ActionInput)
}
