package reagent

import (
	"fmt"
	"iter"
	"sync"
)

// Registry holds the tools one agent instance may dispatch to. Each agent
// owns its own Registry; there is no process-wide registration. Safe for
// concurrent use.
type Registry struct {
	mu    sync.Mutex
	tools map[string]*Tool
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds a tool. Registering a second tool under an existing name
// fails with ErrDuplicateTool; registrations are additive, never replacing.
func (r *Registry) Register(t *Tool) error {
	if t == nil {
		return fmt.Errorf("register: tool must not be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	name := t.Name()
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateTool)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the tool with the given name, or (nil, false) if not found.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tools[name]
	return t, ok
}

// Tools returns a restartable sequence of registered tools in registration
// order, used to render the tool catalog deterministically.
func (r *Registry) Tools() iter.Seq[*Tool] {
	return func(yield func(*Tool) bool) {
		for _, t := range r.snapshot() {
			if !yield(t) {
				return
			}
		}
	}
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

func (r *Registry) snapshot() []*Tool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}
