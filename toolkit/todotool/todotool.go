// Package todotool provides in-memory to-do list tools backed by a Store.
// Each Store owns its synchronization, so separate agents can share one Store
// safely.
package todotool

import (
	"fmt"
	"strings"
	"sync"

	"github.com/skosovsky/reagent"
)

type item struct {
	task      string
	completed bool
}

// Store is a named collection of to-do lists. The zero value is not usable;
// create with NewStore.
type Store struct {
	mu    sync.Mutex
	lists map[string][]item
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{lists: make(map[string][]item)}
}

// Tools builds the to-do tools bound to this store, registered through the
// doc-text inference path.
func (s *Store) Tools() ([]*reagent.Tool, error) {
	var tools []*reagent.Tool
	for _, spec := range []struct {
		name string
		doc  string
		fn   any
	}{
		{"create_todo_list", `
Creates a new to-do list.

Args:
    list_name: The name of the to-do list.

Returns:
    A confirmation message.
`, s.create},
		{"add_todo_item", `
Adds an item to a to-do list.

Args:
    list_name: The name of the to-do list.
    item: The item to add.

Returns:
    A confirmation message.
`, s.add},
		{"view_todo_list", `
Views the items in a to-do list.

Args:
    list_name: The name of the to-do list.

Returns:
    A string representation of the to-do list.
`, s.view},
		{"mark_item_complete", `
Marks an item in a to-do list as complete.

Args:
    list_name: The name of the to-do list.
    item_number: The number of the item to mark as complete.

Returns:
    A confirmation message.
`, s.markComplete},
	} {
		t, err := reagent.NewDocTool(spec.name, spec.doc, spec.fn)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

func (s *Store) create(listName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.lists[listName]; exists {
		return fmt.Sprintf("Error: To-do list '%s' already exists.", listName)
	}
	s.lists[listName] = nil
	return fmt.Sprintf("To-do list '%s' created successfully.", listName)
}

func (s *Store) add(listName, task string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.lists[listName]; !exists {
		return fmt.Sprintf("Error: To-do list '%s' not found.", listName)
	}
	s.lists[listName] = append(s.lists[listName], item{task: task})
	return fmt.Sprintf("Item '%s' added to to-do list '%s'.", task, listName)
}

func (s *Store) view(listName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, exists := s.lists[listName]
	if !exists {
		return fmt.Sprintf("Error: To-do list '%s' not found.", listName)
	}
	if len(list) == 0 {
		return fmt.Sprintf("To-do list '%s' is empty.", listName)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "To-do list '%s':\n", listName)
	for i, it := range list {
		status := " "
		if it.completed {
			status = "✓"
		}
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, status, it.task)
	}
	return b.String()
}

func (s *Store) markComplete(listName string, itemNumber int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, exists := s.lists[listName]
	if !exists {
		return fmt.Sprintf("Error: To-do list '%s' not found.", listName)
	}
	if itemNumber < 1 || itemNumber > len(list) {
		return fmt.Sprintf("Error: Invalid item number. Please choose a number between 1 and %d.", len(list))
	}
	list[itemNumber-1].completed = true
	return fmt.Sprintf("Item '%s' in to-do list '%s' marked as complete.", list[itemNumber-1].task, listName)
}
