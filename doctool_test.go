package reagent

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const addItemDoc = `
Adds an item to a to-do list.

Args:
    list_name: The name of the to-do list.
    item: The item to add.

Returns:
    A confirmation message.
`

func TestNewDocTool_SynthesizesDescriptor(t *testing.T) {
	tool, err := NewDocTool("add_todo_item", addItemDoc, func(listName, item string) string {
		return fmt.Sprintf("Item '%s' added to to-do list '%s'.", item, listName)
	})
	require.NoError(t, err)

	assert.Equal(t, "add_todo_item", tool.Name())
	assert.Equal(t, "Adds an item to a to-do list.", tool.Summary())

	params := tool.Parameters()
	require.Len(t, params, 2)
	assert.Equal(t, Parameter{Name: "list_name", Kind: "string", Description: "The name of the to-do list."}, params[0])
	assert.Equal(t, Parameter{Name: "item", Kind: "string", Description: "The item to add."}, params[1])
	assert.Equal(t, []string{"list_name", "item"}, tool.Required())
}

func TestNewDocTool_KindMapping(t *testing.T) {
	doc := `
Exercises every parameter kind.

Args:
    count: An integer.
    ratio: A number.
    flag: A boolean.
    names: An array.
    meta: An object.
    label: A string.
`
	tool, err := NewDocTool("kinds", doc, func(count int, ratio float64, flag bool, names []string, meta map[string]any, label string) string {
		return ""
	})
	require.NoError(t, err)

	kinds := make(map[string]string)
	for _, p := range tool.Parameters() {
		kinds[p.Name] = p.Kind
	}
	assert.Equal(t, map[string]string{
		"count": "integer",
		"ratio": "number",
		"flag":  "boolean",
		"names": "array",
		"meta":  "object",
		"label": "string",
	}, kinds)
}

func TestNewDocTool_PointerParameterIsOptional(t *testing.T) {
	doc := `
Greets someone.

Args:
    name: Who to greet.
    excited: Whether to shout.
`
	tool, err := NewDocTool("greet", doc, func(name string, excited *bool) string {
		if excited != nil && *excited {
			return "HELLO " + name
		}
		return "hello " + name
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, tool.Required())

	out, err := tool.execute(context.Background(), raw(`{"name": "Ada"}`))
	require.NoError(t, err)
	assert.Equal(t, "hello Ada", out)

	out, err = tool.execute(context.Background(), raw(`{"name": "Ada", "excited": true}`))
	require.NoError(t, err)
	assert.Equal(t, "HELLO Ada", out)
}

func TestNewDocTool_ExecutorReceivesNamedArguments(t *testing.T) {
	var gotList, gotItem string
	tool, err := NewDocTool("add_todo_item", addItemDoc, func(listName, item string) string {
		gotList, gotItem = listName, item
		return "ok"
	})
	require.NoError(t, err)

	_, err = tool.execute(context.Background(), raw(`{"list_name": "chores", "item": "laundry"}`))
	require.NoError(t, err)
	assert.Equal(t, "chores", gotList)
	assert.Equal(t, "laundry", gotItem)
}

func TestNewDocTool_ContextParameterIsExcluded(t *testing.T) {
	doc := `
Waits a bit.

Args:
    label: What to return.
`
	tool, err := NewDocTool("wait", doc, func(ctx context.Context, label string) (string, error) {
		return label, ctx.Err()
	})
	require.NoError(t, err)
	require.Len(t, tool.Parameters(), 1)

	out, err := tool.execute(context.Background(), raw(`{"label": "done"}`))
	require.NoError(t, err)
	assert.Equal(t, "done", out)
}

func TestNewDocTool_ArgumentErrors(t *testing.T) {
	tool, err := NewDocTool("add_todo_item", addItemDoc, func(listName, item string) string {
		return ""
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{"missing required", `{"list_name": "chores"}`},
		{"unknown argument", `{"list_name": "chores", "item": "x", "bogus": 1}`},
		{"non-object input", `[1, 2]`},
		{"wrong type", `{"list_name": "chores", "item": 42}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tool.execute(context.Background(), raw(tt.input))
			require.Error(t, err)
			assert.True(t, IsClientError(err))
		})
	}
}

func TestNewDocTool_SchemaErrors(t *testing.T) {
	fn := func(x string) string { return x }
	var schemaErr *SchemaError

	tests := []struct {
		name string
		doc  string
		fn   any
	}{
		{"nil function", addItemDoc, nil},
		{"not a function", addItemDoc, 42},
		{"empty doc", "   \n ", fn},
		{"parameter count mismatch", addItemDoc, fn},
		{"malformed args line", "Summary.\n\nArgs:\n    just words\n", fn},
		{"variadic", "Summary.\n\nArgs:\n    x: X.\n", func(x ...string) string { return "" }},
		{"no results", "Summary.\n\nArgs:\n    x: X.\n", func(x string) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDocTool("t", tt.doc, tt.fn)
			require.ErrorAs(t, err, &schemaErr)
		})
	}
}

func TestNewDocTool_PlaceholderDescription(t *testing.T) {
	doc := "Summary line.\n\nArgs:\n    path:\n"
	tool, err := NewDocTool("t", doc, func(path string) string { return path })
	require.NoError(t, err)
	require.Len(t, tool.Parameters(), 1)
	assert.NotEmpty(t, tool.Parameters()[0].Description)
}

func TestNewDocTool_RequiredSubsetOfParameters(t *testing.T) {
	doc := `
Mixed required and optional.

Args:
    a: Required.
    b: Optional.
`
	tool, err := NewDocTool("t", doc, func(a string, b *int) string { return a })
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, p := range tool.Parameters() {
		names[p.Name] = true
	}
	for _, r := range tool.Required() {
		assert.True(t, names[r], "required %q missing from parameters", r)
	}
}
