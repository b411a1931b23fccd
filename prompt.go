package reagent

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DefaultSystemPrompt is the operating-instructions half of the system
// message; BuildSystemPrompt appends the tool catalog to it.
const DefaultSystemPrompt = `You are a helpful AI assistant that can use tools to answer questions.

When you need to use a tool, respond in this exact format:

Thought: [Your reasoning about what to do next]
Action: [tool_name]
Action Input: [JSON input for the tool]

After using a tool, you will receive:
Observation: [Result from the tool]

Then continue reasoning until you have enough information to answer.

When you have the final answer, respond in this format:

Thought: I now have enough information to answer
Final Answer: [Your complete answer to the user]

Important:
- Always use the exact format shown above
- Action Input must be valid JSON
- Keep iterating until you can provide a Final Answer
- Use tools when you need external information or computation`

// BuildSystemPrompt combines the base instructions with a rendered catalog of
// the registry's tools. With no tools registered the catalog block is omitted
// entirely, not rendered as an empty header.
func BuildSystemPrompt(base string, registry *Registry) string {
	if registry == nil || registry.Len() == 0 {
		return base
	}
	return base + "\n\n" + renderToolCatalog(registry)
}

// renderToolCatalog lists each tool's name, summary, and parameter schema in
// registration order.
func renderToolCatalog(registry *Registry) string {
	var b strings.Builder
	b.WriteString("Available Tools:\n\n")
	for tool := range registry.Tools() {
		fmt.Fprintf(&b, "Tool: %s\n", tool.Name())
		fmt.Fprintf(&b, "Description: %s\n", tool.Summary())
		schema, err := json.MarshalIndent(tool.Schema(), "", "  ")
		if err != nil {
			schema = []byte("{}")
		}
		fmt.Fprintf(&b, "Parameters: %s\n\n", schema)
	}
	return b.String()
}
