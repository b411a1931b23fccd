package reagent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FinalAnswerWinsOverAction(t *testing.T) {
	text := "Thought: done\nAction: calculator\nAction Input: {\"expression\":\"1+1\"}\nFinal Answer: 2"
	intent := Parse(text)
	require.Equal(t, IntentFinalAnswer, intent.Type)
	assert.Equal(t, "2", intent.FinalAnswer)
	assert.Empty(t, intent.Action)
}

func TestParse_ActionWithJSONObject(t *testing.T) {
	text := "Thought: need to compute\nAction: calculator\nAction Input: {\"expression\": \"2+2\"}"
	intent := Parse(text)
	require.Equal(t, IntentAction, intent.Type)
	assert.Equal(t, "calculator", intent.Action)
	assert.JSONEq(t, `{"expression": "2+2"}`, string(intent.ActionInput))
	assert.Equal(t, "need to compute", intent.Thought)
}

func TestParse_MalformedInputFallsBackToInputKey(t *testing.T) {
	intent := Parse("Action: calculator\nAction Input: banana")
	require.Equal(t, IntentAction, intent.Type)
	assert.JSONEq(t, `{"input": "banana"}`, string(intent.ActionInput))
}

func TestParse_QuotedFallbackStripsQuotes(t *testing.T) {
	intent := Parse("Action: echo\nAction Input: \"unterminated")
	require.Equal(t, IntentAction, intent.Type)
	assert.JSONEq(t, `{"input": "unterminated"}`, string(intent.ActionInput))
}

func TestParse_ActionInputVariants(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		input string
	}{
		{"array", "Action: t\nAction Input: [1, 2]", `[1, 2]`},
		{"quoted string", "Action: t\nAction Input: \"hello\"", `"hello"`},
		{"bare number", "Action: t\nAction Input: 42", `42`},
		{"missing input", "Action: t", `{}`},
		{"multiline object", "Action: t\nAction Input: {\n  \"a\": 1\n}", "{\n  \"a\": 1\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := Parse(tt.text)
			require.Equal(t, IntentAction, intent.Type)
			assert.Equal(t, tt.input, string(intent.ActionInput))
		})
	}
}

func TestParse_MarkersAreCaseInsensitive(t *testing.T) {
	intent := Parse("thought: hmm\naction: clock\naction input: {}")
	require.Equal(t, IntentAction, intent.Type)
	assert.Equal(t, "clock", intent.Action)

	final := Parse("FINAL ANSWER: done")
	require.Equal(t, IntentFinalAnswer, final.Type)
	assert.Equal(t, "done", final.FinalAnswer)
}

func TestParse_FinalAnswerCapturesRemainder(t *testing.T) {
	intent := Parse("Thought: ready\nFinal Answer: line one\nline two")
	require.Equal(t, IntentFinalAnswer, intent.Type)
	assert.Equal(t, "line one\nline two", intent.FinalAnswer)
}

func TestParse_ThoughtStopsAtNextMarker(t *testing.T) {
	intent := Parse("Thought: step one\nthinking more\nAction: t\nAction Input: {}")
	assert.Equal(t, "step one\nthinking more", intent.Thought)
}

func TestParse_Unrecognized(t *testing.T) {
	intent := Parse("I am not sure what you mean.")
	assert.Equal(t, IntentUnrecognized, intent.Type)
	assert.Equal(t, "I am not sure what you mean.", intent.Raw)
}

func TestParse_Idempotent(t *testing.T) {
	texts := []string{
		"Thought: x\nAction: calculator\nAction Input: {\"expression\": \"2+2\"}",
		"Action: t\nAction Input: banana",
		"Final Answer: 42",
		"free text",
	}
	for _, text := range texts {
		first := Parse(text)
		second := Parse(text)
		assert.Equal(t, first, second)
	}
}

func TestParse_ActionInputIsValidJSON(t *testing.T) {
	intent := Parse("Action: t\nAction Input: not json at all")
	var m map[string]any
	require.NoError(t, json.Unmarshal(intent.ActionInput, &m))
	assert.Equal(t, map[string]any{"input": "not json at all"}, m)
}
