package reagent

import (
	"encoding/json"
	"regexp"
	"strings"
)

// IntentType tags the result of parsing one model completion.
type IntentType int

const (
	// IntentUnrecognized means no structured intent was found in the text.
	IntentUnrecognized IntentType = iota
	// IntentAction proposes one tool invocation.
	IntentAction
	// IntentFinalAnswer terminates the run.
	IntentFinalAnswer
)

// Intent is the structured reading of one completion. Thought is informational
// only; Raw always carries the original text.
type Intent struct {
	Type        IntentType
	Thought     string
	FinalAnswer string
	Action      string
	ActionInput json.RawMessage
	Raw         string
}

// The protocol markers are matched case-insensitively and anywhere in the
// text. This is deliberately best-effort: a model emitting stray keywords
// mid-reasoning can trigger a branch, and the nudge-and-retry loop recovers
// from the fallout.
var (
	finalAnswerRe = regexp.MustCompile(`(?is)final answer:\s*(.*)`)
	actionRe      = regexp.MustCompile(`(?i)action:\s*(\w+)`)
	actionInputRe = regexp.MustCompile(`(?is)action input:\s*(.+)`)
	thoughtRe     = regexp.MustCompile(`(?is)thought:\s*(.+)`)
	markerRe      = regexp.MustCompile(`(?i)(thought:|action input:|action:|final answer:|observation:)`)
)

// Parse classifies one completion. A Final Answer marker always wins, even
// when an Action marker is also present; only if no Final Answer is found does
// the first Action marker produce an action intent. Parsing is pure: the same
// text always yields a structurally equal Intent.
func Parse(text string) Intent {
	intent := Intent{Raw: text, Thought: extractThought(text)}
	if m := finalAnswerRe.FindStringSubmatch(text); m != nil {
		intent.Type = IntentFinalAnswer
		intent.FinalAnswer = strings.TrimSpace(m[1])
		return intent
	}
	if m := actionRe.FindStringSubmatch(text); m != nil {
		intent.Type = IntentAction
		intent.Action = m[1]
		intent.ActionInput = json.RawMessage("{}")
		if im := actionInputRe.FindStringSubmatch(text); im != nil {
			intent.ActionInput = normalizeActionInput(im[1])
		}
		return intent
	}
	intent.Type = IntentUnrecognized
	return intent
}

// extractThought captures the text after the first Thought marker, up to the
// next recognized marker or end of text.
func extractThought(text string) string {
	m := thoughtRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(cutAtMarker(m[1]))
}

// normalizeActionInput turns the captured Action Input substring into a JSON
// payload for the dispatcher. The whole remainder is first attempted as a JSON
// value (object, array, quoted string, or bare number). If decoding fails, the
// trimmed substring with surrounding quotes stripped becomes the sole value
// under an "input" key, so the dispatcher receives a one-entry object rather
// than failing outright.
func normalizeActionInput(capture string) json.RawMessage {
	trimmed := strings.TrimSpace(capture)
	if trimmed == "" {
		return json.RawMessage("{}")
	}
	dec := json.NewDecoder(strings.NewReader(trimmed))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err == nil {
		return raw
	}
	stripped := strings.Trim(strings.TrimSpace(cutAtMarker(trimmed)), `"`)
	b, err := json.Marshal(map[string]string{"input": stripped})
	if err != nil {
		return json.RawMessage("{}")
	}
	return b
}

// cutAtMarker truncates s at the first protocol marker, if any.
func cutAtMarker(s string) string {
	if loc := markerRe.FindStringIndex(s); loc != nil {
		return s[:loc[0]]
	}
	return s
}
