package reagent

import (
	"errors"
	"fmt"
)

// Sentinel errors for reagent. Use errors.Is to check.
var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrDuplicateTool = errors.New("tool already registered")
	ErrTimeout       = errors.New("tool execution timeout")
	ErrValidation    = errors.New("validation failed")
)

// SchemaError reports that a capability description could not be synthesized
// from a callable (missing documentation, malformed Args section, unusable
// signature). It is raised at tool construction time and is fatal to that
// registration only.
type SchemaError struct {
	Tool   string
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Tool == "" {
		return "schema synthesis failed: " + e.Reason
	}
	return fmt.Sprintf("schema synthesis failed for tool %q: %s", e.Tool, e.Reason)
}

// ClientError is an error that should be sent back to the LLM for self-correction
// (e.g. invalid JSON, schema validation failure, missing required argument).
// Do not expose stack traces or internal details to the LLM.
// Err optionally wraps a sentinel (e.g. ErrValidation) for errors.Is/errors.As.
type ClientError struct {
	Reason string
	Err    error // wrapped sentinel for errors.Is/errors.As
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("invalid tool input: %s", e.Reason)
}

// Unwrap supports errors.Is/errors.As on wrapped chains (e.g. errors.Is(err, ErrValidation)).
func (e *ClientError) Unwrap() error { return e.Err }

// SystemError represents an internal failure (panic, marshaling bug, etc.).
// The LLM should not see the underlying error message or stack.
type SystemError struct {
	Err error
}

func (e *SystemError) Error() string {
	return "internal system error during tool execution"
}

func (e *SystemError) Unwrap() error { return e.Err }

// IsClientError returns true if err is or wraps a ClientError.
func IsClientError(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce)
}

// IsSystemError returns true if err is or wraps a SystemError.
func IsSystemError(err error) bool {
	var se *SystemError
	return errors.As(err, &se)
}

// TransportKind classifies a model-provider failure.
type TransportKind string

const (
	TransportAuth      TransportKind = "auth"
	TransportRateLimit TransportKind = "rate_limit"
	TransportNetwork   TransportKind = "network"
	TransportTimeout   TransportKind = "timeout"
)

// TransportError is a model-client failure. It is fatal to the current
// Agent.Run call: the loop never converts it into transcript content.
type TransportError struct {
	Kind       TransportKind
	StatusCode int // 0 when the failure happened before a response
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("model transport error (%s, status %d): %v", e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("model transport error (%s): %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransportError returns true if err is or wraps a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// wrapJSONParseError returns a ClientError for JSON unmarshal failures.
// Used by Extractor.ParseAndValidate and the doc-tool execute path so parse errors are consistent.
func wrapJSONParseError(err error) error {
	return &ClientError{Reason: "json parse error: " + err.Error()}
}

// panicError wraps a recovered panic value for SystemError; used by Dispatcher.
type panicError struct{ p any }

func (e *panicError) Error() string {
	return "panic: " + fmt.Sprint(e.p)
}
