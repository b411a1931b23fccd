package reagent

import (
	"context"
	"encoding/json"
	"maps"
	"reflect"
	"strings"
	"time"
)

// Parameter describes one named tool argument as shown to the model.
// Kind is a JSON Schema type: string, integer, number, boolean, array, object.
type Parameter struct {
	Name        string
	Kind        string
	Description string
}

// Tool is an immutable capability descriptor plus its executor. Build one with
// NewTool (declarative, schema from the argument struct) or NewDocTool
// (fallback, schema inferred from a documented plain function).
type Tool struct {
	name       string
	summary    string
	parameters []Parameter
	required   []string
	schema     map[string]any
	execute    func(ctx context.Context, argsJSON []byte) (string, error)
	opts       toolOptions
}

// NewTool builds a Tool from a typed function. The JSON Schema shown to the
// model and the validation of incoming arguments both come from T via
// Extractor[T]; field descriptions and enums come from struct tags.
// String results are returned verbatim; other result types are marshaled to JSON.
// Returns a SchemaError if the summary is missing or schema generation fails.
func NewTool[T any, R any](
	name, summary string,
	fn func(ctx context.Context, args T) (R, error),
	opts ...ToolOption,
) (*Tool, error) {
	if name == "" {
		return nil, &SchemaError{Reason: "tool must have a name"}
	}
	if fn == nil {
		return nil, &SchemaError{Tool: name, Reason: "tool function must not be nil"}
	}
	if summary == "" {
		return nil, &SchemaError{Tool: name, Reason: "tool must have a summary"}
	}
	var o toolOptions
	for _, opt := range opts {
		opt(&o)
	}
	ext, err := NewExtractor[T]()
	if err != nil {
		return nil, &SchemaError{Tool: name, Reason: err.Error()}
	}
	schema := ext.Schema()
	execute := func(ctx context.Context, argsJSON []byte) (string, error) {
		args, err := ext.ParseAndValidate(argsJSON)
		if err != nil {
			return "", err
		}
		res, err := fn(ctx, args)
		if err != nil {
			return "", wrapHandlerError(err)
		}
		return stringifyResult(res)
	}
	return &Tool{
		name:       name,
		summary:    summary,
		parameters: parametersFromStruct(reflect.TypeOf(*new(T)), schema),
		required:   requiredFromSchema(schema),
		schema:     schema,
		execute:    execute,
		opts:       o,
	}, nil
}

func (t *Tool) Name() string    { return t.name }
func (t *Tool) Summary() string { return t.summary }

// Parameters returns the tool's arguments in declaration order.
func (t *Tool) Parameters() []Parameter {
	return append([]Parameter(nil), t.parameters...)
}

// Required returns the names of arguments without a default value.
func (t *Tool) Required() []string {
	return append([]string(nil), t.required...)
}

// Schema returns a shallow copy of the JSON Schema (top-level keys only).
// Nested maps (e.g. under "properties") are shared; callers must not mutate them.
func (t *Tool) Schema() map[string]any { return maps.Clone(t.schema) }

// Timeout returns the per-tool execution timeout, or 0 to use the dispatcher default.
func (t *Tool) Timeout() time.Duration { return t.opts.timeout }

// parametersFromStruct lists root-level schema properties in struct field
// declaration order. typ may be a pointer or a non-struct (empty result).
func parametersFromStruct(typ reflect.Type, schema map[string]any) []Parameter {
	props, _ := schema["properties"].(map[string]any)
	if typ == nil || len(props) == 0 {
		return nil
	}
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}
	params := make([]Parameter, 0, len(props))
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		jsonTag := strings.Split(field.Tag.Get("json"), ",")[0]
		name := jsonTag
		if name == "" {
			name = field.Name
		}
		if name == "-" {
			continue
		}
		prop, ok := props[name].(map[string]any)
		if !ok {
			continue
		}
		kind, _ := prop["type"].(string)
		if kind == "" {
			kind = "string"
		}
		desc, _ := prop["description"].(string)
		params = append(params, Parameter{Name: name, Kind: kind, Description: desc})
	}
	return params
}

// requiredFromSchema reads the schema's top-level required list.
func requiredFromSchema(schema map[string]any) []string {
	raw, _ := schema["required"].([]any)
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// stringifyResult renders an executor result uniformly: strings verbatim,
// everything else as JSON.
func stringifyResult(v any) (string, error) {
	switch r := v.(type) {
	case nil:
		return "", nil
	case string:
		return r, nil
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", &SystemError{Err: err}
		}
		return string(b), nil
	}
}

// wrapHandlerError passes through ClientError; wraps other errors as SystemError.
func wrapHandlerError(err error) error {
	if err == nil {
		return nil
	}
	if IsClientError(err) {
		return err
	}
	return &SystemError{Err: err}
}
