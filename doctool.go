package reagent

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// NewDocTool builds a Tool from a plain documented function, for callables
// that predate the declarative path. Parameter types come from the function
// signature; parameter names and descriptions come from the doc text, which
// follows a narrow two-part grammar:
//
//	<one-line summary>
//
//	Args:
//	    <parameter name>: <description>
//
// The Args section lists one line per declared parameter, in declaration
// order. An optional leading context.Context parameter is excluded. A pointer
// parameter is optional (nil when the model omits it); value parameters are
// required. Returns a SchemaError when fn is not a function, the doc text is
// empty, or the Args section does not match the signature.
func NewDocTool(name, doc string, fn any, opts ...ToolOption) (*Tool, error) {
	if name == "" {
		return nil, &SchemaError{Reason: "tool must have a name"}
	}
	if fn == nil {
		return nil, &SchemaError{Tool: name, Reason: "tool function must not be nil"}
	}
	fnVal := reflect.ValueOf(fn)
	fnType := fnVal.Type()
	if fnType.Kind() != reflect.Func {
		return nil, &SchemaError{Tool: name, Reason: "tool executor must be a function"}
	}
	if fnType.IsVariadic() {
		return nil, &SchemaError{Tool: name, Reason: "variadic functions are not supported"}
	}
	if strings.TrimSpace(doc) == "" {
		return nil, &SchemaError{Tool: name, Reason: "tool function must have documentation"}
	}
	var o toolOptions
	for _, opt := range opts {
		opt(&o)
	}

	summary, docArgs, err := parseDoc(doc)
	if err != nil {
		return nil, &SchemaError{Tool: name, Reason: err.Error()}
	}

	takesCtx := fnType.NumIn() > 0 && isContextType(fnType.In(0))
	offset := 0
	if takesCtx {
		offset = 1
	}
	declared := fnType.NumIn() - offset
	if declared != len(docArgs) {
		return nil, &SchemaError{
			Tool: name,
			Reason: fmt.Sprintf("Args section lists %d parameters, function declares %d",
				len(docArgs), declared),
		}
	}
	if err := checkDocResults(fnType); err != nil {
		return nil, &SchemaError{Tool: name, Reason: err.Error()}
	}

	parameters := make([]Parameter, 0, declared)
	required := make([]string, 0, declared)
	paramTypes := make([]reflect.Type, 0, declared)
	properties := make(map[string]any, declared)
	for i, arg := range docArgs {
		pt := fnType.In(offset + i)
		desc := arg.desc
		if desc == "" {
			desc = fmt.Sprintf("The %s parameter.", arg.name)
		}
		p := Parameter{Name: arg.name, Kind: kindOf(pt), Description: desc}
		parameters = append(parameters, p)
		paramTypes = append(paramTypes, pt)
		if pt.Kind() != reflect.Pointer {
			required = append(required, arg.name)
		}
		properties[arg.name] = map[string]any{"type": p.Kind, "description": p.Description}
	}
	schema := map[string]any{"type": "object", "properties": properties}
	if len(required) > 0 {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		schema["required"] = req
	}

	execute := func(ctx context.Context, argsJSON []byte) (string, error) {
		in, err := bindDocArgs(argsJSON, parameters, paramTypes)
		if err != nil {
			return "", err
		}
		if takesCtx {
			in = append([]reflect.Value{reflect.ValueOf(ctx)}, in...)
		}
		return callDocFunc(fnVal, in)
	}
	return &Tool{
		name:       name,
		summary:    summary,
		parameters: parameters,
		required:   required,
		schema:     schema,
		execute:    execute,
		opts:       o,
	}, nil
}

// docParam is one parsed Args line.
type docParam struct {
	name string
	desc string
}

// docSectionHeaders end the Args section when present on their own line.
var docSectionHeaders = map[string]bool{
	"Returns:":  true,
	"Raises:":   true,
	"Examples:": true,
}

// parseDoc splits doc text into a first-line summary and the Args section.
// The Args section runs from the line "Args:" to the first blank line or
// section header; each line inside it must be "<name>: <description>".
func parseDoc(doc string) (string, []docParam, error) {
	lines := strings.Split(doc, "\n")
	summary := ""
	argsAt := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if summary == "" && trimmed != "" {
			summary = trimmed
			continue
		}
		if trimmed == "Args:" {
			argsAt = i + 1
			break
		}
	}
	if summary == "" {
		return "", nil, fmt.Errorf("documentation has no summary line")
	}
	if argsAt < 0 {
		return summary, nil, nil
	}
	var params []docParam
	for _, line := range lines[argsAt:] {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || docSectionHeaders[trimmed] {
			break
		}
		name, desc, ok := strings.Cut(trimmed, ":")
		if !ok {
			return "", nil, fmt.Errorf("malformed Args line %q: expected \"name: description\"", trimmed)
		}
		params = append(params, docParam{
			name: strings.TrimSpace(name),
			desc: strings.TrimSpace(desc),
		})
	}
	return summary, params, nil
}

// kindOf maps a Go type to a JSON Schema type. Pointers use the element type;
// unknown kinds fall back to string.
func kindOf(t reflect.Type) string {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "string"
	}
}

var (
	ctxType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType = reflect.TypeOf((*error)(nil)).Elem()
)

func isContextType(t reflect.Type) bool {
	return t.Kind() == reflect.Interface && t.Implements(ctxType) && ctxType.Implements(t)
}

// checkDocResults accepts func() R, func() (R, error), or func() error.
func checkDocResults(t reflect.Type) error {
	switch t.NumOut() {
	case 0:
		return fmt.Errorf("function must return a result")
	case 1:
		return nil
	case 2:
		if t.Out(1) != errType {
			return fmt.Errorf("second return value must be error")
		}
		return nil
	default:
		return fmt.Errorf("function returns too many values")
	}
}

// bindDocArgs decodes the action input object and binds each named argument to
// its positional parameter. Missing optional (pointer) parameters bind to nil;
// missing required and unknown arguments are ClientErrors so the model can
// correct itself.
func bindDocArgs(argsJSON []byte, parameters []Parameter, paramTypes []reflect.Type) ([]reflect.Value, error) {
	input := map[string]json.RawMessage{}
	if len(argsJSON) > 0 {
		if err := json.Unmarshal(argsJSON, &input); err != nil {
			return nil, &ClientError{Reason: "action input must be a JSON object: " + err.Error()}
		}
	}
	known := make(map[string]bool, len(parameters))
	for _, p := range parameters {
		known[p.Name] = true
	}
	for key := range input {
		if !known[key] {
			return nil, &ClientError{Reason: fmt.Sprintf("unknown argument %q", key), Err: ErrValidation}
		}
	}
	in := make([]reflect.Value, len(parameters))
	for i, p := range parameters {
		pt := paramTypes[i]
		raw, present := input[p.Name]
		if !present {
			if pt.Kind() != reflect.Pointer {
				return nil, &ClientError{Reason: fmt.Sprintf("missing required argument %q", p.Name), Err: ErrValidation}
			}
			in[i] = reflect.Zero(pt)
			continue
		}
		target := reflect.New(pt)
		if err := json.Unmarshal(raw, target.Interface()); err != nil {
			return nil, &ClientError{Reason: fmt.Sprintf("argument %q: %s", p.Name, err.Error()), Err: ErrValidation}
		}
		in[i] = target.Elem()
	}
	return in, nil
}

// callDocFunc invokes the reflected function and stringifies its result.
func callDocFunc(fn reflect.Value, in []reflect.Value) (string, error) {
	out := fn.Call(in)
	last := out[len(out)-1]
	if last.Type() == errType {
		if !last.IsNil() {
			return "", wrapHandlerError(last.Interface().(error))
		}
		if len(out) == 1 {
			return "", nil
		}
	}
	res := out[0]
	if res.Type() == errType {
		return "", nil
	}
	return stringifyResult(res.Interface())
}
