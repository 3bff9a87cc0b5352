// Package jsonvalue converts JSON text into plain Go values using fastjson.
//
// Numbers without a fraction or exponent become int, other numbers float64,
// matching how yaml.v3 decodes the documents the values are mixed with.
package jsonvalue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/fastjson"
)

// Parse parses a JSON document into string, int, float64, bool, nil, []any or map[string]any.
func Parse(s string) (any, error) {
	var p fastjson.Parser
	v, err := p.Parse(s)
	if err != nil {
		return nil, err
	}
	return convert(v)
}

// ParseArgs parses a comma separated list of JSON values, the body of a call
// like number.int(1, 10). An empty body yields no arguments.
func ParseArgs(body string) ([]any, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	v, err := Parse("[" + body + "]")
	if err != nil {
		return nil, err
	}
	args, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("argument list is not an array")
	}
	return args, nil
}

// Valid reports whether b holds a single well-formed JSON document.
func Valid(b []byte) bool {
	return fastjson.ValidateBytes(b) == nil
}

func convert(v *fastjson.Value) (any, error) {
	switch v.Type() {
	case fastjson.TypeNull:
		return nil, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return nil, err
		}
		return string(b), nil
	case fastjson.TypeNumber:
		return number(v)
	case fastjson.TypeArray:
		items, err := v.Array()
		if err != nil {
			return nil, err
		}
		out := make([]any, 0, len(items))
		for _, item := range items {
			converted, err := convert(item)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	case fastjson.TypeObject:
		obj, err := v.Object()
		if err != nil {
			return nil, err
		}
		out := make(map[string]any, obj.Len())
		var visitErr error
		obj.Visit(func(key []byte, item *fastjson.Value) {
			if visitErr != nil {
				return
			}
			converted, err := convert(item)
			if err != nil {
				visitErr = err
				return
			}
			out[string(key)] = converted
		})
		if visitErr != nil {
			return nil, visitErr
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported JSON type %s", v.Type())
	}
}

func number(v *fastjson.Value) (any, error) {
	raw := v.String()
	if !strings.ContainsAny(raw, ".eE") {
		if n, err := strconv.Atoi(raw); err == nil {
			return n, nil
		}
	}
	return v.Float64()
}
