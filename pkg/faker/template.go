package faker

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/getmockd/oasmock/internal/jsonvalue"
)

// templateRegex matches {{expression}} patterns with optional whitespace.
var templateRegex = regexp.MustCompile(`\{\{\s*([^}]+?)\s*\}\}`)

// callPattern matches namespace.method with an optional argument list.
var callPattern = regexp.MustCompile(`^(\w+)\.(\w+)(?:\((.*)\))?$`)

// ExpandTemplate replaces each {{namespace.method(args)}} placeholder in tmpl
// with the generated value, as faker.helpers.fake does. A template that is
// exactly one placeholder returns the raw value so numbers and booleans keep
// their type.
func (f *Faker) ExpandTemplate(tmpl string) (any, error) {
	if m := templateRegex.FindStringSubmatchIndex(tmpl); m != nil && m[0] == 0 && m[1] == len(tmpl) {
		return f.evaluate(tmpl[m[2]:m[3]])
	}

	var firstErr error
	result := templateRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		if firstErr != nil {
			return match
		}
		inner := templateRegex.FindStringSubmatch(match)
		v, err := f.evaluate(inner[1])
		if err != nil {
			firstErr = err
			return match
		}
		return formatValue(v)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

func (f *Faker) evaluate(expr string) (any, error) {
	expr = strings.TrimSpace(expr)
	m := callPattern.FindStringSubmatch(expr)
	if m == nil {
		return nil, fmt.Errorf("faker: invalid template expression %q", expr)
	}
	args, err := jsonvalue.ParseArgs(m[3])
	if err != nil {
		return nil, fmt.Errorf("faker: invalid arguments in %q: %w", expr, err)
	}
	return f.Invoke(m[1], m[2], args)
}

// formatValue converts an arbitrary value to a string representation.
func formatValue(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
