package generator

import (
	"fmt"
	"regexp"

	"github.com/getmockd/oasmock/internal/jsonvalue"
)

var (
	// templatePattern detects the template form: "{{person.firstName}} {{person.lastName}}".
	templatePattern = regexp.MustCompile(`\{\{.+\}\}`)

	// callPattern matches the call form: "person.firstName" or "number.int(1, 10)".
	callPattern = regexp.MustCompile(`^(\w+)\.(\w+)(?:\((.*)\))?$`)
)

// evalDirective evaluates an x-faker directive through the provider.
func (g *Generator) evalDirective(directive string) (any, error) {
	if templatePattern.MatchString(directive) {
		v, err := g.provider.ExpandTemplate(directive)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", directive, err)
		}
		return v, nil
	}

	m := callPattern.FindStringSubmatch(directive)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrDirectiveFormat, directive)
	}
	namespace, method, body := m[1], m[2], m[3]

	if !g.provider.HasMethod(namespace, method) {
		return nil, fmt.Errorf("%w: '%s.%s'", ErrMethodNotFound, namespace, method)
	}

	args, err := jsonvalue.ParseArgs(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDirectiveArgs, body, err)
	}
	if args == nil {
		args = []any{}
	}

	v, err := g.provider.Invoke(namespace, method, args)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: %w", namespace, method, err)
	}
	return v, nil
}
