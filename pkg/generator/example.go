package generator

import (
	"context"
	"fmt"

	"github.com/getmockd/oasmock/pkg/schema"
)

// bestExample picks the example for n. ok is false when no example can be
// determined, which is not an error.
//
// An unmatched preferred name falls back to the first entry. If the first
// entry has no value no other entry is tried.
func (g *Generator) bestExample(ctx context.Context, n *schema.Node, preferred string) (any, bool, error) {
	if n.HasExample {
		v, err := g.external(ctx, n, n.Example)
		return v, err == nil, err
	}
	if preferred != "" {
		if ex, ok := n.NamedExample(preferred); ok && ex.Defined() {
			v, err := g.exampleValue(ctx, n, ex)
			return v, err == nil, err
		}
	}
	if ex, ok := n.FirstExample(); ok && ex.Defined() {
		v, err := g.exampleValue(ctx, n, ex)
		return v, err == nil, err
	}
	return nil, false, nil
}

func (g *Generator) exampleValue(ctx context.Context, n *schema.Node, ex *schema.Example) (any, error) {
	if !ex.HasValue {
		return g.fetch(ctx, n, ex.ExternalValue)
	}
	return g.external(ctx, n, ex.Value)
}

// external returns v, or the fetched payload when v is a mapping carrying an
// externalValue reference.
func (g *Generator) external(ctx context.Context, n *schema.Node, v any) (any, error) {
	if m, ok := v.(map[string]any); ok {
		if url, ok := m["externalValue"].(string); ok && url != "" {
			return g.fetch(ctx, n, url)
		}
	}
	return clone(v), nil
}

func (g *Generator) fetch(ctx context.Context, n *schema.Node, url string) (any, error) {
	v, err := g.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, &Error{Path: n.Path, Err: fmt.Errorf("%w: %s: %w", ErrFetch, url, err)}
	}
	return v, nil
}
