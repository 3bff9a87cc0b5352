package generator

import (
	"context"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/getmockd/oasmock/pkg/schema"
)

// maxCount caps x-count so a typo like "1e9" cannot exhaust memory.
const maxCount = 1 << 16

// byAllOf generates the branches, at most allOfLimit at a time, and merges the
// resulting objects in branch order. Later branches win on key collisions.
func (g *Generator) byAllOf(ctx context.Context, n *schema.Node) (any, bool, error) {
	if len(n.AllOf) == 0 {
		return nil, false, nil
	}

	results := make([]any, len(n.AllOf))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.allOfLimit)
	for i, branch := range n.AllOf {
		eg.Go(func() error {
			v, err := g.Generate(egCtx, branch, "")
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, false, err
	}

	merged := make(map[string]any)
	for i, v := range results {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil, false, &Error{
				Path: fmt.Sprintf("%s/allOf/%d", pathOf(n), i),
				Err:  ErrAllOfNotObject,
			}
		}
		maps.Copy(merged, obj)
	}
	return merged, true, nil
}

// byType is the terminal link: it always matches or fails.
func (g *Generator) byType(ctx context.Context, n *schema.Node) (any, bool, error) {
	switch n.Type {
	case "array":
		v, err := g.array(ctx, n)
		return v, err == nil, err
	case "object":
		v, err := g.object(ctx, n)
		return v, err == nil, err
	case "string":
		return "string", true, nil
	case "number", "integer":
		return 1, true, nil
	case "boolean":
		return true, true, nil
	case "":
		return nil, false, &Error{Path: n.Path, Err: ErrUnknownType}
	default:
		return nil, false, &Error{Path: n.Path, Err: fmt.Errorf("%w: %q", ErrUnknownType, n.Type)}
	}
}

// array generates count(n) items sequentially, in order. A missing items schema
// yields an untyped node, which fails with ErrUnknownType.
func (g *Generator) array(ctx context.Context, n *schema.Node) ([]any, error) {
	items := n.Items
	if items == nil {
		items = &schema.Node{Kind: schema.KindType, Path: pathOf(n) + "/items"}
	}

	count := countOf(n)
	out := make([]any, 0, count)
	for range count {
		v, err := g.Generate(ctx, items, "")
		if err != nil {
			return nil, fail(items.Path, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// object generates properties in declared order so provider calls and fetches
// happen in a reproducible sequence.
func (g *Generator) object(ctx context.Context, n *schema.Node) (map[string]any, error) {
	if n.Properties == nil {
		return map[string]any{}, nil
	}
	out := make(map[string]any, n.Properties.Len())
	for name, prop := range n.Properties.All() {
		v, err := g.Generate(ctx, prop, "")
		if err != nil {
			return nil, fail(prop.Path, err)
		}
		out[name] = v
	}
	return out, nil
}

// countOf reads x-count as a number. Absent, unparseable or < 1 means 1;
// fractions are truncated.
func countOf(n *schema.Node) int {
	if !n.HasCount {
		return 1
	}
	var f float64
	switch c := n.Count.(type) {
	case int:
		f = float64(c)
	case int64:
		f = float64(c)
	case uint64:
		f = float64(c)
	case float64:
		f = c
	case string:
		s := strings.TrimSpace(c)
		if s == "" {
			return 1
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 1
		}
		f = parsed
	default:
		return 1
	}
	if math.IsNaN(f) || f < 1 {
		return 1
	}
	if f > maxCount {
		return maxCount
	}
	return int(f)
}

// clone deep-copies JSON-like values so callers never share schema data.
// Mappings with non-string keys, which yaml.v3 can produce, are converted to
// map[string]any.
func clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = clone(x)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[fmt.Sprint(k)] = clone(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = clone(x)
		}
		return out
	default:
		return v
	}
}
