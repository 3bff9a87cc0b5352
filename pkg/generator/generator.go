package generator

import (
	"context"
	"log/slog"
	mathrand "math/rand/v2"

	"github.com/getmockd/oasmock/pkg/faker"
	"github.com/getmockd/oasmock/pkg/fetch"
	"github.com/getmockd/oasmock/pkg/logging"
	"github.com/getmockd/oasmock/pkg/schema"
)

// Provider produces fake values for x-faker directives.
type Provider interface {
	HasMethod(namespace, method string) bool
	Invoke(namespace, method string, args []any) (any, error)
	ExpandTemplate(template string) (any, error)
}

// Fetcher retrieves externalValue example payloads.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (any, error)
}

// Rand is the random source used to pick enum values.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return mathrand.IntN(n) }

// Generator produces sample values from schema nodes. It holds no per-call
// state and is safe for concurrent use when its collaborators are.
type Generator struct {
	provider Provider
	fetcher  Fetcher
	rand     Rand
	log      *slog.Logger
	// allOfLimit bounds how many allOf branches are generated at once.
	allOfLimit int
}

// Option configures a Generator.
type Option func(*Generator)

// WithProvider sets the fake-data provider for x-faker directives.
func WithProvider(p Provider) Option {
	return func(g *Generator) {
		if p != nil {
			g.provider = p
		}
	}
}

// WithFetcher sets the fetcher for externalValue examples.
func WithFetcher(f Fetcher) Option {
	return func(g *Generator) {
		if f != nil {
			g.fetcher = f
		}
	}
}

// WithRand sets the random source for enum selection. Pass the same seeded
// *faker.Faker used as provider to make whole responses reproducible.
func WithRand(r Rand) Option {
	return func(g *Generator) {
		if r != nil {
			g.rand = r
		}
	}
}

// WithConcurrency lets up to n allOf branches generate at once. Branches then
// draw from the provider in scheduling order, so seeded output is only
// reproducible with the default of 1.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.allOfLimit = n
		}
	}
}

// WithLogger sets the logger that receives directive fallback warnings.
func WithLogger(log *slog.Logger) Option {
	return func(g *Generator) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a Generator. Without options it uses an unseeded English
// faker, a fetcher with default timeout and a no-op logger.
func New(opts ...Option) *Generator {
	g := &Generator{
		provider: faker.New(),
		fetcher:  fetch.New(),
		rand:     globalRand{},
		log:      logging.Nop(),

		allOfLimit: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a sample value for n. The priority is:
//  1. example, or the preferred/first named example
//  2. enum (random pick)
//  3. for a response wrapper, its schema; otherwise GenerateBySchema
func (g *Generator) Generate(ctx context.Context, n *schema.Node, preferredExample string) (any, error) {
	if n == nil {
		return nil, &Error{Err: ErrUnknownType}
	}

	if n.HasExample || n.HasNamedExamples() {
		v, ok, err := g.bestExample(ctx, n, preferredExample)
		if err != nil {
			return nil, err
		}
		if ok {
			return v, nil
		}
	}

	if len(n.Enum) > 0 {
		return clone(n.Enum[g.rand.IntN(len(n.Enum))]), nil
	}

	if n.Kind == schema.KindResponse {
		if n.Schema == nil {
			return nil, &Error{Path: n.Path, Err: ErrUnknownType}
		}
		return g.Generate(ctx, n.Schema, "")
	}
	return g.GenerateBySchema(ctx, n)
}

// resolver is one link of the GenerateBySchema chain. matched is false when the
// node has nothing for this link to work with.
type resolver func(ctx context.Context, n *schema.Node) (v any, matched bool, err error)

// GenerateBySchema resolves a type node by trying, in order: the x-faker
// directive, example, the first of an examples list, allOf, the first oneOf or
// anyOf branch, and finally the declared type.
func (g *Generator) GenerateBySchema(ctx context.Context, n *schema.Node) (any, error) {
	chain := []resolver{
		g.byDirective,
		g.byExample,
		g.byExampleList,
		g.byAllOf,
		g.byFirstBranch,
		g.byType,
	}
	for _, resolve := range chain {
		v, matched, err := resolve(ctx, n)
		if err != nil {
			return nil, err
		}
		if matched {
			return v, nil
		}
	}
	return nil, &Error{Path: n.Path, Err: ErrUnknownType}
}

func (g *Generator) byDirective(_ context.Context, n *schema.Node) (any, bool, error) {
	if !n.HasFaker || n.Faker == "" {
		return nil, false, nil
	}
	v, err := g.evalDirective(n.Faker)
	if err != nil {
		g.log.Warn("failed to generate fake value, falling back to schema",
			"directive", n.Faker,
			"path", pathOf(n),
			"error", err,
		)
		return nil, false, nil
	}
	return v, true, nil
}

func (g *Generator) byExample(ctx context.Context, n *schema.Node) (any, bool, error) {
	if !n.HasExample {
		return nil, false, nil
	}
	v, err := g.external(ctx, n, n.Example)
	return v, err == nil, err
}

func (g *Generator) byExampleList(_ context.Context, n *schema.Node) (any, bool, error) {
	if len(n.ExampleList) == 0 {
		return nil, false, nil
	}
	return clone(n.ExampleList[0]), true, nil
}

func (g *Generator) byFirstBranch(ctx context.Context, n *schema.Node) (any, bool, error) {
	var branch *schema.Node
	switch {
	case len(n.OneOf) > 0:
		branch = n.OneOf[0]
	case len(n.AnyOf) > 0:
		branch = n.AnyOf[0]
	default:
		return nil, false, nil
	}
	v, err := g.Generate(ctx, branch, "")
	return v, err == nil, err
}

func pathOf(n *schema.Node) string {
	if n.Path == "" {
		return "#"
	}
	return n.Path
}
