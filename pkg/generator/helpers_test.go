package generator

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/getmockd/oasmock/pkg/schema"
)

type call struct {
	Namespace string
	Method    string
	Args      []any
}

// recordingProvider answers every registered method with a fixed value and
// records the calls it receives.
type recordingProvider struct {
	mu        sync.Mutex
	results   map[string]any
	failWith  error
	calls     []call
	templates []string
}

func newProvider(results map[string]any) *recordingProvider {
	return &recordingProvider{results: results}
}

func (p *recordingProvider) HasMethod(namespace, method string) bool {
	_, ok := p.results[namespace+"."+method]
	return ok
}

func (p *recordingProvider) Invoke(namespace, method string, args []any) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, call{namespace, method, args})
	if p.failWith != nil {
		return nil, p.failWith
	}
	return p.results[namespace+"."+method], nil
}

func (p *recordingProvider) ExpandTemplate(template string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.templates = append(p.templates, template)
	return "expanded:" + template, nil
}

func (p *recordingProvider) Calls() []call {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]call(nil), p.calls...)
}

// fakeFetcher serves canned payloads by URL.
type fakeFetcher struct {
	mu     sync.Mutex
	values map[string]any
	urls   []string
}

var errNotFound = errors.New("not found")

func (f *fakeFetcher) Fetch(_ context.Context, url string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	v, ok := f.values[url]
	if !ok {
		return nil, errNotFound
	}
	return v, nil
}

// recordingHandler captures log records.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) Count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

// fixedRand always picks the same index, clamped to n.
type fixedRand int

func (r fixedRand) IntN(n int) int {
	if int(r) >= n {
		return n - 1
	}
	return int(r)
}

// testGenerator wires the fakes together.
func testGenerator(p *recordingProvider, f *fakeFetcher) (*Generator, *recordingHandler) {
	h := &recordingHandler{}
	if p == nil {
		p = newProvider(nil)
	}
	if f == nil {
		f = &fakeFetcher{}
	}
	return New(WithProvider(p), WithFetcher(f), WithLogger(slog.New(h))), h
}

func str() *schema.Node     { return &schema.Node{Type: "string"} }
func integer() *schema.Node { return &schema.Node{Type: "integer"} }

func object(props ...any) *schema.Node {
	p := schema.NewProperties()
	for i := 0; i+1 < len(props); i += 2 {
		p.Set(props[i].(string), props[i+1].(*schema.Node))
	}
	return &schema.Node{Type: "object", Properties: p}
}
