package openapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/oasmock/pkg/logging"
)

// ErrInvalidDocument wraps load and validation failures.
var ErrInvalidDocument = errors.New("invalid OpenAPI document")

type loadOptions struct {
	validate bool
	client   *http.Client
	log      *slog.Logger
}

// Option configures Load.
type Option func(*loadOptions)

// WithValidation enables or disables document validation (enabled by default).
// Example values are never validated against their schemas.
func WithValidation(enabled bool) Option {
	return func(o *loadOptions) {
		o.validate = enabled
	}
}

// WithHTTPClient sets the client used to read documents and external refs
// served over HTTP.
func WithHTTPClient(c *http.Client) Option {
	return func(o *loadOptions) {
		if c != nil {
			o.client = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(o *loadOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// Load reads an OpenAPI 3 document from a file path or an http(s) URL.
//
// The document is parsed twice from the same bytes: kin-openapi resolves and
// validates it and builds the router, and yaml.v3 builds the ordered
// operation model the generator works on.
func Load(ctx context.Context, location string, opts ...Option) (*Document, error) {
	o := &loadOptions{
		validate: true,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	u, baseDir := locate(location)

	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true
	loader.ReadFromURIFunc = openapi3.ReadFromURIs(openapi3.ReadFromHTTP(o.client), openapi3.ReadFromFile)

	data, err := loader.ReadFromURIFunc(loader, u)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", location, err)
	}
	return load(ctx, loader, data, u, baseDir, o)
}

// LoadData parses a document held in memory. Relative external refs and
// externalValue paths resolve against baseDir.
func LoadData(ctx context.Context, data []byte, baseDir string, opts ...Option) (*Document, error) {
	o := &loadOptions{validate: true, client: http.DefaultClient, log: logging.Nop()}
	for _, opt := range opts {
		opt(o)
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true
	u := &url.URL{Path: filepath.ToSlash(filepath.Join(baseDir, "openapi.yaml"))}
	return load(ctx, loader, data, u, baseDir, o)
}

func load(ctx context.Context, loader *openapi3.Loader, data []byte, u *url.URL, baseDir string, o *loadOptions) (*Document, error) {
	start := time.Now()

	spec, err := loader.LoadFromDataWithPath(data, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	if spec.OpenAPI == "" || !strings.HasPrefix(spec.OpenAPI, "3.") {
		return nil, fmt.Errorf("%w: unsupported openapi version %q (3.x required)", ErrInvalidDocument, spec.OpenAPI)
	}
	if o.validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}
	title, version, ops, err := decodeOperations(&root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	doc := &Document{
		Title:      title,
		Version:    version,
		Location:   u.String(),
		BaseDir:    baseDir,
		Operations: ops,
		spec:       spec,
		index:      make(map[string]*Operation, len(ops)),
	}
	for _, op := range ops {
		doc.index[routeKey(op.Method, op.Path)] = op
	}
	if doc.router, err = newRouter(spec); err != nil {
		return nil, fmt.Errorf("%w: build router: %w", ErrInvalidDocument, err)
	}

	for _, op := range ops {
		for _, r := range op.Responses {
			if r.Err != nil {
				o.log.Warn("response cannot be generated",
					"operation", op.Method+" "+op.Path,
					"status", r.Status,
					"error", r.Err,
				)
			}
		}
	}
	o.log.Debug("loaded OpenAPI document",
		"location", doc.Location,
		"title", title,
		"operations", len(ops),
		"validated", o.validate,
		"duration", time.Since(start),
	)
	return doc, nil
}

// locate turns a CLI argument into a URL for the kin-openapi readers plus the
// directory relative references resolve against.
func locate(location string) (*url.URL, string) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if u, err := url.Parse(location); err == nil {
			base := *u
			base.Path = strings.TrimSuffix(u.Path, "/"+lastSegment(u.Path))
			return u, base.String()
		}
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		abs = location
	}
	return &url.URL{Path: filepath.ToSlash(abs)}, filepath.Dir(abs)
}

func lastSegment(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
