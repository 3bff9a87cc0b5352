// Package fetch retrieves externalValue example payloads over HTTP(S) or from
// local files.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/getmockd/oasmock/internal/jsonvalue"
	"github.com/getmockd/oasmock/pkg/logging"
)

// DefaultTimeout bounds a single HTTP fetch.
const DefaultTimeout = 10 * time.Second

// ErrUnsupportedURI is returned for locations that are neither HTTP(S) URLs
// nor file paths.
var ErrUnsupportedURI = errors.New("unsupported URI")

// Fetcher reads external example payloads. Bodies that are valid JSON are
// decoded; anything else is returned as a string. Nothing is cached.
type Fetcher struct {
	client  *http.Client
	baseDir string
	log     *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.client.Timeout = d
		}
	}
}

// WithClient replaces the HTTP client.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithBaseDir sets the directory relative locations are resolved against,
// normally the directory of the OpenAPI document. It may be an http(s) URL
// when the document itself was loaded over HTTP.
func WithBaseDir(dir string) Option {
	return func(f *Fetcher) {
		f.baseDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(f *Fetcher) {
		if log != nil {
			f.log = log
		}
	}
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: DefaultTimeout},
		log:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch reads the resource at location and decodes it.
func (f *Fetcher) Fetch(ctx context.Context, location string) (any, error) {
	u, err := f.resolve(location)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	read := openapi3.ReadFromURIs(f.readHTTP(ctx), openapi3.ReadFromFile)
	body, err := read(nil, u)
	if err != nil {
		if errors.Is(err, openapi3.ErrURINotSupported) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedURI, location)
		}
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	f.log.Debug("fetched external value",
		"location", u.String(),
		"bytes", len(body),
		"duration", time.Since(start),
	)

	if jsonvalue.Valid(body) {
		return jsonvalue.Parse(string(body))
	}
	return string(body), nil
}

func (f *Fetcher) resolve(location string) (*url.URL, error) {
	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsupportedURI, location, err)
	}
	relative := u.Scheme == "" && u.Host == "" && !filepath.IsAbs(filepath.FromSlash(u.Path))
	if !relative || f.baseDir == "" {
		return u, nil
	}
	if strings.HasPrefix(f.baseDir, "http://") || strings.HasPrefix(f.baseDir, "https://") {
		base, err := url.Parse(strings.TrimSuffix(f.baseDir, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("%w: base %s: %w", ErrUnsupportedURI, f.baseDir, err)
		}
		return base.ResolveReference(u), nil
	}
	u.Path = filepath.ToSlash(filepath.Join(f.baseDir, filepath.FromSlash(u.Path)))
	return u, nil
}

// readHTTP is openapi3.ReadFromHTTP with the request bound to ctx.
func (f *Fetcher) readHTTP(ctx context.Context) openapi3.ReadFromURIFunc {
	return func(_ *openapi3.Loader, location *url.URL) ([]byte, error) {
		if location.Scheme != "http" && location.Scheme != "https" {
			return nil, openapi3.ErrURINotSupported
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, location.String(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := f.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode > 399 {
			return nil, fmt.Errorf("request returned status code %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}
}
