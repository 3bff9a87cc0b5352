package openapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
)

// Routing errors returned by Find.
var (
	ErrPathNotFound     = errors.New("no matching operation was found")
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// maxValidationBodySize bounds how much of a request body is buffered for
// validation.
const maxValidationBodySize = 10 << 20

// Document is a loaded OpenAPI document: the ordered operation model used for
// generation plus the kin-openapi spec and router used for matching.
type Document struct {
	Title    string
	Version  string
	Location string
	// BaseDir is where relative externalValue paths are resolved.
	BaseDir string

	// Operations in declared order (paths, then methods get, put, post,
	// delete, options, head, patch, trace).
	Operations []*Operation

	spec   *openapi3.T
	router routers.Router
	index  map[string]*Operation
}

// Route is a request matched to an operation.
type Route struct {
	Operation  *Operation
	PathParams map[string]string

	route *routers.Route
}

// Spec returns the underlying kin-openapi document.
func (d *Document) Spec() *openapi3.T {
	return d.spec
}

// Operation returns the operation declared for method on a path template.
func (d *Document) Operation(method, path string) (*Operation, bool) {
	op, ok := d.index[routeKey(method, path)]
	return op, ok
}

// Find matches a request to an operation. Unknown paths yield
// ErrPathNotFound, known paths with another method ErrMethodNotAllowed.
func (d *Document) Find(r *http.Request) (*Route, error) {
	kr, params, err := d.router.FindRoute(r)
	if err != nil {
		switch {
		case errors.Is(err, routers.ErrMethodNotAllowed):
			return nil, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, r.Method, r.URL.Path)
		case errors.Is(err, routers.ErrPathNotFound):
			return nil, fmt.Errorf("%w: %s %s", ErrPathNotFound, r.Method, r.URL.Path)
		default:
			return nil, err
		}
	}
	op, ok := d.Operation(kr.Method, kr.Path)
	if !ok {
		return nil, fmt.Errorf("%w: %s %s", ErrPathNotFound, r.Method, r.URL.Path)
	}
	return &Route{Operation: op, PathParams: params, route: kr}, nil
}

// FindPath matches a method and a concrete request path such as "/pets/42".
func (d *Document) FindPath(method, path string) (*Route, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	r, err := http.NewRequest(strings.ToUpper(method), path, nil)
	if err != nil {
		return nil, err
	}
	return d.Find(r)
}

// ValidateRequest checks parameters and body of r against the matched
// operation. Security requirements are not enforced. The body is restored so
// it can be read again.
func (d *Document) ValidateRequest(r *http.Request, route *Route) error {
	if r.Body != nil && r.Body != http.NoBody {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxValidationBodySize))
		if err != nil {
			return fmt.Errorf("read request body: %w", err)
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
		defer func() { r.Body = io.NopCloser(bytes.NewReader(body)) }()
	}

	return openapi3filter.ValidateRequest(r.Context(), &openapi3filter.RequestValidationInput{
		Request:    r,
		PathParams: route.PathParams,
		Route:      route.route,
		Options: &openapi3filter.Options{
			MultiError:         true,
			AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
		},
	})
}

// newRouter builds a gorilla/mux router over a copy of spec whose servers are
// reduced to their base paths, so requests to the mock's own host match. The
// root "/" is always added so paths also match without the base path.
func newRouter(spec *openapi3.T) (routers.Router, error) {
	routing := *spec
	routing.Servers = nil
	seen := map[string]bool{}
	for _, s := range spec.Servers {
		base, err := s.BasePath()
		if err != nil || seen[base] {
			continue
		}
		seen[base] = true
		routing.Servers = append(routing.Servers, &openapi3.Server{URL: base})
	}
	if !seen["/"] {
		routing.Servers = append(routing.Servers, &openapi3.Server{URL: "/"})
	}
	return gorillamux.NewRouter(&routing)
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
