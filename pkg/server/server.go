package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/getmockd/oasmock/pkg/logging"
	"github.com/getmockd/oasmock/pkg/openapi"
	"github.com/getmockd/oasmock/pkg/schema"
)

// Default HTTP timeouts.
const (
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// ErrAlreadyRunning is returned by Start on a running server.
var ErrAlreadyRunning = errors.New("server is already running")

// Generator produces a value for a response or header node. It is satisfied
// by *generator.Generator.
type Generator interface {
	Generate(ctx context.Context, n *schema.Node, preferredExample string) (any, error)
}

// Server answers requests for the operations of one OpenAPI document with
// generated responses.
type Server struct {
	doc      *openapi.Document
	gen      Generator
	log      *slog.Logger
	cors     bool
	validate bool

	handler http.Handler

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
	done       chan struct{}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for access logs and generation failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCORS answers preflight requests and adds permissive CORS headers.
func WithCORS(enabled bool) Option {
	return func(s *Server) {
		s.cors = enabled
	}
}

// WithRequestValidation rejects requests whose parameters or body do not
// match the operation with 400 Bad Request.
func WithRequestValidation(enabled bool) Option {
	return func(s *Server) {
		s.validate = enabled
	}
}

// New creates a server for doc that generates responses with gen.
func New(doc *openapi.Document, gen Generator, opts ...Option) *Server {
	s := &Server{
		doc: doc,
		gen: gen,
		log: logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET "+OperationsPath, s.handleOperations)
	mux.HandleFunc("/", s.handleMock)

	var h http.Handler = mux
	if s.cors {
		h = corsMiddleware(h)
	}
	h = accessLogMiddleware(h, s.log)
	h = requestIDMiddleware(h)
	h = recoveryMiddleware(h, s.log)
	s.handler = h
	return s
}

// Handler returns the full middleware chain, for use with httptest or an
// existing http.Server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start listens on addr and serves in the background. Use Addr to learn the
// bound address when addr has port 0.
func (s *Server) Start(addr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.httpServer != nil {
		return ErrAlreadyRunning
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:      s.handler,
		ReadTimeout:  DefaultReadTimeout,
		WriteTimeout: DefaultWriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.log.Handler(), slog.LevelWarn),
	}
	done := make(chan struct{})

	s.httpServer = srv
	s.listener = ln
	s.done = done

	s.log.Info("starting mock server",
		"addr", ln.Addr().String(),
		"title", s.doc.Title,
		"operations", len(s.doc.Operations),
		"cors", s.cors,
		"validate_requests", s.validate,
	)
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", "error", err)
		}
	}()
	return nil
}

// Addr returns the address the server listens on, or "" when stopped.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done. It is a no-op on a stopped server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv, done := s.httpServer, s.done
	s.httpServer, s.listener, s.done = nil, nil, nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP shutdown: %w", err)
	}
	<-done
	s.log.Info("mock server stopped")
	return nil
}
