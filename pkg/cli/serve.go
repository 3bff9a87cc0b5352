package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getmockd/oasmock/pkg/config"
	"github.com/getmockd/oasmock/pkg/fetch"
	"github.com/getmockd/oasmock/pkg/openapi"
	"github.com/getmockd/oasmock/pkg/server"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

type serveFlags struct {
	host             string
	port             int
	locale           string
	seed             uint64
	cors             bool
	noValidate       bool
	validateRequests bool
	fetchTimeout     time.Duration
}

func newServeCmd(g *globalFlags) *cobra.Command {
	f := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve [schema]",
		Short: "Start a mock server for an OpenAPI document",
		Long: `Start a mock server for an OpenAPI 3 document given as a file path or URL.

Every operation in the document is served. Clients pick a response with the
Prefer header, e.g. "Prefer: statusCode=404" or "Prefer: example=cat", and a
media type with the Accept header.`,
		Example: `  # Serve a local document on the default port (4010)
  oasmock serve petstore.yaml

  # Serve a remote document on a custom port with CORS enabled
  oasmock serve https://example.com/openapi.yaml --port 3000 --cors

  # Reproducible fake data in German
  oasmock serve petstore.yaml --seed 42 --locale de

  # Reject requests that do not match the document
  oasmock serve petstore.yaml --validate-requests`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if len(args) == 1 {
				cfg.Schema = args[0]
				cfg.Set("schema", config.SourceFlag)
			}
			if err := cfg.Validate(true); err != nil {
				return err
			}
			return runServe(cmd.Context(), cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.host, "host", config.DefaultHost, "Address to bind to")
	flags.IntVarP(&f.port, "port", "p", config.DefaultPort, "HTTP server port (0 picks a free port)")
	flags.StringVar(&f.locale, "locale", config.DefaultLocale, "Fake data locale (en, de, es)")
	flags.Uint64Var(&f.seed, "seed", 0, "Seed for reproducible fake data")
	flags.BoolVar(&f.cors, "cors", false, "Answer CORS preflight requests and add CORS headers")
	flags.BoolVar(&f.noValidate, "no-validate", false, "Skip OpenAPI document validation")
	flags.BoolVar(&f.validateRequests, "validate-requests", false, "Reject requests that do not match their operation with 400")
	flags.DurationVar(&f.fetchTimeout, "fetch-timeout", fetch.DefaultTimeout, "Timeout for externalValue downloads")
	return cmd
}

// apply copies explicitly set serve flags over cfg.
func (f *serveFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	setFlag(cmd, cfg, "host", "host", &cfg.Host, f.host)
	setFlag(cmd, cfg, "port", "port", &cfg.Port, f.port)
	setFlag(cmd, cfg, "locale", "locale", &cfg.Locale, f.locale)
	if cmd.Flags().Changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
		cfg.Set("seed", config.SourceFlag)
	}
	setFlag(cmd, cfg, "cors", "cors", &cfg.CORS, f.cors)
	setFlag(cmd, cfg, "no-validate", "validate", &cfg.ValidateDocument, !f.noValidate)
	setFlag(cmd, cfg, "validate-requests", "validateRequests", &cfg.ValidateRequests, f.validateRequests)
	setFlag(cmd, cfg, "fetch-timeout", "fetchTimeout", &cfg.FetchTimeout, f.fetchTimeout)
}

// runServe loads the document, starts the server and blocks until ctx is
// cancelled or the process receives SIGINT or SIGTERM.
func runServe(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	doc, err := openapi.Load(ctx, cfg.Schema,
		openapi.WithValidation(cfg.ValidateDocument),
		openapi.WithLogger(log),
	)
	if err != nil {
		return err
	}
	log.Info("loaded document",
		"location", doc.Location,
		"title", doc.Title,
		"version", doc.Version,
		"operations", len(doc.Operations),
	)

	srv := server.New(doc, newGenerator(cfg, doc.BaseDir, log),
		server.WithLogger(log),
		server.WithCORS(cfg.CORS),
		server.WithRequestValidation(cfg.ValidateRequests),
	)
	if err := srv.Start(cfg.Addr()); err != nil {
		return err
	}
	printStartupMessage(cmd.OutOrStdout(), doc, srv.Addr())

	// Wait for shutdown signal
	<-ctx.Done()
	fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func printStartupMessage(w io.Writer, doc *openapi.Document, addr string) {
	fmt.Fprintf(w, "oasmock serving %s %s (%d operations)\n", doc.Title, doc.Version, len(doc.Operations))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Mock server: http://%s\n", addr)
	fmt.Fprintf(w, "  Operations:  http://%s%s\n", addr, server.OperationsPath)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Press Ctrl+C to stop")
}
