package cli

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/oasmock/pkg/cli/internal/output"
	"github.com/getmockd/oasmock/pkg/config"
	"github.com/getmockd/oasmock/pkg/httputil"
	"github.com/getmockd/oasmock/pkg/openapi"
)

// ErrNoResponses is returned for an operation that declares no responses.
var ErrNoResponses = errors.New("operation declares no responses")

type generateFlags struct {
	path       string
	method     string
	status     string
	example    string
	accept     string
	locale     string
	seed       uint64
	include    bool
	noValidate bool
}

func newGenerateCmd(g *globalFlags) *cobra.Command {
	f := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "generate <schema>",
		Short: "Print a generated response body for one operation",
		Long: `Generate the response an operation would return and print it to stdout.

The operation is found the way the server finds it: --path is a concrete
request path such as /pets/42, matched against the document's path templates.
JSON bodies are printed indented; string bodies of other media types are
printed as they are.`,
		Example: `  # Body of GET /pets
  oasmock generate petstore.yaml --path /pets

  # The 404 response of GET /pets/1, reproducibly
  oasmock generate petstore.yaml --path /pets/1 --status 404 --seed 7

  # A named example, with status line and headers
  oasmock generate petstore.yaml --path /pets/1 --example cat -i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			setFlag(cmd, cfg, "locale", "locale", &cfg.Locale, f.locale)
			if cmd.Flags().Changed("seed") {
				seed := f.seed
				cfg.Seed = &seed
				cfg.Set("seed", config.SourceFlag)
			}
			setFlag(cmd, cfg, "no-validate", "validate", &cfg.ValidateDocument, !f.noValidate)
			cfg.Schema = args[0]
			cfg.Set("schema", config.SourceFlag)
			if err := cfg.Validate(true); err != nil {
				return err
			}
			return runGenerate(cmd, cfg, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.path, "path", "", "Request path, e.g. /pets/42 (required)")
	flags.StringVarP(&f.method, "method", "X", http.MethodGet, "HTTP method")
	flags.StringVar(&f.status, "status", "", `Response status to use, e.g. 404, 4XX or default`)
	flags.StringVar(&f.example, "example", "", "Name of the example to prefer")
	flags.StringVar(&f.accept, "accept", "", "Accept header used to pick the media type")
	flags.StringVar(&f.locale, "locale", config.DefaultLocale, "Fake data locale (en, de, es)")
	flags.Uint64Var(&f.seed, "seed", 0, "Seed for reproducible fake data")
	flags.BoolVarP(&f.include, "include", "i", false, "Also print the status line and generated headers")
	flags.BoolVar(&f.noValidate, "no-validate", false, "Skip OpenAPI document validation")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func runGenerate(cmd *cobra.Command, cfg *config.Config, f *generateFlags) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	doc, err := openapi.Load(ctx, cfg.Schema,
		openapi.WithValidation(cfg.ValidateDocument),
		openapi.WithLogger(log),
	)
	if err != nil {
		return err
	}

	route, err := doc.FindPath(f.method, f.path)
	if err != nil {
		return err
	}
	op := route.Operation
	resp := op.SelectResponse(f.status)
	if resp == nil {
		return fmt.Errorf("%s %s: %w", op.Method, op.Path, ErrNoResponses)
	}
	if resp.Err != nil {
		return fmt.Errorf("%s %s response %s: %w", op.Method, op.Path, resp.Status, resp.Err)
	}

	gen := newGenerator(cfg, doc.BaseDir, log)
	mt := resp.SelectContent(f.accept)

	if f.include {
		status := resp.StatusCode()
		fmt.Fprintf(out, "HTTP/1.1 %d %s\n", status, http.StatusText(status))
		for _, h := range resp.Headers {
			if strings.EqualFold(h.Name, "Content-Type") {
				continue
			}
			v, err := gen.Generate(ctx, h.Node, "")
			if err != nil {
				return fmt.Errorf("header %s: %w", h.Name, err)
			}
			fmt.Fprintf(out, "%s: %s\n", h.Name, httputil.HeaderValue(v))
		}
		if mt != nil {
			fmt.Fprintf(out, "Content-Type: %s\n", mt.Type)
		}
		fmt.Fprintln(out)
	}

	if mt == nil {
		return nil
	}
	body, err := gen.Generate(ctx, mt.Node, f.example)
	if err != nil {
		return err
	}
	return printBody(out, mt.Type, body)
}

// printBody writes JSON bodies indented and raw strings of other media types
// unchanged.
func printBody(w io.Writer, contentType string, body any) error {
	if s, ok := body.(string); ok && !httputil.IsJSON(contentType) {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	return output.JSON(w, body)
}
