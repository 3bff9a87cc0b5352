package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/getmockd/oasmock/pkg/openapi"
)

// ErrValidationFailed is returned when at least one document is invalid.
var ErrValidationFailed = errors.New("validation failed")

func newValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <glob|url>...",
		Short: "Check that OpenAPI documents load and can be mocked",
		Long: `Load every matching document, validate it, and decode all of its responses.

Patterns support ** for recursive matching. URLs are loaded as they are. The
command exits non-zero if any document fails or a pattern matches nothing.`,
		Example: `  # A single document
  oasmock validate petstore.yaml

  # Every YAML document below specs/
  oasmock validate 'specs/**/*.yaml'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(cmd)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			locations, err := expandLocations(args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, loc := range locations {
				doc, err := openapi.Load(cmd.Context(), loc,
					openapi.WithValidation(true),
					openapi.WithLogger(log),
				)
				if err == nil {
					err = responseErrors(doc)
				}
				if err != nil {
					failed++
					fmt.Fprintf(out, "FAIL  %s\n", loc)
					printIndented(out, err.Error())
					continue
				}
				fmt.Fprintf(out, "ok    %s (%s %s, %d operations)\n", loc, doc.Title, doc.Version, len(doc.Operations))
			}

			if failed > 0 {
				return fmt.Errorf("%w: %d of %d documents", ErrValidationFailed, failed, len(locations))
			}
			return nil
		},
	}
}

// expandLocations turns arguments into document locations. URLs pass
// through; everything else is a doublestar pattern that must match at least
// one file.
func expandLocations(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
			out = append(out, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding glob pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		// Sort matches for deterministic ordering
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out, nil
}

// responseErrors joins the decode problems recorded on individual responses,
// which the server would otherwise only report when they are requested.
func responseErrors(doc *openapi.Document) error {
	var errs []error
	for _, op := range doc.Operations {
		for _, r := range op.Responses {
			if r.Err != nil {
				errs = append(errs, fmt.Errorf("%s %s response %s: %w", op.Method, op.Path, r.Status, r.Err))
			}
		}
	}
	return errors.Join(errs...)
}

func printIndented(w io.Writer, msg string) {
	for line := range strings.SplitSeq(msg, "\n") {
		fmt.Fprintf(w, "      %s\n", line)
	}
}
