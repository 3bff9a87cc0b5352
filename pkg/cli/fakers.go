package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/oasmock/pkg/cli/internal/output"
	"github.com/getmockd/oasmock/pkg/faker"
)

func newFakersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fakers [namespace]",
		Short: "List the methods available to x-faker",
		Long: `List the fake data methods that x-faker directives can call.

Without arguments every namespace is listed with its methods. With a namespace,
its methods are printed one per line in the form used by x-faker.`,
		Example: `  oasmock fakers
  oasmock fakers internet`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fk := faker.New()
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				ns := args[0]
				methods := fk.Methods(ns)
				if len(methods) == 0 {
					return fmt.Errorf("%w: unknown namespace %q (have %s)", faker.ErrUnknownMethod, ns, strings.Join(fk.Namespaces(), ", "))
				}
				for _, m := range methods {
					fmt.Fprintf(out, "%s.%s\n", ns, m)
				}
				return nil
			}

			tw := output.Table(out)
			fmt.Fprintln(tw, "NAMESPACE\tMETHODS")
			for _, ns := range fk.Namespaces() {
				fmt.Fprintf(tw, "%s\t%s\n", ns, strings.Join(fk.Methods(ns), ", "))
			}
			return tw.Flush()
		},
	}
}
