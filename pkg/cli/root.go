package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/oasmock/pkg/config"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	configFile string
	logLevel   string
	logFormat  string
	logFile    string
}

// NewRootCommand builds the oasmock command tree. Every call returns a fresh
// tree so tests can run commands in parallel.
func NewRootCommand() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "oasmock",
		Short: "oasmock serves realistic mock responses for OpenAPI 3 documents",
		Long: `oasmock turns an OpenAPI 3 document into a running mock server.

Responses are built from the document's examples when it has them, from
x-faker directives for realistic fake data, and from the schemas otherwise.

Configuration can be provided via flags, environment variables (OASMOCK_*), or
a configuration file. By default, oasmock looks for oasmock.yaml in the
working directory.`,
		// No Run function here means 'oasmock' with no args will print help text by default.
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.configFile, "config", "", "Config file path (default: oasmock.yaml in the working directory)")
	pf.StringVar(&g.logLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&g.logFormat, "log-format", config.DefaultLogFormat, "Log format (text, json)")
	pf.StringVar(&g.logFile, "log-file", "", "Also append JSON logs to this file")

	root.AddCommand(
		newServeCmd(g),
		newGenerateCmd(g),
		newValidateCmd(g),
		newFakersCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line in os.Args and returns the process exit code.
// This is called by main.main().
func Execute() int {
	return run(context.Background(), NewRootCommand(), os.Args[1:])
}

func run(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}
