package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/getmockd/oasmock/pkg/config"
	"github.com/getmockd/oasmock/pkg/faker"
	"github.com/getmockd/oasmock/pkg/fetch"
	"github.com/getmockd/oasmock/pkg/generator"
	"github.com/getmockd/oasmock/pkg/logging"
)

// loadConfig resolves defaults, the config file and the environment, then
// applies the persistent flags the user set explicitly.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(config.Options{File: g.configFile})
	if err != nil {
		return nil, err
	}
	setFlag(cmd, cfg, "log-level", "log.level", &cfg.Log.Level, g.logLevel)
	setFlag(cmd, cfg, "log-format", "log.format", &cfg.Log.Format, g.logFormat)
	setFlag(cmd, cfg, "log-file", "log.file", &cfg.Log.File, g.logFile)
	return cfg, nil
}

// setFlag copies v into dst when the named flag was given on the command line.
func setFlag[T any](cmd *cobra.Command, cfg *config.Config, flag, key string, dst *T, v T) {
	if cmd.Flags().Changed(flag) {
		*dst = v
		cfg.Set(key, config.SourceFlag)
	}
}

// newLogger builds the command logger on stderr. With log.file set, every
// record is also appended to that file as JSON; the returned func closes it.
func newLogger(cfg *config.Config, stderr io.Writer) (*slog.Logger, func(), error) {
	lc := cfg.LoggingConfig()
	lc.Output = stderr

	closeFn := func() {}
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		lc.Tee = f
		closeFn = func() { _ = f.Close() }
	}
	return logging.New(lc), closeFn, nil
}

// newGenerator wires the faker and fetcher described by cfg. baseDir is the
// directory (or URL) of the loaded document. A seeded faker also drives enum
// selection so that the whole response is reproducible.
func newGenerator(cfg *config.Config, baseDir string, log *slog.Logger) *generator.Generator {
	fopts := []faker.Option{faker.WithLocale(cfg.Locale)}
	if cfg.Seed != nil {
		fopts = append(fopts, faker.WithSeed(*cfg.Seed))
	}
	fk := faker.New(fopts...)

	fetcher := fetch.New(
		fetch.WithTimeout(cfg.FetchTimeout),
		fetch.WithBaseDir(baseDir),
		fetch.WithLogger(log),
	)

	opts := []generator.Option{
		generator.WithProvider(fk),
		generator.WithFetcher(fetcher),
		generator.WithLogger(log),
	}
	if cfg.Seed != nil {
		opts = append(opts, generator.WithRand(fk))
	} else {
		opts = append(opts, generator.WithConcurrency(runtime.GOMAXPROCS(0)))
	}
	return generator.New(opts...)
}
