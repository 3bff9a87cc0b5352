package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/getmockd/oasmock/pkg/fetch"
	"github.com/getmockd/oasmock/pkg/logging"
)

// Defaults.
const (
	DefaultHost      = "0.0.0.0"
	DefaultPort      = 4010
	DefaultLocale    = "en"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config sources, lowest precedence first.
const (
	SourceDefault = "default"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Config is the complete oasmock configuration.
//
// Values come from, in increasing precedence: defaults, the YAML config file,
// environment variables and command-line flags.
type Config struct {
	// Schema is the path or URL of the OpenAPI document.
	Schema string `yaml:"schema" json:"schema"`

	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`

	// Locale selects the fake data locale, e.g. "de" or "en_US.UTF-8".
	Locale string `yaml:"locale" json:"locale"`
	// Seed makes fake data reproducible. Nil means a random seed.
	Seed *uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`

	CORS bool `yaml:"cors" json:"cors"`
	// ValidateDocument checks the document itself when it is loaded.
	ValidateDocument bool `yaml:"validate" json:"validate"`
	// ValidateRequests rejects requests that do not match their operation.
	ValidateRequests bool `yaml:"validateRequests" json:"validateRequests"`

	// FetchTimeout bounds externalValue downloads.
	FetchTimeout time.Duration `yaml:"fetchTimeout" json:"fetchTimeout"`

	Log LogConfig `yaml:"log" json:"log"`

	// Sources tracks where each value came from, keyed by YAML path.
	Sources map[string]string `yaml:"-" json:"-"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
	// File additionally receives JSON logs when set.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	cfg := &Config{
		Host:             DefaultHost,
		Port:             DefaultPort,
		Locale:           DefaultLocale,
		ValidateDocument: true,
		FetchTimeout:     fetch.DefaultTimeout,
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Sources: make(map[string]string),
	}
	for _, key := range []string{"host", "port", "locale", "validate", "fetchTimeout", "log.level", "log.format"} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}

// Set records that key was set from source.
func (c *Config) Set(key, source string) {
	if c.Sources == nil {
		c.Sources = make(map[string]string)
	}
	c.Sources[key] = source
}

// Source reports where key was set, or SourceDefault.
func (c *Config) Source(key string) string {
	if s, ok := c.Sources[key]; ok {
		return s
	}
	return SourceDefault
}

// Addr returns host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoggingConfig converts the log settings for logging.New.
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:  logging.ParseLevel(c.Log.Level),
		Format: logging.ParseFormat(c.Log.Format),
	}
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the configuration for errors. requireSchema is false for
// commands that do not need a document.
func (c *Config) Validate(requireSchema bool) error {
	var problems []string
	if requireSchema && strings.TrimSpace(c.Schema) == "" {
		problems = append(problems, "schema: required (pass a path or URL, or set OASMOCK_SCHEMA)")
	}
	if c.Port < 0 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port: %d is out of range (0-65535)", c.Port))
	}
	if c.FetchTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("fetchTimeout: %s must be positive", c.FetchTimeout))
	}
	if !logging.ValidLevel(c.Log.Level) {
		problems = append(problems, fmt.Sprintf("log.level: unknown level %q (debug, info, warn, error)", c.Log.Level))
	}
	if !logging.ValidFormat(c.Log.Format) {
		problems = append(problems, fmt.Sprintf("log.format: unknown format %q (text, json)", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidConfig, strings.Join(problems, "\n  "))
	}
	return nil
}
