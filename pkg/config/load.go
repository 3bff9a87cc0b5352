package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvConfig           = "OASMOCK_CONFIG"
	EnvSchema           = "OASMOCK_SCHEMA"
	EnvHost             = "OASMOCK_HOST"
	EnvPort             = "OASMOCK_PORT"
	EnvLocale           = "OASMOCK_LOCALE"
	EnvSeed             = "OASMOCK_SEED"
	EnvCORS             = "OASMOCK_CORS"
	EnvValidate         = "OASMOCK_VALIDATE"
	EnvValidateRequests = "OASMOCK_VALIDATE_REQUESTS"
	EnvFetchTimeout     = "OASMOCK_FETCH_TIMEOUT"
	EnvLogLevel         = "OASMOCK_LOG_LEVEL"
	EnvLogFormat        = "OASMOCK_LOG_FORMAT"
	EnvLogFile          = "OASMOCK_LOG_FILE"
	// EnvLang is the locale fallback when nothing else sets one.
	EnvLang = "LANG"
)

// ConfigFileNames are searched for in the working directory, in order.
var ConfigFileNames = []string{"oasmock.yaml", "oasmock.yml", ".oasmock.yaml", ".oasmock.yml"}

// fileConfig mirrors Config with pointers so that values explicitly present in
// the file, including false and 0, can be told apart from absent ones.
type fileConfig struct {
	Schema           *string        `yaml:"schema"`
	Host             *string        `yaml:"host"`
	Port             *int           `yaml:"port"`
	Locale           *string        `yaml:"locale"`
	Seed             *uint64        `yaml:"seed"`
	CORS             *bool          `yaml:"cors"`
	Validate         *bool          `yaml:"validate"`
	ValidateRequests *bool          `yaml:"validateRequests"`
	FetchTimeout     *time.Duration `yaml:"fetchTimeout"`
	Log              *struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
		File   *string `yaml:"file"`
	} `yaml:"log"`
}

// Options tune Load. The zero value reads the real environment and the
// current working directory.
type Options struct {
	// File is an explicit config file path (--config). When empty,
	// OASMOCK_CONFIG and then ConfigFileNames in Dir are tried.
	File string
	// Dir is where ConfigFileNames are searched. Defaults to the working directory.
	Dir string
	// Getenv replaces os.Getenv.
	Getenv func(string) string
}

// Load builds a Config from defaults, the config file and the environment.
// Flags are applied by the caller on top of the result.
func Load(opts Options) (*Config, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	cfg := Default()

	path := opts.File
	if path == "" {
		path = getenv(EnvConfig)
	}
	if path == "" {
		found, err := FindConfigFile(opts.Dir)
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := LoadEnv(cfg, getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile returns the first of ConfigFileNames present in dir, or "".
func FindConfigFile(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = wd
	}
	for _, name := range ConfigFileNames {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p, nil
		}
	}
	return "", nil
}

// LoadFile validates the YAML file at path against the config schema and
// merges the values it sets into cfg. A relative schema path in the file is
// resolved against the file's directory.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if doc == nil {
		return nil
	}
	if err := validateDocument(path, doc); err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if fc.Schema != nil {
		schema := *fc.Schema
		if !isURL(schema) && !filepath.IsAbs(schema) {
			schema = filepath.Join(filepath.Dir(path), schema)
		}
		fc.Schema = &schema
	}
	mergeFile(cfg, &fc)
	return nil
}

func mergeFile(cfg *Config, fc *fileConfig) {
	setString(cfg, "schema", &cfg.Schema, fc.Schema)
	setString(cfg, "host", &cfg.Host, fc.Host)
	if fc.Port != nil {
		cfg.Port = *fc.Port
		cfg.Set("port", SourceFile)
	}
	setString(cfg, "locale", &cfg.Locale, fc.Locale)
	if fc.Seed != nil {
		seed := *fc.Seed
		cfg.Seed = &seed
		cfg.Set("seed", SourceFile)
	}
	setBool(cfg, "cors", &cfg.CORS, fc.CORS)
	setBool(cfg, "validate", &cfg.ValidateDocument, fc.Validate)
	setBool(cfg, "validateRequests", &cfg.ValidateRequests, fc.ValidateRequests)
	if fc.FetchTimeout != nil {
		cfg.FetchTimeout = *fc.FetchTimeout
		cfg.Set("fetchTimeout", SourceFile)
	}
	if fc.Log != nil {
		setString(cfg, "log.level", &cfg.Log.Level, fc.Log.Level)
		setString(cfg, "log.format", &cfg.Log.Format, fc.Log.Format)
		setString(cfg, "log.file", &cfg.Log.File, fc.Log.File)
	}
}

func setString(cfg *Config, key string, dst, src *string) {
	if src != nil {
		*dst = *src
		cfg.Set(key, SourceFile)
	}
}

func setBool(cfg *Config, key string, dst, src *bool) {
	if src != nil {
		*dst = *src
		cfg.Set(key, SourceFile)
	}
}

// LoadEnv applies OASMOCK_* variables to cfg. LANG sets the locale only when
// neither the file nor OASMOCK_LOCALE did.
func LoadEnv(cfg *Config, getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	var errs []error
	str := func(env, key string, dst *string) {
		if v := strings.TrimSpace(getenv(env)); v != "" {
			*dst = v
			cfg.Set(key, SourceEnv)
		}
	}
	boolean := func(env, key string, dst *bool) {
		v := strings.TrimSpace(getenv(env))
		if v == "" {
			return
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: not a boolean", env, v))
			return
		}
		*dst = b
		cfg.Set(key, SourceEnv)
	}

	str(EnvSchema, "schema", &cfg.Schema)
	str(EnvHost, "host", &cfg.Host)
	if v := strings.TrimSpace(getenv(EnvPort)); v != "" {
		if port, err := strconv.Atoi(v); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: not a port number", EnvPort, v))
		} else {
			cfg.Port = port
			cfg.Set("port", SourceEnv)
		}
	}
	str(EnvLocale, "locale", &cfg.Locale)
	if cfg.Source("locale") == SourceDefault {
		if lang := strings.TrimSpace(getenv(EnvLang)); lang != "" {
			cfg.Locale = lang
			cfg.Set("locale", SourceEnv)
		}
	}
	if v := strings.TrimSpace(getenv(EnvSeed)); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: not an unsigned integer", EnvSeed, v))
		} else {
			cfg.Seed = &seed
			cfg.Set("seed", SourceEnv)
		}
	}
	boolean(EnvCORS, "cors", &cfg.CORS)
	boolean(EnvValidate, "validate", &cfg.ValidateDocument)
	boolean(EnvValidateRequests, "validateRequests", &cfg.ValidateRequests)
	if v := strings.TrimSpace(getenv(EnvFetchTimeout)); v != "" {
		if d, err := time.ParseDuration(v); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", EnvFetchTimeout, v, err))
		} else {
			cfg.FetchTimeout = d
			cfg.Set("fetchTimeout", SourceEnv)
		}
	}
	str(EnvLogLevel, "log.level", &cfg.Log.Level)
	str(EnvLogFormat, "log.format", &cfg.Log.Format)
	str(EnvLogFile, "log.file", &cfg.Log.File)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
