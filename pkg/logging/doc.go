// Package logging provides structured logging configuration for oasmock.
//
// This package wraps log/slog so the server, the generator and the CLI log the
// same way. It supports configurable log levels and output formats.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatJSON,
//	})
//
//	logger.Info("mock server listening", "addr", ":4010")
//
// # Log Levels
//
// Four log levels are supported: debug, info, warn and error. Directive
// failures in the generator are reported at warn, failed requests at error.
//
// # Output Formats
//
//   - Text: Human-readable format for development
//   - JSON: Structured format for log aggregation systems
//
// Setting Config.Tee additionally writes every record as JSON to a second
// writer, which is how --log-file works.
//
// # Integration
//
// Components accept a *slog.Logger through a functional option. If no logger is
// provided, they use logging.Nop().
package logging
