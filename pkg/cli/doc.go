// Package cli provides the command-line interface for oasmock.
//
// The cli package implements these commands:
//   - serve: Start a mock server for an OpenAPI document
//   - generate: Print the generated response of one operation
//   - validate: Check that documents load, validate and decode
//   - fakers: List the methods available to x-faker directives
//   - version: Show oasmock version
//
// Every command resolves its configuration the same way: defaults, then the
// config file (--config, OASMOCK_CONFIG or oasmock.yaml), then OASMOCK_*
// environment variables, then flags given on the command line.
package cli
