// Package config loads oasmock settings.
//
// Precedence, lowest first: Default(), a YAML file (--config, OASMOCK_CONFIG
// or oasmock.yaml in the working directory), OASMOCK_* environment variables
// and finally command-line flags, which the CLI applies to the loaded Config.
// Config files are checked against an embedded JSON Schema (see SchemaJSON)
// before they are decoded, so typos such as "prot: 8080" are reported with the
// offending field instead of being ignored.
//
// Example oasmock.yaml:
//
//	schema: ./petstore.yaml
//	port: 4010
//	locale: de
//	seed: 42
//	cors: true
//	validateRequests: true
//	fetchTimeout: 5s
//	log:
//	  level: debug
//	  format: json
package config
