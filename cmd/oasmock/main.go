// oasmock CLI - mock server and response generator for OpenAPI documents.
//
// Build metadata is injected with
//
//	-ldflags "-X github.com/getmockd/oasmock/pkg/cli.Version=... -X github.com/getmockd/oasmock/pkg/cli.Commit=..."
package main

import (
	"os"

	"github.com/getmockd/oasmock/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
