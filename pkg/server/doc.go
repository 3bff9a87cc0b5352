// Package server serves generated responses for an OpenAPI document.
//
// Every request is matched to an operation with openapi.Document.Find. The
// response is chosen from the Prefer header (statusCode=, example=) and the
// Accept header, and its headers and body are produced by a Generator. Requests
// pass through recovery, request ID, access log and optional CORS middleware.
//
//	srv := server.New(doc, generator.New(), server.WithCORS(true))
//	if err := srv.Start(":4010"); err != nil { ... }
//	defer srv.Shutdown(ctx)
package server
