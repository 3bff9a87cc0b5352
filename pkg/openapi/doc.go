// Package openapi loads OpenAPI 3 documents for mocking.
//
// Load validates and routes with kin-openapi and, from the same bytes, builds
// an ordered operation model whose response media types are schema.Nodes:
//
//	doc, err := openapi.Load(ctx, "petstore.yaml")
//	route, err := doc.Find(req)
//	resp := route.Operation.SelectResponse("")
//	mt := resp.SelectContent(req.Header.Get("Accept"))
//
// Server URLs are reduced to their base paths when routing, so a document
// declaring https://api.example.com/v1 answers /v1/pets as well as /pets on
// the mock's own address.
package openapi
