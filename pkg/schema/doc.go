// Package schema models the response and schema fragments of an OpenAPI document.
//
// A Node is either a response wrapper (an OpenAPI media type object carrying
// example, examples and schema) or a JSON-Schema-like type description. Nodes are
// decoded from yaml.v3 trees so that the declared order of properties and named
// examples survives; JSON documents decode through the same path.
//
//	node, err := schema.Parse([]byte(`
//	type: object
//	properties:
//	  name: {type: string, x-faker: person.firstName}
//	`))
//
// Local $ref pointers are resolved while decoding. Cyclic references are
// rejected with ErrCyclicRef and references to other documents with
// ErrUnsupportedRef.
package schema
