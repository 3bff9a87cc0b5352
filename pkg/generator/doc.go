// Package generator produces a representative sample value for an OpenAPI
// response or schema node.
//
// For each node the generator picks the best source of truth available: a
// literal example, an enumerated value, an x-faker directive, a composition of
// sub-schemas, or a placeholder built from the declared type.
//
//	gen := generator.New(
//	    generator.WithProvider(fk),
//	    generator.WithRand(fk),
//	    generator.WithLogger(log),
//	)
//	body, err := gen.Generate(ctx, mediaType, "cat")
//
// # x-faker directives
//
// A directive is either a call, such as "person.firstName" or
// "number.int(1, 10)" (arguments are a JSON array body), or a template
// containing {{...}} placeholders. A directive that cannot be evaluated is
// logged at warn level and generation continues with the rest of the schema.
//
// # x-count
//
// On array schemas x-count sets the number of generated items (default 1).
//
// Fatal failures are returned as *Error carrying the JSON pointer of the
// failing node; use errors.Is with ErrUnknownType, ErrFetch or
// ErrAllOfNotObject to classify them.
package generator
