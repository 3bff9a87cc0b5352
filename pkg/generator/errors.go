package generator

import (
	"errors"
	"fmt"
)

// Fatal generation errors. They abort generation of the current value and are
// returned wrapped in *Error.
var (
	ErrUnknownType    = errors.New("unknown type, cannot generate")
	ErrFetch          = errors.New("external value fetch failed")
	ErrAllOfNotObject = errors.New("allOf branch did not resolve to an object")
)

// Directive errors. These never escape Generate: a failing x-faker directive is
// logged and generation falls back to the rest of the chain.
var (
	ErrDirectiveFormat = errors.New("x-faker directive is not in the right format, expecting <namespace>.<method> or <namespace>.<method>(<json-args>)")
	ErrMethodNotFound  = errors.New("faker method not found")
	ErrDirectiveArgs   = errors.New("x-faker arguments are not valid JSON")
)

// Error is a fatal generation error located at a schema path.
type Error struct {
	// Path is the JSON pointer of the node that failed, e.g. "#/components/schemas/Pet".
	Path string
	Err  error
}

func (e *Error) Error() string {
	path := e.Path
	if path == "" {
		path = "#"
	}
	return fmt.Sprintf("generate %s: %v", path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// fail wraps err with path unless it already carries one from a deeper node.
func fail(path string, err error) error {
	var genErr *Error
	if errors.As(err, &genErr) {
		return err
	}
	return &Error{Path: path, Err: err}
}
