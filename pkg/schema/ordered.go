package schema

import (
	"slices"

	"github.com/speakeasy-api/openapi/sequencedmap"
)

// Example is one entry of a named examples mapping.
type Example struct {
	Name          string
	Value         any
	HasValue      bool
	ExternalValue string
}

// Defined reports whether the entry can produce a value, either inline or by reference.
func (e *Example) Defined() bool {
	return e != nil && (e.HasValue || e.ExternalValue != "")
}

// ValueExample returns an entry holding an inline value.
func ValueExample(name string, v any) *Example {
	return &Example{Name: name, Value: v, HasValue: true}
}

// Examples maps example names to entries in declared order.
type Examples = sequencedmap.Map[string, *Example]

// Properties maps property names to schemas in declared order.
type Properties = sequencedmap.Map[string, *Node]

// NewExamples creates an examples mapping keyed by each entry's Name.
// A repeated name replaces the earlier entry in place.
func NewExamples(entries ...*Example) *Examples {
	m := sequencedmap.New[string, *Example]()
	for _, ex := range entries {
		m.Set(ex.Name, ex)
	}
	return m
}

// NewProperties creates an empty properties mapping.
func NewProperties() *Properties {
	return sequencedmap.New[string, *Node]()
}

// FirstExample returns the first named example in declared order.
func (n *Node) FirstExample() (*Example, bool) {
	if !n.HasNamedExamples() {
		return nil, false
	}
	for _, ex := range n.Examples.All() {
		return ex, true
	}
	return nil, false
}

// NamedExample returns the named example called name.
func (n *Node) NamedExample(name string) (*Example, bool) {
	if !n.HasNamedExamples() {
		return nil, false
	}
	return n.Examples.Get(name)
}

// ExampleNames lists the named examples in declared order.
func (n *Node) ExampleNames() []string {
	if !n.HasNamedExamples() {
		return nil
	}
	var names []string
	for name := range n.Examples.All() {
		names = append(names, name)
	}
	return slices.Clip(names)
}

// Property returns the schema of the named property.
func (n *Node) Property(name string) (*Node, bool) {
	if n == nil || n.Properties == nil {
		return nil, false
	}
	return n.Properties.Get(name)
}
