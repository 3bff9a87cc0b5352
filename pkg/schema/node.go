package schema

// Kind discriminates the two shapes a Node can take.
type Kind int

const (
	// KindType is a JSON-Schema-like type description.
	KindType Kind = iota
	// KindResponse is a response/media-type wrapper: {example?, examples?, schema?}.
	KindResponse
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindResponse:
		return "response"
	default:
		return "type"
	}
}

// Node is one read-only fragment of a response or schema description.
//
// Optional fields carry explicit presence flags so that a present but falsy value
// (example: 0, example: null) is not confused with an absent one.
type Node struct {
	Kind Kind

	// Path is the JSON pointer the node was decoded from, e.g. "#/components/schemas/Pet".
	Path string

	Example    any
	HasExample bool

	// Examples is the named-mapping form ({name: {value}}).
	Examples *Examples
	// ExampleList is the sequence form (examples: [a, b]).
	ExampleList []any

	// Schema is the wrapped type schema of a KindResponse node.
	Schema *Node

	Type       string
	Properties *Properties
	Items      *Node
	Enum       []any
	AllOf      []*Node
	OneOf      []*Node
	AnyOf      []*Node

	// Faker holds the x-faker directive.
	Faker    string
	HasFaker bool

	// Count holds the raw x-count value (string or number).
	Count    any
	HasCount bool
}

// HasNamedExamples reports whether the node carries a non-empty examples mapping.
func (n *Node) HasNamedExamples() bool {
	return n != nil && n.Examples != nil && n.Examples.Len() > 0
}

// WithExample returns n after setting its literal example.
func (n *Node) WithExample(v any) *Node {
	n.Example = v
	n.HasExample = true
	return n
}

// WithFaker returns n after setting its x-faker directive.
func (n *Node) WithFaker(directive string) *Node {
	n.Faker = directive
	n.HasFaker = true
	return n
}

// WithCount returns n after setting its x-count value.
func (n *Node) WithCount(count any) *Node {
	n.Count = count
	n.HasCount = true
	return n
}

// Response wraps a type schema in a KindResponse node.
func Response(s *Node) *Node {
	return &Node{Kind: KindResponse, Schema: s}
}
