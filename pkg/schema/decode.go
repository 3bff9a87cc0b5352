package schema

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Decoding errors.
var (
	ErrInvalidSchema  = errors.New("invalid schema")
	ErrCyclicRef      = errors.New("cyclic $ref")
	ErrUnsupportedRef = errors.New("unsupported $ref")
	ErrRefNotFound    = errors.New("$ref target not found")
)

// Decoder builds Nodes from a yaml.v3 document tree, preserving declared key order.
// Local $ref pointers are resolved against the document root. A Decoder is not
// safe for concurrent use; the Nodes it returns are.
type Decoder struct {
	root   *yaml.Node
	cache  map[string]*Node
	active map[string]bool
	// open holds the mappings being decoded, so an anchor that contains
	// itself is reported instead of recursing forever.
	open map[*yaml.Node]bool
}

// NewDecoder creates a decoder whose $ref pointers resolve against root.
func NewDecoder(root *yaml.Node) *Decoder {
	return &Decoder{
		root:   unalias(root),
		cache:  make(map[string]*Node),
		active: make(map[string]bool),
		open:   make(map[*yaml.Node]bool),
	}
}

// Parse decodes a standalone type schema from YAML or JSON bytes.
func Parse(data []byte) (*Node, error) {
	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}
	return NewDecoder(root).Type(root, "#")
}

// ParseResponse decodes a standalone response wrapper from YAML or JSON bytes.
func ParseResponse(data []byte) (*Node, error) {
	root, err := parseRoot(data)
	if err != nil {
		return nil, err
	}
	return NewDecoder(root).Response(root, "#")
}

func parseRoot(data []byte) (*yaml.Node, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	if root.Kind == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidSchema)
	}
	return &root, nil
}

// Resolve follows a chain of $ref pointers starting at n and returns the final
// node together with the pointer it was found at. Nodes without $ref are
// returned unchanged.
func (d *Decoder) Resolve(n *yaml.Node, path string) (*yaml.Node, string, error) {
	n = unalias(n)
	seen := make(map[string]bool)
	for {
		ref, ok := refOf(n)
		if !ok {
			return n, path, nil
		}
		if seen[ref] {
			return nil, "", fmt.Errorf("%w: %s", ErrCyclicRef, ref)
		}
		seen[ref] = true
		target, err := d.Lookup(ref)
		if err != nil {
			return nil, "", err
		}
		n, path = target, ref
	}
}

// Lookup returns the node a local JSON pointer ("#/a/b") addresses.
func (d *Decoder) Lookup(ref string) (*yaml.Node, error) {
	if !strings.HasPrefix(ref, "#") {
		return nil, fmt.Errorf("%w: %s (only local references are supported)", ErrUnsupportedRef, ref)
	}
	fragment := ref[1:]
	if unescaped, err := url.PathUnescape(fragment); err == nil {
		fragment = unescaped
	}

	cur := d.root
	if fragment == "" || fragment == "/" {
		return cur, nil
	}
	for _, token := range strings.Split(strings.TrimPrefix(fragment, "/"), "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		var next *yaml.Node
		switch cur.Kind {
		case yaml.MappingNode:
			next = mappingValue(cur, token)
		case yaml.SequenceNode:
			if i, err := strconv.Atoi(token); err == nil && i >= 0 && i < len(cur.Content) {
				next = cur.Content[i]
			}
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %s", ErrRefNotFound, ref)
		}
		cur = unalias(next)
	}
	return cur, nil
}

// Type decodes a type schema.
func (d *Decoder) Type(n *yaml.Node, path string) (*Node, error) {
	n = unalias(n)
	if ref, ok := refOf(n); ok {
		return d.typeRef(ref)
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w at %s: expected an object, got %s", ErrInvalidSchema, path, kindName(n))
	}
	if d.open[n] {
		return nil, fmt.Errorf("%w at %s: schema contains itself", ErrCyclicRef, path)
	}
	d.open[n] = true
	defer delete(d.open, n)

	node := &Node{Kind: KindType, Path: path}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := unalias(n.Content[i+1])
		var err error

		switch key {
		case "type":
			node.Type = typeName(val)
		case "properties":
			node.Properties, err = d.properties(val, path+"/properties")
		case "items":
			if val.Kind == yaml.MappingNode {
				node.Items, err = d.Type(val, path+"/items")
			}
		case "enum":
			node.Enum, err = sequenceValues(val, path+"/enum")
		case "allOf":
			node.AllOf, err = d.branches(val, path+"/allOf")
		case "oneOf":
			node.OneOf, err = d.branches(val, path+"/oneOf")
		case "anyOf":
			node.AnyOf, err = d.branches(val, path+"/anyOf")
		case "example":
			node.Example, err = decodeValue(val)
			node.HasExample = true
		case "examples":
			err = d.examples(node, val, path+"/examples")
		case "x-faker":
			node.HasFaker = true
			if val.Kind == yaml.ScalarNode {
				node.Faker = val.Value
			}
		case "x-count":
			node.Count, err = decodeValue(val)
			node.HasCount = true
		}
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

// Response decodes a response wrapper (an OpenAPI media type object).
func (d *Decoder) Response(n *yaml.Node, path string) (*Node, error) {
	n, path, err := d.Resolve(n, path)
	if err != nil {
		return nil, err
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w at %s: expected an object, got %s", ErrInvalidSchema, path, kindName(n))
	}

	node := &Node{Kind: KindResponse, Path: path}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := unalias(n.Content[i+1])

		switch key {
		case "schema":
			node.Schema, err = d.Type(val, path+"/schema")
		case "example":
			node.Example, err = decodeValue(val)
			node.HasExample = true
		case "examples":
			err = d.examples(node, val, path+"/examples")
		}
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (d *Decoder) typeRef(ref string) (*Node, error) {
	if s, ok := d.cache[ref]; ok {
		return s, nil
	}
	if d.active[ref] {
		return nil, fmt.Errorf("%w: %s", ErrCyclicRef, ref)
	}
	target, err := d.Lookup(ref)
	if err != nil {
		return nil, err
	}

	d.active[ref] = true
	s, err := d.Type(target, ref)
	delete(d.active, ref)
	if err != nil {
		return nil, err
	}
	d.cache[ref] = s
	return s, nil
}

func (d *Decoder) properties(n *yaml.Node, path string) (*Properties, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w at %s: properties must be an object", ErrInvalidSchema, path)
	}
	props := NewProperties()
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		s, err := d.Type(n.Content[i+1], path+"/"+escapeToken(name))
		if err != nil {
			return nil, err
		}
		props.Set(name, s)
	}
	return props, nil
}

func (d *Decoder) branches(n *yaml.Node, path string) ([]*Node, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w at %s: expected an array", ErrInvalidSchema, path)
	}
	out := make([]*Node, 0, len(n.Content))
	for i, item := range n.Content {
		s, err := d.Type(item, path+"/"+strconv.Itoa(i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func (d *Decoder) examples(node *Node, n *yaml.Node, path string) error {
	switch n.Kind {
	case yaml.SequenceNode:
		values, err := sequenceValues(n, path)
		if err != nil {
			return err
		}
		node.ExampleList = values
	case yaml.MappingNode:
		examples := NewExamples()
		for i := 0; i+1 < len(n.Content); i += 2 {
			name := n.Content[i].Value
			entry, err := d.example(name, n.Content[i+1], path+"/"+escapeToken(name))
			if err != nil {
				return err
			}
			examples.Set(name, entry)
		}
		node.Examples = examples
	}
	return nil
}

func (d *Decoder) example(name string, n *yaml.Node, path string) (*Example, error) {
	n, _, err := d.Resolve(n, path)
	if err != nil {
		return nil, err
	}
	entry := &Example{Name: name}
	if n.Kind != yaml.MappingNode {
		return entry, nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		val := unalias(n.Content[i+1])
		switch n.Content[i].Value {
		case "value":
			entry.Value, err = decodeValue(val)
			if err != nil {
				return nil, err
			}
			entry.HasValue = true
		case "externalValue":
			if val.Kind == yaml.ScalarNode {
				entry.ExternalValue = val.Value
			}
		}
	}
	return entry, nil
}

func decodeValue(n *yaml.Node) (any, error) {
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return v, nil
}

func sequenceValues(n *yaml.Node, path string) ([]any, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w at %s: expected an array", ErrInvalidSchema, path)
	}
	out := make([]any, 0, len(n.Content))
	for _, item := range n.Content {
		v, err := decodeValue(item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// typeName reads "type", accepting the 3.1 array form and skipping "null".
func typeName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value
	case yaml.SequenceNode:
		for _, item := range n.Content {
			if item.Kind == yaml.ScalarNode && item.Value != "null" {
				return item.Value
			}
		}
	}
	return ""
}

func refOf(n *yaml.Node) (string, bool) {
	if n == nil || n.Kind != yaml.MappingNode {
		return "", false
	}
	v := mappingValue(n, "$ref")
	if v == nil || v.Kind != yaml.ScalarNode {
		return "", false
	}
	return v.Value, true
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func unalias(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return n
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return n
}

func kindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "array"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "object"
	default:
		return "nothing"
	}
}

func escapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
