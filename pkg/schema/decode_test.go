package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParse_TypeSchema(t *testing.T) {
	node, err := Parse([]byte(`
type: object
properties:
  zeta: {type: string}
  alpha: {type: integer, x-faker: "number.int(1, 10)"}
  tags:
    type: array
    x-count: "3"
    items: {type: string, enum: [a, b]}
`))
	require.NoError(t, err)

	assert.Equal(t, KindType, node.Kind)
	assert.Equal(t, "object", node.Type)
	require.Equal(t, 3, node.Properties.Len())

	var names []string
	for name := range node.Properties.All() {
		names = append(names, name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "tags"}, names, "declared order must survive")

	alpha, ok := node.Properties.Get("alpha")
	require.True(t, ok)
	assert.True(t, alpha.HasFaker)
	assert.Equal(t, "number.int(1, 10)", alpha.Faker)
	assert.Equal(t, "#/properties/alpha", alpha.Path)

	tags, _ := node.Properties.Get("tags")
	assert.True(t, tags.HasCount)
	assert.Equal(t, "3", tags.Count)
	require.NotNil(t, tags.Items)
	assert.Equal(t, []any{"a", "b"}, tags.Items.Enum)
}

func TestParse_FalsyExampleIsPresent(t *testing.T) {
	for _, src := range []string{"example: 0", "example: null", "example: false", `example: ""`} {
		node, err := Parse([]byte("type: string\n" + src))
		require.NoError(t, err, src)
		assert.True(t, node.HasExample, src)
	}

	node, err := Parse([]byte("type: string"))
	require.NoError(t, err)
	assert.False(t, node.HasExample)
}

func TestParse_ExamplesForms(t *testing.T) {
	node, err := Parse([]byte(`
type: string
examples: [first, second]
`))
	require.NoError(t, err)
	assert.Equal(t, []any{"first", "second"}, node.ExampleList)
	assert.Nil(t, node.Examples)

	resp, err := ParseResponse([]byte(`
examples:
  second: {value: 2}
  first: {value: 1}
  remote: {externalValue: "https://example.com/pet.json"}
  empty: {summary: nothing here}
schema: {type: integer}
`))
	require.NoError(t, err)
	assert.Equal(t, KindResponse, resp.Kind)
	assert.Equal(t, []string{"second", "first", "remote", "empty"}, resp.ExampleNames())

	first, ok := resp.FirstExample()
	require.True(t, ok)
	assert.Equal(t, "second", first.Name)
	assert.Equal(t, 2, first.Value)

	remote, _ := resp.Examples.Get("remote")
	assert.True(t, remote.Defined())
	assert.False(t, remote.HasValue)

	empty, _ := resp.Examples.Get("empty")
	assert.False(t, empty.Defined())

	require.NotNil(t, resp.Schema)
	assert.Equal(t, "integer", resp.Schema.Type)
}

func TestParse_TypeArrayForm(t *testing.T) {
	node, err := Parse([]byte(`type: [null, integer]`))
	require.NoError(t, err)
	assert.Equal(t, "integer", node.Type)
}

func TestParse_Composition(t *testing.T) {
	node, err := Parse([]byte(`
allOf:
  - {type: object, properties: {a: {type: string}}}
  - {type: object, properties: {b: {type: string}}}
oneOf:
  - {type: string}
`))
	require.NoError(t, err)
	require.Len(t, node.AllOf, 2)
	assert.Equal(t, "#/allOf/1", node.AllOf[1].Path)
	require.Len(t, node.OneOf, 1)
}

func TestDecoder_LocalRefs(t *testing.T) {
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
components:
  schemas:
    Pet:
      type: object
      properties:
        owner: {$ref: "#/components/schemas/Person"}
    Person:
      type: object
      properties:
        name: {type: string}
  examples:
    Rex:
      value: {name: Rex}
content:
  schema: {$ref: "#/components/schemas/Pet"}
  examples:
    rex: {$ref: "#/components/examples/Rex"}
`), &root))

	d := NewDecoder(&root)
	mediaType, err := d.Lookup("#/content")
	require.NoError(t, err)

	resp, err := d.Response(mediaType, "#/content")
	require.NoError(t, err)
	require.NotNil(t, resp.Schema)
	assert.Equal(t, "#/components/schemas/Pet", resp.Schema.Path)

	owner, ok := resp.Schema.Property("owner")
	require.True(t, ok)
	assert.Equal(t, "#/components/schemas/Person", owner.Path)

	rex, ok := resp.Examples.Get("rex")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "Rex"}, rex.Value)
}

func TestDecoder_CyclicRef(t *testing.T) {
	_, err := Parse([]byte(`
properties:
  node: {$ref: "#/definitions/Tree"}
definitions:
  Tree:
    type: object
    properties:
      children:
        type: array
        items: {$ref: "#/definitions/Tree"}
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicRef)
}

func TestDecoder_SelfContainingAnchor(t *testing.T) {
	_, err := Parse([]byte(`
type: object
properties:
  a: &node
    type: object
    properties:
      child: *node
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCyclicRef)
	assert.Contains(t, err.Error(), "#/properties/a/properties/child")
}

func TestDecoder_SharedAnchorIsNotACycle(t *testing.T) {
	node, err := Parse([]byte(`
type: object
properties:
  a: &name {type: string}
  b: *name
`))
	require.NoError(t, err)
	b, ok := node.Property("b")
	require.True(t, ok)
	assert.Equal(t, "string", b.Type)
}

func TestDecoder_RefErrors(t *testing.T) {
	_, err := Parse([]byte(`$ref: "other.yaml#/Pet"`))
	assert.ErrorIs(t, err, ErrUnsupportedRef)

	_, err = Parse([]byte(`$ref: "#/nowhere"`))
	assert.ErrorIs(t, err, ErrRefNotFound)
}

func TestDecoder_LookupEscapes(t *testing.T) {
	var root yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(`
paths:
  /pets/{id}:
    get: {operationId: getPet}
`), &root))

	n, err := NewDecoder(&root).Lookup("#/paths/~1pets~1%7Bid%7D/get")
	require.NoError(t, err)
	assert.Equal(t, yaml.MappingNode, n.Kind)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`[1, 2]`))
	assert.ErrorIs(t, err, ErrInvalidSchema)

	_, err = Parse([]byte(`properties: [a]`))
	assert.ErrorIs(t, err, ErrInvalidSchema)

	_, err = Parse([]byte(""))
	assert.ErrorIs(t, err, ErrInvalidSchema)
}
