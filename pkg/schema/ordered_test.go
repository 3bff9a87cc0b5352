package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExamples_KeepsOrder(t *testing.T) {
	n := &Node{Kind: KindResponse, Examples: NewExamples(
		ValueExample("b", 2),
		ValueExample("a", 1),
		ValueExample("b", 3),
	)}

	assert.Equal(t, []string{"b", "a"}, n.ExampleNames(), "a repeated name keeps its first position")

	first, ok := n.FirstExample()
	require.True(t, ok)
	assert.Equal(t, 3, first.Value)

	a, ok := n.NamedExample("a")
	require.True(t, ok)
	assert.Equal(t, 1, a.Value)

	_, ok = n.NamedExample("missing")
	assert.False(t, ok)
}

func TestNode_EmptyMappings(t *testing.T) {
	for _, n := range []*Node{nil, {}, {Examples: NewExamples(), Properties: NewProperties()}} {
		assert.False(t, n.HasNamedExamples())
		assert.Nil(t, n.ExampleNames())

		_, ok := n.FirstExample()
		assert.False(t, ok)
		_, ok = n.NamedExample("any")
		assert.False(t, ok)
		_, ok = n.Property("any")
		assert.False(t, ok)
	}
}
