package xjx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPath_DirectKeys(t *testing.T) {
	tree := Object{
		"person": Object{
			"name": "John",
			"address": Object{
				"city": "Berlin",
			},
		},
	}

	assert.Equal(t, "John", GetPath(tree, "person.name", nil))
	assert.Equal(t, "Berlin", GetPath(tree, "person.address.city", nil))
	assert.Equal(t, tree, GetPath(tree, "", nil))
}

func TestGetPath_FallbackOnMiss(t *testing.T) {
	tree := Object{"a": Object{"b": "x"}}

	assert.Equal(t, "default", GetPath(tree, "a.missing", "default"))
	assert.Equal(t, "default", GetPath(tree, "missing.b", "default"))
	assert.Nil(t, GetPath(tree, "a.b.c", nil))
}

func TestGetPath_SearchesChildrenCollection(t *testing.T) {
	// The shape produced by the text "property" strategy: child entries
	// live inside the ordered $children list.
	tree := Object{
		"order": Object{
			"$children": Array{
				Object{"sku": "A-1"},
				Object{"note": "gift"},
			},
		},
	}

	assert.Equal(t, "A-1", GetPath(tree, "order.sku", nil))
	assert.Equal(t, "gift", GetPath(tree, "order.note", nil))
	assert.Equal(t, "none", GetPath(tree, "order.missing", "none"))
}

func TestGetPath_ReachesValuePropertyInsideChildren(t *testing.T) {
	tree := Object{
		"a": Object{
			"$children": Array{
				Object{"b": Object{"$val": json.Number("1")}},
			},
		},
	}

	assert.Equal(t, json.Number("1"), GetPath(tree, "a.b.$val", nil))
}

func TestGetPath_CombinesMultipleChildMatches(t *testing.T) {
	tree := Object{
		"list": Object{
			"$children": Array{
				Object{"entry": "one"},
				Object{"entry": "two"},
			},
		},
	}

	assert.Equal(t, Array{"one", "two"}, GetPath(tree, "list.entry", nil))
}

func TestGetPath_ResolvesThroughArrays(t *testing.T) {
	tree := Object{
		"list": Object{
			"entry": Array{
				Object{"id": "1"},
				Object{"id": "2"},
			},
		},
	}

	assert.Equal(t, Array{"1", "2"}, GetPath(tree, "list.entry.id", nil))
}

func TestGetPath_NormalizesPlainGoValues(t *testing.T) {
	tree := map[string]interface{}{
		"person": map[string]interface{}{"age": "30"},
	}

	got := GetPath(tree, "person.age", nil)
	require.NotNil(t, got)
	assert.Equal(t, "30", got)
}

func TestConverter_GetPathUsesConfiguredChildrenKey(t *testing.T) {
	opts := DefaultOptions()
	opts.Properties.Children = "#kids"
	conv := mustConverter(t, opts)

	tree := Object{
		"a": Object{
			"#kids": Array{Object{"b": "x"}},
		},
	}

	assert.Equal(t, "x", conv.GetPath(tree, "a.b", nil))
	assert.Nil(t, GetPath(tree, "a.b", nil))
}
