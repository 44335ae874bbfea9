package xjx

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Defaults(t *testing.T) {
	cfg, err := Resolve(DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, AttributeMerge, cfg.AttributeStrategy)
	assert.Equal(t, TextDirect, cfg.TextStrategy)
	assert.Equal(t, NamespacePrefix, cfg.NamespaceStrategy)
	assert.Equal(t, ArrayMultiple, cfg.ArrayStrategy)
	assert.Equal(t, EmptyObject, cfg.EmptyElementStrategy)
	assert.Equal(t, MixedPreserve, cfg.MixedContentStrategy)
	assert.Equal(t, "$val", cfg.Props.Value)
	assert.Equal(t, "$children", cfg.Props.Children)
	assert.Equal(t, "@", cfg.AttributePrefix)
	assert.Equal(t, "xmlns:", cfg.NamespacePrefix)
	assert.Equal(t, "item", cfg.ItemName)
	assert.Equal(t, "root", cfg.FragmentRoot)
	assert.True(t, cfg.PreserveAttributes)
	assert.False(t, cfg.PreserveComments)
	assert.False(t, cfg.PreserveWhitespace)
}

func TestResolve_ZeroOptionsFallBackToDefaults(t *testing.T) {
	cfg, err := Resolve(Options{})
	require.NoError(t, err)

	assert.Equal(t, AttributeMerge, cfg.AttributeStrategy)
	assert.Equal(t, TextDirect, cfg.TextStrategy)
	assert.Equal(t, "$val", cfg.Props.Value)
	assert.Equal(t, 2, cfg.Indent)
}

func TestResolve_HighFidelityForcesPropertyStrategies(t *testing.T) {
	opts := DefaultOptions()
	opts.HighFidelity = true
	// Conflicting explicit settings are overridden, not honored.
	opts.Strategies.Attribute = AttributeMerge
	opts.Strategies.Text = TextDirect
	opts.Strategies.Namespace = NamespacePrefix
	opts.Preserve.Whitespace = false
	opts.Preserve.PrefixedNames = false

	cfg, err := Resolve(opts)
	require.NoError(t, err)

	assert.Equal(t, AttributeProperty, cfg.AttributeStrategy)
	assert.Equal(t, TextProperty, cfg.TextStrategy)
	assert.Equal(t, NamespaceProperty, cfg.NamespaceStrategy)
	assert.True(t, cfg.PreserveWhitespace)
	assert.True(t, cfg.PreservePrefixedNames)
}

func TestResolve_HighFidelityPreset(t *testing.T) {
	cfg, err := Resolve(HighFidelityOptions())
	require.NoError(t, err)

	assert.True(t, cfg.PreserveComments)
	assert.True(t, cfg.PreserveProcInsts)
	assert.True(t, cfg.PreserveCData)
	assert.Equal(t, MixedMerge, cfg.MixedContentStrategy)
}

func TestResolve_RejectsUnknownStrategies(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"attribute", func(o *Options) { o.Strategies.Attribute = "inline" }},
		{"text", func(o *Options) { o.Strategies.Text = "collapse" }},
		{"namespace", func(o *Options) { o.Strategies.Namespace = "drop" }},
		{"array", func(o *Options) { o.Strategies.Array = "never" }},
		{"empty element", func(o *Options) { o.Strategies.EmptyElement = "skip" }},
		{"mixed content", func(o *Options) { o.Strategies.MixedContent = "flatten" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			_, err := Resolve(opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, &Error{Type: ErrorTypeConfiguration}))
		})
	}
}

func TestResolve_CustomPropertyNamesKeepUnsetDefaults(t *testing.T) {
	opts := DefaultOptions()
	opts.Properties.Value = "#text"
	opts.Properties.Children = ""

	cfg, err := Resolve(opts)
	require.NoError(t, err)

	assert.Equal(t, "#text", cfg.Props.Value)
	assert.Equal(t, "$children", cfg.Props.Children)
}

func TestConfig_ItemNameFor(t *testing.T) {
	opts := DefaultOptions()
	opts.Arrays.ItemNames = map[string]string{"matrix": "row"}

	cfg, err := Resolve(opts)
	require.NoError(t, err)

	assert.Equal(t, "row", cfg.itemNameFor("matrix"))
	assert.Equal(t, "item", cfg.itemNameFor("anything"))
}

func TestConfig_IsSpecialKey(t *testing.T) {
	cfg, err := Resolve(DefaultOptions())
	require.NoError(t, err)

	assert.True(t, cfg.isSpecialKey("$val"))
	assert.True(t, cfg.isSpecialKey("$attr"))
	assert.False(t, cfg.isSpecialKey("person"))
	assert.False(t, cfg.isSpecialKey("@id"))
}
