package xjx

import "fmt"

// Options is the partial, caller-facing configuration. Start from
// DefaultOptions or HighFidelityOptions, adjust fields, then hand the
// result to New. Zero-valued enum fields fall back to their defaults;
// recognized fields outside their closed set are rejected by Resolve.
type Options struct {
	// HighFidelity is a meta-strategy: it forces property-based
	// attribute/text/namespace strategies and whitespace/prefixed-name
	// preservation so that conversions round-trip losslessly.
	HighFidelity bool              `yaml:"high_fidelity"`
	Preserve     PreserveOptions   `yaml:"preserve"`
	Strategies   StrategyOptions   `yaml:"strategies"`
	Properties   PropertyNames     `yaml:"properties"`
	Prefixes     PrefixOptions     `yaml:"prefixes"`
	Arrays       ArrayOptions      `yaml:"arrays"`
	Formatting   FormattingOptions `yaml:"formatting"`
	// FragmentRoot names the element wrapped around a JSON fragment
	// that lacks a single root.
	FragmentRoot string `yaml:"fragment_root"`
}

// DefaultOptions returns the default configuration: merged attributes,
// direct text, prefixed namespaces, comments and processing instructions
// dropped.
func DefaultOptions() Options {
	return Options{
		Preserve: PreserveOptions{
			Namespaces: true,
			CData:      true,
			TextNodes:  true,
			Attributes: true,
		},
		Strategies: StrategyOptions{
			Attribute:    AttributeMerge,
			Text:         TextDirect,
			Namespace:    NamespacePrefix,
			Array:        ArrayMultiple,
			EmptyElement: EmptyObject,
			MixedContent: MixedPreserve,
		},
		Properties: PropertyNames{
			Value:     "$val",
			Namespace: "$ns",
			Prefix:    "$pre",
			CData:     "$cdata",
			Comment:   "$cmnt",
			ProcInst:  "$pi",
			Target:    "$target",
			Children:  "$children",
			Attribute: "$attr",
		},
		Prefixes: PrefixOptions{
			Attribute: "@",
			Namespace: "xmlns:",
		},
		Arrays: ArrayOptions{
			ItemName: "item",
		},
		Formatting: FormattingOptions{
			Indent:      2,
			Declaration: true,
		},
		FragmentRoot: "root",
	}
}

// HighFidelityOptions returns the preset guaranteeing lossless
// XML-to-JSON-to-XML round trips: every construct preserved, every
// special construct nested under its designated property key.
func HighFidelityOptions() Options {
	opts := DefaultOptions()
	opts.HighFidelity = true
	// Merged mixed content keeps text fragments in the ordered children
	// collection, which is what byte-level round trips of indented
	// documents rely on.
	opts.Strategies.MixedContent = MixedMerge
	opts.Preserve = PreserveOptions{
		Namespaces:    true,
		Comments:      true,
		ProcInsts:     true,
		CData:         true,
		TextNodes:     true,
		Whitespace:    true,
		Attributes:    true,
		PrefixedNames: true,
	}
	return opts
}

// Config is the resolved, internally consistent configuration. It is
// built once per converter and never mutated afterwards; converters and
// transformers treat it as read-only, which also makes it safe to share
// across concurrent conversions.
type Config struct {
	HighFidelity bool

	PreserveNamespaces    bool
	PreserveComments      bool
	PreserveProcInsts     bool
	PreserveCData         bool
	PreserveTextNodes     bool
	PreserveWhitespace    bool
	PreserveAttributes    bool
	PreservePrefixedNames bool

	AttributeStrategy    AttributeStrategy
	TextStrategy         TextStrategy
	NamespaceStrategy    NamespaceStrategy
	ArrayStrategy        ArrayStrategy
	EmptyElementStrategy EmptyElementStrategy
	MixedContentStrategy MixedContentStrategy

	Props PropertyNames

	AttributePrefix string
	NamespacePrefix string

	ItemName  string
	ItemNames map[string]string

	Indent      int
	Declaration bool
	Pretty      bool

	FragmentRoot string
}

// Resolve merges opts with defaults, applies the high-fidelity
// consistency rule and validates every enumerated field against its
// closed set. It is a pure function over its input.
func Resolve(opts Options) (*Config, error) {
	defaults := DefaultOptions()

	strategies := opts.Strategies
	if strategies.Attribute == "" {
		strategies.Attribute = defaults.Strategies.Attribute
	}
	if strategies.Text == "" {
		strategies.Text = defaults.Strategies.Text
	}
	if strategies.Namespace == "" {
		strategies.Namespace = defaults.Strategies.Namespace
	}
	if strategies.Array == "" {
		strategies.Array = defaults.Strategies.Array
	}
	if strategies.EmptyElement == "" {
		strategies.EmptyElement = defaults.Strategies.EmptyElement
	}
	if strategies.MixedContent == "" {
		strategies.MixedContent = defaults.Strategies.MixedContent
	}

	if !strategies.Attribute.valid() {
		return nil, NewConfigurationError(fmt.Sprintf("unknown attribute strategy %q", strategies.Attribute), nil)
	}
	if !strategies.Text.valid() {
		return nil, NewConfigurationError(fmt.Sprintf("unknown text strategy %q", strategies.Text), nil)
	}
	if !strategies.Namespace.valid() {
		return nil, NewConfigurationError(fmt.Sprintf("unknown namespace strategy %q", strategies.Namespace), nil)
	}
	if !strategies.Array.valid() {
		return nil, NewConfigurationError(fmt.Sprintf("unknown array strategy %q", strategies.Array), nil)
	}
	if !strategies.EmptyElement.valid() {
		return nil, NewConfigurationError(fmt.Sprintf("unknown empty element strategy %q", strategies.EmptyElement), nil)
	}
	if !strategies.MixedContent.valid() {
		return nil, NewConfigurationError(fmt.Sprintf("unknown mixed content strategy %q", strategies.MixedContent), nil)
	}

	preserve := opts.Preserve

	// High fidelity is a meta-strategy, not a bag of independent flags:
	// it overrides conflicting explicit settings.
	if opts.HighFidelity {
		strategies.Attribute = AttributeProperty
		strategies.Text = TextProperty
		strategies.Namespace = NamespaceProperty
		preserve.Whitespace = true
		preserve.PrefixedNames = true
	}

	props := fillPropertyNames(opts.Properties, defaults.Properties)

	prefixes := opts.Prefixes
	if prefixes.Attribute == "" {
		prefixes.Attribute = defaults.Prefixes.Attribute
	}
	if prefixes.Namespace == "" {
		prefixes.Namespace = defaults.Prefixes.Namespace
	}

	arrays := opts.Arrays
	if arrays.ItemName == "" {
		arrays.ItemName = defaults.Arrays.ItemName
	}
	itemNames := make(map[string]string, len(arrays.ItemNames))
	for parent, name := range arrays.ItemNames {
		itemNames[parent] = name
	}

	formatting := opts.Formatting
	if formatting.Indent <= 0 {
		formatting.Indent = defaults.Formatting.Indent
	}

	fragmentRoot := opts.FragmentRoot
	if fragmentRoot == "" {
		fragmentRoot = defaults.FragmentRoot
	}

	return &Config{
		HighFidelity:          opts.HighFidelity,
		PreserveNamespaces:    preserve.Namespaces,
		PreserveComments:      preserve.Comments,
		PreserveProcInsts:     preserve.ProcInsts,
		PreserveCData:         preserve.CData,
		PreserveTextNodes:     preserve.TextNodes,
		PreserveWhitespace:    preserve.Whitespace,
		PreserveAttributes:    preserve.Attributes,
		PreservePrefixedNames: preserve.PrefixedNames,
		AttributeStrategy:     strategies.Attribute,
		TextStrategy:          strategies.Text,
		NamespaceStrategy:     strategies.Namespace,
		ArrayStrategy:         strategies.Array,
		EmptyElementStrategy:  strategies.EmptyElement,
		MixedContentStrategy:  strategies.MixedContent,
		Props:                 props,
		AttributePrefix:       prefixes.Attribute,
		NamespacePrefix:       prefixes.Namespace,
		ItemName:              arrays.ItemName,
		ItemNames:             itemNames,
		Indent:                formatting.Indent,
		Declaration:           formatting.Declaration,
		Pretty:                formatting.Pretty,
		FragmentRoot:          fragmentRoot,
	}, nil
}

func fillPropertyNames(props, defaults PropertyNames) PropertyNames {
	if props.Value == "" {
		props.Value = defaults.Value
	}
	if props.Namespace == "" {
		props.Namespace = defaults.Namespace
	}
	if props.Prefix == "" {
		props.Prefix = defaults.Prefix
	}
	if props.CData == "" {
		props.CData = defaults.CData
	}
	if props.Comment == "" {
		props.Comment = defaults.Comment
	}
	if props.ProcInst == "" {
		props.ProcInst = defaults.ProcInst
	}
	if props.Target == "" {
		props.Target = defaults.Target
	}
	if props.Children == "" {
		props.Children = defaults.Children
	}
	if props.Attribute == "" {
		props.Attribute = defaults.Attribute
	}
	return props
}

// itemNameFor returns the wrapper element name for array entries under
// the given parent element.
func (c *Config) itemNameFor(parent string) string {
	if name, ok := c.ItemNames[parent]; ok {
		return name
	}
	return c.ItemName
}

// isSpecialKey reports whether key is one of the configured property
// names denoting a special construct rather than a child element.
func (c *Config) isSpecialKey(key string) bool {
	switch key {
	case c.Props.Value, c.Props.Namespace, c.Props.Prefix, c.Props.CData,
		c.Props.Comment, c.Props.ProcInst, c.Props.Target, c.Props.Children,
		c.Props.Attribute:
		return true
	}
	return false
}
