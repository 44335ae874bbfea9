package xjx

// AttributeStrategy controls how element attributes are represented in JSON.
type AttributeStrategy string

const (
	// AttributeMerge flattens each attribute as a direct sibling key.
	AttributeMerge AttributeStrategy = "merge"
	// AttributeProperty nests attributes as a list of single-key records
	// under the attribute property name.
	AttributeProperty AttributeStrategy = "property"
	// AttributePrefix emits each attribute as a sibling key carrying the
	// attribute prefix ("@name").
	AttributePrefix AttributeStrategy = "prefix"
)

func (s AttributeStrategy) valid() bool {
	switch s {
	case AttributeMerge, AttributeProperty, AttributePrefix:
		return true
	}
	return false
}

// TextStrategy controls how element text content is represented in JSON.
type TextStrategy string

const (
	// TextDirect collapses an element with only text content to the raw
	// string instead of an object.
	TextDirect TextStrategy = "direct"
	// TextProperty always nests text under the value property key.
	TextProperty TextStrategy = "property"
)

func (s TextStrategy) valid() bool {
	switch s {
	case TextDirect, TextProperty:
		return true
	}
	return false
}

// NamespaceStrategy controls how namespace information is represented.
type NamespaceStrategy string

const (
	// NamespacePrefix emits namespace info as prefixed sibling keys
	// ("xmlns:pre").
	NamespacePrefix NamespaceStrategy = "prefix"
	// NamespaceProperty nests namespace URI and prefix under their
	// designated property keys.
	NamespaceProperty NamespaceStrategy = "property"
)

func (s NamespaceStrategy) valid() bool {
	switch s {
	case NamespacePrefix, NamespaceProperty:
		return true
	}
	return false
}

// ArrayStrategy controls when repeated child elements become JSON arrays.
type ArrayStrategy string

const (
	// ArrayMultiple groups children sharing a name into one ordered array.
	ArrayMultiple ArrayStrategy = "multiple"
)

func (s ArrayStrategy) valid() bool {
	return s == ArrayMultiple
}

// EmptyElementStrategy controls the JSON shape of an element with no
// attributes, children or text.
type EmptyElementStrategy string

const (
	// EmptyObject renders an empty element as {}.
	EmptyObject EmptyElementStrategy = "object"
	// EmptyNull renders an empty element as null.
	EmptyNull EmptyElementStrategy = "null"
	// EmptyRemove omits the element's key from its parent entirely.
	EmptyRemove EmptyElementStrategy = "remove"
)

func (s EmptyElementStrategy) valid() bool {
	switch s {
	case EmptyObject, EmptyNull, EmptyRemove:
		return true
	}
	return false
}

// MixedContentStrategy controls elements holding both text and element
// children.
type MixedContentStrategy string

const (
	// MixedPreserve emits the text property and the children collection
	// side by side.
	MixedPreserve MixedContentStrategy = "preserve"
	// MixedMerge folds text fragments into the children collection's
	// ordering instead of hoisting them to a separate property.
	MixedMerge MixedContentStrategy = "merge"
)

func (s MixedContentStrategy) valid() bool {
	switch s {
	case MixedPreserve, MixedMerge:
		return true
	}
	return false
}

// Direction identifies which way a conversion is running.
type Direction int

const (
	// XMLToJSON marks the XML-to-JSON conversion direction.
	XMLToJSON Direction = iota
	// JSONToXML marks the JSON-to-XML conversion direction.
	JSONToXML
)

// String returns the direction's display name.
func (d Direction) String() string {
	if d == JSONToXML {
		return "json-to-xml"
	}
	return "xml-to-json"
}

// PropertyNames is the table of JSON keys used for special XML constructs.
type PropertyNames struct {
	Value     string `yaml:"value"`
	Namespace string `yaml:"namespace"`
	Prefix    string `yaml:"prefix"`
	CData     string `yaml:"cdata"`
	Comment   string `yaml:"comment"`
	ProcInst  string `yaml:"proc_inst"`
	Target    string `yaml:"target"`
	Children  string `yaml:"children"`
	Attribute string `yaml:"attribute"`
}

// PreserveOptions gate whether each XML construct is emitted into JSON
// at all.
type PreserveOptions struct {
	Namespaces    bool `yaml:"namespaces"`
	Comments      bool `yaml:"comments"`
	ProcInsts     bool `yaml:"proc_insts"`
	CData         bool `yaml:"cdata"`
	TextNodes     bool `yaml:"text_nodes"`
	Whitespace    bool `yaml:"whitespace"`
	Attributes    bool `yaml:"attributes"`
	PrefixedNames bool `yaml:"prefixed_names"`
}

// StrategyOptions is the closed set of policy choices for the converter.
type StrategyOptions struct {
	Attribute    AttributeStrategy    `yaml:"attribute"`
	Text         TextStrategy         `yaml:"text"`
	Namespace    NamespaceStrategy    `yaml:"namespace"`
	Array        ArrayStrategy        `yaml:"array"`
	EmptyElement EmptyElementStrategy `yaml:"empty_element"`
	MixedContent MixedContentStrategy `yaml:"mixed_content"`
}

// PrefixOptions are the literal string prefixes used when a strategy
// renders a construct as a prefixed sibling key.
type PrefixOptions struct {
	Attribute string `yaml:"attribute"`
	Namespace string `yaml:"namespace"`
}

// ArrayOptions control element naming when a JSON-native array must be
// reconstructed as XML.
type ArrayOptions struct {
	// ItemName names wrapper elements for array entries that carry no
	// name of their own (nested arrays).
	ItemName string `yaml:"item_name"`
	// ItemNames overrides ItemName per parent element name.
	ItemNames map[string]string `yaml:"item_names"`
}

// FormattingOptions control final XML text rendering.
type FormattingOptions struct {
	Indent      int  `yaml:"indent"`
	Declaration bool `yaml:"declaration"`
	Pretty      bool `yaml:"pretty"`
}
