// Package dom defines the minimal document-tree capability surface the
// conversion engine depends on, together with an etree-backed provider.
// The engine never tokenizes XML text itself; parsing and serialization
// are delegated to a Provider.
package dom

// Kind identifies the type of a document node.
type Kind int

const (
	KindElement Kind = iota
	KindText
	KindCData
	KindComment
	KindProcInst
)

// String returns a short tag for the node kind, used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindCData:
		return "cdata"
	case KindComment:
		return "comment"
	case KindProcInst:
		return "procinst"
	default:
		return "unknown"
	}
}

// Attr is a single attribute on an element. Space is the namespace prefix
// ("xmlns" for namespace declarations), Key the local name.
type Attr struct {
	Space string
	Key   string
	Value string
}

// FullKey returns the attribute name as written in the document,
// including its prefix.
func (a Attr) FullKey() string {
	if a.Space == "" {
		return a.Key
	}
	return a.Space + ":" + a.Key
}

// IsNamespaceDecl reports whether the attribute declares a namespace
// (xmlns="..." or xmlns:pre="...").
func (a Attr) IsNamespaceDecl() bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}

// Node is the read surface over a parsed document node.
type Node interface {
	// Kind reports the node type.
	Kind() Kind
	// Name is the element's local tag name, or the target of a
	// processing instruction. Empty for text, cdata and comment nodes.
	Name() string
	// Space is the element's namespace prefix, empty when unprefixed.
	Space() string
	// NamespaceURI resolves the element's namespace URI from in-scope
	// declarations, empty when the element is in no namespace.
	NamespaceURI() string
	// Text is the character payload: text/cdata content, comment body,
	// or a processing instruction's instruction part.
	Text() string
	// Attrs lists the element's attributes in document order,
	// including namespace declarations.
	Attrs() []Attr
	// Children lists the element's child nodes in document order.
	Children() []Node
}

// Element is the write surface over an element being constructed.
type Element interface {
	Node
	// AddElement appends a child element. The name may be prefixed
	// ("pre:tag").
	AddElement(name string) Element
	// AddAttr sets an attribute. The key may be prefixed.
	AddAttr(key, value string)
	AddText(text string)
	AddCData(text string)
	AddComment(text string)
	AddProcInst(target, inst string)
}

// SerializeOptions control text rendering of a constructed document.
type SerializeOptions struct {
	// Declaration emits an XML declaration before the root element.
	Declaration bool
	// Pretty enables indentation; Indent is the per-level space count.
	Pretty bool
	Indent int
}

// Document is a whole parsed or in-construction document.
type Document interface {
	// Root returns the document's root element, nil when absent.
	Root() Element
	// Nodes lists all top-level nodes including comments and
	// processing instructions outside the root element.
	Nodes() []Node
	// AddElement creates the root element.
	AddElement(name string) Element
	AddComment(text string)
	AddProcInst(target, inst string)
	// Serialize renders the document to XML text.
	Serialize(opts SerializeOptions) (string, error)
}

// Provider supplies parsing and document construction. Implementations
// wrap a concrete DOM library; the engine depends only on this surface.
type Provider interface {
	// Parse builds a document tree from XML text. The error is non-nil
	// for malformed input.
	Parse(xmlText string) (Document, error)
	// NewDocument returns an empty document for tree construction.
	NewDocument() Document
}
