package xjx

import "github.com/mcncl/xjx/dom"

// Context describes the node a transformer is looking at: direction,
// name, kind, dot-path and namespace lineage. A fresh Context is built
// per node per conversion call and never mutated; the parent back-link
// is for read-only ancestor traversal.
type Context struct {
	Direction       Direction
	NodeName        string
	Kind            dom.Kind
	Path            string
	NamespaceURI    string
	NamespacePrefix string
	IsAttribute     bool
	AttributeName   string

	parent *Context
}

// Parent returns the enclosing node's context, nil at the root.
func (c *Context) Parent() *Context {
	return c.parent
}

// Depth returns the number of ancestors above this context.
func (c *Context) Depth() int {
	depth := 0
	for p := c.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// child derives the context for a child node.
func (c *Context) child(name string, kind dom.Kind) *Context {
	path := name
	if c.Path != "" {
		path = c.Path + "." + name
	}
	return &Context{
		Direction:       c.Direction,
		NodeName:        name,
		Kind:            kind,
		Path:            path,
		NamespaceURI:    c.NamespaceURI,
		NamespacePrefix: c.NamespacePrefix,
		parent:          c,
	}
}

// attribute derives the context for one of this node's attribute values.
func (c *Context) attribute(name string) *Context {
	return &Context{
		Direction:       c.Direction,
		NodeName:        c.NodeName,
		Kind:            c.Kind,
		Path:            c.Path + "." + name,
		NamespaceURI:    c.NamespaceURI,
		NamespacePrefix: c.NamespacePrefix,
		IsAttribute:     true,
		AttributeName:   name,
		parent:          c,
	}
}

// rootContext builds the context for a conversion's root node.
func rootContext(dir Direction, name string, kind dom.Kind) *Context {
	return &Context{
		Direction: dir,
		NodeName:  name,
		Kind:      kind,
		Path:      name,
	}
}
