package dom

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

const declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// EtreeProvider implements Provider on top of github.com/beevik/etree.
type EtreeProvider struct{}

// NewEtreeProvider returns the default document provider.
func NewEtreeProvider() *EtreeProvider {
	return &EtreeProvider{}
}

func (p *EtreeProvider) Parse(xmlText string) (Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromString(xmlText); err != nil {
		return nil, err
	}
	return &etreeDocument{doc: doc}, nil
}

func (p *EtreeProvider) NewDocument() Document {
	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	return &etreeDocument{doc: doc}
}

type etreeDocument struct {
	doc *etree.Document
}

func (d *etreeDocument) Root() Element {
	root := d.doc.Root()
	if root == nil {
		return nil
	}
	return &etreeElement{el: root}
}

func (d *etreeDocument) Nodes() []Node {
	return wrapTokens(d.doc.Child)
}

func (d *etreeDocument) AddElement(name string) Element {
	return &etreeElement{el: d.doc.CreateElement(name)}
}

func (d *etreeDocument) AddComment(text string) {
	d.doc.CreateComment(text)
}

func (d *etreeDocument) AddProcInst(target, inst string) {
	d.doc.CreateProcInst(target, inst)
}

func (d *etreeDocument) Serialize(opts SerializeOptions) (string, error) {
	if opts.Pretty {
		indent := opts.Indent
		if indent <= 0 {
			indent = 2
		}
		d.doc.Indent(indent)
	}
	out, err := d.doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}
	out = strings.TrimRight(out, "\n")
	if opts.Declaration {
		out = declaration + "\n" + out
	}
	return out, nil
}

type etreeElement struct {
	el *etree.Element
}

func (e *etreeElement) Kind() Kind           { return KindElement }
func (e *etreeElement) Name() string         { return e.el.Tag }
func (e *etreeElement) Space() string        { return e.el.Space }
func (e *etreeElement) NamespaceURI() string { return e.el.NamespaceURI() }
func (e *etreeElement) Text() string         { return "" }

func (e *etreeElement) Attrs() []Attr {
	attrs := make([]Attr, 0, len(e.el.Attr))
	for _, a := range e.el.Attr {
		attrs = append(attrs, Attr{Space: a.Space, Key: a.Key, Value: a.Value})
	}
	return attrs
}

func (e *etreeElement) Children() []Node {
	return wrapTokens(e.el.Child)
}

func (e *etreeElement) AddElement(name string) Element {
	return &etreeElement{el: e.el.CreateElement(name)}
}

func (e *etreeElement) AddAttr(key, value string) {
	e.el.CreateAttr(key, value)
}

func (e *etreeElement) AddText(text string) {
	e.el.CreateText(text)
}

func (e *etreeElement) AddCData(text string) {
	e.el.CreateCData(text)
}

func (e *etreeElement) AddComment(text string) {
	e.el.CreateComment(text)
}

func (e *etreeElement) AddProcInst(target, inst string) {
	e.el.CreateProcInst(target, inst)
}

type etreeCharData struct {
	cd *etree.CharData
}

func (c *etreeCharData) Kind() Kind {
	if c.cd.IsCData() {
		return KindCData
	}
	return KindText
}

func (c *etreeCharData) Name() string         { return "" }
func (c *etreeCharData) Space() string        { return "" }
func (c *etreeCharData) NamespaceURI() string { return "" }
func (c *etreeCharData) Text() string         { return c.cd.Data }
func (c *etreeCharData) Attrs() []Attr        { return nil }
func (c *etreeCharData) Children() []Node     { return nil }

type etreeComment struct {
	cm *etree.Comment
}

func (c *etreeComment) Kind() Kind            { return KindComment }
func (c *etreeComment) Name() string          { return "" }
func (c *etreeComment) Space() string         { return "" }
func (c *etreeComment) NamespaceURI() string  { return "" }
func (c *etreeComment) Text() string          { return c.cm.Data }
func (c *etreeComment) Attrs() []Attr         { return nil }
func (c *etreeComment) Children() []Node      { return nil }

type etreeProcInst struct {
	pi *etree.ProcInst
}

func (p *etreeProcInst) Kind() Kind           { return KindProcInst }
func (p *etreeProcInst) Name() string         { return p.pi.Target }
func (p *etreeProcInst) Space() string        { return "" }
func (p *etreeProcInst) NamespaceURI() string { return "" }
func (p *etreeProcInst) Text() string         { return p.pi.Inst }
func (p *etreeProcInst) Attrs() []Attr        { return nil }
func (p *etreeProcInst) Children() []Node     { return nil }

// wrapTokens maps etree tokens onto the Node surface, dropping directives
// (DOCTYPE) and the XML declaration, which the engine re-emits from
// configuration rather than carrying through the value tree.
func wrapTokens(tokens []etree.Token) []Node {
	nodes := make([]Node, 0, len(tokens))
	for _, token := range tokens {
		switch t := token.(type) {
		case *etree.Element:
			nodes = append(nodes, &etreeElement{el: t})
		case *etree.CharData:
			nodes = append(nodes, &etreeCharData{cd: t})
		case *etree.Comment:
			nodes = append(nodes, &etreeComment{cm: t})
		case *etree.ProcInst:
			if t.Target == "xml" {
				continue
			}
			nodes = append(nodes, &etreeProcInst{pi: t})
		}
	}
	return nodes
}
