package xjx

import (
	"fmt"
	"strings"

	"github.com/mcncl/xjx/dom"
)

// Removed is a sentinel a value transformer can return to mark a leaf
// for removal. The converter's final prune pass deletes marked leaves
// and collapses any entries they leave empty.
var Removed Value = removedMarker{}

type removedMarker struct{}

// XmlToJson converts XML text to a JSON value tree. The document is
// parsed by the converter's provider; conversion then walks the tree by
// recursive descent, consulting the resolved configuration at every
// node. On failure no partial result is returned.
func (c *Converter) XmlToJson(xmlText string) (Value, error) {
	if c.provider == nil {
		return nil, NewEnvironmentError("document provider is not configured", nil)
	}

	doc, err := c.provider.Parse(xmlText)
	if err != nil {
		return nil, NewXMLParseError("failed to parse XML input", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, NewXMLParseError("document has no root element", nil)
	}

	result := Object{}

	// Comments and processing instructions outside the root element are
	// attached at the top level so a high-fidelity round trip can put
	// them back.
	for _, node := range doc.Nodes() {
		switch node.Kind() {
		case dom.KindComment:
			if c.cfg.PreserveComments {
				appendEntry(result, c.cfg.Props.Comment, node.Text())
			}
		case dom.KindProcInst:
			if c.cfg.PreserveProcInsts {
				appendEntry(result, c.cfg.Props.ProcInst, Object{
					c.cfg.Props.Target: node.Name(),
					c.cfg.Props.Value:  node.Text(),
				})
			}
		}
	}

	name := c.elementName(root)
	ctx := rootContext(XMLToJSON, name, dom.KindElement)
	ctx.NamespaceURI = root.NamespaceURI()
	ctx.NamespacePrefix = root.Space()

	v, removed, err := c.convertElement(root, ctx)
	if err != nil {
		return nil, err
	}
	if !removed {
		result[name] = v
	}

	pruned := c.prune(result)
	if _, ok := pruned.(removedMarker); ok {
		return Object{}, nil
	}
	return pruned, nil
}

// convertElement maps one element to its JSON value. The returned flag
// reports that the element's entry must be omitted from its parent.
func (c *Converter) convertElement(el dom.Node, ctx *Context) (Value, bool, error) {
	entry := Object{}
	mergedAttrs := map[string]bool{}
	var attrList Array

	for _, attr := range el.Attrs() {
		if attr.IsNamespaceDecl() {
			if !c.cfg.PreserveNamespaces {
				continue
			}
			switch c.cfg.NamespaceStrategy {
			case NamespaceProperty:
				attrList = append(attrList, Object{attr.FullKey(): attr.Value})
			case NamespacePrefix:
				entry[attr.FullKey()] = attr.Value
			}
			continue
		}
		if !c.cfg.PreserveAttributes {
			continue
		}
		name := attr.FullKey()
		v, err := c.pipeline.apply(attr.Value, ctx.attribute(name))
		if err != nil {
			return nil, false, err
		}
		switch c.cfg.AttributeStrategy {
		case AttributeMerge:
			entry[name] = v
			mergedAttrs[name] = true
		case AttributeProperty:
			attrList = append(attrList, Object{name: v})
		case AttributePrefix:
			entry[c.cfg.AttributePrefix+name] = v
		}
	}
	if len(attrList) > 0 {
		entry[c.cfg.Props.Attribute] = attrList
	}

	if c.cfg.PreserveNamespaces && c.cfg.NamespaceStrategy == NamespaceProperty {
		if uri := el.NamespaceURI(); uri != "" {
			entry[c.cfg.Props.Namespace] = uri
		}
		if prefix := el.Space(); prefix != "" {
			entry[c.cfg.Props.Prefix] = prefix
		}
	}

	children := el.Children()
	if c.structural != nil {
		result := c.structural(children, el, ctx)
		if result.Remove {
			return nil, true, nil
		}
		children = result.Value
	}

	hasText := false
	elemCount := 0
	for _, ch := range children {
		switch ch.Kind() {
		case dom.KindText:
			if c.keepText(ch.Text()) {
				hasText = true
			}
		case dom.KindElement:
			elemCount++
		}
	}
	mixed := hasText && elemCount > 0
	mergeMixed := mixed && c.cfg.MixedContentStrategy == MixedMerge
	useChildrenList := c.cfg.TextStrategy == TextProperty || mergeMixed

	var text strings.Builder
	sawText := false
	var list Array

	for _, ch := range children {
		switch ch.Kind() {
		case dom.KindElement:
			name := c.elementName(ch)
			cctx := ctx.child(name, dom.KindElement)
			cctx.NamespaceURI = ch.NamespaceURI()
			cctx.NamespacePrefix = ch.Space()
			v, removed, err := c.convertElement(ch, cctx)
			if err != nil {
				return nil, false, err
			}
			if removed {
				continue
			}
			if useChildrenList {
				list = append(list, Object{name: v})
				continue
			}
			if mergedAttrs[name] {
				return nil, false, newConfigurationErrorAt(
					fmt.Sprintf("attribute %q collides with a child element under the merge strategy", name),
					ctx.Path,
				)
			}
			appendEntry(entry, name, v)

		case dom.KindText:
			if !c.keepText(ch.Text()) {
				continue
			}
			if mergeMixed {
				v, err := c.pipeline.apply(ch.Text(), ctx)
				if err != nil {
					return nil, false, err
				}
				list = append(list, Object{c.cfg.Props.Value: v})
				continue
			}
			text.WriteString(ch.Text())
			sawText = true

		case dom.KindCData:
			if !c.cfg.PreserveCData {
				continue
			}
			v, err := c.pipeline.apply(ch.Text(), ctx)
			if err != nil {
				return nil, false, err
			}
			if useChildrenList {
				list = append(list, Object{c.cfg.Props.CData: v})
			} else {
				appendEntry(entry, c.cfg.Props.CData, v)
			}

		case dom.KindComment:
			if !c.cfg.PreserveComments {
				continue
			}
			if useChildrenList {
				list = append(list, Object{c.cfg.Props.Comment: ch.Text()})
			} else {
				appendEntry(entry, c.cfg.Props.Comment, ch.Text())
			}

		case dom.KindProcInst:
			if !c.cfg.PreserveProcInsts {
				continue
			}
			pi := Object{
				c.cfg.Props.Target: ch.Name(),
				c.cfg.Props.Value:  ch.Text(),
			}
			if useChildrenList {
				list = append(list, Object{c.cfg.Props.ProcInst: pi})
			} else {
				appendEntry(entry, c.cfg.Props.ProcInst, pi)
			}
		}
	}

	if len(list) > 0 {
		entry[c.cfg.Props.Children] = list
	}

	if sawText {
		v, err := c.pipeline.apply(text.String(), ctx)
		if err != nil {
			return nil, false, err
		}
		if c.cfg.TextStrategy == TextDirect && len(entry) == 0 {
			// Nothing but text to represent: collapse to the raw value.
			return v, false, nil
		}
		entry[c.cfg.Props.Value] = v
	}

	if len(entry) == 0 {
		switch c.cfg.EmptyElementStrategy {
		case EmptyNull:
			return nil, false, nil
		case EmptyRemove:
			return nil, true, nil
		}
	}
	return entry, false, nil
}

// elementName renders an element's JSON key, qualified with its prefix
// when prefixed names are preserved.
func (c *Converter) elementName(el dom.Node) string {
	if c.cfg.PreservePrefixedNames && el.Space() != "" {
		return el.Space() + ":" + el.Name()
	}
	return el.Name()
}

// keepText reports whether a text node survives the preservation flags.
func (c *Converter) keepText(s string) bool {
	if !c.cfg.PreserveTextNodes {
		return false
	}
	if strings.TrimSpace(s) == "" {
		return c.cfg.PreserveWhitespace
	}
	return true
}

// appendEntry adds v under key, grouping repeated keys into one ordered
// array instead of overwriting.
func appendEntry(entry Object, key string, v Value) {
	existing, ok := entry[key]
	if !ok {
		entry[key] = v
		return
	}
	if arr, ok := existing.(Array); ok {
		entry[key] = append(arr, v)
		return
	}
	entry[key] = Array{existing, v}
}

// prune is the second pass over a converted tree: it deletes leaves
// marked Removed by transformers and collapses entries they emptied.
func (c *Converter) prune(v Value) Value {
	switch t := v.(type) {
	case Object:
		deleted := false
		for key, val := range t {
			p := c.prune(val)
			if _, ok := p.(removedMarker); ok {
				delete(t, key)
				deleted = true
				continue
			}
			t[key] = p
		}
		if deleted && len(t) == 0 {
			return Removed
		}
		return t
	case Array:
		out := make(Array, 0, len(t))
		for _, item := range t {
			p := c.prune(item)
			if _, ok := p.(removedMarker); ok {
				continue
			}
			out = append(out, p)
		}
		if len(out) == 0 && len(t) > 0 {
			return Removed
		}
		return out
	default:
		return t
	}
}
