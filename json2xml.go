package xjx

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/xjx/dom"
)

// JsonToXml converts a JSON value tree to XML text, applying the same
// resolved configuration as the XML-to-JSON direction in reverse. Keys
// matching the property-name or prefix tables are rematerialized as
// their XML constructs; ordinary keys become child elements.
func (c *Converter) JsonToXml(v Value) (string, error) {
	if c.provider == nil {
		return "", NewEnvironmentError("document provider is not configured", nil)
	}

	doc := c.provider.NewDocument()
	if err := c.buildDocument(doc, normalizeValue(v)); err != nil {
		return "", err
	}
	return doc.Serialize(dom.SerializeOptions{
		Declaration: c.cfg.Declaration,
		Pretty:      c.cfg.Pretty,
		Indent:      c.cfg.Indent,
	})
}

// JsonTextToXml parses JSON text and converts the decoded value to XML.
func (c *Converter) JsonTextToXml(jsonText string) (string, error) {
	v, err := ParseJSONString(jsonText)
	if err != nil {
		return "", err
	}
	return c.JsonToXml(v)
}

func (c *Converter) buildDocument(doc dom.Document, v Value) error {
	root, ok := v.(Object)
	if !ok {
		// Arrays and primitives lack a root element name entirely.
		return c.buildRoot(doc, c.cfg.FragmentRoot, v)
	}

	var elemKeys []string
	fragment := false
	var docComments, docPIs Value
	for key := range root {
		switch key {
		case c.cfg.Props.Comment:
			docComments = root[key]
		case c.cfg.Props.ProcInst:
			docPIs = root[key]
		default:
			if c.cfg.isSpecialKey(key) || c.isAttributeKey(key) || c.isNamespaceKey(key) {
				fragment = true
				continue
			}
			elemKeys = append(elemKeys, key)
		}
	}

	if fragment || len(elemKeys) != 1 {
		// No single root element: wrap everything under the fragment
		// root, special keys included.
		return c.buildRoot(doc, c.cfg.FragmentRoot, root)
	}

	// Document-level processing instructions and comments come back
	// ahead of the root element.
	if docPIs != nil {
		if err := c.addProcInsts(doc, docPIs, elemKeys[0]); err != nil {
			return err
		}
	}
	if docComments != nil {
		for _, comment := range asArray(docComments) {
			s, ok := leafString(comment)
			if !ok {
				return NewJSONToXMLError("comment payload is not a primitive", elemKeys[0], nil)
			}
			doc.AddComment(s)
		}
	}

	return c.buildRoot(doc, elemKeys[0], root[elemKeys[0]])
}

func (c *Converter) buildRoot(doc dom.Document, name string, v Value) error {
	tag := name
	if obj, ok := v.(Object); ok {
		if prefix, ok := obj[c.cfg.Props.Prefix].(string); ok && prefix != "" && !strings.Contains(tag, ":") {
			tag = prefix + ":" + tag
		}
	}
	el := doc.AddElement(c.sanitizeElementName(tag))
	ctx := rootContext(JSONToXML, name, dom.KindElement)
	if obj, ok := v.(Object); ok {
		if uri, ok := obj[c.cfg.Props.Namespace].(string); ok {
			ctx.NamespaceURI = uri
		}
		if prefix, ok := obj[c.cfg.Props.Prefix].(string); ok {
			ctx.NamespacePrefix = prefix
		}
	}
	return c.populateElement(el, v, ctx)
}

// populateElement writes v's content into el: attributes and namespace
// declarations first, then text, cdata, child elements, the ordered
// children collection, comments and processing instructions.
func (c *Converter) populateElement(el dom.Element, v Value, ctx *Context) error {
	switch t := v.(type) {
	case nil:
		return nil

	case Object:
		return c.populateFromObject(el, t, ctx)

	case Array:
		// A bare array as element content: wrap each entry in the
		// configured item element, since the entries carry no name.
		itemName := c.cfg.itemNameFor(ctx.NodeName)
		for _, item := range t {
			if err := c.buildChild(el, itemName, item, ctx); err != nil {
				return err
			}
		}
		return nil

	default:
		out, err := c.leafText(t, ctx)
		if err != nil {
			return err
		}
		if out != "" {
			el.AddText(out)
		}
		return nil
	}
}

func (c *Converter) populateFromObject(el dom.Element, obj Object, ctx *Context) error {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	// The children collection carries authoritative document order;
	// everything else is emitted in sorted key order for determinism.
	sort.Strings(keys)

	declared := map[string]bool{}
	var textVal, cdataVal, commentVal, piVal, childrenVal Value
	haveText := false

	for _, key := range keys {
		val := obj[key]
		switch {
		case key == c.cfg.Props.Children:
			childrenVal = val
		case key == c.cfg.Props.Value:
			textVal = val
			haveText = true
		case key == c.cfg.Props.CData:
			cdataVal = val
		case key == c.cfg.Props.Comment:
			commentVal = val
		case key == c.cfg.Props.ProcInst:
			piVal = val
		case key == c.cfg.Props.Namespace, key == c.cfg.Props.Prefix:
			// Handled below once attributes are known.
		case key == c.cfg.Props.Target:
			return NewJSONToXMLError("target property outside a processing instruction", ctx.Path, nil)
		case key == c.cfg.Props.Attribute:
			if err := c.addAttributeList(el, val, ctx, declared); err != nil {
				return err
			}
		case c.isNamespaceKey(key):
			s, ok := leafString(val)
			if !ok {
				return NewJSONToXMLError(fmt.Sprintf("namespace declaration %q is not a primitive", key), ctx.Path, nil)
			}
			el.AddAttr(key, s)
			declared[key] = true
		case c.isAttributeKey(key):
			if err := c.addAttribute(el, strings.TrimPrefix(key, c.cfg.AttributePrefix), val, ctx, declared); err != nil {
				return err
			}
		default:
			if err := c.buildChild(el, key, val, ctx); err != nil {
				return err
			}
		}
	}

	if err := c.declareNamespace(el, obj, ctx, declared); err != nil {
		return err
	}

	if haveText {
		out, err := c.leafText(textVal, ctx)
		if err != nil {
			return err
		}
		if out != "" {
			el.AddText(out)
		}
	}

	if cdataVal != nil {
		for _, item := range asArray(cdataVal) {
			out, err := c.leafText(item, ctx)
			if err != nil {
				return err
			}
			el.AddCData(out)
		}
	}

	if childrenVal != nil {
		if err := c.addChildren(el, childrenVal, ctx); err != nil {
			return err
		}
	}

	if commentVal != nil {
		for _, item := range asArray(commentVal) {
			s, ok := leafString(item)
			if !ok {
				return NewJSONToXMLError("comment payload is not a primitive", ctx.Path, nil)
			}
			el.AddComment(s)
		}
	}

	if piVal != nil {
		if err := c.addProcInsts(el, piVal, ctx.Path); err != nil {
			return err
		}
	}

	return nil
}

// addChildren replays the ordered children collection: single-key
// records become elements or special constructs, bare strings become
// text fragments.
func (c *Converter) addChildren(el dom.Element, v Value, ctx *Context) error {
	list, ok := v.(Array)
	if !ok {
		return NewJSONToXMLError("children collection is not an array", ctx.Path, nil)
	}
	for _, item := range list {
		switch entry := item.(type) {
		case Object:
			key, ok := singleKey(entry)
			if !ok {
				return NewJSONToXMLError("child entry must hold exactly one key", ctx.Path, nil)
			}
			val := entry[key]
			switch key {
			case c.cfg.Props.Value:
				out, err := c.leafText(val, ctx)
				if err != nil {
					return err
				}
				if out != "" {
					el.AddText(out)
				}
			case c.cfg.Props.CData:
				out, err := c.leafText(val, ctx)
				if err != nil {
					return err
				}
				el.AddCData(out)
			case c.cfg.Props.Comment:
				s, ok := leafString(val)
				if !ok {
					return NewJSONToXMLError("comment payload is not a primitive", ctx.Path, nil)
				}
				el.AddComment(s)
			case c.cfg.Props.ProcInst:
				if err := c.addProcInsts(el, val, ctx.Path); err != nil {
					return err
				}
			default:
				if err := c.buildChild(el, key, val, ctx); err != nil {
					return err
				}
			}
		default:
			// Bare primitives in the collection are text fragments.
			out, err := c.leafText(item, ctx)
			if err != nil {
				return err
			}
			if out != "" {
				el.AddText(out)
			}
		}
	}
	return nil
}

// buildChild creates one or more child elements named name for v.
// An array value produces N sibling elements preserving order.
func (c *Converter) buildChild(parent dom.Element, name string, v Value, ctx *Context) error {
	if arr, ok := v.(Array); ok {
		for _, item := range arr {
			if inner, ok := item.(Array); ok {
				// A nested array has no element name of its own; its
				// entries get the configured item name.
				el := parent.AddElement(c.sanitizeElementName(name))
				cctx := ctx.child(name, dom.KindElement)
				if err := c.populateElement(el, inner, cctx); err != nil {
					return err
				}
				continue
			}
			if err := c.buildChild(parent, name, item, ctx); err != nil {
				return err
			}
		}
		return nil
	}

	tag := name
	cctx := ctx.child(name, dom.KindElement)
	if obj, ok := v.(Object); ok {
		if prefix, ok := obj[c.cfg.Props.Prefix].(string); ok && prefix != "" && !strings.Contains(tag, ":") {
			tag = prefix + ":" + tag
		}
		if uri, ok := obj[c.cfg.Props.Namespace].(string); ok {
			cctx.NamespaceURI = uri
		}
		if prefix, ok := obj[c.cfg.Props.Prefix].(string); ok {
			cctx.NamespacePrefix = prefix
		}
	}

	el := parent.AddElement(c.sanitizeElementName(tag))
	return c.populateElement(el, v, cctx)
}

// declareNamespace re-emits an xmlns declaration derived from the
// namespace property, unless an explicit declaration attribute is
// already present or the namespace is inherited unchanged.
func (c *Converter) declareNamespace(el dom.Element, obj Object, ctx *Context, declared map[string]bool) error {
	uriVal, ok := obj[c.cfg.Props.Namespace]
	if !ok {
		return nil
	}
	uri, ok := uriVal.(string)
	if !ok {
		return NewJSONToXMLError("namespace property is not a string", ctx.Path, nil)
	}
	prefix := ""
	if p, ok := obj[c.cfg.Props.Prefix].(string); ok {
		prefix = p
	}

	declKey := "xmlns"
	if prefix != "" {
		declKey = c.cfg.NamespacePrefix + prefix
	}
	if declared[declKey] {
		return nil
	}
	if parent := ctx.Parent(); parent != nil &&
		parent.NamespaceURI == uri && parent.NamespacePrefix == prefix {
		return nil
	}
	el.AddAttr(declKey, uri)
	return nil
}

// addAttributeList rematerializes the nested attribute collection:
// an array of single-key records, or a plain object for hand-written
// input.
func (c *Converter) addAttributeList(el dom.Element, v Value, ctx *Context, declared map[string]bool) error {
	switch t := v.(type) {
	case Array:
		for _, item := range t {
			obj, ok := item.(Object)
			if !ok {
				return NewJSONToXMLError("attribute entry is not an object", ctx.Path, nil)
			}
			key, ok := singleKey(obj)
			if !ok {
				return NewJSONToXMLError("attribute entry must hold exactly one key", ctx.Path, nil)
			}
			if err := c.addAttribute(el, key, obj[key], ctx, declared); err != nil {
				return err
			}
		}
		return nil
	case Object:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := c.addAttribute(el, key, t[key], ctx, declared); err != nil {
				return err
			}
		}
		return nil
	default:
		return NewJSONToXMLError("attribute collection is neither array nor object", ctx.Path, nil)
	}
}

func (c *Converter) addAttribute(el dom.Element, name string, v Value, ctx *Context, declared map[string]bool) error {
	if !IsLeaf(v) {
		return NewJSONToXMLError(fmt.Sprintf("attribute %q value is not a primitive", name), ctx.Path, nil)
	}
	out, err := c.pipeline.apply(v, ctx.attribute(name))
	if err != nil {
		return err
	}
	s, ok := leafString(out)
	if !ok {
		return NewJSONToXMLError(fmt.Sprintf("attribute %q value is not a primitive", name), ctx.Path, nil)
	}
	el.AddAttr(name, s)
	if c.isNamespaceKey(name) {
		declared[name] = true
	}
	return nil
}

// procInstAdder abstracts over documents and elements, both of which
// accept processing instructions.
type procInstAdder interface {
	AddProcInst(target, inst string)
}

func (c *Converter) addProcInsts(adder procInstAdder, v Value, path string) error {
	for _, item := range asArray(v) {
		obj, ok := item.(Object)
		if !ok {
			return NewJSONToXMLError("processing instruction payload is not an object", path, nil)
		}
		target, ok := obj[c.cfg.Props.Target].(string)
		if !ok || target == "" {
			return NewJSONToXMLError("processing instruction is missing its target", path, nil)
		}
		inst, ok := leafString(obj[c.cfg.Props.Value])
		if !ok {
			return NewJSONToXMLError("processing instruction payload is not a primitive", path, nil)
		}
		adder.AddProcInst(target, inst)
	}
	return nil
}

// leafText runs a leaf value through the pipeline and renders it as
// text content.
func (c *Converter) leafText(v Value, ctx *Context) (string, error) {
	if !IsLeaf(v) {
		// Transformers only ever see leaves; reject the shape before
		// the pipeline runs.
		return "", NewJSONToXMLError(
			fmt.Sprintf("value of type %T cannot be rendered as text", v), ctx.Path, nil)
	}
	out, err := c.pipeline.apply(v, ctx)
	if err != nil {
		return "", err
	}
	s, ok := leafString(out)
	if !ok {
		return "", NewJSONToXMLError(
			fmt.Sprintf("value of type %T cannot be rendered as text", out), ctx.Path, nil)
	}
	return s, nil
}

func (c *Converter) isAttributeKey(key string) bool {
	return strings.HasPrefix(key, c.cfg.AttributePrefix) && len(key) > len(c.cfg.AttributePrefix)
}

func (c *Converter) isNamespaceKey(key string) bool {
	if key == "xmlns" {
		return true
	}
	return strings.HasPrefix(key, c.cfg.NamespacePrefix) && len(key) > len(c.cfg.NamespacePrefix)
}

// asArray views v as a list, wrapping a scalar in a one-element array.
func asArray(v Value) Array {
	if arr, ok := v.(Array); ok {
		return arr
	}
	return Array{v}
}

// leafString renders a primitive as its XML text form.
func leafString(v Value) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", true
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		if t {
			return "true", true
		}
		return "false", true
	default:
		return "", false
	}
}

var xmlNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9._\-]*(:[A-Za-z_][A-Za-z0-9._\-]*)?$`)

var xmlNameInvalidChars = regexp.MustCompile(`[^A-Za-z0-9._\-:]`)

// sanitizeElementName coerces a JSON key into a plausible XML element
// name. Keys that are already valid pass through untouched.
func (c *Converter) sanitizeElementName(name string) string {
	if xmlNamePattern.MatchString(name) {
		return name
	}
	s := strcase.ToSnake(name)
	s = xmlNameInvalidChars.ReplaceAllString(s, "_")
	if s == "" {
		return "_"
	}
	if first := s[0]; first >= '0' && first <= '9' || first == '.' || first == '-' || first == ':' {
		s = "_" + s
	}
	return s
}
