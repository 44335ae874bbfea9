// Package xjx performs bidirectional, configuration-driven conversion
// between XML document trees and JSON value trees. A mapping policy
// selects how namespaces, attributes, repeated elements, empty elements
// and mixed content are represented; under the high-fidelity policy the
// JSON produced from an XML document converts back to equivalent XML.
package xjx

import "github.com/mcncl/xjx/dom"

// Converter performs conversions under one resolved configuration.
// Each conversion call runs synchronously to completion; a Converter's
// configuration is immutable, so concurrent conversions through the
// same instance are safe as long as transformer registration happens
// before the first conversion.
type Converter struct {
	cfg        *Config
	provider   dom.Provider
	pipeline   pipeline
	structural StructuralTransformer
}

// New builds a Converter with the default etree-backed document
// provider.
func New(opts Options) (*Converter, error) {
	return NewWithProvider(opts, dom.NewEtreeProvider())
}

// NewWithProvider builds a Converter using a caller-supplied document
// provider.
func NewWithProvider(opts Options, provider dom.Provider) (*Converter, error) {
	if provider == nil {
		return nil, NewEnvironmentError("document provider is nil", nil)
	}
	cfg, err := Resolve(opts)
	if err != nil {
		return nil, err
	}
	return &Converter{cfg: cfg, provider: provider}, nil
}

// Config returns a copy of the resolved configuration.
func (c *Converter) Config() Config {
	return *c.cfg
}

// AddValueTransformer registers a leaf-value transformer for the given
// direction. Transformers run in registration order on every leaf value
// whose path falls within their scope.
func (c *Converter) AddValueTransformer(dir Direction, t ValueTransformer) {
	c.pipeline.add(dir, t)
}

// SetStructuralTransformer installs the hook invoked on every element's
// child list before recursion during XML-to-JSON conversion. Passing
// nil removes the hook.
func (c *Converter) SetStructuralTransformer(fn StructuralTransformer) {
	c.structural = fn
}

// XmlToJson converts XML text to a JSON value tree using opts.
func XmlToJson(xmlText string, opts Options) (Value, error) {
	conv, err := New(opts)
	if err != nil {
		return nil, err
	}
	return conv.XmlToJson(xmlText)
}

// JsonToXml converts a JSON value tree to XML text using opts.
func JsonToXml(v Value, opts Options) (string, error) {
	conv, err := New(opts)
	if err != nil {
		return "", err
	}
	return conv.JsonToXml(v)
}
