package xjx

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/mcncl/xjx/dom"
)

// ValueTransformer maps one leaf value to another during conversion.
// Transformers only ever see primitives, never objects or arrays, and
// must not carry state between calls: the contract is a pure
// value-to-value pipeline per leaf.
type ValueTransformer interface {
	// Paths returns the dot-path scopes the transformer fires on. An
	// empty slice means unscoped. A "*" segment matches exactly one
	// path segment, so "a.*" covers every direct child of "a" and
	// nothing deeper.
	Paths() []string
	// Transform returns a possibly-different value of possibly-different
	// type for the leaf at ctx.
	Transform(v Value, ctx *Context) (Value, error)
}

// StructuralResult is the tagged result of a structural transformer:
// the replacement child list plus a removal flag that, when set, omits
// the current element's own entry from its parent entirely.
type StructuralResult struct {
	Value  []dom.Node
	Remove bool
}

// StructuralTransformer reshapes an element's child list before the
// converter recurses into it. Non-element children (text, cdata,
// comments, processing instructions) should be passed through unchanged
// unless explicitly targeted.
type StructuralTransformer func(children []dom.Node, parent dom.Node, ctx *Context) StructuralResult

type registeredTransformer struct {
	direction   Direction
	transformer ValueTransformer
}

// pipeline applies registered value transformers in registration order,
// skipping any whose direction or path scope does not match.
type pipeline struct {
	transformers []registeredTransformer
}

func (p *pipeline) add(dir Direction, t ValueTransformer) {
	p.transformers = append(p.transformers, registeredTransformer{direction: dir, transformer: t})
}

func (p *pipeline) apply(v Value, ctx *Context) (Value, error) {
	for _, rt := range p.transformers {
		if rt.direction != ctx.Direction {
			continue
		}
		if !pathInScope(rt.transformer.Paths(), ctx.Path) {
			continue
		}
		next, err := rt.transformer.Transform(v, ctx)
		if err != nil {
			return nil, err
		}
		v = next
	}
	return v, nil
}

func pathInScope(scopes []string, path string) bool {
	if len(scopes) == 0 {
		return true
	}
	for _, scope := range scopes {
		if matchPath(scope, path) {
			return true
		}
	}
	return false
}

func matchPath(pattern, path string) bool {
	patternSegs := strings.Split(pattern, ".")
	pathSegs := strings.Split(path, ".")
	if len(patternSegs) != len(pathSegs) {
		return false
	}
	for i, seg := range patternSegs {
		if seg != "*" && seg != pathSegs[i] {
			return false
		}
	}
	return true
}

var numberPattern = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?([eE][+-]?\d+)?$`)

// NumberTransformer converts numeric-looking strings to JSON numbers on
// the way in, and numbers back to their literal strings on the way out.
type NumberTransformer struct {
	paths []string
}

// NewNumberTransformer builds a number transformer scoped to paths, or
// unscoped when none are given.
func NewNumberTransformer(paths ...string) *NumberTransformer {
	return &NumberTransformer{paths: paths}
}

func (t *NumberTransformer) Paths() []string { return t.paths }

func (t *NumberTransformer) Transform(v Value, ctx *Context) (Value, error) {
	switch ctx.Direction {
	case XMLToJSON:
		if s, ok := v.(string); ok && numberPattern.MatchString(s) {
			return json.Number(s), nil
		}
	case JSONToXML:
		if n, ok := v.(json.Number); ok {
			return n.String(), nil
		}
	}
	return v, nil
}

// BooleanTransformer converts "true"/"false" strings to booleans on the
// way in, and booleans back to strings on the way out.
type BooleanTransformer struct {
	paths []string
}

// NewBooleanTransformer builds a boolean transformer scoped to paths,
// or unscoped when none are given.
func NewBooleanTransformer(paths ...string) *BooleanTransformer {
	return &BooleanTransformer{paths: paths}
}

func (t *BooleanTransformer) Paths() []string { return t.paths }

func (t *BooleanTransformer) Transform(v Value, ctx *Context) (Value, error) {
	switch ctx.Direction {
	case XMLToJSON:
		switch v {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
	case JSONToXML:
		if b, ok := v.(bool); ok {
			if b {
				return "true", nil
			}
			return "false", nil
		}
	}
	return v, nil
}

// RegexTransformer rewrites string leaves with a compiled regular
// expression replacement.
type RegexTransformer struct {
	pattern     *regexp.Regexp
	replacement string
	paths       []string
}

// NewRegexTransformer compiles pattern and returns a transformer that
// applies ReplaceAllString with replacement on matching string leaves.
func NewRegexTransformer(pattern, replacement string, paths ...string) (*RegexTransformer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, NewConfigurationError("invalid transformer pattern "+pattern, err)
	}
	return &RegexTransformer{pattern: re, replacement: replacement, paths: paths}, nil
}

func (t *RegexTransformer) Paths() []string { return t.paths }

func (t *RegexTransformer) Transform(v Value, ctx *Context) (Value, error) {
	if s, ok := v.(string); ok {
		return t.pattern.ReplaceAllString(s, t.replacement), nil
	}
	return v, nil
}
