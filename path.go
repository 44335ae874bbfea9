package xjx

import "strings"

// GetPath resolves a dot-separated logical path against a JSON value
// tree, using the converter's configured children property name. See
// the package-level GetPath for the resolution rules.
func (c *Converter) GetPath(tree Value, path string, fallback Value) Value {
	return getPath(tree, path, fallback, c.cfg.Props.Children)
}

// GetPath resolves a dot-separated logical path against a JSON value
// tree. Each segment is first matched against a direct key; failing
// that, the children collection is searched for entries keyed by the
// segment, with multiple matches combined into one array. The fallback
// is returned when any segment is unresolvable. Uses the default
// children property name ("$children").
func GetPath(tree Value, path string, fallback Value) Value {
	return getPath(tree, path, fallback, DefaultOptions().Properties.Children)
}

func getPath(tree Value, path string, fallback Value, childrenKey string) Value {
	if path == "" {
		return tree
	}
	current := normalizeValue(tree)
	for _, segment := range strings.Split(path, ".") {
		next, ok := resolveSegment(current, segment, childrenKey)
		if !ok {
			return fallback
		}
		current = next
	}
	return current
}

func resolveSegment(v Value, segment, childrenKey string) (Value, bool) {
	switch t := v.(type) {
	case Object:
		if val, ok := t[segment]; ok {
			return val, true
		}
		// Fall through to the children collection so logical paths do
		// not need to spell out the collection key.
		children, ok := t[childrenKey].(Array)
		if !ok {
			return nil, false
		}
		return collectMatches(children, segment)
	case Array:
		return collectMatches(t, segment)
	default:
		return nil, false
	}
}

// collectMatches resolves segment against every entry of a list,
// flattening the matches into a combined result.
func collectMatches(list Array, segment string) (Value, bool) {
	var matches Array
	for _, item := range list {
		obj, ok := item.(Object)
		if !ok {
			continue
		}
		if val, ok := obj[segment]; ok {
			matches = append(matches, val)
		}
	}
	switch len(matches) {
	case 0:
		return nil, false
	case 1:
		return matches[0], true
	default:
		return matches, true
	}
}
