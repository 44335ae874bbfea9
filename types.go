package xjx

// Value is a generic type representing any JSON value: a string,
// json.Number, boolean, nil, Object or Array.
type Value interface{}

// Object represents a JSON object, a map of strings to Values.
type Object map[string]Value

// Array represents a JSON array, a slice of Values.
type Array []Value

// IsLeaf reports whether v is a primitive (string, number, boolean or
// null) rather than an Object or Array.
func IsLeaf(v Value) bool {
	switch v.(type) {
	case Object, Array:
		return false
	default:
		return true
	}
}

// singleKey returns the only key of obj when obj has exactly one entry.
func singleKey(obj Object) (string, bool) {
	if len(obj) != 1 {
		return "", false
	}
	for k := range obj {
		return k, true
	}
	return "", false
}
