package xjx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// JSON text parsing errors
var (
	ErrEmptyInput   = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON  = errors.New("invalid JSON format")
	ErrMultipleJSON = errors.New("multiple JSON values found at the root, only one is allowed")
)

// ParseJSON decodes a single JSON value from reader into the Value
// model. Numbers are kept as json.Number so numeric literals survive a
// round trip without float formatting drift.
func ParseJSON(reader io.Reader) (Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()

	var root Value
	if err := decoder.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewInputError("input is empty", ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		if errors.As(err, &syntaxError) {
			return nil, NewInputError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				ErrInvalidJSON,
			)
		}
		return nil, NewInputError("failed to decode JSON", err)
	}

	// Anything after the first value besides trailing whitespace is an
	// error.
	if decoder.More() {
		var trailing interface{}
		if err := decoder.Decode(&trailing); err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, NewInputError("invalid trailing data after first JSON value", err)
			}
		} else {
			return nil, NewInputError("multiple JSON values found at the root", ErrMultipleJSON)
		}
	}

	return normalizeValue(root), nil
}

// ParseJSONString decodes a single JSON value from a string.
func ParseJSONString(jsonString string) (Value, error) {
	if strings.TrimSpace(jsonString) == "" {
		return nil, NewInputError("input string is empty", ErrEmptyInput)
	}
	return ParseJSON(strings.NewReader(jsonString))
}

// normalizeValue converts raw decoded JSON types into the Value model
// types.
func normalizeValue(val Value) Value {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(Object, len(v))
		for key, value := range v {
			obj[key] = normalizeValue(value)
		}
		return obj
	case Object:
		obj := make(Object, len(v))
		for key, value := range v {
			obj[key] = normalizeValue(value)
		}
		return obj
	case []interface{}:
		arr := make(Array, len(v))
		for i, value := range v {
			arr[i] = normalizeValue(value)
		}
		return arr
	case Array:
		arr := make(Array, len(v))
		for i, value := range v {
			arr[i] = normalizeValue(value)
		}
		return arr
	default:
		return v // Primitives (string, json.Number, bool, nil) are returned as is
	}
}
