package xjx

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONString_Object(t *testing.T) {
	result, err := ParseJSONString(`{"name":"John","age":30,"active":true,"tags":["a","b"],"extra":null}`)
	require.NoError(t, err)

	expected := Object{
		"name":   "John",
		"age":    json.Number("30"),
		"active": true,
		"tags":   Array{"a", "b"},
		"extra":  nil,
	}
	assert.Equal(t, expected, result)
}

func TestParseJSONString_NestedStructuresAreNormalized(t *testing.T) {
	result, err := ParseJSONString(`{"order":{"items":[{"sku":"A-1","qty":2}]}}`)
	require.NoError(t, err)

	order, ok := result.(Object)["order"].(Object)
	require.True(t, ok)
	items, ok := order["items"].(Array)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, Object{"sku": "A-1", "qty": json.Number("2")}, items[0])
}

func TestParseJSONString_NumbersKeepTheirLiterals(t *testing.T) {
	result, err := ParseJSONString(`{"price":19.90,"big":12345678901234567890}`)
	require.NoError(t, err)

	obj := result.(Object)
	assert.Equal(t, json.Number("19.90"), obj["price"])
	assert.Equal(t, json.Number("12345678901234567890"), obj["big"])
}

func TestParseJSONString_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
	}{
		{"empty string", "", ErrEmptyInput},
		{"whitespace only", "  \n\t ", ErrEmptyInput},
		{"malformed", `{"a":}`, ErrInvalidJSON},
		{"unclosed object", `{"a":1`, nil},
		{"two root values", `{"a":1} {"b":2}`, ErrMultipleJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSONString(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, &Error{Type: ErrorTypeInput}))
			if tt.sentinel != nil {
				assert.True(t, errors.Is(err, tt.sentinel))
			}
		})
	}
}

func TestParseJSON_TrailingWhitespaceIsFine(t *testing.T) {
	result, err := ParseJSON(strings.NewReader("{\"a\":\"1\"}\n\n"))
	require.NoError(t, err)
	assert.Equal(t, Object{"a": "1"}, result)
}

func TestParseJSON_ScalarRoots(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{`"hello"`, "hello"},
		{`42`, json.Number("42")},
		{`false`, false},
		{`null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result, err := ParseJSONString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}
