package jsondiffpatch

import (
	"strings"

	"github.com/goccy/go-json"
)

// The string entry points parse their inputs, run the typed operation
// and serialize the result. All failures are absorbed into the empty
// string, which doubles as the "no output" sentinel: a nil diff and a
// parse error are indistinguishable here. Callers that need to tell
// them apart use the typed API.

// DiffString diffs two JSON documents and returns the serialized delta,
// or "" when the documents are equal or either input is invalid.
func (d *DiffPatcher) DiffString(left, right string) string {
	leftValue, err := unmarshalDocument(left)
	if err != nil {
		return ""
	}
	rightValue, err := unmarshalDocument(right)
	if err != nil {
		return ""
	}
	return marshalResult(d.Diff(leftValue, rightValue))
}

// PatchString applies a serialized delta to a JSON document, returning
// the serialized result or "" on any failure.
func (d *DiffPatcher) PatchString(left, delta string) string {
	leftValue, err := unmarshalDocument(left)
	if err != nil {
		return ""
	}
	deltaValue, err := unmarshalDelta(delta)
	if err != nil {
		return ""
	}
	result, err := d.Patch(leftValue, deltaValue)
	if err != nil {
		return ""
	}
	return marshalResult(result)
}

// UnpatchString reverses a serialized delta against a JSON document,
// returning the serialized result or "" on any failure.
func (d *DiffPatcher) UnpatchString(right, delta string) string {
	rightValue, err := unmarshalDocument(right)
	if err != nil {
		return ""
	}
	deltaValue, err := unmarshalDelta(delta)
	if err != nil {
		return ""
	}
	result, err := d.Unpatch(rightValue, deltaValue)
	if err != nil {
		return ""
	}
	return marshalResult(result)
}

// unmarshalDocument parses a JSON document, treating the empty input as
// the empty-string document.
func unmarshalDocument(s string) (interface{}, error) {
	if s == "" {
		return "", nil
	}
	return unmarshalValue(s)
}

// unmarshalDelta parses a serialized delta, treating the empty input as
// the null delta.
func unmarshalDelta(s string) (interface{}, error) {
	if s == "" {
		return nil, nil
	}
	return unmarshalValue(s)
}

func unmarshalValue(s string) (interface{}, error) {
	var v interface{}
	decoder := json.NewDecoder(strings.NewReader(s))
	decoder.UseNumber()
	if err := decoder.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func marshalResult(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
