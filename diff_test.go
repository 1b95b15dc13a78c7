package jsondiffpatch

import (
	"strings"
	"testing"

	"github.com/benitogf/jsondiff"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	decoder := json.NewDecoder(strings.NewReader(s))
	decoder.UseNumber()
	require.NoError(t, decoder.Decode(&v))
	return v
}

// assertWire serializes a delta and compares it against the expected
// wire format; object key order is not significant.
func assertWire(t *testing.T, want string, got interface{}) {
	t.Helper()
	require.NotNil(t, got)
	b, err := json.Marshal(got)
	require.NoError(t, err)
	opts := jsondiff.DefaultConsoleOptions()
	result, report := jsondiff.Compare([]byte(want), b, &opts)
	assert.Equal(t, jsondiff.FullMatch, result, report)
}

func TestDiffEqualValues(t *testing.T) {
	d := New()
	assert.Nil(t, d.Diff(mustParse(t, `{"x":1,"y":2}`), mustParse(t, `{"x":1,"y":2}`)))
	assert.Nil(t, d.Diff(mustParse(t, `[1,2,3]`), mustParse(t, `[1,2,3]`)))
	assert.Nil(t, d.Diff("same", "same"))
	assert.Nil(t, d.Diff(nil, nil))
}

func TestDiffObjectValueChange(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `{"x":1,"y":2}`), mustParse(t, `{"x":1,"y":3}`))
	assertWire(t, `{"y":[2,3]}`, delta)
}

func TestDiffObjectAddition(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `{"x":1}`), mustParse(t, `{"x":1,"y":2}`))
	assertWire(t, `{"y":[2]}`, delta)
}

func TestDiffObjectDeletion(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `{"x":1,"y":2}`), mustParse(t, `{"x":1}`))
	assertWire(t, `{"y":[2,0,0]}`, delta)
}

func TestDiffNestedObject(t *testing.T) {
	d := New()
	delta := d.Diff(
		mustParse(t, `{"a":{"b":{"c":1}},"z":true}`),
		mustParse(t, `{"a":{"b":{"c":2}},"z":true}`),
	)
	assertWire(t, `{"a":{"b":{"c":[1,2]}}}`, delta)
}

func TestDiffKindChange(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `{"a":1}`), mustParse(t, `{"a":"one"}`))
	assertWire(t, `{"a":[1,"one"]}`, delta)
}

func TestDiffTopLevelKindChange(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `{"a":1}`), mustParse(t, `[1]`))
	assertWire(t, `[{"a":1},[1]]`, delta)
}

func TestDiffNullLeaf(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `{"a":null}`), mustParse(t, `{"a":1}`))
	assertWire(t, `{"a":[null,1]}`, delta)
}

func TestDiffNumberRepresentations(t *testing.T) {
	d := New()
	// 1 and 1.0 are the same value
	assert.Nil(t, d.Diff(mustParse(t, `{"a":1}`), mustParse(t, `{"a":1.0}`)))
	// integers wider than a float64 mantissa keep full precision
	delta := d.Diff(mustParse(t, `{"a":9999999999999999}`), mustParse(t, `{"a":9999999999999998}`))
	assertWire(t, `{"a":[9999999999999999,9999999999999998]}`, delta)
}

func TestDiffArrayAppend(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `[1,2]`), mustParse(t, `[1,2,3]`))
	assertWire(t, `{"_t":"a","2":[3]}`, delta)
}

func TestDiffArrayRemoveTail(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `[1,2,3]`), mustParse(t, `[1,2]`))
	assertWire(t, `{"_t":"a","_2":[3,0,0]}`, delta)
}

func TestDiffArrayMiddleModification(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `[1,2,3]`), mustParse(t, `[1,2,4]`))
	assertWire(t, `{"_t":"a","_2":[3,0,0],"2":[4]}`, delta)
}

func TestDiffArrayPrepend(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `[2,3]`), mustParse(t, `[1,2,3]`))
	assertWire(t, `{"_t":"a","0":[1]}`, delta)
}

func TestDiffArrayRemoveHead(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `[1,2,3]`), mustParse(t, `[2,3]`))
	assertWire(t, `{"_t":"a","_0":[1,0,0]}`, delta)
}

func TestDiffEmptyArrayToValues(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `[]`), mustParse(t, `[1,2]`))
	assertWire(t, `{"_t":"a","0":[1],"1":[2]}`, delta)
}

func TestDiffArrayToEmpty(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `[1,2]`), mustParse(t, `[]`))
	assertWire(t, `{"_t":"a","_0":[1,0,0],"_1":[2,0,0]}`, delta)
}

func TestDiffArrayNestedObjectChange(t *testing.T) {
	d := New()
	// containers at the same index align positionally and diff recursively
	delta := d.Diff(mustParse(t, `[{"a":1},{"b":2}]`), mustParse(t, `[{"a":1},{"b":3}]`))
	assertWire(t, `{"_t":"a","1":{"b":[2,3]}}`, delta)
}

func TestDiffArraySingleElement(t *testing.T) {
	d := New()
	delta := d.Diff(mustParse(t, `[1]`), mustParse(t, `[2]`))
	assertWire(t, `{"_t":"a","_0":[1,0,0],"0":[2]}`, delta)
}

func TestDiffArraySimpleMode(t *testing.T) {
	d := New(WithArrayDiff(ArrayDiffSimple))
	delta := d.Diff(mustParse(t, `[1,2]`), mustParse(t, `[1,2,3]`))
	assertWire(t, `[[1,2],[1,2,3]]`, delta)
	assert.Nil(t, d.Diff(mustParse(t, `[1,2]`), mustParse(t, `[1,2]`)))
}

func TestDiffObjectHashAlignment(t *testing.T) {
	hash := func(v interface{}) string {
		if obj, ok := v.(map[string]interface{}); ok {
			if id, ok := obj["id"].(string); ok {
				return id
			}
		}
		return ""
	}
	d := New(WithObjectHash(hash))
	delta := d.Diff(
		mustParse(t, `[{"id":"a","v":1},{"id":"b","v":2}]`),
		mustParse(t, `[{"id":"b","v":2},{"id":"a","v":9}]`),
	)
	require.NotNil(t, delta)
	left := mustParse(t, `[{"id":"a","v":1},{"id":"b","v":2}]`)
	right := mustParse(t, `[{"id":"b","v":2},{"id":"a","v":9}]`)
	patched, err := d.Patch(left, delta)
	require.NoError(t, err)
	assert.True(t, matchesValue(right, patched))
}

func TestDiffLongStringsProduceTextDelta(t *testing.T) {
	d := New()
	left := strings.Repeat("the quick brown fox jumps over the lazy dog. ", 3)
	right := strings.Replace(left, "lazy", "sleepy", 1)
	delta := d.Diff(left, right)
	entry, ok := delta.([]interface{})
	require.True(t, ok)
	require.Len(t, entry, 3)
	assert.Equal(t, opTextDiff, entry[2])
	patchText, ok := entry[0].(string)
	require.True(t, ok)
	assert.Contains(t, patchText, "@@")
}

func TestDiffTextThresholdBoundary(t *testing.T) {
	d := New()
	// both exactly at the threshold: strictly-greater, so no text delta
	left := strings.Repeat("a", 50)
	right := strings.Repeat("b", 50)
	assertWire(t, `["`+left+`","`+right+`"]`, d.Diff(left, right))

	// one side over the threshold triggers it
	longLeft := strings.Repeat("a", 51)
	longRight := strings.Repeat("a", 25) + "b" + strings.Repeat("a", 25)
	delta := d.Diff(longLeft, longRight)
	entry, ok := delta.([]interface{})
	require.True(t, ok)
	require.Len(t, entry, 3)
	assert.Equal(t, opTextDiff, entry[2])
}

func TestDiffTextThresholdOption(t *testing.T) {
	d := New(WithMinEfficientTextDiffLength(5))
	left := "hello world"
	right := "hello brave world"
	delta := d.Diff(left, right)
	entry, ok := delta.([]interface{})
	require.True(t, ok)
	require.Len(t, entry, 3)
	assert.Equal(t, opTextDiff, entry[2])

	patched, err := d.Patch(left, delta)
	require.NoError(t, err)
	assert.Equal(t, right, patched)
}

func TestDiffTextSimpleMode(t *testing.T) {
	d := New(WithTextDiff(TextDiffSimple))
	left := strings.Repeat("a", 100)
	right := strings.Repeat("b", 100)
	delta := d.Diff(left, right)
	entry, ok := delta.([]interface{})
	require.True(t, ok)
	require.Len(t, entry, 2)
	assert.Equal(t, left, entry[0])
	assert.Equal(t, right, entry[1])
}

func TestDiffShortStringsReplaced(t *testing.T) {
	d := New()
	delta := d.Diff("hello", "world")
	assertWire(t, `["hello","world"]`, delta)
}

func TestDiffMixedArrayChanges(t *testing.T) {
	d := New()
	left := mustParse(t, `[1,"two",true,null,{"a":1}]`)
	right := mustParse(t, `[1,"two",false,null,{"a":2}]`)
	delta := d.Diff(left, right)
	require.NotNil(t, delta)
	patched, err := d.Patch(left, delta)
	require.NoError(t, err)
	assert.True(t, matchesValue(right, patched))
}
