package jsondiffpatch

import (
	"fmt"
	"testing"

	"github.com/goccy/go-json"
)

func BenchmarkDiffSimpleObject(b *testing.B) {
	d := New()
	left := mustParseBench(b, `{"a":100,"b":200,"c":"hello"}`)
	right := mustParseBench(b, `{"a":100,"b":200,"c":"goodbye"}`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Diff(left, right)
	}
}

func BenchmarkDiffNestedObject(b *testing.B) {
	d := New()
	left := mustParseBench(b, `{"a":{"b":{"c":{"d":1,"e":"hello"}}}}`)
	right := mustParseBench(b, `{"a":{"b":{"c":{"d":2,"e":"world"}}}}`)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Diff(left, right)
	}
}

func BenchmarkDiffLargeObject(b *testing.B) {
	obj := make(map[string]interface{})
	for i := 0; i < 100; i++ {
		obj[fmt.Sprintf("key%d", i)] = i
	}
	left, _ := json.Marshal(obj)

	obj["key50"] = "changed"
	obj["key99"] = "modified"
	right, _ := json.Marshal(obj)

	d := New()
	leftValue := mustParseBench(b, string(left))
	rightValue := mustParseBench(b, string(right))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Diff(leftValue, rightValue)
	}
}

func BenchmarkDiffMediumArray(b *testing.B) {
	leftArr := make([]interface{}, 50)
	rightArr := make([]interface{}, 0, 50)
	for i := 0; i < 50; i++ {
		leftArr[i] = i
		if i != 25 {
			rightArr = append(rightArr, i)
		}
	}
	rightArr[10] = 999

	d := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.Diff(leftArr, rightArr)
	}
}

func BenchmarkPatchArray(b *testing.B) {
	d := New()
	left := mustParseBench(b, `[1,2,3,4,5,6,7,8]`)
	right := mustParseBench(b, `[1,3,4,9,5,6,7,8,10]`)
	delta := d.Diff(left, right)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := d.Patch(left, delta); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDiffString(b *testing.B) {
	left := `{"a":{"b":[1,2,3]},"c":"hello"}`
	right := `{"a":{"b":[1,2,4]},"c":"goodbye"}`
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DiffString(left, right)
	}
}

func mustParseBench(b *testing.B, s string) interface{} {
	b.Helper()
	var v interface{}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		b.Fatal(err)
	}
	return v
}
