package jsondiffpatch

import (
	"github.com/goccy/go-json"
)

// itemMatch decides whether two values represent the same logical item.
// With an ObjectHash, object elements are identified by hash; without
// one, container elements inside arrays fall back to positional
// identity.
type itemMatch struct {
	objectHash ObjectHash
}

// matchValue reports whether a and b are the same value for diffing
// purposes, applying the hash when present and a is an object.
func (m *itemMatch) matchValue(a, b interface{}) bool {
	if m.objectHash != nil {
		if _, ok := a.(map[string]interface{}); ok {
			ha := m.objectHash(a)
			hb := m.objectHash(b)
			return ha != "" && hb != "" && ha == hb
		}
	}
	return matchesValue(a, b)
}

// matchArrayElement reports whether the element at index ia on the left
// aligns with the element at index ib on the right. Containers at equal
// indices are considered the same element when no hash is available:
// they will be diffed recursively rather than treated as remove+add.
func (m *itemMatch) matchArrayElement(a interface{}, ia int, b interface{}, ib int) bool {
	if m.objectHash != nil {
		return m.matchValue(a, b)
	}
	switch a.(type) {
	case map[string]interface{}, []interface{}:
		return ia == ib
	}
	return matchesValue(a, b)
}

// numberValue extracts a float64 from any of the numeric representations
// a value tree can carry.
func numberValue(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// numbersEqual compares two json.Number values numerically, keeping full
// precision for integers wider than a float64 mantissa.
func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}
	ai, aerr := a.Int64()
	bi, berr := b.Int64()
	if aerr == nil && berr == nil {
		return ai == bi
	}
	af, aerr2 := a.Float64()
	bf, berr2 := b.Float64()
	return aerr2 == nil && berr2 == nil && af == bf
}

// matchesValue reports structural equality of two value trees. Numbers
// compare by numeric value regardless of representation; all other kinds
// must match exactly.
func matchesValue(av, bv interface{}) bool {
	if an, ok := av.(json.Number); ok {
		if bn, ok := bv.(json.Number); ok {
			return numbersEqual(an, bn)
		}
	}
	if an, ok := numberValue(av); ok {
		bn, ok := numberValue(bv)
		return ok && an == bn
	}
	switch at := av.(type) {
	case string:
		bt, ok := bv.(string)
		return ok && bt == at
	case bool:
		bt, ok := bv.(bool)
		return ok && bt == at
	case map[string]interface{}:
		bt, ok := bv.(map[string]interface{})
		if !ok || len(at) != len(bt) {
			return false
		}
		for key := range at {
			bval, ok := bt[key]
			if !ok || !matchesValue(at[key], bval) {
				return false
			}
		}
		return true
	case []interface{}:
		bt, ok := bv.([]interface{})
		if !ok || len(bt) != len(at) {
			return false
		}
		for key := range at {
			if !matchesValue(at[key], bt[key]) {
				return false
			}
		}
		return true
	case nil:
		return bv == nil
	}
	return false
}
