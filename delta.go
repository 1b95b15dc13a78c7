package jsondiffpatch

import (
	"github.com/goccy/go-json"
)

// opCode extracts the operation code from the third slot of a length-3
// delta array. Codes arrive as untyped ints when the delta was built in
// memory and as json.Number or float64 when it was parsed.
func opCode(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	}
	return 0, false
}

// deltaIndex reads a non-negative array index from a delta slot, such as
// the move target in slot 1 of an array move.
func deltaIndex(v interface{}) (int, bool) {
	i, ok := opCode(v)
	if !ok || i < 0 {
		return 0, false
	}
	return i, true
}

// parseArrayKey parses a positional key of an array delta member.
// Underscored keys ("_3") address the old array, plain decimal keys
// ("3") the new one. The parse is strict: no sign, no leading zeros, no
// non-digits.
func parseArrayKey(key string) (index int, old bool, ok bool) {
	if key == "" {
		return 0, false, false
	}
	if key[0] == '_' {
		index, ok = parseArrayIndex(key[1:])
		return index, true, ok
	}
	index, ok = parseArrayIndex(key)
	return index, false, ok
}

func parseArrayIndex(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

// isArrayDelta reports whether an object-shaped delta carries the
// reserved "_t" marker identifying it as an array delta. A "_t" member
// that is not the marker string is an ordinary per-key delta: object
// deltas never contain a bare string.
func isArrayDelta(delta map[string]interface{}) bool {
	marker, ok := delta["_t"].(string)
	return ok && marker == arrayDeltaMarker
}

// isDeletedEntry reports whether a delta member is a deletion
// ([oldValue, 0, 0]).
func isDeletedEntry(v interface{}) bool {
	entry, ok := v.([]interface{})
	if !ok || len(entry) != 3 {
		return false
	}
	op, ok := opCode(entry[2])
	return ok && op == opDeleted
}

// isAddedEntry reports whether a delta member is an addition
// ([newValue]).
func isAddedEntry(v interface{}) bool {
	entry, ok := v.([]interface{})
	return ok && len(entry) == 1
}
