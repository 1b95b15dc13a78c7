package jsondiffpatch

import (
	"fmt"
	"sort"
)

// Patch applies a delta to left and returns the reconstructed right-hand
// value. left is not modified. Malformed deltas fail with
// ErrInvalidDelta, ErrTypeMismatch or ErrMalformedTextPatch.
func (d *DiffPatcher) Patch(left, delta interface{}) (interface{}, error) {
	if delta == nil {
		return left, nil
	}

	switch patch := delta.(type) {
	case map[string]interface{}:
		if isArrayDelta(patch) {
			base, ok := left.([]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: array delta applied to %T", ErrTypeMismatch, left)
			}
			return d.arrayPatch(base, patch)
		}
		switch base := left.(type) {
		case map[string]interface{}:
			return d.objectPatch(base, patch)
		case nil:
			return d.objectPatch(map[string]interface{}{}, patch)
		default:
			return nil, fmt.Errorf("%w: object delta applied to %T", ErrTypeMismatch, left)
		}
	case []interface{}:
		switch len(patch) {
		case 1:
			// added
			return patch[0], nil
		case 2:
			// replaced
			return patch[1], nil
		case 3:
			op, ok := opCode(patch[2])
			if !ok {
				return nil, fmt.Errorf("%w: non-integer operation code", ErrInvalidDelta)
			}
			switch op {
			case opDeleted:
				return nil, nil
			case opTextDiff:
				return d.textPatch(left, patch, false)
			default:
				return nil, fmt.Errorf("%w: unknown operation code %d", ErrInvalidDelta, op)
			}
		default:
			return nil, fmt.Errorf("%w: array of length %d", ErrInvalidDelta, len(patch))
		}
	}
	return nil, fmt.Errorf("%w: %T is not a delta", ErrInvalidDelta, delta)
}

// textPatch applies the text patch in a [patchText, 0, 2] delta to a
// string base, inverted for the unpatch direction.
func (d *DiffPatcher) textPatch(base interface{}, patch []interface{}, invert bool) (interface{}, error) {
	text, ok := base.(string)
	if !ok {
		return nil, fmt.Errorf("%w: text delta applied to %T", ErrTypeMismatch, base)
	}
	patchText, ok := patch[0].(string)
	if !ok {
		return nil, fmt.Errorf("%w: text delta carries %T", ErrInvalidDelta, patch[0])
	}
	if invert {
		patchText = d.textDiffer.Invert(patchText)
	}
	result, err := d.textDiffer.Apply(patchText, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedTextPatch, err)
	}
	return result, nil
}

func (d *DiffPatcher) objectPatch(left, patch map[string]interface{}) (interface{}, error) {
	target := make(map[string]interface{}, len(left))
	for key, value := range left {
		target[key] = value
	}

	for key, member := range patch {
		if isDeletedEntry(member) {
			delete(target, key)
			continue
		}
		patched, err := d.Patch(target[key], member)
		if err != nil {
			return nil, err
		}
		target[key] = patched
	}
	return target, nil
}

// arrayEdit is one classified member of an array delta.
type arrayEdit struct {
	index  int
	target int // move destination
	isMove bool
	value  interface{}
	delta  interface{}
}

func (d *DiffPatcher) arrayPatch(left []interface{}, patch map[string]interface{}) (interface{}, error) {
	arr := make([]interface{}, len(left))
	copy(arr, left)

	var removals, modifications, insertions []arrayEdit

	for key, member := range patch {
		if key == "_t" {
			continue
		}
		index, old, ok := parseArrayKey(key)
		if !ok {
			return nil, fmt.Errorf("%w: bad array delta key %q", ErrInvalidDelta, key)
		}
		if old {
			entry, ok := member.([]interface{})
			if !ok || len(entry) != 3 {
				return nil, fmt.Errorf("%w: entry at %q is not a removal", ErrInvalidDelta, key)
			}
			op, ok := opCode(entry[2])
			if !ok {
				return nil, fmt.Errorf("%w: non-integer operation code at %q", ErrInvalidDelta, key)
			}
			switch op {
			case opDeleted:
				removals = append(removals, arrayEdit{index: index})
			case opArrayMove:
				target, ok := deltaIndex(entry[1])
				if !ok {
					return nil, fmt.Errorf("%w: bad move target at %q", ErrInvalidDelta, key)
				}
				removals = append(removals, arrayEdit{index: index, target: target, isMove: true})
			default:
				return nil, fmt.Errorf("%w: unknown operation code %d at %q", ErrInvalidDelta, op, key)
			}
			continue
		}
		if entry, ok := member.([]interface{}); ok {
			if len(entry) == 1 {
				insertions = append(insertions, arrayEdit{index: index, value: entry[0]})
				continue
			}
			if len(entry) == 3 {
				if op, ok := opCode(entry[2]); ok && op == opArrayMove {
					// rare destination form: insert the carried value at
					// the move target
					target, ok := deltaIndex(entry[1])
					if !ok {
						return nil, fmt.Errorf("%w: bad move target at %q", ErrInvalidDelta, key)
					}
					insertions = append(insertions, arrayEdit{index: target, value: entry[0]})
					continue
				}
			}
		}
		modifications = append(modifications, arrayEdit{index: index, delta: member})
	}

	// removals and move extractions in descending order of old index so
	// the remaining old indices stay valid; moved values join the
	// insertion list at their destination index
	sort.Slice(removals, func(i, j int) bool { return removals[i].index > removals[j].index })
	for _, removal := range removals {
		if len(arr) == 0 {
			continue
		}
		index := removal.index
		if index >= len(arr) {
			index = len(arr) - 1
		}
		taken := arr[index]
		arr = append(arr[:index], arr[index+1:]...)
		if removal.isMove {
			insertions = append(insertions, arrayEdit{index: removal.target, value: taken})
		}
	}

	// moved values and plain insertions in one ascending pass: earlier
	// inserts are what make the later recorded new-index positions real
	sort.SliceStable(insertions, func(i, j int) bool { return insertions[i].index < insertions[j].index })
	for _, insertion := range insertions {
		arr = insertAt(arr, insertion.index, insertion.value)
	}

	// modifications last: their keys are positions in the new array,
	// which the working array only becomes once every insertion is in
	// place. Indices no longer in range are skipped.
	sort.Slice(modifications, func(i, j int) bool { return modifications[i].index < modifications[j].index })
	for _, modification := range modifications {
		if modification.index >= len(arr) {
			continue
		}
		patched, err := d.Patch(arr[modification.index], modification.delta)
		if err != nil {
			return nil, err
		}
		arr[modification.index] = patched
	}

	return arr, nil
}

// insertAt inserts value at index, clamped to the end of the slice.
func insertAt(arr []interface{}, index int, value interface{}) []interface{} {
	if index > len(arr) {
		index = len(arr)
	}
	arr = append(arr, nil)
	copy(arr[index+1:], arr[index:])
	arr[index] = value
	return arr
}
