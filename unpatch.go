package jsondiffpatch

import (
	"fmt"
	"sort"
)

// Unpatch applies a delta to right in reverse and returns the
// reconstructed left-hand value. right is not modified.
func (d *DiffPatcher) Unpatch(right, delta interface{}) (interface{}, error) {
	if delta == nil {
		return right, nil
	}

	switch patch := delta.(type) {
	case map[string]interface{}:
		if isArrayDelta(patch) {
			base, ok := right.([]interface{})
			if !ok {
				return nil, fmt.Errorf("%w: array delta applied to %T", ErrTypeMismatch, right)
			}
			return d.arrayUnpatch(base, patch)
		}
		switch base := right.(type) {
		case map[string]interface{}:
			return d.objectUnpatch(base, patch)
		case nil:
			return d.objectUnpatch(map[string]interface{}{}, patch)
		default:
			return nil, fmt.Errorf("%w: object delta applied to %T", ErrTypeMismatch, right)
		}
	case []interface{}:
		switch len(patch) {
		case 1:
			// the value was added, so it did not exist before
			return nil, nil
		case 2:
			return patch[0], nil
		case 3:
			op, ok := opCode(patch[2])
			if !ok {
				return nil, fmt.Errorf("%w: non-integer operation code", ErrInvalidDelta)
			}
			switch op {
			case opDeleted:
				return patch[0], nil
			case opTextDiff:
				return d.textPatch(right, patch, true)
			default:
				return nil, fmt.Errorf("%w: unknown operation code %d", ErrInvalidDelta, op)
			}
		default:
			return nil, fmt.Errorf("%w: array of length %d", ErrInvalidDelta, len(patch))
		}
	}
	return nil, fmt.Errorf("%w: %T is not a delta", ErrInvalidDelta, delta)
}

func (d *DiffPatcher) objectUnpatch(right, patch map[string]interface{}) (interface{}, error) {
	target := make(map[string]interface{}, len(right))
	for key, value := range right {
		target[key] = value
	}

	for key, member := range patch {
		if isAddedEntry(member) {
			delete(target, key)
			continue
		}
		unpatched, err := d.Unpatch(target[key], member)
		if err != nil {
			return nil, err
		}
		target[key] = unpatched
	}
	return target, nil
}

// arrayUnpatch reverses an array delta by undoing each group of edits in
// the exact opposite order of arrayPatch: modifications are reversed
// while the working array is still the new array, then insertions and
// moved values come out of their new indices together in one descending
// pass, and finally deleted and moved values are re-inserted at their
// old indices in one ascending pass.
func (d *DiffPatcher) arrayUnpatch(right []interface{}, patch map[string]interface{}) (interface{}, error) {
	arr := make([]interface{}, len(right))
	copy(arr, right)

	var additions []int
	var moves, modifications, reinsertions []arrayEdit

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
				reinsertions = append(reinsertions, arrayEdit{index: index, value: entry[0]})
			case opArrayMove:
				target, ok := deltaIndex(entry[1])
				if !ok {
					return nil, fmt.Errorf("%w: bad move target at %q", ErrInvalidDelta, key)
				}
				moves = append(moves, arrayEdit{index: index, target: target, isMove: true})
			default:
				return nil, fmt.Errorf("%w: unknown operation code %d at %q", ErrInvalidDelta, op, key)
			}
			continue
		}
		if entry, ok := member.([]interface{}); ok {
			if len(entry) == 1 {
				additions = append(additions, index)
				continue
			}
			if len(entry) == 3 {
				if op, ok := opCode(entry[2]); ok && op == opArrayMove {
					// destination form was applied as an insertion at the
					// move target, so undo it as one
					if target, ok := deltaIndex(entry[1]); ok {
						additions = append(additions, target)
						continue
					}
				}
			}
		}
		modifications = append(modifications, arrayEdit{index: index, delta: member})
	}

	// reverse modifications first: their keys address the new array,
	// which the working array still is
	sort.Slice(modifications, func(i, j int) bool { return modifications[i].index < modifications[j].index })
	for _, modification := range modifications {
		if modification.index >= len(arr) {
			continue
		}
		unpatched, err := d.Unpatch(arr[modification.index], modification.delta)
		if err != nil {
			return nil, err
		}
		arr[modification.index] = unpatched
	}

	// undo insertions and move destinations in one descending pass over
	// new indices, holding moved values for re-insertion at their old
	// indices
	extractions := make([]arrayEdit, 0, len(additions)+len(moves))
	for _, index := range additions {
		extractions = append(extractions, arrayEdit{target: index})
	}
	extractions = append(extractions, moves...)
	sort.SliceStable(extractions, func(i, j int) bool { return extractions[i].target > extractions[j].target })
	for _, extraction := range extractions {
		if len(arr) == 0 {
			continue
		}
		from := extraction.target
		if from >= len(arr) {
			from = len(arr) - 1
		}
		taken := arr[from]
		arr = append(arr[:from], arr[from+1:]...)
		if extraction.isMove {
			reinsertions = append(reinsertions, arrayEdit{index: extraction.index, value: taken})
		}
	}

	// re-insert deleted and moved values at their old indices, ascending
	sort.Slice(reinsertions, func(i, j int) bool { return reinsertions[i].index < reinsertions[j].index })
	for _, reinsertion := range reinsertions {
		arr = insertAt(arr, reinsertion.index, reinsertion.value)
	}

	return arr, nil
}
