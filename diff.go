package jsondiffpatch

import (
	"strconv"
)

// Diff computes the delta turning left into right. The result is nil
// when the values are equal, otherwise a delta in the wire format:
// [newVal] for additions, [oldVal, newVal] for replacements,
// [oldVal, 0, 0] for deletions, [patchText, 0, 2] for text patches,
// ["", toIndex, 3] for array moves, an object of per-key deltas for
// objects, and an object with the "_t":"a" marker for arrays. Diff is
// total: it never fails on well-formed values.
func (d *DiffPatcher) Diff(left, right interface{}) interface{} {
	match := &itemMatch{objectHash: d.objectHash}
	return d.diff(left, right, match)
}

func (d *DiffPatcher) diff(left, right interface{}, match *itemMatch) interface{} {
	if lo, ok := left.(map[string]interface{}); ok {
		if ro, ok := right.(map[string]interface{}); ok {
			return d.objectDiff(lo, ro, match)
		}
	}
	if d.arrayDiff == ArrayDiffEfficient {
		if la, ok := left.([]interface{}); ok {
			if ra, ok := right.([]interface{}); ok {
				return d.efficientArrayDiff(la, ra, match)
			}
		}
	}
	if match.matchValue(left, right) {
		return nil
	}
	if d.textDiff == TextDiffEfficient {
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				if len(ls) > d.minEfficientTextDiffLength || len(rs) > d.minEfficientTextDiffLength {
					if patchText := d.textDiffer.Diff(ls, rs); patchText != "" {
						return []interface{}{patchText, 0, opTextDiff}
					}
				}
			}
		}
	}
	return []interface{}{left, right}
}

func (d *DiffPatcher) objectDiff(left, right map[string]interface{}, match *itemMatch) interface{} {
	result := map[string]interface{}{}

	// properties modified or deleted
	for key, leftValue := range left {
		rightValue, ok := right[key]
		if !ok {
			result[key] = []interface{}{leftValue, 0, opDeleted}
			continue
		}
		if child := d.diff(leftValue, rightValue, match); child != nil {
			result[key] = child
		}
	}
	// properties added
	for key, rightValue := range right {
		if _, ok := left[key]; !ok {
			result[key] = []interface{}{rightValue}
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

func (d *DiffPatcher) efficientArrayDiff(left, right []interface{}, match *itemMatch) interface{} {
	if matchesValue(left, right) {
		return nil
	}

	result := map[string]interface{}{"_t": arrayDeltaMarker}

	commonHead := 0
	for commonHead < len(left) && commonHead < len(right) &&
		match.matchArrayElement(left[commonHead], commonHead, right[commonHead], commonHead) {
		if child := d.diff(left[commonHead], right[commonHead], match); child != nil {
			result[strconv.Itoa(commonHead)] = child
		}
		commonHead++
	}

	commonTail := 0
	for commonHead+commonTail < len(left) && commonHead+commonTail < len(right) {
		index1 := len(left) - 1 - commonTail
		index2 := len(right) - 1 - commonTail
		if !match.matchArrayElement(left[index1], index1, right[index2], index2) {
			break
		}
		if child := d.diff(left[index1], right[index2], match); child != nil {
			result[strconv.Itoa(index2)] = child
		}
		commonTail++
	}

	switch {
	case commonHead+commonTail == len(left):
		// the middle of the right array is a pure insertion
		for index := commonHead; index < len(right)-commonTail; index++ {
			result[strconv.Itoa(index)] = []interface{}{right[index]}
		}
	case commonHead+commonTail == len(right):
		// the middle of the left array is a pure removal
		for index := commonHead; index < len(left)-commonTail; index++ {
			result["_"+strconv.Itoa(index)] = []interface{}{left[index], 0, opDeleted}
		}
	default:
		d.middleArrayDiff(left, right, commonHead, commonTail, match, result)
	}

	if len(result) == 1 {
		return nil
	}
	return result
}

// middleArrayDiff aligns the unmatched middle regions with an LCS and
// records deletions, additions, per-index modifications and, when
// enabled, moves into result under absolute positional keys.
func (d *DiffPatcher) middleArrayDiff(left, right []interface{}, commonHead, commonTail int, match *itemMatch, result map[string]interface{}) {
	trimmedLeft := left[commonHead : len(left)-commonTail]
	trimmedRight := right[commonHead : len(right)-commonTail]
	lcs := computeLCS(trimmedLeft, trimmedRight, match)

	type pendingEdit struct {
		index int
		value interface{}
		used  bool
	}

	var removals []pendingEdit
	for index := commonHead; index < len(left)-commonTail; index++ {
		if !containsInt(lcs.indices1, index-commonHead) {
			removals = append(removals, pendingEdit{index: index, value: left[index]})
		}
	}

	var additions []pendingEdit
	for index := commonHead; index < len(right)-commonTail; index++ {
		position := indexOfInt(lcs.indices2, index-commonHead)
		if position < 0 {
			additions = append(additions, pendingEdit{index: index, value: right[index]})
			continue
		}
		leftIndex := lcs.indices1[position] + commonHead
		if child := d.diff(left[leftIndex], right[index], match); child != nil {
			result[strconv.Itoa(index)] = child
		}
	}

	for _, removal := range removals {
		key := "_" + strconv.Itoa(removal.index)
		if d.detectMove {
			moved := false
			for i := range additions {
				if additions[i].used {
					continue
				}
				// a move entry carries no nested diff, so hash-equal
				// values with changed content stay delete+add
				if match.matchValue(removal.value, additions[i].value) &&
					d.diff(removal.value, additions[i].value, match) == nil {
					movedValue := interface{}("")
					if d.includeValueOnMove {
						movedValue = removal.value
					}
					result[key] = []interface{}{movedValue, additions[i].index, opArrayMove}
					additions[i].used = true
					moved = true
					break
				}
			}
			if moved {
				continue
			}
		}
		result[key] = []interface{}{removal.value, 0, opDeleted}
	}

	for _, addition := range additions {
		if !addition.used {
			result[strconv.Itoa(addition.index)] = []interface{}{addition.value}
		}
	}
}

func containsInt(s []int, v int) bool {
	return indexOfInt(s, v) >= 0
}

func indexOfInt(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
