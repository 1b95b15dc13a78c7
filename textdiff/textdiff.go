// Package textdiff produces and applies the opaque text patches carried
// by text deltas. It wraps diff-match-patch, whose patch text format is
// the one on the wire: an "@@ -start,len +start,len @@" header per hunk
// followed by context (" "), insert ("+") and delete ("-") lines with
// %-escaped characters.
package textdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Engine computes, serializes and applies text patches. The zero value
// is not usable; construct with New. An Engine is safe for concurrent
// use.
type Engine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// New returns an Engine backed by diff-match-patch.
func New() *Engine {
	return &Engine{dmp: diffmatchpatch.New()}
}

// ComputeDiff returns the cleaned character diff between two texts.
func (e *Engine) ComputeDiff(left, right string) []diffmatchpatch.Diff {
	diffs := e.dmp.DiffMain(left, right, false)
	return e.dmp.DiffCleanupEfficiency(diffs)
}

// CreatePatches builds patches turning left into right.
func (e *Engine) CreatePatches(left, right string) []diffmatchpatch.Patch {
	return e.dmp.PatchMake(left, e.ComputeDiff(left, right))
}

// PatchesToText serializes patches to the wire format.
func (e *Engine) PatchesToText(patches []diffmatchpatch.Patch) string {
	return e.dmp.PatchToText(patches)
}

// PatchesFromText parses serialized patches.
func (e *Engine) PatchesFromText(text string) ([]diffmatchpatch.Patch, error) {
	return e.dmp.PatchFromText(text)
}

// ApplyPatches applies patches to base, returning the result and a
// success flag per patch.
func (e *Engine) ApplyPatches(patches []diffmatchpatch.Patch, base string) (string, []bool) {
	return e.dmp.PatchApply(patches, base)
}

// Diff returns the patch text turning left into right, or "" when the
// texts are equal.
func (e *Engine) Diff(left, right string) string {
	if left == right {
		return ""
	}
	return e.PatchesToText(e.CreatePatches(left, right))
}

// Apply applies patch text to base. It fails when the patch text cannot
// be parsed, is empty, or any hunk does not apply.
func (e *Engine) Apply(patchText, base string) (string, error) {
	patches, err := e.PatchesFromText(patchText)
	if err != nil {
		return "", err
	}
	if len(patches) == 0 {
		return "", fmt.Errorf("empty patch")
	}
	result, applied := e.ApplyPatches(patches, base)
	for i, ok := range applied {
		if !ok {
			return "", fmt.Errorf("patch %d failed to apply", i)
		}
	}
	return result, nil
}

// Invert rewrites patch text so that applying it undoes the original
// patch: insert and delete lines swap signs and the source and target
// ranges in each header trade places. The result is again valid patch
// text.
func (e *Engine) Invert(patchText string) string {
	lines := strings.Split(patchText, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		switch line[0] {
		case '+':
			lines[i] = "-" + line[1:]
		case '-':
			lines[i] = "+" + line[1:]
		case '@':
			lines[i] = invertHeader(line)
		}
	}
	return strings.Join(lines, "\n")
}

// invertHeader swaps the ranges of an "@@ -a,b +c,d @@" header. A line
// that does not look like a header is returned unchanged.
func invertHeader(line string) string {
	inner := strings.TrimSuffix(strings.TrimPrefix(line, "@@ "), " @@")
	if inner == line {
		return line
	}
	parts := strings.SplitN(inner, " ", 2)
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "-") || !strings.HasPrefix(parts[1], "+") {
		return line
	}
	return "@@ -" + parts[1][1:] + " +" + parts[0][1:] + " @@"
}
