// Package jsondiffpatch computes compact, reversible deltas between two
// JSON documents and applies them in either direction. The delta wire
// format is the jsondiffpatch format: deltas produced here can be applied
// by any other implementation of the same format and vice versa.
package jsondiffpatch

import (
	"fmt"

	"github.com/benitogf/jsondiffpatch/textdiff"
)

var (
	// ErrInvalidDelta reports a delta with an unknown shape: an array of
	// length 0 or 4+, a length-3 array with an unknown operation code, or
	// a delta that is a bare scalar.
	ErrInvalidDelta = fmt.Errorf("invalid delta")
	// ErrTypeMismatch reports a delta applied against a value of the
	// wrong kind, such as a text delta against a non-string.
	ErrTypeMismatch = fmt.Errorf("delta type mismatch")
	// ErrMalformedTextPatch reports a text patch that cannot be parsed or
	// that failed to apply.
	ErrMalformedTextPatch = fmt.Errorf("malformed text patch")
)

// operation codes in the third slot of a length-3 delta array
const (
	opDeleted   = 0
	opTextDiff  = 2
	opArrayMove = 3
)

// arrayDeltaMarker is the value of the reserved "_t" member that
// distinguishes an array delta from an object delta.
const arrayDeltaMarker = "a"

// ObjectHash derives a stable identity string for an array element so
// that moved objects can be recognized during array alignment. An empty
// result means "no identity".
type ObjectHash func(value interface{}) string

// ArrayDiffMode selects how arrays are diffed.
type ArrayDiffMode int

const (
	// ArrayDiffSimple treats arrays as opaque values: any change replaces
	// the whole array.
	ArrayDiffSimple ArrayDiffMode = iota
	// ArrayDiffEfficient aligns array elements with an LCS and emits
	// per-index deltas.
	ArrayDiffEfficient
)

// TextDiffMode selects how long strings are diffed.
type TextDiffMode int

const (
	// TextDiffSimple treats strings as opaque values.
	TextDiffSimple TextDiffMode = iota
	// TextDiffEfficient emits text patches for strings longer than
	// MinEfficientTextDiffLength.
	TextDiffEfficient
)

// TextDiffer produces and applies opaque text patches. The patch text is
// the diff-match-patch format: an "@@ -start,len +start,len @@" header
// followed by context (" "), insert ("+") and delete ("-") lines.
type TextDiffer interface {
	// Diff returns the patch text turning left into right, or "" when
	// there is nothing to patch.
	Diff(left, right string) string
	// Apply applies patch text to base.
	Apply(patchText, base string) (string, error)
	// Invert rewrites patch text so that applying it undoes the original
	// patch.
	Invert(patchText string) string
}

// DiffPatcher computes and applies deltas. A DiffPatcher is immutable
// once constructed and safe for concurrent use.
type DiffPatcher struct {
	arrayDiff                  ArrayDiffMode
	textDiff                   TextDiffMode
	minEfficientTextDiffLength int
	detectMove                 bool
	includeValueOnMove         bool
	objectHash                 ObjectHash
	textDiffer                 TextDiffer
}

// Option adjusts a DiffPatcher under construction.
type Option func(*DiffPatcher)

// WithArrayDiff sets the array diff mode.
func WithArrayDiff(mode ArrayDiffMode) Option {
	return func(d *DiffPatcher) { d.arrayDiff = mode }
}

// WithTextDiff sets the text diff mode.
func WithTextDiff(mode TextDiffMode) Option {
	return func(d *DiffPatcher) { d.textDiff = mode }
}

// WithMinEfficientTextDiffLength sets the length either string must
// exceed before a text patch is attempted.
func WithMinEfficientTextDiffLength(length int) Option {
	return func(d *DiffPatcher) { d.minEfficientTextDiffLength = length }
}

// WithDetectMove enables collapsing matching delete/add pairs in array
// diffs into single move entries.
func WithDetectMove(detect bool) Option {
	return func(d *DiffPatcher) { d.detectMove = detect }
}

// WithIncludeValueOnMove keeps the moved value in the move entry instead
// of the empty-string placeholder.
func WithIncludeValueOnMove(include bool) Option {
	return func(d *DiffPatcher) { d.includeValueOnMove = include }
}

// WithObjectHash sets the identity function used to align object
// elements inside arrays.
func WithObjectHash(hash ObjectHash) Option {
	return func(d *DiffPatcher) { d.objectHash = hash }
}

// WithTextDiffer replaces the text diff engine.
func WithTextDiffer(differ TextDiffer) Option {
	return func(d *DiffPatcher) { d.textDiffer = differ }
}

// New returns a DiffPatcher with the given options applied over the
// defaults: efficient array and text diffs, a text diff threshold of 50,
// and no move detection.
func New(opts ...Option) *DiffPatcher {
	d := &DiffPatcher{
		arrayDiff:                  ArrayDiffEfficient,
		textDiff:                   TextDiffEfficient,
		minEfficientTextDiffLength: 50,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.textDiffer == nil {
		d.textDiffer = textdiff.New()
	}
	return d
}

var defaultPatcher = New()

// Diff computes the delta turning left into right using the default
// options. A nil result means the values are equal.
func Diff(left, right interface{}) interface{} {
	return defaultPatcher.Diff(left, right)
}

// Patch applies a delta to left, reconstructing the right-hand value.
func Patch(left, delta interface{}) (interface{}, error) {
	return defaultPatcher.Patch(left, delta)
}

// Unpatch applies a delta to right in reverse, reconstructing the
// left-hand value.
func Unpatch(right, delta interface{}) (interface{}, error) {
	return defaultPatcher.Unpatch(right, delta)
}

// DiffString diffs two JSON documents, returning the serialized delta.
func DiffString(left, right string) string {
	return defaultPatcher.DiffString(left, right)
}

// PatchString applies a serialized delta to a JSON document.
func PatchString(left, delta string) string {
	return defaultPatcher.PatchString(left, delta)
}

// UnpatchString reverses a serialized delta against a JSON document.
func UnpatchString(right, delta string) string {
	return defaultPatcher.UnpatchString(right, delta)
}
