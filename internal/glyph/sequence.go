// Package glyph resolves codepoint sequences to bitmap glyphs. Emoji glyphs
// come from a directory of pre-rendered PNG assets named after their
// codepoint sequence; plain characters fall back to a built-in bitmap face.
package glyph

import (
	"fmt"
	"strconv"
	"strings"
)

// filePrefix is the filename stem prefix used by the Noto emoji asset set.
const filePrefix = "emoji_u"

// keySeparator joins codepoints in a canonical key.
const keySeparator = "_"

// Sequence is an ordered sequence of Unicode scalar values forming one
// renderable unit: a plain character, or a multi-codepoint emoji such as a
// ZWJ sequence, a flag sequence, or a base emoji with a skin-tone modifier.
// Two sequences are equal iff their scalar values are equal element-wise.
type Sequence []rune

// SequenceFromString returns the sequence of scalar values in s.
func SequenceFromString(s string) Sequence {
	return Sequence([]rune(s))
}

// Key returns the canonical asset key for the sequence: the filePrefix
// followed by the lowercase hex value of each codepoint (zero-padded to at
// least four digits) joined by keySeparator. This matches the Noto emoji
// filename convention, e.g. "emoji_u1f44b_1f3fd" for 👋🏽.
func (s Sequence) Key() string {
	var b strings.Builder
	b.WriteString(filePrefix)
	for i, r := range s {
		if i > 0 {
			b.WriteString(keySeparator)
		}
		fmt.Fprintf(&b, "%04x", r)
	}
	return b.String()
}

// String returns the text the sequence represents.
func (s Sequence) String() string {
	return string([]rune(s))
}

// Equal reports whether two sequences contain the same scalar values.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i, r := range s {
		if other[i] != r {
			return false
		}
	}
	return true
}

// ParseKey parses a canonical asset key (a filename stem such as
// "emoji_u1f44b_1f3fd") back into a Sequence.
func ParseKey(stem string) (Sequence, error) {
	body, ok := strings.CutPrefix(stem, filePrefix)
	if !ok {
		return nil, fmt.Errorf("glyph: key %q missing %q prefix", stem, filePrefix)
	}
	if body == "" {
		return nil, fmt.Errorf("glyph: key %q has no codepoints", stem)
	}

	parts := strings.Split(body, keySeparator)
	seq := make(Sequence, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(p, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("glyph: key %q has invalid codepoint %q: %w", stem, p, err)
		}
		seq = append(seq, rune(v))
	}
	return seq, nil
}
