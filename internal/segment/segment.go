// Package segment splits text into renderable units. Multi-codepoint emoji
// sequences known to the glyph store are matched greedily (longest match
// wins) so a flag or skin-tone sequence is never split into unrelated
// glyphs; everything else is emitted one grapheme cluster at a time.
package segment

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/ledmoji/internal/glyph"
)

// node is one level of the sequence trie.
type node struct {
	children map[rune]*node
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Segmenter splits text into codepoint sequences using longest-match lookup
// against a precomputed trie of known emoji sequences. Safe for concurrent
// use after construction.
type Segmenter struct {
	root *node
}

// New builds a segmenter from the known sequences, typically the multi-
// codepoint keys discovered by the glyph store. Duplicate sequences are
// harmless; the trie is a set.
func New(seqs []glyph.Sequence) *Segmenter {
	root := newNode()
	for _, seq := range seqs {
		n := root
		for _, r := range seq {
			child, ok := n.children[r]
			if !ok {
				child = newNode()
				n.children[r] = child
			}
			n = child
		}
		n.terminal = true
	}
	return &Segmenter{root: root}
}

// Segment splits text into an ordered slice of codepoint sequences. At each
// position the longest known emoji sequence wins; otherwise one grapheme
// cluster is emitted, so combining marks and unknown multi-codepoint
// combinations stay a single unit. Segmentation never fails: empty input
// yields an empty slice.
func (s *Segmenter) Segment(text string) []glyph.Sequence {
	units := []glyph.Sequence{}
	state := -1
	for len(text) > 0 {
		if matched, rest := s.longestMatch(text); matched != nil {
			units = append(units, matched)
			text = rest
			// Grapheme state is positional; it is stale after a trie match.
			state = -1
			continue
		}

		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(text, state)
		units = append(units, glyph.SequenceFromString(cluster))
		text, state = rest, newState
	}
	return units
}

// longestMatch walks the trie along text and returns the longest terminal
// match starting at position zero, plus the remaining text. A nil sequence
// means no known sequence starts here. O(len of longest candidate).
func (s *Segmenter) longestMatch(text string) (glyph.Sequence, string) {
	n := s.root
	best := 0
	for i, r := range text {
		child, ok := n.children[r]
		if !ok {
			break
		}
		n = child
		if n.terminal {
			best = i + utf8.RuneLen(r)
		}
	}
	if best == 0 {
		return nil, text
	}
	return glyph.SequenceFromString(text[:best]), text[best:]
}
