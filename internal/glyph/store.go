package glyph

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"
)

// Glyph is an immutable fixed-height bitmap. Pix holds row-major RGBA bytes,
// four per pixel; the alpha channel distinguishes foreground from background.
// All glyphs produced by one Store share the same height; width varies.
type Glyph struct {
	W, H int
	Pix  []uint8
}

// Store resolves codepoint sequences to glyphs. The asset directory is
// scanned once at construction; glyph bytes are decoded lazily on first
// Resolve and memoized. Resolve is safe for concurrent use.
type Store struct {
	dir       string
	rowHeight int

	// paths maps canonical keys to asset file paths. Read-only after New.
	paths map[string]string

	// seqs holds every multi-codepoint sequence discovered at scan time,
	// in discovery order. The segmenter builds its trie from these.
	seqs []Sequence

	// cache memoizes decoded glyphs by canonical key. LoadOrStore gives the
	// insert-if-absent discipline: concurrent readers never observe a
	// partially written glyph.
	cache sync.Map
}

// NewStore scans dir for emoji assets and returns a store producing glyphs
// of the given pixel height. A missing or unreadable directory is a fatal
// startup error.
func NewStore(dir string, rowHeight int) (*Store, error) {
	if rowHeight <= 0 {
		return nil, fmt.Errorf("glyph: row height must be positive, got %d", rowHeight)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("glyph: reading asset directory %s: %w", dir, err)
	}

	s := &Store{
		dir:       dir,
		rowHeight: rowHeight,
		paths:     make(map[string]string),
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		stem, ok := strings.CutSuffix(name, ".png")
		if !ok {
			continue
		}
		seq, err := ParseKey(stem)
		if err != nil {
			// Not an emoji asset; the Noto directory ships auxiliary files.
			continue
		}
		key := seq.Key()
		if _, exists := s.paths[key]; exists {
			// First discovered wins.
			continue
		}
		s.paths[key] = filepath.Join(dir, name)
		if len(seq) > 1 {
			s.seqs = append(s.seqs, seq)
		}
	}

	return s, nil
}

// RowHeight returns the pixel height shared by all glyphs from this store.
func (s *Store) RowHeight() int {
	return s.rowHeight
}

// Sequences returns every multi-codepoint sequence known to the store.
func (s *Store) Sequences() []Sequence {
	return s.seqs
}

// Len returns the number of asset-backed sequences discovered at scan time.
func (s *Store) Len() int {
	return len(s.paths)
}

// Resolve returns the glyph for seq, or ok=false when no asset exists and
// no fallback applies. Resolution order: exact asset, then progressively
// shorter prefixes of the sequence (a skin-tone or variation suffix with no
// dedicated asset falls back to its base emoji), then the built-in bitmap
// face for single codepoints. A false result is a valid outcome, not an
// error; callers substitute a placeholder.
func (s *Store) Resolve(seq Sequence) (*Glyph, bool) {
	if len(seq) == 0 {
		return nil, false
	}

	key := seq.Key()
	if v, ok := s.cache.Load(key); ok {
		return v.(*Glyph), true
	}

	g := s.load(seq)
	if g == nil {
		return nil, false
	}

	actual, _ := s.cache.LoadOrStore(key, g)
	return actual.(*Glyph), true
}

// load resolves seq without consulting the cache.
func (s *Store) load(seq Sequence) *Glyph {
	// Exact asset, then trailing-codepoint fallback.
	for end := len(seq); end >= 1; end-- {
		path, ok := s.paths[seq[:end].Key()]
		if !ok {
			continue
		}
		g, err := s.decodeFile(path)
		if err != nil {
			// A corrupt asset resolves like a missing one.
			continue
		}
		return g
	}

	if len(seq) == 1 {
		if g, ok := s.builtinGlyph(seq[0]); ok {
			return g
		}
	}
	return nil
}

// decodeFile decodes a PNG asset and scales it to the store row height.
func (s *Store) decodeFile(path string) (*Glyph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("glyph: decoding %s: %w", path, err)
	}
	return s.scaleToRow(img), nil
}

// scaleToRow resizes src to the store row height, preserving aspect ratio,
// and flattens it into a Glyph. Nearest-neighbor keeps hard pixel edges,
// which reads better on an LED matrix than interpolation.
func (s *Store) scaleToRow(src image.Image) *Glyph {
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return &Glyph{W: 0, H: s.rowHeight, Pix: nil}
	}

	w := sb.Dx() * s.rowHeight / sb.Dy()
	if w < 1 {
		w = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, s.rowHeight))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)

	return &Glyph{W: w, H: s.rowHeight, Pix: dst.Pix}
}
