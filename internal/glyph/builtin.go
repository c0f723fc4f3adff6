package glyph

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// builtinFace is the minimal bitmap face used for plain characters that have
// no external asset. Face7x13 covers printable ASCII plus U+FFFD.
var builtinFace font.Face = basicfont.Face7x13

// builtinGlyph renders r with the built-in face and scales it to the store
// row height. White foreground; the mask supplies the alpha channel so the
// compositor can tint and blend it like any asset glyph.
func (s *Store) builtinGlyph(r rune) (*Glyph, bool) {
	metrics := builtinFace.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()

	dot := fixed.P(0, ascent)
	dr, mask, maskp, advance, ok := builtinFace.Glyph(dot, r)
	if !ok {
		return nil, false
	}

	w := advance.Ceil()
	if w < 1 {
		w = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, height))
	draw.DrawMask(img, dr, image.NewUniform(color.White), image.Point{}, mask, maskp, draw.Over)

	return s.scaleToRow(img), true
}
