// Package compose lays out glyph sequences onto a fixed-size pixel canvas
// and encodes the result for publication. Composition is deterministic:
// identical units, params and glyph store state produce bit-identical
// frames.
package compose

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// FormatRGB888 tags frames carrying three bytes per pixel, row-major.
const FormatRGB888 uint8 = 1

// headerSize is the encoded frame header: format tag plus two uint16
// dimensions, big-endian. Kept to five bytes so display controllers can
// blit the payload directly after a fixed offset.
const headerSize = 5

// ErrFrameTooShort reports a payload shorter than its declared size.
var ErrFrameTooShort = errors.New("compose: frame payload too short")

// ErrFrameFormat reports an unknown pixel format tag.
var ErrFrameFormat = errors.New("compose: unknown frame format")

// Frame is a fixed-resolution pixel buffer, immutable once composed.
// Pix holds row-major RGB bytes, three per pixel.
type Frame struct {
	Width  int
	Height int
	Pix    []uint8
}

// newFrame allocates a frame filled with the background color.
func newFrame(w, h int, bg [3]uint8) *Frame {
	pix := make([]uint8, w*h*3)
	if bg != [3]uint8{} {
		for i := 0; i < len(pix); i += 3 {
			pix[i], pix[i+1], pix[i+2] = bg[0], bg[1], bg[2]
		}
	}
	return &Frame{Width: w, Height: h, Pix: pix}
}

// Encode serializes the frame: format tag, uint16 big-endian width and
// height, then row-major RGB bytes.
func (f *Frame) Encode() []byte {
	buf := make([]byte, headerSize+len(f.Pix))
	buf[0] = FormatRGB888
	binary.BigEndian.PutUint16(buf[1:3], uint16(f.Width))
	binary.BigEndian.PutUint16(buf[3:5], uint16(f.Height))
	copy(buf[headerSize:], f.Pix)
	return buf
}

// DecodeFrame parses an encoded frame. The inverse of Encode.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < headerSize {
		return nil, ErrFrameTooShort
	}
	if data[0] != FormatRGB888 {
		return nil, fmt.Errorf("%w: tag %d", ErrFrameFormat, data[0])
	}
	w := int(binary.BigEndian.Uint16(data[1:3]))
	h := int(binary.BigEndian.Uint16(data[3:5]))
	want := w * h * 3
	if len(data)-headerSize < want {
		return nil, fmt.Errorf("%w: %dx%d needs %d pixel bytes, have %d",
			ErrFrameTooShort, w, h, want, len(data)-headerSize)
	}
	pix := make([]uint8, want)
	copy(pix, data[headerSize:headerSize+want])
	return &Frame{Width: w, Height: h, Pix: pix}, nil
}
