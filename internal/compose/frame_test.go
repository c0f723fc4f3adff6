package compose

import (
	"bytes"
	"errors"
	"testing"
)

func TestFrame_EncodeDecode(t *testing.T) {
	f := newFrame(3, 2, [3]uint8{1, 2, 3})
	f.Pix[0], f.Pix[1], f.Pix[2] = 250, 251, 252

	data := f.Encode()
	if len(data) != headerSize+3*2*3 {
		t.Fatalf("Encode() len = %d, want %d", len(data), headerSize+3*2*3)
	}
	if data[0] != FormatRGB888 {
		t.Errorf("format tag = %d, want %d", data[0], FormatRGB888)
	}

	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	if got.Width != f.Width || got.Height != f.Height {
		t.Errorf("decoded size = %dx%d, want %dx%d", got.Width, got.Height, f.Width, f.Height)
	}
	if !bytes.Equal(got.Pix, f.Pix) {
		t.Error("decoded pixels differ from composed pixels")
	}
}

func TestDecodeFrame_TooShort(t *testing.T) {
	if _, err := DecodeFrame([]byte{FormatRGB888, 0, 1}); !errors.Is(err, ErrFrameTooShort) {
		t.Errorf("error = %v, want ErrFrameTooShort", err)
	}

	// Header declares more pixels than the payload carries.
	f := newFrame(4, 4, [3]uint8{})
	data := f.Encode()
	if _, err := DecodeFrame(data[:len(data)-1]); !errors.Is(err, ErrFrameTooShort) {
		t.Errorf("error = %v, want ErrFrameTooShort", err)
	}
}

func TestDecodeFrame_UnknownFormat(t *testing.T) {
	data := newFrame(1, 1, [3]uint8{}).Encode()
	data[0] = 99
	if _, err := DecodeFrame(data); !errors.Is(err, ErrFrameFormat) {
		t.Errorf("error = %v, want ErrFrameFormat", err)
	}
}
