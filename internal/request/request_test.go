package request

import (
	"errors"
	"testing"
)

func TestDecode_JSON(t *testing.T) {
	req, err := Decode([]byte(`{"text": "Hi 👋🏽", "color": "#ff8800", "scroll": true}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if req.Text != "Hi 👋🏽" {
		t.Errorf("Text = %q, want %q", req.Text, "Hi 👋🏽")
	}
	if !req.Scroll {
		t.Error("Scroll = false, want true")
	}
	if req.Tint == nil {
		t.Fatal("Tint = nil, want parsed color")
	}
	r, g, b := req.Tint.RGB255()
	if r != 0xff || g != 0x88 || b != 0x00 {
		t.Errorf("Tint = #%02x%02x%02x, want #ff8800", r, g, b)
	}
}

func TestDecode_Defaults(t *testing.T) {
	req, err := Decode([]byte(`{"text": "hello"}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if req.Scroll {
		t.Error("Scroll = true, want false by default")
	}
	if req.Tint != nil {
		t.Error("Tint set, want nil by default")
	}
}

func TestDecode_EmojiAlias(t *testing.T) {
	req, err := Decode([]byte(`{"data": {"emoji": "👍"}}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if req.Text != "👍" {
		t.Errorf("Text = %q, want %q", req.Text, "👍")
	}
}

func TestDecode_BareText(t *testing.T) {
	req, err := Decode([]byte("just text 🎉"))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if req.Text != "just text 🎉" {
		t.Errorf("Text = %q, want raw payload", req.Text)
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload []byte
	}{
		{"invalid utf8", []byte{0xff, 0xfe, 0xfd}},
		{"object without text", []byte(`{"speed": 3}`)},
		{"text not a string", []byte(`{"text": 42}`)},
		{"bad color", []byte(`{"text": "x", "color": "reddish"}`)},
		{"broken json object", []byte(`{"text": `)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.payload); !errors.Is(err, ErrMalformed) {
				t.Errorf("Decode() error = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	req, err := Decode(nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if req.Text != "" {
		t.Errorf("Text = %q, want empty", req.Text)
	}
}
