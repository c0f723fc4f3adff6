// Package request decodes inbound render requests from the input topic.
//
// The wire schema is a JSON object:
//
//	{"text": "Hi 👋🏽", "color": "#ff8800", "scroll": true}
//
// "data.emoji" is accepted as an alias for "text" for compatibility with the
// original Firebase-relay payload shape. A payload that is not a JSON object
// is taken as bare UTF-8 text with default parameters.
package request

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tidwall/gjson"
)

// ErrMalformed reports an undecodable payload. The daemon drops the request
// and continues.
var ErrMalformed = errors.New("request: malformed payload")

// Request is one inbound unit of work: the text to render plus optional
// rendering parameters. Consumed synchronously by one pipeline pass.
type Request struct {
	// Text is the string to render.
	Text string
	// Tint, when set, colors all foreground glyph pixels.
	Tint *colorful.Color
	// Scroll forces the scroll overflow policy for this request.
	Scroll bool
}

// Decode parses an input topic payload into a Request.
func Decode(payload []byte) (Request, error) {
	if !utf8.Valid(payload) {
		return Request{}, fmt.Errorf("%w: not valid UTF-8", ErrMalformed)
	}

	text := string(payload)
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") {
		return Request{Text: text}, nil
	}

	root := gjson.Parse(trimmed)
	if !root.IsObject() {
		return Request{}, fmt.Errorf("%w: invalid JSON object", ErrMalformed)
	}

	field := root.Get("text")
	if !field.Exists() {
		field = root.Get("data.emoji")
	}
	if !field.Exists() || field.Type != gjson.String {
		return Request{}, fmt.Errorf("%w: missing text field", ErrMalformed)
	}

	req := Request{
		Text:   field.String(),
		Scroll: root.Get("scroll").Bool(),
	}

	if c := root.Get("color"); c.Exists() {
		tint, err := colorful.Hex(c.String())
		if err != nil {
			return Request{}, fmt.Errorf("%w: bad color %q: %v", ErrMalformed, c.String(), err)
		}
		req.Tint = &tint
	}

	return req, nil
}
