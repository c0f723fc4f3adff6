package compose

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/ledmoji/internal/glyph"
)

// Policy selects how glyphs that overflow the canvas width are handled.
type Policy int

const (
	// PolicyClip truncates trailing glyphs at the canvas width.
	PolicyClip Policy = iota
	// PolicyWrap returns the cursor to column 0 on the next row band,
	// truncating vertically when rows exceed the canvas height.
	PolicyWrap
	// PolicyScroll renders a virtual-width strip and emits one frame per
	// horizontal offset.
	PolicyScroll
)

// String returns the configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyClip:
		return "clip"
	case PolicyWrap:
		return "wrap"
	case PolicyScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// ParsePolicy parses a configuration value into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "clip":
		return PolicyClip, nil
	case "wrap":
		return PolicyWrap, nil
	case "scroll":
		return PolicyScroll, nil
	default:
		return PolicyClip, fmt.Errorf("compose: unknown overflow policy %q", s)
	}
}

// PlaceholderStyle selects the glyph substituted for unresolvable sequences.
type PlaceholderStyle int

const (
	// PlaceholderBox draws a one-pixel hollow box.
	PlaceholderBox PlaceholderStyle = iota
	// PlaceholderBlank reserves the same width with nothing drawn.
	PlaceholderBlank
)

// ParsePlaceholder parses a configuration value into a PlaceholderStyle.
func ParsePlaceholder(s string) (PlaceholderStyle, error) {
	switch s {
	case "box":
		return PlaceholderBox, nil
	case "blank":
		return PlaceholderBlank, nil
	default:
		return PlaceholderBox, fmt.Errorf("compose: unknown placeholder style %q", s)
	}
}

// Config sets the fixed layout parameters of a Compositor.
type Config struct {
	// Width and Height are the canvas dimensions in pixels.
	Width, Height int
	// Spacing is the fixed inter-glyph gap in pixels.
	Spacing int
	// Policy is the overflow policy applied by Compose.
	Policy Policy
	// Placeholder selects the substitute for unresolvable sequences.
	Placeholder PlaceholderStyle
	// Background is the canvas fill color.
	Background [3]uint8
}

// Params are the per-request rendering parameters.
type Params struct {
	// Tint, when set, multiplies the channels of every foreground glyph
	// pixel before blending.
	Tint *colorful.Color
}

// Compositor lays out resolved glyphs onto frames. It holds only read-only
// references into the glyph store, so one compositor may serve successive
// render passes.
type Compositor struct {
	store       *glyph.Store
	cfg         Config
	placeholder *glyph.Glyph
}

// New creates a compositor over the given store.
func New(store *glyph.Store, cfg Config) *Compositor {
	return &Compositor{
		store:       store,
		cfg:         cfg,
		placeholder: placeholderGlyph(cfg.Placeholder, store.RowHeight()),
	}
}

// Policy returns the configured overflow policy.
func (c *Compositor) Policy() Policy {
	return c.cfg.Policy
}

// Compose lays out units onto a single canvas-sized frame using the
// configured clip or wrap policy. Unresolvable units render as the
// placeholder at its designated width; units are never dropped, so
// horizontal positions stay in sync with the source text.
func (c *Compositor) Compose(units []glyph.Sequence, p Params) *Frame {
	frame := newFrame(c.cfg.Width, c.cfg.Height, c.cfg.Background)
	glyphs := c.resolveAll(units)

	x, y := 0, 0
	rowH := c.store.RowHeight()
	for _, g := range glyphs {
		if c.cfg.Policy == PolicyWrap && x > 0 && x+g.W > c.cfg.Width {
			x = 0
			y += rowH
		}
		if y >= c.cfg.Height {
			break
		}
		if c.cfg.Policy != PolicyWrap && x >= c.cfg.Width {
			break
		}
		c.blit(frame, g, x, y, p)
		x += g.W + c.cfg.Spacing
	}
	return frame
}

// ComposeScroll renders units onto a virtual-width strip and windows it at
// strictly increasing horizontal offsets, one canvas-sized frame per offset.
// A strip no wider than the canvas yields exactly one frame.
func (c *Compositor) ComposeScroll(units []glyph.Sequence, p Params) []*Frame {
	glyphs := c.resolveAll(units)

	stripW := 0
	for i, g := range glyphs {
		if i > 0 {
			stripW += c.cfg.Spacing
		}
		stripW += g.W
	}
	if stripW < c.cfg.Width {
		stripW = c.cfg.Width
	}

	strip := newFrame(stripW, c.cfg.Height, c.cfg.Background)
	x := 0
	for _, g := range glyphs {
		c.blit(strip, g, x, 0, p)
		x += g.W + c.cfg.Spacing
	}

	steps := stripW - c.cfg.Width + 1
	frames := make([]*Frame, 0, steps)
	for offset := 0; offset < steps; offset++ {
		frames = append(frames, window(strip, offset, c.cfg.Width))
	}
	return frames
}

// resolveAll maps units to glyphs, substituting the placeholder for
// unresolvable sequences.
func (c *Compositor) resolveAll(units []glyph.Sequence) []*glyph.Glyph {
	glyphs := make([]*glyph.Glyph, len(units))
	for i, u := range units {
		if g, ok := c.store.Resolve(u); ok {
			glyphs[i] = g
		} else {
			glyphs[i] = c.placeholder
		}
	}
	return glyphs
}

// blit blends glyph g onto the frame at (x0, y0), clipping at the frame
// bounds. Fully transparent pixels leave the background untouched.
func (c *Compositor) blit(f *Frame, g *glyph.Glyph, x0, y0 int, p Params) {
	var tr, tg, tb uint8
	if p.Tint != nil {
		tr, tg, tb = p.Tint.RGB255()
	}

	for gy := 0; gy < g.H; gy++ {
		fy := y0 + gy
		if fy < 0 || fy >= f.Height {
			continue
		}
		for gx := 0; gx < g.W; gx++ {
			fx := x0 + gx
			if fx < 0 || fx >= f.Width {
				continue
			}
			si := (gy*g.W + gx) * 4
			fr, fg, fb, fa := g.Pix[si], g.Pix[si+1], g.Pix[si+2], g.Pix[si+3]
			if fa == 0 {
				continue
			}
			if p.Tint != nil {
				fr = tintChannel(fr, tr)
				fg = tintChannel(fg, tg)
				fb = tintChannel(fb, tb)
			}
			di := (fy*f.Width + fx) * 3
			br, bg, bb := f.Pix[di], f.Pix[di+1], f.Pix[di+2]
			f.Pix[di], f.Pix[di+1], f.Pix[di+2] = blendPixel(fr, fg, fb, fa, br, bg, bb)
		}
	}
}

// window copies a canvas-width column slice of the strip starting at offset.
func window(strip *Frame, offset, width int) *Frame {
	out := &Frame{
		Width:  width,
		Height: strip.Height,
		Pix:    make([]uint8, width*strip.Height*3),
	}
	for y := 0; y < strip.Height; y++ {
		src := (y*strip.Width + offset) * 3
		dst := y * width * 3
		copy(out.Pix[dst:dst+width*3], strip.Pix[src:src+width*3])
	}
	return out
}

// placeholderGlyph builds the substitute glyph for unresolvable sequences.
// Both styles reserve the same width so layout is independent of style.
func placeholderGlyph(style PlaceholderStyle, rowHeight int) *glyph.Glyph {
	w := rowHeight * 3 / 4
	if w < 3 {
		w = 3
	}
	g := &glyph.Glyph{W: w, H: rowHeight, Pix: make([]uint8, w*rowHeight*4)}
	if style == PlaceholderBlank {
		return g
	}

	set := func(x, y int) {
		i := (y*w + x) * 4
		g.Pix[i], g.Pix[i+1], g.Pix[i+2], g.Pix[i+3] = 255, 255, 255, 255
	}
	for x := 0; x < w; x++ {
		set(x, 0)
		set(x, rowHeight-1)
	}
	for y := 0; y < rowHeight; y++ {
		set(0, y)
		set(w-1, y)
	}
	return g
}
