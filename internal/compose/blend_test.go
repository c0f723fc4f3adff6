package compose

import "testing"

func TestBlendPixel(t *testing.T) {
	tests := []struct {
		name string
		fg   [4]uint8
		bg   [3]uint8
		want [3]uint8
	}{
		{"half red over green", [4]uint8{255, 0, 0, 128}, [3]uint8{0, 255, 0}, [3]uint8{128, 127, 0}},
		{"opaque replaces", [4]uint8{10, 20, 30, 255}, [3]uint8{200, 200, 200}, [3]uint8{10, 20, 30}},
		{"transparent keeps background", [4]uint8{255, 255, 255, 0}, [3]uint8{5, 6, 7}, [3]uint8{5, 6, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := blendPixel(tt.fg[0], tt.fg[1], tt.fg[2], tt.fg[3], tt.bg[0], tt.bg[1], tt.bg[2])
			got := [3]uint8{r, g, b}
			if got != tt.want {
				t.Errorf("blendPixel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTintChannel(t *testing.T) {
	tests := []struct {
		v, tint, want uint8
	}{
		{255, 255, 255},
		{255, 0, 0},
		{0, 255, 0},
		{255, 128, 128},
		{128, 128, 64},
	}
	for _, tt := range tests {
		if got := tintChannel(tt.v, tt.tint); got != tt.want {
			t.Errorf("tintChannel(%d, %d) = %d, want %d", tt.v, tt.tint, got, tt.want)
		}
	}
}
