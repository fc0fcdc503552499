package color

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var hexColor = regexp.MustCompile(`^#[0-9A-F]{6}$`)

func TestForKey_Stable(t *testing.T) {
	a := ForKey("12345678901")
	assert.Regexp(t, hexColor, a)
	assert.Equal(t, a, ForKey("12345678901"))
	assert.NotEqual(t, a, ForKey("10987654321"))
}

func TestForKey_Empty(t *testing.T) {
	assert.Equal(t, "#8C8C8C", ForKey(""))
}

func TestHSLToRGB(t *testing.T) {
	tests := []struct {
		name    string
		h, s, l float64
		r, g, b uint8
	}{
		{"gray", 0, 0, 0.5, 127, 127, 127},
		{"red", 0, 1, 0.5, 255, 0, 0},
		{"green", 1.0 / 3, 1, 0.5, 0, 255, 0},
		{"blue", 2.0 / 3, 1, 0.5, 0, 0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := hslToRGB(tt.h, tt.s, tt.l)
			assert.Equal(t, []uint8{tt.r, tt.g, tt.b}, []uint8{r, g, b})
		})
	}
}
