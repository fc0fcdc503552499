// Package color derives placeholder colors for employees without a photo.
package color

import (
	"fmt"
	"hash/fnv"
)

// Placeholder palette: fixed saturation and lightness keep white initials readable.
const (
	saturation = 0.45
	lightness  = 0.55
)

// ForKey returns a stable "#RRGGBB" color for key (a CPF). Equal keys always
// map to the same color; the empty key maps to neutral gray.
func ForKey(key string) string {
	if key == "" {
		return "#8C8C8C"
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	hue := float64(h.Sum32()%360) / 360

	r, g, b := hslToRGB(hue, saturation, lightness)
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// hslToRGB converts a color with hue, saturation and lightness in [0,1] to 8-bit RGB.
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := uint8(l * 255)
		return v, v, v
	}

	q := l + s - l*s
	if l < 0.5 {
		q = l * (1 + s)
	}
	p := 2*l - q

	return channel(p, q, h+1.0/3), channel(p, q, h), channel(p, q, h-1.0/3)
}

func channel(p, q, t float64) uint8 {
	switch {
	case t < 0:
		t++
	case t > 1:
		t--
	}

	var v float64
	switch {
	case t < 1.0/6:
		v = p + (q-p)*6*t
	case t < 1.0/2:
		v = q
	case t < 2.0/3:
		v = p + (q-p)*(2.0/3-t)*6
	default:
		v = p
	}
	return uint8(v * 255)
}
