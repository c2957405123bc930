// Package color implements the renderer's pixel color types and alpha-over
// compositing.
package color

import (
	"fmt"
	"strconv"
)

// BGRA is a color in the renderer's native framebuffer channel order. Each
// channel is in [0,1].
type BGRA struct {
	B, G, R, A float32
}

// RGBA is a color in I/O channel order (notification hints, config files).
type RGBA struct {
	R, G, B, A float32
}

// ToBGRA converts an RGBA value to the renderer's native order.
func (c RGBA) ToBGRA() BGRA {
	return BGRA{B: c.B, G: c.G, R: c.R, A: c.A}
}

// ToRGBA converts a BGRA value to I/O order.
func (c BGRA) ToRGBA() RGBA {
	return RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// epsilon below which a composited alpha is treated as fully transparent.
const epsilon = 1e-6

// OverlayOn implements alpha-over: fg painted on top of bg.
//
// a' = 1 - (1-fg.a)(1-bg.a); when a' < epsilon the result is fully
// transparent and the RGB channels are zeroed so equality checks stay
// deterministic.
func OverlayOn(fg, bg BGRA) BGRA {
	aPrime := 1 - (1-fg.A)*(1-bg.A)
	if aPrime < epsilon {
		return BGRA{}
	}
	mix := func(fgc, bgc float32) float32 {
		return fgc*fg.A/aPrime + bgc*bg.A*(1-fg.A)/aPrime
	}
	return BGRA{
		R: mix(fg.R, bg.R),
		G: mix(fg.G, bg.G),
		B: mix(fg.B, bg.B),
		A: aPrime,
	}
}

// ParseHex parses a hex color: "#rgb", "#rgba", "#rrggbb" or "#aarrggbb".
// The eight-digit form carries its alpha byte first, the order desktop
// theme configs use; the four-digit shorthand keeps CSS's trailing alpha
// nibble. Both alpha-carrying forms are premultiplied on parse, so
// "#80000000" yields (0, 0, 0, 0x80).
func ParseHex(s string) (RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return RGBA{}, fmt.Errorf("color: %q must start with '#'", s)
	}
	digits := s[1:]

	switch len(digits) {
	case 3:
		r, err := nibble(digits[0])
		if err != nil {
			return RGBA{}, err
		}
		g, err := nibble(digits[1])
		if err != nil {
			return RGBA{}, err
		}
		b, err := nibble(digits[2])
		if err != nil {
			return RGBA{}, err
		}
		return RGBA{R: r, G: g, B: b, A: 1}, nil
	case 4:
		r, err := nibble(digits[0])
		if err != nil {
			return RGBA{}, err
		}
		g, err := nibble(digits[1])
		if err != nil {
			return RGBA{}, err
		}
		b, err := nibble(digits[2])
		if err != nil {
			return RGBA{}, err
		}
		a, err := nibble(digits[3])
		if err != nil {
			return RGBA{}, err
		}
		return premultiply(RGBA{R: r, G: g, B: b, A: a}), nil
	case 6, 8:
		a := float32(1)
		rgb := digits
		if len(digits) == 8 {
			var err error
			a, err = byteChannel(digits[0:2])
			if err != nil {
				return RGBA{}, err
			}
			rgb = digits[2:]
		}
		r, err := byteChannel(rgb[0:2])
		if err != nil {
			return RGBA{}, err
		}
		g, err := byteChannel(rgb[2:4])
		if err != nil {
			return RGBA{}, err
		}
		b, err := byteChannel(rgb[4:6])
		if err != nil {
			return RGBA{}, err
		}
		return premultiply(RGBA{R: r, G: g, B: b, A: a}), nil
	default:
		return RGBA{}, fmt.Errorf("color: %q has unsupported digit count %d", s, len(digits))
	}
}

func premultiply(c RGBA) RGBA {
	if c.A >= 1 {
		return c
	}
	return RGBA{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

func nibble(c byte) (float32, error) {
	v, err := strconv.ParseUint(string(c), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("color: invalid hex digit %q: %w", c, err)
	}
	return float32(v*16+v) / 255, nil
}

func byteChannel(s string) (float32, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("color: invalid hex byte %q: %w", s, err)
	}
	return float32(v) / 255, nil
}
