package color

import (
	"fmt"
	"math"
)

// Stop is one color stop of a linear gradient, at position t in [0,1].
type Stop struct {
	T     float32
	Color BGRA
}

// Gradient is a linear gradient: a unit direction vector plus an ordered
// list of at least two color stops.
type Gradient struct {
	DirX, DirY float32
	Stops      []Stop
}

// Fill is either a single solid color or a linear gradient.
type Fill struct {
	Solid    *BGRA
	Gradient *Gradient
}

// SolidFill builds a Fill from a single color.
func SolidFill(c BGRA) Fill {
	return Fill{Solid: &c}
}

// NewGradient validates and builds a Fill backed by a linear gradient; the
// direction vector is normalized to unit length.
func NewGradient(dirX, dirY float32, stops []Stop) (Fill, error) {
	if len(stops) < 2 {
		return Fill{}, fmt.Errorf("color: gradient needs at least 2 stops, got %d", len(stops))
	}
	length := float32(math.Sqrt(float64(dirX*dirX + dirY*dirY)))
	if length == 0 {
		return Fill{}, fmt.Errorf("color: gradient direction vector must be non-zero")
	}
	return Fill{Gradient: &Gradient{DirX: dirX / length, DirY: dirY / length, Stops: stops}}, nil
}

// At samples the fill at parametric position t in [0,1] along the gradient
// direction. For a solid fill, t is ignored.
func (f Fill) At(t float32) BGRA {
	if f.Solid != nil {
		return *f.Solid
	}
	g := f.Gradient
	if t <= g.Stops[0].T {
		return g.Stops[0].Color
	}
	last := g.Stops[len(g.Stops)-1]
	if t >= last.T {
		return last.Color
	}
	for i := 0; i < len(g.Stops)-1; i++ {
		a, b := g.Stops[i], g.Stops[i+1]
		if t >= a.T && t <= b.T {
			span := b.T - a.T
			if span <= 0 {
				return a.Color
			}
			frac := (t - a.T) / span
			return lerp(a.Color, b.Color, frac)
		}
	}
	return last.Color
}

func lerp(a, b BGRA, frac float32) BGRA {
	return BGRA{
		R: a.R + (b.R-a.R)*frac,
		G: a.G + (b.G-a.G)*frac,
		B: a.B + (b.B-a.B)*frac,
		A: a.A + (b.A-a.A)*frac,
	}
}
