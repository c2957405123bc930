package widget

import "notid/internal/color"

// Child wraps a widget with whether its failure is tolerated. A mandatory
// child failing fails the whole container; an optional child failing is
// silently dropped from the draw list.
type Child struct {
	Widget   Widget
	Optional bool
}

type placed struct {
	widget Widget
	x, y   int
}

// FlexContainer lays its children out along Direction, with Alignment
// controlling how residual space is distributed on the main axis and how
// each child is positioned on the cross axis.
type FlexContainer struct {
	Direction   Direction
	Alignment   Alignment
	Spacing     Spacing
	Border      Border
	Transparent bool
	Children    []Child

	size   Rect
	placed []placed
}

func (f *FlexContainer) Size() Rect { return f.size }

// Compile shrinks max by the border and padding, compiles each child in
// order along the main axis, drops failed optional children, fails the
// container if any mandatory child fails, and positions the survivors per
// Alignment. The container always fills the max rect it was given; callers
// that need content-sized containers should measure children themselves.
func (f *FlexContainer) Compile(max Rect, ctx *Context) Result {
	f.size = max
	f.placed = f.placed[:0]

	innerW := max.Width - 2*f.Border.Size - f.Spacing.Horizontal()
	innerH := max.Height - 2*f.Border.Size - f.Spacing.Vertical()
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}

	type compiled struct {
		w    Widget
		size Rect
	}
	var survivors []compiled

	remainingMain := innerW
	if f.Direction == Vertical {
		remainingMain = innerH
	}

	for _, child := range f.Children {
		childMax := Rect{Width: remainingMain, Height: innerH}
		if f.Direction == Vertical {
			childMax = Rect{Width: innerW, Height: remainingMain}
		}

		result := child.Widget.Compile(childMax, ctx)
		if result == Failure {
			if !child.Optional {
				return Failure
			}
			continue
		}

		size := child.Widget.Size()
		survivors = append(survivors, compiled{w: child.Widget, size: size})

		if f.Direction == Horizontal {
			remainingMain -= size.Width
		} else {
			remainingMain -= size.Height
		}
		if remainingMain < 0 {
			remainingMain = 0
		}
	}

	usedMain := 0
	for _, s := range survivors {
		if f.Direction == Horizontal {
			usedMain += s.size.Width
		} else {
			usedMain += s.size.Height
		}
	}
	mainExtent := innerW
	if f.Direction == Vertical {
		mainExtent = innerH
	}
	residual := mainExtent - usedMain
	if residual < 0 {
		residual = 0
	}

	originX := f.Border.Size + f.Spacing.Left
	originY := f.Border.Size + f.Spacing.Top

	gap := 0
	lead := 0
	switch f.Alignment.Main {
	case PosCenter:
		lead = residual / 2
	case PosEnd:
		lead = residual
	case PosSpaceBetween:
		if len(survivors) > 1 {
			gap = residual / (len(survivors) - 1)
		}
	}

	mainPos := lead
	for _, s := range survivors {
		crossExtent := innerH
		childCross := s.size.Height
		if f.Direction == Vertical {
			crossExtent = innerW
			childCross = s.size.Width
		}

		crossLead := 0
		switch f.Alignment.Cross {
		case PosCenter:
			crossLead = (crossExtent - childCross) / 2
		case PosEnd:
			crossLead = crossExtent - childCross
		}
		if crossLead < 0 {
			crossLead = 0
		}

		var x, y int
		if f.Direction == Horizontal {
			x, y = originX+mainPos, originY+crossLead
			mainPos += s.size.Width + gap
		} else {
			x, y = originX+crossLead, originY+mainPos
			mainPos += s.size.Height + gap
		}

		f.placed = append(f.placed, placed{widget: s.w, x: x, y: y})
	}

	return Success
}

// Draw paints the border, the background (unless Transparent), then
// recurses into children at their compiled offsets.
func (f *FlexContainer) Draw(dst color.Canvas, offsetX, offsetY int, ctx *Context) {
	if f.Border.Size > 0 {
		drawBorder(dst, offsetX, offsetY, f.size, f.Border)
	}
	if !f.Transparent {
		fillRect(dst, offsetX+f.Border.Size, offsetY+f.Border.Size,
			f.size.Width-2*f.Border.Size, f.size.Height-2*f.Border.Size, ctx.Theme.Background)
	}
	for _, p := range f.placed {
		p.widget.Draw(dst, offsetX+p.x, offsetY+p.y, ctx)
	}
}

// fillRect paints fill across a w×h rect. For a gradient fill, t at each
// pixel is its projection onto the gradient's direction vector, normalized
// to the rect's diagonal extent.
func fillRect(dst color.Canvas, x, y, w, h int, fill color.Fill) {
	if fill.Gradient == nil {
		c := fill.At(0)
		for dy := 0; dy < h; dy++ {
			for dx := 0; dx < w; dx++ {
				dst.Set(x+dx, y+dy, c)
			}
		}
		return
	}
	g := fill.Gradient
	extent := float32(w)*absf(g.DirX) + float32(h)*absf(g.DirY)
	if extent <= 0 {
		extent = 1
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			t := (float32(dx)*g.DirX + float32(dy)*g.DirY) / extent
			dst.Set(x+dx, y+dy, fill.At(t))
		}
	}
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// drawBorder paints a flat-color rectangle outline of the configured
// size; Radius is honoured by the background fill overdrawing the corner
// pixels rather than by a separate arc rasterizer.
func drawBorder(dst color.Canvas, x, y int, size Rect, b Border) {
	c := b.Color
	for i := 0; i < b.Size; i++ {
		for dx := 0; dx < size.Width; dx++ {
			dst.Set(x+dx, y+i, c)
			dst.Set(x+dx, y+size.Height-1-i, c)
		}
		for dy := 0; dy < size.Height; dy++ {
			dst.Set(x+i, y+dy, c)
			dst.Set(x+size.Width-1-i, y+dy, c)
		}
	}
}
