// Package widget implements the two-pass compile/draw widget tree used to
// turn a notification plus a theme into a pixel buffer: a tagged sum of
// {FlexContainer, Text, Image} leaves, each with a Compile phase that
// selects content and final size, and a Draw phase that paints at a
// computed offset.
package widget

import (
	"notid/internal/color"
	"notid/internal/imgsrc"
	"notid/internal/notification"
	"notid/internal/text"
)

// Rect is a compiled widget size in pixels.
type Rect struct {
	Width, Height int
}

// Result is the outcome of a Compile call.
type Result int

const (
	Success Result = iota
	Failure
)

// Direction is the main axis a FlexContainer lays its children along.
type Direction int

const (
	Horizontal Direction = iota
	Vertical
)

// Position selects how residual space along an axis is distributed.
type Position int

const (
	PosStart Position = iota
	PosCenter
	PosEnd
	PosSpaceBetween
)

// Alignment holds the main-axis and cross-axis positions of a FlexContainer.
type Alignment struct {
	Main, Cross Position
}

// Spacing is per-edge padding or margin, in pixels.
type Spacing struct {
	Top, Right, Bottom, Left int
}

func (s Spacing) Horizontal() int { return s.Left + s.Right }
func (s Spacing) Vertical() int   { return s.Top + s.Bottom }

// Border describes a container's rounded-rectangle border.
type Border struct {
	Size   int
	Radius int
	Color  color.BGRA
}

// Theme is the per-urgency color set a banner is drawn with.
type Theme struct {
	Foreground color.Fill
	Background color.Fill
	Border     color.Fill
}

// Context carries everything a widget needs to resolve content that isn't
// baked into its own fields: the notification being rendered, the active
// theme, text shapers for title/body, and image resolution settings.
// Override is true when the default layout is in use, meaning per-widget
// properties should be taken from Config's display override rather than
// whatever a custom layout file baked into the widget.
type Context struct {
	Notification *notification.Notification
	Theme        Theme
	TitleShaper  *text.Shaper
	BodyShaper   *text.Shaper
	TitleStyle   text.Style
	BodyStyle    text.Style
	ImageConfig  imgsrc.Config
	Override     bool
}

// Widget is the compile/draw protocol every tree node implements.
type Widget interface {
	Compile(max Rect, ctx *Context) Result
	Draw(dst color.Canvas, offsetX, offsetY int, ctx *Context)
	Size() Rect
}
