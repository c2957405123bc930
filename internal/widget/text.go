package widget

import "notid/internal/color"

// TextKind selects which notification field a Text widget's content comes
// from and which shaper/style from Context it is measured and drawn with.
type TextKind int

const (
	TextTitle TextKind = iota
	TextBody
)

// Text is a leaf widget that shapes either the notification's summary or
// its (markup-stripped) body against the Context's shaper for its Kind.
type Text struct {
	Kind TextKind

	size    Rect
	content string
}

func (t *Text) Size() Rect { return t.size }

// Compile selects the text content for Kind, then measures it against the
// matching shaper in ctx, clamped to max. A nil shaper (no font loaded)
// fails the widget.
func (t *Text) Compile(max Rect, ctx *Context) Result {
	switch t.Kind {
	case TextTitle:
		t.content = ctx.Notification.Summary
		if ctx.TitleShaper == nil {
			t.size = Rect{}
			return Failure
		}
		m := ctx.TitleShaper.Measure(t.content, max.Width, max.Height, ctx.TitleStyle)
		t.size = Rect{Width: m.Width, Height: m.Height}
	case TextBody:
		t.content = ctx.Notification.Body.Plain
		if ctx.BodyShaper == nil {
			t.size = Rect{}
			return Failure
		}
		m := ctx.BodyShaper.Measure(t.content, max.Width, max.Height, ctx.BodyStyle)
		t.size = Rect{Width: m.Width, Height: m.Height}
	}
	if t.content == "" {
		return Failure
	}
	return Success
}

// Draw paints the selected content with the matching shaper at offset.
func (t *Text) Draw(dst color.Canvas, offsetX, offsetY int, ctx *Context) {
	switch t.Kind {
	case TextTitle:
		if ctx.TitleShaper == nil {
			return
		}
		ctx.TitleShaper.Draw(dst, offsetX, offsetY, t.size.Width, t.size.Height, t.content, ctx.TitleStyle)
	case TextBody:
		if ctx.BodyShaper == nil {
			return
		}
		ctx.BodyShaper.Draw(dst, offsetX, offsetY, t.size.Width, t.size.Height, t.content, ctx.BodyStyle)
	}
}
