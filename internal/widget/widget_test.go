package widget

import (
	"testing"

	"notid/internal/color"
	"notid/internal/notification"
)

type stubWidget struct {
	size   Rect
	result Result
	drew   bool
}

func (s *stubWidget) Compile(max Rect, ctx *Context) Result {
	if s.result == Failure {
		return Failure
	}
	s.size = max
	return Success
}

func (s *stubWidget) Draw(dst color.Canvas, offsetX, offsetY int, ctx *Context) {
	s.drew = true
}

func (s *stubWidget) Size() Rect { return s.size }

func baseContext() *Context {
	n := notification.Notification{Summary: "title", Body: notification.Parse("body text")}
	return &Context{
		Notification: &n,
		Theme: Theme{
			Background: color.SolidFill(color.BGRA{R: 0.1, G: 0.1, B: 0.1, A: 1}),
			Foreground: color.SolidFill(color.BGRA{R: 1, G: 1, B: 1, A: 1}),
		},
	}
}

func TestFlexContainerCompilesAllChildren(t *testing.T) {
	a := &stubWidget{size: Rect{Width: 20, Height: 10}}
	b := &stubWidget{size: Rect{Width: 30, Height: 10}}
	f := &FlexContainer{
		Direction: Horizontal,
		Children:  []Child{{Widget: a}, {Widget: b}},
	}
	if got := f.Compile(Rect{Width: 100, Height: 50}, baseContext()); got != Success {
		t.Fatalf("Compile = %v, want Success", got)
	}
	if len(f.placed) != 2 {
		t.Fatalf("placed = %d widgets, want 2", len(f.placed))
	}
}

func TestFlexContainerDropsOptionalFailure(t *testing.T) {
	ok := &stubWidget{size: Rect{Width: 10, Height: 10}}
	bad := &stubWidget{result: Failure}
	f := &FlexContainer{
		Children: []Child{{Widget: ok}, {Widget: bad, Optional: true}},
	}
	if got := f.Compile(Rect{Width: 100, Height: 50}, baseContext()); got != Success {
		t.Fatalf("Compile = %v, want Success", got)
	}
	if len(f.placed) != 1 {
		t.Fatalf("placed = %d widgets, want 1 (optional failure dropped)", len(f.placed))
	}
}

func TestFlexContainerFailsOnMandatoryFailure(t *testing.T) {
	bad := &stubWidget{result: Failure}
	f := &FlexContainer{Children: []Child{{Widget: bad}}}
	if got := f.Compile(Rect{Width: 100, Height: 50}, baseContext()); got != Failure {
		t.Fatalf("Compile = %v, want Failure", got)
	}
}

func TestFlexContainerAlwaysFillsMax(t *testing.T) {
	f := &FlexContainer{}
	max := Rect{Width: 200, Height: 80}
	f.Compile(max, baseContext())
	if f.Size() != max {
		t.Errorf("Size() = %+v, want %+v", f.Size(), max)
	}
}

func TestFlexContainerDraw(t *testing.T) {
	a := &stubWidget{size: Rect{Width: 10, Height: 10}}
	f := &FlexContainer{Children: []Child{{Widget: a}}}
	f.Compile(Rect{Width: 50, Height: 50}, baseContext())

	buf := color.NewBuffer(50, 50)
	f.Draw(buf, 0, 0, baseContext())
	if !a.drew {
		t.Error("child was not drawn")
	}
}

func TestTextCompileFailsWithoutShaper(t *testing.T) {
	txt := &Text{Kind: TextTitle}
	ctx := baseContext()
	ctx.TitleShaper = nil
	if got := txt.Compile(Rect{Width: 200, Height: 200}, ctx); got != Failure {
		t.Errorf("Compile with nil shaper = %v, want Failure", got)
	}
}

func TestImageCompileUnknownFails(t *testing.T) {
	img := &Image{}
	ctx := baseContext()
	if got := img.Compile(Rect{Width: 64, Height: 64}, ctx); got != Failure {
		t.Errorf("Compile with no image sources = %v, want Failure", got)
	}
	if img.Size() != (Rect{}) {
		t.Errorf("Size() = %+v, want zero", img.Size())
	}
}
