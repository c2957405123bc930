// ABOUTME: Tests for the Buffer canvas and its translated/clipped sub-canvas view.
// ABOUTME: Covers out-of-bounds writes and alpha-over compositing through SubCanvas.

package color

import "testing"

func TestBufferSetAndAt(t *testing.T) {
	b := NewBuffer(4, 3)
	c := BGRA{R: 1, A: 1}
	b.Set(2, 1, c)
	if got := b.At(2, 1); got != c {
		t.Errorf("At(2,1) = %+v, want %+v", got, c)
	}
}

func TestBufferSetOutOfBoundsIgnored(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Set(-1, 0, BGRA{R: 1, A: 1})
	b.Set(5, 5, BGRA{R: 1, A: 1})
	for _, p := range b.Pix {
		if p != (BGRA{}) {
			t.Fatalf("expected all pixels zero, got %+v", p)
		}
	}
}

func TestSubCanvasTranslatesAndClips(t *testing.T) {
	b := NewBuffer(10, 10)
	sub := b.SubCanvas(3, 4, 4, 4)

	w, h := sub.Bounds()
	if w != 4 || h != 4 {
		t.Fatalf("Bounds() = (%d,%d), want (4,4)", w, h)
	}

	opaque := BGRA{R: 1, A: 1}
	sub.Set(0, 0, opaque)
	if got := b.At(3, 4); got != opaque {
		t.Errorf("parent.At(3,4) = %+v, want %+v", got, opaque)
	}

	sub.Set(10, 10, opaque)
	if got := b.At(13, 14); got != (BGRA{}) {
		t.Errorf("write clipped outside sub bounds leaked through: %+v", got)
	}
}

func TestSubCanvasCompositesOverExisting(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Set(0, 0, BGRA{R: 0, G: 0, B: 0, A: 1})
	sub := b.SubCanvas(0, 0, 2, 2)
	sub.Set(0, 0, BGRA{})
	if got := b.At(0, 0); got.A != 1 {
		t.Errorf("overlay of transparent fg over opaque bg changed alpha: got %+v", got)
	}
}
