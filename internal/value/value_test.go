package value

import (
	"testing"

	"notid/internal/color"
	"notid/internal/widget"
)

func TestUIntRoundTrip(t *testing.T) {
	v := UInt(42)
	got, ok := v.AsUInt()
	if !ok || got != 42 {
		t.Fatalf("AsUInt() = %d, %v, want 42, true", got, ok)
	}
	if _, ok := v.AsString(); ok {
		t.Error("AsString() on a UInt value returned ok=true")
	}
}

func TestBoolFromString(t *testing.T) {
	v := String("true")
	got, ok := v.AsBool()
	if !ok || !got {
		t.Fatalf("AsBool() on String(true) = %v, %v, want true, true", got, ok)
	}
}

func TestColorRoundTrip(t *testing.T) {
	fill := color.SolidFill(color.BGRA{R: 1, A: 1})
	v := Color(fill)
	got, ok := v.AsColor()
	if !ok {
		t.Fatal("AsColor() ok=false")
	}
	if got.At(0) != fill.At(0) {
		t.Errorf("AsColor() = %+v, want %+v", got, fill)
	}
}

func TestSpacingRoundTrip(t *testing.T) {
	s := widget.Spacing{Top: 1, Right: 2, Bottom: 3, Left: 4}
	v := SpacingValue(s)
	got, ok := v.AsSpacing()
	if !ok || got != s {
		t.Fatalf("AsSpacing() = %+v, %v, want %+v, true", got, ok, s)
	}
}

func TestKindMismatchReturnsFalse(t *testing.T) {
	v := Bool(true)
	if _, ok := v.AsUInt(); ok {
		t.Error("AsUInt() on a Bool value returned ok=true")
	}
}
