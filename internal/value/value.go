// Package value implements the tagged Value sum used by per-app display
// overrides, replacing the type-erased Box<dyn Any> the original config
// layer downcast at use sites.
package value

import (
	"fmt"

	"notid/internal/color"
	"notid/internal/widget"
)

// Kind tags which field of Value is populated.
type Kind int

const (
	KindUInt Kind = iota
	KindString
	KindBool
	KindColor
	KindSpacing
)

// Value is a closed sum of the property types a layout override can carry.
// Exactly the field matching Kind is valid; accessors return ok=false
// rather than panicking on a kind mismatch.
type Value struct {
	kind    Kind
	uint    uint
	str     string
	boolean bool
	color   color.Fill
	spacing widget.Spacing
}

func UInt(v uint) Value              { return Value{kind: KindUInt, uint: v} }
func String(v string) Value          { return Value{kind: KindString, str: v} }
func Bool(v bool) Value              { return Value{kind: KindBool, boolean: v} }
func Color(v color.Fill) Value       { return Value{kind: KindColor, color: v} }
func SpacingValue(v widget.Spacing) Value { return Value{kind: KindSpacing, spacing: v} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsUInt() (uint, bool) {
	if v.kind != KindUInt {
		return 0, false
	}
	return v.uint, true
}

func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

func (v Value) AsBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.boolean, true
	case KindString:
		switch v.str {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}

func (v Value) AsColor() (color.Fill, bool) {
	if v.kind != KindColor {
		return color.Fill{}, false
	}
	return v.color, true
}

func (v Value) AsSpacing() (widget.Spacing, bool) {
	if v.kind != KindSpacing {
		return widget.Spacing{}, false
	}
	return v.spacing, true
}

// ErrCannotConvert reports that a Value's Kind doesn't match the type a
// caller asked for.
type ErrCannotConvert struct {
	Want Kind
	Got  Kind
}

func (e *ErrCannotConvert) Error() string {
	return fmt.Sprintf("value: cannot convert %v to %v", e.Got, e.Want)
}

func (k Kind) String() string {
	switch k {
	case KindUInt:
		return "UInt"
	case KindString:
		return "String"
	case KindBool:
		return "Bool"
	case KindColor:
		return "Color"
	case KindSpacing:
		return "Spacing"
	default:
		return "Unknown"
	}
}
