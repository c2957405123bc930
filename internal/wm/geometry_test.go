package wm

import (
	"testing"

	"notid/internal/config"
	"notid/internal/wlshell"
)

func TestAnchorBits(t *testing.T) {
	cases := []struct {
		anchor config.Anchor
		want   wlshell.Anchor
	}{
		{config.AnchorTop, wlshell.AnchorTop},
		{config.AnchorTopLeft, wlshell.AnchorTop | wlshell.AnchorLeft},
		{config.AnchorTopRight, wlshell.AnchorTop | wlshell.AnchorRight},
		{config.AnchorBottom, wlshell.AnchorBottom},
		{config.AnchorBottomLeft, wlshell.AnchorBottom | wlshell.AnchorLeft},
		{config.AnchorBottomRight, wlshell.AnchorBottom | wlshell.AnchorRight},
		{config.AnchorLeft, wlshell.AnchorLeft},
		{config.AnchorRight, wlshell.AnchorRight},
	}
	for _, tc := range cases {
		if got := anchorBits(tc.anchor); got != tc.want {
			t.Errorf("anchorBits(%v) = %#x, want %#x", tc.anchor, got, tc.want)
		}
	}
}

func TestMarginsGrowAwayFromAnchor(t *testing.T) {
	tops := []config.Anchor{config.AnchorTop, config.AnchorTopLeft, config.AnchorTopRight}
	for _, anchor := range tops {
		g := config.General{Anchor: anchor, OffsetX: 5, OffsetY: 7}
		top0, _, bottom0, _ := margins(g, 0)
		top1, _, bottom1, _ := margins(g, 160)
		if top1 <= top0 {
			t.Errorf("anchor %v: top margin must grow with stack position (%d -> %d)", anchor, top0, top1)
		}
		if bottom1 != bottom0 {
			t.Errorf("anchor %v: bottom margin moved (%d -> %d)", anchor, bottom0, bottom1)
		}
	}

	bottoms := []config.Anchor{config.AnchorBottom, config.AnchorBottomLeft, config.AnchorBottomRight}
	for _, anchor := range bottoms {
		g := config.General{Anchor: anchor, OffsetX: 5, OffsetY: 7}
		_, _, bottom0, _ := margins(g, 0)
		top0, _, _, _ := margins(g, 0)
		top1, _, bottom1, _ := margins(g, 160)
		if bottom1 <= bottom0 {
			t.Errorf("anchor %v: bottom margin must grow with stack position (%d -> %d)", anchor, bottom0, bottom1)
		}
		if top1 != top0 {
			t.Errorf("anchor %v: top margin moved (%d -> %d)", anchor, top0, top1)
		}
	}
}

func TestMarginsApplyConfiguredOffset(t *testing.T) {
	g := config.General{Anchor: config.AnchorTopRight, OffsetX: 12, OffsetY: 34}
	top, right, bottom, left := margins(g, 0)
	if top != 34 || right != 12 || bottom != 34 || left != 12 {
		t.Errorf("margins = (%d,%d,%d,%d)", top, right, bottom, left)
	}
}
