package banner

import (
	"image"
	"testing"
	"time"

	"notid/internal/config"
	"notid/internal/notification"
	"notid/internal/text"
)

// fixedShaper builds a Shaper over a synthetic fixed-advance atlas, avoiding
// any dependency on a real TTF file for layout-only tests.
func fixedShaper(advance, height int) *text.Shaper {
	atlas := &text.Atlas{
		Glyphs: make(map[rune]text.GlyphInfo),
		Height: height,
		Image:  image.NewRGBA(image.Rect(0, 0, 1, 1)),
	}
	for ch := rune(32); ch <= 126; ch++ {
		atlas.Glyphs[ch] = text.GlyphInfo{Width: advance, Height: height, Advance: advance}
	}
	return &text.Shaper{Atlas: atlas}
}

func TestNewBannerStartsFresh(t *testing.T) {
	b := New(notification.Notification{ID: 1, Summary: "hi"})
	if b.State() != Fresh {
		t.Errorf("State() = %v, want Fresh", b.State())
	}
}

func TestUpdateDataMarksReplaced(t *testing.T) {
	b := New(notification.Notification{ID: 1, Summary: "hi"})
	b.state = Drawn
	b.UpdateData(notification.Notification{ID: 1, Summary: "bye"})
	if b.State() != Replaced {
		t.Errorf("State() after UpdateData = %v, want Replaced", b.State())
	}
	if b.Notification().Summary != "bye" {
		t.Errorf("Notification().Summary = %q, want %q", b.Notification().Summary, "bye")
	}
}

func TestDirtyFlag(t *testing.T) {
	b := New(notification.Notification{ID: 1, Summary: "hi"})
	if b.IsDirty() {
		t.Error("fresh banner reported dirty")
	}

	b.UpdateData(notification.Notification{ID: 1, Summary: "bye"})
	if !b.IsDirty() {
		t.Error("UpdateData did not mark the banner dirty")
	}

	b.dirty = false
	b.MarkDirty()
	if !b.IsDirty() {
		t.Error("MarkDirty did not mark the banner dirty")
	}
}

func TestResetTimeoutAdvancesCreatedAt(t *testing.T) {
	b := New(notification.Notification{ID: 1})
	b.createdAt = time.Now().Add(-time.Hour)
	before := b.CreatedAt()
	b.ResetTimeout()
	if !b.CreatedAt().After(before) {
		t.Error("ResetTimeout did not advance createdAt")
	}
}

func TestIsExpired(t *testing.T) {
	b := New(notification.Notification{
		Expire: notification.ExpireTimeout{Kind: notification.TimeoutMilliseconds, Milliseconds: 100},
	})
	b.createdAt = time.Now().Add(-200 * time.Millisecond)
	if !b.IsExpired(time.Now(), 5000) {
		t.Error("IsExpired() = false, want true")
	}
}

func TestDrawDefaultLayoutProducesFramebuffer(t *testing.T) {
	cfg := config.Default()
	b := New(notification.Notification{ID: 1, Summary: "Title", Body: notification.Parse("Body text")})

	shapers := Shapers{Title: fixedShaper(6, 14), Body: fixedShaper(6, 14)}
	err := b.Draw(&cfg, shapers, nil)
	if err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if b.Framebuffer() == nil {
		t.Fatal("Framebuffer() is nil after Draw")
	}
	w, h := b.Framebuffer().Bounds()
	if w != cfg.General.Width || h != cfg.General.Height {
		t.Errorf("Framebuffer bounds = %dx%d, want %dx%d", w, h, cfg.General.Width, cfg.General.Height)
	}
	if b.State() != Drawn {
		t.Errorf("State() after Draw = %v, want Drawn", b.State())
	}
}

func TestStateString(t *testing.T) {
	if Fresh.String() != "Fresh" || Closed.String() != "Closed" {
		t.Errorf("State.String() mismatch: %q, %q", Fresh.String(), Closed.String())
	}
}
