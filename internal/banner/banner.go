// Package banner implements the per-notification render state machine: a
// Banner is born Fresh, becomes Compiled once its widget tree sizes
// successfully, Drawn once painted into a framebuffer, and Live once a
// layer-shell surface is showing it, finally leaving the stack as Expired,
// Replaced, Dismissed, or explicitly Closed.
package banner

import (
	"fmt"
	"time"

	"notid/internal/color"
	"notid/internal/config"
	"notid/internal/imgsrc"
	"notid/internal/layout"
	"notid/internal/notification"
	"notid/internal/text"
	"notid/internal/widget"
)

// State is where in its lifecycle a Banner currently sits.
type State int

const (
	Fresh State = iota
	Compiled
	Drawn
	Live
	Expired
	Replaced
	Dismissed
	Closed
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "Fresh"
	case Compiled:
		return "Compiled"
	case Drawn:
		return "Drawn"
	case Live:
		return "Live"
	case Expired:
		return "Expired"
	case Replaced:
		return "Replaced"
	case Dismissed:
		return "Dismissed"
	case Closed:
		return "Closed"
	default:
		return "Unknown"
	}
}

// Banner holds one notification's render state: the data it was created
// from, when its expiry timer started, and the pixels last drawn for it.
type Banner struct {
	data        notification.Notification
	createdAt   time.Time
	state       State
	framebuffer *color.Buffer
	dirty       bool
}

// New creates a Fresh banner for n.
func New(n notification.Notification) *Banner {
	return &Banner{data: n, createdAt: time.Now(), state: Fresh}
}

func (b *Banner) Notification() *notification.Notification { return &b.data }

func (b *Banner) State() State { return b.state }

func (b *Banner) CreatedAt() time.Time { return b.createdAt }

func (b *Banner) Framebuffer() *color.Buffer { return b.framebuffer }

// ResetTimeout restarts the expiry clock, used when the compositor reports
// a pointer-enter over this banner's surface.
func (b *Banner) ResetTimeout() {
	b.createdAt = time.Now()
}

// UpdateData replaces the notification this banner renders (a same-id
// Notify call), resets its timer, and marks it for recompilation.
func (b *Banner) UpdateData(n notification.Notification) {
	b.data = n
	b.createdAt = time.Now()
	b.dirty = true
	if b.state != Fresh {
		b.state = Replaced
	}
}

// MarkDirty flags the banner for a redraw on the next dispatch, used when
// a watched layout file it renders with was reparsed.
func (b *Banner) MarkDirty() { b.dirty = true }

// IsDirty reports whether the banner's layout or data changed since it was
// last drawn.
func (b *Banner) IsDirty() bool { return b.dirty }

// IsExpired reports whether the elapsed time since createdAt has passed the
// notification's effective timeout.
func (b *Banner) IsExpired(now time.Time, defaultMs uint32) bool {
	elapsed := now.Sub(b.createdAt)
	if elapsed < 0 {
		elapsed = 0
	}
	return b.data.IsExpired(uint32(elapsed.Milliseconds()), defaultMs)
}

// Close transitions the banner to Closed; idempotent.
func (b *Banner) Close() { b.state = Closed }

// Dismiss transitions the banner to Dismissed.
func (b *Banner) Dismiss() { b.state = Dismissed }

// MarkExpired transitions the banner to Expired.
func (b *Banner) MarkExpired() { b.state = Expired }

// MarkLive transitions a Drawn banner to Live once its surface is showing.
func (b *Banner) MarkLive() { b.state = Live }

// Shapers bundles the title/body text shapers a Draw call renders with.
type Shapers struct {
	Title *text.Shaper
	Body  *text.Shaper
}

// Draw selects the per-app layout (a cached custom file, or the built-in
// default), compiles it against the configured banner size, and paints it
// into a fresh framebuffer. If a custom layout's widget tree fails to
// compile (e.g. an image exceeds the rect), Draw retries with the default
// layout, matching the "does not fit" fallback contract.
func (b *Banner) Draw(cfg *config.Config, shapers Shapers, cache *layout.Cache) error {
	size := widget.Rect{Width: cfg.General.Width, Height: cfg.General.Height}
	display := cfg.DisplayByApp(b.data.AppName)
	colors := cfg.Theme.ByUrgency(b.data.Hints.Urgency)

	ctx := &widget.Context{
		Notification: &b.data,
		Theme: widget.Theme{
			Foreground: colors.Foreground,
			Background: colors.Background,
			Border:     colors.Border,
		},
		TitleShaper: shapers.Title,
		BodyShaper:  shapers.Body,
		TitleStyle:  text.Style{Color: colors.Foreground.At(0)},
		BodyStyle:   text.Style{Color: colors.Foreground.At(0)},
		ImageConfig: imageConfig(cfg, display),
	}

	tree := b.selectLayout(display, cache, &ctx.Override)
	if tree.Compile(size, ctx) == widget.Failure {
		if !ctx.Override {
			tree = defaultLayout(display)
			ctx.Override = true
			if tree.Compile(size, ctx) == widget.Failure {
				return fmt.Errorf("banner: default layout failed to compile for %dx%d", size.Width, size.Height)
			}
		} else {
			return fmt.Errorf("banner: layout failed to compile for %dx%d", size.Width, size.Height)
		}
	}

	buf := color.NewBuffer(size.Width, size.Height)
	tree.Draw(buf, 0, 0, ctx)

	b.framebuffer = buf
	b.dirty = false
	if b.state == Fresh || b.state == Replaced {
		b.state = Drawn
	}
	return nil
}

func (b *Banner) selectLayout(display config.DisplayOverride, cache *layout.Cache, override *bool) widget.Widget {
	if display.Layout.IsDefault() {
		*override = true
		return defaultLayout(display)
	}
	if cache != nil {
		if w := cache.Get(display.Layout.Path); w != nil {
			*override = false
			return w
		}
	}
	*override = true
	return defaultLayout(display)
}

func imageConfig(cfg *config.Config, display config.DisplayOverride) imgsrc.Config {
	return imgsrc.Config{
		Margin:     display.ImageMargin,
		ThemeSizes: cfg.Icons.Sizes,
		ThemeDirs:  cfg.Icons.Dirs,
	}
}

// defaultLayout builds the horizontal {image, vertical {title, body}} tree
// used whenever no custom layout applies.
func defaultLayout(display config.DisplayOverride) widget.Widget {
	return &widget.FlexContainer{
		Direction: widget.Horizontal,
		Alignment: widget.Alignment{Main: widget.PosStart, Cross: widget.PosCenter},
		Spacing:   display.Padding,
		Border:    display.Border,
		Children: []widget.Child{
			{Widget: &widget.Image{}, Optional: true},
			{Widget: &widget.FlexContainer{
				Direction:   widget.Vertical,
				Alignment:   widget.Alignment{Main: widget.PosCenter, Cross: widget.PosCenter},
				Transparent: true,
				Children: []widget.Child{
					{Widget: &widget.Text{Kind: widget.TextTitle}},
					{Widget: &widget.Text{Kind: widget.TextBody}, Optional: true},
				},
			}},
		},
	}
}
