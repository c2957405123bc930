package widget

import (
	"notid/internal/color"
	"notid/internal/imgsrc"
)

// Image is a leaf widget that resolves the notification's icon via imgsrc,
// in priority order: structured image-data hint, image-path hint, then
// app_icon looked up against the icon theme.
type Image struct {
	content imgsrc.Image
	size    Rect
}

func (i *Image) Size() Rect { return i.size }

// Compile resolves the image source and fails if it exceeds max, per the
// "does not fit" rule: the caller should fall back to the default layout
// when this widget fails as part of a custom one.
func (i *Image) Compile(max Rect, ctx *Context) Result {
	req := imgsrc.Request{
		Path:        ctx.Notification.Hints.ImagePath,
		AppIconName: ctx.Notification.AppIcon,
	}
	if id := ctx.Notification.Hints.ImageData; id != nil {
		if hint, err := imgsrc.NewPixelBufferHint(id.Width, id.Height, id.Rowstride, id.HasAlpha, id.BitsPerSample, id.Channels, id.Data); err == nil {
			req.PixelBuffer = hint
		}
	}

	cfg := ctx.ImageConfig
	cfg.MaxWidth, cfg.MaxHeight = max.Width, max.Height

	i.content = imgsrc.Resolve(req, cfg)
	w, h := i.content.FinalSize()
	i.size = Rect{Width: w, Height: h}

	if err := imgsrc.CheckFits(i.content, max.Width, max.Height); err != nil {
		i.size = Rect{}
		return Failure
	}
	if w == 0 && h == 0 {
		return Failure
	}
	return Success
}

// Draw blits the resolved image at offset. Unknown images are zero-sized
// and draw nothing.
func (i *Image) Draw(dst color.Canvas, offsetX, offsetY int, ctx *Context) {
	_ = i.content.Draw(dst, offsetX, offsetY)
}
