// Package imgsrc resolves a notification's image from the structured
// pixel-buffer hint, a path-valued hint, or an icon-theme lookup, and
// exposes the result as a fixed-size, premultiplied drawable.
package imgsrc

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"notid/internal/color"
)

// Image is a resolved, sized, drawable notification image. The size
// returned by FinalSize already includes the configured margin.
type Image interface {
	FinalSize() (width, height int)
	Draw(dst color.Canvas, offsetX, offsetY int) error
}

// Unknown is the zero-size placeholder used when no image source resolves.
var Unknown Image = unknownImage{}

type unknownImage struct{}

func (unknownImage) FinalSize() (int, int) { return 0, 0 }

func (unknownImage) Draw(color.Canvas, int, int) error { return nil }

// rasterImage wraps a decoded, scaled image.Image as a premultiplied
// color.Canvas-compatible Image, with a margin added around the content on
// all sides.
type rasterImage struct {
	content image.Image
	margin  int
}

func newRasterImage(content image.Image, margin int) *rasterImage {
	return &rasterImage{content: content, margin: margin}
}

func (r *rasterImage) FinalSize() (int, int) {
	b := r.content.Bounds()
	return b.Dx() + 2*r.margin, b.Dy() + 2*r.margin
}

func (r *rasterImage) Draw(dst color.Canvas, offsetX, offsetY int) error {
	b := r.content.Bounds()
	dx, dy := offsetX+r.margin, offsetY+r.margin
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			rc, gc, bc, ac := r.content.At(b.Min.X+x, b.Min.Y+y).RGBA()
			if ac == 0 {
				continue
			}
			c := color.RGBA{
				R: float32(rc) / 65535,
				G: float32(gc) / 65535,
				B: float32(bc) / 65535,
				A: float32(ac) / 65535,
			}
			dst.Set(dx+x, dy+y, c.ToBGRA())
		}
	}
	return nil
}

// ErrDoesNotFit is returned by Draw callers (via the widget layer) when the
// resolved image's final size exceeds the space offered by the banner rect.
type ErrDoesNotFit struct {
	Width, Height       int
	MaxWidth, MaxHeight int
}

func (e *ErrDoesNotFit) Error() string {
	return fmt.Sprintf("imgsrc: image %dx%d does not fit in %dx%d", e.Width, e.Height, e.MaxWidth, e.MaxHeight)
}

// CheckFits returns ErrDoesNotFit if img's final size exceeds the given
// bounds.
func CheckFits(img Image, maxWidth, maxHeight int) error {
	w, h := img.FinalSize()
	if w > maxWidth || h > maxHeight {
		return &ErrDoesNotFit{Width: w, Height: h, MaxWidth: maxWidth, MaxHeight: maxHeight}
	}
	return nil
}

// scaleToFit scales src to fit within (maxW, maxH) preserving aspect
// ratio, never upscaling.
func scaleToFit(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW == 0 || srcH == 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	scaleX := float64(maxW) / float64(srcW)
	scaleY := float64(maxH) / float64(srcH)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}
	if scale > 1.0 {
		scale = 1.0
	}

	dstW := int(float64(srcW) * scale)
	dstH := int(float64(srcH) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
