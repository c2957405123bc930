package imgsrc

import (
	"fmt"
	"image"
	"image/color"
)

// PixelBufferHint is the structured image-data hint as carried by the
// notification bus call: width, height, rowstride, has_alpha,
// bits_per_sample (always 8), channels (3 or 4), raw bytes.
type PixelBufferHint struct {
	Width, Height int
	Rowstride     int
	HasAlpha      bool
	BitsPerSample int
	Channels      int
	Handle        *FileHandle
}

// NewPixelBufferHint spills data to a temp file behind a reference-counted
// handle and validates the structured fields, per the bus protocol.
func NewPixelBufferHint(width, height, rowstride int, hasAlpha bool, bitsPerSample, channels int, data []byte) (*PixelBufferHint, error) {
	if bitsPerSample != 8 {
		return nil, fmt.Errorf("imgsrc: bits_per_sample must be 8, got %d", bitsPerSample)
	}
	wantChannels := 3
	if hasAlpha {
		wantChannels = 4
	}
	if channels != wantChannels {
		return nil, fmt.Errorf("imgsrc: channels must be %d when has_alpha=%v, got %d", wantChannels, hasAlpha, channels)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("imgsrc: invalid pixel buffer dimensions %dx%d", width, height)
	}
	h, err := NewFileHandle(data)
	if err != nil {
		return nil, err
	}
	return &PixelBufferHint{
		Width: width, Height: height, Rowstride: rowstride,
		HasAlpha: hasAlpha, BitsPerSample: bitsPerSample, Channels: channels,
		Handle: h,
	}, nil
}

func (p *PixelBufferHint) decode() (image.Image, error) {
	raw, err := p.Handle.Bytes()
	if err != nil {
		return nil, fmt.Errorf("imgsrc: read pixel buffer: %w", err)
	}
	img := image.NewNRGBA(image.Rect(0, 0, p.Width, p.Height))
	for y := 0; y < p.Height; y++ {
		rowStart := y * p.Rowstride
		for x := 0; x < p.Width; x++ {
			px := rowStart + x*p.Channels
			if px+p.Channels > len(raw) {
				continue
			}
			r, g, b := raw[px], raw[px+1], raw[px+2]
			a := byte(0xff)
			if p.HasAlpha {
				a = raw[px+3]
			}
			img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img, nil
}

// LoadFromPixelBuffer decodes and scales the pixel-buffer hint into an
// Image, applying margin to the final reported size.
func LoadFromPixelBuffer(hint *PixelBufferHint, maxW, maxH, margin int) (Image, error) {
	img, err := hint.decode()
	if err != nil {
		return nil, err
	}
	scaled := scaleToFit(img, maxW, maxH)
	return newRasterImage(scaled, margin), nil
}
