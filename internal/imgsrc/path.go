package imgsrc

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// LoadFromPath loads an image from a file path, dispatching to the SVG
// rasterizer or the raster decoders (PNG, JPEG) by extension, then scales
// the result to fit within (maxW, maxH) preserving aspect ratio.
func LoadFromPath(path string, maxW, maxH, margin int) (Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		img, err := rasterizeSVG(path, maxW, maxH)
		if err != nil {
			return nil, fmt.Errorf("imgsrc: render svg %s: %w", path, err)
		}
		return newRasterImage(img, margin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imgsrc: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imgsrc: decode %s: %w", path, err)
	}

	return newRasterImage(scaleToFit(img, maxW, maxH), margin), nil
}

// EncodePNG encodes img as PNG for callers that embed preview icons in
// outbound requests.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("imgsrc: png encode: %w", err)
	}
	return buf.Bytes(), nil
}
