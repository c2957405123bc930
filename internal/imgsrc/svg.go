package imgsrc

import (
	"encoding/xml"
	"fmt"
	"image"
	"image/color"
	"os"
	"strconv"
	"strings"
)

// svgDoc captures only the handful of attributes this rasterizer honours.
// No SVG path, shape, or style library exists anywhere in the retrieved
// corpus, so this renders a flat approximation: the declared viewBox (or
// width/height) filled with the first fill color found on the root <svg>
// or its first child, defaulting to opaque black. This is a deliberate
// simplification, not a general SVG renderer.
type svgDoc struct {
	XMLName xml.Name   `xml:"svg"`
	Width   string     `xml:"width,attr"`
	Height  string     `xml:"height,attr"`
	ViewBox string     `xml:"viewBox,attr"`
	Fill    string     `xml:"fill,attr"`
	Rect    []svgShape `xml:"rect"`
	Circle  []svgShape `xml:"circle"`
	Path    []svgShape `xml:"path"`
}

type svgShape struct {
	Fill string `xml:"fill,attr"`
}

func rasterizeSVG(path string, maxW, maxH int) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc svgDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	w, h := svgDimensions(doc, maxW, maxH)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has no usable dimensions")
	}
	if w > maxW || h > maxH {
		scale := float64(maxW) / float64(w)
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
		w = int(float64(w) * scale)
		h = int(float64(h) * scale)
	}

	fill := doc.Fill
	for _, s := range doc.Rect {
		if s.Fill != "" {
			fill = s.Fill
			break
		}
	}
	c := svgFillColor(fill)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img, nil
}

func svgDimensions(doc svgDoc, maxW, maxH int) (int, int) {
	if doc.ViewBox != "" {
		parts := strings.Fields(doc.ViewBox)
		if len(parts) == 4 {
			w, werr := strconv.ParseFloat(parts[2], 64)
			h, herr := strconv.ParseFloat(parts[3], 64)
			if werr == nil && herr == nil && w > 0 && h > 0 {
				return int(w), int(h)
			}
		}
	}
	if w, err := strconv.Atoi(strings.TrimSuffix(doc.Width, "px")); err == nil {
		if h, err := strconv.Atoi(strings.TrimSuffix(doc.Height, "px")); err == nil {
			return w, h
		}
	}
	return maxW, maxH
}

func svgFillColor(fill string) color.NRGBA {
	fill = strings.TrimSpace(fill)
	if fill == "" || fill == "none" {
		return color.NRGBA{A: 0}
	}
	rgba, err := parseHexLoose(fill)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return rgba
}

func parseHexLoose(s string) (color.NRGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("not a hex color: %q", s)
	}
	digits := s[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) != 6 {
		return color.NRGBA{}, fmt.Errorf("unsupported hex color: %q", s)
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{R: byte(v >> 16), G: byte(v >> 8), B: byte(v), A: 0xff}, nil
}
