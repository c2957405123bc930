// Package text implements glyph rasterization, measurement, wrapping, and
// ellipsizing for banner titles and bodies.
package text

import (
	"fmt"
	"image"
	"image/draw"
	"os"

	"github.com/golang/freetype"
	"golang.org/x/image/math/fixed"
)

// GlyphInfo is one glyph's position in the atlas and its advance width.
type GlyphInfo struct {
	X, Y    int
	Width   int
	Height  int
	Advance int
}

// Atlas holds rasterized glyphs for a single font at a single size.
type Atlas struct {
	Image  *image.RGBA
	Glyphs map[rune]GlyphInfo
	Height int
}

// LoadAtlas reads a font file from disk and builds an atlas at fontSize.
func LoadAtlas(fontPath string, fontSize int) (*Atlas, error) {
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("text: read font file: %w", err)
	}
	return NewAtlas(data, fontSize)
}

// NewAtlas builds a glyph atlas from raw TrueType font data.
func NewAtlas(fontData []byte, fontSize int) (*Atlas, error) {
	ttf, err := freetype.ParseFont(fontData)
	if err != nil {
		return nil, fmt.Errorf("text: parse font: %w", err)
	}

	c := freetype.NewContext()
	c.SetFont(ttf)
	c.SetFontSize(float64(fontSize))
	c.SetDPI(72)

	atlas := &Atlas{
		Glyphs: make(map[rune]GlyphInfo),
		Height: fontSize,
	}

	chars := printableCharacterSet()

	measuring := image.NewRGBA(image.Rect(0, 0, 1, 1))
	c.SetDst(measuring)
	c.SetSrc(image.Black)

	padding := 2
	totalWidth := 0
	for _, ch := range chars {
		_, advance, ok := c.GlyphAdvance(ch)
		if !ok {
			continue
		}
		totalWidth += int(advance>>6) + padding
	}

	atlasW := totalWidth
	atlasH := fontSize + padding*2
	if atlasW < 1 {
		atlasW = 1
	}

	atlas.Image = image.NewRGBA(image.Rect(0, 0, atlasW, atlasH))
	draw.Draw(atlas.Image, atlas.Image.Bounds(), image.NewUniform(image.White), image.Point{}, draw.Src)

	c.SetDst(atlas.Image)
	c.SetSrc(image.Black)

	x := 0
	y := fontSize + padding

	for _, ch := range chars {
		advance, ok := c.GlyphAdvance(ch)
		if !ok {
			continue
		}
		advInt := int(advance >> 6)

		if x+advInt+padding > atlasW {
			x = 0
		}

		pt := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
		c.SetClip(atlas.Image.Bounds())

		if _, err := c.DrawString(string(ch), pt); err == nil {
			atlas.Glyphs[ch] = GlyphInfo{X: x, Y: y - fontSize, Width: advInt, Height: fontSize, Advance: advInt}
		}

		x += advInt + padding
	}

	return atlas, nil
}

// Advance returns the advance width of a single rune, or 0 if not rasterized.
func (a *Atlas) Advance(ch rune) int {
	return a.Glyphs[ch].Advance
}

// TextWidth sums advances for a string with no wrapping applied.
func (a *Atlas) TextWidth(s string) int {
	w := 0
	for _, ch := range s {
		w += a.Advance(ch)
	}
	return w
}

func printableCharacterSet() []rune {
	chars := []rune{' '}
	for ch := rune(33); ch <= 126; ch++ {
		chars = append(chars, ch)
	}
	for ch := rune(161); ch <= 255; ch++ {
		chars = append(chars, ch)
	}
	return chars
}

// LoadDefaultFont searches common system font locations, mirroring the
// platforms the daemon is expected to run on.
func LoadDefaultFont() ([]byte, error) {
	fontPaths := []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
	}
	for _, path := range fontPaths {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("text: no suitable font found in system")
}
