package text

import (
	"notid/internal/color"
)

// Align selects how a block of lines sits within its measured rect.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Style bundles the parameters measure/draw are shaped under.
type Style struct {
	Wrap        WrapMode
	Ellipsize   EllipsizeMode
	LineSpacing float32
	Justify     bool
	Align       Align
	Color       color.BGRA
}

// Rect is a measured size in pixels.
type Rect struct {
	Width, Height int
}

// Shaper measures and draws text against a single glyph atlas.
type Shaper struct {
	Atlas *Atlas
}

// NewShaper builds a shaper from raw font bytes at the given size.
func NewShaper(fontData []byte, fontSize int) (*Shaper, error) {
	atlas, err := NewAtlas(fontData, fontSize)
	if err != nil {
		return nil, err
	}
	return &Shaper{Atlas: atlas}, nil
}

func (s *Shaper) lineHeight(style Style) int {
	h := float32(s.Atlas.Height) * (1 + style.LineSpacing)
	return int(h + 0.5)
}

// layout wraps text to maxWidth, discards lines beyond the vertical budget,
// and ellipsizes the last retained line per style.Ellipsize when content
// was discarded.
func (s *Shaper) layout(text string, maxWidth, maxHeight int, style Style) []string {
	lines := s.Atlas.wrapLines(text, maxWidth, style.Wrap)
	lh := s.lineHeight(style)
	if lh <= 0 {
		return lines
	}
	maxLines := maxHeight / lh
	if maxLines < 1 {
		maxLines = 1
	}
	if len(lines) <= maxLines {
		return lines
	}

	kept := append([]string{}, lines[:maxLines]...)
	last := kept[len(kept)-1]
	kept[len(kept)-1] = s.Atlas.ellipsizeLine(last, maxWidth, style.Ellipsize)
	return kept
}

// Measure returns the smallest rect containing the shaped text under style.
func (s *Shaper) Measure(text string, maxWidth, maxHeight int, style Style) Rect {
	lines := s.layout(text, maxWidth, maxHeight, style)
	lh := s.lineHeight(style)

	width := 0
	for _, line := range lines {
		if w := s.Atlas.TextWidth(line); w > width {
			width = w
		}
	}
	height := lh * len(lines)
	if height > maxHeight && maxHeight > 0 {
		height = maxHeight
	}
	if width > maxWidth {
		width = maxWidth
	}
	return Rect{Width: width, Height: height}
}

// Draw paints the shaped text at offset under style's alignment and
// justification.
func (s *Shaper) Draw(dst color.Canvas, offsetX, offsetY, maxWidth, maxHeight int, text string, style Style) {
	lines := s.layout(text, maxWidth, maxHeight, style)
	lh := s.lineHeight(style)

	for i, line := range lines {
		y := offsetY + i*lh
		s.drawLine(dst, offsetX, y, maxWidth, line, style)
	}
}

func (s *Shaper) drawLine(dst color.Canvas, offsetX, y, maxWidth int, line string, style Style) {
	lineW := s.Atlas.TextWidth(line)

	x := offsetX
	switch style.Align {
	case AlignCenter:
		x = offsetX + (maxWidth-lineW)/2
	case AlignEnd:
		x = offsetX + maxWidth - lineW
	}

	extraPerGap := float32(0)
	if style.Justify {
		gaps := countSpaces([]rune(line))
		if gaps > 0 && maxWidth > lineW {
			extraPerGap = float32(maxWidth-lineW) / float32(gaps)
			x = offsetX
		}
	}

	pen := float32(x)
	for _, ch := range line {
		glyph, ok := s.Atlas.Glyphs[ch]
		if !ok {
			continue
		}
		s.blitGlyph(dst, int(pen+0.5), y, glyph, style.Color)
		pen += float32(glyph.Advance)
		if ch == ' ' {
			pen += extraPerGap
		}
	}
}

func (s *Shaper) blitGlyph(dst color.Canvas, x, y int, glyph GlyphInfo, fg color.BGRA) {
	bounds := s.Atlas.Image.Bounds()
	for gy := 0; gy < glyph.Height; gy++ {
		for gx := 0; gx < glyph.Width; gx++ {
			sx, sy := glyph.X+gx, glyph.Y+gy
			if sx < bounds.Min.X || sy < bounds.Min.Y || sx >= bounds.Max.X || sy >= bounds.Max.Y {
				continue
			}
			r, _, _, _ := s.Atlas.Image.At(sx, sy).RGBA()
			// the atlas is rendered black-on-white; treat darkness as coverage.
			coverage := 1 - float32(r)/65535
			if coverage <= 0 {
				continue
			}
			px := fg
			px.A = fg.A * coverage
			dst.Set(x+gx, y+gy, px)
		}
	}
}

func countSpaces(runes []rune) int {
	n := 0
	for _, r := range runes {
		if r == ' ' {
			n++
		}
	}
	return n
}
