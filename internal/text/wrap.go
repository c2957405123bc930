package text

import "strings"

// WrapMode selects how a line break is chosen when text overflows maxWidth.
type WrapMode int

const (
	WrapWord WrapMode = iota
	WrapChar
	WrapWordChar
)

// EllipsizeMode selects where a truncated line's ellipsis is placed.
type EllipsizeMode int

const (
	EllipsizeNone EllipsizeMode = iota
	EllipsizeStart
	EllipsizeMiddle
	EllipsizeEnd
)

const ellipsisRune = '…'

// wrapLines breaks text into lines no wider than maxWidth under mode. A
// single word exceeding maxWidth under WrapWord is emitted unbroken; under
// WrapChar every rune may start a new line; under WrapWordChar words are
// preferred but an overlong word falls back to character breaks.
func (a *Atlas) wrapLines(text string, maxWidth int, mode WrapMode) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, a.wrapParagraph(paragraph, maxWidth, mode)...)
	}
	return lines
}

func (a *Atlas) wrapParagraph(s string, maxWidth int, mode WrapMode) []string {
	if s == "" {
		return []string{""}
	}
	switch mode {
	case WrapChar:
		return a.wrapByChar(s, maxWidth)
	case WrapWordChar:
		return a.wrapByWord(s, maxWidth, true)
	default:
		return a.wrapByWord(s, maxWidth, false)
	}
}

func (a *Atlas) wrapByChar(s string, maxWidth int) []string {
	var lines []string
	var cur strings.Builder
	width := 0
	for _, ch := range s {
		w := a.Advance(ch)
		if width+w > maxWidth && cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			width = 0
		}
		cur.WriteRune(ch)
		width += w
	}
	lines = append(lines, cur.String())
	return lines
}

func (a *Atlas) wrapByWord(s string, maxWidth int, fallBackToChar bool) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var cur strings.Builder
	width := 0
	spaceW := a.Advance(' ')

	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, cur.String())
			cur.Reset()
			width = 0
		}
	}

	for _, word := range words {
		wordW := a.TextWidth(word)

		if wordW > maxWidth && fallBackToChar {
			flush()
			lines = append(lines, a.wrapByChar(word, maxWidth)...)
			continue
		}

		sep := 0
		if cur.Len() > 0 {
			sep = spaceW
		}
		if cur.Len() > 0 && width+sep+wordW > maxWidth {
			flush()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
			width += spaceW
		}
		cur.WriteString(word)
		width += wordW
	}
	flush()
	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

// ellipsizeLine truncates a single line so it (plus an ellipsis, unless
// mode is EllipsizeNone) fits within maxWidth.
func (a *Atlas) ellipsizeLine(line string, maxWidth int, mode EllipsizeMode) string {
	if a.TextWidth(line) <= maxWidth || mode == EllipsizeNone {
		return line
	}

	ellipsisW := a.Advance(ellipsisRune)
	budget := maxWidth - ellipsisW
	if budget < 0 {
		budget = 0
	}
	runes := []rune(line)

	switch mode {
	case EllipsizeStart:
		width := 0
		start := len(runes)
		for i := len(runes) - 1; i >= 0; i-- {
			w := a.Advance(runes[i])
			if width+w > budget {
				break
			}
			width += w
			start = i
		}
		return string(ellipsisRune) + string(runes[start:])
	case EllipsizeMiddle:
		half := budget / 2
		headWidth, headEnd := 0, 0
		for headEnd < len(runes) {
			w := a.Advance(runes[headEnd])
			if headWidth+w > half {
				break
			}
			headWidth += w
			headEnd++
		}
		tailWidth, tailStart := 0, len(runes)
		for tailStart > headEnd {
			w := a.Advance(runes[tailStart-1])
			if tailWidth+w > budget-headWidth {
				break
			}
			tailWidth += w
			tailStart--
		}
		return string(runes[:headEnd]) + string(ellipsisRune) + string(runes[tailStart:])
	default: // EllipsizeEnd
		width, end := 0, 0
		for end < len(runes) {
			w := a.Advance(runes[end])
			if width+w > budget {
				break
			}
			width += w
			end++
		}
		return string(runes[:end]) + string(ellipsisRune)
	}
}
