package notification

import "strings"

// SpanKind is the style a markup run carries.
type SpanKind int

const (
	SpanPlain SpanKind = iota
	SpanBold
	SpanItalic
	SpanUnderline
	SpanAnchor
)

// Span is one run of the body after markup is stripped: a byte range into
// Markup.Plain, tagged with the style it was written in. Href is set only
// for SpanAnchor.
type Span struct {
	Kind  SpanKind
	Start int
	End   int
	Href  string
}

// Markup is notification body text with the subset of hyperlink/body-markup
// tags (<b>, <i>, <u>, <a href="...">) it was allowed to carry resolved into
// a plain-text string plus a list of styled spans over it. Unrecognized
// tags and bare '&'/'<' are passed through as literal text, matching the
// body-markup capability's "best-effort" contract.
type Markup struct {
	Plain string
	Spans []Span
}

// Parse strips the supported tags out of raw notification body text,
// recording their extent in the stripped string. Malformed or unknown tags
// are treated as literal text rather than rejected.
func Parse(raw string) Markup {
	var plain strings.Builder
	var spans []Span
	var stack []Span

	i := 0
	for i < len(raw) {
		if raw[i] != '<' {
			plain.WriteByte(raw[i])
			i++
			continue
		}

		tag, href, closing, width := parseTag(raw[i:])
		if tag == "" {
			plain.WriteByte(raw[i])
			i++
			continue
		}
		i += width

		kind, ok := tagKind(tag)
		if !ok {
			continue
		}

		if closing {
			for j := len(stack) - 1; j >= 0; j-- {
				if stack[j].Kind == kind {
					stack[j].End = plain.Len()
					spans = append(spans, stack[j])
					stack = append(stack[:j], stack[j+1:]...)
					break
				}
			}
			continue
		}

		stack = append(stack, Span{Kind: kind, Start: plain.Len(), Href: href})
	}

	for _, s := range stack {
		s.End = plain.Len()
		spans = append(spans, s)
	}

	return Markup{Plain: unescapeEntities(plain.String()), Spans: spans}
}

func tagKind(tag string) (SpanKind, bool) {
	switch tag {
	case "b":
		return SpanBold, true
	case "i":
		return SpanItalic, true
	case "u":
		return SpanUnderline, true
	case "a":
		return SpanAnchor, true
	}
	return 0, false
}

// parseTag reads one "<...>" construct starting at s[0]. It returns the bare
// tag name (lowercased), an href attribute when present, whether it is a
// closing tag, and the number of bytes consumed. tag is "" when s does not
// begin a recognizable tag, in which case the caller should treat '<' as a
// literal character.
func parseTag(s string) (tag, href string, closing bool, width int) {
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return "", "", false, 0
	}
	inner := s[1:end]
	width = end + 1

	if strings.HasPrefix(inner, "/") {
		return strings.ToLower(strings.TrimSpace(inner[1:])), "", true, width
	}

	name, rest, _ := strings.Cut(inner, " ")
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "a" {
		if idx := strings.Index(rest, "href="); idx >= 0 {
			v := strings.TrimSpace(rest[idx+len("href="):])
			href = trimQuotes(v)
		}
	}
	return name, href, false, width
}

func trimQuotes(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		if end := strings.IndexByte(s[1:], s[0]); end >= 0 {
			return s[1 : end+1]
		}
	}
	if end := strings.IndexAny(s, " \t"); end >= 0 {
		return s[:end]
	}
	return s
}

func unescapeEntities(s string) string {
	replacer := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", "\"",
		"&apos;", "'",
	)
	return replacer.Replace(s)
}
