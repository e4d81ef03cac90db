package views

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	emOpen  = "<em>"
	emClose = "</em>"
)

// Segment is a run of text that is either matched or not
type Segment struct {
	Text  string
	Match bool
}

// ParseHighlight splits provider highlight markup into segments.
// Matched words are wrapped in <em> tags; entities are unescaped.
func ParseHighlight(markup string) []Segment {
	var segs []Segment
	rest := markup
	for rest != "" {
		i := strings.Index(rest, emOpen)
		if i == -1 {
			segs = appendSegment(segs, html.UnescapeString(rest), false)
			break
		}
		segs = appendSegment(segs, html.UnescapeString(rest[:i]), false)
		rest = rest[i+len(emOpen):]

		j := strings.Index(rest, emClose)
		if j == -1 {
			segs = appendSegment(segs, html.UnescapeString(rest), true)
			break
		}
		segs = appendSegment(segs, html.UnescapeString(rest[:j]), true)
		rest = rest[j+len(emClose):]
	}
	return segs
}

// MatchTerms marks every case-insensitive occurrence of the query's terms
func MatchTerms(text, query string) []Segment {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return []Segment{{Text: text}}
	}

	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		// Case folding changed byte offsets, so offsets cannot be mapped back
		return []Segment{{Text: text}}
	}

	marked := make([]bool, len(text))
	for _, term := range terms {
		for from := 0; from < len(lower); {
			i := strings.Index(lower[from:], term)
			if i == -1 {
				break
			}
			for k := from + i; k < from+i+len(term); k++ {
				marked[k] = true
			}
			from += i + len(term)
		}
	}

	var segs []Segment
	start := 0
	for k := 1; k <= len(text); k++ {
		if k == len(text) || marked[k] != marked[start] {
			segs = appendSegment(segs, text[start:k], marked[start])
			start = k
		}
	}
	return segs
}

func appendSegment(segs []Segment, text string, match bool) []Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Match == match {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, Segment{Text: text, Match: match})
}

// PlainText joins the segments without styling
func PlainText(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

// TruncateSegments cuts the segments to at most width cells, ending with an
// ellipsis when something was cut
func TruncateSegments(segs []Segment, width int) []Segment {
	if width <= 0 {
		return nil
	}
	if ansi.StringWidth(PlainText(segs)) <= width {
		return segs
	}

	const tail = "…"
	budget := width - ansi.StringWidth(tail)
	var out []Segment
	for _, s := range segs {
		w := ansi.StringWidth(s.Text)
		if w <= budget {
			out = append(out, s)
			budget -= w
			continue
		}
		if budget > 0 {
			out = append(out, Segment{Text: ansi.Truncate(s.Text, budget, ""), Match: s.Match})
		}
		break
	}
	return appendSegment(out, tail, false)
}

// RenderSegments styles matched and unmatched runs
func RenderSegments(segs []Segment, normal, match lipgloss.Style) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Match {
			b.WriteString(match.Render(s.Text))
		} else {
			b.WriteString(normal.Render(s.Text))
		}
	}
	return b.String()
}
