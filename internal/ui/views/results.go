package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"partsearch/internal/domain"
	"partsearch/internal/ui/logic"
)

const (
	activeMarker = "▸ "
	idleMarker   = "  "
	selectHint   = "↵ select"
)

// Line is one rendered line of the result region.
// Index is the global index of the item on the line, or -1.
type Line struct {
	Text  string
	Index int
}

// ResultRenderer renders the aggregated result list
type ResultRenderer struct {
	styles *Styles
}

// NewResultRenderer creates a new result renderer
func NewResultRenderer(styles *Styles) *ResultRenderer {
	return &ResultRenderer{styles: styles}
}

// Lines lays out every section of the view: a header per category followed
// by its items, with a blank line between sections
func (r *ResultRenderer) Lines(view logic.View, active int, query string, width int) []Line {
	var lines []Line
	for i, sec := range view.Sections {
		if i > 0 {
			lines = append(lines, Line{Index: -1})
		}
		lines = append(lines, Line{Text: r.RenderHeader(sec, width), Index: -1})
		for local, item := range sec.Items {
			g := sec.Offset + local
			lines = append(lines, Line{
				Text:  r.RenderItem(item, g == active, query, width),
				Index: g,
			})
		}
	}
	return lines
}

// LineOf returns the line showing global index g, or -1
func LineOf(lines []Line, g int) int {
	if g < 0 {
		return -1
	}
	for i, l := range lines {
		if l.Index == g {
			return i
		}
	}
	return -1
}

// RenderHeader renders "icon label (count)" for a section
func (r *ResultRenderer) RenderHeader(sec logic.Section, width int) string {
	label := sec.Category.Label
	if label == "" {
		label = sec.Category.Name
	}
	text := fmt.Sprintf("%s %s (%d)", sec.Category.Icon, label, len(sec.Items))
	text = strings.TrimSpace(text)

	header := r.styles.SectionHeader.Render(ansi.Truncate(text, width, "…"))
	if sec.Pending && lipgloss.Width(header)+2 <= width {
		header += " " + r.styles.Pending.Render("…")
	}
	return header
}

// RenderItem renders one hit: highlighted name on the left, price and the
// select hint on the right
func (r *ResultRenderer) RenderItem(item domain.Item, isActive bool, query string, width int) string {
	base := r.styles.Item
	marker := idleMarker
	if isActive {
		base = r.styles.ItemActive
		marker = activeMarker
	}
	hl := r.styles.Highlight.Inherit(base)

	var right []string
	if price, ok := item.Price(); ok {
		right = append(right, r.styles.Price.Inherit(base).Render("$"+price))
	}
	if isActive {
		right = append(right, r.styles.SelectHint.Inherit(base).Render(selectHint))
	}
	rightText := strings.Join(right, base.Render("  "))
	rightWidth := lipgloss.Width(rightText)

	nameWidth := width - ansi.StringWidth(marker) - rightWidth
	if rightWidth > 0 {
		nameWidth-- // gap
	}
	segs := TruncateSegments(nameSegments(item, query), nameWidth)
	name := RenderSegments(segs, base, hl)

	line := base.Render(marker) + name
	if pad := width - lipgloss.Width(line) - rightWidth; pad > 0 {
		line += base.Render(strings.Repeat(" ", pad))
	}
	return line + rightText
}

// nameSegments prefers the provider's highlight and falls back to matching
// the query terms locally
func nameSegments(item domain.Item, query string) []Segment {
	if markup, ok := item.HighlightedName(); ok {
		return ParseHighlight(markup)
	}
	name := item.Name()
	if name == "" {
		name = item.ID()
	}
	return MatchTerms(name, query)
}
