package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"partsearch/internal/build"
	"partsearch/internal/catalog"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width   int
	Height  int
	Catalog *catalog.Catalog

	// Landing
	Build      []build.Pick
	BuildTotal int
	Status     string

	// Overlay
	Open    bool
	Layout  Layout
	Input   string
	Query   string
	Results []Line
	Scroll  int
	Loading bool
	Help    string
}

// Feature is one entry of the landing feature list
type Feature struct {
	Title       string
	Description string
}

// Features returns the landing feature list
func Features() []Feature {
	return []Feature{
		{"Search Across 20+ Indices", "CPUs, GPUs, RAM, motherboards and more, merged into one list as you type."},
		{"Keyboard First", "Arrow keys or ctrl+n/ctrl+p to move, enter to pick, esc to close."},
		{"Your Build, Saved", "Every confirmed part is kept locally and listed below."},
	}
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	resultRender *ResultRenderer
	popupRender  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		resultRender: NewResultRenderer(styles),
		popupRender:  NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Results returns the result renderer
func (r *Renderer) Results() *ResultRenderer {
	return r.resultRender
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	landing := r.RenderLanding(state)
	if !state.Open {
		return landing
	}
	return r.popupRender.RenderPopupOverlay(landing, r.RenderBox(state), state.Layout, state.Width, state.Height)
}

// RenderLanding renders the landing screen
func (r *Renderer) RenderLanding(state ViewState) string {
	var b strings.Builder

	b.WriteString(r.styles.Title.Render("PC Builder"))
	b.WriteString("\n")
	b.WriteString(r.styles.Subtitle.Render("Find every part of your next build in one search."))
	b.WriteString("\n\n")

	hotkey := r.styles.Kbd.Render("ctrl") + " " + r.styles.Kbd.Render("k")
	b.WriteString(r.styles.Button.Render("Search PC Parts  " + hotkey))
	b.WriteString("\n\n")

	for _, f := range Features() {
		b.WriteString(r.styles.SectionHeader.Render("• " + f.Title))
		b.WriteString("\n")
		b.WriteString(r.styles.Feature.Render("  " + f.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(r.styles.SectionHeader.Render(fmt.Sprintf("Your build (%d)", state.BuildTotal)))
	b.WriteString("\n")
	if len(state.Build) == 0 {
		b.WriteString(r.styles.Empty.Render("  No parts picked yet. Press ctrl+k to search."))
		b.WriteString("\n")
	}
	for _, p := range state.Build {
		b.WriteString(r.renderPick(p, state.Catalog, state.Width-4))
		b.WriteString("\n")
	}
	if more := state.BuildTotal - len(state.Build); more > 0 {
		b.WriteString(r.styles.Dim.Render(fmt.Sprintf("  … and %d more", more)))
		b.WriteString("\n")
	}

	if state.Status != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Dim.Render(state.Status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.styles.Help.Render("ctrl+k search • q quit"))

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (r *Renderer) renderPick(p build.Pick, cat *catalog.Catalog, width int) string {
	label := p.Category
	icon := ""
	if cat != nil {
		if c, ok := cat.Lookup(p.Category); ok {
			label, icon = c.Label, c.Icon
		}
	}

	name := p.Name
	if name == "" {
		name = p.ObjectID
	}
	text := strings.TrimSpace(fmt.Sprintf("  %s %-16s %s", icon, label, name))
	price := ""
	if p.Price != "" {
		price = "  " + r.styles.Price.Render("$"+p.Price)
	}
	if width > 0 {
		text = ansi.Truncate(text, width-lipgloss.Width(price), "…")
	}
	return "  " + r.styles.Item.Render(text) + price
}

// RenderBox renders the overlay box: input, results, footer
func (r *Renderer) RenderBox(state ViewState) string {
	l := state.Layout
	inner := l.InnerWidth()
	sep := r.styles.Separator.Render(strings.Repeat("─", inner))

	lines := make([]string, 0, l.ResultsHeight+chromeLines)
	lines = append(lines, ansi.Truncate(state.Input, inner, ""))
	lines = append(lines, sep)
	lines = append(lines, r.renderRegion(state, inner)...)
	lines = append(lines, sep)
	lines = append(lines, r.renderFooter(state.Help, inner))

	return r.styles.Box.Width(l.Width - 2).Render(strings.Join(lines, "\n"))
}

// renderRegion returns exactly ResultsHeight lines
func (r *Renderer) renderRegion(state ViewState, width int) []string {
	h := state.Layout.ResultsHeight
	out := make([]string, 0, h)

	switch {
	case state.Query == "":
		out = append(out, "", r.center(r.styles.Empty.Render("Search across all PC components"), width))
		out = append(out, r.center(r.styles.Dim.Render("CPUs, GPUs, RAM, Storage, and more..."), width))
	case len(state.Results) == 0 && state.Loading:
		out = append(out, "", r.center(r.styles.Pending.Render("Searching…"), width))
	case len(state.Results) == 0:
		msg := ansi.Truncate(fmt.Sprintf("No results for “%s”", state.Query), width, "…")
		out = append(out, "", r.center(r.styles.Empty.Render(msg), width))
	default:
		start := state.Scroll
		if start < 0 || start > len(state.Results) {
			start = 0
		}
		end := start + h
		if end > len(state.Results) {
			end = len(state.Results)
		}
		for _, line := range state.Results[start:end] {
			out = append(out, line.Text)
		}
	}

	for len(out) < h {
		out = append(out, "")
	}
	return out[:h]
}

func (r *Renderer) renderFooter(help string, width int) string {
	brand := r.styles.Dim.Render("Powered by ") + r.styles.Brand.Render("Algolia")
	bw := lipgloss.Width(brand)
	if lipgloss.Width(help)+bw+1 > width {
		return ansi.Truncate(help, width, "")
	}
	pad := width - lipgloss.Width(help) - bw
	return help + strings.Repeat(" ", pad) + brand
}

func (r *Renderer) center(s string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}
