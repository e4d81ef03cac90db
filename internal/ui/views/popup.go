package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	maxBoxWidth      = 80
	minBoxWidth      = 24
	maxResultsHeight = 18
	minResultsHeight = 3
	// input, separator, separator, footer
	chromeLines = 4
)

// Layout is the screen geometry of the overlay box
type Layout struct {
	Left, Top     int // outer corner, border included
	Width, Height int
	ResultsTop    int // screen row of the first visible result line
	ResultsHeight int
}

// ComputeLayout centres the box horizontally near the top of the screen
func ComputeLayout(screenW, screenH int) Layout {
	w := screenW - 4
	if w > maxBoxWidth {
		w = maxBoxWidth
	}
	if w < minBoxWidth {
		w = minBoxWidth
	}
	if w > screenW {
		w = screenW
	}

	top := screenH / 10
	if top < 1 {
		top = 1
	}

	rh := screenH - top - 2 - chromeLines - 1
	if rh > maxResultsHeight {
		rh = maxResultsHeight
	}
	if rh < minResultsHeight {
		rh = minResultsHeight
	}

	left := (screenW - w) / 2
	if left < 0 {
		left = 0
	}
	return Layout{
		Left:          left,
		Top:           top,
		Width:         w,
		Height:        rh + chromeLines + 2,
		ResultsTop:    top + 1 + 2,
		ResultsHeight: rh,
	}
}

// InnerWidth is the content width inside border and padding
func (l Layout) InnerWidth() int {
	if w := l.Width - 4; w > 0 {
		return w
	}
	return 1
}

// Contains reports whether the cell is inside the box
func (l Layout) Contains(x, y int) bool {
	return x >= l.Left && x < l.Left+l.Width && y >= l.Top && y < l.Top+l.Height
}

// ResultRow maps a screen row to a row of the visible result region
func (l Layout) ResultRow(y int) (int, bool) {
	row := y - l.ResultsTop
	if row < 0 || row >= l.ResultsHeight {
		return 0, false
	}
	return row, true
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// PopupRenderer draws the overlay box over a dimmed backdrop
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay places box at the layout position over a greyed copy
// of base. Backdrop text left and right of the box stays visible.
func (pr *PopupRenderer) RenderPopupOverlay(base, box string, layout Layout, width, height int) string {
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")

	out := make([]string, height)
	for y := 0; y < height; y++ {
		plain := ""
		if y < len(baseLines) {
			plain = ansiRE.ReplaceAllString(baseLines[y], "")
		}

		i := y - layout.Top
		if i < 0 || i >= len(boxLines) {
			out[y] = pr.styles.Backdrop.Render(ansi.Truncate(plain, width, ""))
			continue
		}

		leftPart := ansi.Truncate(plain, layout.Left, "")
		if pad := layout.Left - ansi.StringWidth(leftPart); pad > 0 {
			leftPart += strings.Repeat(" ", pad)
		}
		rightPart := ""
		if cut := layout.Left + layout.Width; ansi.StringWidth(plain) > cut {
			rightPart = ansi.Truncate(ansi.TruncateLeft(plain, cut, ""), width-cut, "")
		}
		out[y] = pr.styles.Backdrop.Render(leftPart) + boxLines[i] + pr.styles.Backdrop.Render(rightPart)
	}
	return strings.Join(out, "\n")
}
