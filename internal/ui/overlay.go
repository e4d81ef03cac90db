package ui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"partsearch/internal/eventbus"
	"partsearch/internal/ui/services/navigation"
	"partsearch/internal/ui/services/query"
)

// Overlay is the modal search shell. While it is open it owns the query
// session, the cursor and all input.
type Overlay struct {
	open   bool
	parent context.Context

	// ctx lives from Open to Close; search is replaced per fan-out
	ctx          context.Context
	cancel       context.CancelFunc
	searchCancel context.CancelFunc

	input textinput.Model
	query *query.Service
	nav   *navigation.Service
	bus   eventbus.EventBus
}

// NewOverlay creates a closed overlay
func NewOverlay(parent context.Context, q *query.Service, nav *navigation.Service, bus eventbus.EventBus, placeholder string) *Overlay {
	if parent == nil {
		parent = context.Background()
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}

	ti := textinput.New()
	ti.Prompt = "🔍 "
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Cursor.SetMode(cursor.CursorStatic)

	return &Overlay{
		parent: parent,
		input:  ti,
		query:  q,
		nav:    nav,
		bus:    bus,
	}
}

// IsOpen reports whether the overlay is shown
func (o *Overlay) IsOpen() bool {
	return o.open
}

// Open shows the overlay with a fresh request context and focuses the input
func (o *Overlay) Open() tea.Cmd {
	if o.open {
		return nil
	}
	o.open = true
	o.ctx, o.cancel = context.WithCancel(o.parent)

	slog.Debug("overlay_opened")
	o.bus.Publish(eventbus.OverlayOpenedEvent{})
	return o.input.Focus()
}

// Close hides the overlay. Requests in flight are cancelled and their
// responses discarded when they arrive.
func (o *Overlay) Close() {
	if !o.open {
		return
	}
	q := o.query.Query()

	o.open = false
	o.CancelSearch()
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}

	o.query.Close()
	o.nav.Clear()
	o.input.Reset()
	o.input.Blur()

	slog.Debug("overlay_closed", slog.String("query", q))
	o.bus.Publish(eventbus.OverlayClosedEvent{Query: q})
}

// BeginSearch cancels the previous fan-out and returns the context of the
// next one
func (o *Overlay) BeginSearch() context.Context {
	o.CancelSearch()
	parent := o.ctx
	if parent == nil {
		parent = o.parent
	}
	ctx, cancel := context.WithCancel(parent)
	o.searchCancel = cancel
	return ctx
}

// CancelSearch cancels the running fan-out, if any
func (o *Overlay) CancelSearch() {
	if o.searchCancel != nil {
		o.searchCancel()
		o.searchCancel = nil
	}
}

// Input returns the query input
func (o *Overlay) Input() *textinput.Model {
	return &o.input
}
