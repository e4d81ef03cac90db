package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"partsearch/internal/build"
	"partsearch/internal/catalog"
	"partsearch/internal/eventbus"
	"partsearch/internal/search"
	"partsearch/internal/ui/logic"
	"partsearch/internal/ui/services/navigation"
	"partsearch/internal/ui/services/query"
	"partsearch/internal/ui/services/selection"
	"partsearch/internal/ui/views"
)

// Options tunes the model
type Options struct {
	HitsPerPage   int
	Debounce      time.Duration // 0 issues requests on every keystroke
	CloseOnSelect bool
	Mouse         bool
	Placeholder   string
	OnSelect      selection.Handler
	BuildLimit    int // picks shown on the landing screen
}

// BuildLister reads the picked parts shown on the landing screen
type BuildLister interface {
	List(ctx context.Context, limit int) ([]build.Pick, error)
	Count(ctx context.Context) (int, error)
}

// Model represents the UI state
type Model struct {
	bus      eventbus.EventBus
	opts     Options
	catalog  *catalog.Catalog
	provider search.Provider
	builds   BuildLister

	width  int
	height int
	help   help.Model
	keys   keyMap

	renderer  *views.Renderer
	query     *query.Service
	navigator *navigation.Service
	selection *selection.Service
	overlay   *Overlay
	pager     *Pager

	// Derived from the query session on every change
	view   logic.View
	lines  []views.Line
	layout views.Layout

	picks      []build.Pick
	buildTotal int
	status     string

	ctx    context.Context
	cancel context.CancelFunc

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, provider search.Provider, cat *catalog.Catalog, opts Options) *Model {
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if opts.HitsPerPage <= 0 {
		opts.HitsPerPage = 3
	}
	if opts.BuildLimit <= 0 {
		opts.BuildLimit = 10
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		bus:       bus,
		opts:      opts,
		catalog:   cat,
		provider:  provider,
		help:      help.New(),
		keys:      newKeyMap(),
		renderer:  views.NewRenderer(),
		query:     query.NewService(cat, opts.HitsPerPage, bus),
		navigator: navigation.NewService(),
		selection: selection.NewService(opts.OnSelect, bus),
		pager:     NewPager(),
		ctx:       ctx,
		cancel:    cancel,
	}
	m.help.ShortSeparator = "  "
	m.overlay = NewOverlay(ctx, m.query, m.navigator, bus, opts.Placeholder)
	m.layout = views.ComputeLayout(80, 24)
	m.navigator.SetViewportHeight(m.layout.ResultsHeight)

	return m
}

// SetBuild sets the source of the landing screen's build list
func (m *Model) SetBuild(b BuildLister) {
	m.builds = b
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	if m.builds == nil {
		return nil
	}
	return m.loadPicks()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout = views.ComputeLayout(msg.Width, msg.Height)
		m.navigator.SetViewportHeight(m.layout.ResultsHeight)
		m.refreshLines()

	case tea.KeyMsg:
		if m.overlay.IsOpen() {
			return m, m.handleOverlayKey(msg)
		}
		return m, m.handleLandingKey(msg)

	case tea.MouseMsg:
		if m.opts.Mouse && m.overlay.IsOpen() {
			return m, m.handleOverlayMouse(msg)
		}

	case debounceMsg:
		return m, m.issue(msg.generation)

	case searchResultMsg:
		if m.query.Apply(msg.resp) {
			m.rebuild()
			m.navigator.Resize(m.query.Query(), m.view.Len())
			m.refreshLines()
		}

	case picksLoadedMsg:
		if msg.err != nil {
			slog.Error("build_load_failed", slog.String("error", msg.err.Error()))
			m.status = "Could not load your build"
			return m, nil
		}
		m.picks = msg.picks
		m.buildTotal = msg.total

	case PickAddedMsg:
		m.picks = append([]build.Pick{msg.Pick}, m.picks...)
		if len(m.picks) > m.opts.BuildLimit {
			m.picks = m.picks[:m.opts.BuildLimit]
		}
		m.buildTotal++

	case pagerDoneMsg:
		if msg.err != nil {
			slog.Warn("pager_failed", slog.String("error", msg.err.Error()))
			m.status = "Could not open the pager"
		}
	}

	return m, nil
}

func (m *Model) handleLandingKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Open):
		m.status = ""
		return m.overlay.Open()
	}
	return nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "ctrl+c":
		return m.quit()
	case msg.String() == "ctrl+k":
		// Already open
		return nil
	case key.Matches(msg, m.keys.Close):
		m.closeOverlay()
		return nil
	case key.Matches(msg, m.keys.Select):
		return m.selectActive()
	case key.Matches(msg, m.keys.Up):
		m.navigator.Up(m.view.Len())
		m.refreshLines()
		return nil
	case key.Matches(msg, m.keys.Down):
		m.navigator.Down(m.view.Len())
		m.refreshLines()
		return nil
	case key.Matches(msg, m.keys.Clear):
		if m.overlay.Input().Value() == "" {
			return nil
		}
		m.overlay.Input().SetValue("")
		return m.queryChanged()
	case key.Matches(msg, m.keys.Details):
		entry, ok := m.view.At(m.navigator.Active())
		if !ok {
			return nil
		}
		return m.pager.showItemCmd(entry.Item, entry.Category.Name)
	}

	input := m.overlay.Input()
	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if input.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.queryChanged())
}

func (m *Model) handleOverlayMouse(msg tea.MouseMsg) tea.Cmd {
	inside := m.layout.Contains(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.navigator.Up(m.view.Len())
		m.refreshLines()

	case msg.Button == tea.MouseButtonWheelDown:
		m.navigator.Down(m.view.Len())
		m.refreshLines()

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !inside {
			m.closeOverlay()
			return nil
		}
		if g, ok := m.itemAt(msg.Y); ok {
			m.navigator.Hover(g, m.view.Len())
			return m.selectActive()
		}

	case msg.Action == tea.MouseActionMotion:
		if g, ok := m.itemAt(msg.Y); ok && inside {
			m.navigator.Hover(g, m.view.Len())
			m.refreshLines()
		}
	}
	return nil
}

// itemAt returns the global index shown on screen row y
func (m *Model) itemAt(y int) (int, bool) {
	if m.query.Query() == "" {
		return 0, false
	}
	row, ok := m.layout.ResultRow(y)
	if !ok {
		return 0, false
	}
	line := m.navigator.ViewportOffset() + row
	if line >= len(m.lines) || m.lines[line].Index < 0 {
		return 0, false
	}
	return m.lines[line].Index, true
}

// queryChanged starts a new generation for the input's text
func (m *Model) queryChanged() tea.Cmd {
	text := m.overlay.Input().Value()
	gen := m.query.SetQuery(text)

	m.rebuild()
	m.navigator.Reset(text, m.view.Len())
	m.refreshLines()

	if text == "" {
		m.overlay.CancelSearch()
		return nil
	}
	if m.opts.Debounce <= 0 {
		return func() tea.Msg { return debounceMsg{generation: gen} }
	}
	return tea.Tick(m.opts.Debounce, func(time.Time) tea.Msg {
		return debounceMsg{generation: gen}
	})
}

// issue fans the generation's requests out to the provider
func (m *Model) issue(gen uint64) tea.Cmd {
	reqs := m.query.Requests(gen)
	if len(reqs) == 0 {
		return nil
	}
	m.rebuild()

	ctx := m.overlay.BeginSearch()
	cmds := make([]tea.Cmd, 0, len(reqs))
	for _, req := range reqs {
		cmds = append(cmds, m.searchCmd(ctx, req))
	}
	return tea.Batch(cmds...)
}

func (m *Model) searchCmd(ctx context.Context, req query.Request) tea.Cmd {
	provider := m.provider
	return func() tea.Msg {
		items, err := provider.Search(ctx, req.Category, req.Query, req.Limit)
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("category_search_failed",
				slog.String("category", req.Category),
				slog.String("query", req.Query),
				slog.String("error", err.Error()))
		}
		return searchResultMsg{resp: query.Response{
			Category: req.Category,
			Query:    req.Query,
			Token:    req.Token,
			Items:    items,
			Err:      err,
		}}
	}
}

func (m *Model) selectActive() tea.Cmd {
	sel, ok := m.selection.Select(m.view, m.navigator.Active())
	if !ok {
		return nil
	}

	name := sel.Item.Name()
	if name == "" {
		name = sel.Item.ID()
	}
	m.status = fmt.Sprintf("Added %s", name)

	if m.opts.CloseOnSelect {
		m.closeOverlay()
	}
	return nil
}

func (m *Model) closeOverlay() {
	m.overlay.Close()
	m.view = logic.View{}
	m.lines = nil
}

// Shutdown closes the overlay and cancels everything in flight
func (m *Model) Shutdown() {
	m.closeOverlay()
	m.cancel()
}

func (m *Model) quit() tea.Cmd {
	m.Shutdown()
	return tea.Quit
}

func (m *Model) rebuild() {
	m.view = logic.AggregatePending(m.catalog, m.query.Sets(), m.query.PendingSet())
}

// refreshLines re-renders the result lines and scrolls the active one into view
func (m *Model) refreshLines() {
	active := m.navigator.Active()
	m.lines = m.renderer.Results().Lines(m.view, active, m.query.Query(), m.layout.InnerWidth())
	m.navigator.Scroll(views.LineOf(m.lines, active), len(m.lines))
}

func (m *Model) loadPicks() tea.Cmd {
	builds, limit := m.builds, m.opts.BuildLimit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		picks, err := builds.List(ctx, limit)
		if err != nil {
			return picksLoadedMsg{err: err}
		}
		total, err := builds.Count(ctx)
		return picksLoadedMsg{picks: picks, total: total, err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	return m.renderer.Render(views.ViewState{
		Width:      m.width,
		Height:     m.height,
		Catalog:    m.catalog,
		Build:      m.picks,
		BuildTotal: m.buildTotal,
		Status:     m.status,
		Open:       m.overlay.IsOpen(),
		Layout:     m.layout,
		Input:      m.overlay.Input().View(),
		Query:      m.query.Query(),
		Results:    m.lines,
		Scroll:     m.navigator.ViewportOffset(),
		Loading:    m.query.Loading(),
		Help:       m.help.View(overlayHelp{keys: m.keys}),
	})
}

// Active returns the cursor position, -1 when idle
func (m *Model) Active() int {
	return m.navigator.Active()
}

// Results returns the current aggregated view
func (m *Model) Results() logic.View {
	return m.view
}

// IsOpen reports whether the search overlay is shown
func (m *Model) IsOpen() bool {
	return m.overlay.IsOpen()
}
