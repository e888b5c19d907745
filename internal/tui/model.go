package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/matheusbarney/ess-hotel-project/internal/listing"
	"github.com/matheusbarney/ess-hotel-project/internal/platform/logger"
	"github.com/matheusbarney/ess-hotel-project/internal/search"
	"github.com/matheusbarney/ess-hotel-project/internal/ui"
)

const (
	defaultTimeout = 10 * time.Second
	defaultWidth   = 80
	defaultHeight  = 24
	maxCardWidth   = 100
	headerHeight   = 3
)

// Searcher is what the view needs from the listings service.
type Searcher interface {
	Search(ctx context.Context, query string) ([]listing.Listing, error)
}

// Options configure a results view.
type Options struct {
	Query   string        // initial query string, e.g. "tipo=Casa&uf=SP"
	Timeout time.Duration // per request
	Cards   listing.CardOptions
	Logger  *logger.Logger
}

// QueryChangedMsg replaces the view's query string. It triggers one fetch
// unless the query is the one already shown.
type QueryChangedMsg struct{ Query string }

// listingsFetchedMsg carries the result of request number seq.
type listingsFetchedMsg struct {
	seq      uint64
	query    string
	listings []listing.Listing
	err      error
}

// Model is the search results view.
type Model struct {
	searcher Searcher
	log      *logger.Logger
	opt      Options

	query   string
	seq     uint64 // number of the latest request issued
	loading bool
	err     error

	listings []listing.Listing
	cards    []listing.Card
	offsets  []int
	cursor   int

	editing  bool
	input    textinput.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap

	width, height int
}

// New builds the view. Init issues the request for opt.Query.
func New(s Searcher, opt Options) Model {
	if opt.Timeout <= 0 {
		opt.Timeout = defaultTimeout
	}
	if opt.Logger == nil {
		opt.Logger = logger.NewNop()
	}

	ti := textinput.New()
	ti.Prompt = "? "
	ti.Placeholder = "tipo=Casa&uf=SP&petfriendly=true"
	ti.CharLimit = 512

	m := Model{
		searcher: s,
		log:      opt.Logger.Named("tui"),
		opt:      opt,
		query:    normalizeQuery(opt.Query),
		seq:      1,
		loading:  true,
		input:    ti,
		viewport: viewport.New(defaultWidth, defaultHeight-headerHeight-1),
		help:     help.New(),
		keys:     defaultKeyMap(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.refresh()
	return m
}

// Run starts the view full screen and returns its final state.
func Run(s Searcher, opt Options) (Model, error) {
	p := tea.NewProgram(New(s, opt), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	fm, _ := final.(Model)
	return fm, nil
}

func (m Model) Init() tea.Cmd { return m.fetch(m.seq, m.query) }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case QueryChangedMsg:
		return m.setQuery(msg.Query)

	case listingsFetchedMsg:
		return m.receive(msg), nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditor(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Edit):
			m.editing = true
			m.input.SetValue(m.query)
			m.input.CursorEnd()
			cmd := m.input.Focus()
			return m, cmd
		case key.Matches(msg, m.keys.Reload):
			m.seq++
			m.loading = true
			return m, m.fetch(m.seq, m.query)
		case key.Matches(msg, m.keys.Up):
			m.moveCursor(-1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.moveCursor(1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resize()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.keys.Apply):
		q := m.input.Value()
		m.editing = false
		m.input.Blur()
		return m.setQuery(q)
	case key.Matches(msg, m.keys.Abort):
		m.editing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) setQuery(q string) (Model, tea.Cmd) {
	q = normalizeQuery(q)
	if q == m.query {
		return m, nil
	}
	m.query = q
	m.seq++
	m.loading = true
	return m, m.fetch(m.seq, q)
}

// fetch returns the command for request seq. It only reads from m.
func (m Model) fetch(seq uint64, query string) tea.Cmd {
	s, timeout, log := m.searcher, m.opt.Timeout, m.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		log.Debug("fetching listings", zap.Uint64("seq", seq), zap.String("query", query))
		ls, err := s.Search(ctx, query)
		return listingsFetchedMsg{seq: seq, query: query, listings: ls, err: err}
	}
}

// receive applies a response. Only the latest request may change the view;
// a failed request leaves the current listings in place.
func (m Model) receive(msg listingsFetchedMsg) Model {
	if msg.seq != m.seq {
		m.log.Debug("discarding stale response",
			zap.Uint64("seq", msg.seq), zap.Uint64("latest", m.seq), zap.String("query", msg.query))
		return m
	}
	m.loading = false
	if msg.err != nil {
		m.err = msg.err
		m.log.Error("could not fetch listings", zap.String("query", msg.query), zap.Error(msg.err))
		m.refresh()
		return m
	}
	m.err = nil

	prev := m.selectedKey()
	m.listings = msg.listings
	m.cards = listing.Cards(msg.listings, m.opt.Cards)
	m.cursor = 0
	for i, c := range m.cards {
		if c.Key == prev {
			m.cursor = i
			break
		}
	}
	m.log.Info("listings loaded", zap.String("query", msg.query), zap.Int("count", len(m.cards)))
	m.refresh()
	m.viewport.SetYOffset(0)
	m.ensureVisible()
	return m
}

func (m Model) selectedKey() string {
	if m.cursor >= 0 && m.cursor < len(m.cards) {
		return m.cards[m.cursor].Key
	}
	return ""
}

func (m *Model) moveCursor(delta int) {
	if len(m.cards) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.cards) {
		m.cursor = len(m.cards) - 1
	}
	m.refresh()
	m.ensureVisible()
}

func (m *Model) resize() {
	footer := lipgloss.Height(m.help.View(m.keys))
	m.viewport.Width = m.width
	m.viewport.Height = m.height - headerHeight - footer
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.input.Width = m.width - 4
	m.help.Width = m.width
	m.refresh()
	m.ensureVisible()
}

func (m *Model) refresh() {
	if len(m.cards) == 0 {
		m.offsets = nil
		msg := "No listings to show."
		if m.loading {
			msg = "Loading listings…"
		}
		m.viewport.SetContent(ui.Current().Muted.Render(msg))
		return
	}
	content, offsets := ui.RenderCards(m.cards, m.cardWidth(), m.cursor)
	m.offsets = offsets
	m.viewport.SetContent(content)
}

// ensureVisible scrolls so the selected card is on screen.
func (m *Model) ensureVisible() {
	if m.cursor >= len(m.offsets) {
		return
	}
	top := m.offsets[m.cursor]
	bottom := m.viewport.TotalLineCount()
	if m.cursor+1 < len(m.offsets) {
		bottom = m.offsets[m.cursor+1]
	}
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		off := bottom - m.viewport.Height
		if off > top {
			off = top
		}
		m.viewport.SetYOffset(off)
	}
}

func (m Model) cardWidth() int {
	w := m.viewport.Width - 1
	if w > maxCardWidth {
		w = maxCardWidth
	}
	return w
}

func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.viewport.View(),
		m.help.View(m.keys),
	)
}

func (m Model) headerView() string {
	t := ui.Current()

	title := fmt.Sprintf("%s   %s", t.Title.Render("Search results"),
		t.Accent.Render(fmt.Sprintf("%d listings", len(m.cards))))

	bar := m.input.View()
	if !m.editing {
		q := m.query
		if q == "" {
			q = t.Muted.Render("(no filters)")
		}
		bar = "? " + q
	}

	status := ""
	switch {
	case m.loading:
		status = t.Muted.Render("Loading…")
	case search.IsNotFound(m.err):
		status = t.Muted.Render("No listing matches these filters.")
	case m.err != nil:
		status = t.Error.Render(t.SymFail + " Could not load listings. Press r to retry.")
	}
	return strings.Join([]string{title, bar, status}, "\n")
}

// Query is the query string currently shown.
func (m Model) Query() string { return m.query }

// Listings is the collection currently shown.
func (m Model) Listings() []listing.Listing { return m.listings }

// Cards is what is rendered for Listings, in order.
func (m Model) Cards() []listing.Card { return m.cards }

// Err is the error of the latest request, if it failed.
func (m Model) Err() error { return m.err }

// Loading reports whether the latest request is still in flight.
func (m Model) Loading() bool { return m.loading }

func normalizeQuery(q string) string {
	return strings.TrimPrefix(strings.TrimSpace(q), "?")
}
