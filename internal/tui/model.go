// Package tui is a terminal front-end for the catalog: a filterable card
// list with a detail panel, driven by the same list and overlay state as
// the web viewer.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/pokeapi"
)

const (
	keyCtrlC = "ctrl+c"
	keyQuit  = "q"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyUp    = "up"
	keyDown  = "down"
	keyK     = "k"
	keyJ     = "j"

	filterInputCharLimit = 64
	filterInputWidth     = 40
	defaultWidth         = 80
	defaultHeight        = 24
)

type pokemonsMsg struct {
	items []models.PokemonSummary
	err   error
}

type detailMsg struct {
	ticket catalog.Ticket
	detail *models.PokemonDetail
	err    error
}

// Model is the bubbletea model for the catalog browser
type Model struct {
	ctx     context.Context
	fetcher catalog.Fetcher
	log     zerolog.Logger

	list      *catalog.ListView
	deepLink  catalog.Ticket
	fetchLink bool

	input     textinput.Model
	spinner   spinner.Model
	searching bool
	cursor    int
	width     int
	height    int
}

// New creates a browser mounted at route
func New(ctx context.Context, fetcher catalog.Fetcher, route catalog.Route, log zerolog.Logger) *Model {
	list, ticket, ok := catalog.NewListView(route)

	ti := textinput.New()
	ti.Placeholder = "Filter Pokémon..."
	ti.CharLimit = filterInputCharLimit
	ti.Width = filterInputWidth
	ti.SetValue(list.Query())

	return &Model{
		ctx:       ctx,
		fetcher:   fetcher,
		log:       log,
		list:      list,
		deepLink:  ticket,
		fetchLink: ok,
		input:     ti,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:     defaultWidth,
		height:    defaultHeight,
	}
}

// Init starts the collection fetch and, for a deep link, the detail fetch
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick, m.fetchPokemons()}
	if m.fetchLink {
		cmds = append(cmds, m.fetchDetail(m.deepLink))
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetchPokemons() tea.Cmd {
	return func() tea.Msg {
		items, err := m.fetcher.Pokemons(m.ctx)
		return pokemonsMsg{items: items, err: err}
	}
}

func (m *Model) fetchDetail(t catalog.Ticket) tea.Cmd {
	return func() tea.Msg {
		d, err := m.fetcher.Pokemon(m.ctx, t.ID)
		return detailMsg{ticket: t, detail: d, err: err}
	}
}

// Update handles messages and updates the model state
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case pokemonsMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("class", pokeapi.Class(msg.err)).Msg("Failed to fetch pokemons")
		}
		m.list.Loaded(msg.items, msg.err)
		m.clampCursor()
		return m, nil

	case detailMsg:
		if !m.list.Overlay().Resolve(msg.ticket, msg.detail, msg.err) {
			m.log.Debug().Str("id", msg.ticket.ID).Uint64("seq", msg.ticket.Seq).Msg("Discarded stale detail")
			return m, nil
		}
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Str("id", msg.ticket.ID).Str("class", pokeapi.Class(msg.err)).Msg("Failed to fetch pokemon")
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == keyCtrlC {
		return m, tea.Quit
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.list.Overlay().Visible() {
		switch msg.String() {
		case keyEsc:
			m.list.Close()
		case keyQuit:
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case keyQuit:
		return m, tea.Quit
	case keySlash:
		m.searching = true
		return m, m.input.Focus()
	case keyUp, keyK:
		if m.cursor > 0 {
			m.cursor--
		}
	case keyDown, keyJ:
		if m.cursor < len(m.list.Visible())-1 {
			m.cursor++
		}
	case keyEnter:
		visible := m.list.Visible()
		if len(visible) == 0 {
			return m, nil
		}
		if t, ok := m.list.Select(visible[m.cursor].ID); ok {
			return m, m.fetchDetail(t)
		}
	case keyEsc:
		if m.input.Value() != "" {
			m.input.SetValue("")
			m.list.SetQuery("")
			m.clampCursor()
		}
	}
	return m, nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case keyEnter, keyEsc:
		m.searching = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.list.SetQuery(m.input.Value())
	m.cursor = 0
	return m, cmd
}

func (m *Model) clampCursor() {
	n := len(m.list.Visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Location is the path the current selection corresponds to
func (m *Model) Location() string { return m.list.Location() }
