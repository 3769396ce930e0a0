package tui

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/pokeapi"
)

type stubFetcher struct {
	items   []models.PokemonSummary
	details map[string]*models.PokemonDetail
}

func (f *stubFetcher) Pokemons(context.Context) ([]models.PokemonSummary, error) {
	return f.items, nil
}

func (f *stubFetcher) Pokemon(_ context.Context, id string) (*models.PokemonDetail, error) {
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("pokemon %q: %w", id, pokeapi.ErrNotFound)
}

func newStub() *stubFetcher {
	return &stubFetcher{
		items: []models.PokemonSummary{
			{ID: "1", Name: "Bulbasaur", Number: "001", Types: []string{"Grass", "Poison"}},
			{ID: "2", Name: "Charmander", Number: "004", Types: []string{"Fire"}},
		},
		details: map[string]*models.PokemonDetail{
			"1": {ID: "1", Name: "Bulbasaur", Number: "001", Classification: "Seed Pokémon", Types: []string{"Grass", "Poison"}, MaxCP: 1079},
			"2": {ID: "2", Name: "Charmander", Number: "004", Classification: "Lizard Pokémon", Types: []string{"Fire"}, MaxCP: 841},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T, stub *stubFetcher, route catalog.Route) *Model {
	t.Helper()
	m := New(context.Background(), stub, route, zerolog.Nop())
	items, err := stub.Pokemons(context.Background())
	require.NoError(t, err)
	m.Update(pokemonsMsg{items: items})
	return m
}

func TestBrowserStartsLoading(t *testing.T) {
	m := New(context.Background(), newStub(), catalog.Route{}, zerolog.Nop())
	assert.NotNil(t, m.Init())
	assert.True(t, m.list.Loading())
	assert.Contains(t, m.View(), "Loading...")
}

func TestBrowserSelectOpensOverlay(t *testing.T) {
	m := loaded(t, newStub(), catalog.Route{})
	assert.Contains(t, m.View(), "Bulbasaur")
	assert.Contains(t, m.View(), "Charmander")

	m.Update(key("down"))
	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, "/pokemon/2", m.Location())
	assert.True(t, m.list.Overlay().Visible())
	assert.Equal(t, catalog.OverlayLoading, m.list.Overlay().State())

	m.Update(cmd())
	assert.Equal(t, catalog.OverlayDisplaying, m.list.Overlay().State())
	view := m.View()
	assert.Contains(t, view, "Lizard Pokémon")
	assert.Contains(t, view, "Max CP: 841")

	m.Update(key("esc"))
	assert.False(t, m.list.Overlay().Visible())
	assert.Equal(t, "/pokemon/2", m.Location())
	assert.Contains(t, m.View(), "Bulbasaur")
}

func TestBrowserDiscardsStaleDetail(t *testing.T) {
	m := loaded(t, newStub(), catalog.Route{})

	_, first := m.Update(key("enter"))
	require.NotNil(t, first)
	m.Update(key("esc"))
	m.Update(key("down"))
	_, second := m.Update(key("enter"))
	require.NotNil(t, second)

	m.Update(second())
	m.Update(first())
	require.Equal(t, catalog.OverlayDisplaying, m.list.Overlay().State())
	assert.Equal(t, "2", m.list.Overlay().Detail().ID)
}

func TestBrowserSearch(t *testing.T) {
	m := loaded(t, newStub(), catalog.Route{})
	m.Update(key("/"))
	require.True(t, m.searching)

	m.Update(key("FIRE"))
	assert.Equal(t, "fire", m.list.Query())
	require.Len(t, m.list.Visible(), 1)
	assert.Equal(t, "Charmander", m.list.Visible()[0].Name)

	m.Update(key("enter"))
	assert.False(t, m.searching)
	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, "/pokemon/2", m.Location())

	m.Update(cmd())
	m.Update(key("esc"))
	assert.Equal(t, "fire", m.list.Query())
	assert.Len(t, m.list.Visible(), 1)

	m.Update(key("esc"))
	assert.Empty(t, m.list.Query())
	assert.Len(t, m.list.Visible(), 2)
}

func TestBrowserDeepLink(t *testing.T) {
	stub := newStub()
	m := New(context.Background(), stub, catalog.Route{PokemonID: "1"}, zerolog.Nop())
	require.True(t, m.fetchLink)
	assert.True(t, m.list.Overlay().Visible())

	m.Update(m.fetchDetail(m.deepLink)())
	m.Update(pokemonsMsg{items: stub.items})
	assert.Equal(t, catalog.OverlayDisplaying, m.list.Overlay().State())
	assert.Contains(t, m.View(), "Seed Pokémon")
}

func TestBrowserDetailFailure(t *testing.T) {
	m := New(context.Background(), newStub(), catalog.Route{PokemonID: "404"}, zerolog.Nop())
	m.Update(m.fetchDetail(m.deepLink)())

	assert.Equal(t, catalog.OverlayFailed, m.list.Overlay().State())
	assert.Contains(t, m.View(), `No Pokémon found with id "404"`)
}

func TestBrowserCollectionFailure(t *testing.T) {
	m := New(context.Background(), newStub(), catalog.Route{}, zerolog.Nop())
	m.Update(pokemonsMsg{err: fmt.Errorf("%w: refused", pokeapi.ErrNetwork)})
	assert.Contains(t, m.View(), "network-error")
	assert.NotContains(t, m.View(), "Loading...")
}

func TestBrowserQuit(t *testing.T) {
	m := loaded(t, newStub(), catalog.Route{})
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
