package catalog

import (
	"net/url"
	"strings"

	"github.com/meur/pokedex/internal/models"
)

// Route is the part of the location the list view reads on mount
type Route struct {
	PokemonID     string
	Query         string
	OverlayClosed bool
}

// LocationFor returns the path that references id
func LocationFor(id string) string {
	if id == "" {
		return "/"
	}
	return "/pokemon/" + url.PathEscape(id)
}

// ListView holds the collection, the search query and the current selection
type ListView struct {
	all      []models.PokemonSummary
	filtered []models.PokemonSummary
	query    string
	loading  bool
	err      error
	selected string
	overlay  Overlay
}

// NewListView mounts a list for route. A route naming an identifier opens
// the overlay right away; the returned ticket is the detail fetch to start.
func NewListView(route Route) (*ListView, Ticket, bool) {
	v := &ListView{loading: true}
	v.SetQuery(route.Query)

	if route.PokemonID == "" {
		return v, Ticket{}, false
	}
	v.selected = route.PokemonID
	if route.OverlayClosed {
		return v, Ticket{}, false
	}
	t, ok := v.overlay.Open(route.PokemonID)
	return v, t, ok
}

// Loaded records the outcome of the collection fetch
func (v *ListView) Loaded(items []models.PokemonSummary, err error) {
	v.loading = false
	v.err = err
	if err != nil {
		v.all = nil
		v.filtered = nil
		return
	}
	v.all = items
	if v.query != "" {
		v.filtered = Filter(v.all, v.query)
	}
}

// SetQuery stores the lowercased query and refilters when it is non-empty
func (v *ListView) SetQuery(q string) {
	v.query = strings.ToLower(q)
	if v.query == "" {
		return
	}
	v.filtered = Filter(v.all, v.query)
}

// Visible returns the entries to render as cards
func (v *ListView) Visible() []models.PokemonSummary {
	if v.query == "" {
		return v.all
	}
	return v.filtered
}

// Select marks id selected and opens the overlay for it
func (v *ListView) Select(id string) (Ticket, bool) {
	v.selected = id
	return v.overlay.Open(id)
}

// Close hides the overlay; selection, query and collection stay as they are
func (v *ListView) Close() {
	v.overlay.Close()
}

// Location is the path the browser should show for the current selection
func (v *ListView) Location() string { return LocationFor(v.selected) }

func (v *ListView) Loading() bool { return v.loading }

func (v *ListView) Err() error { return v.err }

func (v *ListView) Query() string { return v.query }

func (v *ListView) Selected() string { return v.selected }

func (v *ListView) All() []models.PokemonSummary { return v.all }

func (v *ListView) Overlay() *Overlay { return &v.overlay }
