package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"golang.org/x/sync/errgroup"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/pokeapi"
)

const overlayClosed = "closed"

// pokemonID decodes the {pokemonID} segment. chi matches on the escaped
// path, so an id holding "/" arrives as "%2F".
func pokemonID(r *http.Request) (string, error) {
	raw := chi.URLParam(r, "pokemonID")
	id, err := url.PathUnescape(raw)
	if err != nil {
		return raw, fmt.Errorf("pokemon %q: %w", raw, pokeapi.ErrNotFound)
	}
	return id, nil
}

// routeFromRequest reads the list view inputs from the location. A
// segment that does not decode is returned as err.
func routeFromRequest(r *http.Request) (catalog.Route, error) {
	q := r.URL.Query()
	id, err := pokemonID(r)
	return catalog.Route{
		PokemonID:     id,
		Query:         q.Get("q"),
		OverlayClosed: q.Get("overlay") == overlayClosed,
	}, err
}

// handleListPage renders the card list, with the detail overlay when the
// location names a pokemon. Both fetches start together.
func (s *Server) handleListPage(w http.ResponseWriter, r *http.Request) {
	route, badID := routeFromRequest(r)
	view, ticket, fetchDetail := catalog.NewListView(route)

	// The group only joins the fetches. A failed fetch must not cancel the
	// other, so each error stays in its own variable and the closures
	// return nil.
	var (
		items     []models.PokemonSummary
		listErr   error
		detail    *models.PokemonDetail
		detailErr = badID
		g         errgroup.Group
	)
	ctx := r.Context()
	g.Go(func() error {
		items, listErr = s.fetcher.Pokemons(ctx)
		return nil
	})
	if fetchDetail && badID == nil {
		g.Go(func() error {
			detail, detailErr = s.fetcher.Pokemon(ctx, ticket.ID)
			return nil
		})
	}
	_ = g.Wait()

	log := hlog.FromRequest(r)
	view.Loaded(items, listErr)
	if listErr != nil {
		log.Warn().Err(listErr).Str("class", pokeapi.Class(listErr)).Msg("Failed to fetch pokemons")
	}
	if fetchDetail {
		view.Overlay().Resolve(ticket, detail, detailErr)
		if detailErr != nil {
			log.Warn().Err(detailErr).Str("id", ticket.ID).Str("class", pokeapi.Class(detailErr)).Msg("Failed to fetch pokemon")
		}
	}

	status := http.StatusOK
	if listErr != nil {
		status = http.StatusBadGateway
	}
	s.renderPage(w, status, newPageView(view, route))
}

func (s *Server) renderPage(w http.ResponseWriter, status int, page *pageView) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "page", page); err != nil {
		s.log.Error().Err(err).Msg("Failed to render page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// --- View models ---

type pageView struct {
	Query         string
	Location      string
	OverlayClosed bool
	Loading       bool
	Error         string
	Cards         []cardView
	Overlay       *overlayView
}

type cardView struct {
	ID     string
	Name   string
	Number string
	Image  string
	Href   string
	Tags   []models.Tag
}

type overlayView struct {
	Loading    bool
	Error      string
	CloseHref  string
	Detail     *models.PokemonDetail
	Types      []models.Tag
	Resistant  []models.Tag
	Weaknesses []models.Tag
}

func newPageView(v *catalog.ListView, route catalog.Route) *pageView {
	page := &pageView{
		Query:         v.Query(),
		Location:      v.Location(),
		OverlayClosed: route.PokemonID != "" && route.OverlayClosed,
		Loading:       v.Loading(),
	}
	if err := v.Err(); err != nil {
		page.Error = errorMessage(err, "")
	}

	for _, p := range v.Visible() {
		page.Cards = append(page.Cards, cardView{
			ID:     p.ID,
			Name:   p.Name,
			Number: p.Number,
			Image:  p.Image,
			Href:   withQuery(catalog.LocationFor(p.ID), url.Values{"q": {page.Query}}),
			Tags:   models.Tags(p.Types),
		})
	}

	o := v.Overlay()
	if !o.Visible() {
		return page
	}
	ov := &overlayView{
		Loading: o.State() == catalog.OverlayLoading,
		CloseHref: withQuery(v.Location(), url.Values{
			"overlay": {overlayClosed},
			"q":       {page.Query},
		}),
	}
	switch o.State() {
	case catalog.OverlayDisplaying:
		d := o.Detail()
		ov.Detail = d
		ov.Types = models.Tags(d.Types)
		ov.Resistant = models.Tags(d.Resistant)
		ov.Weaknesses = models.Tags(d.Weaknesses)
	case catalog.OverlayFailed:
		ov.Error = errorMessage(o.Err(), o.ID())
	}
	page.Overlay = ov
	return page
}

// withQuery appends the non-empty values to path
func withQuery(path string, values url.Values) string {
	for k, v := range values {
		if len(v) == 0 || v[0] == "" {
			values.Del(k)
		}
	}
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}

// errorMessage describes a fetch failure by its class
func errorMessage(err error, id string) string {
	switch {
	case errors.Is(err, pokeapi.ErrNotFound):
		return fmt.Sprintf("No Pokémon found with id %q.", id)
	case errors.Is(err, pokeapi.ErrMalformed), errors.Is(err, catalog.ErrRecordMismatch):
		return "The Pokédex sent a response that could not be read."
	default:
		return "The Pokédex could not be reached. Try again later."
	}
}
