package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/pokeapi"
)

// handleGetPokemons returns the collection, filtered by ?q=
func (s *Server) handleGetPokemons(w http.ResponseWriter, r *http.Request) {
	query := strings.ToLower(r.URL.Query().Get("q"))

	items, err := s.fetcher.Pokemons(r.Context())
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("class", pokeapi.Class(err)).Msg("Failed to fetch pokemons")
		respondError(w, http.StatusBadGateway, "Failed to fetch pokemons")
		return
	}

	items = catalog.Filter(items, query)
	respondJSON(w, http.StatusOK, models.PokemonList{
		Items:      items,
		TotalCount: len(items),
	})
}

// handleGetPokemon returns a single pokemon by ID
func (s *Server) handleGetPokemon(w http.ResponseWriter, r *http.Request) {
	id, err := pokemonID(r)
	if err != nil {
		respondError(w, http.StatusNotFound, "Pokemon not found")
		return
	}

	pokemon, err := s.fetcher.Pokemon(r.Context(), id)
	if err == nil && (pokemon == nil || pokemon.ID != id) {
		err = catalog.ErrRecordMismatch
	}
	if errors.Is(err, pokeapi.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Pokemon not found")
		return
	}
	if err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("id", id).Str("class", pokeapi.Class(err)).Msg("Failed to fetch pokemon")
		respondError(w, http.StatusBadGateway, "Failed to fetch pokemon")
		return
	}

	respondJSON(w, http.StatusOK, pokemon)
}
