// Package upstream serves a stored catalog in the shape of the public
// Pokémon GraphQL API so the viewers can run without network access.
package upstream

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/pokeapi"
)

// Catalog is the storage the upstream reads from
type Catalog interface {
	GetPokemons(limit int) ([]models.PokemonDetail, error)
	GetPokemon(id string) (*models.PokemonDetail, error)
}

// Server answers the two catalog queries
type Server struct {
	store  Catalog
	log    zerolog.Logger
	router chi.Router
}

// New creates the upstream server
func New(store Catalog, log zerolog.Logger) *Server {
	s := &Server{
		store:  store,
		log:    log,
		router: chi.NewRouter(),
	}
	s.router.Use(middleware.Recoverer)
	s.router.Post("/graphql", s.handleGraphQL)
	s.router.Post("/", s.handleGraphQL)
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type response struct {
	Data   any                    `json:"data"`
	Errors []pokeapi.GraphQLError `json:"errors,omitempty"`
}

func (s *Server) handleGraphQL(w http.ResponseWriter, r *http.Request) {
	var req pokeapi.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrors(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch operation(req) {
	case pokeapi.OpPokemons:
		s.pokemons(w, req)
	case pokeapi.OpPokemon:
		s.pokemon(w, req)
	default:
		respondErrors(w, http.StatusOK, "unsupported operation")
	}
}

// operation prefers the declared operation name and falls back to the query text
func operation(req pokeapi.Request) string {
	switch req.OperationName {
	case pokeapi.OpPokemons, pokeapi.OpPokemon:
		return req.OperationName
	}
	switch {
	case strings.Contains(req.Query, "pokemons("):
		return pokeapi.OpPokemons
	case strings.Contains(req.Query, "pokemon("):
		return pokeapi.OpPokemon
	}
	return ""
}

func (s *Server) pokemons(w http.ResponseWriter, req pokeapi.Request) {
	limit := 0
	if first, ok := req.Variables["first"].(float64); ok {
		limit = int(first)
	}

	pokemons, err := s.store.GetPokemons(limit)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to fetch pokemons")
		respondErrors(w, http.StatusInternalServerError, "failed to fetch pokemons")
		return
	}

	records := make([]pokeapi.PokemonRecord, 0, len(pokemons))
	for i := range pokemons {
		p := &pokemons[i]
		records = append(records, pokeapi.PokemonRecord{
			ID:     p.ID,
			Number: p.Number,
			Name:   p.Name,
			Image:  p.Image,
			Types:  p.Types,
		})
	}
	respondJSON(w, http.StatusOK, response{Data: map[string]any{"pokemons": records}})
}

func (s *Server) pokemon(w http.ResponseWriter, req pokeapi.Request) {
	id, _ := req.Variables["id"].(string)

	p, err := s.store.GetPokemon(id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("Failed to fetch pokemon")
		respondErrors(w, http.StatusInternalServerError, "failed to fetch pokemon")
		return
	}
	if p == nil {
		respondJSON(w, http.StatusOK, response{Data: map[string]any{"pokemon": nil}})
		return
	}

	respondJSON(w, http.StatusOK, response{Data: map[string]any{"pokemon": pokeapi.PokemonRecord{
		ID:             p.ID,
		Number:         p.Number,
		Name:           p.Name,
		Image:          p.Image,
		Classification: p.Classification,
		Weight:         &pokeapi.DimensionField{Minimum: p.Weight.Minimum, Maximum: p.Weight.Maximum},
		Height:         &pokeapi.DimensionField{Minimum: p.Height.Minimum, Maximum: p.Height.Maximum},
		Types:          p.Types,
		Resistant:      p.Resistant,
		Weaknesses:     p.Weaknesses,
		FleeRate:       p.FleeRate,
		MaxCP:          p.MaxCP,
		MaxHP:          p.MaxHP,
	}}})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondErrors(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, response{Errors: []pokeapi.GraphQLError{{Message: message}}})
}
