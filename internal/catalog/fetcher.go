// Package catalog holds the list and detail-overlay state shared by the web
// and terminal viewers. Nothing here performs I/O; callers run the fetches a
// ListView or Overlay asks for and hand the results back.
package catalog

import (
	"context"

	"github.com/meur/pokedex/internal/models"
)

// Fetcher retrieves the collection and single records from the remote API
type Fetcher interface {
	Pokemons(ctx context.Context) ([]models.PokemonSummary, error)
	Pokemon(ctx context.Context, id string) (*models.PokemonDetail, error)
}
