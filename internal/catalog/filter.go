package catalog

import (
	"strings"

	"github.com/meur/pokedex/internal/models"
)

// field formats one searchable summary field as text
type field func(p *models.PokemonSummary) string

// searchFields are matched in order; a list renders the way a joined array prints ("Grass,Poison")
var searchFields = []field{
	func(p *models.PokemonSummary) string { return p.ID },
	func(p *models.PokemonSummary) string { return p.Name },
	func(p *models.PokemonSummary) string { return p.Number },
	func(p *models.PokemonSummary) string { return p.Image },
	func(p *models.PokemonSummary) string { return strings.Join(p.Types, ",") },
}

// Matches reports whether query occurs, ignoring case, in any searchable field of p
func Matches(p *models.PokemonSummary, query string) bool {
	q := strings.ToLower(query)
	for _, f := range searchFields {
		if strings.Contains(strings.ToLower(f(p)), q) {
			return true
		}
	}
	return false
}

// Filter returns the entries matching query in their original order.
// An empty query returns items as-is.
func Filter(items []models.PokemonSummary, query string) []models.PokemonSummary {
	if query == "" {
		return items
	}
	filtered := make([]models.PokemonSummary, 0, len(items))
	for i := range items {
		if Matches(&items[i], query) {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}
