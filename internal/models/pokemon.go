package models

// PokemonSummary is the compact entry shown as a card in the list
type PokemonSummary struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Number string   `json:"number"`
	Image  string   `json:"image"`
	Types  []string `json:"types"`
}

// PokemonDetail is the full record shown in the detail overlay
type PokemonDetail struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Number         string    `json:"number"`
	Classification string    `json:"classification"`
	Image          string    `json:"image"`
	Weight         Dimension `json:"weight"`
	Height         Dimension `json:"height"`
	Types          []string  `json:"types"`
	Resistant      []string  `json:"resistant"`
	Weaknesses     []string  `json:"weaknesses"`
	FleeRate       float64   `json:"flee_rate"`
	MaxCP          int       `json:"max_cp"`
	MaxHP          int       `json:"max_hp"`
}

// Dimension is a min/max range as reported upstream, units included ("6.04kg")
type Dimension struct {
	Minimum string `json:"minimum"`
	Maximum string `json:"maximum"`
}

// Summary returns the list representation of a detail record
func (d *PokemonDetail) Summary() PokemonSummary {
	return PokemonSummary{
		ID:     d.ID,
		Name:   d.Name,
		Number: d.Number,
		Image:  d.Image,
		Types:  d.Types,
	}
}

// PokemonList is a collection of summaries
type PokemonList struct {
	Items      []PokemonSummary `json:"items"`
	TotalCount int              `json:"total_count"`
}
