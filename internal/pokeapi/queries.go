package pokeapi

// Operation names understood by the upstream
const (
	OpPokemons = "GetPokemons"
	OpPokemon  = "GetPokemon"
)

const pokemonsQuery = `query GetPokemons($first: Int!) {
  pokemons(first: $first) {
    id
    number
    name
    image
    types
  }
}`

const pokemonQuery = `query GetPokemon($id: String) {
  pokemon(id: $id) {
    id
    number
    name
    weight {
      minimum
      maximum
    }
    height {
      minimum
      maximum
    }
    classification
    types
    resistant
    weaknesses
    fleeRate
    maxCP
    maxHP
    image
  }
}`

// Request is a GraphQL request body
type Request struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// GraphQLError is one entry of a response's errors list
type GraphQLError struct {
	Message string `json:"message"`
}

// Wire shapes of the upstream records
type (
	PokemonRecord struct {
		ID             string          `json:"id"`
		Number         string          `json:"number"`
		Name           string          `json:"name"`
		Image          string          `json:"image"`
		Classification string          `json:"classification,omitempty"`
		Weight         *DimensionField `json:"weight,omitempty"`
		Height         *DimensionField `json:"height,omitempty"`
		Types          []string        `json:"types"`
		Resistant      []string        `json:"resistant,omitempty"`
		Weaknesses     []string        `json:"weaknesses,omitempty"`
		FleeRate       float64         `json:"fleeRate,omitempty"`
		MaxCP          int             `json:"maxCP,omitempty"`
		MaxHP          int             `json:"maxHP,omitempty"`
	}

	DimensionField struct {
		Minimum string `json:"minimum"`
		Maximum string `json:"maximum"`
	}
)
