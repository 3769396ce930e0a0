// Package pokeapi is the client for the remote Pokémon GraphQL API: one call
// for the whole collection and one per record.
package pokeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meur/pokedex/internal/models"
)

const (
	DefaultLimit   = 151
	DefaultTimeout = 10 * time.Second
)

// Client fetches summaries and details from a GraphQL endpoint
type Client struct {
	endpoint string
	limit    int
	http     *http.Client
	log      zerolog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithLimit sets how many entries the collection call asks for
func WithLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a client for endpoint
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		limit:    DefaultLimit,
		http:     &http.Client{Timeout: DefaultTimeout},
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pokemons fetches the full collection
func (c *Client) Pokemons(ctx context.Context) ([]models.PokemonSummary, error) {
	var data struct {
		Pokemons *[]PokemonRecord `json:"pokemons"`
	}
	err := c.do(ctx, Request{
		OperationName: OpPokemons,
		Query:         pokemonsQuery,
		Variables:     map[string]any{"first": c.limit},
	}, &data)
	if err != nil {
		return nil, err
	}
	if data.Pokemons == nil {
		return nil, malformedErr("response has no pokemons field")
	}

	items := make([]models.PokemonSummary, 0, len(*data.Pokemons))
	for i, rec := range *data.Pokemons {
		if rec.ID == "" {
			return nil, malformedErr("pokemons[%d] has no id", i)
		}
		items = append(items, models.PokemonSummary{
			ID:     rec.ID,
			Name:   rec.Name,
			Number: rec.Number,
			Image:  rec.Image,
			Types:  nonNil(rec.Types),
		})
	}
	return items, nil
}

// Pokemon fetches one record by identifier
func (c *Client) Pokemon(ctx context.Context, id string) (*models.PokemonDetail, error) {
	var data map[string]json.RawMessage
	err := c.do(ctx, Request{
		OperationName: OpPokemon,
		Query:         pokemonQuery,
		Variables:     map[string]any{"id": id},
	}, &data)
	if err != nil {
		return nil, err
	}

	raw, ok := data["pokemon"]
	if !ok {
		return nil, malformedErr("response has no pokemon field")
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("pokemon %q: %w", id, ErrNotFound)
	}

	var rec PokemonRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, malformedErr("decode pokemon: %v", err)
	}
	if rec.ID == "" {
		return nil, malformedErr("pokemon %q has no id", id)
	}
	return toDetail(&rec), nil
}

func (c *Client) do(ctx context.Context, gql Request, data any) error {
	body, err := json.Marshal(gql)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return networkErr("%s: %v", gql.OperationName, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkErr("read %s response: %v", gql.OperationName, err)
	}
	c.log.Debug().
		Str("operation", gql.OperationName).
		Str("request_id", reqID).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("upstream request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return networkErr("%s: http %d", gql.OperationName, resp.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []GraphQLError  `json:"errors"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return malformedErr("decode %s envelope: %v", gql.OperationName, err)
	}
	if len(envelope.Errors) > 0 {
		return malformedErr("%s: %s", gql.OperationName, envelope.Errors[0].Message)
	}
	if len(envelope.Data) == 0 || bytes.Equal(envelope.Data, []byte("null")) {
		return malformedErr("%s: response has no data", gql.OperationName)
	}
	if err := json.Unmarshal(envelope.Data, data); err != nil {
		return malformedErr("decode %s data: %v", gql.OperationName, err)
	}
	return nil
}

func toDetail(rec *PokemonRecord) *models.PokemonDetail {
	d := &models.PokemonDetail{
		ID:             rec.ID,
		Name:           rec.Name,
		Number:         rec.Number,
		Classification: rec.Classification,
		Image:          rec.Image,
		Types:          nonNil(rec.Types),
		Resistant:      nonNil(rec.Resistant),
		Weaknesses:     nonNil(rec.Weaknesses),
		FleeRate:       rec.FleeRate,
		MaxCP:          rec.MaxCP,
		MaxHP:          rec.MaxHP,
	}
	if rec.Weight != nil {
		d.Weight = models.Dimension{Minimum: rec.Weight.Minimum, Maximum: rec.Weight.Maximum}
	}
	if rec.Height != nil {
		d.Height = models.Dimension{Minimum: rec.Height.Minimum, Maximum: rec.Height.Maximum}
	}
	return d
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
