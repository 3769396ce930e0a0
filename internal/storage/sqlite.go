package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/pokedex/internal/models"
)

// Store holds the catalog served by the fixture upstream
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS pokemons (
			id TEXT PRIMARY KEY,
			number TEXT NOT NULL,
			name TEXT NOT NULL,
			image TEXT,
			classification TEXT,
			weight_min TEXT,
			weight_max TEXT,
			height_min TEXT,
			height_max TEXT,
			types TEXT,
			resistant TEXT,
			weaknesses TEXT,
			flee_rate REAL DEFAULT 0,
			max_cp INTEGER DEFAULT 0,
			max_hp INTEGER DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pokemons_number ON pokemons(number)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

const pokemonColumns = `id, number, name, image, classification, weight_min, weight_max,
	height_min, height_max, types, resistant, weaknesses, flee_rate, max_cp, max_hp`

type scanner interface {
	Scan(dest ...any) error
}

func scanPokemon(row scanner) (*models.PokemonDetail, error) {
	var p models.PokemonDetail
	var types, resistant, weaknesses string
	err := row.Scan(&p.ID, &p.Number, &p.Name, &p.Image, &p.Classification,
		&p.Weight.Minimum, &p.Weight.Maximum, &p.Height.Minimum, &p.Height.Maximum,
		&types, &resistant, &weaknesses, &p.FleeRate, &p.MaxCP, &p.MaxHP)
	if err != nil {
		return nil, err
	}
	if err := decodeList(types, &p.Types); err != nil {
		return nil, fmt.Errorf("pokemon %s types: %w", p.ID, err)
	}
	if err := decodeList(resistant, &p.Resistant); err != nil {
		return nil, fmt.Errorf("pokemon %s resistant: %w", p.ID, err)
	}
	if err := decodeList(weaknesses, &p.Weaknesses); err != nil {
		return nil, fmt.Errorf("pokemon %s weaknesses: %w", p.ID, err)
	}
	return &p, nil
}

func decodeList(s string, dst *[]string) error {
	*dst = []string{}
	if s == "" {
		return nil
	}
	return json.Unmarshal([]byte(s), dst)
}

func encodeList(list []string) string {
	if list == nil {
		list = []string{}
	}
	data, _ := json.Marshal(list)
	return string(data)
}

// GetPokemons returns up to limit records ordered by catalog number.
// A non-positive limit returns everything.
func (s *Store) GetPokemons(limit int) ([]models.PokemonDetail, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`SELECT `+pokemonColumns+` FROM pokemons ORDER BY number, name LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pokemons := []models.PokemonDetail{}
	for rows.Next() {
		p, err := scanPokemon(rows)
		if err != nil {
			return nil, err
		}
		pokemons = append(pokemons, *p)
	}
	return pokemons, rows.Err()
}

// GetPokemon returns a record by ID, or nil when there is none
func (s *Store) GetPokemon(id string) (*models.PokemonDetail, error) {
	p, err := scanPokemon(s.db.QueryRow(`SELECT `+pokemonColumns+` FROM pokemons WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CountPokemons returns the number of stored records
func (s *Store) CountPokemons() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM pokemons`).Scan(&n)
	return n, err
}

// CreatePokemon inserts a record, assigning an ID when it has none
func (s *Store) CreatePokemon(p *models.PokemonDetail) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return s.BulkCreatePokemons([]models.PokemonDetail{*p})
}

// BulkCreatePokemons upserts records in one transaction.
// Records without an ID get a generated one.
func (s *Store) BulkCreatePokemons(pokemons []models.PokemonDetail) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO pokemons (` + pokemonColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range pokemons {
		p := &pokemons[i]
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		_, err := stmt.Exec(p.ID, p.Number, p.Name, p.Image, p.Classification,
			p.Weight.Minimum, p.Weight.Maximum, p.Height.Minimum, p.Height.Maximum,
			encodeList(p.Types), encodeList(p.Resistant), encodeList(p.Weaknesses),
			p.FleeRate, p.MaxCP, p.MaxHP)
		if err != nil {
			return fmt.Errorf("insert %s: %w", p.Name, err)
		}
	}

	return tx.Commit()
}

// DeletePokemons removes every record
func (s *Store) DeletePokemons() error {
	_, err := s.db.Exec(`DELETE FROM pokemons`)
	return err
}
