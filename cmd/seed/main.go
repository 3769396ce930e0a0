package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meur/pokedex/internal/config"
	"github.com/meur/pokedex/internal/models"
	"github.com/meur/pokedex/internal/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dbPath, seedsPath string
	var replace bool

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Load Pokémon records from JSON into the fixture catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			log := config.NewLogger(config.DefaultLogLevel, nil)

			store, err := storage.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			pokemons, err := readSeeds(seedsPath)
			if err != nil {
				return err
			}

			if replace {
				if err := store.DeletePokemons(); err != nil {
					return fmt.Errorf("failed to clear catalog: %w", err)
				}
			}
			if err := store.BulkCreatePokemons(pokemons); err != nil {
				return fmt.Errorf("failed to seed catalog: %w", err)
			}

			log.Info().Int("pokemons", len(pokemons)).Str("from", seedsPath).Msg("Seeding complete")
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", config.DefaultDBPath, "SQLite database path")
	cmd.Flags().StringVar(&seedsPath, "seeds", "./seeds/pokemon.json", "JSON array of Pokémon records")
	cmd.Flags().BoolVar(&replace, "replace", false, "Delete existing records first")
	return cmd
}

func readSeeds(path string) ([]models.PokemonDetail, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seeds: %w", err)
	}

	var pokemons []models.PokemonDetail
	if err := json.Unmarshal(data, &pokemons); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return pokemons, nil
}
