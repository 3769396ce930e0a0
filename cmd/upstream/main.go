package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/meur/pokedex/internal/config"
	"github.com/meur/pokedex/internal/storage"
	"github.com/meur/pokedex/internal/upstream"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var port, dbPath, logLevel string

	cmd := &cobra.Command{
		Use:           "upstream",
		Short:         "Serve a local catalog in the shape of the Pokémon GraphQL API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(*cobra.Command, []string) error {
			log := config.NewLogger(logLevel, nil)

			store, err := storage.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer store.Close()

			n, err := store.CountPokemons()
			if err != nil {
				return fmt.Errorf("failed to count pokemons: %w", err)
			}
			if n == 0 {
				log.Warn().Str("db", dbPath).Msg("Catalog is empty, run seed first")
			}

			log.Info().
				Str("addr", "http://localhost:"+port+"/graphql").
				Str("db", dbPath).
				Int("pokemons", n).
				Msg("Fixture upstream starting")
			return http.ListenAndServe(":"+port, upstream.New(store, log))
		},
	}

	cmd.Flags().StringVar(&port, "port", getEnv("UPSTREAM_PORT", "7070"), "Server port")
	cmd.Flags().StringVar(&dbPath, "db", getEnv("DB_PATH", config.DefaultDBPath), "SQLite database path")
	cmd.Flags().StringVar(&logLevel, "log-level", getEnv("LOG_LEVEL", config.DefaultLogLevel), "Log level")
	return cmd
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
