package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meur/pokedex/internal/catalog"
	"github.com/meur/pokedex/internal/config"
	"github.com/meur/pokedex/internal/pokeapi"
	"github.com/meur/pokedex/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, upstream, id, query, logFile string

	cmd := &cobra.Command{
		Use:           "browse",
		Short:         "Browse the Pokédex in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("upstream") {
				cfg.Upstream.Endpoint = upstream
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			log := zerolog.Nop()
			if logFile != "" {
				f, err := config.OpenLogFile(logFile)
				if err != nil {
					return fmt.Errorf("failed to open log file: %w", err)
				}
				defer f.Close()
				log = config.NewLogger(cfg.Logging.Level, f)
			}

			client := pokeapi.New(cfg.Upstream.Endpoint,
				pokeapi.WithLimit(cfg.Upstream.CatalogLimit),
				pokeapi.WithTimeout(cfg.Upstream.Timeout()),
				pokeapi.WithLogger(log),
			)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			m := tui.New(ctx, client, catalog.Route{PokemonID: id, Query: query}, log)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&configPath, "config", os.Getenv("POKEDEX_CONFIG"), "YAML config file")
	cmd.Flags().StringVar(&upstream, "upstream", config.DefaultEndpoint, "GraphQL endpoint of the Pokémon API")
	cmd.Flags().StringVar(&id, "id", "", "Open the detail panel for this identifier")
	cmd.Flags().StringVarP(&query, "query", "q", "", "Initial filter")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	return cmd
}
