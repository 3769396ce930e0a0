package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/meur/pokedex/internal/api"
	"github.com/meur/pokedex/internal/config"
	"github.com/meur/pokedex/internal/pokeapi"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var port, upstream, logLevel, staticDir string

	cmd := &cobra.Command{
		Use:           "server",
		Short:         "Serve the Pokédex catalog viewer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if cmd.Flags().Changed("upstream") {
				cfg.Upstream.Endpoint = upstream
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if cmd.Flags().Changed("static") {
				cfg.Server.StaticDir = staticDir
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return run(cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", os.Getenv("POKEDEX_CONFIG"), "YAML config file")
	cmd.Flags().StringVar(&port, "port", config.DefaultPort, "Server port")
	cmd.Flags().StringVar(&upstream, "upstream", config.DefaultEndpoint, "GraphQL endpoint of the Pokémon API")
	cmd.Flags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "Log level")
	cmd.Flags().StringVar(&staticDir, "static", "", "Directory served under /static")
	return cmd
}

func run(cfg *config.Config) error {
	log := config.NewLogger(cfg.Logging.Level, nil)

	client := pokeapi.New(cfg.Upstream.Endpoint,
		pokeapi.WithLimit(cfg.Upstream.CatalogLimit),
		pokeapi.WithTimeout(cfg.Upstream.Timeout()),
		pokeapi.WithLogger(log.With().Str("component", "pokeapi").Logger()),
	)
	fetcher := pokeapi.NewCache(client, cfg.Upstream.CatalogTTL())

	r := api.New(fetcher, log, api.Options{
		StaticDir:      cfg.Server.StaticDir,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	log.Info().
		Str("addr", "http://localhost:"+cfg.Server.Port).
		Str("upstream", cfg.Upstream.Endpoint).
		Dur("catalog_ttl", cfg.Upstream.CatalogTTL()).
		Msg("Pokédex viewer starting")

	if err := http.ListenAndServe(":"+cfg.Server.Port, r); err != nil {
		log.Error().Err(err).Msg("Server failed")
		return err
	}
	return nil
}
