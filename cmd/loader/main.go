package main

import (
	"context"
	"flag"
	"os"

	"cep-loader/internal/config"
	"cep-loader/internal/lookup"
	"cep-loader/internal/repository"
	"cep-loader/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// One-shot invocation: fetch the configured postal code, persist it, exit.
func main() {
	configPath := flag.String("config", "./configs", "Path to the config directory")
	cep := flag.String("cep", "", "Postal code to load instead of the configured one")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	if *cep != "" {
		cfg.PostalCode = *cep
		if err := cfg.Validate(); err != nil {
			log.Fatal().Err(err).Msg("invalid postal code")
		}
	}

	ctx := context.Background()

	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	repo := repository.NewRepository(conn, cfg.AddressTable)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot ensure schema")
	}

	client := lookup.NewClient(cfg.LookupBaseURL, cfg.HTTPTimeout)
	loadService := service.NewLoadService(client, repo, cfg.PostalCode)

	requestID := uuid.NewString()
	result, err := loadService.Load(ctx, requestID)
	if err != nil {
		log.Fatal().Err(err).Str("request_id", requestID).Msg("invocation failed")
	}

	// A CLI caller has no response body to inspect, so a swallowed write
	// failure still surfaces in the exit status.
	if result.PersistErr != nil {
		log.Error().Err(result.PersistErr).Str("request_id", requestID).Msg("record fetched but not persisted")
		os.Exit(1)
	}

	log.Info().Str("request_id", requestID).Str("cep", result.Address.Cep).Msg("record loaded")
}
