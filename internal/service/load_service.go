package service

import (
	"context"
	"errors"
	"fmt"

	"cep-loader/internal/lookup"
	"cep-loader/internal/models"
	"cep-loader/internal/repository"

	"github.com/rs/zerolog/log"
)

// LoadService runs one fetch-and-persist invocation for the configured
// postal code
type LoadService struct {
	fetcher AddressFetcher
	store   AddressStore
	cep     string
}

// Fetcher interface for dependency injection
type AddressFetcher interface {
	Fetch(ctx context.Context, cep string) (*models.Address, error)
}

// Store interface for dependency injection
type AddressStore interface {
	SaveAddress(ctx context.Context, addr *models.Address) error
}

// LoadResult reports the outcome of one invocation. A write failure does not
// fail the invocation; it is carried in PersistErr with Persisted false so
// callers can still observe it.
type LoadResult struct {
	Address    *models.Address
	Persisted  bool
	PersistErr error
}

// NewLoadService creates a new load service for the given postal code
func NewLoadService(fetcher AddressFetcher, store AddressStore, cep string) *LoadService {
	return &LoadService{fetcher: fetcher, store: store, cep: cep}
}

// Load fetches the configured postal code and persists the resulting record.
// Lookup failures abort the invocation before a record is constructed;
// persistence failures are absorbed into the result, except a connection that
// could not be opened, which propagates.
func (s *LoadService) Load(ctx context.Context, requestID string) (*LoadResult, error) {
	log.Info().Str("request_id", requestID).Str("cep", s.cep).Msg("looking up postal code")

	addr, err := s.fetcher.Fetch(ctx, s.cep)
	if err != nil {
		if errors.Is(err, lookup.ErrNotFound) {
			log.Warn().Str("request_id", requestID).Str("cep", s.cep).Msg("lookup returned no record")
		} else {
			log.Error().Err(err).Str("request_id", requestID).Str("cep", s.cep).Msg("postal code lookup failed")
		}
		return nil, fmt.Errorf("service: lookup failed: %w", err)
	}

	log.Info().Str("request_id", requestID).Str("address", addr.String()).Msg("postal code record fetched")

	if err := s.store.SaveAddress(ctx, addr); err != nil {
		if errors.Is(err, repository.ErrConnection) {
			return nil, fmt.Errorf("service: persistence unavailable: %w", err)
		}
		return &LoadResult{Address: addr, PersistErr: err}, nil
	}

	return &LoadResult{Address: addr, Persisted: true}, nil
}
