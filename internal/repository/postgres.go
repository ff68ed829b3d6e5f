package repository

import (
	"context"
	"errors"
	"fmt"

	"cep-loader/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ErrConnection marks a failure to open a database connection or start a
// transaction. Callers treat it as fatal to the invocation, unlike insert
// failures.
var ErrConnection = errors.New("cannot open database connection")

// Repository persists address records in PostgreSQL
type Repository struct {
	db    *pgxpool.Pool
	table string
}

// NewRepository creates a new PostgreSQL repository writing to the given table
func NewRepository(db *pgxpool.Pool, table string) *Repository {
	return &Repository{db: db, table: table}
}

// SaveAddress inserts one address record inside its own transaction. The
// transaction is committed on success and rolled back on any insert failure;
// the connection goes back to the pool on every path.
func (r *Repository) SaveAddress(ctx context.Context, addr *models.Address) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repository: %w: %w", ErrConnection, err)
	}

	sql := fmt.Sprintf(
		`INSERT INTO %s (cep, street, neighborhood, locality, created_at) VALUES ($1, $2, $3, $4, $5)`,
		pgx.Identifier{r.table}.Sanitize(),
	)

	if _, err := tx.Exec(ctx, sql, addr.Cep, addr.Logradouro, addr.Bairro, addr.Localidade, addr.CreatedAt); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to roll back transaction")
		}
		log.Error().Err(err).Str("address", addr.String()).Msg("insert failed, transaction rolled back")
		return fmt.Errorf("repository: failed to insert address: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repository: failed to commit transaction: %w", err)
	}

	log.Info().Str("address", addr.String()).Msg("address record persisted")
	return nil
}

// EnsureSchema creates the target table when it does not exist yet. There is
// no unique key on cep: every invocation appends a new row.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	sql := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id BIGSERIAL PRIMARY KEY,
		cep VARCHAR(9),
		street VARCHAR(255),
		neighborhood VARCHAR(255),
		locality VARCHAR(255),
		created_at TIMESTAMPTZ NOT NULL
	)`, pgx.Identifier{r.table}.Sanitize())

	if _, err := r.db.Exec(ctx, sql); err != nil {
		return fmt.Errorf("repository: failed to create table %s: %w", r.table, err)
	}
	return nil
}
