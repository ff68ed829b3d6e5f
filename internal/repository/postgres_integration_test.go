//go:build integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cep-loader/internal/models"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	ctx := context.Background()

	dbURL := func(host string, port nat.Port) string {
		return fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())
	}

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", dbURL),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		postgresC.Terminate(ctx)
	})

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)

	port, err := postgresC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dbURL(host, port))
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
	})

	return pool
}

func testAddress() *models.Address {
	return &models.Address{
		Cep:        "08111430",
		Logradouro: "Rua Example",
		Bairro:     "Centro",
		Localidade: "São Paulo",
		Uf:         "SP",
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestRepository_SaveAddress(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool, "addresses")
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))

	addr := testAddress()
	require.NoError(t, repo.SaveAddress(ctx, addr))

	// The committed row is visible to a subsequent read with all five columns.
	var (
		cep, street, neighborhood, locality string
		createdAt                           time.Time
	)
	err := pool.QueryRow(ctx, `SELECT cep, street, neighborhood, locality, created_at FROM addresses`).
		Scan(&cep, &street, &neighborhood, &locality, &createdAt)
	require.NoError(t, err)

	assert.Equal(t, "08111430", cep)
	assert.Equal(t, "Rua Example", street)
	assert.Equal(t, "Centro", neighborhood)
	assert.Equal(t, "São Paulo", locality)
	assert.WithinDuration(t, addr.CreatedAt, createdAt, time.Microsecond)
}

func TestRepository_SaveAddress_AppendsDuplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool, "addresses")
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))

	// No dedup key: invoking twice with the same record inserts two rows.
	require.NoError(t, repo.SaveAddress(ctx, testAddress()))
	require.NoError(t, repo.SaveAddress(ctx, testAddress()))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM addresses`).Scan(&count))
	assert.Equal(t, 2, count)
}

func TestRepository_SaveAddress_RollsBackOnInsertFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool, "addresses")
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))

	// Force a constraint violation on insert.
	_, err := pool.Exec(ctx, `ALTER TABLE addresses ADD CONSTRAINT cep_len CHECK (char_length(cep) <= 4)`)
	require.NoError(t, err)

	err = repo.SaveAddress(ctx, testAddress())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConnection))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM addresses`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestRepository_SaveAddress_ConnectionFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	pool := setupTestDatabase(t)
	repo := NewRepository(pool, "addresses")
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))
	pool.Close()

	err := repo.SaveAddress(ctx, testAddress())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConnection))
}
