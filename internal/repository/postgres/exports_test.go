package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/coilgen/coilgen/internal/repository"
	"github.com/coilgen/coilgen/pkg/models"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgContainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupDatabase(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pg, err := pgContainer.Run(ctx,
		"postgres:15-alpine",
		pgContainer.WithDatabase("coilgen_test"),
		pgContainer.WithUsername("testuser"),
		pgContainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, pg.Terminate(context.Background()))
	})

	dbURL, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(ctx, db))
	// second run is a no-op
	require.NoError(t, Migrate(ctx, db))

	return db
}

func TestPostgresExportRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := setupDatabase(t)
	repo := NewPostgresExportRepository(db)
	ctx := context.Background()

	id := uuid.New()
	record := &models.Export{
		ID:          id.String(),
		Params:      models.CoilParams{OuterWidth: 50, OuterHeight: 50, TraceWidth: 2, Gap: 1, Turns: 3, IncludeInner: true},
		Format:      "csv",
		ObjectKey:   "exports/" + id.String() + "/coil_coordinates.csv",
		ContentType: "text/csv; charset=utf-8",
		SizeBytes:   1234,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(ctx, record))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.Params, got.Params)
	assert.Equal(t, record.Format, got.Format)
	assert.Equal(t, record.ObjectKey, got.ObjectKey)
	assert.Equal(t, record.SizeBytes, got.SizeBytes)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// duplicate ids are rejected
	assert.Error(t, repo.Create(ctx, record))
}
