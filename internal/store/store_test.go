package store

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resuscan/internal/config"
	"resuscan/internal/errors"
	"resuscan/internal/types"
)

func sampleResume() types.Resume {
	return types.Resume{
		Name:       "Jane Doe",
		Email:      "jane@example.com",
		Skills:     []string{"Go", "SQL"},
		Experience: []types.Experience{{Title: "Engineer", Company: "Acme"}},
	}
}

// exerciseStore runs the shared behaviour checks against any backend.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	first, err := s.Save(ctx, "Backend v1", "Backend Developer", sampleResume())
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)

	time.Sleep(2 * time.Millisecond)
	second, err := s.Save(ctx, "Data v1", "Data Scientist", types.Resume{Name: "Jane Doe"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "Data Scientist", list[0].JobTitle)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend v1", got.Name)
	assert.Equal(t, sampleResume(), got.ResumeData)
	assert.WithinDuration(t, first.CreatedAt, got.CreatedAt, time.Microsecond)

	name, err := s.Delete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend v1", name)

	_, err = s.Get(ctx, first.ID)
	assert.True(t, stderrors.Is(err, ErrNotFound))
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "resume version not found")

	_, err = s.Delete(ctx, first.ID)
	assert.True(t, stderrors.Is(err, ErrNotFound))

	_, err = s.Get(ctx, "not-a-uuid")
	assert.True(t, stderrors.Is(err, ErrNotFound))
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "data", "versions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseStore(t, s)
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "versions.db")
	ctx := context.Background()

	s, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	saved, err := s.Save(ctx, "Keep me", "QA", sampleResume())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Keep me", got.Name)
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("RESUSCAN_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("RESUSCAN_TEST_POSTGRES_DSN not set")
	}

	s, err := OpenPostgres(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = s.pool.Exec(context.Background(), `DELETE FROM resume_versions`)
		_ = s.Close()
	})
	_, err = s.pool.Exec(context.Background(), `DELETE FROM resume_versions`)
	require.NoError(t, err)

	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	s, err := Open(context.Background(), config.StorageConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "x.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(context.Background(), config.StorageConfig{Driver: "mongo"})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}
