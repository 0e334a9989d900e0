package store

import (
	"context"
	stderrors "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"resuscan/internal/types"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS resume_versions (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	job_title   TEXT NOT NULL,
	resume_data JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resume_versions_updated ON resume_versions (updated_at DESC)`

// PostgresStore keeps versions in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// OpenPostgres connects a pool to dsn and prepares the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, storageError("failed to connect to database", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, storageError("failed to ping database", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, storageError("failed to initialize postgres schema", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Save(ctx context.Context, name, jobTitle string, resume types.Resume) (types.Version, error) {
	v := newVersion(name, jobTitle, resume)
	data, err := encodeResume(resume)
	if err != nil {
		return types.Version{}, err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO resume_versions (id, name, job_title, resume_data, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		v.ID, v.Name, v.JobTitle, data, v.CreatedAt, v.UpdatedAt,
	)
	if err != nil {
		return types.Version{}, storageError("failed to save resume version", err)
	}
	return v, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]types.VersionSummary, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id::text, name, job_title, created_at, updated_at
		 FROM resume_versions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, storageError("failed to list resume versions", err)
	}
	defer rows.Close()

	out := []types.VersionSummary{}
	for rows.Next() {
		var sum types.VersionSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.JobTitle, &sum.CreatedAt, &sum.UpdatedAt); err != nil {
			return nil, storageError("failed to read resume version", err)
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to list resume versions", err)
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (types.Version, error) {
	if !validID(id) {
		return types.Version{}, notFound(id)
	}

	var v types.Version
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, name, job_title, resume_data, created_at, updated_at
		 FROM resume_versions WHERE id = $1`, id,
	).Scan(&v.ID, &v.Name, &v.JobTitle, &data, &v.CreatedAt, &v.UpdatedAt)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return types.Version{}, notFound(id)
	}
	if err != nil {
		return types.Version{}, storageError("failed to get resume version", err)
	}

	if v.ResumeData, err = decodeResume(data); err != nil {
		return types.Version{}, err
	}
	return v, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (string, error) {
	if !validID(id) {
		return "", notFound(id)
	}

	var name string
	err := s.pool.QueryRow(ctx,
		`DELETE FROM resume_versions WHERE id = $1 RETURNING name`, id,
	).Scan(&name)
	if stderrors.Is(err, pgx.ErrNoRows) {
		return "", notFound(id)
	}
	if err != nil {
		return "", storageError("failed to delete resume version", err)
	}
	return name, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
