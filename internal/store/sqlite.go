package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"resuscan/internal/types"
)

// timeLayout keeps a fixed width so text timestamps sort chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const sqliteSchema = `CREATE TABLE IF NOT EXISTS resume_versions (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	job_title   TEXT NOT NULL,
	resume_data TEXT NOT NULL,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_resume_versions_updated ON resume_versions (updated_at DESC);`

// SQLiteStore keeps versions in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// OpenSQLite opens or creates the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		path = "resuscan.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, storageError(fmt.Sprintf("failed to create database directory %s", dir), err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageError("failed to open sqlite database", err)
	}
	db.SetMaxOpenConns(1) // single writer

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, storageError("failed to initialize sqlite schema", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, name, jobTitle string, resume types.Resume) (types.Version, error) {
	v := newVersion(name, jobTitle, resume)
	data, err := encodeResume(resume)
	if err != nil {
		return types.Version{}, err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO resume_versions (id, name, job_title, resume_data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.JobTitle, string(data), v.CreatedAt.Format(timeLayout), v.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return types.Version{}, storageError("failed to save resume version", err)
	}
	return v, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]types.VersionSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, job_title, created_at, updated_at
		 FROM resume_versions ORDER BY updated_at DESC, rowid DESC`)
	if err != nil {
		return nil, storageError("failed to list resume versions", err)
	}
	defer func() { _ = rows.Close() }()

	out := []types.VersionSummary{}
	for rows.Next() {
		var sum types.VersionSummary
		var created, updated string
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.JobTitle, &created, &updated); err != nil {
			return nil, storageError("failed to read resume version", err)
		}
		if sum.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		if sum.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to list resume versions", err)
	}
	return out, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (types.Version, error) {
	var v types.Version
	var data, created, updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, job_title, resume_data, created_at, updated_at
		 FROM resume_versions WHERE id = ?`, id,
	).Scan(&v.ID, &v.Name, &v.JobTitle, &data, &created, &updated)
	if stderrors.Is(err, sql.ErrNoRows) {
		return types.Version{}, notFound(id)
	}
	if err != nil {
		return types.Version{}, storageError("failed to get resume version", err)
	}

	if v.ResumeData, err = decodeResume([]byte(data)); err != nil {
		return types.Version{}, err
	}
	if v.CreatedAt, err = parseTime(created); err != nil {
		return types.Version{}, err
	}
	if v.UpdatedAt, err = parseTime(updated); err != nil {
		return types.Version{}, err
	}
	return v, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`DELETE FROM resume_versions WHERE id = ? RETURNING name`, id,
	).Scan(&name)
	if stderrors.Is(err, sql.ErrNoRows) {
		return "", notFound(id)
	}
	if err != nil {
		return "", storageError("failed to delete resume version", err)
	}
	return name, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, storageError("invalid stored timestamp", err)
	}
	return t, nil
}
