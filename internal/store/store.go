// Package store persists saved resume versions.
package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resuscan/internal/config"
	"resuscan/internal/errors"
	"resuscan/internal/types"
)

// ErrNotFound is returned, wrapped, for ids that are not stored.
var ErrNotFound = stderrors.New("resume version not found")

// Store saves and retrieves resume versions
type Store interface {
	Save(ctx context.Context, name, jobTitle string, resume types.Resume) (types.Version, error)
	// List returns summaries ordered by updated_at, newest first.
	List(ctx context.Context) ([]types.VersionSummary, error)
	Get(ctx context.Context, id string) (types.Version, error)
	// Delete removes a version and returns its name.
	Delete(ctx context.Context, id string) (string, error)
	Close() error
}

// Open connects the backend named by cfg.Driver and prepares its schema.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return OpenSQLite(ctx, cfg.DSN)
	case "postgres":
		return OpenPostgres(ctx, cfg.DSN)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unsupported storage driver: %s", cfg.Driver), nil)
	}
}

// newVersion stamps a new version with a random id and the current time.
func newVersion(name, jobTitle string, resume types.Resume) types.Version {
	now := time.Now().UTC()
	return types.Version{
		ID:         uuid.NewString(),
		Name:       name,
		JobTitle:   jobTitle,
		ResumeData: resume,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func encodeResume(resume types.Resume) ([]byte, error) {
	data, err := json.Marshal(resume)
	if err != nil {
		return nil, errors.NewInternalError(errors.ErrCodeStorageFailed, "failed to encode resume data", err)
	}
	return data, nil
}

func decodeResume(data []byte) (types.Resume, error) {
	var resume types.Resume
	if err := json.Unmarshal(data, &resume); err != nil {
		return types.Resume{}, errors.NewInternalError(errors.ErrCodeStorageFailed, "failed to decode resume data", err)
	}
	return resume, nil
}

// notFound wraps ErrNotFound in a not found AppError for id.
func notFound(id string) error {
	return errors.NewNotFoundError(errors.ErrCodeVersionNotFound,
		ErrNotFound.Error(), ErrNotFound).WithContext("id", id)
}

func storageError(message string, err error) error {
	return errors.NewStorageError(errors.ErrCodeStorageFailed, message, err)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
