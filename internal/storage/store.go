// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/evanwills/firing-pricing-adjuster/internal/models"
)

// Store defines the interface for firing and roster persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateFiring archives a priced firing. The firing's ID and
	// CreatedAt fields are populated by the store.
	CreateFiring(ctx context.Context, firing *models.Firing) error

	// GetFiring retrieves an archived firing by its ID.
	GetFiring(ctx context.Context, firingID string) (*models.Firing, error)

	// ListFirings returns all archived firings, newest first.
	ListFirings(ctx context.Context) ([]*models.Firing, error)

	// SaveMembers replaces the persisted roster with the given list.
	SaveMembers(ctx context.Context, members []models.Member) error

	// ListMembers returns the persisted roster in stored order.
	ListMembers(ctx context.Context) ([]models.Member, error)

	// CreateUser persists a new login account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves an account by email address.
	// Returns (nil, nil) when no account matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves an account by ID.
	// Returns (nil, nil) when no account matches.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}

// KV is the best-effort field cache the price sheet persists itself into,
// keyed per field name. Implementations must treat it as disposable: the
// sheet behaves identically whether the cache is warm, cold, or
// unavailable.
type KV interface {
	// Get returns the cached value for key. The boolean is false when
	// the key has never been set.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}
