// Package domain defines the core types and interfaces for mediadex.
package domain

import (
	"context"
)

// Repository defines the interface for catalog persistence.
//
// Get returns (nil, nil) when no item has the given id; absence is an
// expected answer, not an error. Update and Delete succeed silently when
// the id matches nothing. Add assigns the store id onto the passed item
// and returns it.
type Repository interface {
	// Init idempotently ensures the schema exists. Safe on every startup.
	Init(ctx context.Context) error

	// Item operations
	Add(ctx context.Context, item *MediaItem) (int64, error)
	Update(ctx context.Context, item *MediaItem) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*MediaItem, error)

	// List returns items matching the query, in the query's order.
	List(ctx context.Context, q Query) ([]*MediaItem, error)

	// Stats returns whole-catalog aggregates, ignoring any filters.
	Stats(ctx context.Context) (*Stats, error)

	// Health check
	Ping(ctx context.Context) error

	// Lifecycle
	Close() error
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	// Path is the store file. The parent directory is created on open and
	// the file itself on first use.
	Path string
}
