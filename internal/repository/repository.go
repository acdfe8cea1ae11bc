// Package repository provides the SQLite-backed catalog store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mediadex/internal/domain"
)

var (
	// ErrStorage classifies failures reported by the database engine while
	// executing a statement. The driver error stays in the chain.
	ErrStorage = errors.New("storage failure")

	// ErrResource classifies failures to open or reach the store file.
	ErrResource = errors.New("resource failure")
)

var tracer = otel.Tracer("mediadex-repository")

// SQLRepository implements domain.Repository on a single SQLite connection.
//
// One mutex guards the connection: every public operation takes the lock
// for its whole duration, so exactly one statement sequence is in flight
// at a time and Stats reads a consistent snapshot.
type SQLRepository struct {
	mu sync.Mutex
	db *sql.DB
}

// New opens the store file described by cfg. The schema is not touched
// here; call Init before first use.
func New(cfg domain.RepositoryConfig) (*SQLRepository, error) {
	db, err := openSQLite(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResource, err)
	}

	return &SQLRepository{db: db}, nil
}

// Init idempotently ensures the schema exists. Safe to call on every
// startup; existing data is never touched.
func (r *SQLRepository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracer.Start(ctx, "repository.Init")
	defer span.End()

	for _, schema := range AllSchemas() {
		if _, err := r.db.ExecContext(ctx, schema); err != nil {
			return storageErr("apply schema", err)
		}
	}
	return nil
}

// Add inserts a new item, assigns the store id onto it and returns the id.
func (r *SQLRepository) Add(ctx context.Context, item *domain.MediaItem) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracer.Start(ctx, "repository.Add",
		trace.WithAttributes(attribute.String("media.category", item.Category.String())))
	defer span.End()

	query := `
		INSERT INTO media (
			title, category, status, rating, notes, cover_path, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		item.Title, item.Category.Code(), item.Status.Code(),
		nullInt(item.Rating), nullText(item.Notes), nullText(item.CoverPath),
		item.CreatedAt.Unix(), item.UpdatedAt.Unix(),
	)
	if err != nil {
		return 0, storageErr("insert media", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, storageErr("read insert id", err)
	}

	item.ID = id
	return id, nil
}

// Update rewrites every mutable column of the row matching item.ID.
// CreatedAt and the id itself are never written. A missing id is a silent
// no-op, mirroring Delete.
func (r *SQLRepository) Update(ctx context.Context, item *domain.MediaItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(attribute.Int64("media.id", item.ID)))
	defer span.End()

	query := `
		UPDATE media
		SET title = ?, category = ?, status = ?, rating = ?, notes = ?, cover_path = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.ExecContext(ctx, query,
		item.Title, item.Category.Code(), item.Status.Code(),
		nullInt(item.Rating), nullText(item.Notes), nullText(item.CoverPath),
		item.UpdatedAt.Unix(), item.ID,
	)
	if err != nil {
		return storageErr("update media", err)
	}
	return nil
}

// Delete removes the row with the given id; absent ids succeed silently.
func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.Int64("media.id", id)))
	defer span.End()

	if _, err := r.db.ExecContext(ctx, "DELETE FROM media WHERE id = ?", id); err != nil {
		return storageErr("delete media", err)
	}
	return nil
}

// Get retrieves one item by id. Absence is not an error: both the item and
// the error are nil when no row matches.
func (r *SQLRepository) Get(ctx context.Context, id int64) (*domain.MediaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracer.Start(ctx, "repository.Get",
		trace.WithAttributes(attribute.Int64("media.id", id)))
	defer span.End()

	query := "SELECT " + selectColumns + " FROM media WHERE id = ?"

	item, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("select media", err)
	}
	return item, nil
}

// List returns the items matching q, ordered per q. The query value is
// compiled into a single parameterized statement.
func (r *SQLRepository) List(ctx context.Context, q domain.Query) ([]*domain.MediaItem, error) {
	query, args := buildList(q)

	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracer.Start(ctx, "repository.List",
		trace.WithAttributes(
			attribute.String("query.sort", q.SortField.String()),
			attribute.String("query.order", q.SortOrder.String()),
		))
	defer span.End()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr("list media", err)
	}
	defer rows.Close()

	var items []*domain.MediaItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, storageErr("scan media row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list media", err)
	}

	span.SetAttributes(attribute.Int("result.count", len(items)))
	return items, nil
}

// Stats computes whole-catalog aggregates in three statements under one
// lock acquisition. Unfinished is derived from the other two counts, never
// queried on its own.
func (r *SQLRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctx, span := tracer.Start(ctx, "repository.Stats")
	defer span.End()

	var stats domain.Stats

	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM media").Scan(&stats.Total); err != nil {
		return nil, storageErr("count media", err)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT category, COUNT(*) FROM media GROUP BY category ORDER BY category")
	if err != nil {
		return nil, storageErr("count media by category", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code int64
		var count int
		if err := rows.Scan(&code, &count); err != nil {
			return nil, storageErr("scan category count", err)
		}
		stats.ByCategory = append(stats.ByCategory, domain.CategoryCount{
			Category: domain.CategoryFromCode(code).String(),
			Count:    count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("count media by category", err)
	}

	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM media WHERE status = ?", domain.StatusFinished.Code(),
	).Scan(&stats.Finished)
	if err != nil {
		return nil, storageErr("count finished media", err)
	}

	stats.Unfinished = stats.Total - stats.Finished
	return &stats, nil
}

// Ping checks database connectivity.
func (r *SQLRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrResource, err)
	}
	return nil
}

// Close closes the database connection.
func (r *SQLRepository) Close() error {
	return r.db.Close()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem decodes one media row. Enum codes decode totally (unknown
// values collapse to their defaults) and unix seconds become local time,
// so a read never fails on row content.
func scanItem(row rowScanner) (*domain.MediaItem, error) {
	var (
		item             domain.MediaItem
		category, status int64
		created, updated int64
		rating           sql.NullInt64
		notes, coverPath sql.NullString
	)

	if err := row.Scan(
		&item.ID, &item.Title, &category, &status,
		&rating, &notes, &coverPath,
		&created, &updated,
	); err != nil {
		return nil, err
	}

	item.Category = domain.CategoryFromCode(category)
	item.Status = domain.StatusFromCode(status)
	if rating.Valid {
		v := int(rating.Int64)
		item.Rating = &v
	}
	if notes.Valid {
		v := notes.String
		item.Notes = &v
	}
	if coverPath.Valid {
		v := coverPath.String
		item.CoverPath = &v
	}
	item.CreatedAt = time.Unix(created, 0)
	item.UpdatedAt = time.Unix(updated, 0)

	return &item, nil
}

// storageErr wraps an engine failure so callers can match ErrStorage, the
// failed operation and the driver error all through the one chain.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func nullInt(v *int) any {
	if v == nil {
		return nil
	}
	return int64(*v)
}

func nullText(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
