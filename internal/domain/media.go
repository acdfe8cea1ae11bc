package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies a catalog entry. Codes are stable and are what the
// store persists, so the order of these constants must never change.
type Category int

const (
	CategoryBook Category = iota
	CategoryMovie
	CategoryGame
	CategoryMusic
	CategoryOther
)

// Categories returns the closed set of categories in code order.
func Categories() []Category {
	return []Category{CategoryBook, CategoryMovie, CategoryGame, CategoryMusic, CategoryOther}
}

// String returns the display name used in listings, stats and exports.
func (c Category) String() string {
	switch c {
	case CategoryBook:
		return "Book"
	case CategoryMovie:
		return "Movie"
	case CategoryGame:
		return "Game"
	case CategoryMusic:
		return "Music"
	default:
		return "Other"
	}
}

// Code returns the integer code stored on disk. Values outside the known
// set encode as CategoryOther so that encoding is total.
func (c Category) Code() int64 {
	if c < CategoryBook || c > CategoryOther {
		return int64(CategoryOther)
	}
	return int64(c)
}

// CategoryFromCode decodes a stored code. Unknown codes map to
// CategoryOther rather than failing, so reads never reject a row.
func CategoryFromCode(code int64) Category {
	if code < int64(CategoryBook) || code > int64(CategoryOther) {
		return CategoryOther
	}
	return Category(code)
}

// ParseCategory parses a user-supplied category name, case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "book":
		return CategoryBook, nil
	case "movie":
		return CategoryMovie, nil
	case "game":
		return CategoryGame, nil
	case "music":
		return CategoryMusic, nil
	case "other":
		return CategoryOther, nil
	}
	return CategoryOther, fmt.Errorf("unknown category %q", s)
}

// Status tracks consumption progress. Codes are stable on-disk values.
type Status int

const (
	StatusPlanned Status = iota
	StatusInProgress
	StatusFinished
)

// Statuses returns the closed set of statuses in code order.
func Statuses() []Status {
	return []Status{StatusPlanned, StatusInProgress, StatusFinished}
}

// String returns the display name. StatusInProgress renders with a space
// ("In Progress"); stats and CSV output depend on these exact strings.
func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusFinished:
		return "Finished"
	default:
		return "Planned"
	}
}

// Code returns the integer code stored on disk.
func (s Status) Code() int64 {
	if s < StatusPlanned || s > StatusFinished {
		return int64(StatusPlanned)
	}
	return int64(s)
}

// StatusFromCode decodes a stored code; unknown codes map to StatusPlanned.
func StatusFromCode(code int64) Status {
	if code < int64(StatusPlanned) || code > int64(StatusFinished) {
		return StatusPlanned
	}
	return Status(code)
}

// ParseStatus parses a user-supplied status name, case-insensitively.
// Both "in-progress" and "inprogress" are accepted.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "planned":
		return StatusPlanned, nil
	case "in-progress", "inprogress", "in progress":
		return StatusInProgress, nil
	case "finished":
		return StatusFinished, nil
	}
	return StatusPlanned, fmt.Errorf("unknown status %q", s)
}

// MediaItem is a single catalog entry.
//
// ID is assigned by the store on insert; zero means the item has not been
// persisted yet. Rating, Notes and CoverPath are optional, nil when absent.
// Timestamps carry second granularity: the store keeps unix seconds, and
// the constructor truncates accordingly so a round trip through the store
// reproduces the times exactly.
type MediaItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	Status    Status    `json:"status"`
	Rating    *int      `json:"rating,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CoverPath *string   `json:"coverPath,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewMediaItem creates an unsaved item in StatusPlanned with CreatedAt and
// UpdatedAt set to the same instant.
func NewMediaItem(title string, category Category) *MediaItem {
	now := time.Now().Truncate(time.Second)
	return &MediaItem{
		Title:     title,
		Category:  category,
		Status:    StatusPlanned,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes UpdatedAt. Every mutating helper calls it; callers that
// modify fields directly should too, before handing the item to the store.
func (m *MediaItem) Touch() {
	m.UpdatedAt = time.Now().Truncate(time.Second)
}

// MarkFinished sets StatusFinished and refreshes UpdatedAt.
func (m *MediaItem) MarkFinished() {
	m.Status = StatusFinished
	m.Touch()
}

// SetRating sets or clears the rating and refreshes UpdatedAt.
func (m *MediaItem) SetRating(rating *int) {
	m.Rating = rating
	m.Touch()
}
