package domain

import (
	"fmt"
	"strings"
)

// SortField selects the column a listing is ordered by. The zero value is
// SortTitle, so an empty Query lists alphabetically.
type SortField int

const (
	SortTitle SortField = iota
	SortCategory
	SortStatus
	SortRating
	SortCreatedAt
	SortUpdatedAt
)

// String returns the field name used in CLI flags and logs.
func (f SortField) String() string {
	switch f {
	case SortCategory:
		return "category"
	case SortStatus:
		return "status"
	case SortRating:
		return "rating"
	case SortCreatedAt:
		return "created"
	case SortUpdatedAt:
		return "updated"
	default:
		return "title"
	}
}

// ParseSortField parses a user-supplied sort field name.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return SortTitle, nil
	case "category":
		return SortCategory, nil
	case "status":
		return SortStatus, nil
	case "rating":
		return SortRating, nil
	case "created":
		return SortCreatedAt, nil
	case "updated":
		return SortUpdatedAt, nil
	}
	return SortTitle, fmt.Errorf("unknown sort field %q", s)
}

// SortOrder is the listing direction. The zero value is ascending.
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

func (o SortOrder) String() string {
	if o == SortDesc {
		return "desc"
	}
	return "asc"
}

// Query describes one listing request: optional filters combined as a
// conjunction, plus an ordering. The zero value matches every item, sorted
// by title ascending. Queries are plain values; the repository never
// retains or mutates one.
type Query struct {
	// TitleSubstr filters on case-sensitive containment. Surrounding
	// whitespace is trimmed; a blank string means the filter is unset.
	TitleSubstr string

	// Category and Status filter on equality when non-nil.
	Category *Category
	Status   *Status

	// MinRating keeps items whose rating is present and >= the bound.
	// Unrated items never match.
	MinRating *int

	SortField SortField
	SortOrder SortOrder
}
