package repository

import (
	"strings"

	"mediadex/internal/domain"
)

const selectColumns = "id, title, category, status, rating, notes, cover_path, created_at, updated_at"

// buildList compiles a query into one parameterized SELECT. Filters are
// ANDed in a fixed order (title, category, status, rating) with one
// placeholder each; user input only ever travels through the args slice.
func buildList(q domain.Query) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(selectColumns)
	b.WriteString(" FROM media")

	var conds []string
	var args []any

	if title := strings.TrimSpace(q.TitleSubstr); title != "" {
		conds = append(conds, "title LIKE ?")
		args = append(args, "%"+title+"%")
	}
	if q.Category != nil {
		conds = append(conds, "category = ?")
		args = append(args, q.Category.Code())
	}
	if q.Status != nil {
		conds = append(conds, "status = ?")
		args = append(args, q.Status.Code())
	}
	if q.MinRating != nil {
		conds = append(conds, "rating >= ?")
		args = append(args, int64(*q.MinRating))
	}

	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}

	b.WriteString(" ORDER BY ")
	b.WriteString(orderClause(q.SortField, q.SortOrder))

	return b.String(), args
}

// orderClause maps (field, order) to a fixed ORDER BY expression. Category
// and rating break ties on title, status on recency; unrated items sort
// last regardless of direction. Unknown fields fall back to title
// ascending, like the enum decoders.
func orderClause(field domain.SortField, order domain.SortOrder) string {
	dir := "ASC"
	if order == domain.SortDesc {
		dir = "DESC"
	}

	switch field {
	case domain.SortTitle:
		return "title " + dir
	case domain.SortCategory:
		return "category " + dir + ", title ASC"
	case domain.SortStatus:
		return "status " + dir + ", updated_at DESC"
	case domain.SortRating:
		return "rating " + dir + " NULLS LAST, title ASC"
	case domain.SortCreatedAt:
		return "created_at " + dir
	case domain.SortUpdatedAt:
		return "updated_at " + dir
	}
	return "title ASC"
}
