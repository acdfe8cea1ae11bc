package domain

// CategoryCount is one per-category tally inside Stats.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Stats is a snapshot of whole-catalog aggregates. It is computed fresh on
// every request and never cached.
//
// ByCategory holds display names in category code order and omits
// categories with no items. Unfinished is always Total minus Finished;
// it is derived, never queried separately.
type Stats struct {
	Total      int             `json:"total"`
	ByCategory []CategoryCount `json:"byCategory"`
	Finished   int             `json:"finished"`
	Unfinished int             `json:"unfinished"`
}
