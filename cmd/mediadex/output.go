package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"mediadex/internal/domain"
)

const listTimeLayout = "2006-01-02 15:04"

// queryFlags collects the filter and sort flags shared by list and export.
// The default view is most-recently-updated first, like the catalog opens.
type queryFlags struct {
	title     string
	category  string
	status    string
	minRating int
	sort      string
	order     string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "filter: title contains (case-sensitive)")
	cmd.Flags().StringVar(&f.category, "category", "", "filter: category (book, movie, game, music, other)")
	cmd.Flags().StringVar(&f.status, "status", "", "filter: status (planned, in-progress, finished)")
	cmd.Flags().IntVar(&f.minRating, "min-rating", -1, "filter: minimum rating (0-10)")
	f.registerSort(cmd)
}

func (f *queryFlags) registerSort(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.sort, "sort", "updated", "sort field: title, category, status, rating, created, updated")
	cmd.Flags().StringVar(&f.order, "order", "desc", "sort order: asc, desc")
}

func (f *queryFlags) build() (domain.Query, error) {
	q := domain.Query{TitleSubstr: f.title}

	if f.category != "" {
		c, err := domain.ParseCategory(f.category)
		if err != nil {
			return q, err
		}
		q.Category = &c
	}
	if f.status != "" {
		s, err := domain.ParseStatus(f.status)
		if err != nil {
			return q, err
		}
		q.Status = &s
	}
	if f.minRating >= 0 {
		if err := validRating(f.minRating); err != nil {
			return q, err
		}
		r := f.minRating
		q.MinRating = &r
	}

	field, order, err := f.buildSort()
	if err != nil {
		return q, err
	}
	q.SortField = field
	q.SortOrder = order
	return q, nil
}

func (f *queryFlags) buildSort() (domain.SortField, domain.SortOrder, error) {
	field, err := domain.ParseSortField(f.sort)
	if err != nil {
		return 0, 0, err
	}

	switch strings.ToLower(f.order) {
	case "asc":
		return field, domain.SortAsc, nil
	case "desc":
		return field, domain.SortDesc, nil
	}
	return 0, 0, fmt.Errorf("unknown sort order %q", f.order)
}

func printItems(items []*domain.MediaItem) {
	if len(items) == 0 {
		fmt.Println("No items.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTATUS\tRATING\tUPDATED")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			item.ID, item.Title, item.Category, item.Status,
			ratingCell(item.Rating), item.UpdatedAt.Format(listTimeLayout))
	}
	w.Flush()
}

func printItem(item *domain.MediaItem) {
	fmt.Printf("ID:        %d\n", item.ID)
	fmt.Printf("Title:     %s\n", item.Title)
	fmt.Printf("Category:  %s\n", item.Category)
	fmt.Printf("Status:    %s\n", item.Status)
	fmt.Printf("Rating:    %s\n", ratingCell(item.Rating))
	if item.Notes != nil {
		fmt.Printf("Notes:     %s\n", *item.Notes)
	}
	if item.CoverPath != nil {
		fmt.Printf("Cover:     %s\n", *item.CoverPath)
	}
	fmt.Printf("Created:   %s\n", item.CreatedAt.Format(listTimeLayout))
	fmt.Printf("Updated:   %s\n", item.UpdatedAt.Format(listTimeLayout))
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func ratingCell(r *int) string {
	if r == nil {
		return "-"
	}
	return strconv.Itoa(*r)
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", arg)
	}
	return id, nil
}

// getItem fetches one item and turns absence into a user-facing error.
// The repository itself reports absence as (nil, nil).
func getItem(cmd *cobra.Command, id int64) (*domain.MediaItem, error) {
	item, err := repo.Get(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("no item with id %d", id)
	}
	return item, nil
}

// validRating enforces the 0-10 convention at the presentation boundary;
// the store itself does not bound ratings.
func validRating(r int) error {
	if r < 0 || r > 10 {
		return fmt.Errorf("rating must be between 0 and 10, got %d", r)
	}
	return nil
}
