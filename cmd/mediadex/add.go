package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"mediadex/internal/domain"
)

var addFlags struct {
	category string
	status   string
	rating   int
	notes    string
	cover    string
}

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add an item to the catalog",
	Example: `  mediadex add "Dune" --category book
  mediadex add "Arrival" --category movie --status finished --rating 9`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addFlags.category, "category", "other", "category: book, movie, game, music, other")
	addCmd.Flags().StringVar(&addFlags.status, "status", "", "status: planned, in-progress, finished (default planned)")
	addCmd.Flags().IntVar(&addFlags.rating, "rating", -1, "rating 0-10")
	addCmd.Flags().StringVar(&addFlags.notes, "notes", "", "free-form notes")
	addCmd.Flags().StringVar(&addFlags.cover, "cover", "", "cover image path, stored as-is")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(args[0])
	if title == "" {
		return errors.New("title must not be empty")
	}

	category, err := domain.ParseCategory(addFlags.category)
	if err != nil {
		return err
	}

	item := domain.NewMediaItem(title, category)

	if addFlags.status != "" {
		status, err := domain.ParseStatus(addFlags.status)
		if err != nil {
			return err
		}
		item.Status = status
	}
	if cmd.Flags().Changed("rating") {
		if err := validRating(addFlags.rating); err != nil {
			return err
		}
		rating := addFlags.rating
		item.Rating = &rating
	}
	// Blank notes stay absent rather than stored as empty text.
	if notes := strings.TrimSpace(addFlags.notes); notes != "" {
		item.Notes = &notes
	}
	if addFlags.cover != "" {
		cover := addFlags.cover
		item.CoverPath = &cover
	}

	id, err := repo.Add(cmd.Context(), item)
	if err != nil {
		return err
	}

	slog.Debug("item added", "id", id, "title", item.Title)
	fmt.Printf("Added #%d: %s (%s, %s)\n", id, item.Title, item.Category, item.Status)
	return nil
}
