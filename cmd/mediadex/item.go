package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"mediadex/internal/covers"
	"mediadex/internal/domain"
)

var showFlags struct {
	json bool
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one item in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		item, err := getItem(cmd, id)
		if err != nil {
			return err
		}
		if showFlags.json {
			return printJSON(item)
		}
		printItem(item)
		return nil
	},
}

var editFlags struct {
	title    string
	category string
	status   string
	rating   int
	notes    string
	cover    string
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit fields of an item",
	Example: `  mediadex edit 3 --title "Dune Messiah" --status in-progress
  mediadex edit 3 --notes ""`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Remove an item from the catalog",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		item, err := getItem(cmd, id)
		if err != nil {
			return err
		}
		if err := repo.Delete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Printf("Removed #%d: %s\n", id, item.Title)
		return nil
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish <id>",
	Short: "Mark an item finished",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		item, err := getItem(cmd, id)
		if err != nil {
			return err
		}
		item.MarkFinished()
		if err := repo.Update(cmd.Context(), item); err != nil {
			return err
		}
		fmt.Printf("Finished #%d: %s\n", id, item.Title)
		return nil
	},
}

var rateCmd = &cobra.Command{
	Use:   "rate <id> <rating|none>",
	Short: "Rate an item 0-10, or clear the rating with none",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		item, err := getItem(cmd, id)
		if err != nil {
			return err
		}

		if strings.EqualFold(args[1], "none") {
			item.SetRating(nil)
		} else {
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid rating %q", args[1])
			}
			if err := validRating(rating); err != nil {
				return err
			}
			item.SetRating(&rating)
		}

		if err := repo.Update(cmd.Context(), item); err != nil {
			return err
		}
		fmt.Printf("Rated #%d: %s -> %s\n", id, item.Title, ratingCell(item.Rating))
		return nil
	},
}

var coverFlags struct {
	importCover bool
}

var coverCmd = &cobra.Command{
	Use:   "cover <id> <path>",
	Short: "Attach a cover image to an item",
	Long: `Attach a cover image path to an item. The path is stored as opaque text.
With --import the file is first copied into the covers directory and the
stored path points at the managed copy.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		item, err := getItem(cmd, id)
		if err != nil {
			return err
		}

		path := args[1]
		if coverFlags.importCover {
			stored, err := covers.NewStore(cfg.CoversDir).Import(path)
			if err != nil {
				return err
			}
			slog.Debug("cover imported", "src", path, "stored", stored)
			path = stored
		}

		item.CoverPath = &path
		item.Touch()
		if err := repo.Update(cmd.Context(), item); err != nil {
			return err
		}
		fmt.Printf("Cover set for #%d: %s\n", id, path)
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showFlags.json, "json", false, "print the item as JSON")

	editCmd.Flags().StringVar(&editFlags.title, "title", "", "new title")
	editCmd.Flags().StringVar(&editFlags.category, "category", "", "new category")
	editCmd.Flags().StringVar(&editFlags.status, "status", "", "new status")
	editCmd.Flags().IntVar(&editFlags.rating, "rating", -1, "new rating 0-10")
	editCmd.Flags().StringVar(&editFlags.notes, "notes", "", "new notes; empty clears them")
	editCmd.Flags().StringVar(&editFlags.cover, "cover", "", "new cover path; empty clears it")

	coverCmd.Flags().BoolVar(&coverFlags.importCover, "import", false, "copy the file into the covers directory")

	rootCmd.AddCommand(showCmd, editCmd, rmCmd, finishCmd, rateCmd, coverCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	item, err := getItem(cmd, id)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	changed := false

	if flags.Changed("title") {
		title := strings.TrimSpace(editFlags.title)
		if title == "" {
			return errors.New("title must not be empty")
		}
		item.Title = title
		changed = true
	}
	if flags.Changed("category") {
		category, err := domain.ParseCategory(editFlags.category)
		if err != nil {
			return err
		}
		item.Category = category
		changed = true
	}
	if flags.Changed("status") {
		status, err := domain.ParseStatus(editFlags.status)
		if err != nil {
			return err
		}
		item.Status = status
		changed = true
	}
	if flags.Changed("rating") {
		if err := validRating(editFlags.rating); err != nil {
			return err
		}
		rating := editFlags.rating
		item.Rating = &rating
		changed = true
	}
	if flags.Changed("notes") {
		// Blank notes clear the field rather than storing empty text.
		if notes := strings.TrimSpace(editFlags.notes); notes == "" {
			item.Notes = nil
		} else {
			item.Notes = &notes
		}
		changed = true
	}
	if flags.Changed("cover") {
		if editFlags.cover == "" {
			item.CoverPath = nil
		} else {
			cover := editFlags.cover
			item.CoverPath = &cover
		}
		changed = true
	}

	if !changed {
		return errors.New("nothing to change; pass at least one field flag")
	}

	item.Touch()
	if err := repo.Update(cmd.Context(), item); err != nil {
		return err
	}
	fmt.Printf("Updated #%d: %s\n", item.ID, item.Title)
	return nil
}
