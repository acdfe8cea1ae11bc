package main

import (
	"github.com/spf13/cobra"

	"mediadex/internal/domain"
	"mediadex/internal/smartlist"
)

var smartFlags struct {
	sort queryFlags
	json bool
}

var smartCmd = &cobra.Command{
	Use:   "smart <expression>",
	Short: "List items matching a smart filter expression",
	Long: `List items matching a CEL boolean expression, evaluated in memory over
the whole catalog. Available variables: title, category, status, rating,
rated, notes, has_cover, created, updated.`,
	Example: `  mediadex smart 'status == "Finished" && rating >= 8'
  mediadex smart 'category in ["Book", "Movie"] && !rated'
  mediadex smart 'notes.contains("reread")'`,
	Args: cobra.ExactArgs(1),
	RunE: runSmart,
}

func init() {
	smartFlags.sort.registerSort(smartCmd)
	smartCmd.Flags().BoolVar(&smartFlags.json, "json", false, "print items as JSON")
	rootCmd.AddCommand(smartCmd)
}

func runSmart(cmd *cobra.Command, args []string) error {
	engine, err := smartlist.NewEngine()
	if err != nil {
		return err
	}
	filter, err := engine.Compile(args[0])
	if err != nil {
		return err
	}

	field, order, err := smartFlags.sort.buildSort()
	if err != nil {
		return err
	}

	// Fetch everything in the requested order; the expression filters in
	// memory and Apply preserves that order.
	items, err := repo.List(cmd.Context(), domain.Query{SortField: field, SortOrder: order})
	if err != nil {
		return err
	}

	matched, err := filter.Apply(items)
	if err != nil {
		return err
	}

	if smartFlags.json {
		return printJSON(matched)
	}
	printItems(matched)
	return nil
}
