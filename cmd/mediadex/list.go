package main

import (
	"github.com/spf13/cobra"
)

var listFlags struct {
	query queryFlags
	json  bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog items, filtered and sorted",
	Example: `  mediadex list
  mediadex list --category book --status finished --sort rating
  mediadex list --title Dune --sort title --order asc`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listFlags.query.register(listCmd)
	listCmd.Flags().BoolVar(&listFlags.json, "json", false, "print items as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	q, err := listFlags.query.build()
	if err != nil {
		return err
	}

	items, err := repo.List(cmd.Context(), q)
	if err != nil {
		return err
	}

	if listFlags.json {
		return printJSON(items)
	}
	printItems(items)
	return nil
}
