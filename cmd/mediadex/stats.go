package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var statsFlags struct {
	json bool
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show whole-catalog statistics",
	Long: `Show aggregate counts over the whole catalog. Stats are always global;
they never reflect listing filters.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsFlags.json, "json", false, "print stats as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	stats, err := repo.Stats(cmd.Context())
	if err != nil {
		return err
	}

	if statsFlags.json {
		return printJSON(stats)
	}

	fmt.Printf("Total:      %d\n", stats.Total)
	fmt.Printf("Finished:   %d\n", stats.Finished)
	fmt.Printf("Unfinished: %d\n", stats.Unfinished)

	if len(stats.ByCategory) > 0 {
		fmt.Println("\nBy category:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		for _, c := range stats.ByCategory {
			fmt.Fprintf(w, "  %s\t%d\n", c.Category, c.Count)
		}
		w.Flush()
	}
	return nil
}
