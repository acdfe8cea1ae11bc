package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"mediadex/internal/export"
)

var exportFlags struct {
	query queryFlags
	out   string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered listing as CSV",
	Long: `Export the current listing to a timestamped CSV file. The same filter and
sort flags as list apply, so what you see is what you export.`,
	Example: `  mediadex export
  mediadex export --category book --sort title --order asc --out ~/exports`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportFlags.query.register(exportCmd)
	exportCmd.Flags().StringVar(&exportFlags.out, "out", "", "output directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	q, err := exportFlags.query.build()
	if err != nil {
		return err
	}

	items, err := repo.List(cmd.Context(), q)
	if err != nil {
		return err
	}

	dir := cfg.ExportDir
	if exportFlags.out != "" {
		dir = exportFlags.out
	}

	path, err := export.File(dir, items)
	if err != nil {
		return err
	}

	slog.Debug("export written", "path", path, "items", len(items))
	fmt.Printf("Exported %d items to %s\n", len(items), path)
	return nil
}
