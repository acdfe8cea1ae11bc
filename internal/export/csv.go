// Package export renders catalog listings as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"mediadex/internal/domain"
)

const timeLayout = "2006-01-02 15:04:05"

// columns is the fixed export column order.
var columns = []string{"id", "title", "category", "status", "rating", "notes", "cover_path", "created_at", "updated_at"}

// Write renders items with a header row. Enum fields use their display
// names and absent optionals render as empty cells, so the output is a
// lossless, human-readable copy of the listing.
func Write(w io.Writer, items []*domain.MediaItem) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, item := range items {
		record := []string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			item.Category.String(),
			item.Status.String(),
			ratingCell(item.Rating),
			textCell(item.Notes),
			textCell(item.CoverPath),
			item.CreatedAt.Format(timeLayout),
			item.UpdatedAt.Format(timeLayout),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// File writes a timestamped export under dir and returns the file path.
func File(dir string, items []*domain.MediaItem) (string, error) {
	name := "export_" + time.Now().Format("20060102_150405") + ".csv"
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := Write(f, items); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	return path, nil
}

func ratingCell(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func textCell(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
