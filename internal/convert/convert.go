// Package convert splits a LinkedIn analytics workbook into the two CSV
// exports the dashboard ingests.
package convert

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// sheetFiles maps each expected worksheet to the CSV it becomes. The file
// names mirror LinkedIn's own CSV exports so filename role detection keeps
// working on the results.
var sheetFiles = []struct {
	Sheet string
	File  string
}{
	{"Metrics", "Metrics.csv"},
	{"All posts", "All posts.csv"},
}

// Workbook reads the workbook at path and writes one CSV per expected
// sheet into outDir, returning the written file paths. Rows are dumped
// as-is; all cleaning happens at upload time.
func Workbook(path, outDir string) ([]string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	defer wb.Close()

	var written []string
	for _, sf := range sheetFiles {
		rows, err := wb.GetRows(sf.Sheet)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", sf.Sheet, err)
		}

		out := filepath.Join(outDir, sf.File)
		if err := writeCSV(out, rows); err != nil {
			return nil, err
		}
		written = append(written, out)
	}
	return written, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
