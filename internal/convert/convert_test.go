package convert

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheets map[string][][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range rows {
			for c, val := range row {
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, val))
			}
		}
	}

	path := filepath.Join(t.TempDir(), "linkedin_export.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestWorkbookWritesBothSheets(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Metrics": {
			{"Date", "Impressions (total)"},
			{"2024-06-01", 1200},
		},
		"All posts": {
			{"Report line"},
			{"Post title", "Impressions"},
			{"Launch day #go", 900},
		},
	})

	outDir := t.TempDir()
	written, err := Workbook(path, outDir)
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(outDir, "Metrics.csv"), written[0])
	assert.Equal(t, filepath.Join(outDir, "All posts.csv"), written[1])

	metrics, err := os.ReadFile(written[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(metrics)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Impressions (total)", lines[0])

	posts, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Contains(t, string(posts), "Launch day #go")
}

func TestWorkbookMissingSheet(t *testing.T) {
	path := writeWorkbook(t, map[string][][]interface{}{
		"Metrics": {
			{"Date"},
		},
	})

	_, err := Workbook(path, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "All posts")
}

func TestWorkbookUnreadableFile(t *testing.T) {
	bogus := filepath.Join(t.TempDir(), "not_a_workbook.xlsx")
	require.NoError(t, os.WriteFile(bogus, []byte("plain text"), 0o644))

	_, err := Workbook(bogus, t.TempDir())
	assert.Error(t, err)
}
