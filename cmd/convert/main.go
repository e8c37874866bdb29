package main

import (
	"os"

	"linklytics/internal/convert"
	"linklytics/internal/logging"

	"github.com/spf13/cobra"
)

var outDir string

// rootCmd represents the converter when called with a workbook path
var rootCmd = &cobra.Command{
	Use:   "linklytics-convert <workbook.xls>",
	Short: "Split a LinkedIn analytics workbook into its CSV exports",
	Long: `LinkedIn's full analytics download is a single workbook holding a "Metrics"
sheet and an "All posts" sheet. The dashboard ingests CSVs, so this tool
writes each sheet out as Metrics.csv and "All posts.csv".`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		written, err := convert.Workbook(args[0], outDir)
		if err != nil {
			logging.Log.Fatalf("❌ %v", err)
		}
		for _, path := range written {
			logging.Log.Infof("✅ Wrote %s", path)
		}
		logging.Log.Infof("📊 Conversion complete: %d sheets split out of %s", len(written), args[0])
	},
}

func main() {
	rootCmd.Flags().StringVar(&outDir, "out-dir", ".", "directory the CSVs are written to")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
