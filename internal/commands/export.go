package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export assignments as CSV or XLSX",
	Long: `Export the assignment report for a time range.

Examples:
  timetrack export --out report.csv
  timetrack export --format xlsx --out report.xlsx --start "30 days"`,
	Run: func(cmd *cobra.Command, args []string) {
		format, _ := cmd.Flags().GetString("format")
		if format != "csv" && format != "xlsx" {
			fmt.Printf("Error: unsupported format '%s' (use csv or xlsx)\n", format)
			os.Exit(1)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = export.Filename(format)
		}

		start, end, err := parseRangeFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		cfg := loadConfig()
		initDB(cfg)
		defer db.Close()

		filter := db.AssignmentReportFilter{}
		if !start.IsZero() {
			filter.Start = &start
		}
		if !end.IsZero() {
			filter.End = &end
		}
		filter.IncludePrivate, _ = cmd.Flags().GetBool("include-private")

		rows, err := db.ListAssignmentsForReport(filter)
		if err != nil {
			fmt.Printf("Error building report: %v\n", err)
			os.Exit(1)
		}

		file, err := os.Create(out)
		if err != nil {
			fmt.Printf("Error creating %s: %v\n", out, err)
			os.Exit(1)
		}
		defer file.Close()

		switch format {
		case "csv":
			err = export.WriteCSV(file, rows)
		case "xlsx":
			err = export.WriteXLSX(file, rows)
		}
		if err != nil {
			fmt.Printf("Error writing %s: %v\n", out, err)
			os.Exit(1)
		}

		fmt.Printf("✅ Exported %d assignments to %s\n", len(rows), out)
	},
}

func init() {
	exportCmd.Flags().String("format", "csv", "Output format: csv or xlsx")
	exportCmd.Flags().StringP("out", "o", "", "Output file (default export_<timestamp>.<format>)")
	exportCmd.Flags().String("start", "", "Range start")
	exportCmd.Flags().String("end", "", "Range end")
	exportCmd.Flags().Bool("include-private", false, "Include private events")
}
