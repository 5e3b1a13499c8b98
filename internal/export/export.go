// Package export renders assignment reports as CSV or XLSX.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Brottuetchen/TimeTrack/internal/db"
)

// Header is the column layout of an assignment report
var Header = []string{
	"date",
	"start_time",
	"end_time",
	"duration_minutes",
	"source_type",
	"phone_number",
	"contact_name",
	"window_title",
	"process_name",
	"project_name",
	"milestone_name",
	"activity_type",
	"comment",
}

// Record flattens one assignment with its event into report columns
func Record(row db.AssignmentReportRow) []string {
	event := row.Event
	assignment := row.Assignment

	endTime := ""
	if event.TimestampEnd != nil {
		endTime = event.TimestampEnd.Format("15:04:05")
	}

	projectName := ""
	if assignment.Project != nil {
		projectName = assignment.Project.Name
	}
	milestoneName := ""
	if assignment.Milestone != nil {
		milestoneName = assignment.Milestone.Name
	}

	return []string{
		event.TimestampStart.Format("2006-01-02"),
		event.TimestampStart.Format("15:04:05"),
		endTime,
		strconv.FormatFloat(float64(event.DurationSeconds)/60.0, 'f', 1, 64),
		string(event.SourceType),
		event.PhoneNumber,
		event.ContactName,
		event.WindowTitle,
		event.ProcessName,
		projectName,
		milestoneName,
		assignment.ActivityType,
		assignment.Comment,
	}
}

// WriteCSV streams the report rows as CSV
func WriteCSV(w io.Writer, rows []db.AssignmentReportRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(Record(row)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteXLSX writes the report rows as a single-sheet workbook
func WriteXLSX(w io.Writer, rows []db.AssignmentReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Assignments"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	writeRow := func(rowIdx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := writeRow(1, Header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}
	for i, row := range rows {
		if err := writeRow(i+2, Record(row)); err != nil {
			return fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	return f.Write(w)
}

// Filename builds the attachment name for a report download
func Filename(format string) string {
	return fmt.Sprintf("export_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
}
