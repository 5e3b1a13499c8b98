package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/models"
)

func reportRow() db.AssignmentReportRow {
	start := time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)
	return db.AssignmentReportRow{
		Event: models.Event{
			SourceType:      models.SourceWindow,
			TimestampStart:  start,
			TimestampEnd:    &end,
			DurationSeconds: 1200,
			WindowTitle:     "Hall.dwg - AutoCAD",
			ProcessName:     "acad.exe",
		},
		Assignment: models.Assignment{
			ActivityType: "drafting",
			Comment:      "Auto-assigned via rule: autocad work",
			Project:      &models.Project{Name: "Hall"},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []db.AssignmentReportRow{reportRow()}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, Header, records[0])

	row := records[1]
	require.Equal(t, "2024-03-18", row[0])
	require.Equal(t, "10:00:00", row[1])
	require.Equal(t, "10:20:00", row[2])
	require.Equal(t, "20.0", row[3])
	require.Equal(t, "window", row[4])
	require.Equal(t, "Hall", row[9])
	require.Equal(t, "drafting", row[11])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, []db.AssignmentReportRow{reportRow()}))
	// XLSX is a zip container
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
}

func TestFilename(t *testing.T) {
	name := Filename("csv")
	require.True(t, strings.HasPrefix(name, "export_"))
	require.True(t, strings.HasSuffix(name, ".csv"))
}
