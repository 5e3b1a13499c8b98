package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/export"
	"github.com/Brottuetchen/TimeTrack/internal/models"
)

func (s *Server) handleExportCSV(c echo.Context) error {
	return s.handleExport(c, "csv", "text/csv", export.WriteCSV)
}

func (s *Server) handleExportXLSX(c echo.Context) error {
	return s.handleExport(c, "xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		export.WriteXLSX)
}

func (s *Server) handleExport(c echo.Context, format, contentType string,
	write func(w io.Writer, rows []db.AssignmentReportRow) error) error {

	filter := db.AssignmentReportFilter{
		SourceType: models.SourceType(c.QueryParam("source_type")),
	}

	start, err := timeQueryParam(c, "start")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start timestamp")
	}
	filter.Start = start

	end, err := timeQueryParam(c, "end")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end timestamp")
	}
	filter.End = end

	if v := c.QueryParam("include_private"); v != "" {
		includePrivate, err := strconv.ParseBool(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid include_private flag")
		}
		filter.IncludePrivate = includePrivate
	}

	rows, err := db.ListAssignmentsForReport(filter)
	if err != nil {
		s.logger.Error("failed to build export", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build export")
	}

	var buf bytes.Buffer
	if err := write(&buf, rows); err != nil {
		s.logger.Error("failed to render export", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to render export")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, export.Filename(format)))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// timeQueryParam parses an optional RFC3339 query parameter
func timeQueryParam(c echo.Context, name string) (*time.Time, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// intQueryParam parses an optional integer query parameter
func intQueryParam(c echo.Context, name string, fallback int) int {
	v := c.QueryParam(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
