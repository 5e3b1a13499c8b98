package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/models"
)

// WindowEventRequest is the body for POST /api/v1/events/window.
type WindowEventRequest struct {
	TimestampStart  time.Time  `json:"timestamp_start"`
	TimestampEnd    *time.Time `json:"timestamp_end"`
	DurationSeconds int        `json:"duration_seconds"`
	WindowTitle     string     `json:"window_title"`
	ProcessName     string     `json:"process_name"`
	MachineID       string     `json:"machine_id"`
	DeviceID        string     `json:"device_id"`
	UserID          string     `json:"user_id"`
}

// PhoneEventRequest is the body for POST /api/v1/events/phone.
type PhoneEventRequest struct {
	TimestampStart  time.Time            `json:"timestamp_start"`
	TimestampEnd    *time.Time           `json:"timestamp_end"`
	DurationSeconds int                  `json:"duration_seconds"`
	PhoneNumber     string               `json:"phone_number"`
	ContactName     string               `json:"contact_name"`
	Direction       models.CallDirection `json:"direction"`
	MachineID       string               `json:"machine_id"`
	DeviceID        string               `json:"device_id"`
	UserID          string               `json:"user_id"`
}

func (s *Server) handleCreateWindowEvent(c echo.Context) error {
	var req WindowEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TimestampStart.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "timestamp_start is required")
	}

	event := &models.Event{
		SourceType:      models.SourceWindow,
		TimestampStart:  req.TimestampStart,
		TimestampEnd:    req.TimestampEnd,
		DurationSeconds: req.DurationSeconds,
		WindowTitle:     req.WindowTitle,
		ProcessName:     req.ProcessName,
		MachineID:       req.MachineID,
		DeviceID:        req.DeviceID,
		UserID:          req.UserID,
		IsPrivate: s.cfg.Privacy.PrivacyActive(time.Now()) ||
			s.cfg.Privacy.IsProcessPrivate(req.ProcessName),
	}

	return s.storeEvent(c, event)
}

func (s *Server) handleCreatePhoneEvent(c echo.Context) error {
	var req PhoneEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.TimestampStart.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "timestamp_start is required")
	}

	event := &models.Event{
		SourceType:      models.SourcePhone,
		TimestampStart:  req.TimestampStart,
		TimestampEnd:    req.TimestampEnd,
		DurationSeconds: req.DurationSeconds,
		PhoneNumber:     req.PhoneNumber,
		ContactName:     req.ContactName,
		Direction:       req.Direction,
		MachineID:       req.MachineID,
		DeviceID:        req.DeviceID,
		UserID:          req.UserID,
		IsPrivate:       s.cfg.Privacy.PrivacyActive(time.Now()),
	}

	return s.storeEvent(c, event)
}

// storeEvent persists an event and auto-applies the user's rules to it.
func (s *Server) storeEvent(c echo.Context, event *models.Event) error {
	if err := db.CreateEvent(event); err != nil {
		s.logger.Error("failed to store event", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to store event")
	}
	eventsIngested.WithLabelValues(string(event.SourceType)).Inc()

	if assignment, err := db.ApplyRulesToEvent(event, s.logger); err != nil {
		s.logger.Warn("rule application failed", zap.Uint("event_id", event.ID), zap.Error(err))
	} else if assignment != nil {
		ruleMatches.Inc()
	}

	return c.JSON(http.StatusCreated, event)
}

func (s *Server) handleListEvents(c echo.Context) error {
	filter := db.EventFilter{
		UserID:     c.QueryParam("user_id"),
		SourceType: models.SourceType(c.QueryParam("source_type")),
		Limit:      intQueryParam(c, "limit", 100),
		Offset:     intQueryParam(c, "offset", 0),
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

	events, err := db.ListEvents(filter)
	if err != nil {
		s.logger.Error("failed to list events", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list events")
	}

	return c.JSON(http.StatusOK, events)
}
