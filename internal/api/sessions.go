package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/db"
)

// AggregateResponse is the body returned by POST /api/v1/sessions/aggregate.
type AggregateResponse struct {
	SessionsCreated int       `json:"sessions_created"`
	RuleMatches     int       `json:"rule_matches"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
}

func (s *Server) handleAggregate(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	startParam, err := timeQueryParam(c, "start")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid start timestamp")
	}
	endParam, err := timeQueryParam(c, "end")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid end timestamp")
	}

	end := time.Now().UTC()
	if endParam != nil {
		end = *endParam
	}
	start := end.AddDate(0, 0, -7)
	if startParam != nil {
		start = *startParam
	}

	runID := uuid.NewString()
	logger := s.logger.With(zap.String("run_id", runID))

	result, err := db.AggregateUserEvents(userID, start, end, s.cfg.Aggregation, logger)
	if err != nil {
		logger.Error("aggregation failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "aggregation failed")
	}

	sessionsAggregated.Add(float64(result.SessionsCreated))
	ruleMatches.Add(float64(result.RuleMatches))

	return c.JSON(http.StatusCreated, AggregateResponse{
		SessionsCreated: result.SessionsCreated,
		RuleMatches:     result.RuleMatches,
		Start:           result.Start,
		End:             result.End,
	})
}

func (s *Server) handleListSessions(c echo.Context) error {
	filter := db.SessionFilter{
		UserID: c.QueryParam("user_id"),
		Limit:  intQueryParam(c, "limit", 100),
		Offset: intQueryParam(c, "offset", 0),
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

	sessions, err := db.ListSessions(filter)
	if err != nil {
		s.logger.Error("failed to list sessions", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list sessions")
	}

	return c.JSON(http.StatusOK, sessions)
}

func (s *Server) handleGetSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}

	session, err := db.GetSessionByID(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "session not found")
	}

	return c.JSON(http.StatusOK, session)
}

// AssignSessionRequest is the body for POST /api/v1/sessions/:id/assign.
type AssignSessionRequest struct {
	ProjectID    uint   `json:"project_id"`
	MilestoneID  *uint  `json:"milestone_id"`
	ActivityType string `json:"activity_type"`
	Comment      string `json:"comment"`
}

func (s *Server) handleAssignSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid session id")
	}

	var req AssignSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ProjectID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "project_id is required")
	}

	session, err := db.AssignSession(uint(id), req.ProjectID, req.MilestoneID, req.ActivityType, req.Comment)
	if err != nil {
		s.logger.Warn("session assignment failed", zap.Uint64("session_id", id), zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, session)
}
