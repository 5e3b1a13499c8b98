package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/models"
)

func (s *Server) handleListAssignments(c echo.Context) error {
	assignments, err := db.ListAssignments()
	if err != nil {
		s.logger.Error("failed to list assignments", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list assignments")
	}
	return c.JSON(http.StatusOK, assignments)
}

// AssignmentRequest is the body for POST /api/v1/assignments.
type AssignmentRequest struct {
	EventID      uint   `json:"event_id"`
	ProjectID    uint   `json:"project_id"`
	MilestoneID  *uint  `json:"milestone_id"`
	ActivityType string `json:"activity_type"`
	Comment      string `json:"comment"`
}

func (s *Server) handleCreateAssignment(c echo.Context) error {
	var req AssignmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.EventID == 0 || req.ProjectID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "event_id and project_id are required")
	}

	if _, err := db.GetEventByID(req.EventID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "event not found")
	}
	if _, err := db.GetProjectByID(req.ProjectID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	if req.MilestoneID != nil {
		if _, err := db.GetMilestoneByID(*req.MilestoneID); err != nil {
			return echo.NewHTTPError(http.StatusNotFound, "milestone not found")
		}
	}

	assignment := &models.Assignment{
		EventID:      req.EventID,
		ProjectID:    req.ProjectID,
		MilestoneID:  req.MilestoneID,
		ActivityType: req.ActivityType,
		Comment:      req.Comment,
	}

	created, err := db.CreateAssignment(assignment)
	if err != nil {
		s.logger.Error("failed to create assignment", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create assignment")
	}
	if !created {
		return echo.NewHTTPError(http.StatusBadRequest, "event already assigned")
	}

	stored, err := db.GetAssignmentByID(assignment.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load assignment")
	}
	return c.JSON(http.StatusCreated, stored)
}

// AssignmentUpdateRequest is the body for PUT /api/v1/assignments/:id.
// Only set fields are changed.
type AssignmentUpdateRequest struct {
	ProjectID    *uint   `json:"project_id"`
	MilestoneID  *uint   `json:"milestone_id"`
	ActivityType *string `json:"activity_type"`
	Comment      *string `json:"comment"`
}

func (s *Server) handleUpdateAssignment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid assignment id")
	}

	assignment, err := db.GetAssignmentByID(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "assignment not found")
	}

	var req AssignmentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.ProjectID != nil {
		assignment.ProjectID = *req.ProjectID
	}
	if req.MilestoneID != nil {
		assignment.MilestoneID = req.MilestoneID
	}
	if req.ActivityType != nil {
		assignment.ActivityType = *req.ActivityType
	}
	if req.Comment != nil {
		assignment.Comment = *req.Comment
	}

	if err := db.UpdateAssignment(assignment); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	stored, err := db.GetAssignmentByID(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load assignment")
	}
	return c.JSON(http.StatusOK, stored)
}
