package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/models"
)

func (s *Server) handleListProjects(c echo.Context) error {
	projects, err := db.ListProjects()
	if err != nil {
		s.logger.Error("failed to list projects", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list projects")
	}
	return c.JSON(http.StatusOK, projects)
}

func (s *Server) handleCreateProject(c echo.Context) error {
	var project models.Project
	if err := c.Bind(&project); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if project.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	if err := db.CreateProject(&project); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, project)
}

func (s *Server) handleDeleteProject(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	if err := db.DeleteProject(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "project not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handleListMilestones(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	milestones, err := db.ListMilestones(uint(id))
	if err != nil {
		s.logger.Error("failed to list milestones", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list milestones")
	}
	return c.JSON(http.StatusOK, milestones)
}

func (s *Server) handleCreateMilestone(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid project id")
	}

	var milestone models.Milestone
	if err := c.Bind(&milestone); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	milestone.ProjectID = uint(id)
	if milestone.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	if err := db.CreateMilestone(&milestone); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, milestone)
}
