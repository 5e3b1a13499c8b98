package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/models"
)

func (s *Server) handleListRules(c echo.Context) error {
	ruleSet, err := db.ListRules(c.QueryParam("user_id"))
	if err != nil {
		s.logger.Error("failed to list rules", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list rules")
	}
	return c.JSON(http.StatusOK, ruleSet)
}

func (s *Server) handleGetRule(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rule id")
	}

	rule, err := db.GetRuleByID(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "rule not found")
	}
	return c.JSON(http.StatusOK, rule)
}

func (s *Server) handleCreateRule(c echo.Context) error {
	var rule models.AssignmentRule
	if err := c.Bind(&rule); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if rule.UserID == "" || rule.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id and name are required")
	}

	if err := db.CreateRule(&rule); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rule)
}

func (s *Server) handleUpdateRule(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rule id")
	}

	rule, err := db.GetRuleByID(uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "rule not found")
	}

	if err := c.Bind(rule); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	rule.ID = uint(id)

	if err := db.UpdateRule(rule); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rule)
}

func (s *Server) handleDeleteRule(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid rule id")
	}

	if err := db.DeleteRule(uint(id)); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "rule not found")
	}
	return c.NoContent(http.StatusNoContent)
}
