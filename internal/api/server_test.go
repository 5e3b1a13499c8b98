package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/config"
	"github.com/Brottuetchen/TimeTrack/internal/db"
	"github.com/Brottuetchen/TimeTrack/internal/models"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	require.NoError(t, db.Initialize(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() {
		require.NoError(t, db.Close())
		db.DB = nil
	})

	server, err := NewServer(config.Default(), zap.NewNop())
	require.NoError(t, err)
	return server
}

func doJSON(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Echo().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestCreateWindowEventAppliesRules(t *testing.T) {
	server := newTestServer(t)

	project := &models.Project{Name: "Hall"}
	require.NoError(t, db.CreateProject(project))
	require.NoError(t, db.CreateRule(&models.AssignmentRule{
		UserID:         "u1",
		Name:           "autocad work",
		ProcessPattern: "acad*",
		Enabled:        true,
		AutoProjectID:  project.ID,
	}))

	body := `{
		"timestamp_start": "2024-03-18T10:00:00Z",
		"timestamp_end": "2024-03-18T10:20:00Z",
		"window_title": "Hall.dwg - AutoCAD",
		"process_name": "acad.exe",
		"user_id": "u1"
	}`
	rec := doJSON(t, server, http.MethodPost, "/api/v1/events/window", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var event models.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &event))
	require.NotZero(t, event.ID)
	require.Equal(t, 1200, event.DurationSeconds)

	var count int64
	require.NoError(t, db.DB.Model(&models.Assignment{}).Where("event_id = ?", event.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestCreateWindowEventRequiresTimestamp(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/events/window", `{"process_name":"acad.exe"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAggregateEndpoint(t *testing.T) {
	server := newTestServer(t)

	start := time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)
	require.NoError(t, db.CreateEvent(&models.Event{
		SourceType:     models.SourceWindow,
		TimestampStart: start,
		TimestampEnd:   &end,
		ProcessName:    "acad.exe",
		WindowTitle:    "Hall.dwg",
		UserID:         "u1",
	}))

	path := fmt.Sprintf("/api/v1/sessions/aggregate?user_id=u1&start=%s&end=%s",
		"2024-03-18T09:00:00Z", "2024-03-18T11:00:00Z")
	rec := doJSON(t, server, http.MethodPost, path, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AggregateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.SessionsCreated)

	rec = doJSON(t, server, http.MethodGet, "/api/v1/sessions?user_id=u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sessions []models.Session
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sessions))
	require.Len(t, sessions, 1)
	require.Equal(t, "hall.dwg", sessions[0].WindowTitleBase)
}

func TestAggregateRequiresUserID(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/sessions/aggregate", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRuleCRUD(t *testing.T) {
	server := newTestServer(t)

	project := &models.Project{Name: "Hall"}
	require.NoError(t, db.CreateProject(project))

	body := fmt.Sprintf(`{
		"user_id": "u1",
		"name": "autocad work",
		"process_pattern": "acad*",
		"priority": 5,
		"enabled": true,
		"auto_project_id": %d
	}`, project.ID)
	rec := doJSON(t, server, http.MethodPost, "/api/v1/rules", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var rule models.AssignmentRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rule))
	require.NotZero(t, rule.ID)

	rec = doJSON(t, server, http.MethodGet, "/api/v1/rules?user_id=u1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ruleSet []models.AssignmentRule
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ruleSet))
	require.Len(t, ruleSet, 1)

	rec = doJSON(t, server, http.MethodDelete, fmt.Sprintf("/api/v1/rules/%d", rule.ID), "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, server, http.MethodGet, fmt.Sprintf("/api/v1/rules/%d", rule.ID), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateRuleRejectsUnknownProject(t *testing.T) {
	server := newTestServer(t)

	body := `{"user_id":"u1","name":"broken","auto_project_id":999}`
	rec := doJSON(t, server, http.MethodPost, "/api/v1/rules", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCSVEndpoint(t *testing.T) {
	server := newTestServer(t)

	project := &models.Project{Name: "Hall"}
	require.NoError(t, db.CreateProject(project))

	start := time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)
	event := &models.Event{
		SourceType:     models.SourceWindow,
		TimestampStart: start,
		TimestampEnd:   &end,
		ProcessName:    "acad.exe",
		WindowTitle:    "Hall.dwg",
		UserID:         "u1",
	}
	require.NoError(t, db.CreateEvent(event))
	_, err := db.CreateAssignment(&models.Assignment{
		EventID:   event.ID,
		ProjectID: project.ID,
		Comment:   "manual",
	})
	require.NoError(t, err)

	rec := doJSON(t, server, http.MethodGet, "/api/v1/export/csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	require.Contains(t, lines[1], "acad.exe")
	require.Contains(t, lines[1], "Hall")
}

func TestAssignmentLifecycle(t *testing.T) {
	server := newTestServer(t)

	project := &models.Project{Name: "Hall"}
	require.NoError(t, db.CreateProject(project))
	milestone := &models.Milestone{ProjectID: project.ID, Name: "Draft"}
	require.NoError(t, db.CreateMilestone(milestone))

	start := time.Date(2024, 3, 18, 10, 0, 0, 0, time.UTC)
	end := start.Add(20 * time.Minute)
	event := &models.Event{
		SourceType:     models.SourceWindow,
		TimestampStart: start,
		TimestampEnd:   &end,
		ProcessName:    "acad.exe",
		WindowTitle:    "Hall.dwg",
		UserID:         "u1",
	}
	require.NoError(t, db.CreateEvent(event))

	// Create
	body := fmt.Sprintf(`{"event_id": %d, "project_id": %d, "comment": "manual"}`, event.ID, project.ID)
	rec := doJSON(t, server, http.MethodPost, "/api/v1/assignments", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var assignment models.Assignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assignment))
	require.NotZero(t, assignment.ID)
	require.Equal(t, "manual", assignment.Comment)
	require.NotNil(t, assignment.Event)
	require.Equal(t, "acad.exe", assignment.Event.ProcessName)

	// Duplicate is rejected
	rec = doJSON(t, server, http.MethodPost, "/api/v1/assignments", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// List contains it
	rec = doJSON(t, server, http.MethodGet, "/api/v1/assignments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var assignments []models.Assignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &assignments))
	require.Len(t, assignments, 1)

	// Partial update keeps unset fields
	update := fmt.Sprintf(`{"milestone_id": %d, "activity_type": "drawing"}`, milestone.ID)
	rec = doJSON(t, server, http.MethodPut, fmt.Sprintf("/api/v1/assignments/%d", assignment.ID), update)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Assignment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.NotNil(t, updated.MilestoneID)
	require.Equal(t, "drawing", updated.ActivityType)
	require.Equal(t, "manual", updated.Comment)
	require.Equal(t, project.ID, updated.ProjectID)
}

func TestCreateAssignmentValidatesTargets(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, http.MethodPost, "/api/v1/assignments", `{"event_id": 1, "project_id": 1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, server, http.MethodPost, "/api/v1/assignments", `{"project_id": 1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, server, http.MethodPut, "/api/v1/assignments/999", `{"comment": "x"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
