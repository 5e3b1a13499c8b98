package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

func windowEvent(id uint, process, title string) *models.Event {
	end := time.Date(2024, 3, 18, 10, 20, 0, 0, time.UTC)
	return &models.Event{
		ID:              id,
		SourceType:      models.SourceWindow,
		TimestampStart:  end.Add(-20 * time.Minute),
		TimestampEnd:    &end,
		DurationSeconds: 1200,
		ProcessName:     process,
		WindowTitle:     title,
		UserID:          "u1",
	}
}

func rule(id uint, name string, priority int, projectID uint) models.AssignmentRule {
	return models.AssignmentRule{
		ID:            id,
		UserID:        "u1",
		Name:          name,
		Priority:      priority,
		Enabled:       true,
		AutoProjectID: projectID,
	}
}

func TestMatchEventWildcardPattern(t *testing.T) {
	r := rule(1, "autocad work", 5, 7)
	r.ProcessPattern = "acad*"

	engine := NewEngine(zap.NewNop())
	assignment := engine.MatchEvent(windowEvent(1, "acad.exe", "Hall.dwg"), []models.AssignmentRule{r})

	require.NotNil(t, assignment)
	require.Equal(t, uint(7), assignment.ProjectID)
	require.Equal(t, uint(1), assignment.EventID)
	require.Equal(t, "Auto-assigned via rule: autocad work", assignment.Comment)
}

func TestMatchEventWildcardIsAnchored(t *testing.T) {
	r := rule(1, "autocad work", 5, 7)
	r.ProcessPattern = "acad"

	engine := NewEngine(zap.NewNop())
	require.Nil(t, engine.MatchEvent(windowEvent(1, "acad.exe", ""), []models.AssignmentRule{r}))
}

func TestMatchEventQuestionMarkWildcard(t *testing.T) {
	r := rule(1, "word docs", 5, 7)
	r.ProcessPattern = "winword.ex?"

	engine := NewEngine(zap.NewNop())
	require.NotNil(t, engine.MatchEvent(windowEvent(1, "WINWORD.EXE", ""), []models.AssignmentRule{r}))
}

func TestMatchEventHighestPriorityWins(t *testing.T) {
	low := rule(1, "low", 10, 1)
	high := rule(2, "high", 20, 2)

	engine := NewEngine(zap.NewNop())
	assignment := engine.MatchEvent(windowEvent(1, "acad.exe", "Hall.dwg"), []models.AssignmentRule{low, high})

	require.NotNil(t, assignment)
	require.Equal(t, uint(2), assignment.ProjectID)
}

func TestMatchEventPriorityTieKeepsInputOrder(t *testing.T) {
	first := rule(1, "first", 10, 1)
	second := rule(2, "second", 10, 2)

	engine := NewEngine(zap.NewNop())
	assignment := engine.MatchEvent(windowEvent(1, "acad.exe", ""), []models.AssignmentRule{first, second})

	require.NotNil(t, assignment)
	require.Equal(t, uint(1), assignment.ProjectID)
}

func TestMatchEventSkipsDisabledAndForeignRules(t *testing.T) {
	disabled := rule(1, "disabled", 50, 1)
	disabled.Enabled = false
	foreign := rule(2, "foreign", 40, 2)
	foreign.UserID = "someone-else"
	mine := rule(3, "mine", 10, 3)

	engine := NewEngine(zap.NewNop())
	assignment := engine.MatchEvent(windowEvent(1, "acad.exe", ""), []models.AssignmentRule{disabled, foreign, mine})

	require.NotNil(t, assignment)
	require.Equal(t, uint(3), assignment.ProjectID)
}

func TestMatchEventTitleContains(t *testing.T) {
	r := rule(1, "hall project", 5, 7)
	r.TitleContains = "hall"

	engine := NewEngine(zap.NewNop())
	require.NotNil(t, engine.MatchEvent(windowEvent(1, "acad.exe", "HALL.dwg - AutoCAD"), []models.AssignmentRule{r}))
	require.Nil(t, engine.MatchEvent(windowEvent(2, "acad.exe", "Garage.dwg"), []models.AssignmentRule{r}))
}

func TestMatchEventTitleContainsFailsWithoutTitle(t *testing.T) {
	r := rule(1, "hall project", 5, 7)
	r.TitleContains = "hall"

	engine := NewEngine(zap.NewNop())
	require.Nil(t, engine.MatchEvent(windowEvent(1, "acad.exe", ""), []models.AssignmentRule{r}))
}

func TestMatchEventTitleRegex(t *testing.T) {
	r := rule(1, "drawings", 5, 7)
	r.TitleRegex = `\.dwg$`

	engine := NewEngine(zap.NewNop())
	require.NotNil(t, engine.MatchEvent(windowEvent(1, "acad.exe", "Hall.DWG"), []models.AssignmentRule{r}))
	require.Nil(t, engine.MatchEvent(windowEvent(2, "acad.exe", "Hall.pdf"), []models.AssignmentRule{r}))
}

func TestMatchEventInvalidRegexStillFires(t *testing.T) {
	r := rule(1, "broken", 5, 7)
	r.ProcessPattern = "acad*"
	r.TitleRegex = "("

	engine := NewEngine(zap.NewNop())
	assignment := engine.MatchEvent(windowEvent(1, "acad.exe", "Hall.dwg"), []models.AssignmentRule{r})
	require.NotNil(t, assignment)
	require.Equal(t, uint(7), assignment.ProjectID)
}

func TestMatchEventAllConditionsMustHold(t *testing.T) {
	r := rule(1, "strict", 5, 7)
	r.ProcessPattern = "acad*"
	r.TitleContains = "garage"

	engine := NewEngine(zap.NewNop())
	require.Nil(t, engine.MatchEvent(windowEvent(1, "acad.exe", "Hall.dwg"), []models.AssignmentRule{r}))
}

func TestMatchEventNoRules(t *testing.T) {
	engine := NewEngine(zap.NewNop())
	require.Nil(t, engine.MatchEvent(windowEvent(1, "acad.exe", "Hall.dwg"), nil))
}

func TestMatchEventCommentTemplate(t *testing.T) {
	r := rule(1, "templated", 5, 7)
	r.AutoCommentTemplate = "Working on {title} in {process}"

	engine := NewEngine(zap.NewNop())
	assignment := engine.MatchEvent(windowEvent(1, "acad.exe", "Hall.dwg"), []models.AssignmentRule{r})

	require.NotNil(t, assignment)
	require.Equal(t, "Working on Hall.dwg in acad.exe", assignment.Comment)
}

func TestMatchEventCopiesActionFields(t *testing.T) {
	milestoneID := uint(3)
	r := rule(1, "full", 5, 7)
	r.AutoMilestoneID = &milestoneID
	r.AutoActivity = "drafting"

	engine := NewEngine(zap.NewNop())
	assignment := engine.MatchEvent(windowEvent(1, "acad.exe", "Hall.dwg"), []models.AssignmentRule{r})

	require.NotNil(t, assignment)
	require.Equal(t, &milestoneID, assignment.MilestoneID)
	require.Equal(t, "drafting", assignment.ActivityType)
}

func TestMatchEventPhoneEvent(t *testing.T) {
	// Phone events have no process or title; only absent-condition rules apply
	end := time.Date(2024, 3, 18, 11, 0, 0, 0, time.UTC)
	phone := &models.Event{
		ID:              9,
		SourceType:      models.SourcePhone,
		TimestampStart:  end.Add(-5 * time.Minute),
		TimestampEnd:    &end,
		DurationSeconds: 300,
		PhoneNumber:     "+49301234567",
		UserID:          "u1",
	}

	unconditional := rule(1, "catch-all", 1, 7)
	titled := rule(2, "titled", 50, 8)
	titled.TitleContains = "hall"

	engine := NewEngine(zap.NewNop())
	assignment := engine.MatchEvent(phone, []models.AssignmentRule{unconditional, titled})

	require.NotNil(t, assignment)
	require.Equal(t, uint(7), assignment.ProjectID)
}

func TestMatchSession(t *testing.T) {
	session := &models.Session{
		UserID:          "u1",
		ProcessName:     "acad.exe",
		WindowTitleBase: "hall.dwg",
		EventIDs:        models.EventIDList{11, 12, 13},
	}

	r := rule(1, "autocad work", 5, 7)
	r.ProcessPattern = "acad*"

	engine := NewEngine(zap.NewNop())
	assignment := engine.MatchSession(session, []models.AssignmentRule{r})

	require.NotNil(t, assignment)
	require.Equal(t, uint(7), assignment.ProjectID)
	// Session assignments reference the first event
	require.Equal(t, uint(11), assignment.EventID)
}

func TestMatchSessionTemplateUsesBaseTitle(t *testing.T) {
	session := &models.Session{
		UserID:          "u1",
		ProcessName:     "acad.exe",
		WindowTitleBase: "hall.dwg",
		EventIDs:        models.EventIDList{11},
	}

	r := rule(1, "templated", 5, 7)
	r.AutoCommentTemplate = "{title} via {process}"

	engine := NewEngine(zap.NewNop())
	assignment := engine.MatchSession(session, []models.AssignmentRule{r})

	require.NotNil(t, assignment)
	require.Equal(t, "hall.dwg via acad.exe", assignment.Comment)
}
