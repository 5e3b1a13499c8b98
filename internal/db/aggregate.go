package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Brottuetchen/TimeTrack/internal/aggregator"
	"github.com/Brottuetchen/TimeTrack/internal/models"
	"github.com/Brottuetchen/TimeTrack/internal/rules"
)

// AggregationResult summarizes one aggregation run
type AggregationResult struct {
	SessionsCreated int       `json:"sessions_created"`
	RuleMatches     int       `json:"rule_matches"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
}

// AggregateUserEvents loads a user's window events in the range, runs
// the aggregation engine, replaces the stored sessions for that range
// and auto-applies the user's rules to each new session.
//
// A zero end defaults to now, a zero start to end minus seven days.
func AggregateUserEvents(userID string, start, end time.Time, cfg aggregator.Config, logger *zap.Logger) (*AggregationResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if end.IsZero() {
		end = time.Now().UTC()
	}
	if start.IsZero() {
		start = end.AddDate(0, 0, -7)
	}

	events, err := GetWindowEventsInRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}

	sessions := aggregator.Aggregate(events, userID, cfg)

	if err := ReplaceSessionsInRange(userID, start, end, sessions); err != nil {
		return nil, err
	}

	ruleSet, err := GetEnabledRules(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	engine := rules.NewEngine(logger)
	matches := 0
	for i := range sessions {
		assignment := engine.MatchSession(&sessions[i], ruleSet)
		if assignment == nil {
			continue
		}

		created, err := CreateAssignment(assignment)
		if err != nil {
			return nil, fmt.Errorf("failed to store assignment: %w", err)
		}
		if !created {
			// A previous run already assigned this session's first event;
			// relink the fresh session to that assignment.
			existing, err := GetAssignmentByEventID(assignment.EventID)
			if err != nil {
				return nil, fmt.Errorf("failed to load existing assignment: %w", err)
			}
			assignment = existing
		}

		sessions[i].AssignmentID = &assignment.ID
		if err := DB.Model(&models.Session{}).Where("id = ?", sessions[i].ID).
			Update("assignment_id", assignment.ID).Error; err != nil {
			return nil, err
		}
		matches++
	}

	logger.Info("aggregation run complete",
		zap.String("user_id", userID),
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("events", len(events)),
		zap.Int("sessions", len(sessions)),
		zap.Int("rule_matches", matches))

	return &AggregationResult{
		SessionsCreated: len(sessions),
		RuleMatches:     matches,
		Start:           start,
		End:             end,
	}, nil
}

// ApplyRulesToEvent runs the rule engine over a freshly ingested event
// and persists a produced assignment. Returns the assignment, or nil
// when no rule matched.
func ApplyRulesToEvent(event *models.Event, logger *zap.Logger) (*models.Assignment, error) {
	ruleSet, err := GetEnabledRules(event.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	assignment := rules.NewEngine(logger).MatchEvent(event, ruleSet)
	if assignment == nil {
		return nil, nil
	}

	created, err := CreateAssignment(assignment)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, nil
	}

	return assignment, nil
}
