package db

import (
	"fmt"
	"time"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

// SessionFilter narrows ListSessions results
type SessionFilter struct {
	UserID string
	Start  *time.Time
	End    *time.Time
	Limit  int
	Offset int
}

// ReplaceSessionsInRange deletes a user's stored sessions in the given
// range and inserts the freshly aggregated batch in one transaction, so
// repeated aggregation runs stay idempotent for outside observers.
func ReplaceSessionsInRange(userID string, start, end time.Time, sessions []models.Session) error {
	tx := DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := tx.Where("user_id = ? AND start_time >= ? AND end_time <= ?", userID, start, end).
		Delete(&models.Session{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete prior sessions: %w", err)
	}

	for i := range sessions {
		if err := tx.Create(&sessions[i]).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to store session: %w", err)
		}
	}

	return tx.Commit().Error
}

// ListSessions returns sessions matching the filter, newest first, with
// assignment/project/milestone preloaded.
func ListSessions(filter SessionFilter) ([]models.Session, error) {
	query := DB.Model(&models.Session{}).
		Preload("Assignment").
		Preload("Assignment.Project").
		Preload("Assignment.Milestone")

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Start != nil {
		query = query.Where("start_time >= ?", filter.Start)
	}
	if filter.End != nil {
		query = query.Where("end_time <= ?", filter.End)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var sessions []models.Session
	err := query.Order("start_time DESC").
		Offset(filter.Offset).
		Limit(limit).
		Find(&sessions).Error

	if err != nil {
		return nil, err
	}

	return sessions, nil
}

// GetSessionByID retrieves a single session
func GetSessionByID(id uint) (*models.Session, error) {
	var session models.Session
	err := DB.Preload("Assignment").
		Preload("Assignment.Project").
		Preload("Assignment.Milestone").
		First(&session, id).Error
	if err != nil {
		return nil, fmt.Errorf("session #%d not found", id)
	}
	return &session, nil
}

// AssignSession manually assigns a whole session to a project. The
// assignment is created on the session's first event and propagated to
// the remaining events that have none yet.
func AssignSession(sessionID uint, projectID uint, milestoneID *uint, activityType, comment string) (*models.Session, error) {
	session, err := GetSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if len(session.EventIDs) == 0 {
		return nil, fmt.Errorf("session #%d has no events", sessionID)
	}

	assignment := models.Assignment{
		EventID:      session.EventIDs.FirstEventID(),
		ProjectID:    projectID,
		MilestoneID:  milestoneID,
		ActivityType: activityType,
		Comment:      comment,
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	if err := tx.Create(&assignment).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	session.AssignmentID = &assignment.ID
	if err := tx.Model(&models.Session{}).Where("id = ?", session.ID).
		Update("assignment_id", assignment.ID).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	// Cover the remaining events so an event-level view stays consistent
	for _, eventID := range session.EventIDs[1:] {
		var count int64
		if err := tx.Model(&models.Assignment{}).Where("event_id = ?", eventID).Count(&count).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if count > 0 {
			continue
		}

		eventAssignment := models.Assignment{
			EventID:      eventID,
			ProjectID:    projectID,
			MilestoneID:  milestoneID,
			ActivityType: activityType,
			Comment:      fmt.Sprintf("Auto-assigned from session %d: %s", sessionID, comment),
		}
		if err := tx.Create(&eventAssignment).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return GetSessionByID(sessionID)
}
