package db

import (
	"time"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

// EventFilter narrows ListEvents results
type EventFilter struct {
	UserID     string
	SourceType models.SourceType
	Start      *time.Time
	End        *time.Time
	Limit      int
	Offset     int
}

// CreateEvent stores a new event. The duration is derived from the
// timestamps when the caller did not provide one.
func CreateEvent(event *models.Event) error {
	if event.DurationSeconds == 0 && event.TimestampEnd != nil {
		event.DurationSeconds = int(event.TimestampEnd.Sub(event.TimestampStart).Seconds())
	}
	return DB.Create(event).Error
}

// GetWindowEventsInRange returns a user's finished window events ordered
// by start timestamp, the input the aggregator expects.
func GetWindowEventsInRange(userID string, start, end time.Time) ([]models.Event, error) {
	var events []models.Event

	err := DB.Where("user_id = ? AND source_type = ? AND timestamp_start >= ? AND timestamp_start <= ?",
		userID, models.SourceWindow, start, end).
		Order("timestamp_start ASC").
		Find(&events).Error

	if err != nil {
		return nil, err
	}

	return events, nil
}

// ListEvents returns events matching the filter, newest first
func ListEvents(filter EventFilter) ([]models.Event, error) {
	query := DB.Model(&models.Event{})

	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.SourceType != "" {
		query = query.Where("source_type = ?", filter.SourceType)
	}
	if filter.Start != nil {
		query = query.Where("timestamp_start >= ? OR (timestamp_end IS NOT NULL AND timestamp_end >= ?)",
			filter.Start, filter.Start)
	}
	if filter.End != nil {
		query = query.Where("timestamp_start <= ?", filter.End)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var events []models.Event
	err := query.Order("timestamp_start DESC").
		Offset(filter.Offset).
		Limit(limit).
		Find(&events).Error

	if err != nil {
		return nil, err
	}

	return events, nil
}

// GetEventByID retrieves a single event
func GetEventByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := DB.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}
