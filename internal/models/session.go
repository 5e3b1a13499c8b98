package models

import (
	"time"
)

// Session is a cluster of temporally and topically adjacent window events
// for one process. Sessions are derived data: the aggregator builds them
// from events and they are replaced wholesale on re-aggregation.
type Session struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID          string `gorm:"size:64;index;not null" json:"user_id"`
	ProcessName     string `gorm:"size:128" json:"process_name"`
	WindowTitleBase string `gorm:"size:256" json:"window_title_base"`

	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	// TotalDurationSeconds is the wall-clock span end-start; active time is
	// the sum of constituent event durations and may be less due to gaps.
	TotalDurationSeconds  int `json:"total_duration_seconds"`
	ActiveDurationSeconds int `json:"active_duration_seconds"`

	EventIDs   EventIDList `gorm:"serializer:json" json:"event_ids"`
	EventCount int         `json:"event_count"`
	BreakCount int         `json:"break_count"`
	IsPrivate  bool        `gorm:"default:false" json:"is_private"`

	AssignmentID *uint       `json:"assignment_id"`
	Assignment   *Assignment `gorm:"foreignKey:AssignmentID" json:"assignment,omitempty"`
}

// EventIDList is the ordered list of event IDs forming a session,
// insertion order equals chronological order.
type EventIDList []uint

// FirstEventID returns the ID of the session's earliest event, or 0 when
// the list is empty.
func (l EventIDList) FirstEventID() uint {
	if len(l) == 0 {
		return 0
	}
	return l[0]
}
