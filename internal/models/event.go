package models

import (
	"time"
)

// SourceType identifies where an event was observed
type SourceType string

const (
	SourceWindow SourceType = "window"
	SourcePhone  SourceType = "phone"
)

// CallDirection describes the direction of a phone event
type CallDirection string

const (
	DirectionIncoming CallDirection = "INCOMING"
	DirectionOutgoing CallDirection = "OUTGOING"
	DirectionMissed   CallDirection = "MISSED"
)

// Event represents a single atomic observation: a window focus interval
// reported by the desktop agent, or a phone call. Events are immutable
// once ingested; the aggregation engine only reads them.
type Event struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SourceType      SourceType `gorm:"not null;index" json:"source_type"`
	TimestampStart  time.Time  `gorm:"not null;index" json:"timestamp_start"`
	TimestampEnd    *time.Time `json:"timestamp_end"`
	DurationSeconds int        `json:"duration_seconds"`
	IsPrivate       bool       `gorm:"default:false" json:"is_private"`

	// Window events
	WindowTitle string `gorm:"size:256" json:"window_title"`
	ProcessName string `gorm:"size:128" json:"process_name"`

	// Phone events
	PhoneNumber string        `gorm:"size:64" json:"phone_number"`
	ContactName string        `gorm:"size:128" json:"contact_name"`
	Direction   CallDirection `gorm:"size:16" json:"direction"`

	MachineID string `gorm:"size:64" json:"machine_id"`
	DeviceID  string `gorm:"size:64" json:"device_id"`
	UserID    string `gorm:"size:64;index" json:"user_id"`
}
