package models

import (
	"time"
)

// AssignmentRule is a user-authored pattern that auto-classifies events
// and sessions. All present condition fields must match (logical AND);
// empty string condition fields are treated as absent. Higher priority
// rules are evaluated first.
type AssignmentRule struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"size:64;index;not null" json:"user_id"`
	Name   string `gorm:"size:128;not null" json:"name"`

	// Conditions
	ProcessPattern string `gorm:"size:128" json:"process_pattern"` // wildcard: * and ?
	TitleContains  string `gorm:"size:256" json:"title_contains"`
	TitleRegex     string `gorm:"size:256" json:"title_regex"`

	Priority int  `gorm:"default:0;index" json:"priority"`
	Enabled  bool `gorm:"default:true" json:"enabled"`

	// Actions applied when the rule fires
	AutoProjectID       uint   `gorm:"not null" json:"auto_project_id"`
	AutoMilestoneID     *uint  `json:"auto_milestone_id"`
	AutoActivity        string `gorm:"size:64" json:"auto_activity"`
	AutoCommentTemplate string `json:"auto_comment_template"`
}

// Assignment links an event (or a session via its first event) to a
// project, optionally a milestone, an activity type and a comment.
type Assignment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	EventID     uint   `gorm:"not null;uniqueIndex" json:"event_id"`
	ProjectID   uint   `gorm:"not null" json:"project_id"`
	MilestoneID *uint  `json:"milestone_id"`

	ActivityType string `gorm:"size:64" json:"activity_type"`
	Comment      string `json:"comment"`

	// Relationships
	Event     *Event     `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Project   *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Milestone *Milestone `gorm:"foreignKey:MilestoneID" json:"milestone,omitempty"`
}
