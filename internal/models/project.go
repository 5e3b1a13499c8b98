package models

// Project represents a billable customer project
type Project struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"size:128;unique;not null" json:"name"`

	Customer string `gorm:"size:128" json:"customer"`
	Notes    string `json:"notes"`

	// Relationships
	Milestones []Milestone `gorm:"foreignKey:ProjectID" json:"milestones,omitempty"`
}

// Milestone represents a project milestone with an hour budget
type Milestone struct {
	ID        uint `gorm:"primarykey" json:"id"`
	ProjectID uint `gorm:"not null;index" json:"project_id"`

	Name          string  `gorm:"size:128;not null" json:"name"`
	TargetHours   float64 `json:"target_hours"`
	ActualHours   float64 `json:"actual_hours"`
	BonusRelevant bool    `gorm:"default:false" json:"bonus_relevant"`
}
