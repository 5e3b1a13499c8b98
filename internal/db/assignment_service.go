package db

import (
	"fmt"
	"time"

	"gorm.io/gorm/clause"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

// CreateAssignment stores an assignment unless the event already has
// one; events carry at most one assignment.
func CreateAssignment(assignment *models.Assignment) (bool, error) {
	var count int64
	if err := DB.Model(&models.Assignment{}).
		Where("event_id = ?", assignment.EventID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	if err := DB.Create(assignment).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ListAssignments returns all assignments with their event, project and
// milestone loaded.
func ListAssignments() ([]models.Assignment, error) {
	var assignments []models.Assignment
	if err := DB.Preload("Event").Preload("Project").Preload("Milestone").
		Order("id ASC").Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// GetAssignmentByID retrieves a single assignment with its relations
func GetAssignmentByID(id uint) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := DB.Preload("Event").Preload("Project").Preload("Milestone").
		First(&assignment, id).Error; err != nil {
		return nil, fmt.Errorf("assignment #%d not found", id)
	}
	return &assignment, nil
}

// GetAssignmentByEventID retrieves the assignment covering an event
func GetAssignmentByEventID(eventID uint) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := DB.Where("event_id = ?", eventID).First(&assignment).Error; err != nil {
		return nil, fmt.Errorf("no assignment for event #%d", eventID)
	}
	return &assignment, nil
}

// UpdateAssignment saves changes to an existing assignment after
// validating that its target project and milestone exist.
func UpdateAssignment(assignment *models.Assignment) error {
	if _, err := GetProjectByID(assignment.ProjectID); err != nil {
		return err
	}
	if assignment.MilestoneID != nil {
		if _, err := GetMilestoneByID(*assignment.MilestoneID); err != nil {
			return err
		}
	}
	return DB.Omit(clause.Associations).Save(assignment).Error
}

// AssignmentReportFilter narrows ListAssignmentsForReport results
type AssignmentReportFilter struct {
	Start          *time.Time
	End            *time.Time
	SourceType     models.SourceType
	IncludePrivate bool
}

// AssignmentReportRow joins an assignment with its event for export
type AssignmentReportRow struct {
	Assignment models.Assignment
	Event      models.Event
}

// ListAssignmentsForReport returns assignments joined with their events,
// project and milestone, ordered by event start time, for export.
func ListAssignmentsForReport(filter AssignmentReportFilter) ([]AssignmentReportRow, error) {
	query := DB.InnerJoins("Event").Preload("Project").Preload("Milestone")

	if filter.Start != nil {
		query = query.Where(`"Event".timestamp_start >= ?`, *filter.Start)
	}
	if filter.End != nil {
		query = query.Where(`"Event".timestamp_start <= ?`, *filter.End)
	}
	if filter.SourceType != "" {
		query = query.Where(`"Event".source_type = ?`, filter.SourceType)
	}
	if !filter.IncludePrivate {
		query = query.Where(`"Event".is_private = ?`, false)
	}

	var assignments []models.Assignment
	if err := query.Order(`"Event".timestamp_start ASC`).Find(&assignments).Error; err != nil {
		return nil, err
	}

	rows := make([]AssignmentReportRow, 0, len(assignments))
	for i := range assignments {
		rows = append(rows, AssignmentReportRow{
			Assignment: assignments[i],
			Event:      *assignments[i].Event,
		})
	}
	return rows, nil
}
