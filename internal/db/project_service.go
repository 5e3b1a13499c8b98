package db

import (
	"fmt"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

// ListProjects returns all projects with their milestones
func ListProjects() ([]models.Project, error) {
	var projects []models.Project
	if err := DB.Preload("Milestones").Order("name ASC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProjectByID retrieves a project with its milestones
func GetProjectByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := DB.Preload("Milestones").First(&project, id).Error; err != nil {
		return nil, fmt.Errorf("project #%d not found", id)
	}
	return &project, nil
}

// CreateProject stores a new project
func CreateProject(project *models.Project) error {
	return DB.Create(project).Error
}

// DeleteProject removes a project and its milestones
func DeleteProject(id uint) error {
	if _, err := GetProjectByID(id); err != nil {
		return err
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Where("project_id = ?", id).Delete(&models.Milestone{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&models.Project{}, id).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// CreateMilestone stores a new milestone under an existing project
func CreateMilestone(milestone *models.Milestone) error {
	if _, err := GetProjectByID(milestone.ProjectID); err != nil {
		return err
	}
	return DB.Create(milestone).Error
}

// GetMilestoneByID retrieves a single milestone
func GetMilestoneByID(id uint) (*models.Milestone, error) {
	var milestone models.Milestone
	if err := DB.First(&milestone, id).Error; err != nil {
		return nil, fmt.Errorf("milestone #%d not found", id)
	}
	return &milestone, nil
}

// ListMilestones returns a project's milestones
func ListMilestones(projectID uint) ([]models.Milestone, error) {
	var milestones []models.Milestone
	if err := DB.Where("project_id = ?", projectID).Order("name ASC").Find(&milestones).Error; err != nil {
		return nil, err
	}
	return milestones, nil
}
