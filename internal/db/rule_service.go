package db

import (
	"fmt"

	"github.com/Brottuetchen/TimeTrack/internal/models"
)

// GetEnabledRules returns a user's enabled rules ordered by descending
// priority, the order the rule engine evaluates them in.
func GetEnabledRules(userID string) ([]models.AssignmentRule, error) {
	var ruleSet []models.AssignmentRule

	err := DB.Where("user_id = ? AND enabled = ?", userID, true).
		Order("priority DESC").
		Find(&ruleSet).Error

	if err != nil {
		return nil, err
	}

	return ruleSet, nil
}

// ListRules returns rules, optionally filtered by user, ordered by
// descending priority.
func ListRules(userID string) ([]models.AssignmentRule, error) {
	query := DB.Model(&models.AssignmentRule{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var ruleSet []models.AssignmentRule
	if err := query.Order("priority DESC").Find(&ruleSet).Error; err != nil {
		return nil, err
	}

	return ruleSet, nil
}

// GetRuleByID retrieves a single rule
func GetRuleByID(id uint) (*models.AssignmentRule, error) {
	var rule models.AssignmentRule
	if err := DB.First(&rule, id).Error; err != nil {
		return nil, fmt.Errorf("rule #%d not found", id)
	}
	return &rule, nil
}

// CreateRule stores a new rule after validating that its target project
// and milestone exist.
func CreateRule(rule *models.AssignmentRule) error {
	if err := validateRuleTargets(rule); err != nil {
		return err
	}
	return DB.Create(rule).Error
}

// UpdateRule saves changes to an existing rule
func UpdateRule(rule *models.AssignmentRule) error {
	if err := validateRuleTargets(rule); err != nil {
		return err
	}
	return DB.Save(rule).Error
}

// SetRuleEnabled toggles a rule without touching its other fields
func SetRuleEnabled(id uint, enabled bool) (*models.AssignmentRule, error) {
	rule, err := GetRuleByID(id)
	if err != nil {
		return nil, err
	}

	rule.Enabled = enabled
	if err := DB.Model(rule).Update("enabled", enabled).Error; err != nil {
		return nil, err
	}

	return rule, nil
}

// DeleteRule removes a rule
func DeleteRule(id uint) error {
	result := DB.Delete(&models.AssignmentRule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("rule #%d not found", id)
	}
	return nil
}

func validateRuleTargets(rule *models.AssignmentRule) error {
	var project models.Project
	if err := DB.First(&project, rule.AutoProjectID).Error; err != nil {
		return fmt.Errorf("project #%d not found", rule.AutoProjectID)
	}

	if rule.AutoMilestoneID != nil {
		var milestone models.Milestone
		if err := DB.First(&milestone, *rule.AutoMilestoneID).Error; err != nil {
			return fmt.Errorf("milestone #%d not found", *rule.AutoMilestoneID)
		}
	}

	return nil
}
