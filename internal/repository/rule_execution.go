package repository

import (
	"github.com/oncall-dev/monitor-agent/internal/models"
	"gorm.io/gorm"
)

type RuleExecutionRepository struct {
	db *gorm.DB
}

// NewRuleExecutionRepository returns pointer to repo along with the db
func NewRuleExecutionRepository(db *gorm.DB) *RuleExecutionRepository {
	return &RuleExecutionRepository{db}
}

func (r *RuleExecutionRepository) CreateRuleExecution(execution *models.RuleExecution) (*models.RuleExecution, error) {
	if err := r.db.Create(execution).Error; err != nil {
		return nil, err
	}

	return execution, nil
}

func (r *RuleExecutionRepository) ListRuleExecutions(ruleID uint) ([]*models.RuleExecution, error) {
	executions := make([]*models.RuleExecution, 0)

	if err := r.db.Where("rule_id = ?", ruleID).Order("id asc").Find(&executions).Error; err != nil {
		return nil, err
	}

	return executions, nil
}
