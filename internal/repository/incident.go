package repository

import (
	"time"

	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/internal/utils"
	"gorm.io/gorm"
)

type IncidentRepository struct {
	db *gorm.DB
}

// NewIncidentRepository returns pointer to repo along with the db
func NewIncidentRepository(db *gorm.DB) *IncidentRepository {
	return &IncidentRepository{db}
}

func (r *IncidentRepository) CreateIncident(incident *models.Incident) (*models.Incident, error) {
	if err := r.db.Create(incident).Error; err != nil {
		return nil, err
	}

	return incident, nil
}

// GetUnresolvedIncidentForRule returns the rule's incident that is still
// OPEN or ACK. This is the deduplication read: callers run it inside the
// same transaction that would insert a new incident.
func (r *IncidentRepository) GetUnresolvedIncidentForRule(ruleID uint) (*models.Incident, error) {
	incident := &models.Incident{}

	err := r.db.
		Where("rule_id = ?", ruleID).
		Where("status IN ?", []models.IncidentStatus{models.IncidentStatusOpen, models.IncidentStatusAcked}).
		First(incident).Error

	if err != nil {
		return nil, err
	}

	return incident, nil
}

func (r *IncidentRepository) UpdateIncident(incident *models.Incident) (*models.Incident, error) {
	if err := r.db.Save(incident).Error; err != nil {
		return nil, err
	}

	return incident, nil
}

// ListStaleIncidents selects OPEN incidents that were opened before the
// given cutoff and whose priority still lies below the escalated level.
// The priority predicate is what keeps an incident from being escalated
// twice: once bumped, it no longer matches.
func (r *IncidentRepository) ListStaleIncidents(openedBefore time.Time, escalatedPriority int) ([]*models.Incident, error) {
	incidents := make([]*models.Incident, 0)

	err := r.db.
		Where("status = ?", models.IncidentStatusOpen).
		Where("created_at < ?", openedBefore).
		Where("priority < ?", escalatedPriority).
		Order("id asc").
		Find(&incidents).Error

	if err != nil {
		return nil, err
	}

	return incidents, nil
}

func (r *IncidentRepository) ListIncidents(filter *utils.ListIncidentsFilter, opts ...utils.QueryOption) ([]*models.Incident, error) {
	var incidents []*models.Incident

	db := r.db.Scopes(utils.Paginate(opts))

	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}

	if filter.RuleID != nil {
		db = db.Where("rule_id = ?", *filter.RuleID)
	}

	if err := db.Find(&incidents).Error; err != nil {
		return nil, err
	}

	return incidents, nil
}
