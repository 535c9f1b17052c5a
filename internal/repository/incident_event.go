package repository

import (
	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/internal/utils"
	"gorm.io/gorm"
)

type IncidentEventRepository struct {
	db *gorm.DB
}

// NewIncidentEventRepository returns pointer to repo along with the db
func NewIncidentEventRepository(db *gorm.DB) *IncidentEventRepository {
	return &IncidentEventRepository{db}
}

func (r *IncidentEventRepository) ListIncidentEvents(filter *utils.ListIncidentEventsFilter, opts ...utils.QueryOption) ([]*models.IncidentEvent, error) {
	var events []*models.IncidentEvent

	db := r.db.Scopes(utils.Paginate(opts))

	if filter.IncidentID != nil {
		db = db.Where("incident_id = ?", *filter.IncidentID)
	}

	if err := db.Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
