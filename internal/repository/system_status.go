package repository

import (
	"time"

	"github.com/oncall-dev/monitor-agent/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SystemStatusRepository struct {
	db *gorm.DB
}

// NewSystemStatusRepository returns pointer to repo along with the db
func NewSystemStatusRepository(db *gorm.DB) *SystemStatusRepository {
	return &SystemStatusRepository{db}
}

// UpsertHeartbeat overwrites the singleton heartbeat row for the service,
// creating it on first run.
func (r *SystemStatusRepository) UpsertHeartbeat(service string, now time.Time) error {
	status := &models.SystemStatus{
		Service:       service,
		Status:        models.StatusOnline,
		LastHeartbeat: now,
	}

	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "service"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "last_heartbeat", "updated_at"}),
	}).Create(status).Error
}

func (r *SystemStatusRepository) GetByService(service string) (*models.SystemStatus, error) {
	status := &models.SystemStatus{}

	if err := r.db.Where("service = ?", service).First(status).Error; err != nil {
		return nil, err
	}

	return status, nil
}
