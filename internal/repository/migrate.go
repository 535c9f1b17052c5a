package repository

import (
	"github.com/oncall-dev/monitor-agent/internal/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB, debug bool) error {
	instanceDB := db

	if debug {
		instanceDB = instanceDB.Debug()
	}

	return instanceDB.AutoMigrate(
		&models.Rule{},
		&models.RuleExecution{},
		&models.Incident{},
		&models.IncidentEvent{},
		&models.User{},
		&models.DeviceToken{},
		&models.ShiftAssignment{},
		&models.Notification{},
		&models.SystemStatus{},
	)
}
