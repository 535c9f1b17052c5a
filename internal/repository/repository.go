package repository

import "gorm.io/gorm"

type Repository struct {
	DB *gorm.DB

	Rule          *RuleRepository
	RuleExecution *RuleExecutionRepository
	Incident      *IncidentRepository
	IncidentEvent *IncidentEventRepository
	User          *UserRepository
	Shift         *ShiftRepository
	Notification  *NotificationRepository
	SystemStatus  *SystemStatusRepository
}

// NewRepository groups the per-entity repositories over a shared gorm
// handle. Jobs construct one over their transaction so every write inside
// a sweep shares its scope.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:            db,
		Rule:          NewRuleRepository(db),
		RuleExecution: NewRuleExecutionRepository(db),
		Incident:      NewIncidentRepository(db),
		IncidentEvent: NewIncidentEventRepository(db),
		User:          NewUserRepository(db),
		Shift:         NewShiftRepository(db),
		Notification:  NewNotificationRepository(db),
		SystemStatus:  NewSystemStatusRepository(db),
	}
}
