package repository

import (
	"github.com/oncall-dev/monitor-agent/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository returns pointer to repo along with the db
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db}
}

func (r *NotificationRepository) CreateNotification(notification *models.Notification) (*models.Notification, error) {
	if err := r.db.Create(notification).Error; err != nil {
		return nil, err
	}

	return notification, nil
}

// ListPendingNotifications returns the undelivered queue in insertion
// order. The comparison is case-insensitive so hand-inserted rows with a
// lowercase status still drain.
func (r *NotificationRepository) ListPendingNotifications() ([]*models.Notification, error) {
	notifications := make([]*models.Notification, 0)

	err := r.db.
		Where("UPPER(status) = ?", string(models.NotificationStatusPending)).
		Order("id asc").
		Find(&notifications).Error

	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *NotificationRepository) UpdateNotification(notification *models.Notification) (*models.Notification, error) {
	if err := r.db.Save(notification).Error; err != nil {
		return nil, err
	}

	return notification, nil
}
