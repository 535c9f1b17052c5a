package repository

import (
	"time"

	"github.com/oncall-dev/monitor-agent/internal/models"
	"gorm.io/gorm"
)

type ShiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository returns pointer to repo along with the db
func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{db}
}

// ListActiveForChannel returns the assignments whose [starts_at, ends_at)
// window contains now for the given channel, newest start first, with the
// assigned user preloaded. Channel matching is case-insensitive.
func (r *ShiftRepository) ListActiveForChannel(channel string, now time.Time) ([]*models.ShiftAssignment, error) {
	shifts := make([]*models.ShiftAssignment, 0)

	err := r.db.
		Preload("User").
		Where("UPPER(channel) = UPPER(?)", channel).
		Where("starts_at <= ?", now).
		Where("ends_at > ?", now).
		Order("starts_at desc").
		Find(&shifts).Error

	if err != nil {
		return nil, err
	}

	return shifts, nil
}

// ListUnacknowledgedStartingBetween returns assignments that have not
// been confirmed (PENDING or never set) and start inside the window.
func (r *ShiftRepository) ListUnacknowledgedStartingBetween(from, to time.Time) ([]*models.ShiftAssignment, error) {
	shifts := make([]*models.ShiftAssignment, 0)

	err := r.db.
		Preload("User").
		Where("ack_status = ? OR ack_status IS NULL", models.ShiftAckPending).
		Where("starts_at BETWEEN ? AND ?", from, to).
		Order("starts_at asc").
		Find(&shifts).Error

	if err != nil {
		return nil, err
	}

	return shifts, nil
}

// NextForChannel returns the next assignment on the channel starting
// strictly after the given instant.
func (r *ShiftRepository) NextForChannel(channel string, after time.Time) (*models.ShiftAssignment, error) {
	shift := &models.ShiftAssignment{}

	err := r.db.
		Where("channel = ?", channel).
		Where("starts_at > ?", after).
		Order("starts_at asc").
		First(shift).Error

	if err != nil {
		return nil, err
	}

	return shift, nil
}

// Reassign swaps the shift's assignee in place, records the prior
// assignee and resets the acknowledgment so the replacement has to
// confirm as well.
func (r *ShiftRepository) Reassign(shift *models.ShiftAssignment, newUserID uint) error {
	return r.db.Model(&models.ShiftAssignment{}).
		Where("id = ?", shift.ID).
		Updates(map[string]interface{}{
			"user_id":          newUserID,
			"original_user_id": shift.UserID,
			"ack_status":       models.ShiftAckPending,
		}).Error
}
