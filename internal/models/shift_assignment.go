package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ShiftAckPending = "PENDING"
	ShiftAckAcked   = "ACKED"
)

// ShiftAssignment is a time-bounded on-call responsibility for a channel.
// The validity window is half-open: [StartsAt, EndsAt). When several
// assignments overlap, the latest-starting one is authoritative.
type ShiftAssignment struct {
	gorm.Model

	UserID uint
	User   User

	Channel string

	StartsAt time.Time
	EndsAt   time.Time

	// AckStatus is PENDING until the assignee confirms the shift. Nil is
	// treated the same as PENDING by the ack-timeout sweep.
	AckStatus *string

	// OriginalUserID records the prior assignee when the ack-timeout
	// sweep reassigns the shift.
	OriginalUserID *uint
}
