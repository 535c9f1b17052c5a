package models

import "gorm.io/gorm"

type NotificationChannel string

const (
	NotificationChannelEmail NotificationChannel = "EMAIL"
)

type NotificationStatus string

const (
	NotificationStatusPending NotificationStatus = "PENDING"
	NotificationStatusSent    NotificationStatus = "SENT"
)

// Notification is a queued, channel-addressed message. Producers insert
// PENDING rows; the dispatcher drains them and marks them SENT after a
// single delivery attempt. Rows are never deleted by the agent.
type Notification struct {
	gorm.Model

	UserID     *uint
	IncidentID *uint

	Channel NotificationChannel

	Recipient string

	Title   string
	Message string

	// Metadata carries free-form routing hints as serialized JSON.
	Metadata string

	Status NotificationStatus

	Read bool
}
