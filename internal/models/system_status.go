package models

import (
	"time"

	"gorm.io/gorm"
)

const StatusOnline = "ONLINE"

// SystemStatus is the heartbeat row for a named service, overwritten on
// every monitoring cycle so external tooling can tell the agent is alive.
type SystemStatus struct {
	gorm.Model

	Service string `gorm:"unique"`

	Status string

	LastHeartbeat time.Time
}
