package models

import (
	"time"

	"gorm.io/gorm"
)

// Rule is a stored health check: a SQL expression that is expected to
// return a single scalar, evaluated on every monitoring cycle.
type Rule struct {
	gorm.Model

	Name string

	// Query is the health-check SQL. The first column of its first row is
	// the measured value; an empty result counts as zero.
	Query string

	// Threshold is the measured value at which the rule is considered
	// breached and an incident is reported.
	Threshold int64

	// Priority is copied onto incidents opened for this rule.
	Priority int

	// Channel is the alert routing category used to look up the on-call
	// assignee. Empty means the GENERAL channel.
	Channel string

	Active bool

	// MutedUntil suppresses evaluation of the rule while it lies in the
	// future. The mute expires by time alone; nothing writes it back.
	MutedUntil *time.Time

	// NotifyEmail is an optional fixed extra recipient that is mailed
	// directly whenever a new incident opens for this rule.
	NotifyEmail string

	OwnerID *uint
}

// RuleExecution records a single evaluation attempt of a rule. Rows are
// append-only; retention is handled outside the agent.
type RuleExecution struct {
	gorm.Model

	RuleID uint

	StartedAt  time.Time
	FinishedAt time.Time

	Success bool

	// Value is the measured scalar, zero when the query failed.
	Value int64

	ErrorMessage string
}
