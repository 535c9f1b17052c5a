package utils

import "github.com/oncall-dev/monitor-agent/internal/models"

type ListIncidentsFilter struct {
	Status *models.IncidentStatus
	RuleID *uint
}

type ListIncidentEventsFilter struct {
	IncidentID *uint
}
