package models

import (
	"time"

	"github.com/oncall-dev/monitor-agent/api/server/types"
	"gorm.io/gorm"
)

type IncidentStatus string

const (
	IncidentStatusOpen   IncidentStatus = "OPEN"
	IncidentStatusAcked  IncidentStatus = "ACK"
	IncidentStatusClosed IncidentStatus = "CLOSE"
)

// Incident tracks one unresolved-or-resolved breach of a rule. At most one
// incident per rule may be OPEN or ACK at a time; recurrences update the
// existing row instead of opening a second one.
type Incident struct {
	gorm.Model

	RuleID uint
	Rule   Rule

	Status IncidentStatus

	Priority int

	Detail string

	LastOccurrence time.Time
}

func (i *Incident) ToAPIType() *types.Incident {
	return &types.Incident{
		ID:             i.ID,
		RuleID:         i.RuleID,
		Status:         string(i.Status),
		Priority:       i.Priority,
		Detail:         i.Detail,
		LastOccurrence: i.LastOccurrence,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

type IncidentEventType string

const (
	IncidentEventAck   IncidentEventType = "ACK"
	IncidentEventClose IncidentEventType = "CLOSE"
)

// IncidentEvent is the append-only audit trail written by the external
// acknowledgment surface. The agent only reads these rows.
type IncidentEvent struct {
	gorm.Model

	IncidentID uint

	EventType IncidentEventType

	Timestamp time.Time
}

func (e *IncidentEvent) ToAPIType() *types.IncidentEvent {
	return &types.IncidentEvent{
		ID:         e.ID,
		IncidentID: e.IncidentID,
		EventType:  string(e.EventType),
		Timestamp:  e.Timestamp,
	}
}
