package types

import "time"

type Incident struct {
	ID             uint      `json:"id"`
	RuleID         uint      `json:"rule_id"`
	Status         string    `json:"status"`
	Priority       int       `json:"priority"`
	Detail         string    `json:"detail"`
	LastOccurrence time.Time `json:"last_occurrence"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type IncidentEvent struct {
	ID         uint      `json:"id"`
	IncidentID uint      `json:"incident_id"`
	EventType  string    `json:"event_type"`
	Timestamp  time.Time `json:"timestamp"`
}

type ListIncidentsRequest struct {
	Status string `schema:"status"`
	RuleID uint   `schema:"rule_id"`
	Page   int    `schema:"page"`
}

type ListIncidentsResponse struct {
	Incidents []*Incident `json:"incidents"`
}

type ListIncidentEventsRequest struct {
	IncidentID uint `schema:"incident_id"`
	Page       int  `schema:"page"`
}

type ListIncidentEventsResponse struct {
	Events []*IncidentEvent `json:"events"`
}
