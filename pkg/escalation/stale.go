package escalation

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/oncall-dev/monitor-agent/internal/logger"
	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/internal/repository"
	"gorm.io/gorm"
)

// StaleIncidentSweeper escalates incidents that stayed OPEN beyond the
// SLA without anyone acknowledging them: the priority is bumped to the
// escalated level and an email notice to the admin address is enqueued.
// Once bumped, the incident no longer matches the sweep's selection, so
// the priority predicate is also the notice deduplication.
type StaleIncidentSweeper struct {
	DB                *gorm.DB
	AdminEmail        string
	SLA               time.Duration
	EscalatedPriority int
	Logger            *logger.Logger
}

// Run performs one sweep in a single transaction; any error rolls back
// every escalation of the sweep.
func (s *StaleIncidentSweeper) Run() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewRepository(tx)

		stale, err := repo.Incident.ListStaleIncidents(time.Now().Add(-s.SLA), s.EscalatedPriority)

		if err != nil {
			return err
		}

		for _, inc := range stale {
			s.Logger.Warn().Caller().Msgf("escalating incident #%d", inc.ID)

			inc.Priority = s.EscalatedPriority

			if _, err := repo.Incident.UpdateIncident(inc); err != nil {
				return err
			}

			metadata, _ := json.Marshal(map[string]string{
				"route":    fmt.Sprintf("/admin/incidents/%d", inc.ID),
				"priority": "critical",
			})

			incidentID := inc.ID

			notification := &models.Notification{
				IncidentID: &incidentID,
				Channel:    models.NotificationChannelEmail,
				Recipient:  s.AdminEmail,
				Title:      "ESCALATION ALERT",
				Message:    fmt.Sprintf("ESCALATION: operator did not respond within %s!", s.SLA),
				Metadata:   string(metadata),
				Status:     models.NotificationStatusPending,
			}

			if _, err := repo.Notification.CreateNotification(notification); err != nil {
				return err
			}
		}

		return nil
	})
}
