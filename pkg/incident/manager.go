package incident

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oncall-dev/monitor-agent/internal/logger"
	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/internal/repository"
	"github.com/oncall-dev/monitor-agent/pkg/mailer"
	"github.com/oncall-dev/monitor-agent/pkg/oncall"
	"github.com/oncall-dev/monitor-agent/pkg/pushclient"
	"gorm.io/gorm"
)

// Manager owns the incident lifecycle: deduplicating breaches against the
// still-unresolved incident of a rule, opening new incidents, and fanning
// out the initial notifications.
type Manager struct {
	Resolver *oncall.Resolver
	Push     *pushclient.Client
	Mailer   mailer.Sender
	Logger   *logger.Logger
}

// ReportBreach handles a rule whose measured value crossed its threshold.
// The repository is transaction-scoped by the caller: persistence errors
// propagate so the whole rule evaluation rolls back, while push and SMTP
// failures are logged and swallowed.
func (m *Manager) ReportBreach(repo *repository.Repository, rule *models.Rule, value int64) error {
	m.Logger.Warn().Caller().Msgf("rule %q triggered, measured value: %d", rule.Name, value)

	existing, err := repo.Incident.GetUnresolvedIncidentForRule(rule.ID)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if existing != nil {
		// Recurrence while an incident is unresolved only refreshes the
		// row; re-notifying on every poll would be an alert storm.
		m.Logger.Info().Caller().Msgf("recurrence: incident %d updated", existing.ID)

		now := time.Now()
		existing.LastOccurrence = now
		existing.Detail = fmt.Sprintf("%s\nRecurrence at %s: %d items.", existing.Detail, now.Format(time.RFC3339), value)

		_, err := repo.Incident.UpdateIncident(existing)

		return err
	}

	incident := &models.Incident{
		RuleID:         rule.ID,
		Status:         models.IncidentStatusOpen,
		Priority:       rule.Priority,
		Detail:         fmt.Sprintf("Rule %s detected %d records.", rule.Name, value),
		LastOccurrence: time.Now(),
	}

	incident, err = repo.Incident.CreateIncident(incident)

	if err != nil {
		return err
	}

	recipient, err := m.Resolver.Resolve(repo, rule.Channel)

	if err != nil {
		return err
	}

	if recipient.ReceivesEmail {
		metadata, _ := json.Marshal(map[string]string{
			"route":    fmt.Sprintf("/operator/incidents/%d", incident.ID),
			"priority": "high",
		})

		incidentID := incident.ID

		notification := &models.Notification{
			UserID:     recipient.UserID,
			IncidentID: &incidentID,
			Channel:    models.NotificationChannelEmail,
			Recipient:  recipient.Email,
			Title:      fmt.Sprintf("ACTION REQUIRED #%d", incident.ID),
			Message:    fmt.Sprintf("Your turn: %s. Action required.", rule.Name),
			Metadata:   string(metadata),
			Status:     models.NotificationStatusPending,
		}

		if _, err := repo.Notification.CreateNotification(notification); err != nil {
			return err
		}
	} else {
		m.Logger.Info().Caller().Msgf("user %s disabled email, skipping", recipient.Name)
	}

	if recipient.ReceivesPush {
		title := fmt.Sprintf("ACTION REQUIRED #%d", incident.ID)
		message := fmt.Sprintf("You are on call! Failure in: %s", rule.Name)

		if err := m.Push.NotifyUser(title, message, recipient.Email); err != nil {
			m.Logger.Error().Caller().Msgf("direct push to %s failed: %v", recipient.Name, err)
		}
	} else {
		m.Logger.Info().Caller().Msgf("user %s disabled push, skipping", recipient.Name)
	}

	broadcastTitle := fmt.Sprintf("New incident #%d", incident.ID)
	broadcastMessage := fmt.Sprintf("Rule: %s | Operator: %s", rule.Name, recipient.Name)

	if err := m.Push.NotifyRole(broadcastTitle, broadcastMessage, models.RoleAdmin); err != nil {
		m.Logger.Error().Caller().Msgf("admin broadcast push failed: %v", err)
	}

	if strings.Contains(rule.NotifyEmail, "@") {
		m.Logger.Info().Caller().Msgf("rule has fixed recipient: %s", rule.NotifyEmail)

		subject := fmt.Sprintf("Specific alert: %s", rule.Name)
		body := fmt.Sprintf("Rule %q failed and you are configured as its fixed recipient.\nIncident #%d", rule.Name, incident.ID)

		if err := m.Mailer.Send([]string{rule.NotifyEmail}, subject, body); err != nil {
			m.Logger.Error().Caller().Msgf("fixed recipient email failed: %v", err)
		}

		incidentID := incident.ID

		// Audit row: already sent, the dispatcher must not pick it up.
		audit := &models.Notification{
			IncidentID: &incidentID,
			Channel:    models.NotificationChannelEmail,
			Recipient:  rule.NotifyEmail,
			Title:      "Fixed recipient alert",
			Message:    "Delivery configured on the rule",
			Status:     models.NotificationStatusSent,
		}

		if _, err := repo.Notification.CreateNotification(audit); err != nil {
			return err
		}
	}

	return nil
}
