package dispatcher

import (
	"fmt"

	"github.com/oncall-dev/monitor-agent/internal/logger"
	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/internal/repository"
	"github.com/oncall-dev/monitor-agent/pkg/mailer"
	"github.com/oncall-dev/monitor-agent/pkg/pushclient"
	"gorm.io/gorm"
)

// Dispatcher drains the notification queue. Each pending row gets exactly
// one delivery attempt - email through the mailer when the channel asks
// for it, plus a best-effort push copy - and is then marked SENT whether
// or not delivery worked. Operators wanting a redelivery insert a new row.
type Dispatcher struct {
	DB     *gorm.DB
	Mailer mailer.Sender
	Push   *pushclient.Client
	Logger *logger.Logger
}

// Run drains the queue once inside a single transaction.
func (d *Dispatcher) Run() error {
	return d.DB.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewRepository(tx)

		pending, err := repo.Notification.ListPendingNotifications()

		if err != nil {
			return err
		}

		for _, notification := range pending {
			d.deliver(notification)

			notification.Status = models.NotificationStatusSent

			if _, err := repo.Notification.UpdateNotification(notification); err != nil {
				return err
			}
		}

		return nil
	})
}

func (d *Dispatcher) deliver(notification *models.Notification) {
	subject, pushTitle := titles(notification)

	if notification.Channel == models.NotificationChannelEmail {
		d.Logger.Info().Caller().Msgf("sending email to %s", notification.Recipient)

		if err := d.Mailer.Send([]string{notification.Recipient}, subject, notification.Message); err != nil {
			d.Logger.Error().Caller().Msgf("email to %s failed: %v", notification.Recipient, err)
		}
	}

	if err := d.Push.NotifyUser(pushTitle, notification.Message, notification.Recipient); err != nil {
		d.Logger.Debug().Caller().Msgf("push copy to %s failed: %v", notification.Recipient, err)
	}
}

func titles(notification *models.Notification) (subject, pushTitle string) {
	if notification.Title != "" {
		return notification.Title, notification.Title
	}

	if notification.IncidentID != nil {
		return fmt.Sprintf("On-Call Monitor: Incident #%d", *notification.IncidentID),
			fmt.Sprintf("Incident #%d", *notification.IncidentID)
	}

	return "On-Call Monitor: New notice", "New notice"
}
