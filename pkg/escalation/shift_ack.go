package escalation

import (
	"errors"
	"fmt"
	"time"

	"github.com/oncall-dev/monitor-agent/internal/logger"
	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/internal/repository"
	"github.com/oncall-dev/monitor-agent/pkg/pushclient"
	"gorm.io/gorm"
)

// ShiftAckSweeper reassigns shifts whose assignee did not confirm
// presence before the shift is about to start. The replacement is the
// incoming assignee of the next shift on the same channel, or any admin
// when the roster has no one else; the replacement must confirm too.
type ShiftAckSweeper struct {
	DB        *gorm.DB
	Push      *pushclient.Client
	Lookahead time.Duration
	Logger    *logger.Logger
}

// Run performs one sweep in a single transaction; a persistence error
// rolls back every reassignment of the sweep. Push failures do not.
func (s *ShiftAckSweeper) Run() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		repo := repository.NewRepository(tx)

		now := time.Now()

		unacked, err := repo.Shift.ListUnacknowledgedStartingBetween(now, now.Add(s.Lookahead))

		if err != nil {
			return err
		}

		for _, shift := range unacked {
			s.Logger.Warn().Caller().Msgf("%s has not confirmed the shift starting %s", shift.User.Name, shift.StartsAt)

			if err := s.reassign(repo, shift); err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *ShiftAckSweeper) reassign(repo *repository.Repository, shift *models.ShiftAssignment) error {
	next, err := repo.Shift.NextForChannel(shift.Channel, shift.StartsAt)

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var replacement *models.User

	if next != nil {
		replacement, err = repo.User.GetUser(next.UserID)

		if err != nil {
			return err
		}

		s.Logger.Info().Caller().Msgf("redirecting shift %d to next in line: %s", shift.ID, replacement.Name)
	} else {
		s.Logger.Warn().Caller().Msgf("nobody next in line for channel %s, escalating to admin", shift.Channel)

		replacement, err = repo.User.FirstAdmin()

		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				s.Logger.Error().Caller().Msgf("no admin user to take over shift %d", shift.ID)
				return nil
			}

			return err
		}
	}

	if err := repo.Shift.Reassign(shift, replacement.ID); err != nil {
		return err
	}

	takeoverMessage := fmt.Sprintf(
		"URGENT: you took over the shift starting %s because %s did not confirm.",
		shift.StartsAt.Format(time.RFC3339), shift.User.Name,
	)

	if err := s.Push.NotifyUser("SHIFT REASSIGNED TO YOU", takeoverMessage, replacement.Email); err != nil {
		s.Logger.Error().Caller().Msgf("push to replacement %s failed: %v", replacement.Name, err)
	}

	replacementID := replacement.ID

	takeover := &models.Notification{
		UserID:    &replacementID,
		Channel:   models.NotificationChannelEmail,
		Recipient: replacement.Email,
		Title:     "Shift transferred",
		Message:   takeoverMessage,
		Status:    models.NotificationStatusPending,
	}

	if _, err := repo.Notification.CreateNotification(takeover); err != nil {
		return err
	}

	originalID := shift.UserID

	noShow := &models.Notification{
		UserID:    &originalID,
		Channel:   models.NotificationChannelEmail,
		Recipient: shift.User.Email,
		Title:     "Shift cancelled (no-show)",
		Message:   fmt.Sprintf("You lost the shift starting %s for lack of acknowledgment.", shift.StartsAt.Format(time.RFC3339)),
		Status:    models.NotificationStatusPending,
	}

	_, err = repo.Notification.CreateNotification(noShow)

	return err
}
