package oncall

import (
	"errors"
	"strings"
	"time"

	"github.com/oncall-dev/monitor-agent/internal/logger"
	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/internal/repository"
	"gorm.io/gorm"
)

// DefaultChannel is used when a rule has no routing channel configured.
const DefaultChannel = "GENERAL"

// Recipient is a deliverable alert target. UserID is nil for the
// synthetic recipient of last resort.
type Recipient struct {
	UserID *uint
	Name   string
	Email  string

	ReceivesEmail bool
	ReceivesPush  bool
}

// Resolver finds who should receive an alert for a channel. It degrades
// from the rostered on-call user, to any admin, to a synthetic recipient
// on the configured default address - it never resolves to nobody.
type Resolver struct {
	DefaultAdminEmail string
	Logger            *logger.Logger
}

// Resolve returns the current recipient for the channel. The repository
// is passed in so the lookup shares the caller's transaction.
func (r *Resolver) Resolve(repo *repository.Repository, channel string) (*Recipient, error) {
	target := strings.TrimSpace(channel)
	if target == "" {
		target = DefaultChannel
	}

	now := time.Now()

	shifts, err := repo.Shift.ListActiveForChannel(target, now)
	if err != nil {
		return nil, err
	}

	for _, shift := range shifts {
		user := shift.User

		if inQuietHours(now, user.QuietHoursStart, user.QuietHoursEnd) {
			r.Logger.Debug().Caller().Msgf("skipping %s for channel %s: inside quiet hours", user.Name, target)
			continue
		}

		r.Logger.Info().Caller().Msgf("resolved on-call user %s for channel %s", user.Name, target)

		return recipientFromUser(&user), nil
	}

	r.Logger.Info().Caller().Msgf("nobody on shift for channel %s, falling back to admin", target)

	admin, err := repo.User.FirstAdmin()

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if admin != nil {
		return recipientFromUser(admin), nil
	}

	r.Logger.Warn().Caller().Msgf("no admin user found, using default address %s", r.DefaultAdminEmail)

	return &Recipient{
		Name:          "System Admin",
		Email:         r.DefaultAdminEmail,
		ReceivesEmail: true,
		ReceivesPush:  true,
	}, nil
}

func recipientFromUser(user *models.User) *Recipient {
	id := user.ID

	return &Recipient{
		UserID:        &id,
		Name:          user.Name,
		Email:         user.Email,
		ReceivesEmail: user.ReceivesEmail == nil || *user.ReceivesEmail,
		ReceivesPush:  user.ReceivesPush == nil || *user.ReceivesPush,
	}
}

// inQuietHours reports whether now's wall-clock time falls inside the
// half-open [start, end) window. A window with start after end wraps past
// midnight, so [22:00, 07:00) covers 23:00 but not 09:00.
func inQuietHours(now time.Time, start, end *string) bool {
	if start == nil || end == nil {
		return false
	}

	startAt, err := time.Parse("15:04", *start)
	if err != nil {
		return false
	}

	endAt, err := time.Parse("15:04", *end)
	if err != nil {
		return false
	}

	minute := now.Hour()*60 + now.Minute()
	startMinute := startAt.Hour()*60 + startAt.Minute()
	endMinute := endAt.Hour()*60 + endAt.Minute()

	if startMinute == endMinute {
		return false
	}

	if startMinute < endMinute {
		return minute >= startMinute && minute < endMinute
	}

	return minute >= startMinute || minute < endMinute
}
