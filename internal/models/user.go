package models

import "gorm.io/gorm"

const RoleAdmin = "admin"

type User struct {
	gorm.Model

	Name  string
	Email string
	Role  string

	// ReceivesEmail and ReceivesPush are per-channel opt-ins. A nil value
	// means the user never chose, which counts as enabled.
	ReceivesEmail *bool
	ReceivesPush  *bool

	// QuietHoursStart and QuietHoursEnd bound a wall-clock window
	// ("HH:MM") during which the user is excluded from on-call
	// resolution. The window may wrap past midnight. Nil means the user
	// has no quiet hours.
	QuietHoursStart *string
	QuietHoursEnd   *string
}

// DeviceToken is a push-notification token owned by a user. The push
// gateway fans out with these; the agent itself never reads them.
type DeviceToken struct {
	gorm.Model

	UserID uint

	Token string
}
