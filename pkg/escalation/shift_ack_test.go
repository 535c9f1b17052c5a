package escalation

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/pkg/pushclient"
	"gorm.io/gorm"
)

func seedOperator(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email, Role: "operator"}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Expected no error creating user, got %v", err)
	}

	return user
}

func seedShift(t *testing.T, db *gorm.DB, userID uint, channel string, startsIn time.Duration, ackStatus *string) *models.ShiftAssignment {
	t.Helper()

	shift := &models.ShiftAssignment{
		UserID:    userID,
		Channel:   channel,
		StartsAt:  time.Now().Add(startsIn),
		EndsAt:    time.Now().Add(startsIn + 8*time.Hour),
		AckStatus: ackStatus,
	}

	if err := db.Create(shift).Error; err != nil {
		t.Fatalf("Expected no error creating shift, got %v", err)
	}

	return shift
}

func testShiftAckSweeper(t *testing.T, db *gorm.DB) *ShiftAckSweeper {
	t.Helper()

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Cleanup(gateway.Close)

	return &ShiftAckSweeper{
		DB:        db,
		Push:      pushclient.NewClient(gateway.URL),
		Lookahead: 5 * time.Minute,
		Logger:    testLogger(),
	}
}

func TestShiftAckReassignsToNextInLine(t *testing.T) {
	db, repo := setupEscalationTest(t, "./shift_ack_next_test.db")

	noShow := seedOperator(t, db, "Bob", "bob@example.com")
	next := seedOperator(t, db, "Carol", "carol@example.com")

	pending := models.ShiftAckPending

	shift := seedShift(t, db, noShow.ID, "ops", 3*time.Minute, &pending)
	seedShift(t, db, next.ID, "ops", 8*time.Hour, nil)

	if err := testShiftAckSweeper(t, db).Run(); err != nil {
		t.Fatalf("Expected no error sweeping, got %v", err)
	}

	var updated models.ShiftAssignment

	if err := db.First(&updated, shift.ID).Error; err != nil {
		t.Fatalf("Expected no error reading shift, got %v", err)
	}

	if updated.UserID != next.ID {
		t.Fatalf("Expected shift handed to Carol, got user %d", updated.UserID)
	}

	if updated.OriginalUserID == nil || *updated.OriginalUserID != noShow.ID {
		t.Fatalf("Expected the no-show recorded as original assignee")
	}

	if updated.AckStatus == nil || *updated.AckStatus != models.ShiftAckPending {
		t.Fatalf("Expected the replacement to owe an acknowledgment too")
	}

	queue, err := repo.Notification.ListPendingNotifications()

	if err != nil {
		t.Fatalf("Expected no error listing notifications, got %v", err)
	}

	if len(queue) != 2 {
		t.Fatalf("Expected takeover and no-show notices, got %d", len(queue))
	}

	byRecipient := map[string]string{}

	for _, n := range queue {
		byRecipient[n.Recipient] = n.Title
	}

	if byRecipient["carol@example.com"] != "Shift transferred" {
		t.Fatalf("Expected a takeover notice for Carol, got %v", byRecipient)
	}

	if byRecipient["bob@example.com"] != "Shift cancelled (no-show)" {
		t.Fatalf("Expected a no-show notice for Bob, got %v", byRecipient)
	}
}

func TestShiftAckFallsBackToAdmin(t *testing.T) {
	db, _ := setupEscalationTest(t, "./shift_ack_admin_test.db")

	noShow := seedOperator(t, db, "Bob", "bob@example.com")

	admin := &models.User{Name: "Root", Email: "admin@example.com", Role: models.RoleAdmin}

	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("Expected no error creating admin, got %v", err)
	}

	pending := models.ShiftAckPending

	shift := seedShift(t, db, noShow.ID, "ops", 3*time.Minute, &pending)

	if err := testShiftAckSweeper(t, db).Run(); err != nil {
		t.Fatalf("Expected no error sweeping, got %v", err)
	}

	var updated models.ShiftAssignment

	if err := db.First(&updated, shift.ID).Error; err != nil {
		t.Fatalf("Expected no error reading shift, got %v", err)
	}

	if updated.UserID != admin.ID {
		t.Fatalf("Expected the admin to take over, got user %d", updated.UserID)
	}
}

func TestShiftAckSkipsWhenNobodyCanTakeOver(t *testing.T) {
	db, _ := setupEscalationTest(t, "./shift_ack_nobody_test.db")

	noShow := seedOperator(t, db, "Bob", "bob@example.com")

	pending := models.ShiftAckPending

	shift := seedShift(t, db, noShow.ID, "ops", 3*time.Minute, &pending)

	if err := testShiftAckSweeper(t, db).Run(); err != nil {
		t.Fatalf("Expected the sweep to tolerate an empty roster, got %v", err)
	}

	var updated models.ShiftAssignment

	if err := db.First(&updated, shift.ID).Error; err != nil {
		t.Fatalf("Expected no error reading shift, got %v", err)
	}

	if updated.UserID != noShow.ID {
		t.Fatalf("Expected the shift untouched, got user %d", updated.UserID)
	}
}

func TestShiftAckIgnoresConfirmedAndDistantShifts(t *testing.T) {
	db, _ := setupEscalationTest(t, "./shift_ack_ignore_test.db")

	bob := seedOperator(t, db, "Bob", "bob@example.com")
	carol := seedOperator(t, db, "Carol", "carol@example.com")

	acked := models.ShiftAckAcked
	pending := models.ShiftAckPending

	confirmed := seedShift(t, db, bob.ID, "ops", 3*time.Minute, &acked)
	distant := seedShift(t, db, bob.ID, "ops", 2*time.Hour, &pending)

	seedShift(t, db, carol.ID, "ops", 8*time.Hour, nil)

	if err := testShiftAckSweeper(t, db).Run(); err != nil {
		t.Fatalf("Expected no error sweeping, got %v", err)
	}

	for _, id := range []uint{confirmed.ID, distant.ID} {
		var shift models.ShiftAssignment

		if err := db.First(&shift, id).Error; err != nil {
			t.Fatalf("Expected no error reading shift, got %v", err)
		}

		if shift.UserID != bob.ID {
			t.Fatalf("Expected shift %d untouched, got user %d", id, shift.UserID)
		}
	}
}
