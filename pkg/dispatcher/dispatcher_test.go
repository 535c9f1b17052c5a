package dispatcher

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/oncall-dev/monitor-agent/internal/adapter"
	"github.com/oncall-dev/monitor-agent/internal/envconf"
	"github.com/oncall-dev/monitor-agent/internal/logger"
	"github.com/oncall-dev/monitor-agent/internal/models"
	"github.com/oncall-dev/monitor-agent/internal/repository"
	"github.com/oncall-dev/monitor-agent/pkg/pushclient"
	"gorm.io/gorm"
)

type fakeMailer struct {
	sent []string
	fail bool
}

func (f *fakeMailer) Send(to []string, subject, body string) error {
	if f.fail {
		return fmt.Errorf("smtp unreachable")
	}

	f.sent = append(f.sent, to[0])

	return nil
}

func setupDispatcherTest(t *testing.T, dbFileName string) (*Dispatcher, *gorm.DB, *repository.Repository, *fakeMailer) {
	t.Helper()

	db, err := adapter.New(&envconf.DBConf{
		SQLLite:     true,
		SQLLitePath: dbFileName,
	})

	if err != nil {
		t.Fatalf("%v\n", err)
	}

	if err := repository.AutoMigrate(db, false); err != nil {
		t.Fatalf("%v\n", err)
	}

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Cleanup(func() {
		gateway.Close()
		os.Remove(dbFileName)
	})

	sender := &fakeMailer{}

	d := &Dispatcher{
		DB:     db,
		Mailer: sender,
		Push:   pushclient.NewClient(gateway.URL),
		Logger: logger.New(false, io.Discard),
	}

	return d, db, repository.NewRepository(db), sender
}

func TestRunDrainsQueue(t *testing.T) {
	d, db, repo, sender := setupDispatcherTest(t, "./dispatcher_drain_test.db")

	for _, recipient := range []string{"alice@example.com", "bob@example.com"} {
		notification := &models.Notification{
			Channel:   models.NotificationChannelEmail,
			Recipient: recipient,
			Title:     "ACTION REQUIRED",
			Message:   "Your turn.",
			Status:    models.NotificationStatusPending,
		}

		if err := db.Create(notification).Error; err != nil {
			t.Fatalf("Expected no error creating notification, got %v", err)
		}
	}

	if err := d.Run(); err != nil {
		t.Fatalf("Expected no error draining queue, got %v", err)
	}

	if len(sender.sent) != 2 {
		t.Fatalf("Expected 2 emails sent, got %d", len(sender.sent))
	}

	if sender.sent[0] != "alice@example.com" || sender.sent[1] != "bob@example.com" {
		t.Fatalf("Expected queue order preserved, got %v", sender.sent)
	}

	pending, err := repo.Notification.ListPendingNotifications()

	if err != nil {
		t.Fatalf("Expected no error listing notifications, got %v", err)
	}

	if len(pending) != 0 {
		t.Fatalf("Expected an empty queue after the drain, got %d rows", len(pending))
	}

	var sent int64

	if err := db.Model(&models.Notification{}).Where("status = ?", models.NotificationStatusSent).Count(&sent).Error; err != nil {
		t.Fatalf("Expected no error counting rows, got %v", err)
	}

	if sent != 2 {
		t.Fatalf("Expected 2 rows marked SENT, got %d", sent)
	}
}

// Delivery failures do not keep the row pending: each notification gets
// exactly one attempt.
func TestRunMarksSentOnMailFailure(t *testing.T) {
	d, db, repo, sender := setupDispatcherTest(t, "./dispatcher_fail_test.db")

	sender.fail = true

	notification := &models.Notification{
		Channel:   models.NotificationChannelEmail,
		Recipient: "alice@example.com",
		Message:   "Your turn.",
		Status:    models.NotificationStatusPending,
	}

	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("Expected no error creating notification, got %v", err)
	}

	if err := d.Run(); err != nil {
		t.Fatalf("Expected transport failures to be swallowed, got %v", err)
	}

	pending, err := repo.Notification.ListPendingNotifications()

	if err != nil {
		t.Fatalf("Expected no error listing notifications, got %v", err)
	}

	if len(pending) != 0 {
		t.Fatalf("Expected the row marked SENT despite the failure, got %d pending", len(pending))
	}
}

func TestRunIsIdempotentOnDrainedQueue(t *testing.T) {
	d, db, _, sender := setupDispatcherTest(t, "./dispatcher_idempotent_test.db")

	notification := &models.Notification{
		Channel:   models.NotificationChannelEmail,
		Recipient: "alice@example.com",
		Message:   "Your turn.",
		Status:    models.NotificationStatusPending,
	}

	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("Expected no error creating notification, got %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := d.Run(); err != nil {
			t.Fatalf("Expected no error draining queue, got %v", err)
		}
	}

	if len(sender.sent) != 1 {
		t.Fatalf("Expected exactly one delivery across runs, got %d", len(sender.sent))
	}
}

func TestRunPicksUpLegacyPendingCasing(t *testing.T) {
	d, db, repo, sender := setupDispatcherTest(t, "./dispatcher_casing_test.db")

	notification := &models.Notification{
		Channel:   models.NotificationChannelEmail,
		Recipient: "alice@example.com",
		Message:   "Your turn.",
		Status:    "pending",
	}

	if err := db.Create(notification).Error; err != nil {
		t.Fatalf("Expected no error creating notification, got %v", err)
	}

	if err := d.Run(); err != nil {
		t.Fatalf("Expected no error draining queue, got %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("Expected the lowercase row delivered, got %d", len(sender.sent))
	}

	pending, err := repo.Notification.ListPendingNotifications()

	if err != nil {
		t.Fatalf("Expected no error listing notifications, got %v", err)
	}

	if len(pending) != 0 {
		t.Fatalf("Expected the lowercase row marked SENT, got %d pending", len(pending))
	}
}

func TestTitles(t *testing.T) {
	incidentID := uint(7)

	testCases := []struct {
		name         string
		notification *models.Notification
		subject      string
		pushTitle    string
	}{
		{
			"explicit title wins",
			&models.Notification{Title: "ESCALATION ALERT"},
			"ESCALATION ALERT",
			"ESCALATION ALERT",
		},
		{
			"incident fallback",
			&models.Notification{IncidentID: &incidentID},
			"On-Call Monitor: Incident #7",
			"Incident #7",
		},
		{
			"generic fallback",
			&models.Notification{},
			"On-Call Monitor: New notice",
			"New notice",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			subject, pushTitle := titles(tc.notification)

			if subject != tc.subject || pushTitle != tc.pushTitle {
				t.Fatalf("Expected (%q, %q), got (%q, %q)", tc.subject, tc.pushTitle, subject, pushTitle)
			}
		})
	}
}
