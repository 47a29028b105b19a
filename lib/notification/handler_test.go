package notificationhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	"procure-ops-backend/models"
)

type sentMail struct {
	to      string
	subject string
	message string
}

type stubSender struct {
	sent []sentMail
}

func (s *stubSender) SendEMail(from, to, message, subject string) error {
	s.sent = append(s.sent, sentMail{to: to, subject: subject, message: message})
	return nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

func TestNeedsEmail(t *testing.T) {
	cases := []struct {
		name     string
		nType    models.NotificationType
		priority models.NotificationPriority
		want     bool
	}{
		{"high priority", models.NotificationTypeSystem, models.NotificationPriorityHigh, true},
		{"critical priority", models.NotificationTypeSystem, models.NotificationPriorityCritical, true},
		{"alert type at low priority", models.NotificationTypeInventoryAlert, models.NotificationPriorityLow, true},
		{"request type at low priority", models.NotificationTypeApprovalReq, models.NotificationPriorityLow, true},
		{"plain medium notification", models.NotificationTypeTaskAssignment, models.NotificationPriorityMedium, false},
		{"plain low notification", models.NotificationTypeSystem, models.NotificationPriorityLow, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, needsEmail(tc.nType, tc.priority))
		})
	}
}

func TestNotify(t *testing.T) {
	t.Run("urgent notification goes out by email", func(t *testing.T) {
		conn := openTestDB(t)
		sender := &stubSender{}
		handler := NewInstance(conn, sender, "ops@example.com")

		id, err := handler.Notify(nil, models.NotificationTypeSystem, "Disk full", "The report volume is full",
			nil, models.NotificationPriorityCritical, nil)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		require.Len(t, sender.sent, 1)
		require.Equal(t, "ops@example.com", sender.sent[0].to)
		require.Equal(t, "CRITICAL - Disk full", sender.sent[0].subject)
	})

	t.Run("routine notification stays in app", func(t *testing.T) {
		conn := openTestDB(t)
		sender := &stubSender{}
		handler := NewInstance(conn, sender, "ops@example.com")

		_, err := handler.Notify(nil, models.NotificationTypeSystem, "Nightly report ready", "Done",
			nil, models.NotificationPriorityLow, nil)
		require.NoError(t, err)
		require.Empty(t, sender.sent)
	})

	t.Run("missing sender never fails the write", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil, "")

		id, err := handler.Notify(nil, models.NotificationTypeInventoryAlert, "Inventory Alert", "Steel is low",
			nil, models.NotificationPriorityHigh, nil)
		require.NoError(t, err)
		require.NotEmpty(t, id)
	})
}

func TestReadTracking(t *testing.T) {
	conn := openTestDB(t)
	handler := NewInstance(conn, nil, "")
	userID := "emp-1"

	first, err := handler.Notify(&userID, models.NotificationTypeTaskAssignment, "Task Assignment", "Restock steel",
		nil, models.NotificationPriorityMedium, nil)
	require.NoError(t, err)
	_, err = handler.Notify(&userID, models.NotificationTypeSystem, "Welcome", "Hello",
		nil, models.NotificationPriorityLow, nil)
	require.NoError(t, err)

	count, err := handler.UnreadCount(&userID)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)

	hMsg, err := handler.MarkRead(first)
	require.NoError(t, err)
	require.Empty(t, hMsg)

	count, err = handler.UnreadCount(&userID)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	unread, err := handler.List(&userID, true, 10)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, "Welcome", unread[0].Title)

	require.NoError(t, handler.MarkAllRead(&userID))
	count, err = handler.UnreadCount(&userID)
	require.NoError(t, err)
	require.Equal(t, int64(0), count)

	t.Run("unknown id reports a message", func(t *testing.T) {
		hMsg, err := handler.MarkRead("no-such-id")
		require.NoError(t, err)
		require.Equal(t, "notification not found", hMsg)
	})
}

func TestSendInventoryAlert(t *testing.T) {
	conn := openTestDB(t)
	sender := &stubSender{}
	handler := NewInstance(conn, sender, "ops@example.com")

	handler.SendInventoryAlert("inv-1", "Steel sheets", 2, 50, models.RiskLevelCritical)

	list, err := handler.List(nil, false, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, models.NotificationTypeInventoryAlert, list[0].Type)
	require.Equal(t, models.NotificationPriorityCritical, list[0].Priority)
	require.Contains(t, list[0].Message, "CRITICALLY LOW")

	require.Len(t, sender.sent, 1)
	require.Contains(t, sender.sent[0].message, "Steel sheets")
}
