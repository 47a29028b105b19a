package notificationapimodels

import (
	"time"

	"procure-ops-backend/models"
	dbmodels "procure-ops-backend/models/db"
)

type NotificationView struct {
	ID        string                      `json:"id"`
	UserID    *string                     `json:"user_id,omitempty"`
	Type      models.NotificationType     `json:"type"`
	Title     string                      `json:"title"`
	Message   string                      `json:"message"`
	Link      *string                     `json:"link,omitempty"`
	Read      bool                        `json:"read"`
	ReadAt    *time.Time                  `json:"read_at,omitempty"`
	Priority  models.NotificationPriority `json:"priority"`
	Metadata  map[string]any              `json:"metadata,omitempty"`
	CreatedAt time.Time                   `json:"created_at"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Type:      rec.Type,
		Title:     rec.Title,
		Message:   rec.Message,
		Link:      rec.Link,
		Read:      rec.Read,
		ReadAt:    rec.ReadAt,
		Priority:  rec.Priority,
		Metadata:  rec.Metadata,
		CreatedAt: rec.CreatedAt,
	}
}
