package dbmodels

import (
	"time"

	"procure-ops-backend/models"
)

type Notification struct {
	BaseModel
	UserID   *string                 `gorm:"type:varchar(36);index"` // nil = system-wide
	Type     models.NotificationType `gorm:"type:varchar(100)"`
	Title    string                  `gorm:"type:varchar(255)"`
	Message  string
	Link     *string                     `gorm:"type:varchar(255)"`
	Read     bool                        `gorm:"index"`
	ReadAt   *time.Time
	Priority models.NotificationPriority `gorm:"type:varchar(100)"`
	Metadata Metadata                    `gorm:"type:jsonb"`
}

func (Notification) TableName() string {
	return "notifications"
}
