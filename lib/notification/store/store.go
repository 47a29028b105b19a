package notificationstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Notification) (id string, err error)
	GetByID(id string) (rec *dbmodels.Notification, err error)
	// List returns user notifications, or system-wide ones when userID is nil.
	List(userID *string, unreadOnly bool, limit int) (list []dbmodels.Notification, err error)
	MarkRead(id string) error
	MarkAllRead(userID *string) error
	UnreadCount(userID *string) (count int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Notification, error) {
	rec := dbmodels.Notification{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) List(userID *string, unreadOnly bool, limit int) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	tx := i.db.
		Order("created_at DESC").
		Limit(limit)
	tx = byUser(tx, userID)
	if unreadOnly {
		tx = tx.Where("read = ?", false)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) MarkRead(id string) error {
	now := time.Now()
	return i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": &now,
		}).
		Error
}

func (i impl) MarkAllRead(userID *string) error {
	now := time.Now()
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("read = ?", false)
	tx = byUser(tx, userID)
	return tx.Updates(map[string]interface{}{
		"read":    true,
		"read_at": &now,
	}).Error
}

func (i impl) UnreadCount(userID *string) (count int64, err error) {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("read = ?", false)
	tx = byUser(tx, userID)
	err = tx.Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func byUser(tx *gorm.DB, userID *string) *gorm.DB {
	if userID != nil {
		return tx.Where("user_id = ?", *userID)
	}
	return tx.Where("user_id IS NULL")
}
