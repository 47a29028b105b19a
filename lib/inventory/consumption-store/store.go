package consumptionstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ConsumptionRecord) (id string, err error)
	// ListSince returns records for one item from the given date,
	// newest first.
	ListSince(inventoryID string, since time.Time) (list []dbmodels.ConsumptionRecord, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ConsumptionRecord) (id string, err error) {
	err = i.db.
		Omit("Inventory").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListSince(inventoryID string, since time.Time) (list []dbmodels.ConsumptionRecord, err error) {
	list = []dbmodels.ConsumptionRecord{}
	err = i.db.
		Where("inventory_id = ?", inventoryID).
		Where("consumption_date >= ?", since).
		Order("consumption_date DESC").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
