package inventorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"procure-ops-backend/models"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.InventoryItem) (id string, err error)
	GetByID(id string) (rec *dbmodels.InventoryItem, err error)
	Update(id string, updMap map[string]interface{}) error
	List() (list []dbmodels.InventoryItem, err error)
	ListByStatuses(statuses []models.InventoryStatus) (list []dbmodels.InventoryItem, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.InventoryItem) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.InventoryItem, error) {
	rec := dbmodels.InventoryItem{}
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.InventoryItem{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List() (list []dbmodels.InventoryItem, err error) {
	list = []dbmodels.InventoryItem{}
	err = i.db.
		Order("item_name ASC").
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

func (i impl) ListByStatuses(statuses []models.InventoryStatus) (list []dbmodels.InventoryItem, err error) {
	list = []dbmodels.InventoryItem{}
	err = i.db.
		Where("status IN ?", statuses).
		Order("current_stock ASC").
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
