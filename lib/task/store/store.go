package taskstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ProcurementTask) (id string, err error)
	GetByID(id string) (rec *dbmodels.ProcurementTask, err error)
	Update(id string, updMap map[string]interface{}) error
	List() (list []dbmodels.ProcurementTask, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ProcurementTask) (id string, err error) {
	err = i.db.
		Omit("Assignee").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ProcurementTask, error) {
	rec := dbmodels.ProcurementTask{}
	err := i.db.
		Where("id = ?", id).
		Preload("Assignee").
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
		Model(&dbmodels.ProcurementTask{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List() (list []dbmodels.ProcurementTask, err error) {
	list = []dbmodels.ProcurementTask{}
	err = i.db.
		Order("created_at DESC").
		Preload("Assignee").
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
