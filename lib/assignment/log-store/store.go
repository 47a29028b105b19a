package assignmentlogstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "procure-ops-backend/models/db"
)

// Append-only audit log, one row per successful assignment.
type Provider interface {
	Create(rec dbmodels.AssignmentLog) (id string, err error)
	List() (list []dbmodels.AssignmentLog, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.AssignmentLog) (id string, err error) {
	err = i.db.
		Omit("Task", "Employee").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List() (list []dbmodels.AssignmentLog, err error) {
	list = []dbmodels.AssignmentLog{}
	err = i.db.
		Order("created_at DESC").
		Preload("Task").
		Preload("Employee").
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
