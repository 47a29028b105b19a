package budgetstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Budget) (id string, err error)
	// ListActive returns budgets whose period has not ended yet,
	// ordered by category.
	ListActive(today time.Time) (list []dbmodels.Budget, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Budget) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListActive(today time.Time) (list []dbmodels.Budget, err error) {
	list = []dbmodels.Budget{}
	err = i.db.
		Where("period_end >= ?", today).
		Order("category ASC").
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
