package approvalstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"procure-ops-backend/models"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ApprovalRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.ApprovalRequest, err error)
	Update(id string, updMap map[string]interface{}) error
	// UpdateGuarded applies updMap only when the request is still Pending at
	// the given level. Returns the number of rows changed so a lost race is
	// visible to the caller.
	UpdateGuarded(id string, fromLevel int, updMap map[string]interface{}) (rowsAffected int64, err error)
	ListPending() (list []dbmodels.ApprovalRequest, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalRequest) (id string, err error) {
	err = i.db.
		Omit("PurchaseOrder", "Task").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ApprovalRequest, error) {
	rec := dbmodels.ApprovalRequest{}
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
		Model(&dbmodels.ApprovalRequest{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) UpdateGuarded(id string, fromLevel int, updMap map[string]interface{}) (int64, error) {
	tx := i.db.
		Model(&dbmodels.ApprovalRequest{}).
		Where("id = ?", id).
		Where("status = ?", models.ApprovalStatusPending).
		Where("current_approver_level = ?", fromLevel).
		Updates(updMap)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}

func (i impl) ListPending() (list []dbmodels.ApprovalRequest, err error) {
	list = []dbmodels.ApprovalRequest{}
	err = i.db.
		Where("status = ?", models.ApprovalStatusPending).
		Order("created_at DESC").
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
