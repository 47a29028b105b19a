package approvalhistorystore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "procure-ops-backend/models/db"
)

// Append-only decision trail, one row per processed decision.
type Provider interface {
	Create(rec dbmodels.ApprovalHistory) (id string, err error)
	List(approvalRequestID string) (list []dbmodels.ApprovalHistory, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalHistory) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(approvalRequestID string) (list []dbmodels.ApprovalHistory, err error) {
	list = []dbmodels.ApprovalHistory{}
	err = i.db.
		Where("approval_request_id = ?", approvalRequestID).
		Order("created_at ASC").
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
