package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"procure-ops-backend/models"
)

type ApprovalChainEntry struct {
	Level    int                   `json:"level"`
	Approver string                `json:"approver"`
	Status   models.ApprovalStatus `json:"status"`
}

// ApprovalChain is frozen once the request leaves Pending.
type ApprovalChain []ApprovalChainEntry

func (c ApprovalChain) Value() (driver.Value, error) {
	if c == nil {
		c = ApprovalChain{}
	}
	valueString, err := json.Marshal(c)
	return string(valueString), err
}

func (c *ApprovalChain) Scan(value any) error {
	return scanJSON(value, c)
}

type ApprovalRequest struct {
	BaseModel
	PurchaseOrderID      *string `gorm:"type:varchar(36)"`
	PurchaseOrder        *PurchaseOrder
	TaskID               *string `gorm:"type:varchar(36)"`
	Task                 *ProcurementTask
	RequesterID          *string                    `gorm:"type:varchar(36)"`
	RequestType          models.ApprovalRequestType `gorm:"type:varchar(100)"`
	Amount               float64
	Status               models.ApprovalStatus `gorm:"type:varchar(100);index"`
	CurrentApproverLevel int
	MaxApprovalLevel     int
	ApprovalChain        ApprovalChain `gorm:"type:jsonb"`
	Comments             string
	RejectionReason      string
	ApprovedAt           *time.Time
	ApprovedBy           *string `gorm:"type:varchar(36)"`
}

func (ApprovalRequest) TableName() string {
	return "approval_requests"
}

type ApprovalHistory struct {
	BaseModel
	ApprovalRequestID string `gorm:"type:varchar(36);index"`
	ApproverID        string `gorm:"type:varchar(36)"`
	ApproverName      string `gorm:"type:varchar(255)"`
	ApprovalLevel     int
	Action            models.ApprovalAction `gorm:"type:varchar(100)"`
	Comments          string
}

func (ApprovalHistory) TableName() string {
	return "approval_history"
}
