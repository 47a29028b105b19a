package approvalapimodels

import (
	"time"

	"github.com/pkg/errors"
	"procure-ops-backend/models"
	dbmodels "procure-ops-backend/models/db"
)

type ApprovalCreateData struct {
	PurchaseOrderID *string                    `json:"purchase_order_id,omitempty"`
	TaskID          *string                    `json:"task_id,omitempty"`
	RequestType     models.ApprovalRequestType `json:"request_type"`
	Amount          float64                    `json:"amount"`
	RequesterID     *string                    `json:"requester_id,omitempty"`
	Comments        string                     `json:"comments,omitempty"`
}

func (d ApprovalCreateData) Validate() error {
	if d.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return d.RequestType.Validate()
}

type ApprovalProcessData struct {
	ApprovalID      string                `json:"approval_id"`
	Action          models.ApprovalAction `json:"action"`
	ApproverID      string                `json:"approver_id"`
	ApproverName    string                `json:"approver_name"`
	Comments        string                `json:"comments,omitempty"`
	RejectionReason string                `json:"rejection_reason,omitempty"`
}

func (d ApprovalProcessData) Validate() error {
	if d.ApprovalID == "" {
		return errors.New("approval_id is required")
	}
	if d.ApproverID == "" {
		return errors.New("approver_id is required")
	}
	if d.ApproverName == "" {
		return errors.New("approver_name is required")
	}
	return d.Action.Validate()
}

type ApprovalChainEntryView struct {
	Level    int                   `json:"level"`
	Approver string                `json:"approver"`
	Status   models.ApprovalStatus `json:"status"`
}

type ApprovalRequestView struct {
	ID                   string                     `json:"id"`
	PurchaseOrderID      *string                    `json:"purchase_order_id,omitempty"`
	TaskID               *string                    `json:"task_id,omitempty"`
	RequesterID          *string                    `json:"requester_id,omitempty"`
	RequestType          models.ApprovalRequestType `json:"request_type"`
	Amount               float64                    `json:"amount"`
	Status               models.ApprovalStatus      `json:"status"`
	CurrentApproverLevel int                        `json:"current_approver_level"`
	MaxApprovalLevel     int                        `json:"max_approval_level"`
	ApprovalChain        []ApprovalChainEntryView   `json:"approval_chain"`
	Comments             string                     `json:"comments,omitempty"`
	RejectionReason      string                     `json:"rejection_reason,omitempty"`
	ApprovedAt           *time.Time                 `json:"approved_at,omitempty"`
	ApprovedBy           *string                    `json:"approved_by,omitempty"`
	CreatedAt            time.Time                  `json:"created_at"`
}

func ApprovalRequestConvert(rec dbmodels.ApprovalRequest) ApprovalRequestView {
	chain := make([]ApprovalChainEntryView, 0, len(rec.ApprovalChain))
	for _, entry := range rec.ApprovalChain {
		chain = append(chain, ApprovalChainEntryView{
			Level:    entry.Level,
			Approver: entry.Approver,
			Status:   entry.Status,
		})
	}
	return ApprovalRequestView{
		ID:                   rec.ID,
		PurchaseOrderID:      rec.PurchaseOrderID,
		TaskID:               rec.TaskID,
		RequesterID:          rec.RequesterID,
		RequestType:          rec.RequestType,
		Amount:               rec.Amount,
		Status:               rec.Status,
		CurrentApproverLevel: rec.CurrentApproverLevel,
		MaxApprovalLevel:     rec.MaxApprovalLevel,
		ApprovalChain:        chain,
		Comments:             rec.Comments,
		RejectionReason:      rec.RejectionReason,
		ApprovedAt:           rec.ApprovedAt,
		ApprovedBy:           rec.ApprovedBy,
		CreatedAt:            rec.CreatedAt,
	}
}

type ApprovalHistoryView struct {
	ID            string                `json:"id"`
	ApproverID    string                `json:"approver_id"`
	ApproverName  string                `json:"approver_name"`
	ApprovalLevel int                   `json:"approval_level"`
	Action        models.ApprovalAction `json:"action"`
	Comments      string                `json:"comments,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

func ApprovalHistoryConvert(rec dbmodels.ApprovalHistory) ApprovalHistoryView {
	return ApprovalHistoryView{
		ID:            rec.ID,
		ApproverID:    rec.ApproverID,
		ApproverName:  rec.ApproverName,
		ApprovalLevel: rec.ApprovalLevel,
		Action:        rec.Action,
		Comments:      rec.Comments,
		CreatedAt:     rec.CreatedAt,
	}
}
