package approvalhandler

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	approvalhistorystore "procure-ops-backend/lib/approval/history-store"
	approvalstore "procure-ops-backend/lib/approval/store"
	notificationhandler "procure-ops-backend/lib/notification"
	purchaseorderstore "procure-ops-backend/lib/purchase-order/store"
	"procure-ops-backend/models"
	approvalapimodels "procure-ops-backend/models/api/approval"
	dbmodels "procure-ops-backend/models/db"
)

// Amount thresholds that decide how many sign-offs a request needs.
const (
	directorThreshold = 10000
	cfoThreshold      = 50000
)

type Provider interface {
	Create(data approvalapimodels.ApprovalCreateData) (*approvalapimodels.ApprovalRequestView, error)
	// Process applies one approver decision. A request that already left
	// Pending yields models.ErrAlreadyProcessed, a decision that lost a
	// race for the same level yields models.ErrConflict.
	Process(data approvalapimodels.ApprovalProcessData) (*approvalapimodels.ApprovalRequestView, error)
	GetByID(id string) (*approvalapimodels.ApprovalRequestView, error)
	ListPending() ([]approvalapimodels.ApprovalRequestView, error)
	History(approvalID string) ([]approvalapimodels.ApprovalHistoryView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, notificationhandler.Instance)
}

func NewInstance(DB *gorm.DB, notifier notificationhandler.Provider) Provider {
	return impl{
		db:           DB,
		store:        approvalstore.NewInstance(DB),
		historyStore: approvalhistorystore.NewInstance(DB),
		notifier:     notifier,
	}
}

type impl struct {
	db           *gorm.DB
	store        approvalstore.Provider
	historyStore approvalhistorystore.Provider
	notifier     notificationhandler.Provider
}

// MaxApprovalLevels returns how many chain levels an amount requires.
func MaxApprovalLevels(amount float64) int {
	switch {
	case amount > cfoThreshold:
		return 3
	case amount > directorThreshold:
		return 2
	}
	return 1
}

// BuildChain lays out the pending sign-off chain for the given depth.
func BuildChain(maxLevel int) dbmodels.ApprovalChain {
	chain := make(dbmodels.ApprovalChain, 0, maxLevel)
	for level := 1; level <= maxLevel; level++ {
		chain = append(chain, dbmodels.ApprovalChainEntry{
			Level:    level,
			Approver: models.ApproverRoleForLevel(level),
			Status:   models.ApprovalStatusPending,
		})
	}
	return chain
}

func (i impl) Create(data approvalapimodels.ApprovalCreateData) (*approvalapimodels.ApprovalRequestView, error) {
	maxLevel := MaxApprovalLevels(data.Amount)
	rec := dbmodels.ApprovalRequest{
		PurchaseOrderID:      data.PurchaseOrderID,
		TaskID:               data.TaskID,
		RequesterID:          data.RequesterID,
		RequestType:          data.RequestType,
		Amount:               data.Amount,
		Status:               models.ApprovalStatusPending,
		CurrentApproverLevel: 1,
		MaxApprovalLevel:     maxLevel,
		ApprovalChain:        BuildChain(maxLevel),
		Comments:             data.Comments,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return nil, errors.Wrap(err, "approval request creation failed")
	}
	rec.ID = id
	log.
		WithField("approval_id", id).
		WithField("amount", data.Amount).
		WithField("max_level", maxLevel).
		Info("approval request created")

	if i.notifier != nil {
		link := "/approvals"
		message := fmt.Sprintf("%s for %.2f awaits %s approval", data.RequestType, data.Amount, models.ApproverRoleForLevel(1))
		_, nErr := i.notifier.Notify(nil, models.NotificationTypeApprovalReq, "Approval Required", message, &link,
			models.NotificationPriorityHigh, map[string]any{"approval_id": id})
		if nErr != nil {
			log.WithError(nErr).Error("approval request notification failed")
		}
	}

	view := approvalapimodels.ApprovalRequestConvert(rec)
	return &view, nil
}

func (i impl) Process(data approvalapimodels.ApprovalProcessData) (*approvalapimodels.ApprovalRequestView, error) {
	rec, err := i.store.GetByID(data.ApprovalID)
	if err != nil {
		return nil, errors.Wrap(err, "approval lookup failed")
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	if rec.Status != models.ApprovalStatusPending {
		return nil, models.ErrAlreadyProcessed
	}

	level := rec.CurrentApproverLevel
	updMap, finalStatus := decisionUpdate(*rec, data)

	err = i.db.Transaction(func(tx *gorm.DB) error {
		txStore := approvalstore.NewInstance(tx)
		rows, err := txStore.UpdateGuarded(rec.ID, level, updMap)
		if err != nil {
			return errors.Wrap(err, "approval update failed")
		}
		if rows == 0 {
			return models.ErrConflict
		}
		_, err = approvalhistorystore.NewInstance(tx).Create(dbmodels.ApprovalHistory{
			ApprovalRequestID: rec.ID,
			ApproverID:        data.ApproverID,
			ApproverName:      data.ApproverName,
			ApprovalLevel:     level,
			Action:            data.Action,
			Comments:          data.Comments,
		})
		if err != nil {
			return errors.Wrap(err, "approval history write failed")
		}
		if finalStatus != "" && rec.PurchaseOrderID != nil {
			poStatus := models.POStatusApproved
			if finalStatus == models.ApprovalStatusRejected {
				poStatus = models.POStatusCancelled
			}
			err = purchaseorderstore.NewInstance(tx).Update(*rec.PurchaseOrderID,
				map[string]interface{}{"status": poStatus})
			if err != nil {
				return errors.Wrap(err, "purchase order status update failed")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	updated, err := i.store.GetByID(rec.ID)
	if err != nil || updated == nil {
		return nil, errors.Wrap(err, "approval reload failed")
	}
	log.
		WithField("approval_id", rec.ID).
		WithField("action", data.Action).
		WithField("level", level).
		WithField("status", updated.Status).
		Info("approval decision processed")

	if finalStatus != "" {
		i.notifyDecision(*updated, finalStatus)
	} else {
		i.notifyNextApprover(*updated)
	}

	view := approvalapimodels.ApprovalRequestConvert(*updated)
	return &view, nil
}

func (i impl) notifyNextApprover(rec dbmodels.ApprovalRequest) {
	if i.notifier == nil {
		return
	}
	link := "/approvals"
	message := fmt.Sprintf("%s for %.2f awaits %s approval", rec.RequestType, rec.Amount,
		models.ApproverRoleForLevel(rec.CurrentApproverLevel))
	_, err := i.notifier.Notify(nil, models.NotificationTypeApprovalReq, "Approval Required", message, &link,
		models.NotificationPriorityHigh, map[string]any{"approval_id": rec.ID})
	if err != nil {
		log.WithError(err).Error("next approver notification failed")
	}
}

// decisionUpdate computes the column updates for one decision and, when
// the decision closes the request, the final status.
func decisionUpdate(rec dbmodels.ApprovalRequest, data approvalapimodels.ApprovalProcessData) (map[string]interface{}, models.ApprovalStatus) {
	level := rec.CurrentApproverLevel
	chain := make(dbmodels.ApprovalChain, len(rec.ApprovalChain))
	copy(chain, rec.ApprovalChain)
	for pos := range chain {
		if chain[pos].Level == level {
			chain[pos].Status = models.ApprovalStatus(data.Action)
		}
	}

	if data.Action == models.ApprovalActionRejected {
		reason := data.RejectionReason
		if reason == "" {
			reason = data.Comments
		}
		return map[string]interface{}{
			"status":           models.ApprovalStatusRejected,
			"rejection_reason": reason,
			"approval_chain":   chain,
		}, models.ApprovalStatusRejected
	}
	if level < rec.MaxApprovalLevel {
		return map[string]interface{}{
			"current_approver_level": level + 1,
			"approval_chain":         chain,
		}, ""
	}
	now := time.Now()
	return map[string]interface{}{
		"status":         models.ApprovalStatusApproved,
		"approved_at":    now,
		"approved_by":    data.ApproverID,
		"approval_chain": chain,
	}, models.ApprovalStatusApproved
}

func (i impl) notifyDecision(rec dbmodels.ApprovalRequest, finalStatus models.ApprovalStatus) {
	if i.notifier == nil {
		return
	}
	priority := models.NotificationPriorityMedium
	message := fmt.Sprintf("%s for %.2f was approved", rec.RequestType, rec.Amount)
	if finalStatus == models.ApprovalStatusRejected {
		priority = models.NotificationPriorityHigh
		message = fmt.Sprintf("%s for %.2f was rejected: %s", rec.RequestType, rec.Amount, rec.RejectionReason)
	}
	link := "/approvals"
	_, err := i.notifier.Notify(rec.RequesterID, models.NotificationTypeApprovalStatus, "Approval Decision",
		message, &link, priority, map[string]any{"approval_id": rec.ID})
	if err != nil {
		log.WithError(err).Error("approval decision notification failed")
	}
}

func (i impl) GetByID(id string) (*approvalapimodels.ApprovalRequestView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	view := approvalapimodels.ApprovalRequestConvert(*rec)
	return &view, nil
}

func (i impl) ListPending() ([]approvalapimodels.ApprovalRequestView, error) {
	list, err := i.store.ListPending()
	if err != nil {
		return nil, err
	}
	result := make([]approvalapimodels.ApprovalRequestView, 0, len(list))
	for _, rec := range list {
		result = append(result, approvalapimodels.ApprovalRequestConvert(rec))
	}
	return result, nil
}

func (i impl) History(approvalID string) ([]approvalapimodels.ApprovalHistoryView, error) {
	list, err := i.historyStore.List(approvalID)
	if err != nil {
		return nil, err
	}
	result := make([]approvalapimodels.ApprovalHistoryView, 0, len(list))
	for _, rec := range list {
		result = append(result, approvalapimodels.ApprovalHistoryConvert(rec))
	}
	return result, nil
}
