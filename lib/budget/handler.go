package budgethandler

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	approvalhandler "procure-ops-backend/lib/approval"
	budgetstore "procure-ops-backend/lib/budget/store"
	inventorystore "procure-ops-backend/lib/inventory/store"
	purchaseorderstore "procure-ops-backend/lib/purchase-order/store"
	vendorstore "procure-ops-backend/lib/vendors/store"
	"procure-ops-backend/models"
	approvalapimodels "procure-ops-backend/models/api/approval"
	procurementapimodels "procure-ops-backend/models/api/procurement"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	Create(data procurementapimodels.BudgetData) (id string, err error)
	Status() ([]procurementapimodels.BudgetView, error)
	CheckLimit(category string, amount float64) (*procurementapimodels.BudgetCheckResult, error)
	// CreatePurchaseOrder writes the draft order, books the spend against
	// the category budget and opens the matching approval request.
	CreatePurchaseOrder(data procurementapimodels.PurchaseOrderCreateData) (*procurementapimodels.PurchaseOrderView, *approvalapimodels.ApprovalRequestView, error)
	ListPurchaseOrders() ([]procurementapimodels.PurchaseOrderView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, approvalhandler.Instance)
}

func NewInstance(DB *gorm.DB, approvals approvalhandler.Provider) Provider {
	return impl{
		db:        DB,
		store:     budgetstore.NewInstance(DB),
		poStore:   purchaseorderstore.NewInstance(DB),
		invStore:  inventorystore.NewInstance(DB),
		vendStore: vendorstore.NewInstance(DB),
		approvals: approvals,
	}
}

type impl struct {
	db        *gorm.DB
	store     budgetstore.Provider
	poStore   purchaseorderstore.Provider
	invStore  inventorystore.Provider
	vendStore vendorstore.Provider
	approvals approvalhandler.Provider
}

func (i impl) Create(data procurementapimodels.BudgetData) (string, error) {
	return i.store.Create(dbmodels.Budget{
		Category:     data.Category,
		MonthlyLimit: data.MonthlyLimit,
		PeriodStart:  data.PeriodStart,
		PeriodEnd:    data.PeriodEnd,
	})
}

func (i impl) Status() ([]procurementapimodels.BudgetView, error) {
	list, err := i.store.ListActive(time.Now())
	if err != nil {
		return nil, err
	}
	result := make([]procurementapimodels.BudgetView, 0, len(list))
	for _, rec := range list {
		result = append(result, budgetView(rec))
	}
	return result, nil
}

func budgetView(rec dbmodels.Budget) procurementapimodels.BudgetView {
	utilization := 0.0
	if rec.MonthlyLimit > 0 {
		utilization = rec.CurrentSpend / rec.MonthlyLimit * 100
	}
	return procurementapimodels.BudgetView{
		ID:                 rec.ID,
		Category:           rec.Category,
		MonthlyLimit:       rec.MonthlyLimit,
		CurrentSpend:       rec.CurrentSpend,
		RemainingBudget:    rec.MonthlyLimit - rec.CurrentSpend,
		UtilizationPercent: utilization,
		PeriodStart:        rec.PeriodStart,
		PeriodEnd:          rec.PeriodEnd,
	}
}

func (i impl) CheckLimit(category string, amount float64) (*procurementapimodels.BudgetCheckResult, error) {
	budget, err := i.findActive(category)
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return &procurementapimodels.BudgetCheckResult{
			Allowed:   true,
			Remaining: 0,
			Message:   fmt.Sprintf("No budget configured for category %q", category),
		}, nil
	}
	remaining := budget.MonthlyLimit - budget.CurrentSpend
	if amount > remaining {
		return &procurementapimodels.BudgetCheckResult{
			Allowed:   false,
			Remaining: remaining,
			Message:   fmt.Sprintf("Amount %.2f exceeds remaining budget %.2f for %q", amount, remaining, category),
		}, nil
	}
	return &procurementapimodels.BudgetCheckResult{
		Allowed:   true,
		Remaining: remaining - amount,
		Message:   fmt.Sprintf("Within budget, %.2f remains after this purchase", remaining-amount),
	}, nil
}

func (i impl) findActive(category string) (*dbmodels.Budget, error) {
	list, err := i.store.ListActive(time.Now())
	if err != nil {
		return nil, errors.Wrap(err, "budget lookup failed")
	}
	for pos := range list {
		if strings.EqualFold(list[pos].Category, category) {
			return &list[pos], nil
		}
	}
	return nil, nil
}

func (i impl) CreatePurchaseOrder(data procurementapimodels.PurchaseOrderCreateData) (*procurementapimodels.PurchaseOrderView, *approvalapimodels.ApprovalRequestView, error) {
	item, err := i.invStore.GetByID(data.InventoryID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "inventory lookup failed")
	}
	if item == nil {
		return nil, nil, errors.Wrap(models.ErrNotFound, "inventory item")
	}
	vendor, err := i.vendStore.GetByID(data.VendorID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "vendor lookup failed")
	}
	if vendor == nil {
		return nil, nil, errors.Wrap(models.ErrNotFound, "vendor")
	}

	total := data.Quantity * data.UnitPrice
	check, err := i.CheckLimit(item.Category, total)
	if err != nil {
		return nil, nil, err
	}
	budget, err := i.findActive(item.Category)
	if err != nil {
		return nil, nil, err
	}

	rec := dbmodels.PurchaseOrder{
		TaskID:               data.TaskID,
		VendorID:             vendor.ID,
		InventoryID:          item.ID,
		Quantity:             data.Quantity,
		UnitPrice:            data.UnitPrice,
		TotalCost:            total,
		Status:               models.POStatusDraft,
		ExpectedDeliveryDate: data.ExpectedDeliveryDate,
	}
	err = i.db.Transaction(func(tx *gorm.DB) error {
		id, err := purchaseorderstore.NewInstance(tx).Create(rec)
		if err != nil {
			return errors.Wrap(err, "purchase order creation failed")
		}
		rec.ID = id
		if budget != nil && check.Allowed {
			err = tx.Model(&dbmodels.Budget{}).
				Where("id = ?", budget.ID).
				Update("current_spend", gorm.Expr("current_spend + ?", total)).
				Error
			if err != nil {
				return errors.Wrap(err, "budget spend update failed")
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	approval, err := i.approvals.Create(approvalapimodels.ApprovalCreateData{
		PurchaseOrderID: &rec.ID,
		TaskID:          data.TaskID,
		RequestType:     requestTypeFor(total, check.Allowed),
		Amount:          total,
		Comments:        fmt.Sprintf("%v x %s from %s. %s", data.Quantity, item.ItemName, vendor.Name, check.Message),
	})
	if err != nil {
		return nil, nil, errors.Wrap(err, "approval request creation failed")
	}
	log.
		WithField("purchase_order_id", rec.ID).
		WithField("total_cost", total).
		WithField("approval_id", approval.ID).
		Info("purchase order created")

	rec.Vendor = vendor
	rec.Inventory = item
	view := procurementapimodels.PurchaseOrderConvert(rec)
	return &view, approval, nil
}

func requestTypeFor(total float64, withinBudget bool) models.ApprovalRequestType {
	if !withinBudget {
		return models.ApprovalTypeBudgetOverride
	}
	if total > 50000 {
		return models.ApprovalTypeHighValuePurchase
	}
	return models.ApprovalTypePurchaseOrder
}

func (i impl) ListPurchaseOrders() ([]procurementapimodels.PurchaseOrderView, error) {
	list, err := i.poStore.List()
	if err != nil {
		return nil, err
	}
	result := make([]procurementapimodels.PurchaseOrderView, 0, len(list))
	for _, rec := range list {
		result = append(result, procurementapimodels.PurchaseOrderConvert(rec))
	}
	return result, nil
}
