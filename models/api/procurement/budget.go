package procurementapimodels

import (
	"time"

	"github.com/pkg/errors"
	dbmodels "procure-ops-backend/models/db"
)

type BudgetData struct {
	Category     string    `json:"category"`
	MonthlyLimit float64   `json:"monthly_limit"`
	PeriodStart  time.Time `json:"period_start"`
	PeriodEnd    time.Time `json:"period_end"`
}

func (d BudgetData) Validate() error {
	if d.Category == "" {
		return errors.New("category is required")
	}
	if d.MonthlyLimit <= 0 {
		return errors.New("monthly limit must be positive")
	}
	if !d.PeriodEnd.After(d.PeriodStart) {
		return errors.New("period end must be after period start")
	}
	return nil
}

type BudgetView struct {
	ID                 string    `json:"id"`
	Category           string    `json:"category"`
	MonthlyLimit       float64   `json:"monthly_limit"`
	CurrentSpend       float64   `json:"current_spend"`
	RemainingBudget    float64   `json:"remaining_budget"`
	UtilizationPercent float64   `json:"utilization_percentage"`
	PeriodStart        time.Time `json:"period_start"`
	PeriodEnd          time.Time `json:"period_end"`
}

type BudgetCheckData struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

func (d BudgetCheckData) Validate() error {
	if d.Category == "" {
		return errors.New("category is required")
	}
	if d.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	return nil
}

type BudgetCheckResult struct {
	Allowed   bool    `json:"allowed"`
	Remaining float64 `json:"remaining"`
	Message   string  `json:"message"`
}

type PurchaseOrderCreateData struct {
	TaskID               *string    `json:"task_id,omitempty"`
	VendorID             string     `json:"vendor_id"`
	InventoryID          string     `json:"inventory_id"`
	Quantity             float64    `json:"quantity"`
	UnitPrice            float64    `json:"unit_price"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
}

func (d PurchaseOrderCreateData) Validate() error {
	if d.VendorID == "" {
		return errors.New("vendor_id is required")
	}
	if d.InventoryID == "" {
		return errors.New("inventory_id is required")
	}
	if d.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	if d.UnitPrice < 0 {
		return errors.New("unit price must not be negative")
	}
	return nil
}

type PurchaseOrderView struct {
	ID                   string     `json:"id"`
	TaskID               *string    `json:"task_id,omitempty"`
	VendorID             string     `json:"vendor_id"`
	VendorName           string     `json:"vendor_name,omitempty"`
	InventoryID          string     `json:"inventory_id"`
	ItemName             string     `json:"item_name,omitempty"`
	Quantity             float64    `json:"quantity"`
	UnitPrice            float64    `json:"unit_price"`
	TotalCost            float64    `json:"total_cost"`
	Status               string     `json:"status"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

func PurchaseOrderConvert(rec dbmodels.PurchaseOrder) PurchaseOrderView {
	result := PurchaseOrderView{
		ID:                   rec.ID,
		TaskID:               rec.TaskID,
		VendorID:             rec.VendorID,
		InventoryID:          rec.InventoryID,
		Quantity:             rec.Quantity,
		UnitPrice:            rec.UnitPrice,
		TotalCost:            rec.TotalCost,
		Status:               string(rec.Status),
		ExpectedDeliveryDate: rec.ExpectedDeliveryDate,
		CreatedAt:            rec.CreatedAt,
	}
	if rec.Vendor != nil {
		result.VendorName = rec.Vendor.Name
	}
	if rec.Inventory != nil {
		result.ItemName = rec.Inventory.ItemName
	}
	return result
}
