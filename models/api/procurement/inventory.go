package procurementapimodels

import (
	"time"

	"github.com/pkg/errors"
	"procure-ops-backend/models"
	dbmodels "procure-ops-backend/models/db"
)

type InventoryItemData struct {
	ItemName     string  `json:"item_name"`
	Category     string  `json:"category"`
	CurrentStock float64 `json:"current_stock"`
	MinThreshold float64 `json:"min_threshold"`
	UnitPrice    float64 `json:"unit_price"`
}

func (d InventoryItemData) Validate() error {
	if d.ItemName == "" {
		return errors.New("item name is required")
	}
	if d.CurrentStock < 0 {
		return errors.New("current stock must not be negative")
	}
	if d.MinThreshold < 0 {
		return errors.New("min threshold must not be negative")
	}
	return nil
}

type InventoryItemView struct {
	InventoryItemData
	ID     string                 `json:"id"`
	Status models.InventoryStatus `json:"status"`
}

func InventoryItemConvert(rec dbmodels.InventoryItem) InventoryItemView {
	return InventoryItemView{
		InventoryItemData: InventoryItemData{
			ItemName:     rec.ItemName,
			Category:     rec.Category,
			CurrentStock: rec.CurrentStock,
			MinThreshold: rec.MinThreshold,
			UnitPrice:    rec.UnitPrice,
		},
		ID:     rec.ID,
		Status: rec.Status,
	}
}

type ConsumptionData struct {
	Quantity float64    `json:"quantity"`
	Date     *time.Time `json:"date,omitempty"` // defaults to today
}

func (d ConsumptionData) Validate() error {
	if d.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}

type PredictionView struct {
	InventoryID             string           `json:"inventory_id"`
	ItemName                string           `json:"item_name"`
	Category                string           `json:"category"`
	CurrentStock            float64          `json:"current_stock"`
	MinThreshold            float64          `json:"min_threshold"`
	AverageDailyConsumption float64          `json:"average_daily_consumption"`
	DaysUntilDepletion      int              `json:"days_until_depletion"`
	PredictedDepletionDate  time.Time        `json:"predicted_depletion_date"`
	RiskLevel               models.RiskLevel `json:"risk_level"`
	RecommendedAction       string           `json:"recommended_action"`
}
