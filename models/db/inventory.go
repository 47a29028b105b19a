package dbmodels

import (
	"time"

	"procure-ops-backend/models"
)

type InventoryItem struct {
	BaseModel
	ItemName     string `gorm:"type:varchar(255)"`
	Category     string `gorm:"type:varchar(255)"`
	CurrentStock float64
	MinThreshold float64
	UnitPrice    float64
	Status       models.InventoryStatus `gorm:"type:varchar(100);index"`
}

func (InventoryItem) TableName() string {
	return "inventory"
}

type ConsumptionRecord struct {
	BaseModel
	InventoryID      string `gorm:"type:varchar(36);index"`
	Inventory        *InventoryItem `gorm:"foreignKey:InventoryID"`
	QuantityConsumed float64
	ConsumptionDate  time.Time `gorm:"index"`
}

func (ConsumptionRecord) TableName() string {
	return "inventory_consumption_history"
}
