package dbmodels

import (
	"time"

	"procure-ops-backend/models"
)

type PurchaseOrder struct {
	BaseModel
	TaskID               *string `gorm:"type:varchar(36)"`
	VendorID             string  `gorm:"type:varchar(36)"`
	Vendor               *Vendor
	InventoryID          string `gorm:"type:varchar(36)"`
	Inventory            *InventoryItem `gorm:"foreignKey:InventoryID"`
	Quantity             float64
	UnitPrice            float64
	TotalCost            float64
	Status               models.PurchaseOrderStatus `gorm:"type:varchar(100);index"`
	ExpectedDeliveryDate *time.Time
}

func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}
