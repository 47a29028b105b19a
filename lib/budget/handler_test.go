package budgethandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	approvalhandler "procure-ops-backend/lib/approval"
	"procure-ops-backend/models"
	procurementapimodels "procure-ops-backend/models/api/procurement"
	dbmodels "procure-ops-backend/models/db"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

func newTestHandler(conn *gorm.DB) Provider {
	return NewInstance(conn, approvalhandler.NewInstance(conn, nil))
}

func seedBudget(t *testing.T, handler Provider, category string, limit float64) string {
	t.Helper()
	id, err := handler.Create(procurementapimodels.BudgetData{
		Category:     category,
		MonthlyLimit: limit,
		PeriodStart:  time.Now().AddDate(0, 0, -1),
		PeriodEnd:    time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	return id
}

func seedOrderRefs(t *testing.T, conn *gorm.DB, category string) (inventoryID, vendorID string) {
	t.Helper()
	item := dbmodels.InventoryItem{
		ItemName:     "Engine blocks",
		Category:     category,
		CurrentStock: 5,
		MinThreshold: 10,
		Status:       models.InventoryStatusLowStock,
	}
	require.NoError(t, conn.Create(&item).Error)
	vendor := dbmodels.Vendor{Name: "MetalWorks", Specialization: category, Rating: 4.5}
	require.NoError(t, conn.Create(&vendor).Error)
	return item.ID, vendor.ID
}

func TestCheckLimit(t *testing.T) {
	conn := openTestDB(t)
	handler := newTestHandler(conn)
	seedBudget(t, handler, "Raw Materials", 10000)

	t.Run("within budget", func(t *testing.T) {
		check, err := handler.CheckLimit("Raw Materials", 4000)
		require.NoError(t, err)
		require.True(t, check.Allowed)
		require.Equal(t, 6000.0, check.Remaining)
	})

	t.Run("category match ignores case", func(t *testing.T) {
		check, err := handler.CheckLimit("raw materials", 4000)
		require.NoError(t, err)
		require.True(t, check.Allowed)
	})

	t.Run("exceeds the limit", func(t *testing.T) {
		check, err := handler.CheckLimit("Raw Materials", 12000)
		require.NoError(t, err)
		require.False(t, check.Allowed)
		require.Equal(t, 10000.0, check.Remaining)
	})

	t.Run("unknown category is allowed", func(t *testing.T) {
		check, err := handler.CheckLimit("Office Supplies", 99999)
		require.NoError(t, err)
		require.True(t, check.Allowed)
		require.Contains(t, check.Message, "No budget configured")
	})
}

func TestCreatePurchaseOrder(t *testing.T) {
	t.Run("books spend and opens a standard approval", func(t *testing.T) {
		conn := openTestDB(t)
		handler := newTestHandler(conn)
		budgetID := seedBudget(t, handler, "Raw Materials", 20000)
		inventoryID, vendorID := seedOrderRefs(t, conn, "Raw Materials")

		order, approval, err := handler.CreatePurchaseOrder(procurementapimodels.PurchaseOrderCreateData{
			VendorID:    vendorID,
			InventoryID: inventoryID,
			Quantity:    10,
			UnitPrice:   500,
		})
		require.NoError(t, err)
		require.Equal(t, 5000.0, order.TotalCost)
		require.Equal(t, string(models.POStatusDraft), order.Status)
		require.Equal(t, "MetalWorks", order.VendorName)

		budget := dbmodels.Budget{}
		require.NoError(t, conn.First(&budget, "id = ?", budgetID).Error)
		require.Equal(t, 5000.0, budget.CurrentSpend)

		require.Equal(t, models.ApprovalTypePurchaseOrder, approval.RequestType)
		require.Equal(t, 5000.0, approval.Amount)
		require.NotNil(t, approval.PurchaseOrderID)
		require.Equal(t, order.ID, *approval.PurchaseOrderID)
	})

	t.Run("over budget skips the spend and asks for an override", func(t *testing.T) {
		conn := openTestDB(t)
		handler := newTestHandler(conn)
		budgetID := seedBudget(t, handler, "Raw Materials", 1000)
		inventoryID, vendorID := seedOrderRefs(t, conn, "Raw Materials")

		order, approval, err := handler.CreatePurchaseOrder(procurementapimodels.PurchaseOrderCreateData{
			VendorID:    vendorID,
			InventoryID: inventoryID,
			Quantity:    10,
			UnitPrice:   500,
		})
		require.NoError(t, err)
		require.Equal(t, models.ApprovalTypeBudgetOverride, approval.RequestType)
		require.Equal(t, 5000.0, order.TotalCost)

		budget := dbmodels.Budget{}
		require.NoError(t, conn.First(&budget, "id = ?", budgetID).Error)
		require.Equal(t, 0.0, budget.CurrentSpend)
	})

	t.Run("large orders go through the high value flow", func(t *testing.T) {
		conn := openTestDB(t)
		handler := newTestHandler(conn)
		seedBudget(t, handler, "Raw Materials", 200000)
		inventoryID, vendorID := seedOrderRefs(t, conn, "Raw Materials")

		_, approval, err := handler.CreatePurchaseOrder(procurementapimodels.PurchaseOrderCreateData{
			VendorID:    vendorID,
			InventoryID: inventoryID,
			Quantity:    100,
			UnitPrice:   600,
		})
		require.NoError(t, err)
		require.Equal(t, models.ApprovalTypeHighValuePurchase, approval.RequestType)
		// 60000 needs the full three-member chain
		require.Len(t, approval.ApprovalChain, 3)
	})

	t.Run("unknown inventory item", func(t *testing.T) {
		conn := openTestDB(t)
		handler := newTestHandler(conn)
		_, vendorID := seedOrderRefs(t, conn, "Raw Materials")

		_, _, err := handler.CreatePurchaseOrder(procurementapimodels.PurchaseOrderCreateData{
			VendorID:    vendorID,
			InventoryID: "missing",
			Quantity:    1,
			UnitPrice:   1,
		})
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestStatus(t *testing.T) {
	conn := openTestDB(t)
	handler := newTestHandler(conn)
	id := seedBudget(t, handler, "Parts", 8000)
	require.NoError(t, conn.Model(&dbmodels.Budget{}).
		Where("id = ?", id).
		Update("current_spend", 2000).Error)

	views, err := handler.Status()
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.Equal(t, 6000.0, views[0].RemainingBudget)
	require.Equal(t, 25.0, views[0].UtilizationPercent)
}
