package inventoryhandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"procure-ops-backend/db"
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

func TestAverageDailyConsumption(t *testing.T) {
	t.Run("no history falls back to threshold fraction", func(t *testing.T) {
		require.Equal(t, 5.0, AverageDailyConsumption(nil, 50))
	})

	t.Run("history is averaged over the tracked span", func(t *testing.T) {
		records := []dbmodels.ConsumptionRecord{
			{QuantityConsumed: 30, ConsumptionDate: time.Now().AddDate(0, 0, -3)},
			{QuantityConsumed: 30, ConsumptionDate: time.Now().AddDate(0, 0, -1)},
		}
		require.Equal(t, 20.0, AverageDailyConsumption(records, 50))
	})

	t.Run("records from today count as one tracked day", func(t *testing.T) {
		records := []dbmodels.ConsumptionRecord{
			{QuantityConsumed: 12, ConsumptionDate: time.Now()},
		}
		require.Equal(t, 12.0, AverageDailyConsumption(records, 50))
	})
}

func TestDaysUntilDepletion(t *testing.T) {
	require.Equal(t, 10, DaysUntilDepletion(100, 10))
	require.Equal(t, 6, DaysUntilDepletion(20, 3))
	require.Equal(t, depletionSentinelDays, DaysUntilDepletion(100, 0))
}

func TestRiskFor(t *testing.T) {
	require.Equal(t, models.RiskLevelCritical, RiskFor(0))
	require.Equal(t, models.RiskLevelCritical, RiskFor(3))
	require.Equal(t, models.RiskLevelHigh, RiskFor(7))
	require.Equal(t, models.RiskLevelMedium, RiskFor(14))
	require.Equal(t, models.RiskLevelLow, RiskFor(15))
	require.Equal(t, models.RiskLevelLow, RiskFor(depletionSentinelDays))
}

func TestStatusFor(t *testing.T) {
	require.Equal(t, models.InventoryStatusOutOfStock, StatusFor(0, 10))
	require.Equal(t, models.InventoryStatusLowStock, StatusFor(10, 10))
	require.Equal(t, models.InventoryStatusInStock, StatusFor(11, 10))
}

func TestRecordConsumption(t *testing.T) {
	t.Run("stock and status are updated", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil)
		id, err := handler.Create(procurementapimodels.InventoryItemData{
			ItemName: "Steel sheets", Category: "Raw Materials",
			CurrentStock: 100, MinThreshold: 95, UnitPrice: 12,
		})
		require.NoError(t, err)

		view, err := handler.RecordConsumption(id, procurementapimodels.ConsumptionData{Quantity: 10})
		require.NoError(t, err)
		require.Equal(t, 90.0, view.CurrentStock)
		require.Equal(t, models.InventoryStatusLowStock, view.Status)

		records := []dbmodels.ConsumptionRecord{}
		require.NoError(t, conn.Find(&records).Error)
		require.Len(t, records, 1)
		require.Equal(t, 10.0, records[0].QuantityConsumed)
	})

	t.Run("stock never goes negative", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil)
		id, err := handler.Create(procurementapimodels.InventoryItemData{
			ItemName: "Bolts", CurrentStock: 5, MinThreshold: 10,
		})
		require.NoError(t, err)

		view, err := handler.RecordConsumption(id, procurementapimodels.ConsumptionData{Quantity: 8})
		require.NoError(t, err)
		require.Equal(t, 0.0, view.CurrentStock)
		require.Equal(t, models.InventoryStatusOutOfStock, view.Status)
	})

	t.Run("missing item", func(t *testing.T) {
		conn := openTestDB(t)
		handler := NewInstance(conn, nil)
		_, err := handler.RecordConsumption("no-such-id", procurementapimodels.ConsumptionData{Quantity: 1})
		require.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestPredict(t *testing.T) {
	conn := openTestDB(t)
	handler := NewInstance(conn, nil)

	urgent, err := handler.Create(procurementapimodels.InventoryItemData{
		ItemName: "Tires", Category: "Parts", CurrentStock: 20, MinThreshold: 50,
	})
	require.NoError(t, err)
	relaxed, err := handler.Create(procurementapimodels.InventoryItemData{
		ItemName: "Paint", Category: "Supplies", CurrentStock: 500, MinThreshold: 20,
	})
	require.NoError(t, err)

	// 10 units per day over the last week
	for day := 1; day <= 7; day++ {
		rec := dbmodels.ConsumptionRecord{
			InventoryID:      urgent,
			QuantityConsumed: 10,
			ConsumptionDate:  time.Now().AddDate(0, 0, -day),
		}
		require.NoError(t, conn.Create(&rec).Error)
	}

	t.Run("per item forecast", func(t *testing.T) {
		prediction, err := handler.PredictByID(urgent)
		require.NoError(t, err)
		// 70 units over the 7 tracked days
		require.InDelta(t, 10.0, prediction.AverageDailyConsumption, 0.01)
		require.Equal(t, 2, prediction.DaysUntilDepletion)
		require.Equal(t, models.RiskLevelCritical, prediction.RiskLevel)
	})

	t.Run("most urgent first", func(t *testing.T) {
		list, err := handler.Predict()
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, urgent, list[0].InventoryID)
		require.Equal(t, relaxed, list[1].InventoryID)
	})

	t.Run("no history uses the fallback rate", func(t *testing.T) {
		prediction, err := handler.PredictByID(relaxed)
		require.NoError(t, err)
		require.Equal(t, 2.0, prediction.AverageDailyConsumption)
		require.Equal(t, 250, prediction.DaysUntilDepletion)
		require.Equal(t, models.RiskLevelLow, prediction.RiskLevel)
	})
}

func TestCheckNeeds(t *testing.T) {
	conn := openTestDB(t)
	handler := NewInstance(conn, nil)

	_, err := handler.Create(procurementapimodels.InventoryItemData{
		ItemName: "Glass", CurrentStock: 100, MinThreshold: 20,
	})
	require.NoError(t, err)
	low, err := handler.Create(procurementapimodels.InventoryItemData{
		ItemName: "Wires", CurrentStock: 15, MinThreshold: 20,
	})
	require.NoError(t, err)
	empty, err := handler.Create(procurementapimodels.InventoryItemData{
		ItemName: "Chips", CurrentStock: 0, MinThreshold: 20,
	})
	require.NoError(t, err)

	needs, err := handler.CheckNeeds()
	require.NoError(t, err)
	require.Len(t, needs, 2)
	require.Equal(t, empty, needs[0].ID)
	require.Equal(t, low, needs[1].ID)
}
