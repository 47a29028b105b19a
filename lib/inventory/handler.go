package inventoryhandler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	consumptionstore "procure-ops-backend/lib/inventory/consumption-store"
	inventorystore "procure-ops-backend/lib/inventory/store"
	notificationhandler "procure-ops-backend/lib/notification"
	"procure-ops-backend/models"
	procurementapimodels "procure-ops-backend/models/api/procurement"
	dbmodels "procure-ops-backend/models/db"
)

const (
	// consumption history window used by the prediction
	predictionWindowDays = 30
	// days reported when the item is not being consumed at all
	depletionSentinelDays = 999
	// fallback daily consumption for items with no history, as a
	// fraction of the minimum threshold
	defaultConsumptionFactor = 0.1
)

type Provider interface {
	Create(data procurementapimodels.InventoryItemData) (id string, err error)
	List() ([]procurementapimodels.InventoryItemView, error)
	Predict() ([]procurementapimodels.PredictionView, error)
	PredictByID(inventoryID string) (*procurementapimodels.PredictionView, error)
	RecordConsumption(inventoryID string, data procurementapimodels.ConsumptionData) (*procurementapimodels.InventoryItemView, error)
	// CheckNeeds returns items at or below their minimum threshold.
	CheckNeeds() ([]procurementapimodels.InventoryItemView, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(db.DB, notificationhandler.Instance)
}

func NewInstance(DB *gorm.DB, notifier notificationhandler.Provider) Provider {
	return impl{
		db:               DB,
		store:            inventorystore.NewInstance(DB),
		consumptionStore: consumptionstore.NewInstance(DB),
		notifier:         notifier,
	}
}

type impl struct {
	db               *gorm.DB
	store            inventorystore.Provider
	consumptionStore consumptionstore.Provider
	notifier         notificationhandler.Provider
}

func (i impl) Create(data procurementapimodels.InventoryItemData) (string, error) {
	return i.store.Create(dbmodels.InventoryItem{
		ItemName:     data.ItemName,
		Category:     data.Category,
		CurrentStock: data.CurrentStock,
		MinThreshold: data.MinThreshold,
		UnitPrice:    data.UnitPrice,
		Status:       StatusFor(data.CurrentStock, data.MinThreshold),
	})
}

func (i impl) List() ([]procurementapimodels.InventoryItemView, error) {
	items, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]procurementapimodels.InventoryItemView, 0, len(items))
	for _, item := range items {
		result = append(result, procurementapimodels.InventoryItemConvert(item))
	}
	return result, nil
}

func (i impl) Predict() ([]procurementapimodels.PredictionView, error) {
	items, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "inventory lookup failed")
	}
	result := make([]procurementapimodels.PredictionView, 0, len(items))
	for _, item := range items {
		view, err := i.predictItem(item)
		if err != nil {
			return nil, err
		}
		result = append(result, *view)
	}
	sort.SliceStable(result, func(a, b int) bool {
		if result[a].RiskLevel.Rank() != result[b].RiskLevel.Rank() {
			return result[a].RiskLevel.Rank() < result[b].RiskLevel.Rank()
		}
		return result[a].DaysUntilDepletion < result[b].DaysUntilDepletion
	})
	return result, nil
}

func (i impl) PredictByID(inventoryID string) (*procurementapimodels.PredictionView, error) {
	item, err := i.store.GetByID(inventoryID)
	if err != nil {
		return nil, errors.Wrap(err, "inventory lookup failed")
	}
	if item == nil {
		return nil, models.ErrNotFound
	}
	return i.predictItem(*item)
}

func (i impl) predictItem(item dbmodels.InventoryItem) (*procurementapimodels.PredictionView, error) {
	since := time.Now().AddDate(0, 0, -predictionWindowDays)
	records, err := i.consumptionStore.ListSince(item.ID, since)
	if err != nil {
		return nil, errors.Wrap(err, "consumption history lookup failed")
	}

	avg := AverageDailyConsumption(records, item.MinThreshold)
	days := DaysUntilDepletion(item.CurrentStock, avg)
	risk := RiskFor(days)

	return &procurementapimodels.PredictionView{
		InventoryID:             item.ID,
		ItemName:                item.ItemName,
		Category:                item.Category,
		CurrentStock:            item.CurrentStock,
		MinThreshold:            item.MinThreshold,
		AverageDailyConsumption: avg,
		DaysUntilDepletion:      days,
		PredictedDepletionDate:  time.Now().AddDate(0, 0, days),
		RiskLevel:               risk,
		RecommendedAction:       recommendedAction(item, risk, days),
	}, nil
}

// AverageDailyConsumption averages the recorded consumption over the
// days actually tracked, from the oldest record in the window to now,
// at least one day. Items with no history fall back to a tenth of
// their minimum threshold per day.
func AverageDailyConsumption(records []dbmodels.ConsumptionRecord, minThreshold float64) float64 {
	if len(records) == 0 {
		return defaultConsumptionFactor * minThreshold
	}
	total := 0.0
	oldest := records[0].ConsumptionDate
	for _, rec := range records {
		total += rec.QuantityConsumed
		if rec.ConsumptionDate.Before(oldest) {
			oldest = rec.ConsumptionDate
		}
	}
	daysTracked := math.Max(1, math.Floor(time.Since(oldest).Hours()/24))
	return total / daysTracked
}

func DaysUntilDepletion(currentStock, avgDaily float64) int {
	if avgDaily <= 0 {
		return depletionSentinelDays
	}
	return int(math.Floor(currentStock / avgDaily))
}

func RiskFor(daysUntilDepletion int) models.RiskLevel {
	switch {
	case daysUntilDepletion <= 3:
		return models.RiskLevelCritical
	case daysUntilDepletion <= 7:
		return models.RiskLevelHigh
	case daysUntilDepletion <= 14:
		return models.RiskLevelMedium
	}
	return models.RiskLevelLow
}

func recommendedAction(item dbmodels.InventoryItem, risk models.RiskLevel, days int) string {
	switch risk {
	case models.RiskLevelCritical:
		return fmt.Sprintf("Order %s immediately, stock runs out in %v days", item.ItemName, days)
	case models.RiskLevelHigh:
		return fmt.Sprintf("Create a purchase order for %s this week", item.ItemName)
	case models.RiskLevelMedium:
		return fmt.Sprintf("Plan restocking of %s", item.ItemName)
	}
	return "No action required"
}

func (i impl) RecordConsumption(inventoryID string, data procurementapimodels.ConsumptionData) (*procurementapimodels.InventoryItemView, error) {
	item, err := i.store.GetByID(inventoryID)
	if err != nil {
		return nil, errors.Wrap(err, "inventory lookup failed")
	}
	if item == nil {
		return nil, models.ErrNotFound
	}

	date := time.Now()
	if data.Date != nil {
		date = *data.Date
	}
	newStock := item.CurrentStock - data.Quantity
	if newStock < 0 {
		newStock = 0
	}
	newStatus := StatusFor(newStock, item.MinThreshold)

	err = i.db.Transaction(func(tx *gorm.DB) error {
		_, err := consumptionstore.NewInstance(tx).Create(dbmodels.ConsumptionRecord{
			InventoryID:      item.ID,
			QuantityConsumed: data.Quantity,
			ConsumptionDate:  date,
		})
		if err != nil {
			return errors.Wrap(err, "consumption record write failed")
		}
		return errors.Wrap(inventorystore.NewInstance(tx).Update(item.ID, map[string]interface{}{
			"current_stock": newStock,
			"status":        newStatus,
		}), "inventory update failed")
	})
	if err != nil {
		return nil, err
	}
	log.
		WithField("inventory_id", item.ID).
		WithField("quantity", data.Quantity).
		WithField("stock", newStock).
		Info("consumption recorded")

	if i.notifier != nil && newStatus != models.InventoryStatusInStock && item.Status == models.InventoryStatusInStock {
		risk := models.RiskLevelHigh
		if newStatus == models.InventoryStatusOutOfStock {
			risk = models.RiskLevelCritical
		}
		i.notifier.SendInventoryAlert(item.ID, item.ItemName, newStock, item.MinThreshold, risk)
	}

	item.CurrentStock = newStock
	item.Status = newStatus
	view := procurementapimodels.InventoryItemConvert(*item)
	return &view, nil
}

func StatusFor(currentStock, minThreshold float64) models.InventoryStatus {
	switch {
	case currentStock <= 0:
		return models.InventoryStatusOutOfStock
	case currentStock <= minThreshold:
		return models.InventoryStatusLowStock
	}
	return models.InventoryStatusInStock
}

func (i impl) CheckNeeds() ([]procurementapimodels.InventoryItemView, error) {
	items, err := i.store.List()
	if err != nil {
		return nil, errors.Wrap(err, "inventory lookup failed")
	}
	result := make([]procurementapimodels.InventoryItemView, 0)
	for _, item := range items {
		if item.CurrentStock <= item.MinThreshold {
			result = append(result, procurementapimodels.InventoryItemConvert(item))
		}
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].CurrentStock < result[b].CurrentStock
	})
	return result, nil
}
