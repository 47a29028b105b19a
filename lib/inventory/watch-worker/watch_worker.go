package inventorywatchworker

import (
	"context"
	"time"

	"procure-ops-backend/db"
	inventoryhandler "procure-ops-backend/lib/inventory"
	inventorystore "procure-ops-backend/lib/inventory/store"
	notificationhandler "procure-ops-backend/lib/notification"
	baseworker "procure-ops-backend/lib/utils/base-worker"
	"procure-ops-backend/lib/utils/helpers"
	"procure-ops-backend/models"
)

// StartWorker begins the periodic stock sweep that keeps item statuses
// current and raises restocking alerts.
func StartWorker(ctx context.Context, interval time.Duration) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("InventoryWatchWorker", 30*time.Second, interval),
		store:    inventorystore.NewInstance(db.DB),
		handler:  inventoryhandler.Instance,
		notifier: notificationhandler.Instance,
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
	store    inventorystore.Provider
	handler  inventoryhandler.Provider
	notifier notificationhandler.Provider
}

func (i impl) handle(ctx context.Context) {
	logger := i.GetLogger()
	items, err := i.store.List()
	if err != nil {
		logger.WithError(err).Error("inventory listing failed")
		return
	}
	for _, item := range items {
		if helpers.IsContextDone(ctx) {
			break
		}
		status := inventoryhandler.StatusFor(item.CurrentStock, item.MinThreshold)
		if status == item.Status {
			continue
		}
		updMap := map[string]interface{}{
			"status": status,
		}
		err = i.store.Update(item.ID, updMap)
		if err != nil {
			logger.
				WithError(err).
				WithField("inventory_id", item.ID).
				Error("inventory status update failed")
			continue
		}
		if status != models.InventoryStatusInStock && i.notifier != nil {
			i.alert(item.ID)
		}
	}
}

// alert derives the risk from the depletion forecast so the
// notification carries the same severity the prediction endpoint shows.
func (i impl) alert(inventoryID string) {
	logger := i.GetLogger()
	prediction, err := i.handler.PredictByID(inventoryID)
	if err != nil {
		logger.
			WithError(err).
			WithField("inventory_id", inventoryID).
			Error("depletion forecast failed")
		return
	}
	i.notifier.SendInventoryAlert(prediction.InventoryID, prediction.ItemName,
		prediction.CurrentStock, prediction.MinThreshold, prediction.RiskLevel)
}
