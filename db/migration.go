package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "procure-ops-backend/models/db"
)

// Migrate creates or updates the schema on the given connection.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(
		&dbmodels.Employee{},
		&dbmodels.ProcurementTask{},
		&dbmodels.AssignmentLog{},
		&dbmodels.Vendor{},
		&dbmodels.InventoryItem{},
		&dbmodels.ConsumptionRecord{},
		&dbmodels.PurchaseOrder{},
		&dbmodels.ApprovalRequest{},
		&dbmodels.ApprovalHistory{},
		&dbmodels.Notification{},
		&dbmodels.Budget{},
	); err != nil {
		return errors.Wrap(err, "migration failed")
	}
	return nil
}

func AutoMigrateDB() error {
	log.Info("running migrations")
	if err := Migrate(DB); err != nil {
		return err
	}
	log.Info("migrations finished")
	return nil
}
