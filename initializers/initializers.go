package initializers

import (
	"context"
	"time"

	"procure-ops-backend/config"
	"procure-ops-backend/fiberlog"
	approvalhandler "procure-ops-backend/lib/approval"
	assignmenthandler "procure-ops-backend/lib/assignment"
	budgethandler "procure-ops-backend/lib/budget"
	employeehandler "procure-ops-backend/lib/employee"
	xlsexport "procure-ops-backend/lib/export/xls"
	inventoryhandler "procure-ops-backend/lib/inventory"
	inventorywatchworker "procure-ops-backend/lib/inventory/watch-worker"
	notificationhandler "procure-ops-backend/lib/notification"
	pipelinehandler "procure-ops-backend/lib/pipeline"
	"procure-ops-backend/lib/recommender"
	yagptclient "procure-ops-backend/lib/recommender/yagpt-client"
	reporthandler "procure-ops-backend/lib/report"
	taskhandler "procure-ops-backend/lib/task"
	vendorhandler "procure-ops-backend/lib/vendors"
	"procure-ops-backend/models"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()

	rec := initRecommender()
	policy := models.CapacityPolicy(config.Conf.Assignment.CapacityPolicy)
	if err := policy.Validate(); err != nil {
		panic(err.Error())
	}

	notificationhandler.NewHandler(config.Conf.Smtp.AlertEmail)
	employeehandler.NewHandler()
	taskhandler.NewHandler()
	assignmenthandler.NewHandler(rec, policy)
	approvalhandler.NewHandler()
	budgethandler.NewHandler()
	vendorhandler.NewHandler(rec)
	inventoryhandler.NewHandler()
	pipelinehandler.NewHandler()
	xlsexport.NewHandler()
	reporthandler.NewHandler()

	go initWorkers(ctx)
}

// initRecommender returns nil when no token is configured, handlers
// then fall back to local scoring.
func initRecommender() recommender.Provider {
	if config.Conf.Recommender.IAMToken == "" || config.Conf.Recommender.CatalogID == "" {
		return nil
	}
	return yagptclient.NewClient(config.Conf.Recommender.IAMToken, config.Conf.Recommender.CatalogID)
}

func initWorkers(ctx context.Context) {
	if *config.Conf.InventoryWatch.Enabled {
		interval := time.Duration(config.Conf.InventoryWatch.IntervalMin) * time.Minute
		inventorywatchworker.StartWorker(ctx, interval)
	}
}
