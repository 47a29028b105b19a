package pipelinehandler

import (
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	assignmenthandler "procure-ops-backend/lib/assignment"
	inventoryhandler "procure-ops-backend/lib/inventory"
	taskhandler "procure-ops-backend/lib/task"
	vendorhandler "procure-ops-backend/lib/vendors"
	"procure-ops-backend/models"
	procurementapimodels "procure-ops-backend/models/api/procurement"
	workforceapimodels "procure-ops-backend/models/api/workforce"
)

// default shape of the restocking task the pipeline opens
const (
	restockSkill = "Procurement"
	restockHours = 8
)

type Provider interface {
	// Run walks the full restocking flow: find the most depleted item,
	// source a vendor for it and open an assigned procurement task.
	Run() (*procurementapimodels.PipelineResult, error)
}

var Instance Provider

func NewHandler() {
	Instance = NewInstance(inventoryhandler.Instance, vendorhandler.Instance,
		taskhandler.Instance, assignmenthandler.Instance)
}

func NewInstance(inventory inventoryhandler.Provider, vendors vendorhandler.Provider,
	tasks taskhandler.Provider, assignments assignmenthandler.Provider) Provider {
	return impl{
		inventory:   inventory,
		vendors:     vendors,
		tasks:       tasks,
		assignments: assignments,
	}
}

type impl struct {
	inventory   inventoryhandler.Provider
	vendors     vendorhandler.Provider
	tasks       taskhandler.Provider
	assignments assignmenthandler.Provider
}

func (i impl) Run() (*procurementapimodels.PipelineResult, error) {
	result := procurementapimodels.PipelineResult{Logs: []string{"Checking inventory levels"}}

	needs, err := i.inventory.CheckNeeds()
	if err != nil {
		return nil, errors.Wrap(err, "inventory check failed")
	}
	if len(needs) == 0 {
		result.Logs = append(result.Logs, "All inventory levels are sufficient")
		return &result, nil
	}
	item := needs[0]
	result.SelectedItem = &item
	result.Logs = append(result.Logs,
		fmt.Sprintf("%v items need restocking, most urgent: %s (stock %v, threshold %v)",
			len(needs), item.ItemName, item.CurrentStock, item.MinThreshold))

	vendor, err := i.vendors.FindBest(procurementapimodels.VendorFindRequest{
		Category:     item.Category,
		ItemName:     item.ItemName,
		CurrentStock: &item.CurrentStock,
		MinThreshold: &item.MinThreshold,
	})
	if err != nil {
		return nil, errors.Wrap(err, "vendor sourcing failed")
	}
	result.RecommendedVendor = vendor
	result.Logs = append(result.Logs, fmt.Sprintf("Recommended vendor: %s", vendor.VendorName))

	priority := models.TaskPriorityMedium
	if item.Status == models.InventoryStatusOutOfStock {
		priority = models.TaskPriorityHigh
	}
	taskID, err := i.tasks.Create(workforceapimodels.TaskData{
		Title:          fmt.Sprintf("Restock %s", item.ItemName),
		RequiredSkill:  restockSkill,
		EstimatedHours: restockHours,
		Priority:       priority,
	})
	if err != nil {
		return nil, errors.Wrap(err, "restocking task creation failed")
	}
	result.Logs = append(result.Logs, fmt.Sprintf("Created task Restock %s", item.ItemName))

	assignment, err := i.assignments.Assign(taskID)
	if err != nil {
		return nil, errors.Wrap(err, "task assignment failed")
	}
	result.AssignmentResult = &workforceapimodels.AssignmentResult{
		EmployeeID:   assignment.EmployeeID,
		EmployeeName: assignment.AssignedTo,
		Score:        assignment.Score,
		Reasoning:    assignment.Reasoning,
	}
	result.Logs = append(result.Logs, assignment.Logs...)

	log.
		WithField("item", item.ItemName).
		WithField("vendor", vendor.VendorName).
		WithField("assignee", assignment.AssignedTo).
		Info("restocking pipeline completed")
	return &result, nil
}
