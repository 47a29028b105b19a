package models

import "github.com/pkg/errors"

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "Low"
	TaskPriorityMedium TaskPriority = "Medium"
	TaskPriorityHigh   TaskPriority = "High"
)

func (p TaskPriority) Validate() error {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return nil
	}
	return errors.Errorf("unknown task priority: %v", p)
}

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

type InventoryStatus string

const (
	InventoryStatusInStock    InventoryStatus = "In Stock"
	InventoryStatusLowStock   InventoryStatus = "Low Stock"
	InventoryStatusOutOfStock InventoryStatus = "Out of Stock"
)

type PurchaseOrderStatus string

const (
	POStatusDraft     PurchaseOrderStatus = "Draft"
	POStatusApproved  PurchaseOrderStatus = "Approved"
	POStatusOrdered   PurchaseOrderStatus = "Ordered"
	POStatusDelivered PurchaseOrderStatus = "Delivered"
	POStatusCancelled PurchaseOrderStatus = "Cancelled"
)

type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
)

// Rank orders risk levels for sorting, most urgent first.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLevelCritical:
		return 0
	case RiskLevelHigh:
		return 1
	case RiskLevelMedium:
		return 2
	}
	return 3
}

// CapacityPolicy controls what happens when an assignment pushes an
// employee over the weekly capacity.
type CapacityPolicy string

const (
	CapacityPolicyAllow  CapacityPolicy = "allow"
	CapacityPolicyClamp  CapacityPolicy = "clamp"
	CapacityPolicyReject CapacityPolicy = "reject"
)

func (p CapacityPolicy) Validate() error {
	switch p {
	case CapacityPolicyAllow, CapacityPolicyClamp, CapacityPolicyReject:
		return nil
	}
	return errors.Errorf("unknown capacity policy: %v", p)
}
