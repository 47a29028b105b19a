package models

import "github.com/pkg/errors"

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "Pending"
	ApprovalStatusApproved ApprovalStatus = "Approved"
	ApprovalStatusRejected ApprovalStatus = "Rejected"
)

type ApprovalAction string

const (
	ApprovalActionApproved ApprovalAction = "Approved"
	ApprovalActionRejected ApprovalAction = "Rejected"
)

func (a ApprovalAction) Validate() error {
	switch a {
	case ApprovalActionApproved, ApprovalActionRejected:
		return nil
	}
	return errors.Errorf("unknown approval action: %v", a)
}

type ApprovalRequestType string

const (
	ApprovalTypePurchaseOrder     ApprovalRequestType = "Purchase Order"
	ApprovalTypeBudgetOverride    ApprovalRequestType = "Budget Override"
	ApprovalTypeVendorSelection   ApprovalRequestType = "Vendor Selection"
	ApprovalTypeHighValuePurchase ApprovalRequestType = "High Value Purchase"
)

func (t ApprovalRequestType) Validate() error {
	switch t {
	case ApprovalTypePurchaseOrder, ApprovalTypeBudgetOverride, ApprovalTypeVendorSelection, ApprovalTypeHighValuePurchase:
		return nil
	}
	return errors.Errorf("unknown approval request type: %v", t)
}

// ApproverRoleForLevel maps a chain level to the role expected to sign it.
func ApproverRoleForLevel(level int) string {
	switch level {
	case 1:
		return "Manager"
	case 2:
		return "Director"
	}
	return "CFO"
}
