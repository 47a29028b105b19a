package models

type NotificationPriority string

const (
	NotificationPriorityLow      NotificationPriority = "Low"
	NotificationPriorityMedium   NotificationPriority = "Medium"
	NotificationPriorityHigh     NotificationPriority = "High"
	NotificationPriorityCritical NotificationPriority = "Critical"
)

type NotificationType string

const (
	NotificationTypeInventoryAlert NotificationType = "Inventory Alert"
	NotificationTypeTaskAssignment NotificationType = "Task Assignment"
	NotificationTypeApprovalReq    NotificationType = "Approval Request"
	NotificationTypeApprovalStatus NotificationType = "Approval Status"
	NotificationTypeBudgetAlert    NotificationType = "Budget Alert"
	NotificationTypeVendorUpdate   NotificationType = "Vendor Update"
	NotificationTypeSystem         NotificationType = "System"
)
