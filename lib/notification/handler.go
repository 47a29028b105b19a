package notificationhandler

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"procure-ops-backend/db"
	notificationstore "procure-ops-backend/lib/notification/store"
	"procure-ops-backend/lib/smtp"
	"procure-ops-backend/models"
	notificationapimodels "procure-ops-backend/models/api/notification"
	dbmodels "procure-ops-backend/models/db"
)

type Provider interface {
	// Notify persists the notification (the durable contract) and attempts
	// best-effort email delivery for urgent ones. Delivery failures never
	// propagate to the caller.
	Notify(userID *string, nType models.NotificationType, title, message string, link *string,
		priority models.NotificationPriority, metadata map[string]any) (id string, err error)
	List(userID *string, unreadOnly bool, limit int) ([]notificationapimodels.NotificationView, error)
	MarkRead(id string) (hMsg string, err error)
	MarkAllRead(userID *string) error
	UnreadCount(userID *string) (int64, error)
	SendInventoryAlert(inventoryID, itemName string, currentStock, threshold float64, riskLevel models.RiskLevel)
	SendTaskAssignment(userID, taskTitle, taskID string)
}

var Instance Provider

func NewHandler(alertEmail string) {
	Instance = NewInstance(db.DB, smtp.Instance, alertEmail)
}

func NewInstance(DB *gorm.DB, sender smtp.Provider, alertEmail string) Provider {
	return impl{
		store:      notificationstore.NewInstance(DB),
		sender:     sender,
		alertEmail: alertEmail,
	}
}

type impl struct {
	store      notificationstore.Provider
	sender     smtp.Provider
	alertEmail string
}

func (i impl) getLogger(nType models.NotificationType, title string) *log.Entry {
	logger := log.
		WithField("notification_type", string(nType)).
		WithField("title", title)
	return logger
}

func (i impl) Notify(userID *string, nType models.NotificationType, title, message string, link *string,
	priority models.NotificationPriority, metadata map[string]any) (string, error) {
	rec := dbmodels.Notification{
		UserID:   userID,
		Type:     nType,
		Title:    title,
		Message:  message,
		Link:     link,
		Priority: priority,
		Metadata: metadata,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", err
	}
	if needsEmail(nType, priority) {
		i.sendEmail(nType, title, message, priority)
	}
	return id, nil
}

// needsEmail reproduces the delivery rule: urgent priorities and
// alert/request types go out by email as well.
func needsEmail(nType models.NotificationType, priority models.NotificationPriority) bool {
	if priority == models.NotificationPriorityHigh || priority == models.NotificationPriorityCritical {
		return true
	}
	return strings.Contains(string(nType), "Alert") || strings.Contains(string(nType), "Request")
}

func (i impl) sendEmail(nType models.NotificationType, title, message string, priority models.NotificationPriority) {
	logger := i.getLogger(nType, title)
	if i.sender == nil || i.alertEmail == "" {
		logger.Warn("email delivery skipped, no alert recipient configured")
		return
	}
	subject := fmt.Sprintf("%s - %s", strings.ToUpper(string(priority)), title)
	if err := i.sender.SendEMail(i.alertEmail, i.alertEmail, message, subject); err != nil {
		// delivery is advisory, the persisted row is the contract
		logger.WithError(err).Error("notification email delivery failed")
	}
}

func (i impl) List(userID *string, unreadOnly bool, limit int) ([]notificationapimodels.NotificationView, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := i.store.List(userID, unreadOnly, limit)
	if err != nil {
		return nil, err
	}
	result := make([]notificationapimodels.NotificationView, 0, len(list))
	for _, rec := range list {
		result = append(result, notificationapimodels.NotificationConvert(rec))
	}
	return result, nil
}

func (i impl) MarkRead(id string) (hMsg string, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "notification not found", nil
	}
	return "", i.store.MarkRead(id)
}

func (i impl) MarkAllRead(userID *string) error {
	return i.store.MarkAllRead(userID)
}

func (i impl) UnreadCount(userID *string) (int64, error) {
	return i.store.UnreadCount(userID)
}

func (i impl) SendInventoryAlert(inventoryID, itemName string, currentStock, threshold float64, riskLevel models.RiskLevel) {
	priority := models.NotificationPriorityMedium
	switch riskLevel {
	case models.RiskLevelCritical:
		priority = models.NotificationPriorityCritical
	case models.RiskLevelHigh:
		priority = models.NotificationPriorityHigh
	}
	state := "running low"
	if riskLevel == models.RiskLevelCritical {
		state = "CRITICALLY LOW"
	}
	link := "/car-factory"
	message := fmt.Sprintf("%s is %s. Current stock: %v, Threshold: %v", itemName, state, currentStock, threshold)
	_, err := i.Notify(nil, models.NotificationTypeInventoryAlert, "Inventory Alert", message, &link, priority,
		map[string]any{"inventory_id": inventoryID, "risk_level": string(riskLevel)})
	if err != nil {
		i.getLogger(models.NotificationTypeInventoryAlert, itemName).WithError(err).Error("inventory alert creation failed")
	}
}

func (i impl) SendTaskAssignment(userID, taskTitle, taskID string) {
	link := "/procurement"
	message := fmt.Sprintf("You have been assigned to: %s", taskTitle)
	_, err := i.Notify(&userID, models.NotificationTypeTaskAssignment, "Task Assignment", message, &link,
		models.NotificationPriorityMedium, map[string]any{"task_id": taskID})
	if err != nil {
		i.getLogger(models.NotificationTypeTaskAssignment, taskTitle).WithError(err).Error("task assignment notification failed")
	}
}
