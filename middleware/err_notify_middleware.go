package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	notificationhandler "procure-ops-backend/lib/notification"
	"procure-ops-backend/models"
)

// ErrNotify records a system notification for every 5xx response so
// operational failures surface in the notification feed.
func ErrNotify() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		statusCode := c.Response().StatusCode()

		if statusCode >= http.StatusInternalServerError {
			var data struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			}
			if unmErr := json.Unmarshal(c.Response().Body(), &data); unmErr != nil {
				log.WithError(unmErr).Warn("error unmarshalling response body in middleware")
			}

			method := c.Method()
			path := c.OriginalURL()
			if r := c.Route(); r != nil {
				path = r.Path
			}

			msg := data.Message
			if msg == "" {
				msg = http.StatusText(statusCode)
			}

			go func() {
				if notificationhandler.Instance == nil {
					return
				}
				_, nErr := notificationhandler.Instance.Notify(nil, models.NotificationTypeSystem,
					"Internal Error", msg, nil, models.NotificationPriorityLow,
					map[string]any{"code": statusCode, "method": method, "path": path})
				if nErr != nil {
					log.WithError(nErr).Warn("error recording failure notification")
				}
			}()
		}

		return err
	}
}
