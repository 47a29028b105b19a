package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"procure-ops-backend/controllers"
	notificationhandler "procure-ops-backend/lib/notification"
	apimodels "procure-ops-backend/models/api"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app *fiber.App) {
	controller := notificationApiController{}
	app.Route("notifications", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("unread_count", controller.unreadCount)
		router.Put("read_all", controller.markAllRead)
		router.Put(":id/read", controller.markRead)
	})
}

// userFilter reads the optional user scope. Absent means system-wide
// notifications.
func userFilter(ctx *fiber.Ctx) *string {
	userID := ctx.Query("user_id")
	if userID == "" {
		return nil
	}
	return &userID
}

// @Summary Notification list
// @Tags Notifications
// @Description Notifications, newest first
// @Param   user_id	query	string	false	"user scope, system-wide when empty"
// @Param   unread	query	bool	false	"unread only"
// @Param   limit	query	int		false	"row limit, default 50"
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications [get]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	unreadOnly := ctx.QueryBool("unread")
	limit := ctx.QueryInt("limit", 50)
	result, err := notificationhandler.Instance.List(userFilter(ctx), unreadOnly, limit)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Notification list retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Unread count
// @Tags Notifications
// @Description Unread notification count
// @Param   user_id	query	string	false	"user scope, system-wide when empty"
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/unread_count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	result, err := notificationhandler.Instance.UnreadCount(userFilter(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Unread count retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Mark all read
// @Tags Notifications
// @Description Mark every unread notification as read
// @Param   user_id	query	string	false	"user scope, system-wide when empty"
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/read_all [put]
func (c *notificationApiController) markAllRead(ctx *fiber.Ctx) error {
	err := notificationhandler.Instance.MarkAllRead(userFilter(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Notification update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Mark read
// @Tags Notifications
// @Description Mark one notification as read
// @Param   id	path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/{id}/read [put]
func (c *notificationApiController) markRead(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hMsg, err := notificationhandler.Instance.MarkRead(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Notification update failed")
	}
	if hMsg != "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(hMsg))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
