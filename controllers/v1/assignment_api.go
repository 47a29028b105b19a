package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"procure-ops-backend/controllers"
	assignmenthandler "procure-ops-backend/lib/assignment"
	apimodels "procure-ops-backend/models/api"
	workforceapimodels "procure-ops-backend/models/api/workforce"
)

type assignmentApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentApiRouters(app *fiber.App) {
	controller := assignmentApiController{}
	app.Route("assignments", func(router fiber.Router) {
		router.Post("assign", controller.assign)
		router.Get("logs", controller.logs)
	})
}

// @Summary Assign task
// @Tags Assignments
// @Description Pick the best employee for the task and assign it
// @Param	body 	body	workforceapimodels.AssignRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignments/assign [post]
func (c *assignmentApiController) assign(ctx *fiber.Ctx) error {
	var payload workforceapimodels.AssignRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := assignmenthandler.Instance.Assign(payload.TaskID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Task assignment failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Assignment log
// @Tags Assignments
// @Description Assignment decision trail
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/assignments/logs [get]
func (c *assignmentApiController) logs(ctx *fiber.Ctx) error {
	result, err := assignmenthandler.Instance.ListLogs()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Assignment log retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
