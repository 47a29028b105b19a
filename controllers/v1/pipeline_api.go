package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"procure-ops-backend/controllers"
	pipelinehandler "procure-ops-backend/lib/pipeline"
	apimodels "procure-ops-backend/models/api"
)

type pipelineApiController struct {
	controllers.BaseAPIController
}

func InitPipelineApiRouters(app *fiber.App) {
	controller := pipelineApiController{}
	app.Route("car-factory", func(router fiber.Router) {
		router.Post("run", controller.run)
	})
}

// @Summary Run restocking pipeline
// @Tags Pipeline
// @Description Check stock, source a vendor and open an assigned restocking task
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/car-factory/run [post]
func (c *pipelineApiController) run(ctx *fiber.Ctx) error {
	result, err := pipelinehandler.Instance.Run()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Restocking pipeline failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
