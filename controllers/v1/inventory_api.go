package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"procure-ops-backend/controllers"
	inventoryhandler "procure-ops-backend/lib/inventory"
	apimodels "procure-ops-backend/models/api"
	procurementapimodels "procure-ops-backend/models/api/procurement"
)

type inventoryApiController struct {
	controllers.BaseAPIController
}

func InitInventoryApiRouters(app *fiber.App) {
	controller := inventoryApiController{}
	app.Route("inventory", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Get("needs", controller.needs)
		router.Get("predictions", controller.predictions)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("prediction", controller.prediction)
			idRoute.Post("consumption", controller.recordConsumption)
		})
	})
}

// @Summary Inventory list
// @Tags Inventory
// @Description Inventory items with stock status
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/inventory [get]
func (c *inventoryApiController) list(ctx *fiber.Ctx) error {
	result, err := inventoryhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Inventory list retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Create inventory item
// @Tags Inventory
// @Description Create inventory item
// @Param	body 	body	procurementapimodels.InventoryItemData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/inventory [post]
func (c *inventoryApiController) create(ctx *fiber.Ctx) error {
	var payload procurementapimodels.InventoryItemData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := inventoryhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Inventory item creation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Restocking needs
// @Tags Inventory
// @Description Items at or below their minimum threshold
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/inventory/needs [get]
func (c *inventoryApiController) needs(ctx *fiber.Ctx) error {
	result, err := inventoryhandler.Instance.CheckNeeds()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Restocking needs retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Depletion forecasts
// @Tags Inventory
// @Description Depletion forecast for every item, most urgent first
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/inventory/predictions [get]
func (c *inventoryApiController) predictions(ctx *fiber.Ctx) error {
	result, err := inventoryhandler.Instance.Predict()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Depletion forecast failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Depletion forecast
// @Tags Inventory
// @Description Depletion forecast for one item
// @Param   id	path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/inventory/{id}/prediction [get]
func (c *inventoryApiController) prediction(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := inventoryhandler.Instance.PredictByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Depletion forecast failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Record consumption
// @Tags Inventory
// @Description Record consumed quantity and refresh the stock status
// @Param	body 	body	procurementapimodels.ConsumptionData	true	"request body"
// @Param   id		path    string									true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/inventory/{id}/consumption [post]
func (c *inventoryApiController) recordConsumption(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload procurementapimodels.ConsumptionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := inventoryhandler.Instance.RecordConsumption(id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Consumption recording failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
