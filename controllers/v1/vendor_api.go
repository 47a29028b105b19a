package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"procure-ops-backend/controllers"
	vendorhandler "procure-ops-backend/lib/vendors"
	apimodels "procure-ops-backend/models/api"
	procurementapimodels "procure-ops-backend/models/api/procurement"
)

type vendorApiController struct {
	controllers.BaseAPIController
}

func InitVendorApiRouters(app *fiber.App) {
	controller := vendorApiController{}
	app.Route("vendors", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		router.Post("find_best", controller.findBest)
	})
}

// @Summary Vendor list
// @Tags Vendors
// @Description Registered vendors
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vendors [get]
func (c *vendorApiController) list(ctx *fiber.Ctx) error {
	result, err := vendorhandler.Instance.List()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Vendor list retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Create vendor
// @Tags Vendors
// @Description Register vendor
// @Param	body 	body	procurementapimodels.VendorData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vendors [post]
func (c *vendorApiController) create(ctx *fiber.Ctx) error {
	var payload procurementapimodels.VendorData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := vendorhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Vendor creation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Recommend vendor
// @Tags Vendors
// @Description Pick the most suitable vendor for a category
// @Param	body 	body	procurementapimodels.VendorFindRequest	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/vendors/find_best [post]
func (c *vendorApiController) findBest(ctx *fiber.Ctx) error {
	var payload procurementapimodels.VendorFindRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := vendorhandler.Instance.FindBest(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Vendor recommendation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
