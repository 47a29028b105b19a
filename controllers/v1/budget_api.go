package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"procure-ops-backend/controllers"
	budgethandler "procure-ops-backend/lib/budget"
	apimodels "procure-ops-backend/models/api"
	procurementapimodels "procure-ops-backend/models/api/procurement"
)

type budgetApiController struct {
	controllers.BaseAPIController
}

func InitBudgetApiRouters(app *fiber.App) {
	controller := budgetApiController{}
	app.Route("budgets", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("status", controller.status)
		router.Post("check", controller.check)
	})
	app.Route("purchase_orders", func(router fiber.Router) {
		router.Get("", controller.listOrders)
		router.Post("", controller.createOrder)
	})
}

// @Summary Create budget
// @Tags Budgets
// @Description Create a budget period for a category
// @Param	body 	body	procurementapimodels.BudgetData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/budgets [post]
func (c *budgetApiController) create(ctx *fiber.Ctx) error {
	var payload procurementapimodels.BudgetData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := budgethandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Budget creation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Budget status
// @Tags Budgets
// @Description Active budgets with spend and utilization
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/budgets/status [get]
func (c *budgetApiController) status(ctx *fiber.Ctx) error {
	result, err := budgethandler.Instance.Status()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Budget status retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Check budget limit
// @Tags Budgets
// @Description Check whether an amount fits the remaining category budget
// @Param	body 	body	procurementapimodels.BudgetCheckData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/budgets/check [post]
func (c *budgetApiController) check(ctx *fiber.Ctx) error {
	var payload procurementapimodels.BudgetCheckData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := budgethandler.Instance.CheckLimit(payload.Category, payload.Amount)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Budget check failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Purchase order list
// @Tags Purchase orders
// @Description Purchase orders with vendor and item details
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/purchase_orders [get]
func (c *budgetApiController) listOrders(ctx *fiber.Ctx) error {
	result, err := budgethandler.Instance.ListPurchaseOrders()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Purchase order list retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

type purchaseOrderCreated struct {
	PurchaseOrder interface{} `json:"purchase_order"`
	Approval      interface{} `json:"approval"`
}

// @Summary Create purchase order
// @Tags Purchase orders
// @Description Create a draft order, book the spend and open the approval request
// @Param	body 	body	procurementapimodels.PurchaseOrderCreateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/purchase_orders [post]
func (c *budgetApiController) createOrder(ctx *fiber.Ctx) error {
	var payload procurementapimodels.PurchaseOrderCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	order, approval, err := budgethandler.Instance.CreatePurchaseOrder(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Purchase order creation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(purchaseOrderCreated{
		PurchaseOrder: order,
		Approval:      approval,
	}))
}
