package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"procure-ops-backend/controllers"
	approvalhandler "procure-ops-backend/lib/approval"
	apimodels "procure-ops-backend/models/api"
	approvalapimodels "procure-ops-backend/models/api/approval"
)

type approvalApiController struct {
	controllers.BaseAPIController
}

func InitApprovalApiRouters(app *fiber.App) {
	controller := approvalApiController{}
	app.Route("approvals", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("pending", controller.pending)
		router.Post("process", controller.process)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("history", controller.history)
		})
	})
}

// @Summary Create approval request
// @Tags Approvals
// @Description Open an approval request with the chain derived from the amount
// @Param	body 	body	approvalapimodels.ApprovalCreateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals [post]
func (c *approvalApiController) create(ctx *fiber.Ctx) error {
	var payload approvalapimodels.ApprovalCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := approvalhandler.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Approval request creation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Pending approvals
// @Tags Approvals
// @Description Approval requests still awaiting a decision
// @Success 200 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/pending [get]
func (c *approvalApiController) pending(ctx *fiber.Ctx) error {
	result, err := approvalhandler.Instance.ListPending()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Pending approvals retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Process approval decision
// @Tags Approvals
// @Description Apply one approver decision at the current chain level
// @Param	body 	body	approvalapimodels.ApprovalProcessData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/process [post]
func (c *approvalApiController) process(ctx *fiber.Ctx) error {
	var payload approvalapimodels.ApprovalProcessData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := approvalhandler.Instance.Process(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Approval decision processing failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Approval request
// @Tags Approvals
// @Description Approval request by id
// @Param   id	path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/{id} [get]
func (c *approvalApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := approvalhandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Approval request retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Approval history
// @Tags Approvals
// @Description Decision trail of one approval request
// @Param   id	path    string	true    "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/approvals/{id}/history [get]
func (c *approvalApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := approvalhandler.Instance.History(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Approval history retrieval failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}
