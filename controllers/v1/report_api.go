package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"procure-ops-backend/controllers"
	reporthandler "procure-ops-backend/lib/report"
)

type reportApiController struct {
	controllers.BaseAPIController
}

func InitReportApiRouters(app *fiber.App) {
	controller := reportApiController{}
	app.Route("reports", func(router fiber.Router) {
		router.Get("approvals", controller.approvals)
		router.Get("assignments", controller.assignments)
	})
}

// @Summary Approvals report
// @Tags Reports
// @Description Download the approvals xlsx report
// @Success 200
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/approvals [get]
func (c *reportApiController) approvals(ctx *fiber.Ctx) error {
	fileName, buf, err := reporthandler.Instance.ApprovalReport(ctx.Context())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Approvals report generation failed")
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Assignments report
// @Tags Reports
// @Description Download the assignment log xlsx report
// @Success 200
// @Failure 500 {object} apimodels.Response
// @router /api/v1/reports/assignments [get]
func (c *reportApiController) assignments(ctx *fiber.Ctx) error {
	fileName, buf, err := reporthandler.Instance.AssignmentReport(ctx.Context())
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Assignments report generation failed")
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
