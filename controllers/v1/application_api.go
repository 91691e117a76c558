package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hire-backend/controllers"
	applicationhandler "hire-backend/lib/application"
	apimodels "hire-backend/models/api"
	applicationapimodels "hire-backend/models/api/application"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app fiber.Router) {
	controller := applicationApiController{}
	app.Route("applications", func(router fiber.Router) {
		router.Get("me", controller.listMine)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("status", controller.updateStatus)
		})
	})
}

// @Summary Own applications
// @Tags Applications
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/me [get]
func (c *applicationApiController) listMine(ctx *fiber.Ctx) error {
	resp, err := applicationhandler.Instance.ListByUser(c.Identity(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Application details
// @Tags Applications
// @Description Visible to the applicant, the job owner and admins
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "application ID"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id} [get]
func (c *applicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := applicationhandler.Instance.Get(c.Identity(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Change application status
// @Tags Applications
// @Description Job owner only. Accepting fails once the job vacancies are filled
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "application ID"
// @Param	body body	 applicationapimodels.StatusData	true	"request body"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/status [put]
func (c *applicationApiController) updateStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload applicationapimodels.StatusData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = payload.Validate(); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := applicationhandler.Instance.UpdateStatus(c.Identity(ctx), id, payload.Status)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "application status update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
