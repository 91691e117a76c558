package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hire-backend/controllers"
	employerhandler "hire-backend/lib/employer"
	apimodels "hire-backend/models/api"
	employerapimodels "hire-backend/models/api/employer"
)

type employerApiController struct {
	controllers.BaseAPIController
}

func InitEmployerApiRouters(app fiber.Router) {
	controller := employerApiController{}
	app.Route("employers", func(router fiber.Router) {
		router.Post("profile", controller.createProfile)
		router.Get("profile", controller.getProfile)
		router.Put("profile", controller.updateProfile)
	})
}

// @Summary Create employer profile
// @Tags Employers
// @Description The profile starts in pending verification
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employerapimodels.ProfileData	true	"request body"
// @Success 200 {object} apimodels.Response{data=employerapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employers/profile [post]
func (c *employerApiController) createProfile(ctx *fiber.Ctx) error {
	var payload employerapimodels.ProfileData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := employerhandler.Instance.CreateProfile(c.Identity(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "profile creation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Own employer profile
// @Tags Employers
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=employerapimodels.ProfileView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employers/profile [get]
func (c *employerApiController) getProfile(ctx *fiber.Ctx) error {
	resp, err := employerhandler.Instance.GetProfile(c.Identity(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "profile read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update employer profile
// @Tags Employers
// @Description Verification status is kept
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 employerapimodels.ProfileData	true	"request body"
// @Success 200 {object} apimodels.Response{data=employerapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employers/profile [put]
func (c *employerApiController) updateProfile(ctx *fiber.Ctx) error {
	var payload employerapimodels.ProfileData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := employerhandler.Instance.UpdateProfile(c.Identity(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "profile update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
