package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hire-backend/controllers"
	freelancerhandler "hire-backend/lib/freelancer"
	moderationhandler "hire-backend/lib/moderation"
	apimodels "hire-backend/models/api"
	freelancerapimodels "hire-backend/models/api/freelancer"
	moderationapimodels "hire-backend/models/api/moderation"
)

type freelancerApiController struct {
	controllers.BaseAPIController
}

func InitFreelancerApiRouters(app fiber.Router) {
	controller := freelancerApiController{}
	app.Route("freelancers", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("", controller.create)
		// literal routes before :id
		router.Get("me", controller.getMine)
		router.Put("me", controller.updateMine)
		router.Delete("me", controller.deleteMine)
		router.Get("contact-requests", controller.listContactRequests)
		router.Put("contact-requests/:id", controller.respondContactRequest)
		router.Get(":id", controller.get)
		router.Post(":id/contact", controller.contact)
	})
}

// @Summary Freelancer directory
// @Tags Freelancers
// @Description Verified freelancers only, best rated first
// @Param	q	query	string	false	"title or description search"
// @Param	skill	query	string	false	"exact skill"
// @Param	min_rate	query	number	false	"minimal hourly rate"
// @Param	max_rate	query	number	false	"maximal hourly rate"
// @Param	availability	query	string	false	"available, busy or unavailable"
// @Param	page	query	int		false	"page number"
// @Param	limit	query	int		false	"page size"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]freelancerapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/freelancers [get]
func (c *freelancerApiController) list(ctx *fiber.Ctx) error {
	var filter freelancerapimodels.FreelancerFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, rowCount, err := freelancerhandler.Instance.List(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "freelancer list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Create freelancer profile
// @Tags Freelancers
// @Description One profile per job seeker, hidden from the directory until verified
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 freelancerapimodels.ProfileData	true	"request body"
// @Success 200 {object} apimodels.Response{data=freelancerapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/freelancers [post]
func (c *freelancerApiController) create(ctx *fiber.Ctx) error {
	var payload freelancerapimodels.ProfileData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := freelancerhandler.Instance.CreateProfile(c.Identity(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "freelancer profile creation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Own freelancer profile
// @Tags Freelancers
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=freelancerapimodels.ProfileView}
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/freelancers/me [get]
func (c *freelancerApiController) getMine(ctx *fiber.Ctx) error {
	resp, err := freelancerhandler.Instance.GetMine(c.Identity(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "freelancer profile read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Update freelancer profile
// @Tags Freelancers
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 freelancerapimodels.ProfileUpdateData	true	"request body, only present fields are written"
// @Success 200 {object} apimodels.Response{data=freelancerapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/freelancers/me [put]
func (c *freelancerApiController) updateMine(ctx *fiber.Ctx) error {
	var payload freelancerapimodels.ProfileUpdateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := freelancerhandler.Instance.UpdateMine(c.Identity(ctx), payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "freelancer profile update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Delete freelancer profile
// @Tags Freelancers
// @Description Contact requests of the profile are removed too
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/freelancers/me [delete]
func (c *freelancerApiController) deleteMine(ctx *fiber.Ctx) error {
	if err := freelancerhandler.Instance.DeleteMine(c.Identity(ctx)); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "freelancer profile deletion failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Freelancer details
// @Tags Freelancers
// @Param   id          		path    string  true         "freelancer profile ID"
// @Success 200 {object} apimodels.Response{data=freelancerapimodels.ProfileView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/freelancers/{id} [get]
func (c *freelancerApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := freelancerhandler.Instance.Get(c.Identity(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "freelancer read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Contact freelancer
// @Tags Freelancers
// @Description The request waits for admin approval before the freelancer sees it
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "freelancer profile ID"
// @Param	body body	 freelancerapimodels.ContactData	true	"request body"
// @Success 200 {object} apimodels.Response{data=freelancerapimodels.ContactRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/freelancers/{id}/contact [post]
func (c *freelancerApiController) contact(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload freelancerapimodels.ContactData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := freelancerhandler.Instance.Contact(c.Identity(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "contact request failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Contact requests
// @Tags Freelancers
// @Description Admins see all requests, a freelancer sees approved requests for their own profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	status	query	string	false	"request status, admin only"
// @Param	freelancer_id	query	string	false	"freelancer profile ID, admin only"
// @Param	page	query	int		false	"page number"
// @Param	limit	query	int		false	"page size"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]freelancerapimodels.ContactRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/freelancers/contact-requests [get]
func (c *freelancerApiController) listContactRequests(ctx *fiber.Ctx) error {
	var filter freelancerapimodels.ContactRequestFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, rowCount, err := freelancerhandler.Instance.ListContactRequests(c.Identity(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "contact request list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Approve or reject contact request
// @Tags Freelancers
// @Description Admin only. Approval mails the sender the freelancer's contact email
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "contact request ID"
// @Param	body body	 moderationapimodels.RespondContactRequestData	true	"request body"
// @Success 200 {object} apimodels.Response{data=freelancerapimodels.ContactRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/freelancers/contact-requests/{id} [put]
func (c *freelancerApiController) respondContactRequest(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload moderationapimodels.RespondContactRequestData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := moderationhandler.Instance.RespondContactRequest(c.Identity(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "contact request moderation failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
