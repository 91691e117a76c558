package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hire-backend/controllers"
	chathandler "hire-backend/lib/chat"
	moderationhandler "hire-backend/lib/moderation"
	apimodels "hire-backend/models/api"
	reportapimodels "hire-backend/models/api/report"
)

type chatApiController struct {
	controllers.BaseAPIController
}

func InitChatApiRouters(app fiber.Router) {
	controller := chatApiController{}
	app.Route("chats", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Post("application/:id", controller.ensure)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Get("messages", controller.messages)
			idRoute.Post("report", controller.report)
		})
	})
}

// @Summary Open chat for application
// @Tags Chats
// @Description Returns the existing chat or creates it when the application is shortlisted or accepted
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "application ID"
// @Success 200 {object} apimodels.Response{data=chatapimodels.ChatView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chats/application/{id} [post]
func (c *chatApiController) ensure(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := chathandler.Instance.EnsureChat(c.Identity(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "chat opening failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Own chats
// @Tags Chats
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]chatapimodels.ChatView}
// @Failure 403 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chats [get]
func (c *chatApiController) list(ctx *fiber.Ctx) error {
	resp, err := chathandler.Instance.ListChats(c.Identity(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "chat list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Chat details
// @Tags Chats
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "chat ID"
// @Success 200 {object} apimodels.Response{data=chatapimodels.ChatView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chats/{id} [get]
func (c *chatApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := chathandler.Instance.GetChat(c.Identity(ctx), id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "chat read failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Chat history
// @Tags Chats
// @Description Messages in ascending time order
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "chat ID"
// @Param	page	query	int		false	"page number"
// @Param	limit	query	int		false	"page size"
// @Success 200 {object} apimodels.Response{data=[]chatapimodels.MessageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chats/{id}/messages [get]
func (c *chatApiController) messages(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var pagination apimodels.Pagination
	if err = c.QueryParser(ctx, &pagination); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := chathandler.Instance.ListMessages(c.Identity(ctx), id, pagination)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "message list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Report chat
// @Tags Reports
// @Description Chat participants only
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "chat ID"
// @Param	body body	 reportapimodels.ReportData	true	"request body"
// @Success 200 {object} apimodels.Response{data=reportapimodels.ReportView}
// @Failure 400 {object} apimodels.Response
// @Failure 403 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/chats/{id}/report [post]
func (c *chatApiController) report(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	var payload reportapimodels.ReportData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	resp, err := moderationhandler.Instance.ReportChat(c.Identity(ctx), id, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "report failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
