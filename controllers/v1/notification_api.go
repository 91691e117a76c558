package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"hire-backend/controllers"
	notificationhandler "hire-backend/lib/notification"
	apimodels "hire-backend/models/api"
	notificationapimodels "hire-backend/models/api/notification"
)

type notificationApiController struct {
	controllers.BaseAPIController
}

func InitNotificationApiRouters(app fiber.Router) {
	controller := notificationApiController{}
	app.Route("notifications", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("unread_count", controller.unreadCount)
		router.Put("read_all", controller.readAll)
		router.Put(":id/read", controller.read)
	})
}

// @Summary Notification inbox
// @Tags Notifications
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	unread_only	query	bool	false	"unread only"
// @Param	page		query	int		false	"page number"
// @Param	limit		query	int		false	"page size"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]notificationapimodels.NotificationView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications [get]
func (c *notificationApiController) list(ctx *fiber.Ctx) error {
	var filter notificationapimodels.NotificationFilter
	if err := c.QueryParser(ctx, &filter); err != nil {
		return c.SendBadRequest(ctx, err)
	}
	list, rowCount, err := notificationhandler.Instance.List(c.Identity(ctx), filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "notification list failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Unread notification count
// @Tags Notifications
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.UnreadCount}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/unread_count [get]
func (c *notificationApiController) unreadCount(ctx *fiber.Ctx) error {
	count, err := notificationhandler.Instance.UnreadCount(c.Identity(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "unread count failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(notificationapimodels.UnreadCount{Count: count}))
}

// @Summary Mark notification read
// @Tags Notifications
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  true         "notification ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/{id}/read [put]
func (c *notificationApiController) read(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return c.SendBadRequest(ctx, err)
	}
	if err = notificationhandler.Instance.MarkRead(c.Identity(ctx), id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "notification update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Mark every notification read
// @Tags Notifications
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=notificationapimodels.UnreadCount}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/notifications/read_all [put]
func (c *notificationApiController) readAll(ctx *fiber.Ctx) error {
	count, err := notificationhandler.Instance.MarkAllRead(c.Identity(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "notification update failed")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(notificationapimodels.UnreadCount{Count: count}))
}
