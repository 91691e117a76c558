package ws

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	chathandler "hire-backend/lib/chat"
	"hire-backend/lib/identity"
	wsclient "hire-backend/lib/ws/client"
	connectionhub "hire-backend/lib/ws/hub/connection-hub"
	"hire-backend/middleware"
	apimodels "hire-backend/models/api"
)

const identityKey = "identity"

func InitWs(router fiber.Router) {
	router.Use("", func(ctx *fiber.Ctx) error {
		who := middleware.GetIdentity(ctx)
		if who.IsAnonymous() {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("authentication required"))
		}
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals(identityKey, who)
		return ctx.Next()
	})
	router.Get("", websocket.New(chatSocketHandler))
}

// @Summary Chat socket
// @Tags Websocket
// @Description Client events: join_chat, leave_chat, send_message, upload_file. Server events: new_message, file_uploaded, notification, error, upload_result
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 401
// @Failure 426
// @router /api/v1/ws [get]
func chatSocketHandler(c *websocket.Conn) {
	who, _ := c.Locals(identityKey).(identity.Identity)
	sess := connectionhub.Instance.AddClient(who.UserID, c)
	defer connectionhub.Instance.DeleteClient(sess)
	log.WithField("user_id", who.UserID).WithField("session_id", sess.ID).Debug("ws session opened")

	client := wsclient.NewClient(who, c, sess, chathandler.Instance)
	client.Dispatch()
}
