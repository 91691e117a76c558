package wsclient

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	chathandler "hire-backend/lib/chat"
	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	connectionhub "hire-backend/lib/ws/hub/connection-hub"
	chatapimodels "hire-backend/models/api/chat"
	wsmodels "hire-backend/models/ws"
)

const requestTimeout = 30 * time.Second

// Reader is the inbound half of a websocket connection.
type Reader interface {
	ReadMessage() (messageType int, p []byte, err error)
}

func NewClient(who identity.Identity, conn Reader, sess *connectionhub.Session, chats chathandler.Provider) *WsClient {
	return &WsClient{
		who:   who,
		conn:  conn,
		sess:  sess,
		chats: chats,
	}
}

type WsClient struct {
	who   identity.Identity
	conn  Reader
	sess  *connectionhub.Session
	chats chathandler.Provider
}

var closeCodes []int

func init() {
	for i := websocket.CloseNormalClosure; i <= websocket.CloseTLSHandshake; i++ {
		closeCodes = append(closeCodes, i)
	}
}

// Dispatch reads client events until the connection closes.
func (c *WsClient) Dispatch() {
	for {
		if c.conn == nil {
			return
		}
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, closeCodes...) {
				c.getLogger().WithError(err).Error("ws message read failed")
			}
			return
		}
		c.Handle(data)
	}
}

// Handle processes a single client event. Replies go through the session send queue.
func (c *WsClient) Handle(data []byte) {
	msg := wsmodels.ClientMessage{}
	if err := json.Unmarshal(data, &msg); err != nil {
		c.sess.Send(wsmodels.NewError("invalid message format", ""))
		return
	}
	logger := c.getLogger().WithField("event", msg.Event)
	logger.Debug("ws message received")

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	switch msg.Event {
	case wsmodels.EventJoinChat:
		ref := wsmodels.ChatRef{}
		if !c.decode(msg, &ref) {
			return
		}
		if err := c.chats.JoinRoom(c.sess, ref.ChatID); err != nil {
			c.replyError(msg, err)
			return
		}
		c.sess.Send(wsmodels.ServerMessage{Event: wsmodels.EventJoined, Data: ref, RequestID: msg.RequestID})
	case wsmodels.EventLeaveChat:
		ref := wsmodels.ChatRef{}
		if !c.decode(msg, &ref) {
			return
		}
		c.chats.LeaveRoom(c.sess, ref.ChatID)
	case wsmodels.EventSendMessage:
		payload := chatapimodels.SendMessageData{}
		if !c.decode(msg, &payload) {
			return
		}
		if _, err := c.chats.SendMessage(ctx, c.who, payload); err != nil {
			c.replyError(msg, err)
		}
	case wsmodels.EventUploadFile:
		payload := chatapimodels.UploadFileData{}
		if !c.decode(msg, &payload) {
			return
		}
		result, err := c.chats.UploadFile(ctx, c.who, payload)
		if err != nil {
			c.sess.Send(wsmodels.ServerMessage{
				Event:     wsmodels.EventUploadResult,
				Data:      wsmodels.UploadResult{Status: "error", Error: clientMessage(err)},
				RequestID: msg.RequestID,
			})
			c.logFailure(msg, err)
			return
		}
		c.sess.Send(wsmodels.ServerMessage{
			Event:     wsmodels.EventUploadResult,
			Data:      wsmodels.UploadResult{Status: "ok", Url: result.Url},
			RequestID: msg.RequestID,
		})
	default:
		c.sess.Send(wsmodels.NewError("unknown event: "+msg.Event, msg.RequestID))
	}
}

func (c *WsClient) decode(msg wsmodels.ClientMessage, target interface{}) bool {
	if len(msg.Data) == 0 {
		c.sess.Send(wsmodels.NewError("event data is empty", msg.RequestID))
		return false
	}
	if err := json.Unmarshal(msg.Data, target); err != nil {
		c.sess.Send(wsmodels.NewError("invalid event data", msg.RequestID))
		return false
	}
	return true
}

func (c *WsClient) replyError(msg wsmodels.ClientMessage, err error) {
	c.sess.Send(wsmodels.NewError(clientMessage(err), msg.RequestID))
	c.logFailure(msg, err)
}

func (c *WsClient) logFailure(msg wsmodels.ClientMessage, err error) {
	logger := c.getLogger().WithField("event", msg.Event).WithError(err)
	if _, typed := errs.KindOf(err); !typed {
		logger.Error("ws event failed")
		return
	}
	logger.Warn("ws event rejected")
}

// clientMessage hides unexpected error details from the socket.
func clientMessage(err error) string {
	if _, typed := errs.KindOf(err); !typed {
		return "internal error"
	}
	return errs.Message(err)
}

func (c *WsClient) getLogger() *log.Entry {
	return log.
		WithField("user_id", c.who.UserID).
		WithField("session_id", c.sess.ID)
}
