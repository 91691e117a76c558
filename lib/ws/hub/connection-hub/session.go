package connectionhub

import (
	"context"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	wsmodels "hire-backend/models/ws"
)

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteJSON(v interface{}) error
}

type Session struct {
	ID     string
	UserID string

	conn Conn
	// Outbound messages, buffered. A full buffer drops the message.
	sendCh chan wsmodels.ServerMessage
	ctx    context.Context
	stop   func()

	mu    sync.Mutex
	rooms map[string]struct{}
}

func newSession(userID string, conn Conn, buffer int) *Session {
	if buffer <= 0 {
		buffer = 1
	}
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := &Session{
		ID:     uuid.NewString(),
		UserID: userID,
		conn:   conn,
		sendCh: make(chan wsmodels.ServerMessage, buffer),
		ctx:    ctx,
		stop:   cancelFn,
		rooms:  map[string]struct{}{},
	}
	go sess.startSend()
	return sess
}

func (s *Session) startSend() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case msg := <-s.sendCh:
			// select picks randomly when both cases are ready
			if s.ctx.Err() != nil {
				return
			}
			if err := s.conn.WriteJSON(msg); err != nil {
				log.
					WithField("user_id", s.UserID).
					WithField("session_id", s.ID).
					WithError(err).
					Error("socket write failed")
			}
		}
	}
}

// Send enqueues msg without blocking. It reports false when the message was dropped.
func (s *Session) Send(msg wsmodels.ServerMessage) bool {
	select {
	case <-s.ctx.Done():
		return false
	default:
	}
	select {
	case s.sendCh <- msg:
		return true
	default:
		log.
			WithField("user_id", s.UserID).
			WithField("session_id", s.ID).
			WithField("event", msg.Event).
			Warn("socket buffer full, message dropped")
		return false
	}
}

func (s *Session) Done() <-chan struct{} {
	return s.ctx.Done()
}

func (s *Session) inRoom(chatID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rooms[chatID]
	return ok
}

func (s *Session) roomList() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]string, 0, len(s.rooms))
	for chatID := range s.rooms {
		list = append(list, chatID)
	}
	return list
}
