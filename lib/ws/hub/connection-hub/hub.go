package connectionhub

import (
	"sync"

	wsmodels "hire-backend/models/ws"
)

type Provider interface {
	AddClient(userID string, conn Conn) *Session
	DeleteClient(sess *Session)
	Join(sess *Session, chatID string)
	Leave(sess *Session, chatID string)
	// SendToRoom delivers msg to every session currently joined to chatID.
	SendToRoom(chatID string, msg wsmodels.ServerMessage) (delivered int)
	// SendToUser delivers msg to every session of userID.
	SendToUser(userID string, msg wsmodels.ServerMessage) (delivered int)
	IsConnected(userID string) bool
	RoomSize(chatID string) int
}

var Instance Provider

func Init(sessionBuffer int) {
	Instance = NewInstance(sessionBuffer)
}

func NewInstance(sessionBuffer int) Provider {
	return &impl{
		clients:       map[string]map[string]*Session{},
		rooms:         map[string]map[string]*Session{},
		sessionBuffer: sessionBuffer,
	}
}

type impl struct {
	mu            sync.RWMutex
	clients       map[string]map[string]*Session // map[userID]map[sessionID]
	rooms         map[string]map[string]*Session // map[chatID]map[sessionID]
	sessionBuffer int
}

func (i *impl) AddClient(userID string, conn Conn) *Session {
	sess := newSession(userID, conn, i.sessionBuffer)
	i.mu.Lock()
	defer i.mu.Unlock()
	userSessions, ok := i.clients[userID]
	if !ok {
		userSessions = map[string]*Session{}
		i.clients[userID] = userSessions
	}
	userSessions[sess.ID] = sess
	return sess
}

func (i *impl) DeleteClient(sess *Session) {
	if sess == nil {
		return
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if userSessions, ok := i.clients[sess.UserID]; ok {
		delete(userSessions, sess.ID)
		if len(userSessions) == 0 {
			delete(i.clients, sess.UserID)
		}
	}
	for _, chatID := range sess.roomList() {
		i.leaveLocked(sess, chatID)
	}
	sess.stop()
}

func (i *impl) Join(sess *Session, chatID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	members, ok := i.rooms[chatID]
	if !ok {
		members = map[string]*Session{}
		i.rooms[chatID] = members
	}
	members[sess.ID] = sess
	sess.mu.Lock()
	sess.rooms[chatID] = struct{}{}
	sess.mu.Unlock()
}

func (i *impl) Leave(sess *Session, chatID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.leaveLocked(sess, chatID)
}

func (i *impl) leaveLocked(sess *Session, chatID string) {
	if members, ok := i.rooms[chatID]; ok {
		delete(members, sess.ID)
		if len(members) == 0 {
			delete(i.rooms, chatID)
		}
	}
	sess.mu.Lock()
	delete(sess.rooms, chatID)
	sess.mu.Unlock()
}

func (i *impl) SendToRoom(chatID string, msg wsmodels.ServerMessage) (delivered int) {
	i.mu.RLock()
	members := make([]*Session, 0, len(i.rooms[chatID]))
	for _, sess := range i.rooms[chatID] {
		members = append(members, sess)
	}
	i.mu.RUnlock()
	for _, sess := range members {
		if sess.Send(msg) {
			delivered++
		}
	}
	return delivered
}

func (i *impl) SendToUser(userID string, msg wsmodels.ServerMessage) (delivered int) {
	i.mu.RLock()
	sessions := make([]*Session, 0, len(i.clients[userID]))
	for _, sess := range i.clients[userID] {
		sessions = append(sessions, sess)
	}
	i.mu.RUnlock()
	for _, sess := range sessions {
		if sess.Send(msg) {
			delivered++
		}
	}
	return delivered
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.clients[userID]) > 0
}

func (i *impl) RoomSize(chatID string) int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.rooms[chatID])
}
