package broker

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	connectionhub "hire-backend/lib/ws/hub/connection-hub"
	wsmodels "hire-backend/models/ws"
)

type hubSpy struct {
	connectionhub.Provider
	rooms map[string][]wsmodels.ServerMessage
	users map[string][]wsmodels.ServerMessage
}

func newHubSpy() *hubSpy {
	return &hubSpy{
		rooms: map[string][]wsmodels.ServerMessage{},
		users: map[string][]wsmodels.ServerMessage{},
	}
}

func (h *hubSpy) SendToRoom(chatID string, msg wsmodels.ServerMessage) int {
	h.rooms[chatID] = append(h.rooms[chatID], msg)
	return 1
}

func (h *hubSpy) SendToUser(userID string, msg wsmodels.ServerMessage) int {
	h.users[userID] = append(h.users[userID], msg)
	return 1
}

func TestBroker(t *testing.T) {
	t.Run(`local broker delivers directly`, func(t *testing.T) {
		spy := newHubSpy()
		local := NewLocal(spy)
		require.NoError(t, local.PublishRoom(context.Background(), "chat-1", wsmodels.ServerMessage{Event: wsmodels.EventNewMessage}))
		require.NoError(t, local.PublishUser(context.Background(), "user-1", wsmodels.ServerMessage{Event: wsmodels.EventNotification}))
		require.Len(t, spy.rooms["chat-1"], 1)
		require.Len(t, spy.users["user-1"], 1)
	})

	t.Run(`redis payload is routed by channel`, func(t *testing.T) {
		spy := newHubSpy()
		redisBroker := NewRedis(nil, spy)
		payload, err := json.Marshal(wsmodels.ServerMessage{Event: wsmodels.EventNewMessage, Data: map[string]string{"content": "hi"}})
		require.NoError(t, err)

		redisBroker.dispatch(roomPrefix+"chat-7", string(payload))
		redisBroker.dispatch(userPrefix+"user-7", string(payload))
		redisBroker.dispatch(roomPrefix+"chat-7", "{broken")

		require.Len(t, spy.rooms["chat-7"], 1)
		require.Equal(t, wsmodels.EventNewMessage, spy.rooms["chat-7"][0].Event)
		require.Len(t, spy.users["user-7"], 1)
	})
}
