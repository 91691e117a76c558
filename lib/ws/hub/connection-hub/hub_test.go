package connectionhub

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	wsmodels "hire-backend/models/ws"
)

type fakeConn struct {
	mu       sync.Mutex
	received []wsmodels.ServerMessage
	block    chan struct{}
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.received = append(f.received, v.(wsmodels.ServerMessage))
	return nil
}

func (f *fakeConn) events() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make([]string, 0, len(f.received))
	for _, msg := range f.received {
		result = append(result, msg.Event)
	}
	return result
}

func waitEvents(t *testing.T, conn *fakeConn, count int) []string {
	require.Eventually(t, func() bool {
		return len(conn.events()) >= count
	}, time.Second, 5*time.Millisecond)
	return conn.events()
}

func TestHub(t *testing.T) {
	t.Run(`room broadcast reaches joined sessions only`, func(t *testing.T) {
		hub := NewInstance(4)
		employerConn, seekerConn, strangerConn := &fakeConn{}, &fakeConn{}, &fakeConn{}
		employer := hub.AddClient("employer", employerConn)
		seeker := hub.AddClient("seeker", seekerConn)
		hub.AddClient("stranger", strangerConn)

		hub.Join(employer, "chat-1")
		hub.Join(seeker, "chat-1")
		require.Equal(t, 2, hub.RoomSize("chat-1"))

		delivered := hub.SendToRoom("chat-1", wsmodels.ServerMessage{Event: wsmodels.EventNewMessage})
		require.Equal(t, 2, delivered)
		require.Equal(t, []string{wsmodels.EventNewMessage}, waitEvents(t, employerConn, 1))
		require.Equal(t, []string{wsmodels.EventNewMessage}, waitEvents(t, seekerConn, 1))
		require.Empty(t, strangerConn.events())
	})

	t.Run(`leave and disconnect drop membership`, func(t *testing.T) {
		hub := NewInstance(4)
		conn := &fakeConn{}
		sess := hub.AddClient("user", conn)
		hub.Join(sess, "chat-1")
		hub.Join(sess, "chat-2")
		hub.Leave(sess, "chat-1")
		require.Equal(t, 0, hub.RoomSize("chat-1"))
		require.Equal(t, 1, hub.RoomSize("chat-2"))
		require.True(t, hub.IsConnected("user"))

		hub.DeleteClient(sess)
		require.Equal(t, 0, hub.RoomSize("chat-2"))
		require.False(t, hub.IsConnected("user"))
		require.Equal(t, 0, hub.SendToRoom("chat-2", wsmodels.ServerMessage{Event: wsmodels.EventNewMessage}))
		require.False(t, sess.Send(wsmodels.ServerMessage{Event: wsmodels.EventNewMessage}))
	})

	t.Run(`user push reaches every session of the user`, func(t *testing.T) {
		hub := NewInstance(4)
		first, second := &fakeConn{}, &fakeConn{}
		hub.AddClient("user", first)
		hub.AddClient("user", second)
		require.Equal(t, 2, hub.SendToUser("user", wsmodels.ServerMessage{Event: wsmodels.EventNotification}))
		waitEvents(t, first, 1)
		waitEvents(t, second, 1)
		require.Equal(t, 0, hub.SendToUser("nobody", wsmodels.ServerMessage{Event: wsmodels.EventNotification}))
	})

	t.Run(`slow socket drops messages instead of blocking`, func(t *testing.T) {
		hub := NewInstance(1)
		conn := &fakeConn{block: make(chan struct{})}
		sess := hub.AddClient("slow", conn)
		hub.Join(sess, "chat-1")

		done := make(chan struct{})
		go func() {
			for k := 0; k < 10; k++ {
				hub.SendToRoom("chat-1", wsmodels.ServerMessage{Event: wsmodels.EventNewMessage})
			}
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("broadcast blocked on a slow socket")
		}
		close(conn.block)
		hub.DeleteClient(sess)
	})
}

type gateConn struct {
	fakeConn
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gateConn) WriteJSON(v interface{}) error {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	return g.fakeConn.WriteJSON(v)
}

func TestSessionStop(t *testing.T) {
	t.Run(`queued messages are not written after stop`, func(t *testing.T) {
		conn := &gateConn{entered: make(chan struct{}), release: make(chan struct{})}
		sess := newSession("user", conn, 4)

		require.True(t, sess.Send(wsmodels.ServerMessage{Event: wsmodels.EventNewMessage}))
		select {
		case <-conn.entered:
		case <-time.After(time.Second):
			t.Fatal("writer did not pick the first message")
		}
		require.True(t, sess.Send(wsmodels.ServerMessage{Event: wsmodels.EventNotification}))
		require.True(t, sess.Send(wsmodels.ServerMessage{Event: wsmodels.EventNotification}))

		sess.stop()
		close(conn.release)

		waitEvents(t, &conn.fakeConn, 1)
		require.Never(t, func() bool {
			return len(conn.events()) > 1
		}, 100*time.Millisecond, 5*time.Millisecond)
		require.False(t, sess.Send(wsmodels.ServerMessage{Event: wsmodels.EventNewMessage}))
	})
}
