package wsclient

import (
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	chathandler "hire-backend/lib/chat"
	"hire-backend/lib/identity"
	notificationhandler "hire-backend/lib/notification"
	"hire-backend/lib/utils/memstore"
	"hire-backend/lib/ws/broker"
	connectionhub "hire-backend/lib/ws/hub/connection-hub"
	"hire-backend/models"
	dbmodels "hire-backend/models/db"
	wsmodels "hire-backend/models/ws"
)

type socket struct {
	mu       sync.Mutex
	received []wsmodels.ServerMessage
}

func (s *socket) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.received = append(s.received, v.(wsmodels.ServerMessage))
	return nil
}

func (s *socket) waitFor(t *testing.T, event string) wsmodels.ServerMessage {
	var found wsmodels.ServerMessage
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, msg := range s.received {
			if msg.Event == event {
				found = msg
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond, "event %s not received", event)
	return found
}

func TestHandle(t *testing.T) {
	mem := memstore.New()
	hub := connectionhub.NewInstance(8)
	pusher := broker.NewLocal(hub)
	notifier := notificationhandler.NewInstance(mem.NotificationStore(), mem.EmployerStore(), pusher, nil)
	chats := chathandler.NewInstance(mem.ChatStore(), mem.MessageStore(), mem.ApplicationStore(), memstore.NewFiles(), pusher, hub, notifier, 1<<20)

	employer := identity.New("employer-1", models.EmployerRole)
	seeker := identity.New("seeker-1", models.JobSeekerRole)
	profile := mem.SeedEmployer(employer.UserID, models.VerificationVerified)
	job := mem.SeedJob(profile.ID, models.JobStatusApproved, 1)
	app := mem.SeedApplication(job.ID, seeker.UserID, models.ApplicationStatusShortlisted)
	chat, _, err := mem.ChatStore().Ensure(dbmodels.Chat{
		ApplicationID:  app.ID,
		EmployerID:     profile.ID,
		EmployerUserID: employer.UserID,
		JobSeekerID:    seeker.UserID,
	})
	require.NoError(t, err)

	conn := &socket{}
	sess := hub.AddClient(seeker.UserID, conn)
	client := NewClient(seeker, nil, sess, chats)

	t.Run(`join and send`, func(t *testing.T) {
		client.Handle([]byte(`{"event":"join_chat","data":{"chat_id":"` + chat.ID + `"},"request_id":"r1"}`))
		joined := conn.waitFor(t, wsmodels.EventJoined)
		require.Equal(t, "r1", joined.RequestID)
		require.Equal(t, 1, hub.RoomSize(chat.ID))

		client.Handle([]byte(`{"event":"send_message","data":{"chat_id":"` + chat.ID + `","content":"hi there"}}`))
		conn.waitFor(t, wsmodels.EventNewMessage)
	})

	t.Run(`upload reports its result`, func(t *testing.T) {
		file := base64.StdEncoding.EncodeToString([]byte("resume"))
		client.Handle([]byte(`{"event":"upload_file","data":{"chat_id":"` + chat.ID + `","name":"cv.txt","file":"` + file + `"},"request_id":"up"}`))
		result := conn.waitFor(t, wsmodels.EventUploadResult)
		require.Equal(t, "up", result.RequestID)
		require.Equal(t, "ok", result.Data.(wsmodels.UploadResult).Status)
		conn.waitFor(t, wsmodels.EventFileUploaded)
	})

	t.Run(`errors are reported to the socket`, func(t *testing.T) {
		other := &socket{}
		otherClient := NewClient(identity.New("seeker-2", models.JobSeekerRole), nil, hub.AddClient("seeker-2", other), chats)

		otherClient.Handle([]byte(`not json`))
		otherClient.Handle([]byte(`{"event":"dance"}`))
		otherClient.Handle([]byte(`{"event":"join_chat","data":{"chat_id":"` + chat.ID + `"},"request_id":"j"}`))

		require.Eventually(t, func() bool {
			other.mu.Lock()
			defer other.mu.Unlock()
			return len(other.received) == 3
		}, time.Second, 5*time.Millisecond)
		other.mu.Lock()
		defer other.mu.Unlock()
		for _, msg := range other.received {
			require.Equal(t, wsmodels.EventError, msg.Event)
		}
		require.Equal(t, "j", other.received[2].RequestID)
		require.Equal(t, 1, hub.RoomSize(chat.ID))
	})
}
