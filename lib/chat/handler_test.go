package chathandler

import (
	"context"
	"encoding/base64"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	notificationhandler "hire-backend/lib/notification"
	"hire-backend/lib/utils/memstore"
	"hire-backend/lib/ws/broker"
	connectionhub "hire-backend/lib/ws/hub/connection-hub"
	"hire-backend/models"
	apimodels "hire-backend/models/api"
	chatapimodels "hire-backend/models/api/chat"
	dbmodels "hire-backend/models/db"
	wsmodels "hire-backend/models/ws"
)

type recorder struct {
	mu       sync.Mutex
	received []wsmodels.ServerMessage
}

func (r *recorder) WriteJSON(v interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.received = append(r.received, v.(wsmodels.ServerMessage))
	return nil
}

func (r *recorder) events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []string{}
	for _, msg := range r.received {
		result = append(result, msg.Event)
	}
	return result
}

type fixture struct {
	mem      *memstore.DB
	files    *memstore.Files
	hub      connectionhub.Provider
	handler  Provider
	employer identity.Identity
	seeker   identity.Identity
	app      dbmodels.Application
}

func newFixture(t *testing.T, status models.ApplicationStatus) fixture {
	t.Helper()
	mem := memstore.New()
	files := memstore.NewFiles()
	hub := connectionhub.NewInstance(8)
	pusher := broker.NewLocal(hub)
	notifier := notificationhandler.NewInstance(mem.NotificationStore(), mem.EmployerStore(), pusher, nil)
	employer := identity.New("employer-1", models.EmployerRole)
	seeker := identity.New("seeker-1", models.JobSeekerRole)
	profile := mem.SeedEmployer(employer.UserID, models.VerificationVerified)
	job := mem.SeedJob(profile.ID, models.JobStatusApproved, 1)
	return fixture{
		mem:      mem,
		files:    files,
		hub:      hub,
		handler:  NewInstance(mem.ChatStore(), mem.MessageStore(), mem.ApplicationStore(), files, pusher, hub, notifier, 1024),
		employer: employer,
		seeker:   seeker,
		app:      mem.SeedApplication(job.ID, seeker.UserID, status),
	}
}

func TestEnsureChat(t *testing.T) {
	t.Run(`not eligible until shortlisted`, func(t *testing.T) {
		f := newFixture(t, models.ApplicationStatusSubmitted)
		_, err := f.handler.EnsureChat(f.employer, f.app.ID)
		require.True(t, errs.Is(err, errs.KindNotEligible))
		require.Equal(t, 0, f.mem.ChatCount())

		f.mem.Applications[f.app.ID].Status = models.ApplicationStatusShortlisted
		first, err := f.handler.EnsureChat(f.employer, f.app.ID)
		require.NoError(t, err)
		require.Equal(t, f.app.ID, first.ApplicationID)
		require.Equal(t, f.employer.UserID, first.EmployerUserID)
		require.Equal(t, f.seeker.UserID, first.JobSeekerID)

		second, err := f.handler.EnsureChat(f.seeker, f.app.ID)
		require.NoError(t, err)
		require.Equal(t, first.ID, second.ID)
		require.Equal(t, 1, f.mem.ChatCount())
	})

	t.Run(`rejected application is not eligible`, func(t *testing.T) {
		f := newFixture(t, models.ApplicationStatusRejected)
		_, err := f.handler.EnsureChat(f.seeker, f.app.ID)
		require.True(t, errs.Is(err, errs.KindNotEligible))
	})

	t.Run(`outsiders are forbidden`, func(t *testing.T) {
		f := newFixture(t, models.ApplicationStatusAccepted)
		_, err := f.handler.EnsureChat(identity.New("seeker-2", models.JobSeekerRole), f.app.ID)
		require.True(t, errs.Is(err, errs.KindForbidden))
		_, err = f.handler.EnsureChat(identity.New("admin-1", models.AdminRole), f.app.ID)
		require.True(t, errs.Is(err, errs.KindForbidden))
		_, err = f.handler.EnsureChat(f.seeker, "missing")
		require.True(t, errs.Is(err, errs.KindNotFound))
	})
}

func TestMessaging(t *testing.T) {
	ctx := context.Background()

	t.Run(`message reaches joined sessions and notifies the counterpart`, func(t *testing.T) {
		f := newFixture(t, models.ApplicationStatusShortlisted)
		chat, err := f.handler.EnsureChat(f.employer, f.app.ID)
		require.NoError(t, err)

		employerConn, seekerConn := &recorder{}, &recorder{}
		employerSess := f.hub.AddClient(f.employer.UserID, employerConn)
		seekerSess := f.hub.AddClient(f.seeker.UserID, seekerConn)
		require.NoError(t, f.handler.JoinRoom(employerSess, chat.ID))
		require.NoError(t, f.handler.JoinRoom(seekerSess, chat.ID))

		view, err := f.handler.SendMessage(ctx, f.seeker, chatapimodels.SendMessageData{ChatID: chat.ID, Content: "hello"})
		require.NoError(t, err)
		require.Equal(t, f.seeker.UserID, view.SenderID)

		require.Eventually(t, func() bool {
			return len(employerConn.events()) >= 2 && len(seekerConn.events()) >= 1
		}, time.Second, 5*time.Millisecond)
		require.Contains(t, employerConn.events(), wsmodels.EventNewMessage)
		require.Contains(t, employerConn.events(), wsmodels.EventNotification)
		require.Equal(t, []string{wsmodels.EventNewMessage}, seekerConn.events())

		notifications := f.mem.NotificationsFor(f.employer.UserID)
		require.Len(t, notifications, 1)
		require.Equal(t, models.NotificationNewMessage, notifications[0].Type)

		messages, err := f.handler.ListMessages(f.employer, chat.ID, apimodels.Pagination{})
		require.NoError(t, err)
		require.Len(t, messages, 1)
		require.Equal(t, "hello", messages[0].Content)
	})

	t.Run(`left room gets nothing`, func(t *testing.T) {
		f := newFixture(t, models.ApplicationStatusShortlisted)
		chat, err := f.handler.EnsureChat(f.employer, f.app.ID)
		require.NoError(t, err)
		conn := &recorder{}
		sess := f.hub.AddClient(f.seeker.UserID, conn)
		require.NoError(t, f.handler.JoinRoom(sess, chat.ID))
		f.handler.LeaveRoom(sess, chat.ID)
		require.Equal(t, 0, f.hub.RoomSize(chat.ID))
	})

	t.Run(`participants only`, func(t *testing.T) {
		f := newFixture(t, models.ApplicationStatusShortlisted)
		chat, err := f.handler.EnsureChat(f.employer, f.app.ID)
		require.NoError(t, err)
		outsider := identity.New("seeker-2", models.JobSeekerRole)

		_, err = f.handler.SendMessage(ctx, outsider, chatapimodels.SendMessageData{ChatID: chat.ID, Content: "hi"})
		require.True(t, errs.Is(err, errs.KindForbidden))
		_, err = f.handler.ListMessages(outsider, chat.ID, apimodels.Pagination{})
		require.True(t, errs.Is(err, errs.KindForbidden))

		sess := f.hub.AddClient(outsider.UserID, &recorder{})
		err = f.handler.JoinRoom(sess, chat.ID)
		require.True(t, errs.Is(err, errs.KindForbidden))
		require.Equal(t, 0, f.hub.RoomSize(chat.ID))

		list, err := f.handler.ListChats(outsider)
		require.NoError(t, err)
		require.Empty(t, list)
		list, err = f.handler.ListChats(f.seeker)
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run(`payload checks`, func(t *testing.T) {
		f := newFixture(t, models.ApplicationStatusShortlisted)
		chat, err := f.handler.EnsureChat(f.employer, f.app.ID)
		require.NoError(t, err)

		_, err = f.handler.SendMessage(ctx, f.seeker, chatapimodels.SendMessageData{ChatID: chat.ID, Content: "  "})
		require.True(t, errs.Is(err, errs.KindValidation))
		_, err = f.handler.SendMessage(ctx, f.seeker, chatapimodels.SendMessageData{ChatID: chat.ID, SenderID: f.employer.UserID, Content: "spoofed"})
		require.True(t, errs.Is(err, errs.KindForbidden))
		_, err = f.handler.SendMessage(ctx, f.seeker, chatapimodels.SendMessageData{ChatID: "missing", Content: "hi"})
		require.True(t, errs.Is(err, errs.KindNotFound))
	})
}

func TestUploadFile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, models.ApplicationStatusAccepted)
	chat, err := f.handler.EnsureChat(f.employer, f.app.ID)
	require.NoError(t, err)

	t.Run(`stored and broadcast`, func(t *testing.T) {
		conn := &recorder{}
		sess := f.hub.AddClient(f.seeker.UserID, conn)
		require.NoError(t, f.handler.JoinRoom(sess, chat.ID))

		result, err := f.handler.UploadFile(ctx, f.employer, chatapimodels.UploadFileData{
			ChatID: chat.ID,
			Name:   "offer.txt",
			File:   "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("welcome aboard")),
		})
		require.NoError(t, err)
		require.Equal(t, chat.ID, result.ChatID)
		require.Equal(t, "offer.txt", result.Name)
		require.NotEmpty(t, result.Url)
		require.Len(t, f.files.Objects, 1)

		require.Eventually(t, func() bool {
			for _, event := range conn.events() {
				if event == wsmodels.EventFileUploaded {
					return true
				}
			}
			return false
		}, time.Second, 5*time.Millisecond)
	})

	t.Run(`bad payloads`, func(t *testing.T) {
		_, err := f.handler.UploadFile(ctx, f.employer, chatapimodels.UploadFileData{ChatID: chat.ID, Name: "x.bin", File: "%%%"})
		require.True(t, errs.Is(err, errs.KindValidation))

		big := base64.StdEncoding.EncodeToString(make([]byte, 2048))
		_, err = f.handler.UploadFile(ctx, f.employer, chatapimodels.UploadFileData{ChatID: chat.ID, Name: "x.bin", File: big})
		require.True(t, errs.Is(err, errs.KindValidation))

		_, err = f.handler.UploadFile(ctx, identity.New("seeker-2", models.JobSeekerRole), chatapimodels.UploadFileData{ChatID: chat.ID, Name: "x.bin", File: "aGk="})
		require.True(t, errs.Is(err, errs.KindForbidden))
	})
}
