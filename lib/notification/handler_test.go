package notificationhandler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	"hire-backend/lib/utils/memstore"
	"hire-backend/lib/ws/broker"
	connectionhub "hire-backend/lib/ws/hub/connection-hub"
	"hire-backend/models"
	notificationapimodels "hire-backend/models/api/notification"
	dbmodels "hire-backend/models/db"
	wsmodels "hire-backend/models/ws"
)

type mailSpy struct {
	mu   sync.Mutex
	sent []string
}

func (m *mailSpy) SendEMail(to, subject, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"|"+subject)
	return nil
}

func (m *mailSpy) IsConfigured() bool {
	return true
}

func (m *mailSpy) list() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

type socketSpy struct {
	mu     sync.Mutex
	events []string
}

func (s *socketSpy) WriteJSON(v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, v.(wsmodels.ServerMessage).Event)
	return nil
}

func (s *socketSpy) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events)
}

func TestEvents(t *testing.T) {
	mem := memstore.New()
	hub := connectionhub.NewInstance(4)
	mailer := &mailSpy{}
	handler := NewInstance(mem.NotificationStore(), mem.EmployerStore(), broker.NewLocal(hub), mailer)

	socket := &socketSpy{}
	hub.AddClient("seeker-1", socket)

	t.Run(`application updates use status specific titles`, func(t *testing.T) {
		app := dbmodels.ApplicationExt{
			Application: dbmodels.Application{UserID: "seeker-1", ApplicantEmail: "seeker@example.com"},
			JobTitle:    "Go developer",
		}
		app.ID = "app-1"
		handler.ApplicationStatusChanged(app, models.ApplicationStatusShortlisted)
		handler.ApplicationStatusChanged(app, models.ApplicationStatusRejected)

		list := mem.NotificationsFor("seeker-1")
		require.Len(t, list, 2)
		require.Equal(t, "Application Status Update", list[0].Title)
		require.Equal(t, "You've Been Shortlisted!", list[1].Title)
		require.Contains(t, list[1].Message, "Go developer")
		require.Equal(t, "app-1", list[1].RelatedID)

		require.Eventually(t, func() bool { return socket.count() == 2 }, time.Second, 5*time.Millisecond)
		require.Eventually(t, func() bool { return len(mailer.list()) == 2 }, time.Second, 5*time.Millisecond)
		require.Contains(t, mailer.list(), "seeker@example.com|You've Been Shortlisted!")
	})

	t.Run(`job approval looks up the employer`, func(t *testing.T) {
		profile := mem.SeedEmployer("employer-1", models.VerificationVerified)
		handler.JobApproved(dbmodels.Job{BaseModel: dbmodels.BaseModel{ID: "job-1"}, EmployerID: profile.ID, Title: "Go developer"})

		list := mem.NotificationsFor("employer-1")
		require.Len(t, list, 1)
		require.Equal(t, models.NotificationJobApproved, list[0].Type)
	})

	t.Run(`new message goes to the counterpart`, func(t *testing.T) {
		chat := dbmodels.Chat{EmployerUserID: "employer-9", JobSeekerID: "seeker-9"}
		chat.ID = "chat-1"
		handler.NewMessage(chat, dbmodels.Message{SenderID: "seeker-9", Content: "hello"})
		require.Empty(t, mem.NotificationsFor("seeker-9"))
		list := mem.NotificationsFor("employer-9")
		require.Len(t, list, 1)
		require.Equal(t, "hello", list[0].Message)
	})

	t.Run(`approved contact request mails the sender`, func(t *testing.T) {
		profile := dbmodels.FreelancerProfile{UserID: "seeker-5", Title: "Go freelancer", ContactEmail: "dev@example.com"}
		profile.ID = "freelancer-1"
		req := dbmodels.ContactRequest{FreelancerID: profile.ID, SenderName: "Abebe", SenderEmail: "client@example.com", Message: "Need a backend"}
		req.ID = "contact-1"
		handler.ContactRequestApproved(profile, req)

		list := mem.NotificationsFor("seeker-5")
		require.Len(t, list, 1)
		require.Equal(t, models.NotificationContactRequest, list[0].Type)
		require.Contains(t, list[0].Message, "client@example.com")
		require.Equal(t, "contact-1", list[0].RelatedID)
		require.Eventually(t, func() bool {
			for _, sent := range mailer.list() {
				if sent == "client@example.com|Your contact request was accepted" {
					return true
				}
			}
			return false
		}, time.Second, 5*time.Millisecond)
		require.NotContains(t, mailer.list(), "dev@example.com|New Contact Request")
	})
}

func TestInbox(t *testing.T) {
	mem := memstore.New()
	handler := NewInstance(mem.NotificationStore(), mem.EmployerStore(), nil, nil)
	who := identity.New("seeker-1", models.JobSeekerRole)
	app := dbmodels.ApplicationExt{Application: dbmodels.Application{UserID: who.UserID}}
	for n := 0; n < 3; n++ {
		handler.ApplicationStatusChanged(app, models.ApplicationStatusShortlisted)
	}

	count, err := handler.UnreadCount(who)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	list, rowCount, err := handler.List(who, notificationapimodels.NotificationFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(3), rowCount)
	require.NoError(t, handler.MarkRead(who, list[0].ID))

	err = handler.MarkRead(identity.New("seeker-2", models.JobSeekerRole), list[1].ID)
	require.True(t, errs.Is(err, errs.KindNotFound))

	unread, _, err := handler.List(who, notificationapimodels.NotificationFilter{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 2)

	marked, err := handler.MarkAllRead(who)
	require.NoError(t, err)
	require.Equal(t, int64(2), marked)
	count, err = handler.UnreadCount(who)
	require.NoError(t, err)
	require.Zero(t, count)

	_, err = handler.UnreadCount(identity.Identity{})
	require.True(t, errs.Is(err, errs.KindForbidden))
}
