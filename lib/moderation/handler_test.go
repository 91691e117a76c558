package moderationhandler

import (
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
	moderationapimodels "hire-backend/models/api/moderation"
	reportapimodels "hire-backend/models/api/report"
	dbmodels "hire-backend/models/db"
)

var (
	admin    = identity.New("admin-1", models.AdminRole)
	employer = identity.New("employer-1", models.EmployerRole)
	seeker   = identity.New("seeker-1", models.JobSeekerRole)
)

type mailSpy struct {
	mu   sync.Mutex
	sent []string
}

func (m *mailSpy) SendEMail(to, _, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to+"|"+message)
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

func newTestHandler(mem *memstore.DB) Provider {
	return newMailingHandler(mem, nil)
}

func newMailingHandler(mem *memstore.DB, mailer *mailSpy) Provider {
	pusher := broker.NewLocal(connectionhub.NewInstance(4))
	notifier := notificationhandler.NewInstance(mem.NotificationStore(), mem.EmployerStore(), pusher, nil)
	if mailer != nil {
		notifier = notificationhandler.NewInstance(mem.NotificationStore(), mem.EmployerStore(), pusher, mailer)
	}
	return NewInstance(mem.JobStore(), mem.EmployerStore(), mem.ReportStore(), mem.ChatStore(),
		mem.FreelancerStore(), mem.ContactStore(), notifier)
}

func TestAdminOnly(t *testing.T) {
	mem := memstore.New()
	handler := newTestHandler(mem)
	profile := mem.SeedEmployer(employer.UserID, models.VerificationPending)
	job := mem.SeedJob(profile.ID, models.JobStatusPending, 1)

	for _, who := range []identity.Identity{employer, seeker, {}} {
		_, err := handler.VerifyEmployer(who, profile.ID, moderationapimodels.VerifyEmployerData{Status: models.VerificationVerified})
		require.True(t, errs.Is(err, errs.KindForbidden))
		_, err = handler.ApproveJob(who, job.ID, moderationapimodels.ApproveJobData{Status: models.JobStatusApproved})
		require.True(t, errs.Is(err, errs.KindForbidden))
		_, _, err = handler.ListJobs(who, moderationapimodels.JobFilter{})
		require.True(t, errs.Is(err, errs.KindForbidden))
		require.True(t, errs.Is(handler.DeleteJob(who, job.ID), errs.KindForbidden))
	}
	require.Equal(t, models.JobStatusPending, mem.Job(job.ID).Status)
}

func TestDeleteJob(t *testing.T) {
	mem := memstore.New()
	handler := newTestHandler(mem)
	profile := mem.SeedEmployer(employer.UserID, models.VerificationVerified)
	job := mem.SeedJob(profile.ID, models.JobStatusApproved, 2)
	mem.SeedApplication(job.ID, seeker.UserID, models.ApplicationStatusAccepted)

	require.NoError(t, handler.DeleteJob(admin, job.ID))
	_, rowCount, err := handler.ListJobs(admin, moderationapimodels.JobFilter{})
	require.NoError(t, err)
	require.Zero(t, rowCount)
	require.Empty(t, mem.Applications)

	require.True(t, errs.Is(handler.DeleteJob(admin, job.ID), errs.KindNotFound))
}

func TestApproveJob(t *testing.T) {
	t.Run(`approval notifies the employer`, func(t *testing.T) {
		mem := memstore.New()
		handler := newTestHandler(mem)
		profile := mem.SeedEmployer(employer.UserID, models.VerificationVerified)
		job := mem.SeedJob(profile.ID, models.JobStatusPending, 1)

		view, err := handler.ApproveJob(admin, job.ID, moderationapimodels.ApproveJobData{Status: models.JobStatusApproved})
		require.NoError(t, err)
		require.Equal(t, models.JobStatusApproved, view.Status)

		notifications := mem.NotificationsFor(employer.UserID)
		require.Len(t, notifications, 1)
		require.Equal(t, models.NotificationJobApproved, notifications[0].Type)
		require.Equal(t, job.ID, notifications[0].RelatedID)
	})

	t.Run(`rejecting an approved job leaves applications untouched`, func(t *testing.T) {
		mem := memstore.New()
		handler := newTestHandler(mem)
		profile := mem.SeedEmployer(employer.UserID, models.VerificationVerified)
		job := mem.SeedJob(profile.ID, models.JobStatusApproved, 2)
		accepted := mem.SeedApplication(job.ID, "seeker-1", models.ApplicationStatusAccepted)
		submitted := mem.SeedApplication(job.ID, "seeker-2", models.ApplicationStatusSubmitted)

		_, err := handler.ApproveJob(admin, job.ID, moderationapimodels.ApproveJobData{Status: models.JobStatusRejected})
		require.NoError(t, err)
		require.Equal(t, models.JobStatusRejected, mem.Job(job.ID).Status)
		require.Equal(t, models.ApplicationStatusAccepted, mem.Application(accepted.ID).Status)
		require.Equal(t, models.ApplicationStatusSubmitted, mem.Application(submitted.ID).Status)
		require.Empty(t, mem.NotificationsFor(employer.UserID))
	})

	t.Run(`any enum value overwrites`, func(t *testing.T) {
		mem := memstore.New()
		handler := newTestHandler(mem)
		profile := mem.SeedEmployer(employer.UserID, models.VerificationVerified)
		job := mem.SeedJob(profile.ID, models.JobStatusClosed, 1)

		view, err := handler.ApproveJob(admin, job.ID, moderationapimodels.ApproveJobData{Status: models.JobStatusPending})
		require.NoError(t, err)
		require.Equal(t, models.JobStatusPending, view.Status)

		_, err = handler.ApproveJob(admin, job.ID, moderationapimodels.ApproveJobData{Status: "archived"})
		require.True(t, errs.Is(err, errs.KindValidation))
		_, err = handler.ApproveJob(admin, "missing", moderationapimodels.ApproveJobData{Status: models.JobStatusApproved})
		require.True(t, errs.Is(err, errs.KindNotFound))
	})
}

func TestVerifyEmployer(t *testing.T) {
	mem := memstore.New()
	handler := newTestHandler(mem)
	profile := mem.SeedEmployer(employer.UserID, models.VerificationPending)

	view, err := handler.VerifyEmployer(admin, profile.ID, moderationapimodels.VerifyEmployerData{Status: models.VerificationVerified})
	require.NoError(t, err)
	require.Equal(t, models.VerificationVerified, view.VerificationStatus)
	notifications := mem.NotificationsFor(employer.UserID)
	require.Len(t, notifications, 1)
	require.Equal(t, models.NotificationEmployerVerification, notifications[0].Type)

	_, err = handler.VerifyEmployer(admin, profile.ID, moderationapimodels.VerifyEmployerData{Status: models.VerificationPending})
	require.True(t, errs.Is(err, errs.KindValidation))
	_, err = handler.VerifyEmployer(admin, "missing", moderationapimodels.VerifyEmployerData{Status: models.VerificationRejected})
	require.True(t, errs.Is(err, errs.KindNotFound))

	list, rowCount, err := handler.ListEmployers(admin, moderationapimodels.EmployerFilter{Status: models.VerificationVerified})
	require.NoError(t, err)
	require.Equal(t, int64(1), rowCount)
	require.Len(t, list, 1)
}

func TestReports(t *testing.T) {
	mem := memstore.New()
	handler := newTestHandler(mem)
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

	t.Run(`report job`, func(t *testing.T) {
		view, err := handler.ReportJob(seeker, job.ID, reportapimodels.ReportData{Reason: "scam"})
		require.NoError(t, err)
		require.Equal(t, models.ReportStatusPending, view.Status)
		require.Equal(t, job.ID, view.JobID)
		require.Equal(t, seeker.UserID, view.ReportedBy)

		_, err = handler.ReportJob(seeker, job.ID, reportapimodels.ReportData{Reason: " "})
		require.True(t, errs.Is(err, errs.KindValidation))
		_, err = handler.ReportJob(seeker, "missing", reportapimodels.ReportData{Reason: "scam"})
		require.True(t, errs.Is(err, errs.KindNotFound))
		_, err = handler.ReportJob(identity.Identity{}, job.ID, reportapimodels.ReportData{Reason: "scam"})
		require.True(t, errs.Is(err, errs.KindForbidden))
	})

	t.Run(`report chat by participants only`, func(t *testing.T) {
		view, err := handler.ReportChat(employer, chat.ID, reportapimodels.ReportData{Reason: "abuse"})
		require.NoError(t, err)
		require.Equal(t, chat.ID, view.ChatID)

		_, err = handler.ReportChat(identity.New("seeker-2", models.JobSeekerRole), chat.ID, reportapimodels.ReportData{Reason: "abuse"})
		require.True(t, errs.Is(err, errs.KindForbidden))
	})

	t.Run(`resolve`, func(t *testing.T) {
		list, rowCount, err := handler.ListReports(admin, moderationapimodels.ReportFilter{Status: models.ReportStatusPending})
		require.NoError(t, err)
		require.Equal(t, int64(2), rowCount)

		view, err := handler.ResolveReport(admin, list[0].ID, moderationapimodels.ResolveReportData{Status: models.ReportStatusResolved})
		require.NoError(t, err)
		require.Equal(t, models.ReportStatusResolved, view.Status)

		_, err = handler.ResolveReport(admin, list[0].ID, moderationapimodels.ResolveReportData{Status: models.ReportStatusPending})
		require.True(t, errs.Is(err, errs.KindValidation))
		_, err = handler.ResolveReport(admin, "missing", moderationapimodels.ResolveReportData{Status: models.ReportStatusReviewed})
		require.True(t, errs.Is(err, errs.KindNotFound))
	})

	t.Run(`admin job list carries application counts`, func(t *testing.T) {
		list, rowCount, err := handler.ListJobs(admin, moderationapimodels.JobFilter{})
		require.NoError(t, err)
		require.Equal(t, int64(1), rowCount)
		require.NotNil(t, list[0].ApplicationCount)
		require.Equal(t, int64(1), *list[0].ApplicationCount)
	})
}

func TestVerifyFreelancer(t *testing.T) {
	mem := memstore.New()
	handler := newTestHandler(mem)
	profile := mem.SeedFreelancer(seeker.UserID, false)

	view, err := handler.VerifyFreelancer(admin, profile.ID, moderationapimodels.VerifyFreelancerData{Verified: true})
	require.NoError(t, err)
	require.True(t, view.IsVerified)

	_, err = handler.VerifyFreelancer(seeker, profile.ID, moderationapimodels.VerifyFreelancerData{Verified: true})
	require.True(t, errs.Is(err, errs.KindForbidden))
	_, err = handler.VerifyFreelancer(admin, "missing", moderationapimodels.VerifyFreelancerData{Verified: true})
	require.True(t, errs.Is(err, errs.KindNotFound))
}

func TestRespondContactRequest(t *testing.T) {
	t.Run(`approval mails the sender and tells the freelancer`, func(t *testing.T) {
		mem := memstore.New()
		mailer := &mailSpy{}
		handler := newMailingHandler(mem, mailer)
		profile := mem.SeedFreelancer(seeker.UserID, true)
		req := mem.SeedContactRequest(profile.ID, models.ContactRequestPending)

		view, err := handler.RespondContactRequest(admin, req.ID, moderationapimodels.RespondContactRequestData{Status: models.ContactRequestApproved})
		require.NoError(t, err)
		require.Equal(t, models.ContactRequestApproved, view.Status)
		require.Equal(t, profile.Title, view.FreelancerTitle)

		notifications := mem.NotificationsFor(seeker.UserID)
		require.Len(t, notifications, 1)
		require.Equal(t, models.NotificationContactRequest, notifications[0].Type)
		require.Equal(t, req.ID, notifications[0].RelatedID)

		require.Eventually(t, func() bool { return len(mailer.list()) == 1 }, time.Second, 5*time.Millisecond)
		sent := mailer.list()[0]
		require.Contains(t, sent, "client@example.com|")
		require.Contains(t, sent, profile.ContactEmail)
	})

	t.Run(`a request is decided once`, func(t *testing.T) {
		mem := memstore.New()
		mailer := &mailSpy{}
		handler := newMailingHandler(mem, mailer)
		profile := mem.SeedFreelancer(seeker.UserID, true)
		req := mem.SeedContactRequest(profile.ID, models.ContactRequestPending)

		_, err := handler.RespondContactRequest(admin, req.ID, moderationapimodels.RespondContactRequestData{Status: models.ContactRequestRejected})
		require.NoError(t, err)
		_, err = handler.RespondContactRequest(admin, req.ID, moderationapimodels.RespondContactRequestData{Status: models.ContactRequestApproved})
		require.True(t, errs.Is(err, errs.KindInvalidState))
		require.Equal(t, models.ContactRequestRejected, mem.ContactRequest(req.ID).Status)

		require.Empty(t, mem.NotificationsFor(seeker.UserID))
		require.Never(t, func() bool { return len(mailer.list()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	})

	t.Run(`invalid input`, func(t *testing.T) {
		mem := memstore.New()
		handler := newTestHandler(mem)
		profile := mem.SeedFreelancer(seeker.UserID, true)
		req := mem.SeedContactRequest(profile.ID, models.ContactRequestPending)

		_, err := handler.RespondContactRequest(admin, req.ID, moderationapimodels.RespondContactRequestData{Status: models.ContactRequestPending})
		require.True(t, errs.Is(err, errs.KindValidation))
		_, err = handler.RespondContactRequest(admin, "missing", moderationapimodels.RespondContactRequestData{Status: models.ContactRequestApproved})
		require.True(t, errs.Is(err, errs.KindNotFound))
		_, err = handler.RespondContactRequest(seeker, req.ID, moderationapimodels.RespondContactRequestData{Status: models.ContactRequestApproved})
		require.True(t, errs.Is(err, errs.KindForbidden))
		require.Equal(t, models.ContactRequestPending, mem.ContactRequest(req.ID).Status)
	})
}
