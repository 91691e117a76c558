package notificationhandler

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"hire-backend/db"
	employerstore "hire-backend/lib/employer/store"
	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	notificationstore "hire-backend/lib/notification/store"
	"hire-backend/lib/smtp"
	initchecker "hire-backend/lib/utils/init-checker"
	"hire-backend/lib/ws/broker"
	"hire-backend/models"
	notificationapimodels "hire-backend/models/api/notification"
	dbmodels "hire-backend/models/db"
	wsmodels "hire-backend/models/ws"
)

// Provider receives lifecycle events, stores them and delivers them best effort.
// Event methods never return errors: a delivery failure is logged only.
type Provider interface {
	JobApproved(job dbmodels.Job)
	ApplicationStatusChanged(app dbmodels.ApplicationExt, status models.ApplicationStatus)
	NewMessage(chat dbmodels.Chat, msg dbmodels.Message)
	EmployerVerification(profile dbmodels.EmployerProfile)
	// ContactRequestApproved mails the sender the freelancer's address and tells the freelancer in app.
	ContactRequestApproved(profile dbmodels.FreelancerProfile, req dbmodels.ContactRequest)

	List(who identity.Identity, filter notificationapimodels.NotificationFilter) (list []notificationapimodels.NotificationView, rowCount int64, err error)
	UnreadCount(who identity.Identity) (int64, error)
	MarkRead(who identity.Identity, id string) error
	MarkAllRead(who identity.Identity) (int64, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit(
		"broker", broker.Instance,
		"smtp", smtp.Instance,
	)
	Instance = NewInstance(
		notificationstore.NewInstance(db.DB),
		employerstore.NewInstance(db.DB),
		broker.Instance,
		smtp.Instance,
	)
}

func NewInstance(store notificationstore.Provider, employerStore employerstore.Provider, pusher broker.Provider, mailer smtp.Provider) Provider {
	return &impl{
		store:         store,
		employerStore: employerStore,
		pusher:        pusher,
		mailer:        mailer,
	}
}

type impl struct {
	store         notificationstore.Provider
	employerStore employerstore.Provider
	pusher        broker.Provider
	mailer        smtp.Provider
}

type event struct {
	userID    string
	email     string
	kind      models.NotificationType
	title     string
	message   string
	relatedID string
}

func (i impl) JobApproved(job dbmodels.Job) {
	profile := job.Employer
	if profile == nil {
		var err error
		profile, err = i.employerStore.GetByID(job.EmployerID)
		if err != nil || profile == nil {
			i.getLogger(job.EmployerID, job.ID).WithError(err).Error("job approval notification skipped, employer profile not found")
			return
		}
	}
	i.emit(event{
		userID:    profile.UserID,
		email:     profile.ContactEmail,
		kind:      models.NotificationJobApproved,
		title:     "Job Approved!",
		message:   fmt.Sprintf("Your job posting %q has been approved and is now visible to job seekers.", job.Title),
		relatedID: job.ID,
	})
}

func (i impl) ApplicationStatusChanged(app dbmodels.ApplicationExt, status models.ApplicationStatus) {
	jobTitle := app.JobTitle
	if jobTitle == "" {
		jobTitle = "the position"
	}
	title := "Application Update"
	message := fmt.Sprintf("Your application status has been updated to %s", status)
	switch status {
	case models.ApplicationStatusShortlisted:
		title = "You've Been Shortlisted!"
		message = fmt.Sprintf("Great news! You've been shortlisted for %s. The employer will contact you soon.", jobTitle)
	case models.ApplicationStatusAccepted:
		title = "Application Accepted!"
		message = fmt.Sprintf("Congratulations! Your application for %s has been accepted.", jobTitle)
	case models.ApplicationStatusRejected:
		title = "Application Status Update"
		message = fmt.Sprintf("Your application for %s was not successful this time. Keep applying!", jobTitle)
	}
	i.emit(event{
		userID:    app.UserID,
		email:     app.ApplicantEmail,
		kind:      models.NotificationApplicationUpdate,
		title:     title,
		message:   message,
		relatedID: app.ID,
	})
}

func (i impl) NewMessage(chat dbmodels.Chat, msg dbmodels.Message) {
	text := msg.Content
	if text == "" && msg.FileName != "" {
		text = "sent a file: " + msg.FileName
	}
	if len([]rune(text)) > 100 {
		text = string([]rune(text)[:100]) + "..."
	}
	i.emit(event{
		userID:    chat.Counterpart(msg.SenderID),
		kind:      models.NotificationNewMessage,
		title:     "New Message",
		message:   text,
		relatedID: chat.ID,
	})
}

func (i impl) EmployerVerification(profile dbmodels.EmployerProfile) {
	title := "Company Verified"
	message := fmt.Sprintf("%s has been verified. You can now post jobs.", profile.CompanyName)
	if profile.VerificationStatus == models.VerificationRejected {
		title = "Company Verification Rejected"
		message = fmt.Sprintf("Verification of %s was rejected. Please contact support.", profile.CompanyName)
	}
	i.emit(event{
		userID:    profile.UserID,
		email:     profile.ContactEmail,
		kind:      models.NotificationEmployerVerification,
		title:     title,
		message:   message,
		relatedID: profile.ID,
	})
}

func (i impl) ContactRequestApproved(profile dbmodels.FreelancerProfile, req dbmodels.ContactRequest) {
	if profile.ContactEmail != "" {
		i.mail(i.getLogger(req.SenderID, req.ID), req.SenderEmail, "Your contact request was accepted",
			fmt.Sprintf("Hello %s, great news! %s has accepted your contact request. You can now reach out directly at %s.",
				req.SenderName, profile.Title, profile.ContactEmail))
	} else {
		i.getLogger(profile.UserID, req.ID).Warn("freelancer has no contact email, sender not mailed")
	}
	text := req.Message
	if len([]rune(text)) > 100 {
		text = string([]rune(text)[:100]) + "..."
	}
	i.emit(event{
		userID:    profile.UserID,
		kind:      models.NotificationContactRequest,
		title:     "New Contact Request",
		message:   fmt.Sprintf("%s (%s) wants to work with you: %s", req.SenderName, req.SenderEmail, text),
		relatedID: req.ID,
	})
}

func (i impl) emit(e event) {
	logger := i.getLogger(e.userID, e.relatedID).WithField("notification_type", e.kind)
	if e.userID == "" {
		logger.Warn("notification without recipient skipped")
		return
	}
	rec, err := i.store.Create(dbmodels.Notification{
		UserID:    e.userID,
		Type:      e.kind,
		Title:     e.title,
		Message:   e.message,
		RelatedID: e.relatedID,
	})
	if err != nil {
		logger.WithError(err).Error("notification saving failed")
		return
	}
	if i.pusher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = i.pusher.PublishUser(ctx, e.userID, wsmodels.ServerMessage{
			Event: wsmodels.EventNotification,
			Data:  notificationapimodels.NotificationConvert(*rec),
		})
		cancel()
		if err != nil {
			logger.WithError(err).Error("notification push failed")
		}
	}
	i.mail(logger, e.email, e.title, e.message)
}

func (i impl) mail(logger *log.Entry, to, subject, message string) {
	if i.mailer == nil || to == "" {
		return
	}
	go func() {
		if err := i.mailer.SendEMail(to, subject, message); err != nil {
			logger.WithError(err).Error("notification email failed")
		}
	}()
}

func (i impl) List(who identity.Identity, filter notificationapimodels.NotificationFilter) ([]notificationapimodels.NotificationView, int64, error) {
	if who.IsAnonymous() {
		return nil, 0, errs.Forbidden("authentication required")
	}
	rowCount, err := i.store.ListCount(who.UserID, filter)
	if err != nil {
		return nil, 0, err
	}
	if int64(filter.Offset()) >= rowCount {
		return []notificationapimodels.NotificationView{}, rowCount, nil
	}
	recList, err := i.store.List(who.UserID, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]notificationapimodels.NotificationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, notificationapimodels.NotificationConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) UnreadCount(who identity.Identity) (int64, error) {
	if who.IsAnonymous() {
		return 0, errs.Forbidden("authentication required")
	}
	return i.store.UnreadCount(who.UserID)
}

func (i impl) MarkRead(who identity.Identity, id string) error {
	if who.IsAnonymous() {
		return errs.Forbidden("authentication required")
	}
	return i.store.MarkRead(who.UserID, id)
}

func (i impl) MarkAllRead(who identity.Identity) (int64, error) {
	if who.IsAnonymous() {
		return 0, errs.Forbidden("authentication required")
	}
	count, err := i.store.MarkAllRead(who.UserID)
	if err != nil {
		return 0, err
	}
	i.getLogger(who.UserID, "").WithField("count", count).Info("notifications marked as read")
	return count, nil
}

func (i impl) getLogger(userID, relatedID string) *log.Entry {
	logger := log.WithField("user_id", userID)
	if relatedID != "" {
		logger = logger.WithField("related_id", relatedID)
	}
	return logger
}
