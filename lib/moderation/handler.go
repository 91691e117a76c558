package moderationhandler

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hire-backend/db"
	chatstore "hire-backend/lib/chat/store"
	employerstore "hire-backend/lib/employer/store"
	"hire-backend/lib/errs"
	contactstore "hire-backend/lib/freelancer/contact-store"
	freelancerstore "hire-backend/lib/freelancer/store"
	"hire-backend/lib/identity"
	jobstore "hire-backend/lib/job/store"
	reportstore "hire-backend/lib/moderation/report-store"
	notificationhandler "hire-backend/lib/notification"
	"hire-backend/lib/rbac"
	initchecker "hire-backend/lib/utils/init-checker"
	"hire-backend/models"
	employerapimodels "hire-backend/models/api/employer"
	freelancerapimodels "hire-backend/models/api/freelancer"
	jobapimodels "hire-backend/models/api/job"
	moderationapimodels "hire-backend/models/api/moderation"
	reportapimodels "hire-backend/models/api/report"
	dbmodels "hire-backend/models/db"
)

// Provider is the admin gate. Status writes are direct overwrites,
// they do not follow the owner state machine and never cascade to applications.
type Provider interface {
	VerifyEmployer(who identity.Identity, employerID string, data moderationapimodels.VerifyEmployerData) (employerapimodels.ProfileView, error)
	ApproveJob(who identity.Identity, jobID string, data moderationapimodels.ApproveJobData) (jobapimodels.JobView, error)
	ResolveReport(who identity.Identity, reportID string, data moderationapimodels.ResolveReportData) (reportapimodels.ReportView, error)
	// DeleteJob removes any job, its applications go with it.
	DeleteJob(who identity.Identity, jobID string) error
	VerifyFreelancer(who identity.Identity, freelancerID string, data moderationapimodels.VerifyFreelancerData) (freelancerapimodels.ProfileView, error)
	// RespondContactRequest decides a pending request once. Approval shares the freelancer's contact with the sender.
	RespondContactRequest(who identity.Identity, requestID string, data moderationapimodels.RespondContactRequestData) (freelancerapimodels.ContactRequestView, error)

	ListJobs(who identity.Identity, filter moderationapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error)
	ListEmployers(who identity.Identity, filter moderationapimodels.EmployerFilter) (list []employerapimodels.ProfileView, rowCount int64, err error)
	ListReports(who identity.Identity, filter moderationapimodels.ReportFilter) (list []reportapimodels.ReportView, rowCount int64, err error)

	ReportJob(who identity.Identity, jobID string, data reportapimodels.ReportData) (reportapimodels.ReportView, error)
	ReportChat(who identity.Identity, chatID string, data reportapimodels.ReportData) (reportapimodels.ReportView, error)
}

var Instance Provider

func NewHandler() {
	initchecker.CheckInit("notification", notificationhandler.Instance)
	Instance = NewInstance(
		jobstore.NewInstance(db.DB),
		employerstore.NewInstance(db.DB),
		reportstore.NewInstance(db.DB),
		chatstore.NewInstance(db.DB),
		freelancerstore.NewInstance(db.DB),
		contactstore.NewInstance(db.DB),
		notificationhandler.Instance,
	)
}

func NewInstance(jobStore jobstore.Provider, employerStore employerstore.Provider, reportStore reportstore.Provider,
	chatStore chatstore.Provider, freelancerStore freelancerstore.Provider, contactStore contactstore.Provider,
	notifier notificationhandler.Provider) Provider {
	return impl{
		jobStore:        jobStore,
		employerStore:   employerStore,
		reportStore:     reportStore,
		chatStore:       chatStore,
		freelancerStore: freelancerStore,
		contactStore:    contactStore,
		notifier:        notifier,
	}
}

type impl struct {
	jobStore        jobstore.Provider
	employerStore   employerstore.Provider
	reportStore     reportstore.Provider
	chatStore       chatstore.Provider
	freelancerStore freelancerstore.Provider
	contactStore    contactstore.Provider
	notifier        notificationhandler.Provider
}

func (i impl) VerifyEmployer(who identity.Identity, employerID string, data moderationapimodels.VerifyEmployerData) (employerapimodels.ProfileView, error) {
	if err := rbac.RequireAdmin(who, "verify employers"); err != nil {
		return employerapimodels.ProfileView{}, err
	}
	if err := data.Validate(); err != nil {
		return employerapimodels.ProfileView{}, err
	}
	if err := i.employerStore.SetVerification(employerID, data.Status); err != nil {
		return employerapimodels.ProfileView{}, err
	}
	rec, err := i.employerStore.GetByID(employerID)
	if err != nil {
		return employerapimodels.ProfileView{}, err
	}
	if rec == nil {
		return employerapimodels.ProfileView{}, errs.NotFound("employer not found")
	}
	i.getLogger(who.UserID).
		WithField("employer_id", employerID).
		WithField("status", data.Status).
		Info("employer verification changed")
	i.notifier.EmployerVerification(*rec)
	return employerapimodels.ProfileConvert(*rec), nil
}

func (i impl) ApproveJob(who identity.Identity, jobID string, data moderationapimodels.ApproveJobData) (jobapimodels.JobView, error) {
	if err := rbac.RequireAdmin(who, "moderate jobs"); err != nil {
		return jobapimodels.JobView{}, err
	}
	if err := data.Validate(); err != nil {
		return jobapimodels.JobView{}, err
	}
	if err := i.jobStore.SetStatus(jobID, data.Status); err != nil {
		return jobapimodels.JobView{}, err
	}
	rec, err := i.jobStore.GetByID(jobID)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if rec == nil {
		return jobapimodels.JobView{}, errs.NotFound("job not found")
	}
	i.getLogger(who.UserID).
		WithField("job_id", jobID).
		WithField("status", data.Status).
		Info("job moderated")
	if data.Status == models.JobStatusApproved {
		i.notifier.JobApproved(*rec)
	}
	return jobapimodels.JobConvert(*rec), nil
}

func (i impl) ResolveReport(who identity.Identity, reportID string, data moderationapimodels.ResolveReportData) (reportapimodels.ReportView, error) {
	if err := rbac.RequireAdmin(who, "resolve reports"); err != nil {
		return reportapimodels.ReportView{}, err
	}
	if err := data.Validate(); err != nil {
		return reportapimodels.ReportView{}, err
	}
	if err := i.reportStore.SetStatus(reportID, data.Status); err != nil {
		return reportapimodels.ReportView{}, err
	}
	rec, err := i.reportStore.GetByID(reportID)
	if err != nil {
		return reportapimodels.ReportView{}, err
	}
	if rec == nil {
		return reportapimodels.ReportView{}, errs.NotFound("report not found")
	}
	i.getLogger(who.UserID).
		WithField("report_id", reportID).
		WithField("status", data.Status).
		Info("report status changed")
	return reportapimodels.ReportConvert(*rec), nil
}

func (i impl) DeleteJob(who identity.Identity, jobID string) error {
	if err := rbac.RequireAdmin(who, "delete jobs"); err != nil {
		return err
	}
	if err := i.jobStore.Delete(jobID); err != nil {
		return err
	}
	i.getLogger(who.UserID).WithField("job_id", jobID).Info("job deleted by admin")
	return nil
}

func (i impl) VerifyFreelancer(who identity.Identity, freelancerID string, data moderationapimodels.VerifyFreelancerData) (freelancerapimodels.ProfileView, error) {
	if err := rbac.RequireAdmin(who, "verify freelancers"); err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	if err := i.freelancerStore.SetVerified(freelancerID, data.Verified); err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	rec, err := i.freelancerStore.GetByID(freelancerID)
	if err != nil {
		return freelancerapimodels.ProfileView{}, err
	}
	if rec == nil {
		return freelancerapimodels.ProfileView{}, errs.NotFound("freelancer not found")
	}
	i.getLogger(who.UserID).
		WithField("freelancer_id", freelancerID).
		WithField("verified", data.Verified).
		Info("freelancer verification changed")
	return freelancerapimodels.ProfileConvert(*rec), nil
}

func (i impl) RespondContactRequest(who identity.Identity, requestID string, data moderationapimodels.RespondContactRequestData) (freelancerapimodels.ContactRequestView, error) {
	if err := rbac.RequireAdmin(who, "moderate contact requests"); err != nil {
		return freelancerapimodels.ContactRequestView{}, err
	}
	if err := data.Validate(); err != nil {
		return freelancerapimodels.ContactRequestView{}, err
	}
	if err := i.contactStore.Resolve(requestID, data.Status); err != nil {
		return freelancerapimodels.ContactRequestView{}, err
	}
	rec, err := i.contactStore.GetByID(requestID)
	if err != nil {
		return freelancerapimodels.ContactRequestView{}, err
	}
	if rec == nil {
		return freelancerapimodels.ContactRequestView{}, errs.NotFound("contact request not found")
	}
	logger := i.getLogger(who.UserID).
		WithField("contact_request_id", requestID).
		WithField("status", data.Status)
	logger.Info("contact request moderated")
	if data.Status == models.ContactRequestApproved {
		if rec.Freelancer == nil {
			logger.Warn("approved contact request has no freelancer profile, nobody notified")
		} else {
			i.notifier.ContactRequestApproved(*rec.Freelancer, *rec)
		}
	}
	return freelancerapimodels.ContactRequestConvert(*rec), nil
}

func (i impl) ListJobs(who identity.Identity, filter moderationapimodels.JobFilter) ([]jobapimodels.JobView, int64, error) {
	if err := rbac.RequireAdmin(who, "list jobs for moderation"); err != nil {
		return nil, 0, err
	}
	if filter.Status != "" {
		if err := filter.Status.Validate(); err != nil {
			return nil, 0, errs.Validation(err.Error())
		}
	}
	rowCount, err := i.jobStore.AdminListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	if int64(filter.Offset()) >= rowCount {
		return []jobapimodels.JobView{}, rowCount, nil
	}
	recList, err := i.jobStore.AdminList(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]jobapimodels.JobView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, jobapimodels.JobExtConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ListEmployers(who identity.Identity, filter moderationapimodels.EmployerFilter) ([]employerapimodels.ProfileView, int64, error) {
	if err := rbac.RequireAdmin(who, "list employers"); err != nil {
		return nil, 0, err
	}
	rowCount, err := i.employerStore.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	if int64(filter.Offset()) >= rowCount {
		return []employerapimodels.ProfileView{}, rowCount, nil
	}
	recList, err := i.employerStore.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]employerapimodels.ProfileView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, employerapimodels.ProfileConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ListReports(who identity.Identity, filter moderationapimodels.ReportFilter) ([]reportapimodels.ReportView, int64, error) {
	if err := rbac.RequireAdmin(who, "list reports"); err != nil {
		return nil, 0, err
	}
	rowCount, err := i.reportStore.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	if int64(filter.Offset()) >= rowCount {
		return []reportapimodels.ReportView{}, rowCount, nil
	}
	recList, err := i.reportStore.List(filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]reportapimodels.ReportView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, reportapimodels.ReportConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ReportJob(who identity.Identity, jobID string, data reportapimodels.ReportData) (reportapimodels.ReportView, error) {
	if err := rbac.Check(who, "report jobs", nil, nil); err != nil {
		return reportapimodels.ReportView{}, err
	}
	if err := data.Validate(); err != nil {
		return reportapimodels.ReportView{}, err
	}
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		return reportapimodels.ReportView{}, err
	}
	if job == nil {
		return reportapimodels.ReportView{}, errs.NotFound("job not found")
	}
	return i.createReport(who, dbmodels.Report{JobID: &job.ID, Reason: data.Reason})
}

func (i impl) ReportChat(who identity.Identity, chatID string, data reportapimodels.ReportData) (reportapimodels.ReportView, error) {
	if err := data.Validate(); err != nil {
		return reportapimodels.ReportView{}, err
	}
	chat, err := i.chatStore.GetByID(chatID)
	if err != nil {
		return reportapimodels.ReportView{}, err
	}
	if chat == nil {
		return reportapimodels.ReportView{}, errs.NotFound("chat not found")
	}
	if err = rbac.Check(who, "report this chat", rbac.ChatRoleSet, rbac.OwnedBy(chat.EmployerUserID, chat.JobSeekerID)); err != nil {
		return reportapimodels.ReportView{}, err
	}
	return i.createReport(who, dbmodels.Report{ChatID: &chat.ID, Reason: data.Reason})
}

func (i impl) createReport(who identity.Identity, rec dbmodels.Report) (reportapimodels.ReportView, error) {
	rec.ReportedBy = who.UserID
	rec.Status = models.ReportStatusPending
	id, err := i.reportStore.Create(rec)
	if err != nil {
		return reportapimodels.ReportView{}, errors.Wrap(err, "report saving failed")
	}
	i.getLogger(who.UserID).WithField("report_id", id).Info("report created")
	saved, err := i.reportStore.GetByID(id)
	if err != nil {
		return reportapimodels.ReportView{}, err
	}
	if saved == nil {
		return reportapimodels.ReportView{}, errs.NotFound("report not found")
	}
	return reportapimodels.ReportConvert(*saved), nil
}

func (i impl) getLogger(userID string) *log.Entry {
	return log.WithField("user_id", userID)
}
