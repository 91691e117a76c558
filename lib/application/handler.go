package applicationhandler

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hire-backend/db"
	applicationstore "hire-backend/lib/application/store"
	chathandler "hire-backend/lib/chat"
	"hire-backend/lib/errs"
	filestorage "hire-backend/lib/file-storage"
	"hire-backend/lib/identity"
	jobstore "hire-backend/lib/job/store"
	notificationhandler "hire-backend/lib/notification"
	"hire-backend/lib/rbac"
	initchecker "hire-backend/lib/utils/init-checker"
	"hire-backend/models"
	applicationapimodels "hire-backend/models/api/application"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Apply(ctx context.Context, who identity.Identity, jobID string, data applicationapimodels.ApplyData, resume *applicationapimodels.ResumeFile) (applicationapimodels.ApplicationView, error)
	UpdateStatus(who identity.Identity, id string, status models.ApplicationStatus) (applicationapimodels.ApplicationView, error)
	ListByJob(who identity.Identity, jobID string) ([]applicationapimodels.ApplicationView, error)
	ListByUser(who identity.Identity) ([]applicationapimodels.ApplicationView, error)
	Get(who identity.Identity, id string) (applicationapimodels.ApplicationView, error)
	ListAll(who identity.Identity, filter applicationapimodels.ApplicationFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error)
}

var Instance Provider

func NewHandler(maxResumeMb int) {
	initchecker.CheckInit(
		"filestorage", filestorage.Instance,
		"notification", notificationhandler.Instance,
		"chat", chathandler.Instance,
	)
	Instance = NewInstance(
		applicationstore.NewInstance(db.DB),
		jobstore.NewInstance(db.DB),
		filestorage.Instance,
		notificationhandler.Instance,
		chathandler.Instance,
		int64(maxResumeMb)<<20,
	)
}

func NewInstance(store applicationstore.Provider, jobStore jobstore.Provider, fileStorage filestorage.Provider,
	notifier notificationhandler.Provider, chats chathandler.Provider, maxResumeBytes int64) Provider {
	return &impl{
		store:          store,
		jobStore:       jobStore,
		fileStorage:    fileStorage,
		notifier:       notifier,
		chats:          chats,
		maxResumeBytes: maxResumeBytes,
	}
}

type impl struct {
	store          applicationstore.Provider
	jobStore       jobstore.Provider
	fileStorage    filestorage.Provider
	notifier       notificationhandler.Provider
	chats          chathandler.Provider
	maxResumeBytes int64
}

func (i impl) Apply(ctx context.Context, who identity.Identity, jobID string, data applicationapimodels.ApplyData, resume *applicationapimodels.ResumeFile) (applicationapimodels.ApplicationView, error) {
	if err := rbac.RequireRole(who, "apply to jobs", models.JobSeekerRole); err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if job == nil {
		return applicationapimodels.ApplicationView{}, errs.NotFound("job not found")
	}
	if job.Status != models.JobStatusApproved {
		return applicationapimodels.ApplicationView{}, errs.InvalidState("job is not open for applications")
	}
	rec := dbmodels.Application{
		JobID:          jobID,
		UserID:         who.UserID,
		Status:         models.ApplicationStatusSubmitted,
		CoverLetter:    strings.TrimSpace(data.CoverLetter),
		ApplicantEmail: strings.TrimSpace(data.Email),
	}
	if rec.ApplicantEmail == "" {
		rec.ApplicantEmail = who.Email
	}
	if resume != nil && len(resume.Body) != 0 {
		if i.maxResumeBytes > 0 && int64(len(resume.Body)) > i.maxResumeBytes {
			return applicationapimodels.ApplicationView{}, errs.Validation("resume is larger than %d MB", i.maxResumeBytes>>20)
		}
		rec.ResumeRef, err = i.fileStorage.Upload(ctx, filestorage.FolderResume, resume.Name, resume.Body, resume.ContentType)
		if err != nil {
			return applicationapimodels.ApplicationView{}, errors.Wrap(err, "resume upload failed")
		}
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	i.getLogger(who.UserID, id).WithField("job_id", jobID).Info("application submitted")
	return i.view(id)
}

func (i impl) UpdateStatus(who identity.Identity, id string, status models.ApplicationStatus) (applicationapimodels.ApplicationView, error) {
	if err := rbac.RequireRole(who, "change application status", models.EmployerRole); err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if err := (applicationapimodels.StatusData{Status: status}).Validate(); err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	app, err := i.store.GetByID(id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if app == nil {
		return applicationapimodels.ApplicationView{}, errs.NotFound("application not found")
	}
	if err = rbac.Check(who, "change application status", rbac.EmployerRoleSet, rbac.OwnedBy(app.EmployerUserID)); err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	from := app.Status
	if !from.CanMoveTo(status) {
		return applicationapimodels.ApplicationView{}, errs.InvalidTransition("application cannot move from %s to %s", from, status)
	}
	if status == models.ApplicationStatusAccepted {
		err = i.store.Accept(id, from)
	} else {
		err = i.store.Transition(id, from, status)
	}
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	logger := i.getLogger(who.UserID, id).
		WithField("from", from).
		WithField("to", status)
	logger.Info("application status changed")

	app.Status = status
	i.notifier.ApplicationStatusChanged(*app, status)
	if status.IsChatEligible() {
		if chat, created, err := i.chats.OpenForApplication(*app); err != nil {
			logger.WithError(err).Error("chat creation after status change failed")
		} else if created {
			logger.WithField("chat_id", chat.ID).Info("chat created")
		}
	}
	return i.view(id)
}

func (i impl) ListByJob(who identity.Identity, jobID string) ([]applicationapimodels.ApplicationView, error) {
	if err := rbac.RequireRole(who, "list job applications", models.EmployerRole); err != nil {
		return nil, err
	}
	job, err := i.jobStore.GetByID(jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errs.NotFound("job not found")
	}
	ownerUserID := ""
	if job.Employer != nil {
		ownerUserID = job.Employer.UserID
	}
	if err = rbac.Check(who, "list job applications", rbac.EmployerRoleSet, rbac.OwnedBy(ownerUserID)); err != nil {
		return nil, err
	}
	recList, err := i.store.ListByJob(jobID)
	if err != nil {
		return nil, err
	}
	result := make([]applicationapimodels.ApplicationView, 0, len(recList))
	for _, rec := range recList {
		view := applicationapimodels.ApplicationConvert(rec)
		view.JobTitle = job.Title
		result = append(result, view)
	}
	return result, nil
}

func (i impl) ListByUser(who identity.Identity) ([]applicationapimodels.ApplicationView, error) {
	if err := rbac.RequireRole(who, "list own applications", models.JobSeekerRole); err != nil {
		return nil, err
	}
	recList, err := i.store.ListByUser(who.UserID)
	if err != nil {
		return nil, err
	}
	return convertExtList(recList), nil
}

func (i impl) Get(who identity.Identity, id string) (applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if rec == nil {
		return applicationapimodels.ApplicationView{}, errs.NotFound("application not found")
	}
	if err = rbac.Check(who, "view this application", nil, rbac.OrAdmin(rbac.OwnedBy(rec.UserID, rec.EmployerUserID))); err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	return applicationapimodels.ApplicationExtConvert(*rec), nil
}

func (i impl) ListAll(who identity.Identity, filter applicationapimodels.ApplicationFilter) ([]applicationapimodels.ApplicationView, int64, error) {
	if err := rbac.RequireAdmin(who, "list all applications"); err != nil {
		return nil, 0, err
	}
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	rowCount, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	if int64(filter.Offset()) >= rowCount {
		return []applicationapimodels.ApplicationView{}, rowCount, nil
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	return convertExtList(recList), rowCount, nil
}

func (i impl) view(id string) (applicationapimodels.ApplicationView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return applicationapimodels.ApplicationView{}, err
	}
	if rec == nil {
		return applicationapimodels.ApplicationView{}, errs.NotFound("application not found")
	}
	return applicationapimodels.ApplicationExtConvert(*rec), nil
}

func convertExtList(recList []dbmodels.ApplicationExt) []applicationapimodels.ApplicationView {
	result := make([]applicationapimodels.ApplicationView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, applicationapimodels.ApplicationExtConvert(rec))
	}
	return result
}

func (i impl) getLogger(userID, applicationID string) *log.Entry {
	logger := log.WithField("user_id", userID)
	if applicationID != "" {
		logger = logger.WithField("application_id", applicationID)
	}
	return logger
}
