package jobhandler

import (
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hire-backend/db"
	employerstore "hire-backend/lib/employer/store"
	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	savedjobstore "hire-backend/lib/job/saved-store"
	jobstore "hire-backend/lib/job/store"
	"hire-backend/lib/rbac"
	"hire-backend/models"
	jobapimodels "hire-backend/models/api/job"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Create(who identity.Identity, data jobapimodels.JobData) (jobapimodels.JobView, error)
	List(who identity.Identity, filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error)
	Get(who identity.Identity, id string) (jobapimodels.JobView, error)
	ListMine(who identity.Identity) ([]jobapimodels.JobView, error)
	// Update writes only the fields present in data. Lowering vacancies below
	// the accepted applications count fails with CapacityExceeded.
	Update(who identity.Identity, id string, data jobapimodels.JobUpdateData) (jobapimodels.JobView, error)
	Close(who identity.Identity, id string) error
	Delete(who identity.Identity, id string) error
	ExpireJobs(now time.Time) (closed int, err error)
	Save(who identity.Identity, id string) error
	Unsave(who identity.Identity, id string) error
	ListSaved(who identity.Identity) ([]jobapimodels.JobView, error)
}

// Policy holds the platform switches that shape job creation.
type Policy struct {
	AutoApproveFreeListings bool
	RequireVerifiedEmployer bool
}

var Instance Provider

func NewHandler(policy Policy) {
	Instance = NewInstance(
		jobstore.NewInstance(db.DB),
		savedjobstore.NewInstance(db.DB),
		employerstore.NewInstance(db.DB),
		policy,
	)
}

func NewInstance(store jobstore.Provider, savedStore savedjobstore.Provider, employerStore employerstore.Provider, policy Policy) Provider {
	return impl{
		store:         store,
		savedStore:    savedStore,
		employerStore: employerStore,
		policy:        policy,
	}
}

type impl struct {
	store         jobstore.Provider
	savedStore    savedjobstore.Provider
	employerStore employerstore.Provider
	policy        Policy
}

func (i impl) Create(who identity.Identity, data jobapimodels.JobData) (jobapimodels.JobView, error) {
	if err := rbac.RequireRole(who, "create jobs", models.EmployerRole); err != nil {
		return jobapimodels.JobView{}, err
	}
	data.Normalize()
	if err := data.Validate(); err != nil {
		return jobapimodels.JobView{}, err
	}
	profile, err := i.employerStore.GetByUserID(who.UserID)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if profile == nil {
		return jobapimodels.JobView{}, errs.Forbidden("create an employer profile before posting jobs")
	}
	if i.policy.RequireVerifiedEmployer && profile.VerificationStatus != models.VerificationVerified {
		return jobapimodels.JobView{}, errs.Forbidden("employer profile is not verified yet")
	}
	expiry, _ := data.ExpiryTime()
	rec := dbmodels.Job{
		EmployerID:     profile.ID,
		Title:          data.Title,
		Description:    data.Description,
		Requirements:   data.Requirements,
		Category:       data.Category,
		Location:       data.Location,
		Salary:         data.Salary,
		Skills:         pq.StringArray(data.Skills),
		Vacancies:      *data.Vacancies,
		EmploymentType: models.EmploymentType(data.EmploymentType),
		ListingType:    models.ListingType(data.ListingType),
		Status:         models.JobStatusPending,
		ExpiryDate:     expiry,
	}
	if i.policy.AutoApproveFreeListings && rec.ListingType == models.ListingTypeFree {
		rec.Status = models.JobStatusApproved
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return jobapimodels.JobView{}, errors.Wrap(err, "job creation failed")
	}
	i.getLogger(who.UserID, id).
		WithField("status", rec.Status).
		Info("job created")
	return i.view(id)
}

func (i impl) view(id string) (jobapimodels.JobView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if rec == nil {
		return jobapimodels.JobView{}, errs.NotFound("job not found")
	}
	return jobapimodels.JobConvert(*rec), nil
}

func (i impl) List(who identity.Identity, filter jobapimodels.JobFilter) ([]jobapimodels.JobView, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	filter.Statuses = []models.JobStatus{models.JobStatusApproved}
	filter.EmployerID = ""
	rowCount, err := i.store.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	if int64(filter.Offset()) >= rowCount {
		return []jobapimodels.JobView{}, rowCount, nil
	}
	recList, err := i.store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	return convertList(recList), rowCount, nil
}

func (i impl) Get(who identity.Identity, id string) (jobapimodels.JobView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if rec == nil {
		return jobapimodels.JobView{}, errs.NotFound("job not found")
	}
	if rec.Status != models.JobStatusApproved && !who.IsAdmin() && !i.isOwner(who, *rec) {
		return jobapimodels.JobView{}, errs.NotFound("job not found")
	}
	return jobapimodels.JobConvert(*rec), nil
}

func (i impl) ListMine(who identity.Identity) ([]jobapimodels.JobView, error) {
	if err := rbac.RequireRole(who, "list own jobs", models.EmployerRole); err != nil {
		return nil, err
	}
	profile, err := i.employerStore.GetByUserID(who.UserID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []jobapimodels.JobView{}, nil
	}
	filter := jobapimodels.JobFilter{EmployerID: profile.ID}
	filter.Limit = 100
	result := []jobapimodels.JobView{}
	for page := 1; ; page++ {
		filter.Page = page
		recList, err := i.store.List(filter)
		if err != nil {
			return nil, err
		}
		result = append(result, convertList(recList)...)
		if len(recList) < filter.Limit {
			break
		}
	}
	return result, nil
}

func (i impl) Update(who identity.Identity, id string, data jobapimodels.JobUpdateData) (jobapimodels.JobView, error) {
	if _, err := i.getOwned(who, id, "update this job"); err != nil {
		return jobapimodels.JobView{}, err
	}
	updMap, err := data.UpdMap()
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	if err = i.store.Update(id, updMap); err != nil {
		if _, typed := errs.KindOf(err); typed {
			return jobapimodels.JobView{}, err
		}
		return jobapimodels.JobView{}, errors.Wrap(err, "job update failed")
	}
	i.getLogger(who.UserID, id).WithField("fields", len(updMap)).Info("job updated")
	return i.view(id)
}

func (i impl) Close(who identity.Identity, id string) error {
	rec, err := i.getOwned(who, id, "close this job")
	if err != nil {
		return err
	}
	switch rec.Status {
	case models.JobStatusClosed:
		return nil
	case models.JobStatusApproved:
	default:
		return errs.InvalidState("only approved jobs can be closed, job is %s", rec.Status)
	}
	moved, err := i.store.MoveStatus(id, models.JobStatusApproved, models.JobStatusClosed)
	if err != nil {
		return errors.Wrap(err, "job closing failed")
	}
	if !moved {
		current, err := i.store.GetByID(id)
		if err != nil {
			return err
		}
		if current == nil {
			return errs.NotFound("job not found")
		}
		if current.Status != models.JobStatusClosed {
			return errs.InvalidState("only approved jobs can be closed, job is %s", current.Status)
		}
	}
	i.getLogger(who.UserID, id).Info("job closed")
	return nil
}

func (i impl) Delete(who identity.Identity, id string) error {
	if _, err := i.getOwned(who, id, "delete this job"); err != nil {
		return err
	}
	if err := i.store.Delete(id); err != nil {
		return err
	}
	i.getLogger(who.UserID, id).Info("job deleted")
	return nil
}

func (i impl) ExpireJobs(now time.Time) (int, error) {
	ids, err := i.store.CloseExpired(now)
	if err != nil {
		return 0, errors.Wrap(err, "closing expired jobs failed")
	}
	for _, id := range ids {
		log.WithField("job_id", id).Info("job closed by expiry")
	}
	return len(ids), nil
}

func (i impl) Save(who identity.Identity, id string) error {
	if err := rbac.RequireRole(who, "save jobs", models.JobSeekerRole); err != nil {
		return err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil || rec.Status != models.JobStatusApproved {
		return errs.NotFound("job not found")
	}
	return i.savedStore.Save(id, who.UserID)
}

func (i impl) Unsave(who identity.Identity, id string) error {
	if err := rbac.RequireRole(who, "remove saved jobs", models.JobSeekerRole); err != nil {
		return err
	}
	return i.savedStore.Remove(id, who.UserID)
}

func (i impl) ListSaved(who identity.Identity) ([]jobapimodels.JobView, error) {
	if err := rbac.RequireRole(who, "list saved jobs", models.JobSeekerRole); err != nil {
		return nil, err
	}
	recList, err := i.savedStore.List(who.UserID)
	if err != nil {
		return nil, err
	}
	return convertList(recList), nil
}

// getOwned loads the job and checks the caller is the employer owning it.
func (i impl) getOwned(who identity.Identity, id, action string) (*dbmodels.Job, error) {
	if err := rbac.RequireRole(who, action, models.EmployerRole); err != nil {
		return nil, err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, errs.NotFound("job not found")
	}
	if err = rbac.Check(who, action, rbac.EmployerRoleSet, func(who identity.Identity) bool {
		return i.isOwner(who, *rec)
	}); err != nil {
		return nil, err
	}
	return rec, nil
}

func (i impl) isOwner(who identity.Identity, rec dbmodels.Job) bool {
	if !who.Is(models.EmployerRole) {
		return false
	}
	if rec.Employer != nil {
		return rec.Employer.UserID == who.UserID
	}
	profile, err := i.employerStore.GetByID(rec.EmployerID)
	if err != nil || profile == nil {
		return false
	}
	return profile.UserID == who.UserID
}

func convertList(recList []dbmodels.Job) []jobapimodels.JobView {
	result := make([]jobapimodels.JobView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, jobapimodels.JobConvert(rec))
	}
	return result
}

func (i impl) getLogger(userID, jobID string) *log.Entry {
	logger := log.WithField("user_id", userID)
	if jobID != "" {
		logger = logger.WithField("job_id", jobID)
	}
	return logger
}
