package memstore

import (
	"time"

	"github.com/lib/pq"
	"hire-backend/lib/errs"
	savedjobstore "hire-backend/lib/job/saved-store"
	jobstore "hire-backend/lib/job/store"
	"hire-backend/models"
	jobapimodels "hire-backend/models/api/job"
	moderationapimodels "hire-backend/models/api/moderation"
	dbmodels "hire-backend/models/db"
)

func (d *DB) JobStore() jobstore.Provider {
	return jobStore{d: d}
}

func (d *DB) SavedJobStore() savedjobstore.Provider {
	return savedStore{d: d}
}

type jobStore struct {
	d *DB
}

func (s jobStore) Create(rec dbmodels.Job) (string, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec.BaseModel = s.d.newBase()
	rec.Employer = nil
	s.d.Jobs[rec.ID] = &rec
	return rec.ID, nil
}

func (s jobStore) withEmployer(rec dbmodels.Job) dbmodels.Job {
	if profile, ok := s.d.Employers[rec.EmployerID]; ok {
		copied := *profile
		rec.Employer = &copied
	}
	return rec
}

func (s jobStore) GetByID(id string) (*dbmodels.Job, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Jobs[id]
	if !ok {
		return nil, nil
	}
	result := s.withEmployer(*rec)
	return &result, nil
}

func (s jobStore) Update(id string, updMap map[string]interface{}) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Jobs[id]
	if !ok {
		return notFound("job")
	}
	if vacancies, resize := updMap["vacancies"].(int); resize {
		accepted := 0
		for _, app := range s.d.Applications {
			if app.JobID == id && app.Status == models.ApplicationStatusAccepted {
				accepted++
			}
		}
		if accepted > vacancies {
			return errs.CapacityExceeded("%d applications are already accepted, vacancies cannot be lowered to %d", accepted, vacancies)
		}
	}
	for key, value := range updMap {
		switch key {
		case "title":
			rec.Title = value.(string)
		case "description":
			rec.Description = value.(string)
		case "requirements":
			rec.Requirements = value.(string)
		case "category":
			rec.Category = value.(string)
		case "location":
			rec.Location = value.(string)
		case "salary":
			rec.Salary, _ = value.(*int)
		case "skills":
			rec.Skills = value.(pq.StringArray)
		case "vacancies":
			rec.Vacancies = value.(int)
		case "employment_type":
			rec.EmploymentType = value.(models.EmploymentType)
		case "listing_type":
			rec.ListingType = value.(models.ListingType)
		case "expiry_date":
			rec.ExpiryDate = value.(time.Time)
		case "status":
			rec.Status = value.(models.JobStatus)
		}
	}
	rec.UpdatedAt = s.d.tick()
	return nil
}

func (s jobStore) SetStatus(id string, status models.JobStatus) error {
	return s.Update(id, map[string]interface{}{"status": status})
}

func (s jobStore) MoveStatus(id string, from, to models.JobStatus) (bool, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Jobs[id]
	if !ok || rec.Status != from {
		return false, nil
	}
	rec.Status = to
	rec.UpdatedAt = s.d.tick()
	return true, nil
}

func (s jobStore) Delete(id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.Jobs[id]; !ok {
		return notFound("job")
	}
	delete(s.d.Jobs, id)
	for appID, app := range s.d.Applications {
		if app.JobID != id {
			continue
		}
		delete(s.d.Applications, appID)
		for chatID, chat := range s.d.Chats {
			if chat.ApplicationID == appID {
				delete(s.d.Chats, chatID)
			}
		}
	}
	for key, saved := range s.d.Saved {
		if saved.JobID == id {
			delete(s.d.Saved, key)
		}
	}
	return nil
}

func (s jobStore) filtered(filter jobapimodels.JobFilter) []dbmodels.Job {
	list := []dbmodels.Job{}
	for _, rec := range s.d.Jobs {
		if !matchJob(*rec, filter) {
			continue
		}
		list = append(list, s.withEmployer(*rec))
	}
	sortDesc(list, func(j dbmodels.Job) time.Time { return j.CreatedAt })
	return list
}

func matchJob(rec dbmodels.Job, filter jobapimodels.JobFilter) bool {
	if len(filter.Statuses) != 0 {
		found := false
		for _, status := range filter.Statuses {
			if rec.Status == status {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	if filter.EmployerID != "" && rec.EmployerID != filter.EmployerID {
		return false
	}
	if filter.Search != "" && !contains(rec.Title, filter.Search) &&
		!contains(rec.Description, filter.Search) && !contains(rec.Requirements, filter.Search) {
		return false
	}
	if filter.Category != "" && rec.Category != filter.Category {
		return false
	}
	if filter.Location != "" && !contains(rec.Location, filter.Location) {
		return false
	}
	if filter.EmploymentType != "" && rec.EmploymentType != models.NormalizeEmploymentType(filter.EmploymentType) {
		return false
	}
	if filter.ListingType != "" && string(rec.ListingType) != filter.ListingType {
		return false
	}
	if filter.SalaryFrom > 0 && (rec.Salary == nil || *rec.Salary < filter.SalaryFrom) {
		return false
	}
	if filter.SalaryTo > 0 && (rec.Salary == nil || *rec.Salary > filter.SalaryTo) {
		return false
	}
	if len(filter.Skills) != 0 {
		found := false
		for _, skill := range filter.Skills {
			for _, own := range rec.Skills {
				if own == skill {
					found = true
				}
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s jobStore) ListCount(filter jobapimodels.JobFilter) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return int64(len(s.filtered(filter))), nil
}

func (s jobStore) List(filter jobapimodels.JobFilter) ([]dbmodels.Job, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	page, limit := filter.GetPage()
	return paginate(s.filtered(filter), page, limit), nil
}

func (s jobStore) adminFiltered(filter moderationapimodels.JobFilter) []dbmodels.JobExt {
	list := []dbmodels.JobExt{}
	for _, rec := range s.d.Jobs {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !contains(rec.Title, filter.Search) {
			continue
		}
		var count int64
		for _, app := range s.d.Applications {
			if app.JobID == rec.ID {
				count++
			}
		}
		list = append(list, dbmodels.JobExt{Job: s.withEmployer(*rec), ApplicationCount: count})
	}
	sortDesc(list, func(j dbmodels.JobExt) time.Time { return j.CreatedAt })
	return list
}

func (s jobStore) AdminListCount(filter moderationapimodels.JobFilter) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return int64(len(s.adminFiltered(filter))), nil
}

func (s jobStore) AdminList(filter moderationapimodels.JobFilter) ([]dbmodels.JobExt, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	page, limit := filter.GetPage()
	return paginate(s.adminFiltered(filter), page, limit), nil
}

func (s jobStore) CloseExpired(now time.Time) ([]string, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	ids := []string{}
	for _, rec := range s.d.Jobs {
		if rec.Status == models.JobStatusApproved && rec.ExpiryDate.Before(now) {
			rec.Status = models.JobStatusClosed
			ids = append(ids, rec.ID)
		}
	}
	return ids, nil
}

type savedStore struct {
	d *DB
}

func (s savedStore) Save(jobID, userID string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.Jobs[jobID]; !ok {
		return notFound("job")
	}
	key := jobID + "/" + userID
	if _, ok := s.d.Saved[key]; ok {
		return errs.Conflict("job already saved")
	}
	s.d.Saved[key] = dbmodels.SavedJob{BaseModel: s.d.newBase(), JobID: jobID, UserID: userID}
	return nil
}

func (s savedStore) Remove(jobID, userID string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	key := jobID + "/" + userID
	if _, ok := s.d.Saved[key]; !ok {
		return notFound("saved job")
	}
	delete(s.d.Saved, key)
	return nil
}

func (s savedStore) List(userID string) ([]dbmodels.Job, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	saved := []dbmodels.SavedJob{}
	for _, rec := range s.d.Saved {
		if rec.UserID == userID {
			saved = append(saved, rec)
		}
	}
	sortDesc(saved, func(rec dbmodels.SavedJob) time.Time { return rec.CreatedAt })
	list := make([]dbmodels.Job, 0, len(saved))
	for _, rec := range saved {
		if job, ok := s.d.Jobs[rec.JobID]; ok {
			list = append(list, *job)
		}
	}
	return list, nil
}
