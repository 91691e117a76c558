package memstore

import (
	"time"

	applicationstore "hire-backend/lib/application/store"
	"hire-backend/lib/errs"
	"hire-backend/models"
	applicationapimodels "hire-backend/models/api/application"
	dbmodels "hire-backend/models/db"
)

func (d *DB) ApplicationStore() applicationstore.Provider {
	return applicationStore{d: d}
}

type applicationStore struct {
	d *DB
}

func (s applicationStore) ext(rec dbmodels.Application) dbmodels.ApplicationExt {
	result := dbmodels.ApplicationExt{Application: rec}
	if job, ok := s.d.Jobs[rec.JobID]; ok {
		result.JobTitle = job.Title
		result.EmployerID = job.EmployerID
		result.EmployerUserID = s.d.employerUserID(job.EmployerID)
		result.Vacancies = job.Vacancies
	}
	return result
}

func (s applicationStore) Create(rec dbmodels.Application) (string, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.Jobs[rec.JobID]; !ok {
		return "", errs.NotFound("job not found")
	}
	for _, app := range s.d.Applications {
		if app.JobID == rec.JobID && app.UserID == rec.UserID {
			return "", errs.Conflict("you have already applied to this job")
		}
	}
	rec.BaseModel = s.d.newBase()
	rec.Job = nil
	s.d.Applications[rec.ID] = &rec
	return rec.ID, nil
}

func (s applicationStore) GetByID(id string) (*dbmodels.ApplicationExt, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Applications[id]
	if !ok {
		return nil, nil
	}
	result := s.ext(*rec)
	return &result, nil
}

func (s applicationStore) transition(id string, from, to models.ApplicationStatus) error {
	rec, ok := s.d.Applications[id]
	if !ok || rec.Status != from {
		return errs.InvalidTransition("application status changed concurrently, expected %s", from)
	}
	rec.Status = to
	rec.UpdatedAt = s.d.tick()
	return nil
}

func (s applicationStore) Transition(id string, from, to models.ApplicationStatus) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return s.transition(id, from, to)
}

func (s applicationStore) Accept(id string, from models.ApplicationStatus) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	app, ok := s.d.Applications[id]
	if !ok {
		return errs.NotFound("application not found")
	}
	job, ok := s.d.Jobs[app.JobID]
	if !ok {
		return errs.NotFound("job not found")
	}
	accepted := 0
	for _, rec := range s.d.Applications {
		if rec.JobID == job.ID && rec.Status == models.ApplicationStatusAccepted {
			accepted++
		}
	}
	if accepted >= job.Vacancies {
		return errs.CapacityExceeded("all %d vacancies of the job are already filled", job.Vacancies)
	}
	return s.transition(id, from, models.ApplicationStatusAccepted)
}

func (s applicationStore) ListByJob(jobID string) ([]dbmodels.Application, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	list := []dbmodels.Application{}
	for _, rec := range s.d.Applications {
		if rec.JobID == jobID {
			list = append(list, *rec)
		}
	}
	sortDesc(list, func(a dbmodels.Application) time.Time { return a.CreatedAt })
	return list, nil
}

func (s applicationStore) ListByUser(userID string) ([]dbmodels.ApplicationExt, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	list := []dbmodels.ApplicationExt{}
	for _, rec := range s.d.Applications {
		if rec.UserID == userID {
			list = append(list, s.ext(*rec))
		}
	}
	sortDesc(list, func(a dbmodels.ApplicationExt) time.Time { return a.CreatedAt })
	return list, nil
}

func (s applicationStore) filtered(filter applicationapimodels.ApplicationFilter) []dbmodels.ApplicationExt {
	list := []dbmodels.ApplicationExt{}
	for _, rec := range s.d.Applications {
		ext := s.ext(*rec)
		if filter.JobID != "" && rec.JobID != filter.JobID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.Search != "" && !contains(ext.JobTitle, filter.Search) {
			continue
		}
		list = append(list, ext)
	}
	sortDesc(list, func(a dbmodels.ApplicationExt) time.Time { return a.CreatedAt })
	return list
}

func (s applicationStore) ListCount(filter applicationapimodels.ApplicationFilter) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return int64(len(s.filtered(filter))), nil
}

func (s applicationStore) List(filter applicationapimodels.ApplicationFilter) ([]dbmodels.ApplicationExt, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	page, limit := filter.GetPage()
	return paginate(s.filtered(filter), page, limit), nil
}
