package memstore

import (
	"time"

	employerstore "hire-backend/lib/employer/store"
	"hire-backend/lib/errs"
	"hire-backend/models"
	moderationapimodels "hire-backend/models/api/moderation"
	dbmodels "hire-backend/models/db"
)

func (d *DB) EmployerStore() employerstore.Provider {
	return employerStore{d: d}
}

type employerStore struct {
	d *DB
}

func (s employerStore) Create(rec dbmodels.EmployerProfile) (string, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, profile := range s.d.Employers {
		if profile.UserID == rec.UserID {
			return "", errs.Conflict("employer profile already exists")
		}
	}
	rec.BaseModel = s.d.newBase()
	s.d.Employers[rec.ID] = &rec
	return rec.ID, nil
}

func (s employerStore) GetByID(id string) (*dbmodels.EmployerProfile, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Employers[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (s employerStore) GetByUserID(userID string) (*dbmodels.EmployerProfile, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, rec := range s.d.Employers {
		if rec.UserID == userID {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (s employerStore) Update(id string, updMap map[string]interface{}) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Employers[id]
	if !ok {
		return notFound("employer profile")
	}
	for key, value := range updMap {
		switch key {
		case "company_name":
			rec.CompanyName = value.(string)
		case "contact_email":
			rec.ContactEmail = value.(string)
		case "verification_status":
			rec.VerificationStatus = value.(models.VerificationStatus)
		}
	}
	rec.UpdatedAt = s.d.tick()
	return nil
}

func (s employerStore) SetVerification(id string, status models.VerificationStatus) error {
	return s.Update(id, map[string]interface{}{"verification_status": status})
}

func (s employerStore) filtered(filter moderationapimodels.EmployerFilter) []dbmodels.EmployerProfile {
	list := []dbmodels.EmployerProfile{}
	for _, rec := range s.d.Employers {
		if filter.Status != "" && rec.VerificationStatus != filter.Status {
			continue
		}
		if filter.Search != "" && !contains(rec.CompanyName, filter.Search) {
			continue
		}
		list = append(list, *rec)
	}
	sortDesc(list, func(p dbmodels.EmployerProfile) time.Time { return p.CreatedAt })
	return list
}

func (s employerStore) ListCount(filter moderationapimodels.EmployerFilter) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return int64(len(s.filtered(filter))), nil
}

func (s employerStore) List(filter moderationapimodels.EmployerFilter) ([]dbmodels.EmployerProfile, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	page, limit := filter.GetPage()
	return paginate(s.filtered(filter), page, limit), nil
}
