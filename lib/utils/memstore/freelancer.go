package memstore

import (
	"time"

	"github.com/lib/pq"
	"hire-backend/lib/errs"
	contactstore "hire-backend/lib/freelancer/contact-store"
	freelancerstore "hire-backend/lib/freelancer/store"
	"hire-backend/models"
	freelancerapimodels "hire-backend/models/api/freelancer"
	dbmodels "hire-backend/models/db"
)

func (d *DB) FreelancerStore() freelancerstore.Provider {
	return freelancerStore{d: d}
}

type freelancerStore struct {
	d *DB
}

func (s freelancerStore) Create(rec dbmodels.FreelancerProfile) (string, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, profile := range s.d.Freelancers {
		if profile.UserID == rec.UserID {
			return "", errs.Conflict("freelancer profile already exists")
		}
	}
	rec.BaseModel = s.d.newBase()
	s.d.Freelancers[rec.ID] = &rec
	return rec.ID, nil
}

func (s freelancerStore) GetByID(id string) (*dbmodels.FreelancerProfile, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Freelancers[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (s freelancerStore) GetByUserID(userID string) (*dbmodels.FreelancerProfile, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, rec := range s.d.Freelancers {
		if rec.UserID == userID {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (s freelancerStore) Update(id string, updMap map[string]interface{}) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Freelancers[id]
	if !ok {
		return notFound("freelancer profile")
	}
	for key, value := range updMap {
		switch key {
		case "title":
			rec.Title = value.(string)
		case "description":
			rec.Description = value.(string)
		case "hourly_rate":
			rate := value.(float64)
			rec.HourlyRate = &rate
		case "availability":
			rec.Availability = value.(models.FreelancerAvailability)
		case "skills":
			rec.Skills = value.(pq.StringArray)
		case "languages":
			rec.Languages = value.(pq.StringArray)
		case "experience_years":
			rec.ExperienceYears = value.(int)
		case "portfolio_url":
			rec.PortfolioUrl = value.(string)
		case "contact_email":
			rec.ContactEmail = value.(string)
		case "is_verified":
			rec.IsVerified = value.(bool)
		}
	}
	rec.UpdatedAt = s.d.tick()
	return nil
}

func (s freelancerStore) SetVerified(id string, verified bool) error {
	return s.Update(id, map[string]interface{}{"is_verified": verified})
}

func (s freelancerStore) Delete(id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.Freelancers[id]; !ok {
		return notFound("freelancer profile")
	}
	delete(s.d.Freelancers, id)
	for key, rec := range s.d.Contacts {
		if rec.FreelancerID == id {
			delete(s.d.Contacts, key)
		}
	}
	return nil
}

func (s freelancerStore) filtered(filter freelancerapimodels.FreelancerFilter) []dbmodels.FreelancerProfile {
	list := []dbmodels.FreelancerProfile{}
	for _, rec := range s.d.Freelancers {
		if !rec.IsVerified {
			continue
		}
		if filter.Search != "" && !contains(rec.Title, filter.Search) && !contains(rec.Description, filter.Search) {
			continue
		}
		if filter.Skill != "" && !hasSkill(rec.Skills, filter.Skill) {
			continue
		}
		if filter.MinRate > 0 && (rec.HourlyRate == nil || *rec.HourlyRate < filter.MinRate) {
			continue
		}
		if filter.MaxRate > 0 && (rec.HourlyRate == nil || *rec.HourlyRate > filter.MaxRate) {
			continue
		}
		if filter.Availability != "" && rec.Availability != filter.Availability {
			continue
		}
		list = append(list, *rec)
	}
	sortDesc(list, func(r dbmodels.FreelancerProfile) time.Time { return r.CreatedAt })
	return list
}

func (s freelancerStore) ListCount(filter freelancerapimodels.FreelancerFilter) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return int64(len(s.filtered(filter))), nil
}

func (s freelancerStore) List(filter freelancerapimodels.FreelancerFilter) ([]dbmodels.FreelancerProfile, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	page, limit := filter.GetPage()
	return paginate(s.filtered(filter), page, limit), nil
}

func (d *DB) ContactStore() contactstore.Provider {
	return contactStore{d: d}
}

type contactStore struct {
	d *DB
}

func (s contactStore) Create(rec dbmodels.ContactRequest) (string, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	if _, ok := s.d.Freelancers[rec.FreelancerID]; !ok {
		return "", notFound("freelancer profile")
	}
	rec.BaseModel = s.d.newBase()
	rec.Freelancer = nil
	s.d.Contacts[rec.ID] = &rec
	return rec.ID, nil
}

// withFreelancer mirrors the gorm preload. Caller holds mu.
func (s contactStore) withFreelancer(rec dbmodels.ContactRequest) dbmodels.ContactRequest {
	if profile, ok := s.d.Freelancers[rec.FreelancerID]; ok {
		copied := *profile
		rec.Freelancer = &copied
	}
	return rec
}

func (s contactStore) GetByID(id string) (*dbmodels.ContactRequest, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Contacts[id]
	if !ok {
		return nil, nil
	}
	result := s.withFreelancer(*rec)
	return &result, nil
}

func (s contactStore) Resolve(id string, status models.ContactRequestStatus) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Contacts[id]
	if !ok {
		return notFound("contact request")
	}
	if rec.Status != models.ContactRequestPending {
		return errs.InvalidState("contact request already processed")
	}
	rec.Status = status
	rec.UpdatedAt = s.d.tick()
	return nil
}

func (s contactStore) filtered(filter freelancerapimodels.ContactRequestFilter) []dbmodels.ContactRequest {
	list := []dbmodels.ContactRequest{}
	for _, rec := range s.d.Contacts {
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.FreelancerID != "" && rec.FreelancerID != filter.FreelancerID {
			continue
		}
		list = append(list, s.withFreelancer(*rec))
	}
	sortDesc(list, func(r dbmodels.ContactRequest) time.Time { return r.CreatedAt })
	return list
}

func (s contactStore) ListCount(filter freelancerapimodels.ContactRequestFilter) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return int64(len(s.filtered(filter))), nil
}

func (s contactStore) List(filter freelancerapimodels.ContactRequestFilter) ([]dbmodels.ContactRequest, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	page, limit := filter.GetPage()
	return paginate(s.filtered(filter), page, limit), nil
}

func hasSkill(skills []string, skill string) bool {
	for _, item := range skills {
		if item == skill {
			return true
		}
	}
	return false
}
