package memstore

import (
	"time"

	"hire-backend/models"
	dbmodels "hire-backend/models/db"
)

func (d *DB) SeedEmployer(userID string, status models.VerificationStatus) dbmodels.EmployerProfile {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec := dbmodels.EmployerProfile{
		BaseModel:          d.newBase(),
		UserID:             userID,
		CompanyName:        "Company of " + userID,
		ContactEmail:       userID + "@example.com",
		VerificationStatus: status,
	}
	d.Employers[rec.ID] = &rec
	return rec
}

func (d *DB) SeedJob(employerID string, status models.JobStatus, vacancies int) dbmodels.Job {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec := dbmodels.Job{
		BaseModel:      d.newBase(),
		EmployerID:     employerID,
		Title:          "Backend Engineer",
		Description:    "Go services",
		Category:       "engineering",
		Location:       "Addis Ababa",
		Vacancies:      vacancies,
		EmploymentType: models.EmploymentFullTime,
		ListingType:    models.ListingTypeFree,
		Status:         status,
		ExpiryDate:     time.Now().AddDate(0, 1, 0),
	}
	d.Jobs[rec.ID] = &rec
	return rec
}

func (d *DB) SeedApplication(jobID, userID string, status models.ApplicationStatus) dbmodels.Application {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec := dbmodels.Application{
		BaseModel:      d.newBase(),
		JobID:          jobID,
		UserID:         userID,
		Status:         status,
		ApplicantEmail: userID + "@example.com",
	}
	d.Applications[rec.ID] = &rec
	return rec
}

func (d *DB) Job(id string) dbmodels.Job {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.Jobs[id]
}

func (d *DB) Application(id string) dbmodels.Application {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.Applications[id]
}

func (d *DB) ChatCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.Chats)
}

func (d *DB) SeedFreelancer(userID string, verified bool) dbmodels.FreelancerProfile {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec := dbmodels.FreelancerProfile{
		BaseModel:    d.newBase(),
		UserID:       userID,
		Title:        "Freelancer " + userID,
		Availability: models.AvailabilityAvailable,
		Skills:       []string{"go"},
		ContactEmail: userID + "@example.com",
		IsVerified:   verified,
	}
	d.Freelancers[rec.ID] = &rec
	return rec
}

func (d *DB) SeedContactRequest(freelancerID string, status models.ContactRequestStatus) dbmodels.ContactRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec := dbmodels.ContactRequest{
		BaseModel:    d.newBase(),
		FreelancerID: freelancerID,
		SenderName:   "Client",
		SenderEmail:  "client@example.com",
		Message:      "Are you available next month?",
		Status:       status,
	}
	d.Contacts[rec.ID] = &rec
	return rec
}

func (d *DB) ContactRequest(id string) dbmodels.ContactRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.Contacts[id]
}
