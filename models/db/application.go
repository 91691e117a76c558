package dbmodels

import (
	"hire-backend/models"
)

type Application struct {
	BaseModel
	JobID          string                   `gorm:"type:varchar(36);uniqueIndex:idx_job_user;not null"`
	Job            *Job                     `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	UserID         string                   `gorm:"type:varchar(36);uniqueIndex:idx_job_user;index;not null"`
	Status         models.ApplicationStatus `gorm:"type:varchar(20);index"`
	CoverLetter    string
	ResumeRef      string `gorm:"type:varchar(512)"`
	ApplicantEmail string `gorm:"type:varchar(255)"`
}

// ApplicationExt carries the parent job data needed for ownership checks.
type ApplicationExt struct {
	Application
	JobTitle       string
	EmployerID     string
	EmployerUserID string
	Vacancies      int
}
