package dbmodels

import (
	"time"

	"github.com/lib/pq"
	"hire-backend/models"
)

type Job struct {
	BaseModel
	EmployerID     string           `gorm:"type:varchar(36);index;not null"`
	Employer       *EmployerProfile `gorm:"foreignKey:EmployerID"`
	Title          string           `gorm:"type:varchar(255)"`
	Description    string
	Requirements   string
	Category       string `gorm:"type:varchar(100);index"`
	Location       string `gorm:"type:varchar(255)"`
	Salary         *int
	Skills         pq.StringArray        `gorm:"type:text[]"`
	Vacancies      int                   `gorm:"not null;default:1"`
	EmploymentType models.EmploymentType `gorm:"type:varchar(50)"`
	ListingType    models.ListingType    `gorm:"type:varchar(20)"`
	Status         models.JobStatus      `gorm:"type:varchar(20);index"`
	ExpiryDate     time.Time             `gorm:"index"`
}

func (j Job) IsOwnedBy(employerID string) bool {
	return employerID != "" && j.EmployerID == employerID
}

type JobExt struct {
	Job
	CompanyName      string
	ApplicationCount int64
}
