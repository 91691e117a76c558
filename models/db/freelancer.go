package dbmodels

import (
	"github.com/lib/pq"
	"hire-backend/models"
)

type FreelancerProfile struct {
	BaseModel
	UserID          string                        `gorm:"type:varchar(36);uniqueIndex;not null"`
	Title           string                        `gorm:"type:varchar(255);not null"`
	Description     string
	HourlyRate      *float64                      `gorm:"type:numeric(10,2)"`
	Availability    models.FreelancerAvailability `gorm:"type:varchar(20);index"`
	Skills          pq.StringArray                `gorm:"type:text[]"`
	Languages       pq.StringArray                `gorm:"type:text[]"`
	ExperienceYears int                           `gorm:"not null;default:0"`
	PortfolioUrl    string                        `gorm:"type:varchar(255)"`
	ContactEmail    string                        `gorm:"type:varchar(255)"`
	Rating          float64                       `gorm:"type:numeric(3,2);not null;default:0"`
	IsVerified      bool                          `gorm:"index;not null;default:false"`
}

// ContactRequest is held for admin review before the freelancer ever sees it.
type ContactRequest struct {
	BaseModel
	FreelancerID string                      `gorm:"type:varchar(36);index;not null"`
	Freelancer   *FreelancerProfile          `gorm:"foreignKey:FreelancerID;constraint:OnDelete:CASCADE"`
	SenderID     string                      `gorm:"type:varchar(36);index"`
	SenderName   string                      `gorm:"type:varchar(255)"`
	SenderEmail  string                      `gorm:"type:varchar(255);not null"`
	Message      string                      `gorm:"not null"`
	Status       models.ContactRequestStatus `gorm:"type:varchar(20);index"`
}
