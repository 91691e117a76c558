package dbmodels

import "hire-backend/models"

type EmployerProfile struct {
	BaseModel
	UserID             string                    `gorm:"type:varchar(36);uniqueIndex;not null"`
	CompanyName        string                    `gorm:"type:varchar(255)"`
	ContactEmail       string                    `gorm:"type:varchar(255)"`
	VerificationStatus models.VerificationStatus `gorm:"type:varchar(20);index"`
}
