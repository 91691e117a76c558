package dbmodels

import "hire-backend/models"

type Report struct {
	BaseModel
	ReportedBy string              `gorm:"type:varchar(36);index;not null"`
	JobID      *string             `gorm:"type:varchar(36);index"`
	ChatID     *string             `gorm:"type:varchar(36);index"`
	Reason     string              `gorm:"not null"`
	Status     models.ReportStatus `gorm:"type:varchar(20);index"`
}
