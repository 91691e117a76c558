package dbmodels

import "hire-backend/models"

type Notification struct {
	BaseModel
	UserID    string                  `gorm:"type:varchar(36);index:idx_user_read"`
	Type      models.NotificationType `gorm:"type:varchar(50)"`
	Title     string                  `gorm:"type:varchar(255)"`
	Message   string
	RelatedID string `gorm:"type:varchar(36)"`
	IsRead    bool   `gorm:"index:idx_user_read"`
}
