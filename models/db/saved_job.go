package dbmodels

type SavedJob struct {
	BaseModel
	JobID  string `gorm:"type:varchar(36);uniqueIndex:idx_saved_user"`
	Job    *Job   `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	UserID string `gorm:"type:varchar(36);uniqueIndex:idx_saved_user"`
}
