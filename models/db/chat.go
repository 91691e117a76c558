package dbmodels

type Chat struct {
	BaseModel
	ApplicationID  string       `gorm:"type:varchar(36);uniqueIndex;not null"`
	Application    *Application `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	EmployerID     string       `gorm:"type:varchar(36);not null"`
	EmployerUserID string       `gorm:"type:varchar(36);index;not null"`
	JobSeekerID    string       `gorm:"type:varchar(36);index;not null"`
}

func (c Chat) IsParticipant(userID string) bool {
	return userID != "" && (c.EmployerUserID == userID || c.JobSeekerID == userID)
}

// Counterpart returns the other participant of the chat.
func (c Chat) Counterpart(userID string) string {
	if c.EmployerUserID == userID {
		return c.JobSeekerID
	}
	return c.EmployerUserID
}

type Message struct {
	BaseModel
	ChatID   string `gorm:"type:varchar(36);index;not null"`
	Chat     *Chat  `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
	SenderID string `gorm:"type:varchar(36);not null"`
	Content  string
	FileRef  string `gorm:"type:varchar(512)"`
	FileName string `gorm:"type:varchar(255)"`
}
