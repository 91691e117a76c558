package chatapimodels

import (
	"strings"
	"time"

	"hire-backend/lib/errs"
	dbmodels "hire-backend/models/db"
)

type ChatView struct {
	ID             string    `json:"id"`
	ApplicationID  string    `json:"application_id"`
	EmployerID     string    `json:"employer_id"`
	EmployerUserID string    `json:"employer_user_id"`
	JobSeekerID    string    `json:"job_seeker_id"`
	CreatedAt      time.Time `json:"created_at"`
}

func ChatConvert(rec dbmodels.Chat) ChatView {
	return ChatView{
		ID:             rec.ID,
		ApplicationID:  rec.ApplicationID,
		EmployerID:     rec.EmployerID,
		EmployerUserID: rec.EmployerUserID,
		JobSeekerID:    rec.JobSeekerID,
		CreatedAt:      rec.CreatedAt,
	}
}

type MessageView struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content,omitempty"`
	FileUrl   string    `json:"file_url,omitempty"`
	FileName  string    `json:"file_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func MessageConvert(rec dbmodels.Message) MessageView {
	return MessageView{
		ID:        rec.ID,
		ChatID:    rec.ChatID,
		SenderID:  rec.SenderID,
		Content:   rec.Content,
		FileUrl:   rec.FileRef,
		FileName:  rec.FileName,
		CreatedAt: rec.CreatedAt,
	}
}

type SendMessageData struct {
	ChatID   string `json:"chat_id"`
	SenderID string `json:"sender_id"`
	Content  string `json:"content"`
}

func (s SendMessageData) Validate() error {
	if s.ChatID == "" {
		return errs.Validation("chat_id is required")
	}
	if strings.TrimSpace(s.Content) == "" {
		return errs.Validation("message content is empty")
	}
	return nil
}

type UploadFileData struct {
	ChatID   string `json:"chat_id"`
	SenderID string `json:"sender_id"`
	Name     string `json:"name"`
	File     string `json:"file"` // base64, data-url prefix allowed
}

func (u UploadFileData) Validate() error {
	if u.ChatID == "" {
		return errs.Validation("chat_id is required")
	}
	if strings.TrimSpace(u.Name) == "" {
		return errs.Validation("file name is required")
	}
	if u.File == "" {
		return errs.Validation("file is empty")
	}
	return nil
}

type FileUploaded struct {
	ChatID  string      `json:"chat_id"`
	Url     string      `json:"url"`
	Name    string      `json:"name"`
	Message MessageView `json:"message"`
}
