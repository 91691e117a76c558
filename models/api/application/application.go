package applicationapimodels

import (
	"time"

	"hire-backend/lib/errs"
	"hire-backend/models"
	apimodels "hire-backend/models/api"
	dbmodels "hire-backend/models/db"
)

type ApplyData struct {
	CoverLetter string `json:"cover_letter" form:"cover_letter"`
	Email       string `json:"email" form:"email"` // contact address for status mails
}

type ResumeFile struct {
	Name        string
	ContentType string
	Size        int64
	Body        []byte
}

type StatusData struct {
	Status models.ApplicationStatus `json:"status"`
}

func (s StatusData) Validate() error {
	if err := s.Status.Validate(); err != nil {
		return errs.Validation(err.Error())
	}
	return nil
}

type ApplicationFilter struct {
	apimodels.Pagination
	JobID  string                   `json:"job_id" query:"job_id"`
	Status models.ApplicationStatus `json:"status" query:"status"`
	Search string                   `json:"search" query:"search"`
}

func (f ApplicationFilter) Validate() error {
	if f.Status != "" {
		if err := f.Status.Validate(); err != nil {
			return errs.Validation(err.Error())
		}
	}
	return nil
}

type ApplicationView struct {
	ID             string                   `json:"id"`
	JobID          string                   `json:"job_id"`
	JobTitle       string                   `json:"job_title,omitempty"`
	UserID         string                   `json:"user_id"`
	Status         models.ApplicationStatus `json:"status"`
	CoverLetter    string                   `json:"cover_letter"`
	ResumeRef      string                   `json:"resume_ref,omitempty"`
	ApplicantEmail string                   `json:"applicant_email,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func ApplicationConvert(rec dbmodels.Application) ApplicationView {
	result := ApplicationView{
		ID:             rec.ID,
		JobID:          rec.JobID,
		UserID:         rec.UserID,
		Status:         rec.Status,
		CoverLetter:    rec.CoverLetter,
		ResumeRef:      rec.ResumeRef,
		ApplicantEmail: rec.ApplicantEmail,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if rec.Job != nil {
		result.JobTitle = rec.Job.Title
	}
	return result
}

func ApplicationExtConvert(rec dbmodels.ApplicationExt) ApplicationView {
	result := ApplicationConvert(rec.Application)
	if rec.JobTitle != "" {
		result.JobTitle = rec.JobTitle
	}
	return result
}
