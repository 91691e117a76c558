package reportapimodels

import (
	"strings"
	"time"

	"hire-backend/lib/errs"
	"hire-backend/models"
	dbmodels "hire-backend/models/db"
)

type ReportData struct {
	Reason string `json:"reason"`
}

func (r ReportData) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return errs.Validation("reason is required")
	}
	return nil
}

type ReportView struct {
	ID         string              `json:"id"`
	ReportedBy string              `json:"reported_by"`
	JobID      string              `json:"job_id,omitempty"`
	ChatID     string              `json:"chat_id,omitempty"`
	Reason     string              `json:"reason"`
	Status     models.ReportStatus `json:"status"`
	CreatedAt  time.Time           `json:"created_at"`
}

func ReportConvert(rec dbmodels.Report) ReportView {
	result := ReportView{
		ID:         rec.ID,
		ReportedBy: rec.ReportedBy,
		Reason:     rec.Reason,
		Status:     rec.Status,
		CreatedAt:  rec.CreatedAt,
	}
	if rec.JobID != nil {
		result.JobID = *rec.JobID
	}
	if rec.ChatID != nil {
		result.ChatID = *rec.ChatID
	}
	return result
}
