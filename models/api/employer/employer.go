package employerapimodels

import (
	"strings"
	"time"

	"hire-backend/lib/errs"
	"hire-backend/models"
	dbmodels "hire-backend/models/db"
)

type ProfileData struct {
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
}

func (p ProfileData) Validate() error {
	if strings.TrimSpace(p.CompanyName) == "" {
		return errs.Validation("company_name is required")
	}
	if p.ContactEmail != "" && !strings.Contains(p.ContactEmail, "@") {
		return errs.Validation("contact_email is invalid")
	}
	return nil
}

type ProfileView struct {
	ID                 string                    `json:"id"`
	UserID             string                    `json:"user_id"`
	CompanyName        string                    `json:"company_name"`
	ContactEmail       string                    `json:"contact_email"`
	VerificationStatus models.VerificationStatus `json:"verification_status"`
	CreatedAt          time.Time                 `json:"created_at"`
}

func ProfileConvert(rec dbmodels.EmployerProfile) ProfileView {
	return ProfileView{
		ID:                 rec.ID,
		UserID:             rec.UserID,
		CompanyName:        rec.CompanyName,
		ContactEmail:       rec.ContactEmail,
		VerificationStatus: rec.VerificationStatus,
		CreatedAt:          rec.CreatedAt,
	}
}
