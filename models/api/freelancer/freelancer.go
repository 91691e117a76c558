package freelancerapimodels

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"hire-backend/lib/errs"
	"hire-backend/lib/utils/helpers"
	"hire-backend/models"
	apimodels "hire-backend/models/api"
	dbmodels "hire-backend/models/db"
)

type ProfileData struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	HourlyRate      *float64 `json:"hourly_rate"`
	Availability    string   `json:"availability"` // defaults to available
	Skills          []string `json:"skills"`
	Languages       []string `json:"languages"`
	ExperienceYears int      `json:"experience_years"`
	PortfolioUrl    string   `json:"portfolio_url"`
	ContactEmail    string   `json:"contact_email"` // shared with approved clients
}

func (p *ProfileData) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.ContactEmail = strings.TrimSpace(p.ContactEmail)
	if p.Availability == "" {
		p.Availability = string(models.AvailabilityAvailable)
	}
}

func (p ProfileData) Validate() error {
	if p.Title == "" {
		return errs.Validation("title is required")
	}
	if p.HourlyRate != nil && *p.HourlyRate < 0 {
		return errs.Validation("hourly_rate must not be negative")
	}
	if p.ExperienceYears < 0 {
		return errs.Validation("experience_years must not be negative")
	}
	if err := models.FreelancerAvailability(p.Availability).Validate(); err != nil {
		return errs.Validation(err.Error())
	}
	if p.ContactEmail != "" && !helpers.IsEmail(p.ContactEmail) {
		return errs.Validation("contact_email is invalid")
	}
	return nil
}

func (p ProfileData) Record(userID string) dbmodels.FreelancerProfile {
	return dbmodels.FreelancerProfile{
		UserID:          userID,
		Title:           p.Title,
		Description:     p.Description,
		HourlyRate:      p.HourlyRate,
		Availability:    models.FreelancerAvailability(p.Availability),
		Skills:          pq.StringArray(p.Skills),
		Languages:       pq.StringArray(p.Languages),
		ExperienceYears: p.ExperienceYears,
		PortfolioUrl:    p.PortfolioUrl,
		ContactEmail:    p.ContactEmail,
	}
}

// ProfileUpdateData carries only the fields the caller sent.
type ProfileUpdateData struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	HourlyRate      *float64  `json:"hourly_rate"`
	Availability    *string   `json:"availability"`
	Skills          *[]string `json:"skills"`
	Languages       *[]string `json:"languages"`
	ExperienceYears *int      `json:"experience_years"`
	PortfolioUrl    *string   `json:"portfolio_url"`
	ContactEmail    *string   `json:"contact_email"`
}

func (p ProfileUpdateData) UpdMap() (map[string]interface{}, error) {
	updMap := map[string]interface{}{}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, errs.Validation("title is required")
		}
		updMap["title"] = title
	}
	if p.Description != nil {
		updMap["description"] = *p.Description
	}
	if p.HourlyRate != nil {
		if *p.HourlyRate < 0 {
			return nil, errs.Validation("hourly_rate must not be negative")
		}
		updMap["hourly_rate"] = *p.HourlyRate
	}
	if p.Availability != nil {
		availability := models.FreelancerAvailability(*p.Availability)
		if err := availability.Validate(); err != nil {
			return nil, errs.Validation(err.Error())
		}
		updMap["availability"] = availability
	}
	if p.Skills != nil {
		updMap["skills"] = pq.StringArray(*p.Skills)
	}
	if p.Languages != nil {
		updMap["languages"] = pq.StringArray(*p.Languages)
	}
	if p.ExperienceYears != nil {
		if *p.ExperienceYears < 0 {
			return nil, errs.Validation("experience_years must not be negative")
		}
		updMap["experience_years"] = *p.ExperienceYears
	}
	if p.PortfolioUrl != nil {
		updMap["portfolio_url"] = *p.PortfolioUrl
	}
	if p.ContactEmail != nil {
		email := strings.TrimSpace(*p.ContactEmail)
		if email != "" && !helpers.IsEmail(email) {
			return nil, errs.Validation("contact_email is invalid")
		}
		updMap["contact_email"] = email
	}
	return updMap, nil
}

type ProfileView struct {
	ID              string                        `json:"id"`
	UserID          string                        `json:"user_id"`
	Title           string                        `json:"title"`
	Description     string                        `json:"description"`
	HourlyRate      *float64                      `json:"hourly_rate"`
	Availability    models.FreelancerAvailability `json:"availability"`
	Skills          []string                      `json:"skills"`
	Languages       []string                      `json:"languages"`
	ExperienceYears int                           `json:"experience_years"`
	PortfolioUrl    string                        `json:"portfolio_url,omitempty"`
	Rating          float64                       `json:"rating"`
	IsVerified      bool                          `json:"is_verified"`
	CreatedAt       time.Time                     `json:"created_at"`
}

func ProfileConvert(rec dbmodels.FreelancerProfile) ProfileView {
	return ProfileView{
		ID:              rec.ID,
		UserID:          rec.UserID,
		Title:           rec.Title,
		Description:     rec.Description,
		HourlyRate:      rec.HourlyRate,
		Availability:    rec.Availability,
		Skills:          nonNil(rec.Skills),
		Languages:       nonNil(rec.Languages),
		ExperienceYears: rec.ExperienceYears,
		PortfolioUrl:    rec.PortfolioUrl,
		Rating:          rec.Rating,
		IsVerified:      rec.IsVerified,
		CreatedAt:       rec.CreatedAt,
	}
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// FreelancerFilter lists verified profiles only. Zero rates mean no bound.
type FreelancerFilter struct {
	apimodels.Pagination
	Search       string                        `json:"q" query:"q"`
	Skill        string                        `json:"skill" query:"skill"`
	MinRate      float64                       `json:"min_rate" query:"min_rate"`
	MaxRate      float64                       `json:"max_rate" query:"max_rate"`
	Availability models.FreelancerAvailability `json:"availability" query:"availability"`
}

type ContactData struct {
	Message string `json:"message"`
	Email   string `json:"email"` // where the freelancer can reply
	Name    string `json:"name"`
}

func (c ContactData) Validate() error {
	if strings.TrimSpace(c.Message) == "" {
		return errs.Validation("message is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		return errs.Validation("email is required for the freelancer to reply to you")
	}
	if !helpers.IsEmail(strings.TrimSpace(c.Email)) {
		return errs.Validation("invalid email format")
	}
	return nil
}

type ContactRequestView struct {
	ID              string                      `json:"id"`
	FreelancerID    string                      `json:"freelancer_id"`
	FreelancerTitle string                      `json:"freelancer_title,omitempty"`
	SenderName      string                      `json:"sender_name"`
	SenderEmail     string                      `json:"sender_email"`
	Message         string                      `json:"message"`
	Status          models.ContactRequestStatus `json:"status"`
	CreatedAt       time.Time                   `json:"created_at"`
}

func ContactRequestConvert(rec dbmodels.ContactRequest) ContactRequestView {
	result := ContactRequestView{
		ID:           rec.ID,
		FreelancerID: rec.FreelancerID,
		SenderName:   rec.SenderName,
		SenderEmail:  rec.SenderEmail,
		Message:      rec.Message,
		Status:       rec.Status,
		CreatedAt:    rec.CreatedAt,
	}
	if rec.Freelancer != nil {
		result.FreelancerTitle = rec.Freelancer.Title
	}
	return result
}

type ContactRequestFilter struct {
	apimodels.Pagination
	Status       models.ContactRequestStatus `json:"status" query:"status"`               // admin only
	FreelancerID string                      `json:"freelancer_id" query:"freelancer_id"` // admin only
}
