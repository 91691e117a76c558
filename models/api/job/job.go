package jobapimodels

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"hire-backend/lib/errs"
	"hire-backend/models"
	apimodels "hire-backend/models/api"
	dbmodels "hire-backend/models/db"
)

const dateLayout = "2006-01-02"

type JobData struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Requirements   string   `json:"requirements"`
	Category       string   `json:"category"`
	Location       string   `json:"location"`
	Salary         *int     `json:"salary"`
	Skills         []string `json:"skills"`
	Vacancies      *int     `json:"vacancies"`       // defaults to 1
	EmploymentType string   `json:"employment_type"` // full-time or full_time
	ListingType    string   `json:"listing_type"`    // defaults to free
	ExpiryDate     string   `json:"expiry_date"`     // YYYY-MM-DD or RFC3339
}

// Normalize fills defaults before validation.
func (j *JobData) Normalize() {
	j.Title = strings.TrimSpace(j.Title)
	if j.Vacancies == nil {
		one := 1
		j.Vacancies = &one
	}
	if j.ListingType == "" {
		j.ListingType = string(models.ListingTypeFree)
	}
	j.EmploymentType = string(models.NormalizeEmploymentType(j.EmploymentType))
}

func (j JobData) Validate() error {
	if j.Title == "" {
		return errs.Validation("title is required")
	}
	if j.ExpiryDate == "" {
		return errs.Validation("expiry_date is required")
	}
	if _, err := j.ExpiryTime(); err != nil {
		return err
	}
	if j.Vacancies != nil && *j.Vacancies < 1 {
		return errs.Validation("vacancies must be at least 1")
	}
	if j.Salary != nil && *j.Salary < 0 {
		return errs.Validation("salary must not be negative")
	}
	if err := models.ListingType(j.ListingType).Validate(); err != nil {
		return errs.Validation(err.Error())
	}
	if err := models.EmploymentType(j.EmploymentType).Validate(); err != nil {
		return errs.Validation(err.Error())
	}
	return nil
}

func (j JobData) ExpiryTime() (time.Time, error) {
	return ParseDate(j.ExpiryDate)
}

func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errs.Validation("invalid date %q", value)
	}
	return t, nil
}

// JobUpdateData is a partial update, fields left out of the body keep their value.
type JobUpdateData struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Requirements   *string   `json:"requirements"`
	Category       *string   `json:"category"`
	Location       *string   `json:"location"`
	Salary         *int      `json:"salary"`
	Skills         *[]string `json:"skills"`
	Vacancies      *int      `json:"vacancies"`
	EmploymentType *string   `json:"employment_type"`
	ListingType    *string   `json:"listing_type"`
	ExpiryDate     *string   `json:"expiry_date"`
}

// UpdMap validates the present fields and returns them keyed by column.
func (j JobUpdateData) UpdMap() (map[string]interface{}, error) {
	updMap := map[string]interface{}{}
	if j.Title != nil {
		title := strings.TrimSpace(*j.Title)
		if title == "" {
			return nil, errs.Validation("title must not be empty")
		}
		updMap["title"] = title
	}
	texts := []struct {
		column string
		value  *string
	}{
		{"description", j.Description},
		{"requirements", j.Requirements},
		{"category", j.Category},
		{"location", j.Location},
	}
	for _, text := range texts {
		if text.value != nil {
			updMap[text.column] = *text.value
		}
	}
	if j.Salary != nil {
		if *j.Salary < 0 {
			return nil, errs.Validation("salary must not be negative")
		}
		updMap["salary"] = j.Salary
	}
	if j.Skills != nil {
		updMap["skills"] = pq.StringArray(*j.Skills)
	}
	if j.Vacancies != nil {
		if *j.Vacancies < 1 {
			return nil, errs.Validation("vacancies must be at least 1")
		}
		updMap["vacancies"] = *j.Vacancies
	}
	if j.EmploymentType != nil {
		employmentType := models.NormalizeEmploymentType(*j.EmploymentType)
		if err := employmentType.Validate(); err != nil {
			return nil, errs.Validation(err.Error())
		}
		updMap["employment_type"] = employmentType
	}
	if j.ListingType != nil {
		listingType := models.ListingType(*j.ListingType)
		if err := listingType.Validate(); err != nil {
			return nil, errs.Validation(err.Error())
		}
		updMap["listing_type"] = listingType
	}
	if j.ExpiryDate != nil {
		expiry, err := ParseDate(*j.ExpiryDate)
		if err != nil {
			return nil, err
		}
		updMap["expiry_date"] = expiry
	}
	return updMap, nil
}

type JobFilter struct {
	apimodels.Pagination
	Search         string   `json:"search" query:"search"`
	Category       string   `json:"category" query:"category"`
	Location       string   `json:"location" query:"location"`
	EmploymentType string   `json:"employment_type" query:"employment_type"`
	ListingType    string   `json:"listing_type" query:"listing_type"`
	SalaryFrom     int      `json:"salary_from" query:"salary_from"`
	SalaryTo       int      `json:"salary_to" query:"salary_to"`
	Skills         []string `json:"skills" query:"skills"`
	// Statuses is set by the server, never taken from the public query.
	Statuses []models.JobStatus `json:"-" query:"-"`
	// EmployerID restricts the list to one employer.
	EmployerID string `json:"-" query:"-"`
}

func (f JobFilter) Validate() error {
	if f.SalaryFrom < 0 || f.SalaryTo < 0 {
		return errs.Validation("salary range must not be negative")
	}
	if f.SalaryTo > 0 && f.SalaryFrom > f.SalaryTo {
		return errs.Validation("salary_from is greater than salary_to")
	}
	return nil
}

type JobView struct {
	ID               string           `json:"id"`
	EmployerID       string           `json:"employer_id"`
	CompanyName      string           `json:"company_name,omitempty"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Requirements     string           `json:"requirements"`
	Category         string           `json:"category"`
	Location         string           `json:"location"`
	Salary           *int             `json:"salary,omitempty"`
	Skills           []string         `json:"skills"`
	Vacancies        int              `json:"vacancies"`
	EmploymentType   string           `json:"employment_type"`
	ListingType      string           `json:"listing_type"`
	Status           models.JobStatus `json:"status"`
	ExpiryDate       time.Time        `json:"expiry_date"`
	ApplicationCount *int64           `json:"application_count,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func JobConvert(rec dbmodels.Job) JobView {
	result := JobView{
		ID:             rec.ID,
		EmployerID:     rec.EmployerID,
		Title:          rec.Title,
		Description:    rec.Description,
		Requirements:   rec.Requirements,
		Category:       rec.Category,
		Location:       rec.Location,
		Salary:         rec.Salary,
		Skills:         []string(rec.Skills),
		Vacancies:      rec.Vacancies,
		EmploymentType: string(rec.EmploymentType),
		ListingType:    string(rec.ListingType),
		Status:         rec.Status,
		ExpiryDate:     rec.ExpiryDate,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}
	if result.Skills == nil {
		result.Skills = []string{}
	}
	if rec.Employer != nil {
		result.CompanyName = rec.Employer.CompanyName
	}
	return result
}

func JobExtConvert(rec dbmodels.JobExt) JobView {
	result := JobConvert(rec.Job)
	if rec.CompanyName != "" {
		result.CompanyName = rec.CompanyName
	}
	count := rec.ApplicationCount
	result.ApplicationCount = &count
	return result
}
