package moderationapimodels

import (
	"hire-backend/lib/errs"
	"hire-backend/models"
	apimodels "hire-backend/models/api"
)

type VerifyEmployerData struct {
	Status models.VerificationStatus `json:"status"`
}

func (v VerifyEmployerData) Validate() error {
	if err := v.Status.Validate(); err != nil {
		return errs.Validation(err.Error())
	}
	return nil
}

type ApproveJobData struct {
	Status models.JobStatus `json:"status"`
}

func (a ApproveJobData) Validate() error {
	if err := a.Status.Validate(); err != nil {
		return errs.Validation(err.Error())
	}
	return nil
}

type ResolveReportData struct {
	Status models.ReportStatus `json:"status"`
}

func (r ResolveReportData) Validate() error {
	if err := r.Status.Validate(); err != nil {
		return errs.Validation(err.Error())
	}
	return nil
}

type JobFilter struct {
	apimodels.Pagination
	Status models.JobStatus `json:"status" query:"status"`
	Search string           `json:"search" query:"search"`
}

type EmployerFilter struct {
	apimodels.Pagination
	Status models.VerificationStatus `json:"status" query:"status"`
	Search string                    `json:"search" query:"search"`
}

type ReportFilter struct {
	apimodels.Pagination
	Status models.ReportStatus `json:"status" query:"status"`
}

type VerifyFreelancerData struct {
	Verified bool `json:"verified"`
}

type RespondContactRequestData struct {
	Status models.ContactRequestStatus `json:"status"`
}

func (r RespondContactRequestData) Validate() error {
	if err := r.Status.Validate(); err != nil {
		return errs.Validation(err.Error())
	}
	return nil
}
