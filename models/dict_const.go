package models

import (
	"strings"

	"github.com/pkg/errors"
)

type JobStatus string

const (
	JobStatusPending  JobStatus = "pending"
	JobStatusApproved JobStatus = "approved"
	JobStatusRejected JobStatus = "rejected"
	JobStatusClosed   JobStatus = "closed"
)

// ModerationJobStatuses are the values an admin may write through approveJob.
var ModerationJobStatuses = []JobStatus{JobStatusApproved, JobStatusRejected, JobStatusPending, JobStatusClosed}

func (s JobStatus) Validate() error {
	for _, item := range ModerationJobStatuses {
		if item == s {
			return nil
		}
	}
	return errors.Errorf("unknown job status: %q", string(s))
}

type ListingType string

const (
	ListingTypeFree     ListingType = "free"
	ListingTypeFeatured ListingType = "featured"
	ListingTypePremium  ListingType = "premium"
)

func (l ListingType) Validate() error {
	switch l {
	case ListingTypeFree, ListingTypeFeatured, ListingTypePremium:
		return nil
	}
	return errors.Errorf("unknown listing type: %q", string(l))
}

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentFreelance  EmploymentType = "freelance"
)

// NormalizeEmploymentType accepts both full_time and full-time spellings.
func NormalizeEmploymentType(value string) EmploymentType {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return EmploymentFullTime
	}
	return EmploymentType(strings.ReplaceAll(value, "_", "-"))
}

func (e EmploymentType) Validate() error {
	switch e {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship, EmploymentFreelance:
		return nil
	}
	return errors.Errorf("unknown employment type: %q", string(e))
}

type ApplicationStatus string

const (
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusSubmitted:   {ApplicationStatusShortlisted, ApplicationStatusAccepted, ApplicationStatusRejected},
	ApplicationStatusShortlisted: {ApplicationStatusAccepted, ApplicationStatusRejected},
}

func (s ApplicationStatus) Validate() error {
	switch s {
	case ApplicationStatusSubmitted, ApplicationStatusShortlisted, ApplicationStatusAccepted, ApplicationStatusRejected:
		return nil
	}
	return errors.Errorf("unknown application status: %q", string(s))
}

func (s ApplicationStatus) CanMoveTo(next ApplicationStatus) bool {
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsChatEligible reports whether an application in this status may open a chat.
func (s ApplicationStatus) IsChatEligible() bool {
	return s == ApplicationStatusShortlisted || s == ApplicationStatusAccepted
}

type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationVerified VerificationStatus = "verified"
	VerificationRejected VerificationStatus = "rejected"
)

// Validate accepts only the values an admin may set.
func (v VerificationStatus) Validate() error {
	if v == VerificationVerified || v == VerificationRejected {
		return nil
	}
	return errors.Errorf("unknown verification status: %q", string(v))
}

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

// Validate accepts only the values an admin may set.
func (r ReportStatus) Validate() error {
	if r == ReportStatusReviewed || r == ReportStatusResolved {
		return nil
	}
	return errors.Errorf("unknown report status: %q", string(r))
}

type NotificationType string

const (
	NotificationJobApproved          NotificationType = "job_approved"
	NotificationApplicationUpdate    NotificationType = "application_update"
	NotificationNewMessage           NotificationType = "new_message"
	NotificationEmployerVerification NotificationType = "employer_verification"
	NotificationContactRequest       NotificationType = "contact_request"
)

type FreelancerAvailability string

const (
	AvailabilityAvailable   FreelancerAvailability = "available"
	AvailabilityBusy        FreelancerAvailability = "busy"
	AvailabilityUnavailable FreelancerAvailability = "unavailable"
)

func (a FreelancerAvailability) Validate() error {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityUnavailable:
		return nil
	}
	return errors.Errorf("unknown availability: %q", string(a))
}

type ContactRequestStatus string

const (
	ContactRequestPending  ContactRequestStatus = "pending"
	ContactRequestApproved ContactRequestStatus = "approved"
	ContactRequestRejected ContactRequestStatus = "rejected"
)

// Validate accepts only the values an admin may set.
func (c ContactRequestStatus) Validate() error {
	if c == ContactRequestApproved || c == ContactRequestRejected {
		return nil
	}
	return errors.Errorf("status must be approved or rejected, got %q", string(c))
}
