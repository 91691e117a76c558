package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplicationTransitions(t *testing.T) {
	allowed := map[ApplicationStatus][]ApplicationStatus{
		ApplicationStatusSubmitted:   {ApplicationStatusShortlisted, ApplicationStatusAccepted, ApplicationStatusRejected},
		ApplicationStatusShortlisted: {ApplicationStatusAccepted, ApplicationStatusRejected},
	}
	all := []ApplicationStatus{ApplicationStatusSubmitted, ApplicationStatusShortlisted, ApplicationStatusAccepted, ApplicationStatusRejected}
	for _, from := range all {
		for _, to := range all {
			want := false
			for _, item := range allowed[from] {
				if item == to {
					want = true
				}
			}
			require.Equal(t, want, from.CanMoveTo(to), "%s -> %s", from, to)
		}
	}
	require.Error(t, ApplicationStatus("hired").Validate())
	require.True(t, ApplicationStatusShortlisted.IsChatEligible())
	require.True(t, ApplicationStatusAccepted.IsChatEligible())
	require.False(t, ApplicationStatusSubmitted.IsChatEligible())
	require.False(t, ApplicationStatusRejected.IsChatEligible())
}

func TestEnumValidation(t *testing.T) {
	t.Run(`employment type spelling`, func(t *testing.T) {
		require.Equal(t, EmploymentFullTime, NormalizeEmploymentType("full_time"))
		require.Equal(t, EmploymentPartTime, NormalizeEmploymentType(" Part-Time "))
		require.Equal(t, EmploymentFullTime, NormalizeEmploymentType(""))
		require.Error(t, NormalizeEmploymentType("gig").Validate())
	})
	t.Run(`admin writable values`, func(t *testing.T) {
		require.NoError(t, VerificationVerified.Validate())
		require.Error(t, VerificationPending.Validate())
		require.NoError(t, ReportStatusResolved.Validate())
		require.Error(t, ReportStatusPending.Validate())
		require.NoError(t, JobStatusClosed.Validate())
		require.Error(t, JobStatus("published").Validate())
		require.Error(t, ListingType("gold").Validate())
	})
	t.Run(`roles`, func(t *testing.T) {
		require.True(t, AdminRole.IsAdmin())
		require.True(t, JobSeekerRole.IsKnown())
		require.False(t, UserRole("guest").IsKnown())
		require.Equal(t, "guest", UserRole("guest").ToHuman())
	})
}
