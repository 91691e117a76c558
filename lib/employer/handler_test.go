package employerhandler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	"hire-backend/lib/utils/memstore"
	"hire-backend/models"
	employerapimodels "hire-backend/models/api/employer"
)

func TestProfile(t *testing.T) {
	employer := identity.Identity{UserID: "employer-1", Role: models.EmployerRole, Email: "hr@acme.test"}
	handler := NewInstance(memstore.New().EmployerStore())

	_, err := handler.GetProfile(employer)
	require.True(t, errs.Is(err, errs.KindNotFound))

	_, err = handler.CreateProfile(employer, employerapimodels.ProfileData{})
	require.True(t, errs.Is(err, errs.KindValidation))

	view, err := handler.CreateProfile(employer, employerapimodels.ProfileData{CompanyName: " Acme "})
	require.NoError(t, err)
	require.Equal(t, "Acme", view.CompanyName)
	require.Equal(t, "hr@acme.test", view.ContactEmail)
	require.Equal(t, models.VerificationPending, view.VerificationStatus)

	_, err = handler.CreateProfile(employer, employerapimodels.ProfileData{CompanyName: "Acme again"})
	require.True(t, errs.Is(err, errs.KindConflict))

	view, err = handler.UpdateProfile(employer, employerapimodels.ProfileData{CompanyName: "Acme Ltd"})
	require.NoError(t, err)
	require.Equal(t, "Acme Ltd", view.CompanyName)
	require.Equal(t, models.VerificationPending, view.VerificationStatus)

	_, err = handler.CreateProfile(identity.New("seeker-1", models.JobSeekerRole), employerapimodels.ProfileData{CompanyName: "Nope"})
	require.True(t, errs.Is(err, errs.KindForbidden))
}
