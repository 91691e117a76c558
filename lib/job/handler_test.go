package jobhandler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"hire-backend/lib/errs"
	"hire-backend/lib/identity"
	"hire-backend/lib/utils/helpers"
	"hire-backend/lib/utils/memstore"
	"hire-backend/models"
	jobapimodels "hire-backend/models/api/job"
)

func newTestHandler(mem *memstore.DB, policy Policy) Provider {
	return NewInstance(mem.JobStore(), mem.SavedJobStore(), mem.EmployerStore(), policy)
}

func validJob() jobapimodels.JobData {
	return jobapimodels.JobData{
		Title:          "Go developer",
		Description:    "Build services",
		EmploymentType: "full_time",
		ExpiryDate:     time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
	}
}

func TestJobCreate(t *testing.T) {
	employer := identity.New("employer-1", models.EmployerRole)
	seeker := identity.New("seeker-1", models.JobSeekerRole)

	t.Run(`defaults and pending status`, func(t *testing.T) {
		mem := memstore.New()
		mem.SeedEmployer(employer.UserID, models.VerificationVerified)
		handler := newTestHandler(mem, Policy{RequireVerifiedEmployer: true})

		job, err := handler.Create(employer, validJob())
		require.NoError(t, err)
		require.Equal(t, models.JobStatusPending, job.Status)
		require.Equal(t, 1, job.Vacancies)
		require.Equal(t, string(models.ListingTypeFree), job.ListingType)
		require.Equal(t, string(models.EmploymentFullTime), job.EmploymentType)
	})

	t.Run(`free listing auto approval`, func(t *testing.T) {
		mem := memstore.New()
		mem.SeedEmployer(employer.UserID, models.VerificationVerified)
		handler := newTestHandler(mem, Policy{AutoApproveFreeListings: true})

		job, err := handler.Create(employer, validJob())
		require.NoError(t, err)
		require.Equal(t, models.JobStatusApproved, job.Status)

		data := validJob()
		data.ListingType = string(models.ListingTypePremium)
		job, err = handler.Create(employer, data)
		require.NoError(t, err)
		require.Equal(t, models.JobStatusPending, job.Status)
	})

	t.Run(`validation`, func(t *testing.T) {
		mem := memstore.New()
		mem.SeedEmployer(employer.UserID, models.VerificationVerified)
		handler := newTestHandler(mem, Policy{})

		data := validJob()
		data.ExpiryDate = ""
		_, err := handler.Create(employer, data)
		require.True(t, errs.Is(err, errs.KindValidation))

		data = validJob()
		data.Vacancies = helpers.Ptr(0)
		_, err = handler.Create(employer, data)
		require.True(t, errs.Is(err, errs.KindValidation))

		data = validJob()
		data.ListingType = "gold"
		_, err = handler.Create(employer, data)
		require.True(t, errs.Is(err, errs.KindValidation))
	})

	t.Run(`only verified employers with a profile`, func(t *testing.T) {
		mem := memstore.New()
		handler := newTestHandler(mem, Policy{RequireVerifiedEmployer: true})

		_, err := handler.Create(seeker, validJob())
		require.True(t, errs.Is(err, errs.KindForbidden))

		_, err = handler.Create(employer, validJob())
		require.True(t, errs.Is(err, errs.KindForbidden), "no profile")

		mem.SeedEmployer(employer.UserID, models.VerificationPending)
		_, err = handler.Create(employer, validJob())
		require.True(t, errs.Is(err, errs.KindForbidden), "pending verification")
	})
}

func TestJobLifecycle(t *testing.T) {
	owner := identity.New("employer-1", models.EmployerRole)
	stranger := identity.New("employer-2", models.EmployerRole)
	seeker := identity.New("seeker-1", models.JobSeekerRole)
	admin := identity.New("admin-1", models.AdminRole)

	t.Run(`public list shows approved jobs only, newest first`, func(t *testing.T) {
		mem := memstore.New()
		profile := mem.SeedEmployer(owner.UserID, models.VerificationVerified)
		first := mem.SeedJob(profile.ID, models.JobStatusApproved, 1)
		mem.SeedJob(profile.ID, models.JobStatusPending, 1)
		mem.SeedJob(profile.ID, models.JobStatusRejected, 1)
		second := mem.SeedJob(profile.ID, models.JobStatusApproved, 1)
		handler := newTestHandler(mem, Policy{})

		list, rowCount, err := handler.List(identity.Identity{}, jobapimodels.JobFilter{})
		require.NoError(t, err)
		require.Equal(t, int64(2), rowCount)
		require.Len(t, list, 2)
		require.Equal(t, second.ID, list[0].ID)
		require.Equal(t, first.ID, list[1].ID)

		mine, err := handler.ListMine(owner)
		require.NoError(t, err)
		require.Len(t, mine, 4)
	})

	t.Run(`non approved job visible to owner and admin only`, func(t *testing.T) {
		mem := memstore.New()
		profile := mem.SeedEmployer(owner.UserID, models.VerificationVerified)
		pending := mem.SeedJob(profile.ID, models.JobStatusPending, 1)
		handler := newTestHandler(mem, Policy{})

		_, err := handler.Get(seeker, pending.ID)
		require.True(t, errs.Is(err, errs.KindNotFound))
		_, err = handler.Get(identity.Identity{}, pending.ID)
		require.True(t, errs.Is(err, errs.KindNotFound))
		_, err = handler.Get(owner, pending.ID)
		require.NoError(t, err)
		_, err = handler.Get(admin, pending.ID)
		require.NoError(t, err)
	})

	t.Run(`close transitions`, func(t *testing.T) {
		mem := memstore.New()
		profile := mem.SeedEmployer(owner.UserID, models.VerificationVerified)
		approved := mem.SeedJob(profile.ID, models.JobStatusApproved, 1)
		pending := mem.SeedJob(profile.ID, models.JobStatusPending, 1)
		handler := newTestHandler(mem, Policy{})

		err := handler.Close(stranger, approved.ID)
		require.True(t, errs.Is(err, errs.KindForbidden))

		require.NoError(t, handler.Close(owner, approved.ID))
		require.Equal(t, models.JobStatusClosed, mem.Job(approved.ID).Status)
		require.NoError(t, handler.Close(owner, approved.ID), "closing twice is a no-op")

		err = handler.Close(owner, pending.ID)
		require.True(t, errs.Is(err, errs.KindInvalidState))
	})

	t.Run(`update keeps status and checks ownership`, func(t *testing.T) {
		mem := memstore.New()
		profile := mem.SeedEmployer(owner.UserID, models.VerificationVerified)
		job := mem.SeedJob(profile.ID, models.JobStatusApproved, 3)
		handler := newTestHandler(mem, Policy{})

		_, err := handler.Update(stranger, job.ID, jobapimodels.JobUpdateData{Title: helpers.Ptr("Stolen")})
		require.True(t, errs.Is(err, errs.KindForbidden))

		view, err := handler.Update(owner, job.ID, jobapimodels.JobUpdateData{
			Title:  helpers.Ptr("Senior Go developer"),
			Skills: &[]string{"go"},
		})
		require.NoError(t, err)
		require.Equal(t, "Senior Go developer", view.Title)
		require.Equal(t, []string{"go"}, view.Skills)
		require.Equal(t, 3, view.Vacancies)
		require.Equal(t, models.JobStatusApproved, view.Status)
	})

	t.Run(`partial update keeps omitted fields`, func(t *testing.T) {
		mem := memstore.New()
		profile := mem.SeedEmployer(owner.UserID, models.VerificationVerified)
		job := mem.SeedJob(profile.ID, models.JobStatusApproved, 2)
		handler := newTestHandler(mem, Policy{})

		view, err := handler.Update(owner, job.ID, jobapimodels.JobUpdateData{Vacancies: helpers.Ptr(5)})
		require.NoError(t, err)
		require.Equal(t, 5, view.Vacancies)

		saved := mem.Job(job.ID)
		require.Equal(t, job.Title, saved.Title)
		require.Equal(t, "Go services", saved.Description)
		require.Equal(t, "engineering", saved.Category)
		require.Equal(t, "Addis Ababa", saved.Location)
		require.Equal(t, job.EmploymentType, saved.EmploymentType)
		require.Equal(t, job.ListingType, saved.ListingType)
		require.True(t, job.ExpiryDate.Equal(saved.ExpiryDate))

		_, err = handler.Update(owner, job.ID, jobapimodels.JobUpdateData{Title: helpers.Ptr("  ")})
		require.True(t, errs.Is(err, errs.KindValidation))
		_, err = handler.Update(owner, job.ID, jobapimodels.JobUpdateData{Vacancies: helpers.Ptr(0)})
		require.True(t, errs.Is(err, errs.KindValidation))
		_, err = handler.Update(owner, job.ID, jobapimodels.JobUpdateData{EmploymentType: helpers.Ptr("part_time")})
		require.NoError(t, err)
		require.Equal(t, models.EmploymentPartTime, mem.Job(job.ID).EmploymentType)
		require.Equal(t, 5, mem.Job(job.ID).Vacancies)
	})

	t.Run(`vacancies cannot drop below accepted applications`, func(t *testing.T) {
		mem := memstore.New()
		profile := mem.SeedEmployer(owner.UserID, models.VerificationVerified)
		job := mem.SeedJob(profile.ID, models.JobStatusApproved, 2)
		mem.SeedApplication(job.ID, "seeker-1", models.ApplicationStatusAccepted)
		mem.SeedApplication(job.ID, "seeker-2", models.ApplicationStatusAccepted)
		mem.SeedApplication(job.ID, "seeker-3", models.ApplicationStatusSubmitted)
		handler := newTestHandler(mem, Policy{})

		_, err := handler.Update(owner, job.ID, jobapimodels.JobUpdateData{
			Vacancies:   helpers.Ptr(1),
			Description: helpers.Ptr("changed"),
		})
		require.True(t, errs.Is(err, errs.KindCapacityExceeded))
		require.Equal(t, 2, mem.Job(job.ID).Vacancies)
		require.Equal(t, "Go services", mem.Job(job.ID).Description)

		view, err := handler.Update(owner, job.ID, jobapimodels.JobUpdateData{Vacancies: helpers.Ptr(2)})
		require.NoError(t, err)
		require.Equal(t, 2, view.Vacancies)
	})

	t.Run(`delete cascades`, func(t *testing.T) {
		mem := memstore.New()
		profile := mem.SeedEmployer(owner.UserID, models.VerificationVerified)
		job := mem.SeedJob(profile.ID, models.JobStatusApproved, 1)
		mem.SeedApplication(job.ID, seeker.UserID, models.ApplicationStatusSubmitted)
		handler := newTestHandler(mem, Policy{})

		require.True(t, errs.Is(handler.Delete(stranger, job.ID), errs.KindForbidden))
		require.NoError(t, handler.Delete(owner, job.ID))
		_, err := handler.Get(owner, job.ID)
		require.True(t, errs.Is(err, errs.KindNotFound))
		require.Empty(t, mem.Applications)
	})

	t.Run(`expiry worker closes approved jobs only`, func(t *testing.T) {
		mem := memstore.New()
		profile := mem.SeedEmployer(owner.UserID, models.VerificationVerified)
		approved := mem.SeedJob(profile.ID, models.JobStatusApproved, 1)
		pending := mem.SeedJob(profile.ID, models.JobStatusPending, 1)
		handler := newTestHandler(mem, Policy{})

		closed, err := handler.ExpireJobs(time.Now().AddDate(0, 2, 0))
		require.NoError(t, err)
		require.Equal(t, 1, closed)
		require.Equal(t, models.JobStatusClosed, mem.Job(approved.ID).Status)
		require.Equal(t, models.JobStatusPending, mem.Job(pending.ID).Status)
	})
}

func TestSavedJobs(t *testing.T) {
	seeker := identity.New("seeker-1", models.JobSeekerRole)
	employer := identity.New("employer-1", models.EmployerRole)
	mem := memstore.New()
	profile := mem.SeedEmployer(employer.UserID, models.VerificationVerified)
	job := mem.SeedJob(profile.ID, models.JobStatusApproved, 1)
	pending := mem.SeedJob(profile.ID, models.JobStatusPending, 1)
	handler := newTestHandler(mem, Policy{})

	require.NoError(t, handler.Save(seeker, job.ID))
	require.True(t, errs.Is(handler.Save(seeker, job.ID), errs.KindConflict))
	require.True(t, errs.Is(handler.Save(seeker, pending.ID), errs.KindNotFound))
	require.True(t, errs.Is(handler.Save(employer, job.ID), errs.KindForbidden))

	list, err := handler.ListSaved(seeker)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, handler.Unsave(seeker, job.ID))
	require.True(t, errs.Is(handler.Unsave(seeker, job.ID), errs.KindNotFound))
}
