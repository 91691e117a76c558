package jobstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"hire-backend/db"
	applicationstore "hire-backend/lib/application/store"
	"hire-backend/lib/errs"
	"hire-backend/models"
	dbmodels "hire-backend/models/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("database tests are skipped in short mode")
	}
	gdb, teardown, err := db.NewTestDB(context.Background())
	if err != nil {
		t.Skipf("postgres container is not available: %v", err)
	}
	t.Cleanup(teardown)
	return gdb
}

func seedJob(t *testing.T, gdb *gorm.DB, vacancies int) dbmodels.Job {
	t.Helper()
	profile := dbmodels.EmployerProfile{
		UserID:             uuid.NewString(),
		CompanyName:        "Acme",
		VerificationStatus: models.VerificationVerified,
	}
	require.NoError(t, gdb.Create(&profile).Error)
	job := dbmodels.Job{
		EmployerID:     profile.ID,
		Title:          "Backend Engineer",
		Description:    "Go services",
		Location:       "Addis Ababa",
		Vacancies:      vacancies,
		EmploymentType: models.EmploymentFullTime,
		ListingType:    models.ListingTypeFree,
		Status:         models.JobStatusApproved,
		ExpiryDate:     time.Now().AddDate(0, 1, 0),
	}
	require.NoError(t, gdb.Omit("Employer").Create(&job).Error)
	return job
}

func seedApplication(t *testing.T, gdb *gorm.DB, jobID string, status models.ApplicationStatus) string {
	t.Helper()
	rec := dbmodels.Application{JobID: jobID, UserID: uuid.NewString(), Status: status}
	require.NoError(t, gdb.Omit("Job").Create(&rec).Error)
	return rec.ID
}

func TestUpdate(t *testing.T) {
	gdb := newTestDB(t)
	store := NewInstance(gdb)

	t.Run(`only given columns change`, func(t *testing.T) {
		job := seedJob(t, gdb, 2)
		require.NoError(t, store.Update(job.ID, map[string]interface{}{"vacancies": 4}))

		saved, err := store.GetByID(job.ID)
		require.NoError(t, err)
		require.Equal(t, 4, saved.Vacancies)
		require.Equal(t, "Go services", saved.Description)
		require.Equal(t, "Addis Ababa", saved.Location)
	})

	t.Run(`vacancies below the accepted count`, func(t *testing.T) {
		job := seedJob(t, gdb, 2)
		seedApplication(t, gdb, job.ID, models.ApplicationStatusAccepted)
		seedApplication(t, gdb, job.ID, models.ApplicationStatusAccepted)

		err := store.Update(job.ID, map[string]interface{}{"vacancies": 1, "description": "changed"})
		require.True(t, errs.Is(err, errs.KindCapacityExceeded))

		saved, err := store.GetByID(job.ID)
		require.NoError(t, err)
		require.Equal(t, 2, saved.Vacancies)
		require.Equal(t, "Go services", saved.Description)

		require.NoError(t, store.Update(job.ID, map[string]interface{}{"vacancies": 2}))
	})

	t.Run(`missing job`, func(t *testing.T) {
		err := store.Update(uuid.NewString(), map[string]interface{}{"vacancies": 3})
		require.True(t, errs.Is(err, errs.KindNotFound))
		err = store.Update(uuid.NewString(), map[string]interface{}{"title": "x"})
		require.True(t, errs.Is(err, errs.KindNotFound))
	})

	t.Run(`shrinking races with accepting`, func(t *testing.T) {
		applications := applicationstore.NewInstance(gdb)
		for k := 0; k < 5; k++ {
			job := seedJob(t, gdb, 2)
			seedApplication(t, gdb, job.ID, models.ApplicationStatusAccepted)
			pending := seedApplication(t, gdb, job.ID, models.ApplicationStatusSubmitted)

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = applications.Accept(pending, models.ApplicationStatusSubmitted)
			}()
			go func() {
				defer wg.Done()
				_ = store.Update(job.ID, map[string]interface{}{"vacancies": 1})
			}()
			wg.Wait()

			saved, err := store.GetByID(job.ID)
			require.NoError(t, err)
			var accepted int64
			require.NoError(t, gdb.Model(&dbmodels.Application{}).
				Where("job_id = ? and status = ?", job.ID, models.ApplicationStatusAccepted).
				Count(&accepted).Error)
			require.LessOrEqual(t, accepted, int64(saved.Vacancies))
		}
	})
}
