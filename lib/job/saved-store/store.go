package savedjobstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"hire-backend/lib/errs"
	"hire-backend/lib/utils/helpers"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Save(jobID, userID string) error
	Remove(jobID, userID string) error
	List(userID string) (list []dbmodels.Job, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(jobID, userID string) error {
	rec := dbmodels.SavedJob{
		JobID:  jobID,
		UserID: userID,
	}
	err := i.db.
		Omit("Job").
		Create(&rec).
		Error
	if err != nil {
		if helpers.IsUniqueViolation(err) {
			return errs.Conflict("job already saved")
		}
		if helpers.IsForeignKeyViolation(err) {
			return errs.NotFound("job not found")
		}
		return errors.Wrap(err, "saving job failed")
	}
	return nil
}

func (i impl) Remove(jobID, userID string) error {
	tx := i.db.
		Where("job_id = ?", jobID).
		Where("user_id = ?", userID).
		Delete(&dbmodels.SavedJob{})
	if err := tx.Error; err != nil {
		return errors.Wrap(err, "removing saved job failed")
	}
	if tx.RowsAffected == 0 {
		return errs.NotFound("saved job not found")
	}
	return nil
}

func (i impl) List(userID string) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	err = i.db.
		Model(&dbmodels.Job{}).
		Joins("join saved_jobs s on s.job_id = jobs.id").
		Where("s.user_id = ?", userID).
		Order("s.created_at desc").
		Preload("Employer").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
