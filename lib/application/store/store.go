package applicationstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"hire-backend/lib/errs"
	"hire-backend/lib/utils/helpers"
	"hire-backend/models"
	applicationapimodels "hire-backend/models/api/application"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Application) (id string, err error)
	GetByID(id string) (rec *dbmodels.ApplicationExt, err error)
	// Transition moves the status only when it still equals from.
	Transition(id string, from, to models.ApplicationStatus) error
	// Accept moves the application to accepted while holding a row lock on its job,
	// failing when the job has no free vacancies left.
	Accept(id string, from models.ApplicationStatus) error
	ListByJob(jobID string) (list []dbmodels.Application, err error)
	ListByUser(userID string) (list []dbmodels.ApplicationExt, err error)
	ListCount(filter applicationapimodels.ApplicationFilter) (count int64, err error)
	List(filter applicationapimodels.ApplicationFilter) (list []dbmodels.ApplicationExt, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

const extSelect = "applications.*, j.title as job_title, j.employer_id as employer_id, e.user_id as employer_user_id, j.vacancies as vacancies"

func (i impl) extQuery(tx *gorm.DB) *gorm.DB {
	return tx.
		Model(&dbmodels.Application{}).
		Select(extSelect).
		Joins("join jobs j on j.id = applications.job_id").
		Joins("left join employer_profiles e on e.id = j.employer_id")
}

func (i impl) Create(rec dbmodels.Application) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		if helpers.IsUniqueViolation(err) {
			return "", errs.Conflict("you have already applied to this job")
		}
		if helpers.IsForeignKeyViolation(err) {
			return "", errs.NotFound("job not found")
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ApplicationExt, error) {
	rec := dbmodels.ApplicationExt{}
	err := i.extQuery(i.db).
		Where("applications.id = ?", id).
		Take(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Transition(id string, from, to models.ApplicationStatus) error {
	return transition(i.db, id, from, to)
}

func transition(tx *gorm.DB, id string, from, to models.ApplicationStatus) error {
	res := tx.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Update("status", to)
	if err := res.Error; err != nil {
		return errors.Wrap(err, "application status update failed")
	}
	if res.RowsAffected == 0 {
		return errs.InvalidTransition("application status changed concurrently, expected %s", from)
	}
	return nil
}

func (i impl) Accept(id string, from models.ApplicationStatus) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		app := dbmodels.Application{}
		err := tx.
			Where("id = ?", id).
			Take(&app).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("application not found")
			}
			return err
		}
		job := dbmodels.Job{}
		err = tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", app.JobID).
			Take(&job).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("job not found")
			}
			return err
		}
		var accepted int64
		err = tx.
			Model(&dbmodels.Application{}).
			Where("job_id = ?", job.ID).
			Where("status = ?", models.ApplicationStatusAccepted).
			Count(&accepted).
			Error
		if err != nil {
			return errors.Wrap(err, "accepted applications count failed")
		}
		if accepted >= int64(job.Vacancies) {
			return errs.CapacityExceeded("all %d vacancies of the job are already filled", job.Vacancies)
		}
		return transition(tx, id, from, models.ApplicationStatusAccepted)
	})
}

func (i impl) ListByJob(jobID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Model(&dbmodels.Application{}).
		Where("job_id = ?", jobID).
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListByUser(userID string) (list []dbmodels.ApplicationExt, err error) {
	list = []dbmodels.ApplicationExt{}
	err = i.extQuery(i.db).
		Where("applications.user_id = ?", userID).
		Order("applications.created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter applicationapimodels.ApplicationFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(&dbmodels.Application{}).
		Joins("join jobs j on j.id = applications.job_id")
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "application count failed")
	}
	return rowCount, nil
}

func (i impl) List(filter applicationapimodels.ApplicationFilter) (list []dbmodels.ApplicationExt, err error) {
	list = []dbmodels.ApplicationExt{}
	tx := i.extQuery(i.db)
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	tx.Limit(limit).Offset((page - 1) * limit)
	err = tx.
		Order("applications.created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter applicationapimodels.ApplicationFilter) {
	if filter.JobID != "" {
		tx.Where("applications.job_id = ?", filter.JobID)
	}
	if filter.Status != "" {
		tx.Where("applications.status = ?", filter.Status)
	}
	if filter.Search != "" {
		tx.Where("LOWER(j.title) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
}
