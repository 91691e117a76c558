package jobstore

import (
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"hire-backend/lib/errs"
	"hire-backend/models"
	jobapimodels "hire-backend/models/api/job"
	moderationapimodels "hire-backend/models/api/moderation"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Job) (id string, err error)
	GetByID(id string) (rec *dbmodels.Job, err error)
	// Update fails with CapacityExceeded when updMap lowers vacancies below the accepted count.
	Update(id string, updMap map[string]interface{}) error
	// SetStatus writes the status unconditionally.
	SetStatus(id string, status models.JobStatus) error
	// MoveStatus writes the status only when the current one equals from.
	MoveStatus(id string, from, to models.JobStatus) (bool, error)
	Delete(id string) error
	ListCount(filter jobapimodels.JobFilter) (count int64, err error)
	List(filter jobapimodels.JobFilter) (list []dbmodels.Job, err error)
	AdminListCount(filter moderationapimodels.JobFilter) (count int64, err error)
	AdminList(filter moderationapimodels.JobFilter) (list []dbmodels.JobExt, err error)
	CloseExpired(now time.Time) (ids []string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Job) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Job, error) {
	rec := dbmodels.Job{}
	err := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Preload("Employer").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	vacancies, resize := updMap["vacancies"].(int)
	return i.db.Transaction(func(tx *gorm.DB) error {
		if resize {
			if err := i.checkCapacity(tx, id, vacancies); err != nil {
				return err
			}
		}
		res := tx.
			Model(&dbmodels.Job{}).
			Where("id = ?", id).
			Updates(updMap)
		if err := res.Error; err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return errs.NotFound("job not found")
		}
		return nil
	})
}

// checkCapacity locks the job row the same way the accept guard does,
// so vacancies cannot drop below the accepted count while an accept is running.
func (i impl) checkCapacity(tx *gorm.DB, id string, vacancies int) error {
	job := dbmodels.Job{}
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
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
		Where("job_id = ?", id).
		Where("status = ?", models.ApplicationStatusAccepted).
		Count(&accepted).
		Error
	if err != nil {
		return errors.Wrap(err, "accepted applications count failed")
	}
	if accepted > int64(vacancies) {
		return errs.CapacityExceeded("%d applications are already accepted, vacancies cannot be lowered to %d", accepted, vacancies)
	}
	return nil
}

func (i impl) SetStatus(id string, status models.JobStatus) error {
	return i.Update(id, map[string]interface{}{"status": status})
}

func (i impl) MoveStatus(id string, from, to models.JobStatus) (bool, error) {
	tx := i.db.
		Model(&dbmodels.Job{}).
		Where("id = ?", id).
		Where("status = ?", from).
		Update("status", to)
	if err := tx.Error; err != nil {
		return false, err
	}
	return tx.RowsAffected > 0, nil
}

func (i impl) Delete(id string) error {
	tx := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.Job{})
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errs.NotFound("job not found")
	}
	return nil
}

func (i impl) ListCount(filter jobapimodels.JobFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.Model(&dbmodels.Job{})
	i.addFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("job count failed")
		return 0, errors.Wrap(err, "job count failed")
	}
	return rowCount, nil
}

func (i impl) List(filter jobapimodels.JobFilter) (list []dbmodels.Job, err error) {
	list = []dbmodels.Job{}
	tx := i.db.Model(&dbmodels.Job{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.
		Order("jobs.created_at desc").
		Preload("Employer").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) AdminListCount(filter moderationapimodels.JobFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.Model(&dbmodels.Job{})
	i.addAdminFilter(tx, filter)
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "job count failed")
	}
	return rowCount, nil
}

func (i impl) AdminList(filter moderationapimodels.JobFilter) (list []dbmodels.JobExt, err error) {
	list = []dbmodels.JobExt{}
	tx := i.db.
		Model(&dbmodels.Job{}).
		Select("jobs.*, e.company_name as company_name, " +
			"(select count(*) from applications a where a.job_id = jobs.id) as application_count").
		Joins("left join employer_profiles e on e.id = jobs.employer_id")
	i.addAdminFilter(tx, filter)
	page, limit := filter.GetPage()
	i.setPage(tx, page, limit)
	err = tx.
		Order("jobs.created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) CloseExpired(now time.Time) (ids []string, err error) {
	closed := []dbmodels.Job{}
	err = i.db.
		Model(&closed).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Where("status = ?", models.JobStatusApproved).
		Where("expiry_date < ?", now).
		Update("status", models.JobStatusClosed).
		Error
	if err != nil {
		return nil, err
	}
	ids = make([]string, 0, len(closed))
	for _, rec := range closed {
		ids = append(ids, rec.ID)
	}
	return ids, nil
}

func (i impl) addFilter(tx *gorm.DB, filter jobapimodels.JobFilter) {
	if len(filter.Statuses) != 0 {
		tx.Where("jobs.status in (?)", filter.Statuses)
	}
	if filter.EmployerID != "" {
		tx.Where("jobs.employer_id = ?", filter.EmployerID)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("(LOWER(jobs.title) like ? or LOWER(jobs.description) like ? or LOWER(jobs.requirements) like ?)",
			search, search, search)
	}
	if filter.Category != "" {
		tx.Where("jobs.category = ?", filter.Category)
	}
	if filter.Location != "" {
		tx.Where("LOWER(jobs.location) like ?", "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.EmploymentType != "" {
		tx.Where("jobs.employment_type = ?", models.NormalizeEmploymentType(filter.EmploymentType))
	}
	if filter.ListingType != "" {
		tx.Where("jobs.listing_type = ?", filter.ListingType)
	}
	if filter.SalaryFrom > 0 {
		tx.Where("jobs.salary >= ?", filter.SalaryFrom)
	}
	if filter.SalaryTo > 0 {
		tx.Where("jobs.salary <= ?", filter.SalaryTo)
	}
	if len(filter.Skills) != 0 {
		tx.Where("jobs.skills && ?", pq.StringArray(filter.Skills))
	}
}

func (i impl) addAdminFilter(tx *gorm.DB, filter moderationapimodels.JobFilter) {
	if filter.Status != "" {
		tx.Where("jobs.status = ?", filter.Status)
	}
	if filter.Search != "" {
		tx.Where("LOWER(jobs.title) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
}

func (i impl) setPage(tx *gorm.DB, page, limit int) {
	offset := (page - 1) * limit
	tx.Limit(limit).Offset(offset)
}
