package employerstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"hire-backend/lib/errs"
	"hire-backend/lib/utils/helpers"
	"hire-backend/models"
	moderationapimodels "hire-backend/models/api/moderation"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.EmployerProfile) (id string, err error)
	GetByID(id string) (rec *dbmodels.EmployerProfile, err error)
	GetByUserID(userID string) (rec *dbmodels.EmployerProfile, err error)
	Update(id string, updMap map[string]interface{}) error
	SetVerification(id string, status models.VerificationStatus) error
	ListCount(filter moderationapimodels.EmployerFilter) (count int64, err error)
	List(filter moderationapimodels.EmployerFilter) (list []dbmodels.EmployerProfile, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.EmployerProfile) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		if helpers.IsUniqueViolation(err) {
			return "", errs.Conflict("employer profile already exists")
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.EmployerProfile, error) {
	return i.getBy("id = ?", id)
}

func (i impl) GetByUserID(userID string) (*dbmodels.EmployerProfile, error) {
	return i.getBy("user_id = ?", userID)
}

func (i impl) getBy(query string, value string) (*dbmodels.EmployerProfile, error) {
	rec := dbmodels.EmployerProfile{}
	err := i.db.
		Where(query, value).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.EmployerProfile{}).
		Where("id = ?", id).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errs.NotFound("employer profile not found")
	}
	return nil
}

func (i impl) SetVerification(id string, status models.VerificationStatus) error {
	return i.Update(id, map[string]interface{}{"verification_status": status})
}

func (i impl) ListCount(filter moderationapimodels.EmployerFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.Model(&dbmodels.EmployerProfile{})
	i.addFilter(tx, filter)
	if err = tx.Count(&rowCount).Error; err != nil {
		return 0, errors.Wrap(err, "employer count failed")
	}
	return rowCount, nil
}

func (i impl) List(filter moderationapimodels.EmployerFilter) (list []dbmodels.EmployerProfile, err error) {
	list = []dbmodels.EmployerProfile{}
	tx := i.db.Model(&dbmodels.EmployerProfile{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	err = tx.
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter moderationapimodels.EmployerFilter) {
	if filter.Status != "" {
		tx.Where("verification_status = ?", filter.Status)
	}
	if filter.Search != "" {
		tx.Where("LOWER(company_name) like ?", "%"+strings.ToLower(filter.Search)+"%")
	}
}
