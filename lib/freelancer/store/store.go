package freelancerstore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"hire-backend/lib/errs"
	"hire-backend/lib/utils/helpers"
	freelancerapimodels "hire-backend/models/api/freelancer"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.FreelancerProfile) (id string, err error)
	GetByID(id string) (rec *dbmodels.FreelancerProfile, err error)
	GetByUserID(userID string) (rec *dbmodels.FreelancerProfile, err error)
	Update(id string, updMap map[string]interface{}) error
	SetVerified(id string, verified bool) error
	Delete(id string) error
	// ListCount and List see verified profiles only
	ListCount(filter freelancerapimodels.FreelancerFilter) (count int64, err error)
	List(filter freelancerapimodels.FreelancerFilter) (list []dbmodels.FreelancerProfile, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.FreelancerProfile) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		if helpers.IsUniqueViolation(err) {
			return "", errs.Conflict("freelancer profile already exists")
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.FreelancerProfile, error) {
	return i.getBy("id = ?", id)
}

func (i impl) GetByUserID(userID string) (*dbmodels.FreelancerProfile, error) {
	return i.getBy("user_id = ?", userID)
}

func (i impl) getBy(query string, value string) (*dbmodels.FreelancerProfile, error) {
	rec := dbmodels.FreelancerProfile{}
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
		Model(&dbmodels.FreelancerProfile{}).
		Where("id = ?", id).
		Updates(updMap)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errs.NotFound("freelancer profile not found")
	}
	return nil
}

func (i impl) SetVerified(id string, verified bool) error {
	return i.Update(id, map[string]interface{}{"is_verified": verified})
}

// Delete removes the profile, its contact requests go with it by cascade.
func (i impl) Delete(id string) error {
	tx := i.db.
		Where("id = ?", id).
		Delete(&dbmodels.FreelancerProfile{})
	if err := tx.Error; err != nil {
		return errors.Wrap(err, "freelancer profile delete failed")
	}
	if tx.RowsAffected == 0 {
		return errs.NotFound("freelancer profile not found")
	}
	return nil
}

func (i impl) ListCount(filter freelancerapimodels.FreelancerFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.Model(&dbmodels.FreelancerProfile{})
	i.addFilter(tx, filter)
	if err = tx.Count(&rowCount).Error; err != nil {
		return 0, errors.Wrap(err, "freelancer count failed")
	}
	return rowCount, nil
}

func (i impl) List(filter freelancerapimodels.FreelancerFilter) (list []dbmodels.FreelancerProfile, err error) {
	list = []dbmodels.FreelancerProfile{}
	tx := i.db.Model(&dbmodels.FreelancerProfile{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	err = tx.
		Order("rating desc").
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

func (i impl) addFilter(tx *gorm.DB, filter freelancerapimodels.FreelancerFilter) {
	tx.Where("is_verified = ?", true)
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("(LOWER(title) like ? or LOWER(description) like ?)", pattern, pattern)
	}
	if filter.Skill != "" {
		tx.Where("? = ANY(skills)", filter.Skill)
	}
	if filter.MinRate > 0 {
		tx.Where("hourly_rate >= ?", filter.MinRate)
	}
	if filter.MaxRate > 0 {
		tx.Where("hourly_rate <= ?", filter.MaxRate)
	}
	if filter.Availability != "" {
		tx.Where("availability = ?", filter.Availability)
	}
}
