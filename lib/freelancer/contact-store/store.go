package contactstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"hire-backend/lib/errs"
	"hire-backend/models"
	freelancerapimodels "hire-backend/models/api/freelancer"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.ContactRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.ContactRequest, err error)
	// Resolve moves a pending request to status. A request that is no longer pending gives InvalidState.
	Resolve(id string, status models.ContactRequestStatus) error
	ListCount(filter freelancerapimodels.ContactRequestFilter) (count int64, err error)
	List(filter freelancerapimodels.ContactRequestFilter) (list []dbmodels.ContactRequest, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ContactRequest) (id string, err error) {
	err = i.db.
		Omit("Freelancer").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ContactRequest, error) {
	rec := dbmodels.ContactRequest{}
	err := i.db.
		Preload("Freelancer").
		Where("id = ?", id).
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

func (i impl) Resolve(id string, status models.ContactRequestStatus) error {
	res := i.db.
		Model(&dbmodels.ContactRequest{}).
		Where("id = ?", id).
		Where("status = ?", models.ContactRequestPending).
		Update("status", status)
	if err := res.Error; err != nil {
		return errors.Wrap(err, "contact request update failed")
	}
	if res.RowsAffected > 0 {
		return nil
	}
	var count int64
	if err := i.db.Model(&dbmodels.ContactRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NotFound("contact request not found")
	}
	return errs.InvalidState("contact request already processed")
}

func (i impl) ListCount(filter freelancerapimodels.ContactRequestFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.Model(&dbmodels.ContactRequest{})
	i.addFilter(tx, filter)
	if err = tx.Count(&rowCount).Error; err != nil {
		return 0, errors.Wrap(err, "contact request count failed")
	}
	return rowCount, nil
}

func (i impl) List(filter freelancerapimodels.ContactRequestFilter) (list []dbmodels.ContactRequest, err error) {
	list = []dbmodels.ContactRequest{}
	tx := i.db.Model(&dbmodels.ContactRequest{})
	i.addFilter(tx, filter)
	page, limit := filter.GetPage()
	err = tx.
		Preload("Freelancer").
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

func (i impl) addFilter(tx *gorm.DB, filter freelancerapimodels.ContactRequestFilter) {
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if filter.FreelancerID != "" {
		tx.Where("freelancer_id = ?", filter.FreelancerID)
	}
}
