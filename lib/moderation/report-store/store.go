package reportstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"hire-backend/lib/errs"
	"hire-backend/models"
	moderationapimodels "hire-backend/models/api/moderation"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Report) (id string, err error)
	GetByID(id string) (rec *dbmodels.Report, err error)
	SetStatus(id string, status models.ReportStatus) error
	ListCount(filter moderationapimodels.ReportFilter) (count int64, err error)
	List(filter moderationapimodels.ReportFilter) (list []dbmodels.Report, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Report) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Report, error) {
	rec := dbmodels.Report{}
	err := i.db.
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

func (i impl) SetStatus(id string, status models.ReportStatus) error {
	tx := i.db.
		Model(&dbmodels.Report{}).
		Where("id = ?", id).
		Update("status", status)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errs.NotFound("report not found")
	}
	return nil
}

func (i impl) ListCount(filter moderationapimodels.ReportFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.Model(&dbmodels.Report{})
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
	if err = tx.Count(&rowCount).Error; err != nil {
		return 0, errors.Wrap(err, "report count failed")
	}
	return rowCount, nil
}

func (i impl) List(filter moderationapimodels.ReportFilter) (list []dbmodels.Report, err error) {
	list = []dbmodels.Report{}
	tx := i.db.Model(&dbmodels.Report{})
	if filter.Status != "" {
		tx.Where("status = ?", filter.Status)
	}
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
