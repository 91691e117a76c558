package chatstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	// Ensure inserts the chat unless one already exists for the application
	// and returns the stored record.
	Ensure(rec dbmodels.Chat) (chat *dbmodels.Chat, created bool, err error)
	GetByID(id string) (rec *dbmodels.Chat, err error)
	GetByApplicationID(applicationID string) (rec *dbmodels.Chat, err error)
	ListByUser(userID string) (list []dbmodels.Chat, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Ensure(rec dbmodels.Chat) (*dbmodels.Chat, bool, error) {
	tx := i.db.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "application_id"}},
			DoNothing: true,
		}).
		Create(&rec)
	if err := tx.Error; err != nil {
		return nil, false, errors.Wrap(err, "chat creation failed")
	}
	created := tx.RowsAffected > 0
	stored, err := i.GetByApplicationID(rec.ApplicationID)
	if err != nil {
		return nil, false, err
	}
	if stored == nil {
		return nil, false, errors.New("chat not found after insert")
	}
	return stored, created, nil
}

func (i impl) GetByID(id string) (*dbmodels.Chat, error) {
	return i.getBy("id = ?", id)
}

func (i impl) GetByApplicationID(applicationID string) (*dbmodels.Chat, error) {
	return i.getBy("application_id = ?", applicationID)
}

func (i impl) getBy(query, value string) (*dbmodels.Chat, error) {
	rec := dbmodels.Chat{}
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

func (i impl) ListByUser(userID string) (list []dbmodels.Chat, err error) {
	list = []dbmodels.Chat{}
	err = i.db.
		Model(&dbmodels.Chat{}).
		Where("employer_user_id = ? or job_seeker_id = ?", userID, userID).
		Order("updated_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
