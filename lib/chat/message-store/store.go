package messagestore

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	apimodels "hire-backend/models/api"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Message) (*dbmodels.Message, error)
	List(chatID string, pagination apimodels.Pagination) (list []dbmodels.Message, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Message) (*dbmodels.Message, error) {
	err := i.db.Omit(clause.Associations).
		Create(&rec).
		Error
	if err != nil {
		return nil, err
	}
	i.db.
		Model(&dbmodels.Chat{}).
		Where("id = ?", rec.ChatID).
		Update("updated_at", rec.CreatedAt)
	return &rec, nil
}

// List returns messages in ascending creation order.
func (i impl) List(chatID string, pagination apimodels.Pagination) (list []dbmodels.Message, err error) {
	list = []dbmodels.Message{}
	page, limit := pagination.GetPage()
	err = i.db.
		Model(&dbmodels.Message{}).
		Where("chat_id = ?", chatID).
		Order("created_at asc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
