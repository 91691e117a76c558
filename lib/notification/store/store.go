package notificationstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"hire-backend/lib/errs"
	notificationapimodels "hire-backend/models/api/notification"
	dbmodels "hire-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Notification) (*dbmodels.Notification, error)
	ListCount(userID string, filter notificationapimodels.NotificationFilter) (count int64, err error)
	List(userID string, filter notificationapimodels.NotificationFilter) (list []dbmodels.Notification, err error)
	UnreadCount(userID string) (count int64, err error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Notification) (*dbmodels.Notification, error) {
	err := i.db.
		Create(&rec).
		Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (i impl) query(userID string, filter notificationapimodels.NotificationFilter) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID)
	if filter.UnreadOnly {
		tx = tx.Where("is_read = ?", false)
	}
	return tx
}

func (i impl) ListCount(userID string, filter notificationapimodels.NotificationFilter) (count int64, err error) {
	err = i.query(userID, filter).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "notification count failed")
	}
	return count, nil
}

func (i impl) List(userID string, filter notificationapimodels.NotificationFilter) (list []dbmodels.Notification, err error) {
	list = []dbmodels.Notification{}
	page, limit := filter.GetPage()
	err = i.query(userID, filter).
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

func (i impl) UnreadCount(userID string) (count int64, err error) {
	return i.ListCount(userID, notificationapimodels.NotificationFilter{UnreadOnly: true})
}

func (i impl) MarkRead(userID, id string) error {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Update("is_read", true)
	if err := tx.Error; err != nil {
		return err
	}
	if tx.RowsAffected == 0 {
		return errs.NotFound("notification not found")
	}
	return nil
}

func (i impl) MarkAllRead(userID string) (int64, error) {
	tx := i.db.
		Model(&dbmodels.Notification{}).
		Where("user_id = ?", userID).
		Where("is_read = ?", false).
		Update("is_read", true)
	if err := tx.Error; err != nil {
		return 0, err
	}
	return tx.RowsAffected, nil
}
