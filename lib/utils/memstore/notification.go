package memstore

import (
	"time"

	notificationstore "hire-backend/lib/notification/store"
	notificationapimodels "hire-backend/models/api/notification"
	dbmodels "hire-backend/models/db"
)

func (d *DB) NotificationStore() notificationstore.Provider {
	return notificationStore{d: d}
}

type notificationStore struct {
	d *DB
}

func (s notificationStore) Create(rec dbmodels.Notification) (*dbmodels.Notification, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec.BaseModel = s.d.newBase()
	s.d.Notifications[rec.ID] = &rec
	copied := rec
	return &copied, nil
}

func (s notificationStore) filtered(userID string, filter notificationapimodels.NotificationFilter) []dbmodels.Notification {
	list := []dbmodels.Notification{}
	for _, rec := range s.d.Notifications {
		if rec.UserID != userID || (filter.UnreadOnly && rec.IsRead) {
			continue
		}
		list = append(list, *rec)
	}
	sortDesc(list, func(n dbmodels.Notification) time.Time { return n.CreatedAt })
	return list
}

func (s notificationStore) ListCount(userID string, filter notificationapimodels.NotificationFilter) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return int64(len(s.filtered(userID, filter))), nil
}

func (s notificationStore) List(userID string, filter notificationapimodels.NotificationFilter) ([]dbmodels.Notification, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	page, limit := filter.GetPage()
	return paginate(s.filtered(userID, filter), page, limit), nil
}

func (s notificationStore) UnreadCount(userID string) (int64, error) {
	return s.ListCount(userID, notificationapimodels.NotificationFilter{UnreadOnly: true})
}

func (s notificationStore) MarkRead(userID, id string) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Notifications[id]
	if !ok || rec.UserID != userID {
		return notFound("notification")
	}
	rec.IsRead = true
	return nil
}

func (s notificationStore) MarkAllRead(userID string) (int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	var count int64
	for _, rec := range s.d.Notifications {
		if rec.UserID == userID && !rec.IsRead {
			rec.IsRead = true
			count++
		}
	}
	return count, nil
}

// NotificationsFor returns the stored notifications of userID, newest first.
func (d *DB) NotificationsFor(userID string) []dbmodels.Notification {
	d.mu.Lock()
	defer d.mu.Unlock()
	return notificationStore{d: d}.filtered(userID, notificationapimodels.NotificationFilter{})
}
