package notificationapimodels

import (
	"time"

	"hire-backend/models"
	apimodels "hire-backend/models/api"
	dbmodels "hire-backend/models/db"
)

type NotificationFilter struct {
	apimodels.Pagination
	UnreadOnly bool `json:"unread_only" query:"unread_only"`
}

type NotificationView struct {
	ID        string                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	RelatedID string                  `json:"related_id,omitempty"`
	IsRead    bool                    `json:"is_read"`
	CreatedAt time.Time               `json:"created_at"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:        rec.ID,
		Type:      rec.Type,
		Title:     rec.Title,
		Message:   rec.Message,
		RelatedID: rec.RelatedID,
		IsRead:    rec.IsRead,
		CreatedAt: rec.CreatedAt,
	}
}

type UnreadCount struct {
	Count int64 `json:"count"`
}
