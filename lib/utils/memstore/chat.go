package memstore

import (
	"time"

	messagestore "hire-backend/lib/chat/message-store"
	chatstore "hire-backend/lib/chat/store"
	apimodels "hire-backend/models/api"
	dbmodels "hire-backend/models/db"
)

func (d *DB) ChatStore() chatstore.Provider {
	return chatStore{d: d}
}

func (d *DB) MessageStore() messagestore.Provider {
	return messageStore{d: d}
}

type chatStore struct {
	d *DB
}

func (s chatStore) Ensure(rec dbmodels.Chat) (*dbmodels.Chat, bool, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, chat := range s.d.Chats {
		if chat.ApplicationID == rec.ApplicationID {
			copied := *chat
			return &copied, false, nil
		}
	}
	rec.BaseModel = s.d.newBase()
	rec.Application = nil
	s.d.Chats[rec.ID] = &rec
	copied := rec
	return &copied, true, nil
}

func (s chatStore) GetByID(id string) (*dbmodels.Chat, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec, ok := s.d.Chats[id]
	if !ok {
		return nil, nil
	}
	copied := *rec
	return &copied, nil
}

func (s chatStore) GetByApplicationID(applicationID string) (*dbmodels.Chat, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	for _, rec := range s.d.Chats {
		if rec.ApplicationID == applicationID {
			copied := *rec
			return &copied, nil
		}
	}
	return nil, nil
}

func (s chatStore) ListByUser(userID string) ([]dbmodels.Chat, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	list := []dbmodels.Chat{}
	for _, rec := range s.d.Chats {
		if rec.IsParticipant(userID) {
			list = append(list, *rec)
		}
	}
	sortDesc(list, func(c dbmodels.Chat) time.Time { return c.UpdatedAt })
	return list, nil
}

type messageStore struct {
	d *DB
}

func (s messageStore) Create(rec dbmodels.Message) (*dbmodels.Message, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	rec.BaseModel = s.d.newBase()
	rec.Chat = nil
	s.d.Messages = append(s.d.Messages, rec)
	if chat, ok := s.d.Chats[rec.ChatID]; ok {
		chat.UpdatedAt = rec.CreatedAt
	}
	return &rec, nil
}

func (s messageStore) List(chatID string, pagination apimodels.Pagination) ([]dbmodels.Message, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	list := []dbmodels.Message{}
	for _, rec := range s.d.Messages {
		if rec.ChatID == chatID {
			list = append(list, rec)
		}
	}
	page, limit := pagination.GetPage()
	return paginate(list, page, limit), nil
}
