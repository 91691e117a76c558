package chathandler

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"hire-backend/db"
	applicationstore "hire-backend/lib/application/store"
	messagestore "hire-backend/lib/chat/message-store"
	chatstore "hire-backend/lib/chat/store"
	"hire-backend/lib/errs"
	filestorage "hire-backend/lib/file-storage"
	"hire-backend/lib/identity"
	notificationhandler "hire-backend/lib/notification"
	"hire-backend/lib/rbac"
	"hire-backend/lib/utils/helpers"
	initchecker "hire-backend/lib/utils/init-checker"
	"hire-backend/lib/ws/broker"
	connectionhub "hire-backend/lib/ws/hub/connection-hub"
	apimodels "hire-backend/models/api"
	chatapimodels "hire-backend/models/api/chat"
	dbmodels "hire-backend/models/db"
	wsmodels "hire-backend/models/ws"
)

type Provider interface {
	EnsureChat(who identity.Identity, applicationID string) (chatapimodels.ChatView, error)
	// OpenForApplication creates the chat of an eligible application without a caller check.
	OpenForApplication(app dbmodels.ApplicationExt) (*dbmodels.Chat, bool, error)
	SendMessage(ctx context.Context, who identity.Identity, data chatapimodels.SendMessageData) (chatapimodels.MessageView, error)
	UploadFile(ctx context.Context, who identity.Identity, data chatapimodels.UploadFileData) (chatapimodels.FileUploaded, error)
	JoinRoom(sess *connectionhub.Session, chatID string) error
	LeaveRoom(sess *connectionhub.Session, chatID string)
	GetChat(who identity.Identity, chatID string) (chatapimodels.ChatView, error)
	ListChats(who identity.Identity) ([]chatapimodels.ChatView, error)
	ListMessages(who identity.Identity, chatID string, pagination apimodels.Pagination) ([]chatapimodels.MessageView, error)
}

var Instance Provider

func NewHandler(maxUploadMb int) {
	initchecker.CheckInit(
		"filestorage", filestorage.Instance,
		"broker", broker.Instance,
		"connectionhub", connectionhub.Instance,
		"notification", notificationhandler.Instance,
	)
	Instance = NewInstance(
		chatstore.NewInstance(db.DB),
		messagestore.NewInstance(db.DB),
		applicationstore.NewInstance(db.DB),
		filestorage.Instance,
		broker.Instance,
		connectionhub.Instance,
		notificationhandler.Instance,
		int64(maxUploadMb)<<20,
	)
}

func NewInstance(store chatstore.Provider, messageStore messagestore.Provider, applicationStore applicationstore.Provider,
	fileStorage filestorage.Provider, pusher broker.Provider, hub connectionhub.Provider,
	notifier notificationhandler.Provider, maxUploadBytes int64) Provider {
	return &impl{
		store:            store,
		messageStore:     messageStore,
		applicationStore: applicationStore,
		fileStorage:      fileStorage,
		pusher:           pusher,
		hub:              hub,
		notifier:         notifier,
		maxUploadBytes:   maxUploadBytes,
	}
}

type impl struct {
	store            chatstore.Provider
	messageStore     messagestore.Provider
	applicationStore applicationstore.Provider
	fileStorage      filestorage.Provider
	pusher           broker.Provider
	hub              connectionhub.Provider
	notifier         notificationhandler.Provider
	maxUploadBytes   int64
}

func (i impl) EnsureChat(who identity.Identity, applicationID string) (chatapimodels.ChatView, error) {
	app, err := i.applicationStore.GetByID(applicationID)
	if err != nil {
		return chatapimodels.ChatView{}, err
	}
	if app == nil {
		return chatapimodels.ChatView{}, errs.NotFound("application not found")
	}
	err = rbac.Check(who, "open this chat", rbac.ChatRoleSet, rbac.OwnedBy(app.UserID, app.EmployerUserID))
	if err != nil {
		return chatapimodels.ChatView{}, err
	}
	rec, created, err := i.OpenForApplication(*app)
	if err != nil {
		return chatapimodels.ChatView{}, err
	}
	if created {
		i.getLogger(who.UserID, rec.ID).Info("chat created")
	}
	return chatapimodels.ChatConvert(*rec), nil
}

func (i impl) OpenForApplication(app dbmodels.ApplicationExt) (*dbmodels.Chat, bool, error) {
	if !app.Status.IsChatEligible() {
		return nil, false, errs.NotEligible("chat is available for shortlisted or accepted applications only, application is %s", app.Status)
	}
	rec, created, err := i.store.Ensure(dbmodels.Chat{
		ApplicationID:  app.ID,
		EmployerID:     app.EmployerID,
		EmployerUserID: app.EmployerUserID,
		JobSeekerID:    app.UserID,
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "chat creation failed")
	}
	return rec, created, nil
}

func (i impl) SendMessage(ctx context.Context, who identity.Identity, data chatapimodels.SendMessageData) (chatapimodels.MessageView, error) {
	if err := data.Validate(); err != nil {
		return chatapimodels.MessageView{}, err
	}
	if err := checkSender(who, data.SenderID); err != nil {
		return chatapimodels.MessageView{}, err
	}
	chat, err := i.participantChat(who, data.ChatID, "send messages to this chat")
	if err != nil {
		return chatapimodels.MessageView{}, err
	}
	msg, err := i.messageStore.Create(dbmodels.Message{
		ChatID:   chat.ID,
		SenderID: who.UserID,
		Content:  strings.TrimSpace(data.Content),
	})
	if err != nil {
		return chatapimodels.MessageView{}, errors.Wrap(err, "message saving failed")
	}
	view := i.messageView(*msg)
	i.broadcast(ctx, chat.ID, wsmodels.ServerMessage{Event: wsmodels.EventNewMessage, Data: view})
	i.notifier.NewMessage(*chat, *msg)
	return view, nil
}

func (i impl) UploadFile(ctx context.Context, who identity.Identity, data chatapimodels.UploadFileData) (chatapimodels.FileUploaded, error) {
	if err := data.Validate(); err != nil {
		return chatapimodels.FileUploaded{}, err
	}
	if err := checkSender(who, data.SenderID); err != nil {
		return chatapimodels.FileUploaded{}, err
	}
	chat, err := i.participantChat(who, data.ChatID, "upload files to this chat")
	if err != nil {
		return chatapimodels.FileUploaded{}, err
	}
	body, err := helpers.DecodeBase64(data.File)
	if err != nil {
		return chatapimodels.FileUploaded{}, errs.Validation("file is not valid base64")
	}
	if len(body) == 0 {
		return chatapimodels.FileUploaded{}, errs.Validation("file is empty")
	}
	if i.maxUploadBytes > 0 && int64(len(body)) > i.maxUploadBytes {
		return chatapimodels.FileUploaded{}, errs.Validation("file is larger than %d MB", i.maxUploadBytes>>20)
	}
	ref, err := i.fileStorage.Upload(ctx, filestorage.FolderChat, data.Name, body, http.DetectContentType(body))
	if err != nil {
		return chatapimodels.FileUploaded{}, err
	}
	msg, err := i.messageStore.Create(dbmodels.Message{
		ChatID:   chat.ID,
		SenderID: who.UserID,
		FileRef:  ref,
		FileName: data.Name,
	})
	if err != nil {
		return chatapimodels.FileUploaded{}, errors.Wrap(err, "message saving failed")
	}
	view := i.messageView(*msg)
	result := chatapimodels.FileUploaded{
		ChatID:  chat.ID,
		Url:     view.FileUrl,
		Name:    data.Name,
		Message: view,
	}
	i.broadcast(ctx, chat.ID, wsmodels.ServerMessage{Event: wsmodels.EventFileUploaded, Data: result})
	i.notifier.NewMessage(*chat, *msg)
	i.getLogger(who.UserID, chat.ID).WithField("ref", ref).Info("chat file uploaded")
	return result, nil
}

func (i impl) JoinRoom(sess *connectionhub.Session, chatID string) error {
	if chatID == "" {
		return errs.Validation("chat_id is required")
	}
	if _, err := i.participantChat(identity.Identity{UserID: sess.UserID}, chatID, "join this chat"); err != nil {
		return err
	}
	i.hub.Join(sess, chatID)
	return nil
}

func (i impl) LeaveRoom(sess *connectionhub.Session, chatID string) {
	i.hub.Leave(sess, chatID)
}

func (i impl) GetChat(who identity.Identity, chatID string) (chatapimodels.ChatView, error) {
	chat, err := i.participantChat(who, chatID, "view this chat")
	if err != nil {
		return chatapimodels.ChatView{}, err
	}
	return chatapimodels.ChatConvert(*chat), nil
}

func (i impl) ListChats(who identity.Identity) ([]chatapimodels.ChatView, error) {
	if err := rbac.RequireRole(who, "list chats", rbac.ChatRoleSet...); err != nil {
		return nil, err
	}
	recList, err := i.store.ListByUser(who.UserID)
	if err != nil {
		return nil, err
	}
	result := make([]chatapimodels.ChatView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, chatapimodels.ChatConvert(rec))
	}
	return result, nil
}

func (i impl) ListMessages(who identity.Identity, chatID string, pagination apimodels.Pagination) ([]chatapimodels.MessageView, error) {
	if _, err := i.participantChat(who, chatID, "read this chat"); err != nil {
		return nil, err
	}
	recList, err := i.messageStore.List(chatID, pagination)
	if err != nil {
		return nil, err
	}
	result := make([]chatapimodels.MessageView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, i.messageView(rec))
	}
	return result, nil
}

// participantChat loads the chat and checks the caller takes part in it.
func (i impl) participantChat(who identity.Identity, chatID, action string) (*dbmodels.Chat, error) {
	if who.IsAnonymous() {
		return nil, errs.Forbidden("authentication required to %s", action)
	}
	chat, err := i.store.GetByID(chatID)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, errs.NotFound("chat not found")
	}
	if !chat.IsParticipant(who.UserID) {
		return nil, errs.Forbidden("only chat participants may %s", action)
	}
	return chat, nil
}

// checkSender rejects payloads claiming another sender than the authenticated one.
func checkSender(who identity.Identity, senderID string) error {
	if senderID != "" && senderID != who.UserID {
		return errs.Forbidden("sender_id does not match the authenticated user")
	}
	return nil
}

func (i impl) messageView(rec dbmodels.Message) chatapimodels.MessageView {
	view := chatapimodels.MessageConvert(rec)
	if rec.FileRef != "" && i.fileStorage != nil {
		view.FileUrl = i.fileStorage.URL(rec.FileRef)
	}
	return view
}

func (i impl) broadcast(ctx context.Context, chatID string, msg wsmodels.ServerMessage) {
	if err := i.pusher.PublishRoom(ctx, chatID, msg); err != nil {
		i.getLogger("", chatID).WithError(err).WithField("event", msg.Event).Error("chat broadcast failed")
	}
}

func (i impl) getLogger(userID, chatID string) *log.Entry {
	logger := log.WithField("chat_id", chatID)
	if userID != "" {
		logger = logger.WithField("user_id", userID)
	}
	return logger
}
