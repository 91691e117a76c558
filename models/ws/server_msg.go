package wsmodels

import "encoding/json"

const (
	EventJoinChat     = "join_chat"
	EventLeaveChat    = "leave_chat"
	EventSendMessage  = "send_message"
	EventUploadFile   = "upload_file"
	EventNewMessage   = "new_message"
	EventFileUploaded = "file_uploaded"
	EventNotification = "notification"
	EventError        = "error"
	EventUploadResult = "upload_result"
	EventJoined       = "joined_chat"
)

// ServerMessage is the envelope pushed to sockets.
type ServerMessage struct {
	Event     string      `json:"event"`
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"` // echoed from the client message
}

// ClientMessage is the envelope read from sockets.
type ClientMessage struct {
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id,omitempty"`
}

type ChatRef struct {
	ChatID string `json:"chat_id"`
}

type ErrorData struct {
	Message string `json:"message"`
}

type UploadResult struct {
	Status string `json:"status"` // ok/error
	Url    string `json:"url,omitempty"`
	Error  string `json:"error,omitempty"`
}

func NewError(message, requestID string) ServerMessage {
	return ServerMessage{
		Event:     EventError,
		Data:      ErrorData{Message: message},
		RequestID: requestID,
	}
}
