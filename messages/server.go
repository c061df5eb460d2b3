package messages

import (
	"github.com/room4-2/frontdesk/domain"
	"github.com/room4-2/frontdesk/response"
)

// Error codes
const (
	ErrCodeInvalidMessage = "INVALID_MESSAGE"
	ErrCodeTooManyClients = "TOO_MANY_CLIENTS"
)

// Message types
const (
	TypeState   = "state"
	TypeCaption = "caption"
	TypeReply   = "reply"
	TypeStatus  = "status"
	TypeError   = "error"
)

// ServerMessage is sent to presenter clients.
type ServerMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Payload   interface{} `json:"payload"`
}

// StatePayload carries the avatar state.
type StatePayload struct {
	State domain.AvatarState `json:"state"`
}

// CaptionPayload carries a spoken line.
type CaptionPayload struct {
	Text string `json:"text"`
}

// StatusPayload contains status updates
type StatusPayload struct {
	Status  string `json:"status"` // "connected", "pong"
	Message string `json:"message,omitempty"`
}

// ErrorPayload contains error information
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewStateMessage creates an avatar state message
func NewStateMessage(state domain.AvatarState) *ServerMessage {
	return &ServerMessage{Type: TypeState, Payload: StatePayload{State: state}}
}

// NewCaptionMessage creates a caption message
func NewCaptionMessage(text string) *ServerMessage {
	return &ServerMessage{Type: TypeCaption, Payload: CaptionPayload{Text: text}}
}

// NewReplyMessage wraps a structured reply
func NewReplyMessage(r response.Reply) *ServerMessage {
	return &ServerMessage{Type: TypeReply, Payload: r}
}

// NewStatusMessage creates a status message
func NewStatusMessage(status, message string) *ServerMessage {
	return &ServerMessage{
		Type: TypeStatus,
		Payload: StatusPayload{
			Status:  status,
			Message: message,
		},
	}
}

// NewErrorMessage creates an error message
func NewErrorMessage(code, message string) *ServerMessage {
	return &ServerMessage{
		Type: TypeError,
		Payload: ErrorPayload{
			Code:    code,
			Message: message,
		},
	}
}
