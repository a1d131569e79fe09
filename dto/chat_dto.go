package dto

import (
	"time"

	"github.com/skillbridge/marketplace-go/models"
)

// Socket event type tags.
const (
	EventJoinRoom    = "join-room"
	EventSendMessage = "send-message"
	EventMessage     = "message"
	EventRoomHistory = "room-history"
	EventError       = "error"
)

// ClientEvent is the envelope for everything a connection sends us.
type ClientEvent struct {
	Type      string `json:"type"`
	ProjectID uint   `json:"projectId"`
	SenderID  uint   `json:"senderId"`
	Text      string `json:"text"`
}

// MessageEvent carries one persisted message to room members. Position
// and timestamp are the store's, not the sender's.
type MessageEvent struct {
	Type      string    `json:"type"`
	ProjectID uint      `json:"projectId"`
	SenderID  uint      `json:"senderId"`
	Text      string    `json:"text"`
	Position  int64     `json:"position"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMessageEvent(msg models.Message) MessageEvent {
	return MessageEvent{
		Type:      EventMessage,
		ProjectID: msg.ProjectID,
		SenderID:  msg.SenderID,
		Text:      msg.Text,
		Position:  msg.Position,
		Timestamp: msg.CreatedAt,
	}
}

// RoomHistoryEvent is sent once to a connection that just joined a
// room; it is never broadcast.
type RoomHistoryEvent struct {
	Type      string           `json:"type"`
	ProjectID uint             `json:"projectId"`
	Messages  []models.Message `json:"messages"`
}

type SocketErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
