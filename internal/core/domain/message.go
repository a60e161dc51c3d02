package domain

import (
	"errors"
	"time"
)

// ChatMessage is one live chat line in a room. Messages exist only for
// the lifetime of the process.
type ChatMessage struct {
	RoomID     RoomID
	SenderID   ConnectionID
	SenderName string
	Text       string
	SentAt     time.Time
}

func NewChatMessage(senderID ConnectionID, senderName string, roomID RoomID, text string) (*ChatMessage, error) {
	if text == "" {
		return nil, errors.New("message text cannot be empty")
	}
	return &ChatMessage{
		RoomID:     roomID,
		SenderID:   senderID,
		SenderName: senderName,
		Text:       text,
		SentAt:     time.Now(),
	}, nil
}
