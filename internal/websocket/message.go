package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

// Server to client
const (
	MessageTypeActivity MessageType = "activity"
	MessageTypePoints   MessageType = "points"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

type PointsPayload struct {
	Balance int `json:"balance"`
}

func encode(msgType MessageType, payload interface{}) ([]byte, error) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}
