// Package protocol defines the messages exchanged by the event relay and
// the WebSocket stream.
package protocol

import (
	"encoding/json"
	"fmt"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	// TypeHello is sent by the server right after the upgrade
	TypeHello MessageType = "hello"

	// TypeEvent carries one virtual event from the server's hook
	TypeEvent MessageType = "event"

	// TypePost asks the server to inject the enclosed event
	TypePost MessageType = "post"

	// TypeError reports a rejected client message
	TypeError MessageType = "error"
)

// Message is the generic container for all WebSocket messages
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// HelloPayload is the payload for TypeHello
type HelloPayload struct {
	Version string `json:"version"`
	Enabled bool   `json:"enabled"`
}

// ErrorPayload is the payload for TypeError
type ErrorPayload struct {
	Error string `json:"error"`
}

// NewMessage marshals payload into a message of type t.
func NewMessage(t MessageType, payload any) (Message, error) {
	msg := Message{Type: t}
	if payload == nil {
		return msg, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return msg, fmt.Errorf("protocol: marshal %s payload: %w", t, err)
	}
	msg.Payload = data
	return msg, nil
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("protocol: %s message has no payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("protocol: decode %s payload: %w", m.Type, err)
	}
	return nil
}

// StatusPayload is the body of GET /api/status
type StatusPayload struct {
	Version   string `json:"version"`
	Backend   string `json:"backend"`
	Enabled   bool   `json:"enabled"`
	Injection bool   `json:"injection"`
	Clients   int    `json:"clients"`
}
