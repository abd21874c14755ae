package ws

import (
	"encoding/json"
	"fmt"
)

// Client -> Server message types
const (
	MsgSwing   uint8 = 0x01
	MsgControl uint8 = 0x02
	MsgPing    uint8 = 0x04
)

// Server -> Client message types
const (
	MsgGameState    uint8 = 0x81
	MsgSessionStart uint8 = 0x82
	MsgGameOver     uint8 = 0x83
	MsgEvents       uint8 = 0x84
	MsgPong         uint8 = 0x86
	MsgError        uint8 = 0x87
)

// Message is the JSON envelope for every frame in both directions.
type Message struct {
	Type    uint8           `json:"type"`
	Tick    uint64          `json:"tick"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ControlPayload carries session control from the menu: start, restart,
// continue or debug_tier, with a tier name for start/debug_tier.
type ControlPayload struct {
	Action string `json:"action"`
	Tier   string `json:"tier,omitempty"`
}

type PingPayload struct {
	ClientTime uint64 `json:"clientTime"`
}

type PongPayload struct {
	ClientTime uint64 `json:"clientTime"`
	ServerTime uint64 `json:"serverTime"`
}

type SessionStartPayload struct {
	SessionID string `json:"sessionId"`
	Team      string `json:"team"`
}

type GameOverPayload struct {
	Victory bool   `json:"victory"`
	Tier    string `json:"tier"`
	Round   int    `json:"round"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func Decode(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	return msg, nil
}

func NewMessage(typ uint8, tick uint64, payload any) (Message, error) {
	if payload == nil {
		return Message{Type: typ, Tick: tick}, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encode payload type=%#x: %w", typ, err)
	}
	return Message{
		Type:    typ,
		Tick:    tick,
		Payload: json.RawMessage(data),
	}, nil
}

// DecodePayload unmarshals msg.Payload into v.
func DecodePayload(msg Message, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("message type=%#x has no payload", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("decode payload type=%#x: %w", msg.Type, err)
	}
	return nil
}
