//START OF FILE mparcade/internal/network/protocol.go
package network

import (
	"encoding/json"
	"fmt"
)

// Message é o envelope padrão para toda a comunicação com os controles remotos.
// O Type serve para roteamento e o Payload é decodificado depois, conforme o tipo.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

const (
	MsgJoin    = "JOIN"
	MsgWelcome = "WELCOME"
	MsgButton  = "BUTTON"
	MsgState   = "STATE"
	MsgError   = "ERROR"
)

// JoinPayload pede um slot. Player 0 significa "qualquer slot livre".
type JoinPayload struct {
	Player int `json:"player"`
}

type WelcomePayload struct {
	ClientID string `json:"clientId"`
	Player   int    `json:"player"`
}

type ButtonPayload struct {
	Button  string `json:"button"`
	Pressed bool   `json:"pressed"`
}

type PlayerSnapshot struct {
	Player   int  `json:"player"`
	Score    int  `json:"score"`
	Life     int  `json:"life"`
	Assigned bool `json:"assigned"`
}

type StatePayload struct {
	Tick    uint64           `json:"tick"`
	Players []PlayerSnapshot `json:"players"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage serializa o payload dentro de um envelope do tipo t.
func NewMessage(t string, payload any) (Message, error) {
	if t == "" {
		return Message{}, fmt.Errorf("message type is empty")
	}
	if payload == nil {
		return Message{Type: t}, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encoding %s payload: %w", t, err)
	}
	return Message{Type: t, Payload: raw}, nil
}

// DecodePayload decodifica o payload bruto para o tipo T.
func DecodePayload[T any](msg Message) (T, error) {
	var out T
	if len(msg.Payload) == 0 {
		return out, fmt.Errorf("empty payload for message %q", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, &out); err != nil {
		return out, fmt.Errorf("decoding %s payload: %w", msg.Type, err)
	}
	return out, nil
}

func errorMessage(text string) Message {
	msg, _ := NewMessage(MsgError, ErrorPayload{Message: text})
	return msg
}

//END OF FILE mparcade/internal/network/protocol.go
