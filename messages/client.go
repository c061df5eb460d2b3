package messages

import "encoding/json"

// ClientMessage is sent by presenter clients.
type ClientMessage struct {
	Type    string          `json:"type"` // "control"
	Payload json.RawMessage `json:"payload"`
}

// ControlPayload contains control commands
type ControlPayload struct {
	Action string `json:"action"` // "ping"
}
