package replication

import (
	"encoding/json"
	"fmt"
)

// Source identifies this service on every outbound message.
const Source = "api-sales"

// Process names understood by the peer services. The values are part of the
// wire contract and must not be changed.
const (
	ProcessMovementUpdate = "movementUpdate"
	ProcessMovementDelete = "movementDelete"
	ProcessCompanyUpdate  = "companyUpdate"
	ProcessCompanyDelete  = "companyDelete"
	ProcessUserUpdate     = "userUpdate"
	ProcessUserDelete     = "userDelete"
	ProcessProductUpdate  = "productUpdate"
	ProcessProductDelete  = "productDelete"
)

// Message is the envelope exchanged with the peer services. JSONData carries
// the payload pre-serialized so the envelope schema stays stable across
// payload types.
type Message struct {
	Source   string `json:"source"`
	Process  string `json:"process"`
	JSONData string `json:"jsonData"`
}

// NewMessage builds an outbound message, serializing the payload
func NewMessage(process string, payload interface{}) (Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("failed to serialize %s payload: %w", process, err)
	}
	return Message{
		Source:   Source,
		Process:  process,
		JSONData: string(data),
	}, nil
}

// DecodePayload deserializes the message payload into v
func (m Message) DecodePayload(v interface{}) error {
	if err := json.Unmarshal([]byte(m.JSONData), v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", m.Process, err)
	}
	return nil
}
