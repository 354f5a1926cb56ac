package amqp

import (
	"encoding/json"
	"time"
)

// Entity kinds carried in mirror update events.
const (
	KindWallet   = "wallet"
	KindCategory = "category"
)

// EntityUpdateMessage announces that one mirrored entity was written during
// a sync run. Consumers fetch the full row from the mirror themselves.
type EntityUpdateMessage struct {
	Kind      string    `json:"kind"`
	ID        string    `json:"id"`
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewEntityUpdateMessage(kind, id, runID string) *EntityUpdateMessage {
	return &EntityUpdateMessage{
		Kind:      kind,
		ID:        id,
		RunID:     runID,
		Timestamp: time.Now(),
	}
}

func (m *EntityUpdateMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func EntityUpdateMessageFromJSON(data []byte) (*EntityUpdateMessage, error) {
	var msg EntityUpdateMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
