package amqp

import (
	"encoding/json"
	"time"
)

// SaleSyncMessage asks the worker to mirror one sale to the spreadsheet.
// It carries only the ID and version; the worker fetches the full sale
// from the database.
type SaleSyncMessage struct {
	ID        int64     `json:"id"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewSaleSyncMessage(id, version int64) *SaleSyncMessage {
	return &SaleSyncMessage{
		ID:        id,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *SaleSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func SaleSyncMessageFromJSON(data []byte) (*SaleSyncMessage, error) {
	var msg SaleSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
