package amqp

import (
	"encoding/json"
	"time"

	"github.com/dvgamerr/payme/internal/core"
)

// AuditMessage is the wire form of one audit event. It carries the
// full entry so consumers never need database access to record it.
type AuditMessage struct {
	UserID     int64     `json:"user_id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id,omitempty"`
	Details    string    `json:"details,omitempty"`
	IPAddress  string    `json:"ip_address,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewAuditMessage wraps an audit entry for publishing.
func NewAuditMessage(entry core.AuditEntry) *AuditMessage {
	return &AuditMessage{
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    entry.Details,
		IPAddress:  entry.IPAddress,
		UserAgent:  entry.UserAgent,
		Timestamp:  time.Now().UTC(),
	}
}

// Entry converts the message back into an audit entry.
func (m *AuditMessage) Entry() core.AuditEntry {
	return core.AuditEntry{
		UserID:     m.UserID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		Details:    m.Details,
		IPAddress:  m.IPAddress,
		UserAgent:  m.UserAgent,
		CreatedAt:  m.Timestamp.Format(time.RFC3339),
	}
}

// ToJSON converts the message to JSON bytes
func (m *AuditMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes
func AuditMessageFromJSON(data []byte) (*AuditMessage, error) {
	var msg AuditMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
