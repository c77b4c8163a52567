package core

// AuditEntry records one mutating operation for the audit trail.
type AuditEntry struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id,omitempty"`
	Details    string `json:"details,omitempty"`
	IPAddress  string `json:"ip_address,omitempty"`
	UserAgent  string `json:"user_agent,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}
