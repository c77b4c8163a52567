package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dvgamerr/payme/internal/core"
)

func (s *Store) InsertAuditLog(ctx context.Context, entry core.AuditEntry) error {
	createdAt := entry.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.exec(ctx, s.db, `
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, details, ip_address, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.Action, entry.EntityType, entry.EntityID,
		entry.Details, entry.IPAddress, entry.UserAgent, createdAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}
