// Package audit records mutating operations. Without a broker the
// recorder writes audit_logs directly; with one configured it only
// publishes and the worker binary is the single writer, so an event
// is never stored twice. Audit failures are logged and swallowed: the
// trail must never fail the operation it describes.
package audit

import (
	"context"
	"log/slog"

	"github.com/dvgamerr/payme/internal/amqp"
	"github.com/dvgamerr/payme/internal/core"
)

// Logger is the persistence side of the recorder.
type Logger interface {
	InsertAuditLog(ctx context.Context, entry core.AuditEntry) error
}

// Publisher is the broker side; nil means local-only auditing.
type Publisher interface {
	PublishAudit(ctx context.Context, msg *amqp.AuditMessage) error
}

type Recorder struct {
	store     Logger
	publisher Publisher
}

func NewRecorder(store Logger, publisher Publisher) *Recorder {
	return &Recorder{store: store, publisher: publisher}
}

// Record routes the entry to exactly one writer: the broker when one
// is configured, the audit_logs table otherwise. A failed publish
// falls back to the local insert so the event is not lost.
func (r *Recorder) Record(ctx context.Context, entry core.AuditEntry) {
	if r.publisher != nil {
		err := r.publisher.PublishAudit(ctx, amqp.NewAuditMessage(entry))
		if err == nil {
			return
		}
		slog.ErrorContext(ctx, "Failed to publish audit event",
			"error", err,
			"action", entry.Action,
			"user_id", entry.UserID)
	}
	if err := r.store.InsertAuditLog(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "Failed to insert audit log",
			"error", err,
			"action", entry.Action,
			"user_id", entry.UserID)
	}
}
