package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvgamerr/payme/internal/amqp"
	"github.com/dvgamerr/payme/internal/audit"
	"github.com/dvgamerr/payme/internal/core"
)

type logStub struct {
	entries []core.AuditEntry
}

func (l *logStub) InsertAuditLog(_ context.Context, entry core.AuditEntry) error {
	l.entries = append(l.entries, entry)
	return nil
}

type publishStub struct {
	messages []*amqp.AuditMessage
	err      error
}

func (p *publishStub) PublishAudit(_ context.Context, msg *amqp.AuditMessage) error {
	if p.err != nil {
		return p.err
	}
	p.messages = append(p.messages, msg)
	return nil
}

func TestRecordWithoutBrokerWritesLocally(t *testing.T) {
	log := &logStub{}
	rec := audit.NewRecorder(log, nil)

	rec.Record(context.Background(), core.AuditEntry{UserID: 1, Action: "item.create"})

	require.Len(t, log.entries, 1)
	assert.Equal(t, "item.create", log.entries[0].Action)
}

func TestRecordWithBrokerLeavesOneRow(t *testing.T) {
	log := &logStub{}
	pub := &publishStub{}
	rec := audit.NewRecorder(log, pub)

	rec.Record(context.Background(), core.AuditEntry{UserID: 1, Action: "month.close"})

	// The worker is the single writer: drain the published message the
	// way cmd/audit-worker does.
	require.Len(t, pub.messages, 1)
	require.NoError(t, log.InsertAuditLog(context.Background(), pub.messages[0].Entry()))

	require.Len(t, log.entries, 1, "one mutation must leave one audit row")
	assert.Equal(t, "month.close", log.entries[0].Action)
	assert.Equal(t, int64(1), log.entries[0].UserID)
}

func TestRecordFallsBackWhenPublishFails(t *testing.T) {
	log := &logStub{}
	pub := &publishStub{err: errors.New("broker down")}
	rec := audit.NewRecorder(log, pub)

	rec.Record(context.Background(), core.AuditEntry{UserID: 1, Action: "item.delete"})

	assert.Empty(t, pub.messages)
	require.Len(t, log.entries, 1, "a failed publish must not lose the event")
	assert.Equal(t, "item.delete", log.entries[0].Action)
}
