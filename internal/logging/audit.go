package logging

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// =============================================================================
// AUDIT EVENT TYPES
// =============================================================================

// AuditEventType names a change made to a collection.
type AuditEventType string

const (
	AuditCreate AuditEventType = "create"
	AuditUpdate AuditEventType = "update"
	AuditDelete AuditEventType = "delete"
	AuditClear  AuditEventType = "clear"
)

// =============================================================================
// AUDIT EVENT STRUCTURE
// =============================================================================

// AuditEvent is one write against the backend, successful or not.
type AuditEvent struct {
	Timestamp  int64          // Unix milliseconds
	EventType  AuditEventType // What was attempted
	Resource   string         // socios, recomendaciones, ...
	RecordID   string         // Empty for create and clear
	Success    bool
	DurationMs int64
	Error      string
}

// =============================================================================
// AUDIT LOGGER
// =============================================================================

// AuditLogger writes audit events as structured lines under the "audit" name,
// tagged with where the change came from (dashboard or cli).
type AuditLogger struct {
	logger *zap.Logger
	source string
}

// NewAudit returns an audit logger for source. A nil logger discards events.
func NewAudit(l *zap.Logger, source string) *AuditLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &AuditLogger{logger: l.Named("audit"), source: source}
}

// Log writes one event, stamping the time when unset.
func (a *AuditLogger) Log(event AuditEvent) {
	if a == nil {
		return
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().UnixMilli()
	}
	fields := []zap.Field{
		zap.String("source", a.source),
		zap.String("event", string(event.EventType)),
		zap.String("resource", event.Resource),
		zap.Int64("at_ms", event.Timestamp),
		zap.Bool("success", event.Success),
		zap.Int64("dur_ms", event.DurationMs),
	}
	if event.RecordID != "" {
		fields = append(fields, zap.String("id", event.RecordID))
	}
	if event.Error != "" {
		fields = append(fields, zap.String("error", event.Error))
		a.logger.Warn("mutation", fields...)
		return
	}
	a.logger.Info("mutation", fields...)
}

// Mutation records the outcome of op on resource. Unknown ops are logged
// as-is so nothing is silently dropped.
func (a *AuditLogger) Mutation(resource, op, id string, took time.Duration, err error) {
	event := AuditEvent{
		EventType:  AuditEventType(strings.ToLower(op)),
		Resource:   resource,
		RecordID:   id,
		Success:    err == nil,
		DurationMs: took.Milliseconds(),
	}
	if err != nil {
		event.Error = err.Error()
	}
	a.Log(event)
}
