package ports

import (
	"context"

	"github.com/kstrand/members-portal/internal/core/domain"
)

// AuditRecorder persists audit events. Implementations must tolerate being
// called concurrently from the dispatcher workers.
type AuditRecorder interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditSink accepts events for asynchronous recording. Emit never blocks the
// caller; events may be dropped under backpressure rather than stall a
// request.
type AuditSink interface {
	Emit(event domain.AuditEvent)
}

// NopAuditSink discards every event. Used where auditing is disabled and in
// tests.
type NopAuditSink struct{}

func (NopAuditSink) Emit(domain.AuditEvent) {}
