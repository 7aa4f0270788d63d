package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kstrand/members-portal/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository appends audit events to their own capped-growth collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	Timestamp int64  `bson:"timestamp"`
	EventType string `bson:"event_type"`
	Username  string `bson:"username,omitempty"`
	Success   bool   `bson:"success"`
	Detail    string `bson:"detail,omitempty"`
}

func (r *AuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	doc := auditDoc{
		Timestamp: event.Timestamp.Unix(),
		EventType: event.EventType,
		Username:  event.Username,
		Success:   event.Success,
		Detail:    event.Detail,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
