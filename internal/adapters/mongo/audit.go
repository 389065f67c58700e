package mongo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alhaqtravel/umrah-booking/internal/domain"
	"github.com/alhaqtravel/umrah-booking/internal/observability"
)

// AuditLogger records admin actions: status overrides and inventory writes.
type AuditLogger struct {
	coll   *mongo.Collection
	logger observability.Logger
}

func NewAuditLogger(db *mongo.Database, logger observability.Logger) *AuditLogger {
	return &AuditLogger{
		coll:   db.Collection("audit_logs"),
		logger: logger,
	}
}

type AuditLog struct {
	ID        uuid.UUID `bson:"_id"`
	Action    string    `bson:"action"`
	ActorID   uuid.UUID `bson:"actor_id"`
	Timestamp time.Time `bson:"timestamp"`
	Data      bson.M    `bson:"data"`
}

func (a *AuditLogger) LogAction(ctx context.Context, action string, actorID uuid.UUID, data map[string]interface{}) error {
	log := AuditLog{
		ID:        uuid.New(),
		Action:    action,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Data:      bson.M(data),
	}
	_, err := a.coll.InsertOne(ctx, log)
	if err != nil {
		a.logger.Error("failed to insert audit log", err)
		return err
	}
	return nil
}

func (a *AuditLogger) LogStatusOverride(ctx context.Context, actorID uuid.UUID, b domain.Booking, from domain.BookingStatus) error {
	return a.LogAction(ctx, "booking.status_override", actorID, map[string]interface{}{
		"booking_id": b.ID,
		"from":       from,
		"to":         b.Status,
	})
}

func (a *AuditLogger) LogInventoryWrite(ctx context.Context, actorID uuid.UUID, kind, op string, id uuid.UUID) error {
	return a.LogAction(ctx, "inventory."+op, actorID, map[string]interface{}{
		"kind": kind,
		"id":   id,
	})
}
