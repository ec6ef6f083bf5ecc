package mongodb

import (
	"context"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func NewAuditLogDAO(db *mongo.Database, logger *zap.Logger) *AuditLogDAO {
	return &AuditLogDAO{
		collection: db.Collection(CollectionAuditLogs),
		logger:     logger.Named("AuditLogDAO"),
	}
}

type AuditLogDAO struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// Create stores the entry. Failures are logged and swallowed so that the bill
// mutation being audited is never undone by a broken audit trail.
func (d *AuditLogDAO) Create(ctx context.Context, entry *models.AuditLog) error {
	if _, err := d.collection.InsertOne(ctx, entry); err != nil {
		d.logger.Error("Create: InsertOne failed",
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.Stringer("entityID", entry.EntityID))
	}
	return nil
}
