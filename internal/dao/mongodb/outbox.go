package mongodb

import (
	"context"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/fields"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	outboxFieldClaimID     = "claim_id"
	outboxFieldRetries     = "retries"
	outboxFieldError       = "error"
	outboxFieldProcessedAt = "processed_at"
)

func NewOutboxDAO(db *mongo.Database, logger *zap.Logger) *OutboxDAO {
	return &OutboxDAO{
		outboxCollection: db.Collection(CollectionOutbox),
		logger:           logger.Named("OutboxDAO"),
	}
}

type OutboxDAO struct {
	outboxCollection *mongo.Collection
	logger           *zap.Logger
}

func (d *OutboxDAO) Create(ctx context.Context, message *models.OutboxMessage) error {
	if _, err := d.outboxCollection.InsertOne(ctx, message); err != nil {
		d.logger.Error("Create: InsertOne failed", zap.Error(err), zap.String("topic", message.Topic))
		return err
	}
	return nil
}

// ClaimAndFetchEvents claims up to limit pending messages for this worker.
// Candidates are selected by id first, then flipped to PROCESSING under a fresh
// claim id; the pending-status filter keeps two workers from claiming the same row.
func (d *OutboxDAO) ClaimAndFetchEvents(ctx context.Context, limit int) ([]*models.OutboxMessage, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: fields.FieldCreatedAt, Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{fields.FieldObjectId: 1})

	cursor, err := d.outboxCollection.Find(ctx, bson.M{fields.FieldStatus: models.OutboxStatusPending}, findOptions)
	if err != nil {
		d.logger.Error("ClaimAndFetchEvents: Find candidates failed", zap.Error(err))
		return nil, err
	}
	var candidates []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &candidates); err != nil {
		d.logger.Error("ClaimAndFetchEvents: decode candidates failed", zap.Error(err))
		return nil, err
	}
	if len(candidates) == 0 {
		return []*models.OutboxMessage{}, nil
	}

	ids := make([]primitive.ObjectID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}

	claimID := primitive.NewObjectID()
	claim := bson.M{
		"$set": bson.M{
			fields.FieldStatus:    models.OutboxStatusProcessing,
			outboxFieldClaimID:    claimID,
			fields.FieldUpdatedAt: time.Now(),
		},
	}
	res, err := d.outboxCollection.UpdateMany(ctx, bson.M{
		fields.FieldObjectId: bson.M{"$in": ids},
		fields.FieldStatus:   models.OutboxStatusPending,
	}, claim)
	if err != nil {
		d.logger.Error("ClaimAndFetchEvents: UpdateMany failed", zap.Error(err))
		return nil, err
	}
	// Somebody else got there first.
	if res.ModifiedCount == 0 {
		return []*models.OutboxMessage{}, nil
	}

	claimed, err := d.outboxCollection.Find(ctx, bson.M{outboxFieldClaimID: claimID})
	if err != nil {
		d.logger.Error("ClaimAndFetchEvents: Find claimed failed", zap.Error(err))
		return nil, err
	}
	var messages []*models.OutboxMessage
	if err = claimed.All(ctx, &messages); err != nil {
		d.logger.Error("ClaimAndFetchEvents: decode claimed failed", zap.Error(err))
		return nil, err
	}
	return messages, nil
}

func (d *OutboxDAO) MarkAsProcessed(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			fields.FieldStatus:     models.OutboxStatusProcessed,
			outboxFieldProcessedAt: time.Now(),
		},
	}
	_, err := d.outboxCollection.UpdateOne(ctx, bson.M{fields.FieldObjectId: id}, update)
	if err != nil {
		d.logger.Error("MarkAsProcessed: UpdateOne failed", zap.Error(err), zap.Stringer("id", id))
	}
	return err
}

// IncrementRetry puts the message back to PENDING, or parks it as DEAD_LETTER
// once maxRetries attempts have failed.
func (d *OutboxDAO) IncrementRetry(ctx context.Context, msg *models.OutboxMessage, errorMessage string, maxRetries int) error {
	status := models.OutboxStatusPending
	if maxRetries > 0 && msg.Retries+1 >= maxRetries {
		status = models.OutboxStatusDeadLetter
	}
	update := bson.M{
		"$set": bson.M{
			fields.FieldStatus: status,
			outboxFieldError:   errorMessage,
		},
		"$inc": bson.M{outboxFieldRetries: 1},
	}
	_, err := d.outboxCollection.UpdateOne(ctx, bson.M{fields.FieldObjectId: msg.ID}, update)
	if err != nil {
		d.logger.Error("IncrementRetry: UpdateOne failed", zap.Error(err), zap.Stringer("id", msg.ID))
	}
	return err
}
