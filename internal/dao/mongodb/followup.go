package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/fields"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func NewFollowupDAO(db *mongo.Database, logger *zap.Logger) *FollowupDAO {
	return &FollowupDAO{
		followupsCollection: db.Collection(CollectionFollowups),
		logger:              logger.Named("FollowupDAO"),
	}
}

type FollowupDAO struct {
	followupsCollection *mongo.Collection
	logger              *zap.Logger
}

func (d *FollowupDAO) Create(ctx context.Context, f *models.Followup) (primitive.ObjectID, error) {
	res, err := d.followupsCollection.InsertOne(ctx, f)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateKey
		}
		d.logger.Error("Create: InsertOne failed", zap.Error(err), zap.Stringer("clientRef", f.ClientRef))
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// List returns one page of follow-ups ordered by schedule date, plus the total count.
func (d *FollowupDAO) List(ctx context.Context, offset, limit int) ([]*models.Followup, int64, error) {
	total, err := d.followupsCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		d.logger.Error("List: CountDocuments failed", zap.Error(err))
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "schedule_date", Value: 1}, {Key: fields.FieldObjectId, Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cursor, err := d.followupsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		d.logger.Error("List: Find failed", zap.Error(err))
		return nil, 0, err
	}
	items := make([]*models.Followup, 0)
	if err := cursor.All(ctx, &items); err != nil {
		d.logger.Error("List: cursor.All failed", zap.Error(err))
		return nil, 0, err
	}
	return items, total, nil
}

func (d *FollowupDAO) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Followup, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{"$set": bson.M{
		fields.FieldStatus:    status,
		fields.FieldUpdatedAt: time.Now(),
	}}
	var f models.Followup
	err := d.followupsCollection.FindOneAndUpdate(ctx, bson.M{fields.FieldObjectId: id}, update, opts).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("UpdateStatus: FindOneAndUpdate failed", zap.Error(err), zap.Stringer("id", id))
		return nil, err
	}
	return &f, nil
}

func (d *FollowupDAO) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := d.followupsCollection.DeleteOne(ctx, bson.M{fields.FieldObjectId: id})
	if err != nil {
		d.logger.Error("Delete: DeleteOne failed", zap.Error(err), zap.Stringer("id", id))
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
