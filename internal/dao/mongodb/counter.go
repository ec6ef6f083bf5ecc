package mongodb

import (
	"context"
	"errors"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/fields"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func NewCounterDAO(db *mongo.Database, logger *zap.Logger) *CounterDAO {
	return &CounterDAO{
		countersCollection: db.Collection(CollectionCounters),
		logger:             logger.Named("CounterDAO"),
	}
}

// CounterDAO keeps one document per sequence: {_id: name, seq: n}.
type CounterDAO struct {
	countersCollection *mongo.Collection
	logger             *zap.Logger
}

type counterDoc struct {
	Name string `bson:"_id"`
	Seq  int64  `bson:"seq"`
}

// Seed raises the sequence to atLeast. It never lowers it.
func (d *CounterDAO) Seed(ctx context.Context, name string, atLeast int64) error {
	_, err := d.countersCollection.UpdateOne(ctx,
		bson.M{fields.FieldObjectId: name},
		bson.M{"$max": bson.M{fields.FieldCounterSeq: atLeast}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Concurrent upsert created the document; retry once as a plain update.
			_, err = d.countersCollection.UpdateOne(ctx,
				bson.M{fields.FieldObjectId: name},
				bson.M{"$max": bson.M{fields.FieldCounterSeq: atLeast}})
		}
		if err != nil {
			d.logger.Error("Seed: UpdateOne failed", zap.Error(err), zap.String("name", name))
			return err
		}
	}
	return nil
}

// Next atomically increments the sequence and returns the new value.
func (d *CounterDAO) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var doc counterDoc
	err := d.countersCollection.FindOneAndUpdate(ctx,
		bson.M{fields.FieldObjectId: name},
		bson.M{"$inc": bson.M{fields.FieldCounterSeq: int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		d.logger.Error("Next: FindOneAndUpdate failed", zap.Error(err), zap.String("name", name))
		return 0, err
	}
	return doc.Seq, nil
}

// Current reads the sequence without changing it. The bool is false when the
// sequence has never been seeded.
func (d *CounterDAO) Current(ctx context.Context, name string) (int64, bool, error) {
	var doc counterDoc
	err := d.countersCollection.FindOne(ctx, bson.M{fields.FieldObjectId: name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, false, nil
		}
		d.logger.Error("Current: FindOne failed", zap.Error(err), zap.String("name", name))
		return 0, false, err
	}
	return doc.Seq, true, nil
}
