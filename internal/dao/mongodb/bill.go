package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/fields"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/repository"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const indexTimeout = 10 * time.Second

// withoutPicture keeps the image bytes out of every read except GetProfilePicture.
var withoutPicture = bson.M{fields.FieldBillPicture: 0}

// NewBillDAO creates the DAO and makes sure member ids are unique at the storage level.
func NewBillDAO(db *mongo.Database, logger *zap.Logger) (*BillDAO, error) {
	d := &BillDAO{
		billsCollection: db.Collection(CollectionBills),
		logger:          logger.Named("BillDAO"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()
	if err := d.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

type BillDAO struct {
	billsCollection *mongo.Collection
	logger          *zap.Logger
}

// EnsureIndexes creates the unique member_id index.
func (d *BillDAO) EnsureIndexes(ctx context.Context) error {
	_, err := d.billsCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: fields.FieldBillMemberID, Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_member_id"),
	})
	if err != nil {
		d.logger.Error("EnsureIndexes: CreateOne failed", zap.Error(err))
		return err
	}
	return nil
}

func (d *BillDAO) CreateBill(ctx context.Context, bill *models.GymBill) (primitive.ObjectID, error) {
	res, err := d.billsCollection.InsertOne(ctx, bill)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateKey
		}
		d.logger.Error("CreateBill: InsertOne failed", zap.Error(err), zap.String("memberID", bill.MemberID))
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// GetBillByID retrieves a single bill by its ID, without the picture bytes.
func (d *BillDAO) GetBillByID(ctx context.Context, id primitive.ObjectID) (*models.GymBill, error) {
	var bill models.GymBill
	opts := options.FindOne().SetProjection(withoutPicture)
	err := d.billsCollection.FindOne(ctx, bson.M{fields.FieldObjectId: id}, opts).Decode(&bill)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetBillByID: FindOne failed", zap.Error(err), zap.Stringer("id", id))
		return nil, err
	}
	return &bill, nil
}

// ListBills returns every bill, newest first.
func (d *BillDAO) ListBills(ctx context.Context) ([]*models.GymBill, error) {
	bills := make([]*models.GymBill, 0)
	opts := options.Find().
		SetSort(bson.D{{Key: fields.FieldObjectId, Value: -1}}).
		SetProjection(withoutPicture)
	cursor, err := d.billsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		d.logger.Error("ListBills: Find failed", zap.Error(err))
		return nil, err
	}
	if err := cursor.All(ctx, &bills); err != nil {
		d.logger.Error("ListBills: cursor.All failed", zap.Error(err))
		return nil, err
	}
	return bills, nil
}

func (d *BillDAO) MemberIDExists(ctx context.Context, memberID string) (bool, error) {
	n, err := d.billsCollection.CountDocuments(ctx, bson.M{fields.FieldBillMemberID: memberID}, options.Count().SetLimit(1))
	if err != nil {
		d.logger.Error("MemberIDExists: CountDocuments failed", zap.Error(err), zap.String("memberID", memberID))
		return false, err
	}
	return n > 0, nil
}

// ListMemberIDs returns the member id of every bill.
func (d *BillDAO) ListMemberIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{fields.FieldBillMemberID: 1})
	cursor, err := d.billsCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		d.logger.Error("ListMemberIDs: Find failed", zap.Error(err))
		return nil, err
	}
	var rows []struct {
		MemberID string `bson:"member_id"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		d.logger.Error("ListMemberIDs: cursor.All failed", zap.Error(err))
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.MemberID)
	}
	return ids, nil
}

// UpdateBill updates a single bill using functional options, guarded by the
// optimistic version number.
func (d *BillDAO) UpdateBill(ctx context.Context, id primitive.ObjectID, version int64, opts ...repository.UpdateOption) error {
	// 1. Apply all the options to a new UpdateOptions struct.
	updateData := repository.NewUpdateOptions()
	for _, opt := range opts {
		opt(updateData)
	}

	// 2. Construct the MongoDB update document from the options.
	update := bson.M{}
	if len(updateData.SetFields) == 0 && len(updateData.IncFields) == 0 && len(updateData.PushFields) == 0 {
		return nil // Nothing to do.
	}
	if _, ok := updateData.SetFields[fields.FieldUpdatedAt]; !ok {
		updateData.SetFields[fields.FieldUpdatedAt] = time.Now()
	}
	updateData.IncFields[fields.FieldVersion] = 1
	update["$set"] = updateData.SetFields
	update["$inc"] = updateData.IncFields
	if len(updateData.PushFields) > 0 {
		update["$push"] = updateData.PushFields
	}

	// 3. Execute the conditional update.
	filter := bson.M{fields.FieldObjectId: id, fields.FieldVersion: version}
	res, err := d.billsCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		d.logger.Error("UpdateBill: UpdateOne failed", zap.Error(err), zap.Stringer("id", id))
		return err
	}
	if res.MatchedCount == 0 {
		return d.missOrConflict(ctx, id)
	}
	return nil
}

// ReplaceRenewalEntry overwrites one renewal snapshot in place, keeping its id and position.
func (d *BillDAO) ReplaceRenewalEntry(ctx context.Context, id primitive.ObjectID, version int64, entry *models.RenewalEntry) error {
	filter := bson.M{
		fields.FieldObjectId:                    id,
		fields.FieldVersion:                     version,
		fields.FieldBillRenewalHistory + "._id": entry.ID,
	}
	update := bson.M{
		"$set": bson.M{
			fields.FieldBillRenewalHistory + ".$": entry,
			fields.FieldUpdatedAt:                 time.Now(),
		},
		"$inc": bson.M{fields.FieldVersion: 1},
	}
	res, err := d.billsCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		d.logger.Error("ReplaceRenewalEntry: UpdateOne failed", zap.Error(err), zap.Stringer("id", id), zap.Stringer("entryID", entry.ID))
		return err
	}
	if res.MatchedCount == 0 {
		return d.missOrConflict(ctx, id)
	}
	return nil
}

// DeleteRenewalEntry pulls one renewal snapshot. Remaining entries keep their order.
func (d *BillDAO) DeleteRenewalEntry(ctx context.Context, id primitive.ObjectID, version int64, entryID primitive.ObjectID) error {
	filter := bson.M{
		fields.FieldObjectId:                    id,
		fields.FieldVersion:                     version,
		fields.FieldBillRenewalHistory + "._id": entryID,
	}
	update := bson.M{
		"$pull": bson.M{fields.FieldBillRenewalHistory: bson.M{fields.FieldObjectId: entryID}},
		"$set":  bson.M{fields.FieldUpdatedAt: time.Now()},
		"$inc":  bson.M{fields.FieldVersion: 1},
	}
	res, err := d.billsCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		d.logger.Error("DeleteRenewalEntry: UpdateOne failed", zap.Error(err), zap.Stringer("id", id), zap.Stringer("entryID", entryID))
		return err
	}
	if res.MatchedCount == 0 {
		return d.missOrConflict(ctx, id)
	}
	return nil
}

func (d *BillDAO) DeleteBill(ctx context.Context, id primitive.ObjectID) error {
	res, err := d.billsCollection.DeleteOne(ctx, bson.M{fields.FieldObjectId: id})
	if err != nil {
		d.logger.Error("DeleteBill: DeleteOne failed", zap.Error(err), zap.Stringer("id", id))
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetProfilePicture loads only the picture sub-document. A bill without a
// picture is reported as ErrNotFound.
func (d *BillDAO) GetProfilePicture(ctx context.Context, id primitive.ObjectID) (*models.ProfilePicture, error) {
	var doc struct {
		Picture *models.ProfilePicture `bson:"profile_picture"`
	}
	opts := options.FindOne().SetProjection(bson.M{fields.FieldBillPicture: 1})
	err := d.billsCollection.FindOne(ctx, bson.M{fields.FieldObjectId: id}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetProfilePicture: FindOne failed", zap.Error(err), zap.Stringer("id", id))
		return nil, err
	}
	if doc.Picture == nil || len(doc.Picture.Data) == 0 {
		return nil, ErrNotFound
	}
	return doc.Picture, nil
}

// missOrConflict tells a missing document apart from a stale version. A
// renewal entry can only disappear through a write that bumps the version,
// so an unmatched entry on an existing bill is reported as a conflict too.
func (d *BillDAO) missOrConflict(ctx context.Context, id primitive.ObjectID) error {
	n, err := d.billsCollection.CountDocuments(ctx, bson.M{fields.FieldObjectId: id}, options.Count().SetLimit(1))
	if err != nil {
		d.logger.Error("missOrConflict: CountDocuments failed", zap.Error(err), zap.Stringer("id", id))
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrVersionConflict
}
