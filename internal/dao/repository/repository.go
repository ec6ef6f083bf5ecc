package repository

import (
	"context"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BillRepository interface {
	CreateBill(ctx context.Context, bill *models.GymBill) (primitive.ObjectID, error)
	GetBillByID(ctx context.Context, id primitive.ObjectID) (*models.GymBill, error)
	ListBills(ctx context.Context) ([]*models.GymBill, error)
	MemberIDExists(ctx context.Context, memberID string) (bool, error)
	ListMemberIDs(ctx context.Context) ([]string, error)
	// UpdateBill applies opts only if the stored version still equals version,
	// and bumps the version on success.
	UpdateBill(ctx context.Context, id primitive.ObjectID, version int64, opts ...UpdateOption) error
	// ReplaceRenewalEntry and DeleteRenewalEntry are version-guarded like UpdateBill.
	ReplaceRenewalEntry(ctx context.Context, id primitive.ObjectID, version int64, entry *models.RenewalEntry) error
	DeleteRenewalEntry(ctx context.Context, id primitive.ObjectID, version int64, entryID primitive.ObjectID) error
	DeleteBill(ctx context.Context, id primitive.ObjectID) error
	GetProfilePicture(ctx context.Context, id primitive.ObjectID) (*models.ProfilePicture, error)
}

// CounterRepository provides named, atomically incremented sequences.
type CounterRepository interface {
	Seed(ctx context.Context, name string, atLeast int64) error
	Next(ctx context.Context, name string) (int64, error)
	Current(ctx context.Context, name string) (int64, bool, error)
}

type FollowupRepository interface {
	Create(ctx context.Context, f *models.Followup) (primitive.ObjectID, error)
	List(ctx context.Context, offset, limit int) ([]*models.Followup, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Followup, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

type OutboxRepository interface {
	Create(ctx context.Context, message *models.OutboxMessage) error
	ClaimAndFetchEvents(ctx context.Context, limit int) ([]*models.OutboxMessage, error)
	MarkAsProcessed(ctx context.Context, id primitive.ObjectID) error
	IncrementRetry(ctx context.Context, msg *models.OutboxMessage, errorMessage string, maxRetries int) error
}
