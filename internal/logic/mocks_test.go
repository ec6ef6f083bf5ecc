package logic

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/repository"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"
)

// --- BillRepository ---

type mockBillRepository struct {
	mock.Mock
}

func newMockBillRepository() *mockBillRepository {
	return &mockBillRepository{}
}

func (m *mockBillRepository) CreateBill(ctx context.Context, bill *models.GymBill) (primitive.ObjectID, error) {
	args := m.Called(ctx, bill)
	if oid := args.Get(0); oid != nil {
		return oid.(primitive.ObjectID), args.Error(1)
	}
	return primitive.NilObjectID, args.Error(1)
}

func (m *mockBillRepository) GetBillByID(ctx context.Context, id primitive.ObjectID) (*models.GymBill, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.(*models.GymBill), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillRepository) ListBills(ctx context.Context) ([]*models.GymBill, error) {
	args := m.Called(ctx)
	if b := args.Get(0); b != nil {
		return b.([]*models.GymBill), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillRepository) MemberIDExists(ctx context.Context, memberID string) (bool, error) {
	args := m.Called(ctx, memberID)
	return args.Bool(0), args.Error(1)
}

func (m *mockBillRepository) ListMemberIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if ids := args.Get(0); ids != nil {
		return ids.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBillRepository) UpdateBill(ctx context.Context, id primitive.ObjectID, version int64, opts ...repository.UpdateOption) error {
	args := m.Called(ctx, id, version, opts)
	return args.Error(0)
}

func (m *mockBillRepository) ReplaceRenewalEntry(ctx context.Context, id primitive.ObjectID, version int64, entry *models.RenewalEntry) error {
	args := m.Called(ctx, id, version, entry)
	return args.Error(0)
}

func (m *mockBillRepository) DeleteRenewalEntry(ctx context.Context, id primitive.ObjectID, version int64, entryID primitive.ObjectID) error {
	args := m.Called(ctx, id, version, entryID)
	return args.Error(0)
}

func (m *mockBillRepository) DeleteBill(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockBillRepository) GetProfilePicture(ctx context.Context, id primitive.ObjectID) (*models.ProfilePicture, error) {
	args := m.Called(ctx, id)
	if p := args.Get(0); p != nil {
		return p.(*models.ProfilePicture), args.Error(1)
	}
	return nil, args.Error(1)
}

// --- CounterRepository ---

type mockCounterRepository struct {
	mock.Mock
}

func newMockCounterRepository() *mockCounterRepository {
	return &mockCounterRepository{}
}

func (m *mockCounterRepository) Seed(ctx context.Context, name string, atLeast int64) error {
	args := m.Called(ctx, name, atLeast)
	return args.Error(0)
}

func (m *mockCounterRepository) Next(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCounterRepository) Current(ctx context.Context, name string) (int64, bool, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

// --- FollowupRepository ---

type mockFollowupRepository struct {
	mock.Mock
}

func newMockFollowupRepository() *mockFollowupRepository {
	return &mockFollowupRepository{}
}

func (m *mockFollowupRepository) Create(ctx context.Context, f *models.Followup) (primitive.ObjectID, error) {
	args := m.Called(ctx, f)
	return f.ID, args.Error(0)
}

func (m *mockFollowupRepository) List(ctx context.Context, offset, limit int) ([]*models.Followup, int64, error) {
	args := m.Called(ctx, offset, limit)
	var items []*models.Followup
	if v := args.Get(0); v != nil {
		items = v.([]*models.Followup)
	}
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *mockFollowupRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Followup, error) {
	args := m.Called(ctx, id, status)
	if f := args.Get(0); f != nil {
		return f.(*models.Followup), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFollowupRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- AuditLogRepository ---

type mockAuditLogRepository struct {
	mock.Mock
}

func newMockAuditLogRepository() *mockAuditLogRepository {
	return &mockAuditLogRepository{}
}

func (m *mockAuditLogRepository) Create(ctx context.Context, log *models.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// --- OutboxRepository ---

type mockOutboxRepository struct {
	mock.Mock
}

func newMockOutboxRepository() *mockOutboxRepository {
	return &mockOutboxRepository{}
}

func (m *mockOutboxRepository) Create(ctx context.Context, message *models.OutboxMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockOutboxRepository) ClaimAndFetchEvents(ctx context.Context, limit int) ([]*models.OutboxMessage, error) {
	panic("not implemented")
}

func (m *mockOutboxRepository) MarkAsProcessed(ctx context.Context, id primitive.ObjectID) error {
	panic("not implemented")
}

func (m *mockOutboxRepository) IncrementRetry(ctx context.Context, msg *models.OutboxMessage, errorMessage string, maxRetries int) error {
	panic("not implemented")
}

// appliedUpdate folds functional update options the way the DAO does.
func appliedUpdate(opts []repository.UpdateOption) *repository.UpdateOptions {
	u := repository.NewUpdateOptions()
	for _, opt := range opts {
		opt(u)
	}
	return u
}
