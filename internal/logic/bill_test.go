package logic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/fields"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/mongodb"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/repository"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/db"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dto"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"
	"github.com/thirusolai/gym-backend-h4fitness2/pkg/snowflake"
)

const (
	testBillTopic     = "bill.events"
	testFollowupTopic = "followup.create"
)

type billFixture struct {
	logic    *BillLogic
	bills    *mockBillRepository
	counters *mockCounterRepository
	audits   *mockAuditLogRepository
	outbox   *mockOutboxRepository
}

func newBillFixture(t *testing.T) *billFixture {
	t.Helper()
	gen, err := snowflake.NewGenerator(1)
	require.NoError(t, err)

	f := &billFixture{
		bills:    newMockBillRepository(),
		counters: newMockCounterRepository(),
		audits:   newMockAuditLogRepository(),
		outbox:   newMockOutboxRepository(),
	}
	allocator := NewMemberIDAllocator(f.bills, f.counters, MemberIDFormat{}, zap.NewNop())
	allocator.seeded = true
	publisher := NewEventPublisher(f.outbox, testBillTopic, testFollowupTopic)
	f.logic = NewBillLogic(f.bills, f.audits, allocator, publisher, db.NewNoOpTransactionManager(), gen, BalanceStrategyIntake, nil, zap.NewNop())
	return f
}

func amt(v float64) *dto.Amount {
	a := dto.Amount(decimal.NewFromFloat(v))
	return &a
}

// assertAmount compares a stored amount by its decimal string.
func assertAmount(t *testing.T, want string, got interface{}) {
	t.Helper()
	d, ok := got.(models.Decimal)
	require.True(t, ok, "got %T", got)
	assert.Equal(t, want, d.String())
}

func onTopic(topic string) interface{} {
	return mock.MatchedBy(func(m *models.OutboxMessage) bool { return m.Topic == topic })
}

// storedBill is the intake scenario after creation: 1000 + 200 - 100 - 300 = 800.
func storedBill() *models.GymBill {
	active := models.ActivePeriod{
		Package:          "Quarterly",
		JoiningDate:      "2024-01-01",
		EndDate:          "2024-03-31",
		Price:            models.MustDecimal("1000"),
		AdmissionCharges: models.MustDecimal("200"),
		DiscountAmount:   models.MustDecimal("100"),
		AmountPayable:    models.MustDecimal("1100"),
		AmountPaid:       models.MustDecimal("300"),
		Balance:          models.MustDecimal("800"),
		PaymentMode:      "cash",
	}
	return &models.GymBill{
		ID:             primitive.NewObjectID(),
		MemberID:       "12",
		Profile:        models.Profile{Client: "Asha", ContactNumber: "9800000000"},
		Active:         active,
		Status:         "Active",
		PaymentHistory: []models.PaymentEntry{},
		RenewalHistory: []models.RenewalEntry{snapshotPeriod(active, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))},
		BalanceHistory: []models.BalanceEntry{},
		Version:        3,
	}
}

func TestBillLogic_CreateBill(t *testing.T) {
	ctx := context.Background()

	t.Run("intake computes balance and seeds renewal history", func(t *testing.T) {
		f := newBillFixture(t)
		var created *models.GymBill
		f.counters.On("Next", mock.Anything, memberIDSequence).Return(int64(13), nil).Once()
		f.bills.On("CreateBill", mock.Anything, mock.AnythingOfType("*models.GymBill")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*models.GymBill) }).
			Return(primitive.NewObjectID(), nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, onTopic(testBillTopic)).Return(nil).Once()

		bill, err := f.logic.CreateBill(ctx, &dto.CreateBillRequest{
			Client:             "Asha",
			ContactNumber:      "9800000000",
			InitialPaymentMode: "upi",
			Status:             "whatever",
			PeriodFields: dto.PeriodFields{
				Package:          "Quarterly",
				Price:            amt(1000),
				AdmissionCharges: amt(200),
				DiscountAmount:   amt(100),
				AmountPaid:       amt(300),
			},
		})
		require.NoError(t, err)

		assert.Equal(t, "13", bill.MemberID)
		assert.Equal(t, "Active", bill.Status)
		assertAmount(t, "800", bill.Active.Balance)
		assertAmount(t, "300", bill.Active.AmountPaid)
		assert.Equal(t, int64(1), bill.Version)
		assert.Empty(t, bill.PaymentHistory)
		require.Len(t, bill.RenewalHistory, 1)
		assertAmount(t, "800", bill.RenewalHistory[0].Balance)
		assertAmount(t, "300", bill.RenewalHistory[0].AmountPaid)
		assert.Equal(t, "upi", bill.RenewalHistory[0].ModeOfPayment)
		assert.Same(t, created, bill)

		f.bills.AssertExpectations(t)
		f.outbox.AssertExpectations(t)
	})

	t.Run("explicit duplicate member id is rejected without insert", func(t *testing.T) {
		f := newBillFixture(t)
		f.bills.On("MemberIDExists", mock.Anything, "7").Return(true, nil).Once()

		_, err := f.logic.CreateBill(ctx, &dto.CreateBillRequest{MemberID: "7", Client: "Ravi"})
		require.ErrorIs(t, err, ErrDuplicateMemberID)
		f.bills.AssertNotCalled(t, "CreateBill", mock.Anything, mock.Anything)
		f.outbox.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique index race maps to duplicate", func(t *testing.T) {
		f := newBillFixture(t)
		f.counters.On("Next", mock.Anything, memberIDSequence).Return(int64(5), nil).Once()
		f.bills.On("CreateBill", mock.Anything, mock.Anything).Return(nil, mongodb.ErrDuplicateKey).Once()

		_, err := f.logic.CreateBill(ctx, &dto.CreateBillRequest{Client: "Ravi"})
		require.ErrorIs(t, err, ErrDuplicateMemberID)
	})

	t.Run("client is required", func(t *testing.T) {
		f := newBillFixture(t)
		_, err := f.logic.CreateBill(ctx, &dto.CreateBillRequest{Client: "  "})
		require.ErrorIs(t, err, ErrInvalidInput)
		f.counters.AssertNotCalled(t, "Next", mock.Anything, mock.Anything)
	})

	t.Run("audit failure does not fail the create", func(t *testing.T) {
		f := newBillFixture(t)
		f.counters.On("Next", mock.Anything, memberIDSequence).Return(int64(1), nil).Once()
		f.bills.On("CreateBill", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(errors.New("audit down")).Once()
		f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.logic.CreateBill(ctx, &dto.CreateBillRequest{Client: "Ravi"})
		require.NoError(t, err)
	})
}

func TestBillLogic_RecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the increment and recomputes balance", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		var opts []repository.UpdateOption
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("UpdateBill", mock.Anything, bill.ID, int64(3), mock.Anything).
			Run(func(args mock.Arguments) { opts = args.Get(3).([]repository.UpdateOption) }).
			Return(nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, onTopic(testBillTopic)).Return(nil).Once()

		_, err := f.logic.RecordPayment(ctx, &dto.RecordPaymentRequest{
			ID:         bill.ID,
			AmountPaid: amt(500),
			Balance:    amt(600),
			Mode:       "cash",
		})
		require.NoError(t, err)

		u := appliedUpdate(opts)
		entry, ok := u.PushFields[fields.FieldBillPaymentHistory].(models.PaymentEntry)
		require.True(t, ok)
		assertAmount(t, "200", entry.Amount)
		assert.Equal(t, "cash", entry.Mode)
		assert.NotZero(t, entry.ReceiptNo)
		assertAmount(t, "500", u.SetFields[fields.FieldBillActive+".amount_paid"])
		assertAmount(t, "600", u.SetFields[fields.FieldBillActive+".balance"])

		change, ok := u.PushFields[fields.FieldBillBalanceHistory].(models.BalanceEntry)
		require.True(t, ok)
		assertAmount(t, "800", change.PreviousBalance)
		assertAmount(t, "600", change.NewBalance)
		assertAmount(t, "-200", change.Change)

		f.outbox.AssertNotCalled(t, "Create", mock.Anything, onTopic(testFollowupTopic))
	})

	t.Run("mismatched balance is rejected", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)

		_, err := f.logic.RecordPayment(ctx, &dto.RecordPaymentRequest{
			ID:         bill.ID,
			AmountPaid: amt(500),
			Balance:    amt(100),
		})
		require.ErrorIs(t, err, ErrInvalidInput)
		f.bills.AssertNotCalled(t, "UpdateBill", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing amount is rejected", func(t *testing.T) {
		f := newBillFixture(t)
		_, err := f.logic.RecordPayment(ctx, &dto.RecordPaymentRequest{ID: primitive.NewObjectID()})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("follow-up date requests a follow-up", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		var followup *models.OutboxMessage
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("UpdateBill", mock.Anything, bill.ID, int64(3), mock.Anything).Return(nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, onTopic(testBillTopic)).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, onTopic(testFollowupTopic)).
			Run(func(args mock.Arguments) { followup = args.Get(1).(*models.OutboxMessage) }).
			Return(nil).Once()

		_, err := f.logic.RecordPayment(ctx, &dto.RecordPaymentRequest{
			ID:           bill.ID,
			AmountPaid:   amt(500),
			FollowUpDate: "2024-02-01",
			Operator:     &models.User{UserId: primitive.NewObjectID(), Name: "Front Desk"},
		})
		require.NoError(t, err)
		require.NotNil(t, followup)
		assert.Contains(t, followup.Payload, `"record_reference":"`+bill.ID.Hex()+`"`)
		assert.Contains(t, followup.Payload, `"schedule_date":"2024-02-01"`)
		assert.Contains(t, followup.Payload, `"type":"Payment"`)
		assert.Contains(t, followup.Payload, `"created_by":"Front Desk"`)
		f.outbox.AssertExpectations(t)
	})

	t.Run("follow-up failure does not fail the payment", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("UpdateBill", mock.Anything, bill.ID, int64(3), mock.Anything).Return(nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, onTopic(testBillTopic)).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, onTopic(testFollowupTopic)).Return(errors.New("outbox down")).Once()

		got, err := f.logic.RecordPayment(ctx, &dto.RecordPaymentRequest{
			ID:           bill.ID,
			AmountPaid:   amt(500),
			FollowUpDate: "2024-02-01",
		})
		require.NoError(t, err)
		assert.NotNil(t, got)
	})

	t.Run("concurrent modification surfaces as version conflict", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("UpdateBill", mock.Anything, bill.ID, int64(3), mock.Anything).Return(mongodb.ErrVersionConflict).Once()

		_, err := f.logic.RecordPayment(ctx, &dto.RecordPaymentRequest{ID: bill.ID, AmountPaid: amt(500)})
		require.ErrorIs(t, err, ErrVersionConflict)
		f.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.outbox.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestBillLogic_RenewBill(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	bill := storedBill()
	previous := bill.Active
	var opts []repository.UpdateOption
	f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
	f.bills.On("UpdateBill", mock.Anything, bill.ID, int64(3), mock.Anything).
		Run(func(args mock.Arguments) { opts = args.Get(3).([]repository.UpdateOption) }).
		Return(nil).Once()
	f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.outbox.On("Create", mock.Anything, onTopic(testBillTopic)).Return(nil).Once()

	_, err := f.logic.RenewBill(ctx, &dto.RenewBillRequest{
		ID:            bill.ID,
		ModeOfPayment: "card",
		PeriodFields: dto.PeriodFields{
			Package:     "Annual",
			JoiningDate: "2024-04-01",
			EndDate:     "2025-03-31",
			Price:       amt(5000),
			AmountPaid:  amt(1000),
		},
	})
	require.NoError(t, err)

	u := appliedUpdate(opts)
	snapshot, ok := u.PushFields[fields.FieldBillRenewalHistory].(models.RenewalEntry)
	require.True(t, ok)
	assert.Equal(t, previous.Package, snapshot.Package)
	assert.Equal(t, previous.JoiningDate, snapshot.JoiningDate)
	assert.Equal(t, previous.EndDate, snapshot.EndDate)
	assert.Equal(t, previous.Price, snapshot.Price)
	assert.Equal(t, previous.AmountPaid, snapshot.AmountPaid)
	assert.Equal(t, previous.Balance, snapshot.Balance)
	assert.Equal(t, previous.PaymentMode, snapshot.ModeOfPayment)

	next, ok := u.SetFields[fields.FieldBillActive].(models.ActivePeriod)
	require.True(t, ok)
	assert.Equal(t, "Annual", next.Package)
	assertAmount(t, "4000", next.Balance)
	assert.Equal(t, "card", next.PaymentMode)
	assert.Equal(t, "Active", u.SetFields[fields.FieldStatus])
}

func TestBillLogic_UpdateBill(t *testing.T) {
	ctx := context.Background()

	t.Run("status is sanitised and billing recomputed", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		var opts []repository.UpdateOption
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("UpdateBill", mock.Anything, bill.ID, int64(3), mock.Anything).
			Run(func(args mock.Arguments) { opts = args.Get(3).([]repository.UpdateOption) }).
			Return(nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		client := "Asha K"
		_, err := f.logic.UpdateBill(ctx, &dto.UpdateBillRequest{
			ID:     bill.ID,
			Client: &client,
			Status: "Suspended",
			Price:  amt(1200),
		})
		require.NoError(t, err)

		u := appliedUpdate(opts)
		assert.Equal(t, "Active", u.SetFields[fields.FieldStatus])
		profile := u.SetFields[fields.FieldBillProfile].(models.Profile)
		assert.Equal(t, "Asha K", profile.Client)
		assert.Equal(t, "9800000000", profile.ContactNumber)
		active := u.SetFields[fields.FieldBillActive].(models.ActivePeriod)
		assertAmount(t, "1000", active.Balance)
		change := u.PushFields[fields.FieldBillBalanceHistory].(models.BalanceEntry)
		assertAmount(t, "200", change.Change)
	})

	t.Run("inactive status is kept", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		var opts []repository.UpdateOption
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("UpdateBill", mock.Anything, bill.ID, int64(3), mock.Anything).
			Run(func(args mock.Arguments) { opts = args.Get(3).([]repository.UpdateOption) }).
			Return(nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.logic.UpdateBill(ctx, &dto.UpdateBillRequest{ID: bill.ID, Status: "Inactive"})
		require.NoError(t, err)

		u := appliedUpdate(opts)
		assert.Equal(t, "Inactive", u.SetFields[fields.FieldStatus])
		assert.NotContains(t, u.PushFields, fields.FieldBillBalanceHistory)
	})

	t.Run("paid total edit is booked as a payment", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		var opts []repository.UpdateOption
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("UpdateBill", mock.Anything, bill.ID, int64(3), mock.Anything).
			Run(func(args mock.Arguments) { opts = args.Get(3).([]repository.UpdateOption) }).
			Return(nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.logic.UpdateBill(ctx, &dto.UpdateBillRequest{ID: bill.ID, AmountPaid: amt(100)})
		require.NoError(t, err)

		u := appliedUpdate(opts)
		active := u.SetFields[fields.FieldBillActive].(models.ActivePeriod)
		assertAmount(t, "100", active.AmountPaid)
		assertAmount(t, "1000", active.Balance)

		entry, ok := u.PushFields[fields.FieldBillPaymentHistory].(models.PaymentEntry)
		require.True(t, ok, "a changed paid total must add a payment entry")
		assertAmount(t, "-200", entry.Amount)
		assert.Equal(t, paymentNoteBillEdit, entry.Note)
		assert.Equal(t, "cash", entry.Mode)
		assert.NotZero(t, entry.ReceiptNo)

		// Intake paid plus every payment entry still equals the active paid total.
		total := decimal.NewFromInt(300).Add(entry.Amount.Decimal())
		assert.True(t, total.Equal(active.AmountPaid.Decimal()))

		change := u.PushFields[fields.FieldBillBalanceHistory].(models.BalanceEntry)
		assertAmount(t, "200", change.Change)
	})

	t.Run("unchanged paid total adds no payment", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		var opts []repository.UpdateOption
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("UpdateBill", mock.Anything, bill.ID, int64(3), mock.Anything).
			Run(func(args mock.Arguments) { opts = args.Get(3).([]repository.UpdateOption) }).
			Return(nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.logic.UpdateBill(ctx, &dto.UpdateBillRequest{ID: bill.ID, AmountPaid: amt(300)})
		require.NoError(t, err)

		u := appliedUpdate(opts)
		assert.NotContains(t, u.PushFields, fields.FieldBillPaymentHistory)
		assert.NotContains(t, u.PushFields, fields.FieldBillBalanceHistory)
	})

	t.Run("member id cannot change", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)

		other := "99"
		_, err := f.logic.UpdateBill(ctx, &dto.UpdateBillRequest{ID: bill.ID, MemberID: &other})
		require.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("unknown bill", func(t *testing.T) {
		f := newBillFixture(t)
		id := primitive.NewObjectID()
		f.bills.On("GetBillByID", mock.Anything, id).Return(nil, mongodb.ErrNotFound)

		_, err := f.logic.UpdateBill(ctx, &dto.UpdateBillRequest{ID: id})
		require.ErrorIs(t, err, ErrBillNotFound)
	})
}

func TestBillLogic_Renewals(t *testing.T) {
	ctx := context.Background()

	t.Run("edit keeps the entry id and derives balance", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		entryID := bill.RenewalHistory[0].ID
		var replaced *models.RenewalEntry
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("ReplaceRenewalEntry", mock.Anything, bill.ID, int64(3), mock.Anything).
			Run(func(args mock.Arguments) { replaced = args.Get(3).(*models.RenewalEntry) }).
			Return(nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.logic.EditRenewal(ctx, &dto.EditRenewalRequest{
			ID:         bill.ID,
			RenewalID:  entryID,
			Package:    "Quarterly",
			Price:      amt(900),
			AmountPaid: amt(400),
		})
		require.NoError(t, err)
		require.NotNil(t, replaced)
		assert.Equal(t, entryID, replaced.ID)
		assertAmount(t, "500", replaced.Balance)
	})

	t.Run("edit of unknown entry", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)

		_, err := f.logic.EditRenewal(ctx, &dto.EditRenewalRequest{ID: bill.ID, RenewalID: primitive.NewObjectID()})
		require.ErrorIs(t, err, ErrRenewalNotFound)
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		entryID := bill.RenewalHistory[0].ID
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("DeleteRenewalEntry", mock.Anything, bill.ID, int64(3), entryID).Return(nil).Once()
		f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		f.outbox.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		_, err := f.logic.DeleteRenewal(ctx, &dto.DeleteRenewalRequest{ID: bill.ID, RenewalID: entryID})
		require.NoError(t, err)
		f.bills.AssertExpectations(t)
	})

	t.Run("delete after the bill is gone", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		entryID := bill.RenewalHistory[0].ID
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("DeleteRenewalEntry", mock.Anything, bill.ID, int64(3), entryID).Return(mongodb.ErrNotFound).Once()

		_, err := f.logic.DeleteRenewal(ctx, &dto.DeleteRenewalRequest{ID: bill.ID, RenewalID: entryID})
		require.ErrorIs(t, err, ErrBillNotFound)
	})

	t.Run("edit against a stale version conflicts", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		entryID := bill.RenewalHistory[0].ID
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("ReplaceRenewalEntry", mock.Anything, bill.ID, int64(3), mock.Anything).
			Return(mongodb.ErrVersionConflict).Once()

		_, err := f.logic.EditRenewal(ctx, &dto.EditRenewalRequest{ID: bill.ID, RenewalID: entryID, Price: amt(900)})
		require.ErrorIs(t, err, ErrVersionConflict)
		f.audits.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.outbox.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("delete against a stale version conflicts", func(t *testing.T) {
		f := newBillFixture(t)
		bill := storedBill()
		entryID := bill.RenewalHistory[0].ID
		f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil)
		f.bills.On("DeleteRenewalEntry", mock.Anything, bill.ID, int64(3), entryID).
			Return(mongodb.ErrVersionConflict).Once()

		_, err := f.logic.DeleteRenewal(ctx, &dto.DeleteRenewalRequest{ID: bill.ID, RenewalID: entryID})
		require.ErrorIs(t, err, ErrVersionConflict)
	})
}

func TestBillLogic_DeleteBill(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	bill := storedBill()
	f.bills.On("GetBillByID", mock.Anything, bill.ID).Return(bill, nil).Once()
	f.bills.On("DeleteBill", mock.Anything, bill.ID).Return(nil).Once()
	f.audits.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	f.outbox.On("Create", mock.Anything, onTopic(testBillTopic)).Return(nil).Once()

	require.NoError(t, f.logic.DeleteBill(ctx, &dto.DeleteBillRequest{ID: bill.ID}))
	f.bills.AssertExpectations(t)
}

func TestBillLogic_GetProfilePicture(t *testing.T) {
	ctx := context.Background()
	f := newBillFixture(t)
	id := primitive.NewObjectID()
	f.bills.On("GetProfilePicture", mock.Anything, id).Return(nil, mongodb.ErrNotFound).Once()

	_, err := f.logic.GetProfilePicture(ctx, id)
	require.ErrorIs(t, err, ErrImageNotFound)
}
