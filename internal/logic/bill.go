package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/constants"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/mongodb"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/repository"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/db"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dto"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/helper"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/metrics"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/models"
	"github.com/thirusolai/gym-backend-h4fitness2/pkg/snowflake"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// BillLogic is the only entry point to bill state. Every write after intake is
// conditional on the version read at the start of the operation.
type BillLogic struct {
	billRepo     repository.BillRepository
	auditLogRepo repository.AuditLogRepository
	allocator    *MemberIDAllocator
	publisher    *EventPublisher
	txManager    db.TransactionManager
	receipts     *snowflake.Generator
	strategy     BalanceStrategy
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

func NewBillLogic(
	billRepo repository.BillRepository,
	auditLogRepo repository.AuditLogRepository,
	allocator *MemberIDAllocator,
	publisher *EventPublisher,
	txManager db.TransactionManager,
	receipts *snowflake.Generator,
	strategy BalanceStrategy,
	m *metrics.Metrics,
	logger *zap.Logger,
) *BillLogic {
	return &BillLogic{
		billRepo:     billRepo,
		auditLogRepo: auditLogRepo,
		allocator:    allocator,
		publisher:    publisher,
		txManager:    txManager,
		receipts:     receipts,
		strategy:     strategy,
		metrics:      m,
		logger:       logger.Named("BillLogic"),
	}
}

// CreateBill registers a new member. The intake period is stored as the
// active period and also as the first renewal history entry; no payment entry
// is written for the intake amount.
func (l *BillLogic) CreateBill(ctx context.Context, req *dto.CreateBillRequest) (*models.GymBill, error) {
	if strings.TrimSpace(req.Client) == "" {
		return nil, fmt.Errorf("%w: client is required", ErrInvalidInput)
	}

	// 1. Member id: explicit ids are only checked for uniqueness.
	var (
		memberID string
		err      error
	)
	if strings.TrimSpace(req.MemberID) != "" {
		memberID, err = l.allocator.Reserve(ctx, req.MemberID)
	} else {
		memberID, err = l.allocator.Next(ctx)
	}
	if err != nil {
		return nil, err
	}

	// 2. Build the record.
	now := time.Now()
	active := buildPeriod(&req.PeriodFields, req.InitialPaymentMode, l.strategy)
	bill := &models.GymBill{
		ID:             primitive.NewObjectID(),
		MemberID:       memberID,
		Profile:        req.Profile(),
		Active:         active,
		Status:         constants.SanitizeBillStatus(req.Status).String(),
		PaymentHistory: []models.PaymentEntry{},
		RenewalHistory: []models.RenewalEntry{snapshotPeriod(active, now)},
		BalanceHistory: []models.BalanceEntry{},
		ProfilePicture: req.Picture,
		HasPicture:     req.Picture != nil,
		Version:        1,
		CreatedBy:      req.Operator,
		UpdatedBy:      req.Operator,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// 3. Insert, audit and announce atomically.
	_, err = l.txManager.WithTransaction(ctx, func(sessCtx context.Context) (interface{}, error) {
		if _, err := l.billRepo.CreateBill(sessCtx, bill); err != nil {
			if isDuplicateMemberID(err) {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateMemberID, memberID)
			}
			return nil, fmt.Errorf("failed to create bill: %w", err)
		}
		l.audit(sessCtx, "CreateBill", buildCreateBillAuditLog(req.Operator, bill))
		if err := l.publisher.PublishBillEvent(sessCtx, constants.BillEventCreated, bill, decimal.Zero); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	l.metrics.BillCreated()
	l.logger.Info("Bill created", zap.String("memberID", memberID), zap.Stringer("id", bill.ID))

	bill.ProfilePicture = nil
	return bill, nil
}

func (l *BillLogic) GetBill(ctx context.Context, id primitive.ObjectID) (*models.GymBill, error) {
	bill, err := l.billRepo.GetBillByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// ListBills returns all bills, newest first.
func (l *BillLogic) ListBills(ctx context.Context) ([]*models.GymBill, error) {
	bills, err := l.billRepo.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// NextMemberID is advisory; a concurrent create may take the returned id.
func (l *BillLogic) NextMemberID(ctx context.Context) (string, error) {
	return l.allocator.Peek(ctx)
}

func (l *BillLogic) GetProfilePicture(ctx context.Context, id primitive.ObjectID) (*models.ProfilePicture, error) {
	pic, err := l.billRepo.GetProfilePicture(ctx, id)
	if err != nil {
		if errors.Is(err, mongodb.ErrNotFound) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("failed to get profile picture: %w", err)
	}
	return pic, nil
}

// UpdateBill applies a partial patch. Billing amounts are recomputed whenever
// one of their inputs is part of the patch, and the status is always re-sanitised.
func (l *BillLogic) UpdateBill(ctx context.Context, req *dto.UpdateBillRequest) (*models.GymBill, error) {
	before, err := l.GetBill(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if req.MemberID != nil && strings.TrimSpace(*req.MemberID) != before.MemberID {
		return nil, fmt.Errorf("%w: member id cannot be changed", ErrInvalidInput)
	}

	now := time.Now()
	after := *before
	applyProfilePatch(&after.Profile, req)
	applyPeriodPatch(&after.Active, req)
	after.Status = constants.SanitizeBillStatus(req.Status).String()

	opts := []repository.UpdateOption{
		repository.WithProfile(after.Profile),
		repository.WithStatus(after.Status),
		repository.WithUpdatedBy(req.Operator),
	}
	var correction *models.PaymentEntry
	if req.TouchesBilling() {
		in := billingInputOf(after.Active)
		if req.AmountPaid != nil {
			in.AmountPaid = helper.RoundMoney(req.AmountPaid.Decimal())
		}
		res := ComputeBilling(in, l.strategy)
		after.Active.AmountPaid = models.NewDecimal(in.AmountPaid)
		after.Active.DiscountAmount = models.NewDecimal(res.DiscountAmount)
		after.Active.Tax = models.NewDecimal(res.TaxAmount)
		after.Active.AmountPayable = models.NewDecimal(res.AmountPayable)
		after.Active.Balance = models.NewDecimal(res.Balance)

		// A changed paid total is booked as a payment so the history keeps adding up.
		if delta := in.AmountPaid.Sub(before.Active.AmountPaid.Decimal()); !delta.IsZero() {
			receiptNo, err := l.receipts.GetID()
			if err != nil {
				return nil, fmt.Errorf("failed to generate receipt number: %w", err)
			}
			entry := newPaymentEntry(delta, receiptNo, after.Active.PaymentMode, paymentNoteBillEdit, now)
			correction = &entry
			opts = append(opts, repository.WithPushPayment(entry))
		}
		if !helper.MoneyEqual(before.Active.Balance.Decimal(), res.Balance) {
			opts = append(opts, repository.WithPushBalance(
				balanceChange(before.Active.Balance.Decimal(), res.Balance, constants.BalanceReasonEdit, now)))
		}
	}
	opts = append(opts, repository.WithActivePeriod(after.Active))
	if req.Picture != nil {
		opts = append(opts, repository.WithProfilePicture(req.Picture))
		after.HasPicture = true
	}

	err = l.commit(ctx, "UpdateBill", before, opts, func(sessCtx context.Context) error {
		l.audit(sessCtx, "UpdateBill", buildUpdateBillAuditLog(req.Operator, before, &after))
		return l.publisher.PublishBillEvent(sessCtx, constants.BillEventUpdated, &after, decimal.Zero)
	})
	if err != nil {
		return nil, err
	}
	if correction != nil {
		l.metrics.PaymentRecorded(correction.Amount.Float64())
	}
	return l.GetBill(ctx, req.ID)
}

// RenewBill closes the active period into the renewal history and installs
// the new one in a single conditional write.
func (l *BillLogic) RenewBill(ctx context.Context, req *dto.RenewBillRequest) (*models.GymBill, error) {
	bill, err := l.GetBill(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	previous := bill.Active
	snapshot := snapshotPeriod(previous, now)
	next := buildPeriod(&req.PeriodFields, req.ModeOfPayment, l.strategy)

	opts := []repository.UpdateOption{
		repository.WithPushRenewal(snapshot),
		repository.WithActivePeriod(next),
		repository.WithStatus(constants.BillStatusActive.String()),
		repository.WithPushBalance(balanceChange(previous.Balance.Decimal(), next.Balance.Decimal(), constants.BalanceReasonRenewal, now)),
		repository.WithUpdatedBy(req.Operator),
	}
	renewed := *bill
	renewed.Active = next
	renewed.Status = constants.BillStatusActive.String()

	err = l.commit(ctx, "RenewBill", bill, opts, func(sessCtx context.Context) error {
		l.audit(sessCtx, "RenewBill", buildRenewBillAuditLog(req.Operator, bill, previous, next))
		return l.publisher.PublishBillEvent(sessCtx, constants.BillEventRenewed, &renewed, decimal.Zero)
	})
	if err != nil {
		return nil, err
	}

	l.metrics.Renewed()
	return l.GetBill(ctx, req.ID)
}

// EditRenewal replaces one renewal history entry in place.
func (l *BillLogic) EditRenewal(ctx context.Context, req *dto.EditRenewalRequest) (*models.GymBill, error) {
	bill, err := l.GetBill(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	existing, ok := findRenewal(bill, req.RenewalID)
	if !ok {
		return nil, ErrRenewalNotFound
	}
	replacement := editedRenewal(req, *existing, l.strategy)

	_, err = l.txManager.WithTransaction(ctx, func(sessCtx context.Context) (interface{}, error) {
		if err := l.billRepo.ReplaceRenewalEntry(sessCtx, bill.ID, bill.Version, &replacement); err != nil {
			return nil, renewalWriteError("replace", err)
		}
		l.audit(sessCtx, "EditRenewal", buildEditRenewalAuditLog(req.Operator, bill, existing, &replacement))
		return nil, l.publisher.PublishBillEvent(sessCtx, constants.BillEventUpdated, bill, decimal.Zero)
	})
	if err != nil {
		l.noteConflict("EditRenewal", bill, err)
		return nil, err
	}
	return l.GetBill(ctx, req.ID)
}

// DeleteRenewal removes one renewal history entry; the others keep their order.
func (l *BillLogic) DeleteRenewal(ctx context.Context, req *dto.DeleteRenewalRequest) (*models.GymBill, error) {
	bill, err := l.GetBill(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	removed, ok := findRenewal(bill, req.RenewalID)
	if !ok {
		return nil, ErrRenewalNotFound
	}

	_, err = l.txManager.WithTransaction(ctx, func(sessCtx context.Context) (interface{}, error) {
		if err := l.billRepo.DeleteRenewalEntry(sessCtx, bill.ID, bill.Version, req.RenewalID); err != nil {
			return nil, renewalWriteError("delete", err)
		}
		l.audit(sessCtx, "DeleteRenewal", buildDeleteRenewalAuditLog(req.Operator, bill, removed))
		return nil, l.publisher.PublishBillEvent(sessCtx, constants.BillEventUpdated, bill, decimal.Zero)
	})
	if err != nil {
		l.noteConflict("DeleteRenewal", bill, err)
		return nil, err
	}
	return l.GetBill(ctx, req.ID)
}

// RecordPayment stores the increment between the submitted running total and
// the recorded one. A follow-up date schedules a payment follow-up; failing
// to schedule it does not undo the payment.
func (l *BillLogic) RecordPayment(ctx context.Context, req *dto.RecordPaymentRequest) (*models.GymBill, error) {
	if req.AmountPaid == nil {
		return nil, fmt.Errorf("%w: amountPaid is required", ErrInvalidInput)
	}
	bill, err := l.GetBill(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	receiptNo, err := l.receipts.GetID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt number: %w", err)
	}

	var claimed *decimal.Decimal
	if req.Balance != nil {
		v := req.Balance.Decimal()
		claimed = &v
	}
	plan, err := planPayment(bill.Active, req.AmountPaid.Decimal(), claimed, req.Mode, req.Note, receiptNo, l.strategy, time.Now())
	if err != nil {
		return nil, err
	}

	opts := []repository.UpdateOption{
		repository.WithActiveField("amount_paid", models.NewDecimal(plan.NewTotal)),
		repository.WithActiveField("balance", models.NewDecimal(plan.NewBalance)),
		repository.WithPushPayment(plan.Entry),
		repository.WithPushBalance(plan.Balance),
		repository.WithUpdatedBy(req.Operator),
	}
	paid := *bill
	paid.Active.AmountPaid = models.NewDecimal(plan.NewTotal)
	paid.Active.Balance = models.NewDecimal(plan.NewBalance)

	err = l.commit(ctx, "RecordPayment", bill, opts, func(sessCtx context.Context) error {
		l.audit(sessCtx, "RecordPayment", buildRecordPaymentAuditLog(req.Operator, bill, plan.Entry, plan.NewBalance))
		return l.publisher.PublishBillEvent(sessCtx, constants.BillEventPaymentRecorded, &paid, plan.Entry.Amount.Decimal())
	})
	if err != nil {
		return nil, err
	}
	l.metrics.PaymentRecorded(plan.Entry.Amount.Float64())

	if date := strings.TrimSpace(req.FollowUpDate); date != "" {
		l.requestPaymentFollowup(ctx, &paid, date, req)
	}

	return l.GetBill(ctx, req.ID)
}

func (l *BillLogic) DeleteBill(ctx context.Context, req *dto.DeleteBillRequest) error {
	bill, err := l.GetBill(ctx, req.ID)
	if err != nil {
		return err
	}

	_, err = l.txManager.WithTransaction(ctx, func(sessCtx context.Context) (interface{}, error) {
		if err := l.billRepo.DeleteBill(sessCtx, req.ID); err != nil {
			if errors.Is(err, mongodb.ErrNotFound) {
				return nil, ErrBillNotFound
			}
			return nil, fmt.Errorf("failed to delete bill: %w", err)
		}
		l.audit(sessCtx, "DeleteBill", buildDeleteBillAuditLog(req.Operator, bill))
		return nil, l.publisher.PublishBillEvent(sessCtx, constants.BillEventDeleted, bill, decimal.Zero)
	})
	if err != nil {
		return err
	}
	l.metrics.BillDeleted()
	return nil
}

// commit runs the version-guarded update plus its side effects in one transaction.
func (l *BillLogic) commit(ctx context.Context, op string, bill *models.GymBill, opts []repository.UpdateOption, after func(sessCtx context.Context) error) error {
	_, err := l.txManager.WithTransaction(ctx, func(sessCtx context.Context) (interface{}, error) {
		if err := l.billRepo.UpdateBill(sessCtx, bill.ID, bill.Version, opts...); err != nil {
			switch {
			case errors.Is(err, mongodb.ErrNotFound):
				return nil, ErrBillNotFound
			case errors.Is(err, mongodb.ErrVersionConflict):
				return nil, ErrVersionConflict
			}
			return nil, fmt.Errorf("failed to update bill: %w", err)
		}
		return nil, after(sessCtx)
	})
	l.noteConflict(op, bill, err)
	return err
}

func (l *BillLogic) noteConflict(op string, bill *models.GymBill, err error) {
	if errors.Is(err, ErrVersionConflict) {
		l.metrics.VersionConflict(op)
		l.logger.Warn(op+": concurrent modification", zap.Stringer("id", bill.ID), zap.Int64("version", bill.Version))
	}
}

// renewalWriteError maps a failed renewal history write. The entry was found
// on read, so a missing bill is the only way it can be gone.
func renewalWriteError(action string, err error) error {
	switch {
	case errors.Is(err, mongodb.ErrNotFound):
		return ErrBillNotFound
	case errors.Is(err, mongodb.ErrVersionConflict):
		return ErrVersionConflict
	}
	return fmt.Errorf("failed to %s renewal entry: %w", action, err)
}

func (l *BillLogic) audit(ctx context.Context, op string, entry *models.AuditLog) {
	if err := l.auditLogRepo.Create(ctx, entry); err != nil {
		l.logger.Error(op+": Failed to create audit log", zap.Error(err))
	}
}

func (l *BillLogic) requestPaymentFollowup(ctx context.Context, bill *models.GymBill, date string, req *dto.RecordPaymentRequest) {
	response := req.Note
	if response == "" {
		response = fmt.Sprintf("Pending balance %s", bill.Active.Balance.Decimal().StringFixed(2))
	}
	createdBy := models.SystemUser.Name
	if req.Operator != nil {
		createdBy = req.Operator.Name
	}
	msg := &dto.FollowupCreateMessage{
		RecordReference: bill.ID.Hex(),
		MemberID:        bill.MemberID,
		Type:            constants.FollowupTypePayment,
		ScheduleDate:    date,
		Response:        response,
		Status:          constants.FollowupStatusPending.String(),
		CreatedBy:       createdBy,
	}
	if err := l.publisher.RequestFollowup(ctx, msg); err != nil {
		l.logger.Error("RecordPayment: Failed to request follow-up",
			zap.Error(err),
			zap.Stringer("id", bill.ID),
			zap.String("scheduleDate", date))
	}
}

func applyProfilePatch(p *models.Profile, req *dto.UpdateBillRequest) {
	setString(&p.Client, req.Client)
	setString(&p.ContactNumber, req.ContactNumber)
	setString(&p.AlternateContact, req.AlternateContact)
	setString(&p.Email, req.Email)
	setString(&p.ClientSource, req.ClientSource)
	setString(&p.Gender, req.Gender)
	setString(&p.DateOfBirth, req.DateOfBirth)
	setString(&p.Anniversary, req.Anniversary)
	setString(&p.Profession, req.Profession)
	setString(&p.TaxID, req.TaxID)
	setString(&p.WorkoutHours, req.WorkoutHours)
	setString(&p.AreaAddress, req.AreaAddress)
	setString(&p.ClientRep, req.ClientRep)
	setString(&p.PaymentMethodDetail, req.PaymentMethodDetail)
	setString(&p.InitialPaymentMode, req.InitialPaymentMode)
	setString(&p.FollowupDate, req.FollowupDate)
}

// applyPeriodPatch copies the patched period fields. An explicit discount
// amount without a percent switches the period to a flat discount. The paid
// total is left to UpdateBill, which books the change as a payment.
func applyPeriodPatch(a *models.ActivePeriod, req *dto.UpdateBillRequest) {
	setString(&a.Package, req.Package)
	setString(&a.JoiningDate, req.JoiningDate)
	setString(&a.EndDate, req.EndDate)
	setString(&a.Trainer, req.Trainer)
	setString(&a.Remarks, req.Remarks)
	if req.Sessions != nil {
		a.Sessions = req.Sessions.Int()
	}
	if req.Price != nil {
		a.Price = models.NewDecimal(helper.RoundMoney(req.Price.Decimal()))
	}
	if req.AdmissionCharges != nil {
		a.AdmissionCharges = models.NewDecimal(helper.RoundMoney(req.AdmissionCharges.Decimal()))
	}
	if req.DiscountAmount != nil {
		a.DiscountAmount = models.NewDecimal(helper.RoundMoney(req.DiscountAmount.Decimal()))
		if req.DiscountPercent == nil {
			a.DiscountPercent = models.Decimal{}
		}
	}
	if req.DiscountPercent != nil {
		a.DiscountPercent = models.NewDecimal(req.DiscountPercent.Decimal())
	}
	if req.TaxPercent != nil {
		a.TaxPercent = models.NewDecimal(req.TaxPercent.Decimal())
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
