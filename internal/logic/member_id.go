package logic

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/mongodb"
	"github.com/thirusolai/gym-backend-h4fitness2/internal/dao/repository"

	"go.uber.org/zap"
)

const memberIDSequence = "member_id"

// MemberIDFormat renders sequence numbers as member ids: Prefix followed by
// the number left-padded with zeros to Pad digits.
type MemberIDFormat struct {
	Prefix string
	Pad    int
}

func (f MemberIDFormat) Format(n int64) string {
	if f.Pad > 0 {
		return fmt.Sprintf("%s%0*d", f.Prefix, f.Pad, n)
	}
	return f.Prefix + strconv.FormatInt(n, 10)
}

// Parse extracts the sequence number from id. Ids that do not carry the
// prefix or are not a positive integer after it are reported as not ok.
func (f MemberIDFormat) Parse(id string) (int64, bool) {
	id = strings.TrimSpace(id)
	if !strings.HasPrefix(id, f.Prefix) {
		return 0, false
	}
	digits := strings.TrimPrefix(id, f.Prefix)
	if digits == "" {
		return 0, false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// MemberIDAllocator hands out unique, increasing member ids backed by an
// atomic counter document.
type MemberIDAllocator struct {
	billRepo    repository.BillRepository
	counterRepo repository.CounterRepository
	format      MemberIDFormat
	logger      *zap.Logger

	mu     sync.Mutex
	seeded bool
}

func NewMemberIDAllocator(billRepo repository.BillRepository, counterRepo repository.CounterRepository, format MemberIDFormat, logger *zap.Logger) *MemberIDAllocator {
	return &MemberIDAllocator{
		billRepo:    billRepo,
		counterRepo: counterRepo,
		format:      format,
		logger:      logger.Named("MemberIDAllocator"),
	}
}

// ensureSeeded raises the counter to the highest id already stored, once per process.
// Malformed ids are skipped.
func (a *MemberIDAllocator) ensureSeeded(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seeded {
		return nil
	}

	ids, err := a.billRepo.ListMemberIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list member ids: %w", err)
	}
	var highest int64
	skipped := 0
	for _, id := range ids {
		n, ok := a.format.Parse(id)
		if !ok {
			skipped++
			continue
		}
		if n > highest {
			highest = n
		}
	}
	if err := a.counterRepo.Seed(ctx, memberIDSequence, highest); err != nil {
		return fmt.Errorf("failed to seed member id counter: %w", err)
	}
	a.logger.Info("Member id counter seeded", zap.Int64("highest", highest), zap.Int("skipped", skipped))
	a.seeded = true
	return nil
}

// Next consumes and returns the next member id.
func (a *MemberIDAllocator) Next(ctx context.Context) (string, error) {
	if err := a.ensureSeeded(ctx); err != nil {
		return "", err
	}
	n, err := a.counterRepo.Next(ctx, memberIDSequence)
	if err != nil {
		return "", fmt.Errorf("failed to allocate member id: %w", err)
	}
	return a.format.Format(n), nil
}

// Peek returns the id Next would produce right now without consuming it.
// Another request may take it first.
func (a *MemberIDAllocator) Peek(ctx context.Context) (string, error) {
	if err := a.ensureSeeded(ctx); err != nil {
		return "", err
	}
	cur, _, err := a.counterRepo.Current(ctx, memberIDSequence)
	if err != nil {
		return "", fmt.Errorf("failed to read member id counter: %w", err)
	}
	return a.format.Format(cur + 1), nil
}

// Reserve accepts a caller supplied id. It fails with ErrDuplicateMemberID if
// the id is taken, and moves the counter past it when it is in our format.
func (a *MemberIDAllocator) Reserve(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: member id is empty", ErrInvalidInput)
	}
	if err := a.ensureSeeded(ctx); err != nil {
		return "", err
	}

	exists, err := a.billRepo.MemberIDExists(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to check member id: %w", err)
	}
	if exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateMemberID, id)
	}

	if n, ok := a.format.Parse(id); ok {
		if err := a.counterRepo.Seed(ctx, memberIDSequence, n); err != nil {
			return "", fmt.Errorf("failed to advance member id counter: %w", err)
		}
	}
	return id, nil
}

// isDuplicateMemberID maps the storage level unique index violation.
func isDuplicateMemberID(err error) bool {
	return errors.Is(err, mongodb.ErrDuplicateKey)
}
