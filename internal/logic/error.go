package logic

import (
	"errors"

	"github.com/thirusolai/gym-backend-h4fitness2/internal/mq"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrBillNotFound      = errors.New("bill not found")
	ErrRenewalNotFound   = errors.New("renewal entry not found")
	ErrImageNotFound     = errors.New("profile picture not found")
	ErrFollowupNotFound  = errors.New("follow-up not found")
	ErrDuplicateMemberID = errors.New("member id already exists")
	ErrVersionConflict   = errors.New("bill was modified by another request, reload and retry")
	ErrPermanent         = mq.ErrPermanent
)
