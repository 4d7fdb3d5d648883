package database

import (
	"context"
	"errors"

	"github.com/fleetmgmt/billplz-payment-service/internal/entities"
)

var (
	// ErrAttemptNotFound is returned when no ledger row matches the lookup.
	ErrAttemptNotFound = errors.New("no matching payment attempt in database")
)

type Repository interface {
	Migrate() error

	CreateAttempt(ctx context.Context, pa entities.PaymentAttempt) error
	GetAttemptByBillID(ctx context.Context, billID string) (*entities.PaymentAttempt, error)
	GetAttemptsByFilter(ctx context.Context, query entities.AttemptQuery) ([]entities.PaymentAttempt, error)

	// TransitionAttempt sets the status of the attempt identified by billID to
	// the target status, but only while its current status matches from. The
	// first return value reports whether the transition actually happened.
	//
	// This conditional update is the idempotency guard for duplicate provider
	// callbacks - only one of two concurrent confirmations wins it.
	TransitionAttempt(ctx context.Context, billID string, from entities.AttemptStatus, to entities.AttemptStatus) (bool, error)
}
