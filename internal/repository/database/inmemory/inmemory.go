package inmemory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fleetmgmt/billplz-payment-service/internal/entities"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/database"
)

var _ database.Repository = (*inmemoryProvider)(nil)

type inmemoryProvider struct {
	mu         sync.Mutex
	attempts   map[uint]entities.PaymentAttempt
	idSequence uint
}

func NewInMemoryProvider() database.Repository {
	return &inmemoryProvider{
		attempts: make(map[uint]entities.PaymentAttempt),
	}
}

func (m *inmemoryProvider) Migrate() error {
	// Nothing to do here
	return nil
}

func (m *inmemoryProvider) CreateAttempt(ctx context.Context, pa entities.PaymentAttempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if pa.ID != 0 {
		return errors.New("create needs a new payment attempt")
	}
	if !pa.Status.IsValid() {
		return fmt.Errorf("invalid payment attempt status '%s'", pa.Status)
	}
	for _, a := range m.attempts {
		if a.BillID == pa.BillID {
			return errors.New("a payment attempt for this bill already exists")
		}
	}

	m.idSequence++
	pa.ID = m.idSequence

	if pa.CreatedAt.IsZero() {
		pa.CreatedAt = time.Now()
	}

	m.attempts[pa.ID] = pa
	return nil
}

func (m *inmemoryProvider) GetAttemptByBillID(ctx context.Context, billID string) (*entities.PaymentAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.attempts {
		if a.BillID == billID {
			copy := a
			return &copy, nil
		}
	}
	return nil, database.ErrAttemptNotFound
}

func (m *inmemoryProvider) GetAttemptsByFilter(ctx context.Context, query entities.AttemptQuery) ([]entities.PaymentAttempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]entities.PaymentAttempt, 0)
	for _, a := range m.attempts {
		if query.OrderCode != "" && a.OrderCode != query.OrderCode {
			continue
		}
		if query.BillID != "" && a.BillID != query.BillID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (m *inmemoryProvider) TransitionAttempt(ctx context.Context, billID string, from entities.AttemptStatus, to entities.AttemptStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, a := range m.attempts {
		if a.BillID != billID {
			continue
		}
		if a.Status != from {
			return false, nil
		}

		a.Status = to
		a.UpdatedAt = time.Now()
		m.attempts[id] = a
		return true, nil
	}

	return false, database.ErrAttemptNotFound
}
