package interaction

import (
	"context"

	"github.com/fleetmgmt/billplz-payment-service/internal/apierrors"
	"github.com/fleetmgmt/billplz-payment-service/internal/entities"
)

func (s *serviceInteractor) GetAttempts(ctx context.Context, query entities.AttemptQuery) ([]entities.PaymentAttempt, error) {
	mgr := NewIdentityManager(ctx, s.adminRole)

	if !mgr.IsAdmin() && !mgr.IsAPITokenCall() {
		return nil, apierrors.NewForbidden("no permission to read payment attempts")
	}

	return s.store.GetAttemptsByFilter(ctx, query)
}
