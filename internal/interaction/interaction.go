package interaction

import (
	"context"
	"errors"

	"github.com/fleetmgmt/billplz-payment-service/internal/config"
	"github.com/fleetmgmt/billplz-payment-service/internal/currency"
	"github.com/fleetmgmt/billplz-payment-service/internal/domain"
	"github.com/fleetmgmt/billplz-payment-service/internal/entities"
	"github.com/fleetmgmt/billplz-payment-service/internal/logging"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/database"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/billplz"
	"github.com/fleetmgmt/billplz-payment-service/internal/repository/downstreams/fleetmanager"
)

var _ Interactor = (*serviceInteractor)(nil)

type Interactor interface {
	// GetProcessingPage stages a payment for the order: resolves order and
	// customer, creates a bill with the provider and returns the structured
	// processing page data. It never finalizes a payment.
	GetProcessingPage(ctx context.Context, orderCode string, amountDueNow float64) (*domain.ProcessingPage, error)

	// ProcessCallback handles one provider callback. The bill id is the only
	// input taken from the notification, everything else is re-fetched from
	// the provider before anything is decided.
	ProcessCallback(ctx context.Context, billID string) (*domain.CallbackOutcome, error)

	// GetAttempts exposes the payment attempt ledger to admins.
	GetAttempts(ctx context.Context, query entities.AttemptQuery) ([]entities.PaymentAttempt, error)
}

type serviceInteractor struct {
	logger         logging.Logger
	store          database.Repository
	fleetClient    fleetmanager.FleetManager
	providerClient billplz.Billplz

	paymentConf config.PaymentConfig
	siteURL     string
	adminRole   string
	policy      currency.Policy
}

func NewServiceInteractor(r database.Repository,
	fleetClient fleetmanager.FleetManager,
	providerClient billplz.Billplz,
	conf *config.Application,
	logger logging.Logger,
) (Interactor, error) {

	if r == nil {
		return nil, errors.New("repository must not be nil")
	}

	if fleetClient == nil {
		return nil, errors.New("no fleet manager client provided")
	}

	if providerClient == nil {
		return nil, errors.New("no provider client provided")
	}

	if conf == nil {
		return nil, errors.New("no application config provided")
	}

	return &serviceInteractor{
		logger:         logger,
		store:          r,
		fleetClient:    fleetClient,
		providerClient: providerClient,
		paymentConf:    conf.Payment,
		siteURL:        conf.Service.PublicSiteURL,
		adminRole:      conf.Security.Oidc.AdminRole,
		policy:         currency.PolicyFromConfig(conf.Payment),
	}, nil
}
