package service

import (
	"context"
	"strings"

	"inventory-service/config"
	"inventory-service/internal/apperror"
	"inventory-service/internal/models"
	"inventory-service/internal/store"
	"inventory-service/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerService owns the customer debt ledger. All balance mutations go
// through here so every write is normalized to the reference currency and
// clamped at zero.
type LedgerService struct {
	store  *store.Store
	cfg    config.BusinessConfig
	logger *zap.Logger
}

// NewLedgerService creates a new debt ledger service
func NewLedgerService(store *store.Store, cfg config.BusinessConfig) *LedgerService {
	return &LedgerService{
		store:  store,
		cfg:    cfg,
		logger: util.GetLogger(),
	}
}

// NormalizeAmount converts an amount into the reference currency. The USD
// rate is a fixed business multiplier, not a live exchange rate.
func (s *LedgerService) NormalizeAmount(amount decimal.Decimal, currency string) decimal.Decimal {
	if strings.EqualFold(currency, "USD") {
		return amount.Mul(s.cfg.USDToTRYRate)
	}
	return amount
}

func (s *LedgerService) validateAdjustment(amount decimal.Decimal, direction string) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return apperror.Validation("amount must be greater than 0")
	}
	if direction != models.DebtAdd && direction != models.DebtSubtract {
		return apperror.Validation("direction must be add or subtract")
	}
	return nil
}

// AdjustDebt applies a debt delta for a customer and returns the new balance.
// Subtracting more than the customer owes settles the debt at zero rather
// than rejecting the payment.
func (s *LedgerService) AdjustDebt(ctx context.Context, customerID string, amount decimal.Decimal, currency, direction string) (decimal.Decimal, error) {
	ctx, span := util.StartSpan(ctx, "LedgerService.AdjustDebt")
	defer span.End()

	if err := s.validateAdjustment(amount, direction); err != nil {
		return decimal.Zero, err
	}

	normalized := s.NormalizeAmount(amount, currency)
	newDebt, err := s.store.AdjustCustomerDebt(ctx, customerID, normalized, s.cfg.DefaultCurrency, direction)
	if err != nil {
		return decimal.Zero, err
	}

	util.DebtAdjustmentsTotal.WithLabelValues(direction).Inc()
	s.logger.Info("Customer debt adjusted",
		zap.String("customer_id", customerID),
		zap.String("direction", direction),
		zap.String("new_debt", newDebt.String()))

	return newDebt, nil
}

// AdjustDebtTx is AdjustDebt inside an existing database transaction, for
// callers composing the debt write with other statements.
func (s *LedgerService) AdjustDebtTx(ctx context.Context, tx *sqlx.Tx, customerID string, amount decimal.Decimal, currency, direction string) (decimal.Decimal, error) {
	if err := s.validateAdjustment(amount, direction); err != nil {
		return decimal.Zero, err
	}

	normalized := s.NormalizeAmount(amount, currency)
	newDebt, err := s.store.AdjustCustomerDebtTx(ctx, tx, customerID, normalized, s.cfg.DefaultCurrency, direction)
	if err != nil {
		return decimal.Zero, err
	}

	util.DebtAdjustmentsTotal.WithLabelValues(direction).Inc()
	return newDebt, nil
}

// GetDebtStatus reports a customer's balance against both configured limits
func (s *LedgerService) GetDebtStatus(ctx context.Context, customerID string) (*models.DebtStatus, error) {
	customer, err := s.store.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	debtInUSD := customer.TotalDebt.Div(s.cfg.USDToTRYRate)

	currency := customer.DebtCurrency
	if currency == "" {
		currency = s.cfg.DefaultCurrency
	}

	return &models.DebtStatus{
		Debt:           customer.TotalDebt,
		Currency:       currency,
		IsOverLimit:    customer.TotalDebt.GreaterThanOrEqual(s.cfg.DebtLimitTRY),
		DebtInUSD:      debtInUSD,
		IsOverLimitUSD: debtInUSD.GreaterThanOrEqual(s.cfg.DebtLimitUSD),
	}, nil
}
