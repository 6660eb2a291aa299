package service

import (
	"context"
	"testing"

	"inventory-service/config"
	"inventory-service/internal/apperror"
	"inventory-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testBusinessConfig() config.BusinessConfig {
	return config.BusinessConfig{
		DefaultCurrency: "TRY",
		USDToTRYRate:    decimal.NewFromInt(33),
		DebtLimitTRY:    decimal.NewFromInt(5000),
		DebtLimitUSD:    decimal.NewFromInt(150),
	}
}

func TestNormalizeAmountUSD(t *testing.T) {
	ls := NewLedgerService(nil, testBusinessConfig())

	got := ls.NormalizeAmount(decimal.NewFromInt(10), "USD")
	assert.True(t, decimal.NewFromInt(330).Equal(got))

	// lowercase currency codes still convert
	got = ls.NormalizeAmount(decimal.NewFromInt(2), "usd")
	assert.True(t, decimal.NewFromInt(66).Equal(got))
}

func TestNormalizeAmountTRYPassthrough(t *testing.T) {
	ls := NewLedgerService(nil, testBusinessConfig())

	amount := decimal.RequireFromString("123.45")
	got := ls.NormalizeAmount(amount, "TRY")
	assert.True(t, amount.Equal(got))

	// unknown currencies pass through unchanged
	got = ls.NormalizeAmount(amount, "EUR")
	assert.True(t, amount.Equal(got))
}

func TestNormalizeAmountFractionalUSD(t *testing.T) {
	ls := NewLedgerService(nil, testBusinessConfig())

	got := ls.NormalizeAmount(decimal.RequireFromString("0.5"), "USD")
	assert.True(t, decimal.RequireFromString("16.5").Equal(got))
}

func TestAdjustDebtRejectsNonPositiveAmount(t *testing.T) {
	ls := NewLedgerService(nil, testBusinessConfig())
	ctx := context.Background()

	_, err := ls.AdjustDebt(ctx, "c1", decimal.Zero, "TRY", models.DebtAdd)
	assert.True(t, apperror.IsValidation(err))

	_, err = ls.AdjustDebt(ctx, "c1", decimal.NewFromInt(-5), "TRY", models.DebtSubtract)
	assert.True(t, apperror.IsValidation(err))
}

func TestAdjustDebtRejectsUnknownDirection(t *testing.T) {
	ls := NewLedgerService(nil, testBusinessConfig())

	_, err := ls.AdjustDebt(context.Background(), "c1", decimal.NewFromInt(10), "TRY", "increment")
	assert.True(t, apperror.IsValidation(err))
}
