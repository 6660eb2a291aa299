package service

import (
	"testing"
	"time"

	"inventory-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketMonthlySalesWindow(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	points := bucketMonthlySales(nil, now)
	require.Len(t, points, 12)

	// oldest month first, ending with the current month
	assert.Equal(t, "2025-09", points[0].Month)
	assert.Equal(t, "September", points[0].MonthName)
	assert.Equal(t, "2026-08", points[11].Month)
	assert.Equal(t, "August", points[11].MonthName)

	for _, p := range points {
		assert.True(t, p.Sales.IsZero())
	}
}

func TestBucketMonthlySalesSums(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	txns := []models.Transaction{
		{Total: decimal.NewFromInt(100), CreatedAt: time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)},
		{Total: decimal.NewFromInt(50), CreatedAt: time.Date(2026, time.August, 20, 9, 0, 0, 0, time.UTC)},
		{Total: decimal.NewFromInt(70), CreatedAt: time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC)},
	}

	points := bucketMonthlySales(txns, now)
	require.Len(t, points, 12)

	byMonth := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		byMonth[p.Month] = p.Sales
	}

	assert.True(t, decimal.NewFromInt(150).Equal(byMonth["2026-08"]))
	assert.True(t, decimal.NewFromInt(70).Equal(byMonth["2026-03"]))
	assert.True(t, byMonth["2026-07"].IsZero())
}

func TestBucketMonthlySalesIgnoresOutOfWindow(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	txns := []models.Transaction{
		// more than 12 months back
		{Total: decimal.NewFromInt(999), CreatedAt: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)},
	}

	points := bucketMonthlySales(txns, now)
	for _, p := range points {
		assert.True(t, p.Sales.IsZero())
	}
}

func TestBucketMonthlySalesNormalizesZones(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	istanbul := time.FixedZone("TRT", 3*60*60)
	txns := []models.Transaction{
		// 2026-09-01 02:00 +03 is 2026-08-31 23:00 UTC: an August sale
		{Total: decimal.NewFromInt(40), CreatedAt: time.Date(2026, time.September, 1, 2, 0, 0, 0, istanbul)},
	}

	points := bucketMonthlySales(txns, now)
	byMonth := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		byMonth[p.Month] = p.Sales
	}

	assert.True(t, decimal.NewFromInt(40).Equal(byMonth["2026-08"]))
	assert.True(t, byMonth["2026-07"].IsZero())
}

func TestBucketMonthlySalesYearBoundary(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)

	points := bucketMonthlySales(nil, now)
	require.Len(t, points, 12)
	assert.Equal(t, "2025-02", points[0].Month)
	assert.Equal(t, "2026-01", points[11].Month)
}
