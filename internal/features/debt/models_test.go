package debt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stat(total float64) SellerStat {
	return SellerStat{
		Seller:       "Andres",
		Country:      "Costa Rica",
		CurrencyCode: "CRC",
		OrderCount:   3,
		TotalCoins:   9000,
		TotalAmount:  total,
	}
}

func TestComputeWithCommission(t *testing.T) {
	// 1000 × 3% = 30 комиссии, долг 970
	r := Compute(stat(1000), false, 0.03, 500, true, 0)

	assert.True(t, r.Commission.Equal(decimal.NewFromInt(30)), r.Commission.String())
	assert.True(t, r.DebtLocal.Equal(decimal.NewFromInt(970)), r.DebtLocal.String())

	require.NotNil(t, r.DebtUSD)
	// 970 / 500 = 1.94 USD
	assert.True(t, r.DebtUSD.Equal(decimal.RequireFromString("1.94")), r.DebtUSD.String())
}

func TestComputeExempt(t *testing.T) {
	r := Compute(stat(1000), true, 0.03, 500, true, 0)

	assert.True(t, r.Exempt)
	assert.True(t, r.Commission.IsZero())
	assert.True(t, r.DebtLocal.Equal(decimal.NewFromInt(1000)))
}

func TestComputeNoRate(t *testing.T) {
	r := Compute(stat(1000), false, 0.03, 0, false, 0)

	// Без курса долг в USD неизвестен, не ноль
	assert.Nil(t, r.DebtUSD)
	assert.Nil(t, r.OutstandingUSD)
	assert.True(t, r.DebtLocal.Equal(decimal.NewFromInt(970)))
}

func TestComputeOutstanding(t *testing.T) {
	// Долг 1.94 USD, подтверждено 1.00 → остаток 0.94
	r := Compute(stat(1000), false, 0.03, 500, true, 1)
	require.NotNil(t, r.OutstandingUSD)
	assert.True(t, r.OutstandingUSD.Equal(decimal.RequireFromString("0.94")), r.OutstandingUSD.String())
}

func TestComputeOverpayment(t *testing.T) {
	// Переплата не обнуляется: остаток отрицательный
	r := Compute(stat(1000), false, 0.03, 500, true, 5)
	require.NotNil(t, r.OutstandingUSD)
	assert.True(t, r.OutstandingUSD.IsNegative())
	assert.True(t, r.OutstandingUSD.Equal(decimal.RequireFromString("-3.06")), r.OutstandingUSD.String())
}
