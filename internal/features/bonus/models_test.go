package bonus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	r := Compute(RegistrarStat{RegisteredBy: "admin1", OrderCount: 12, TotalCoins: 250_000}, 100_000, 10)

	assert.Equal(t, int64(2), r.Milestones)
	assert.Equal(t, 20.0, r.BonusUSD)
	assert.Equal(t, int64(50_000), r.ProgressCoins)
	assert.Equal(t, 50, r.ProgressPct)
}

func TestComputeBelowFirstMilestone(t *testing.T) {
	r := Compute(RegistrarStat{TotalCoins: 99_999}, 100_000, 10)

	assert.Equal(t, int64(0), r.Milestones)
	assert.Equal(t, 0.0, r.BonusUSD)
	assert.Equal(t, int64(99_999), r.ProgressCoins)
	assert.Equal(t, 99, r.ProgressPct)
}

func TestComputeExactMilestone(t *testing.T) {
	r := Compute(RegistrarStat{TotalCoins: 100_000}, 100_000, 10)

	assert.Equal(t, int64(1), r.Milestones)
	assert.Equal(t, 10.0, r.BonusUSD)
	assert.Equal(t, int64(0), r.ProgressCoins)
	assert.Equal(t, 0, r.ProgressPct)
}

func TestComputeZeroCoins(t *testing.T) {
	r := Compute(RegistrarStat{}, 100_000, 10)

	assert.Equal(t, int64(0), r.Milestones)
	assert.Equal(t, 0, r.ProgressPct)
}
