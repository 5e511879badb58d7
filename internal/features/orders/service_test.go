package orders

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orospv.com/orocoins-bot/internal/catalog"
	"orospv.com/orocoins-bot/internal/common"
)

func TestResolvePackageFromCatalog(t *testing.T) {
	cr := catalog.GetCountry("costa-rica")
	require.NotNil(t, cr)

	pkg, isCustom, err := resolvePackage(cr, "cr-2", 0, 0)
	require.NoError(t, err)
	assert.False(t, isCustom)
	assert.Equal(t, int64(3000), pkg.Coins)
	assert.Equal(t, 1300.0, pkg.Price)
}

func TestResolvePackageUnknownID(t *testing.T) {
	cr := catalog.GetCountry("costa-rica")
	require.NotNil(t, cr)

	_, _, err := resolvePackage(cr, "mx-1", 0, 0)
	assert.ErrorIs(t, err, common.ErrInvalidPackage)
}

func TestResolvePackageCustom(t *testing.T) {
	cr := catalog.GetCountry("costa-rica")
	require.NotNil(t, cr)

	// 1300 колонов × курс (1500/650) = 3000 монет ровно
	pkg, isCustom, err := resolvePackage(cr, "", 1300, 3000)
	require.NoError(t, err)
	assert.True(t, isCustom)
	assert.Equal(t, "costa-rica-custom", pkg.ID)
	assert.Equal(t, int64(3000), pkg.Coins)

	// Допуск ±1 монета от расчёта
	_, _, err = resolvePackage(cr, "", 1300, 2999)
	assert.NoError(t, err)

	_, _, err = resolvePackage(cr, "", 1300, 2998)
	assert.ErrorIs(t, err, common.ErrInvalidCustomCoins)

	_, _, err = resolvePackage(cr, "", 1300, 3002)
	assert.ErrorIs(t, err, common.ErrInvalidCustomCoins)
}

func TestResolvePackageCustomInvalidInput(t *testing.T) {
	cr := catalog.GetCountry("costa-rica")
	require.NotNil(t, cr)

	_, _, err := resolvePackage(cr, "", 0, 3000)
	assert.ErrorIs(t, err, common.ErrInvalidPackage)

	_, _, err = resolvePackage(cr, "", 1300, 0)
	assert.ErrorIs(t, err, common.ErrInvalidPackage)

	_, _, err = resolvePackage(cr, "", -5, -100)
	assert.ErrorIs(t, err, common.ErrInvalidPackage)
}

func TestNewOrderNumber(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	re := regexp.MustCompile(`^OC-[0-9A-Z]+-[0-9A-Z]{4}$`)
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		n := NewOrderNumber(now)
		assert.Regexp(t, re, n)
		seen[n] = true
	}
	// Случайный суффикс: в 100 генерациях на одной миллисекунде
	// должны быть разные номера
	assert.Greater(t, len(seen), 1)
}

func TestRandomSuffixLength(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Len(t, randomSuffix(4), 4)
	}
}
