package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountriesData(t *testing.T) {
	list := Countries()
	require.Len(t, list, 5)

	for _, c := range list {
		require.NotEmpty(t, c.Packages, c.Name)
		assert.NotEmpty(t, c.CurrencyCode, c.Name)

		// Пакеты отсортированы по возрастанию монет
		for i := 1; i < len(c.Packages); i++ {
			assert.Greater(t, c.Packages[i].Coins, c.Packages[i-1].Coins,
				"%s: пакеты должны идти по возрастанию", c.Name)
		}
	}
}

func TestGetCountry(t *testing.T) {
	cr := GetCountry("costa-rica")
	require.NotNil(t, cr)
	assert.Equal(t, "CRC", cr.CurrencyCode)

	assert.Nil(t, GetCountry("peru"))
}

func TestCoinRate(t *testing.T) {
	cr := GetCountry("costa-rica")
	require.NotNil(t, cr)
	// 1500 монет за 650 колонов
	assert.InDelta(t, 1500.0/650.0, cr.CoinRate(), 1e-9)

	ec := GetCountry("ecuador")
	require.NotNil(t, ec)
	assert.InDelta(t, 1500.0/1.2, ec.CoinRate(), 1e-9)
}

func TestFindPackage(t *testing.T) {
	mx := GetCountry("mexico")
	require.NotNil(t, mx)

	pkg := mx.FindPackage("mx-3")
	require.NotNil(t, pkg)
	assert.Equal(t, int64(15000), pkg.Coins)
	assert.True(t, pkg.Popular)

	assert.Nil(t, mx.FindPackage("cr-1"))
}

func TestRoundTo500(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0, 0},
		{249, 0},
		{250, 500},
		{3000, 3000},
		{3249.9, 3000},
		{3250, 3500},
		{2999.7, 3000},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, RoundTo500(c.in), "RoundTo500(%v)", c.in)
	}
}

func TestSellerBinding(t *testing.T) {
	assert.True(t, ValidSeller("Andres"))
	assert.False(t, ValidSeller("Desconocido"))

	c := CountryForSeller("Maga")
	require.NotNil(t, c)
	assert.Equal(t, "venezuela", c.Slug)

	assert.Nil(t, CountryForSeller("Desconocido"))

	assert.Len(t, Sellers(), 5)
}
