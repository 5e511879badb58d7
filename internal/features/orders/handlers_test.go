package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreateArgsPackage(t *testing.T) {
	in, err := parseCreateArgs([]string{"Andres", "cr-2", "REF-4451", "OrosPV1"})
	require.NoError(t, err)

	assert.Equal(t, "Andres", in.Seller)
	assert.Equal(t, "cr-2", in.PackageID)
	assert.Equal(t, "REF-4451", in.GameUsername)
	assert.Equal(t, "OrosPV1", in.CoinAccount)
	assert.Zero(t, in.CustomPrice)
	assert.Zero(t, in.CustomCoins)
}

func TestParseCreateArgsCustom(t *testing.T) {
	in, err := parseCreateArgs([]string{"Maga", "custom", "1600", "3000", "REF-99", "OrosPV2"})
	require.NoError(t, err)

	assert.Empty(t, in.PackageID)
	assert.Equal(t, 1600.0, in.CustomPrice)
	assert.Equal(t, int64(3000), in.CustomCoins)
	assert.Equal(t, "REF-99", in.GameUsername)
	assert.Equal(t, "OrosPV2", in.CoinAccount)
}

func TestParseCreateArgsErrors(t *testing.T) {
	_, err := parseCreateArgs([]string{"Andres", "cr-2"})
	assert.Error(t, err)

	_, err = parseCreateArgs([]string{"Maga", "custom", "1600", "3000"})
	assert.Error(t, err)

	_, err = parseCreateArgs([]string{"Maga", "custom", "abc", "3000", "REF", "OrosPV1"})
	assert.Error(t, err)

	_, err = parseCreateArgs([]string{"Maga", "custom", "1600", "-5", "REF", "OrosPV1"})
	assert.Error(t, err)
}
