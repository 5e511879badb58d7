package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		price float64
		code  string
		want  string
	}{
		{1300, "CRC", "₡1.300"},
		{650, "CRC", "₡650"},
		{2100, "MXN", "$2.100 MXN"},
		{43000, "COP", "$43.000 COP"},
		{430000, "COP", "$430.000 COP"},
		{1600, "VES", "1.600 Bs."},
		{1.2, "USD", "$1.20 USD"},
		{12, "USD", "$12.00 USD"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatPrice(c.price, c.code), "FormatPrice(%v, %s)", c.price, c.code)
	}
}

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "500", FormatCoins(500))
	assert.Equal(t, "15.000", FormatCoins(15000))
	assert.Equal(t, "1.500.000", FormatCoins(1500000))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$12.50 USD", FormatUSD(12.5))
	assert.Equal(t, "$0.00 USD", FormatUSD(0))
}

func TestFormatDateTime(t *testing.T) {
	// 15:00 UTC = 11:00 в Каракасе (UTC-4)
	ts := time.Date(2026, 2, 3, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "03.02.2026 11:00", FormatDateTime(ts, "America/Caracas"))
}

func TestSessionRoles(t *testing.T) {
	super := &Session{Username: "root", Role: RoleSuperAdmin}
	admin := &Session{Username: "ops", Role: RoleAdmin}
	seller := &Session{Username: "andres", Role: RoleSeller, SellerName: "Andres"}

	assert.True(t, super.IsStaff())
	assert.True(t, super.IsSuperAdmin())
	assert.False(t, super.IsSeller())

	assert.True(t, admin.IsStaff())
	assert.False(t, admin.IsSuperAdmin())

	assert.False(t, seller.IsStaff())
	assert.True(t, seller.IsSeller())
}
