package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	assert.Equal(t, []string{"Andres", "Maga"}, parseCSV("Andres, Maga"))
	assert.Equal(t, []string{"Andres"}, parseCSV("Andres,"))
	assert.Empty(t, parseCSV("   "))
	assert.Empty(t, parseCSV(""))
}

func TestIsCommissionExempt(t *testing.T) {
	cfg := &Config{CommissionExempt: []string{"Natasha"}}

	assert.True(t, cfg.IsCommissionExempt("Natasha"))
	assert.True(t, cfg.IsCommissionExempt("natasha")) // без учёта регистра
	assert.False(t, cfg.IsCommissionExempt("Andres"))

	empty := &Config{}
	assert.False(t, empty.IsCommissionExempt("Natasha"))
}
