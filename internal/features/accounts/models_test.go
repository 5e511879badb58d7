package accounts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAccount(t *testing.T) {
	assert.True(t, ValidAccount("OrosPV1"))
	assert.True(t, ValidAccount("OrosPV2"))

	assert.False(t, ValidAccount("orospv1")) // регистр важен
	assert.False(t, ValidAccount("OrosPV3"))
	assert.False(t, ValidAccount(""))
}

func TestValidAccountsList(t *testing.T) {
	assert.Equal(t, []string{"OrosPV1", "OrosPV2"}, ValidAccounts())
}
