package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	p := NewCommandParser()

	cmd, args, ok := p.ParseCommand("/pedido Andres cr-2 REF-1 OrosPV1")
	assert.True(t, ok)
	assert.Equal(t, "pedido", cmd)
	assert.Equal(t, []string{"Andres", "cr-2", "REF-1", "OrosPV1"}, args)

	cmd, _, ok = p.ParseCommand("  /SALDOS  ")
	assert.True(t, ok)
	assert.Equal(t, "saldos", cmd)

	// Префиксы ! и . тоже принимаются
	cmd, _, ok = p.ParseCommand("!deuda")
	assert.True(t, ok)
	assert.Equal(t, "deuda", cmd)

	cmd, _, ok = p.ParseCommand(".bonos")
	assert.True(t, ok)
	assert.Equal(t, "bonos", cmd)
}

func TestParseCommandBotMention(t *testing.T) {
	p := NewCommandParser()

	cmd, args, ok := p.ParseCommand("/ordenes@orocoins_bot 5")
	assert.True(t, ok)
	assert.Equal(t, "ordenes", cmd)
	assert.Equal(t, []string{"5"}, args)
}

func TestParseCommandNotACommand(t *testing.T) {
	p := NewCommandParser()

	_, _, ok := p.ParseCommand("hola, ¿cómo va todo?")
	assert.False(t, ok)

	_, _, ok = p.ParseCommand("")
	assert.False(t, ok)

	_, _, ok = p.ParseCommand("/")
	assert.False(t, ok)

	_, _, ok = p.ParseCommand("   !   ")
	assert.False(t, ok)
}
