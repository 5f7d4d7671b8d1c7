// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package demo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devconsole/internal/commands"
)

func newDispatcher(p *Player) (*commands.Dispatcher, *[]string) {
	var out []string
	reg := commands.Scan([]commands.Source{p})
	return commands.NewDispatcher(reg, commands.OutputFunc(func(l string) { out = append(out, l) })), &out
}

func TestPlayerHealthBounds(t *testing.T) {
	p := NewPlayer("hero")

	hp, err := p.Damage(30)
	require.NoError(t, err)
	assert.Equal(t, 70, hp)

	hp, _ = p.Heal(500)
	assert.Equal(t, MaxHP, hp)

	hp, _ = p.Damage(1000)
	assert.Equal(t, 0, hp)

	_, err = p.Heal(10)
	assert.ErrorIs(t, err, ErrDead)

	_, err = p.Damage(-1)
	assert.Error(t, err)
}

func TestPlayerGodMode(t *testing.T) {
	p := NewPlayer("hero")
	p.SetGod(true)
	hp, _ := p.Damage(99)
	assert.Equal(t, MaxHP, hp)
}

func TestPlayerCommands(t *testing.T) {
	p := NewPlayer("hero")
	d, out := newDispatcher(p)

	require.NoError(t, d.Execute("hp"))
	assert.Equal(t, "[hp] = 100", (*out)[0])

	require.NoError(t, d.Execute("damage 50"))
	require.NoError(t, d.Execute("hp"))
	assert.Equal(t, "[hp] = 50", (*out)[2])

	err := d.Execute("heal abc")
	assert.Equal(t, commands.OutcomeArgumentCoercionError, commands.OutcomeOf(err))

	err = d.Execute("heal")
	assert.Equal(t, commands.OutcomeArgumentCountMismatch, commands.OutcomeOf(err))

	require.NoError(t, d.Execute("heal 10"))
	assert.Equal(t, 60, p.HP())

	require.NoError(t, d.Execute("rename Zed"))
	require.NoError(t, d.Execute("name"))
	assert.Equal(t, "[name] = Zed", (*out)[len(*out)-1])

	require.NoError(t, d.Execute("god true"))
	require.NoError(t, d.Execute("damage 60"))
	assert.Equal(t, 60, p.HP())

	require.NoError(t, d.Execute("god false"))
	require.NoError(t, d.Execute("damage 60"))
	assert.Equal(t, 0, p.HP())

	err = d.Execute("heal 5")
	assert.Equal(t, commands.OutcomeInvocationError, commands.OutcomeOf(err))
	assert.Contains(t, err.Error(), "player is dead")
}
