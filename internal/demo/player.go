// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package demo provides a sample command source: a player whose state can
// be inspected and changed from the console.
package demo

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jeranaias/devconsole/internal/commands"
)

// MaxHP is the player's full health.
const MaxHP = 100

// ErrDead is returned when acting on a player with no health left.
var ErrDead = errors.New("player is dead")

// Player is a minimal game entity. Safe for concurrent use.
type Player struct {
	mu   sync.Mutex
	name string
	hp   int
	god  bool
}

// NewPlayer creates a player at full health.
func NewPlayer(name string) *Player {
	return &Player{name: name, hp: MaxHP}
}

// HP returns current health.
func (p *Player) HP() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hp
}

// Name returns the player name.
func (p *Player) Name() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.name
}

// Heal restores up to amount health, capped at MaxHP, and returns the
// new health.
func (p *Player) Heal(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("heal amount %d is negative", amount)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.hp == 0 {
		return 0, ErrDead
	}
	p.hp = min(p.hp+amount, MaxHP)
	return p.hp, nil
}

// Damage removes health unless god mode is on, and returns the new
// health.
func (p *Player) Damage(amount int) (int, error) {
	if amount < 0 {
		return 0, fmt.Errorf("damage amount %d is negative", amount)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.god {
		return p.hp, nil
	}
	p.hp = max(p.hp-amount, 0)
	return p.hp, nil
}

// Rename changes the player name.
func (p *Player) Rename(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = name
}

// SetGod toggles invulnerability.
func (p *Player) SetGod(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.god = on
}

// DescribeCommands exposes the player to the console.
func (p *Player) DescribeCommands() []*commands.Command {
	return []*commands.Command{
		commands.NewRead("hp", "Current player health", func() any { return p.HP() }),
		commands.NewRead("name", "Current player name", func() any { return p.Name() }),
		commands.NewInvoke("heal", "Restore player health", func(ctx *commands.Context, args []commands.Value) error {
			hp, err := p.Heal(int(args[0].Int()))
			if err != nil {
				return err
			}
			ctx.Printf("%s healed to %d", p.Name(), hp)
			return nil
		}, commands.IntParam("amount")),
		commands.NewInvoke("damage", "Hurt the player", func(ctx *commands.Context, args []commands.Value) error {
			hp, err := p.Damage(int(args[0].Int()))
			if err != nil {
				return err
			}
			ctx.Printf("%s is at %d", p.Name(), hp)
			if hp == 0 {
				ctx.Logger.Warn("Player died", "player", p.Name())
			}
			return nil
		}, commands.IntParam("amount")),
		commands.NewInvoke("rename", "Change the player name", func(ctx *commands.Context, args []commands.Value) error {
			p.Rename(args[0].Str())
			return nil
		}, commands.StringParam("name")),
		commands.NewInvoke("god", "Toggle invulnerability", func(ctx *commands.Context, args []commands.Value) error {
			p.SetGod(args[0].Bool())
			ctx.Printf("god mode %t", args[0].Bool())
			return nil
		}, commands.BoolParam("enabled")),
	}
}
