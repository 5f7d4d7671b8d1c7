// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package timescale

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devconsole/internal/commands"
)

func newTestController(t *testing.T, opts ...Option) *Controller {
	t.Helper()
	c := New(append([]Option{WithTick(time.Millisecond)}, opts...)...)
	t.Cleanup(c.Close)
	return c
}

func TestPauseAndUnpause(t *testing.T) {
	c := newTestController(t)
	require.Equal(t, StateRunning, c.State())
	require.Equal(t, 1.0, c.Scale())

	require.NoError(t, c.Pause())
	assert.Equal(t, StatePaused, c.State())
	assert.Equal(t, 0.0, c.Scale())
	assert.Equal(t, time.Duration(0), c.FixedStep())

	assert.ErrorIs(t, c.Pause(), ErrLocked)
	assert.ErrorIs(t, c.HitStop(time.Second), ErrLocked)
	assert.ErrorIs(t, c.StartBulletTime(time.Second, 0.5, true), ErrLocked)
	assert.ErrorIs(t, c.EndBulletTime(time.Second, 0.5, true), ErrLocked)

	c.Unpause()
	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 1.0, c.Scale())
	assert.Equal(t, DefaultFixedStep, c.FixedStep())
}

func TestHitStopRestoresScale(t *testing.T) {
	c := newTestController(t)

	require.NoError(t, c.HitStop(20*time.Millisecond))
	assert.Equal(t, StateHitStop, c.State())
	assert.Equal(t, 0.0, c.Scale())
	assert.False(t, c.CanSetTimeScale())

	c.Wait()
	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 1.0, c.Scale())
}

func TestUnpauseCancelsHitStop(t *testing.T) {
	c := newTestController(t)

	require.NoError(t, c.HitStop(time.Hour))
	c.Unpause()
	c.Wait()

	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 1.0, c.Scale())
	assert.True(t, c.CanSetTimeScale())
}

func TestBulletTimeRamp(t *testing.T) {
	var mu sync.Mutex
	var scales []float64
	c := newTestController(t, WithOnChange(func(s float64) {
		mu.Lock()
		scales = append(scales, s)
		mu.Unlock()
	}))

	require.NoError(t, c.StartBulletTime(30*time.Millisecond, 0.25, true))
	c.Wait()

	assert.Equal(t, StateBulletTime, c.State())
	assert.Equal(t, 0.25, c.Scale())
	assert.ErrorIs(t, c.Pause(), ErrLocked, "bullet time blocks other effects")

	mu.Lock()
	for i := 1; i < len(scales); i++ {
		assert.LessOrEqual(t, scales[i], scales[i-1], "ramp down must be monotonic")
	}
	mu.Unlock()

	require.NoError(t, c.EndBulletTime(30*time.Millisecond, 0.25, false))
	c.Wait()
	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 1.0, c.Scale())
}

func TestBulletTimeZeroDuration(t *testing.T) {
	c := newTestController(t)

	require.NoError(t, c.StartBulletTime(0, 0.5, false))
	assert.Equal(t, 0.5, c.Scale())
	assert.Equal(t, StateBulletTime, c.State())

	require.NoError(t, c.EndBulletTime(0, 0.5, false))
	assert.Equal(t, 1.0, c.Scale())
	assert.Equal(t, StateRunning, c.State())
}

func TestEndBulletTimeOutsideBulletTime(t *testing.T) {
	c := newTestController(t)
	assert.ErrorIs(t, c.EndBulletTime(0, 0.5, true), ErrNotInBulletTime)
}

func TestUnpauseCancelsBulletTime(t *testing.T) {
	c := newTestController(t)

	require.NoError(t, c.StartBulletTime(time.Hour, 0.1, true))
	c.Unpause()
	c.Wait()

	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 1.0, c.Scale())
}

func TestInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Controller) error
	}{
		{"negative hit-stop", func(c *Controller) error { return c.HitStop(-time.Second) }},
		{"hit-stop too long", func(c *Controller) error { return c.HitStop(MaxDuration + time.Second) }},
		{"negative scale", func(c *Controller) error { return c.StartBulletTime(time.Second, -1, true) }},
		{"negative duration", func(c *Controller) error { return c.StartBulletTime(-time.Second, 0.5, true) }},
		{"NaN scale", func(c *Controller) error { return c.StartBulletTime(0, math.NaN(), false) }},
		{"infinite scale", func(c *Controller) error { return c.StartBulletTime(0, math.Inf(1), false) }},
		{"scale too large", func(c *Controller) error { return c.StartBulletTime(0, MaxScale*2, false) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t)
			assert.ErrorIs(t, tt.call(c), ErrInvalidArgument)
			assert.Equal(t, StateRunning, c.State())
			assert.Equal(t, 1.0, c.Scale())
		})
	}
}

func TestNonFiniteCommandArguments(t *testing.T) {
	c := newTestController(t)
	reg := commands.Scan([]commands.Source{c})
	d := commands.NewDispatcher(reg, commands.OutputFunc(func(string) {}))

	for _, line := range []string{
		"bullettime 0 NaN false",
		"bullettime 0 +Inf false",
		"bullettime NaN 0.5 false",
		"hitstop Inf",
		"hitstop 1e10",
	} {
		err := d.Execute(line)
		assert.ErrorIs(t, err, ErrInvalidArgument, line)
		assert.Equal(t, commands.OutcomeInvocationError, commands.OutcomeOf(err), line)
	}
	assert.Equal(t, StateRunning, c.State())
	assert.Equal(t, 1.0, c.Scale())
	assert.GreaterOrEqual(t, c.GameTime(), time.Duration(0))
}

func TestGameTimeFollowsScale(t *testing.T) {
	c := newTestController(t)
	now := time.Unix(0, 0)
	c.now = func() time.Time { return now }
	c.lastUpdate = now

	now = now.Add(time.Second)
	assert.Equal(t, time.Second, c.GameTime())

	require.NoError(t, c.StartBulletTime(0, 0.5, false))
	now = now.Add(2 * time.Second)
	assert.Equal(t, 2*time.Second, c.GameTime())

	c.Unpause()
	require.NoError(t, c.Pause())
	now = now.Add(time.Hour)
	assert.Equal(t, 2*time.Second, c.GameTime())
}

func TestCommandsDriveController(t *testing.T) {
	c := newTestController(t)
	var out []string
	reg := commands.Scan([]commands.Source{c})
	d := commands.NewDispatcher(reg, commands.OutputFunc(func(l string) { out = append(out, l) }))

	require.NoError(t, d.Execute("timescale"))
	assert.Equal(t, "[timescale] = 1", out[len(out)-1])

	require.NoError(t, d.Execute("pause"))
	require.NoError(t, d.Execute("timestate"))
	assert.Equal(t, "[timestate] = paused", out[len(out)-1])

	err := d.Execute("hitstop 0.1")
	assert.Equal(t, commands.OutcomeInvocationError, commands.OutcomeOf(err))
	assert.Contains(t, err.Error(), "time scale is locked: paused")

	require.NoError(t, d.Execute("unpause"))
	require.NoError(t, d.Execute("bullettime 0 0.5 false"))
	require.NoError(t, d.Execute("timescale"))
	assert.Equal(t, "[timescale] = 0.5", out[len(out)-1])

	err = d.Execute("bullettime_end 0 0.5 maybe")
	assert.Equal(t, commands.OutcomeArgumentCoercionError, commands.OutcomeOf(err))

	require.NoError(t, d.Execute("bullettime_end 0 0.5 FALSE"))
	assert.Equal(t, 1.0, c.Scale())

	assert.Error(t, d.Execute("hitstop -1"))
	assert.Error(t, d.Execute("easing bounce"))
	require.NoError(t, d.Execute("easing out-cubic"))
	assert.Equal(t, "easing set to out-cubic", out[len(out)-1])
}
