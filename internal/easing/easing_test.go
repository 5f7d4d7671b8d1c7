// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package easing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurvesHitEndpoints(t *testing.T) {
	for _, name := range Names() {
		f, err := ByName(name)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, f(0), 1e-12, name)
		assert.InDelta(t, 1.0, f(1), 1e-12, name)
		assert.InDelta(t, 0.0, f(-1), 1e-12, name+" clamps below")
		assert.InDelta(t, 1.0, f(2), 1e-12, name+" clamps above")
	}
}

func TestCurvesAreMonotonic(t *testing.T) {
	for _, name := range Names() {
		f, _ := ByName(name)
		prev := f(0)
		for i := 1; i <= 100; i++ {
			v := f(float64(i) / 100)
			assert.GreaterOrEqual(t, v, prev, "%s at %d", name, i)
			prev = v
		}
	}
}

func TestCurveMidpoints(t *testing.T) {
	tests := []struct {
		name string
		f    Func
		want float64
	}{
		{"linear", Linear, 0.5},
		{"in-quad", InQuad, 0.25},
		{"out-quad", OutQuad, 0.75},
		{"in-out-quad", InOutQuad, 0.5},
		{"out-cubic", OutCubic, 0.875},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, tt.f(0.5), 1e-12, tt.name)
	}
}

func TestByName(t *testing.T) {
	f, err := ByName(" In-Out-Quad ")
	require.NoError(t, err)
	assert.InDelta(t, InOutQuad(0.3), f(0.3), 1e-12)

	_, err = ByName("bounce")
	assert.ErrorContains(t, err, "unknown easing")
}

func TestClampAndLerp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 0.75, Lerp(1, 0.5, 0.5))
	assert.Equal(t, 2.0, Lerp(0, 1, 2))
}
