// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package easing provides easing curves for timed transitions.
//
// Every curve maps progress t in [0, 1] to eased progress with f(0) = 0
// and f(1) = 1. Inputs outside [0, 1] are clamped.
package easing

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Func is an easing curve.
type Func func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 {
	return Clamp01(t)
}

// InQuad starts slowly and accelerates.
func InQuad(t float64) float64 {
	t = Clamp01(t)
	return t * t
}

// OutQuad starts fast and decelerates.
func OutQuad(t float64) float64 {
	t = Clamp01(t)
	return 1 - (1-t)*(1-t)
}

// InOutQuad accelerates through the first half and decelerates through
// the second.
func InOutQuad(t float64) float64 {
	t = Clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// OutCubic decelerates more gently than OutQuad.
func OutCubic(t float64) float64 {
	t = Clamp01(t)
	return 1 - math.Pow(1-t, 3)
}

// Clamp01 limits t to [0, 1].
func Clamp01(t float64) float64 {
	switch {
	case t < 0 || math.IsNaN(t):
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

// Lerp interpolates between a and b by t (not clamped).
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

var byName = map[string]Func{
	"linear":      Linear,
	"in-quad":     InQuad,
	"out-quad":    OutQuad,
	"in-out-quad": InOutQuad,
	"out-cubic":   OutCubic,
}

// ByName looks up a curve by its kebab-case name.
func ByName(name string) (Func, error) {
	f, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (want one of %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// Names lists the curve names, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
