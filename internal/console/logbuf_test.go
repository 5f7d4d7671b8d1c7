// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogBufferDropsOldest(t *testing.T) {
	b := NewLogBuffer(DefaultLogCapacity)
	for i := 0; i < 51; i++ {
		b.Print(fmt.Sprintf("line %d", i))
	}

	lines := b.Lines()
	require.Len(t, lines, 50)
	assert.Equal(t, "line 1", lines[0])
	assert.Equal(t, "line 50", lines[49])
}

func TestLogBufferDefaults(t *testing.T) {
	assert.Equal(t, DefaultLogCapacity, NewLogBuffer(0).Capacity())
	assert.Equal(t, DefaultLogCapacity, NewLogBuffer(-3).Capacity())
}

func TestLogBufferSplitsMultiline(t *testing.T) {
	b := NewLogBuffer(10)
	b.Print("a\nb\n")
	assert.Equal(t, []string{"a", "b"}, b.Lines())
	assert.Equal(t, "a\nb", b.String())
}

func TestLogBufferSetCapacityTrims(t *testing.T) {
	b := NewLogBuffer(10)
	for i := 0; i < 5; i++ {
		b.Print(fmt.Sprint(i))
	}
	b.SetCapacity(2)
	assert.Equal(t, []string{"3", "4"}, b.Lines())
	assert.Equal(t, []string{"4"}, b.Tail(1))
	assert.Equal(t, []string{"3", "4"}, b.Tail(10))
	assert.Nil(t, b.Tail(0))
}

func TestLogBufferVersion(t *testing.T) {
	b := NewLogBuffer(5)
	v0 := b.Version()
	b.Print("x")
	v1 := b.Version()
	b.Clear()
	assert.Greater(t, v1, v0)
	assert.Greater(t, b.Version(), v1)
	assert.Equal(t, 0, b.Len())
}

func TestLogBufferFollow(t *testing.T) {
	b := NewLogBuffer(2)
	var got []string
	stop := b.Follow(func(line string) { got = append(got, line) })

	b.Print("a")
	b.Print("b\nc")
	stop()
	b.Print("d")

	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, []string{"c", "d"}, b.Lines())
}

func TestLogBufferConcurrent(t *testing.T) {
	b := NewLogBuffer(DefaultLogCapacity)
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				b.Print(fmt.Sprintf("%d-%d", id, j))
				_ = b.Lines()
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, DefaultLogCapacity, b.Len())
}

func TestLogHandlerFormatsRecords(t *testing.T) {
	b := NewLogBuffer(10)
	logger := slog.New(NewLogHandler(b, slog.LevelInfo))

	logger.Debug("hidden")
	logger.Info("healed", "amount", 10, "who", "the player")
	logger.With("session", "s1").WithGroup("cmd").Warn("slow", "ms", 12)

	lines := b.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, `INFO healed amount=10 who="the player"`, lines[0])
	assert.Equal(t, "WARN slow session=s1 cmd.ms=12", lines[1])
}

func TestLogHandlerGroupedAttrs(t *testing.T) {
	b := NewLogBuffer(10)
	logger := slog.New(NewLogHandler(b, nil))

	logger.WithGroup("g").With("a", 1).Info("m", slog.Group("sub", "b", 2))
	assert.Equal(t, []string{"INFO m g.a=1 g.sub.b=2"}, b.Lines())
}

func TestMultiHandler(t *testing.T) {
	info := NewLogBuffer(10)
	warn := NewLogBuffer(10)
	h := MultiHandler{NewLogHandler(info, slog.LevelInfo), NewLogHandler(warn, slog.LevelWarn)}
	logger := slog.New(h)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	logger.Info("one")
	logger.Warn("two")

	assert.Equal(t, []string{"INFO one", "WARN two"}, info.Lines())
	assert.Equal(t, []string{"WARN two"}, warn.Lines())
}
