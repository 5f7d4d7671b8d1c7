// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/devconsole/internal/commands"
)

func newTestDispatcher(observers ...commands.Observer) (*commands.Dispatcher, *[]string) {
	noop := func(*commands.Context, []commands.Value) error { return nil }
	reg := commands.Scan([]commands.Source{commands.SourceFunc(func() []*commands.Command {
		return []*commands.Command{
			commands.NewInvoke("heal", "", noop, commands.IntParam("amount")),
			commands.NewInvoke("fail", "", func(*commands.Context, []commands.Value) error { return errors.New("x") }),
		}
	})})

	var out []string
	opts := make([]commands.DispatcherOption, 0, len(observers))
	for _, o := range observers {
		opts = append(opts, commands.WithObserver(o))
	}
	return commands.NewDispatcher(reg, commands.OutputFunc(func(l string) { out = append(out, l) }), opts...), &out
}

func TestMetricsCountOutcomes(t *testing.T) {
	m := NewMetrics()
	d, _ := newTestDispatcher(m)

	_ = d.Execute("heal 1")
	_ = d.Execute("heal 2")
	_ = d.Execute("heal x")
	_ = d.Execute("fail")
	_ = d.Execute("teleport home")
	_ = d.Execute("warp")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.executions.WithLabelValues("heal", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.executions.WithLabelValues("heal", "argument_coercion_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.executions.WithLabelValues("fail", "invocation_error")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.executions.WithLabelValues("unknown", "command_not_found")))

	// heal, fail and unknown each have one histogram series.
	assert.Equal(t, 3, testutil.CollectAndCount(m.duration))
}

func TestMetricsGauges(t *testing.T) {
	m := NewMetrics()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.timeScale))

	m.SetTimeScale(0.25)
	m.SetRegistered(12)
	assert.Equal(t, 0.25, testutil.ToFloat64(m.timeScale))
	assert.Equal(t, 12.0, testutil.ToFloat64(m.registered))
}

func TestServerExposesMetrics(t *testing.T) {
	m := NewMetrics()
	d, _ := newTestDispatcher(m)
	_ = d.Execute("heal 1")

	srv, err := Serve("127.0.0.1:0", m, nil)
	require.NoError(t, err)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", srv.Addr()))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `devconsole_executions_total{command="heal",outcome="ok"} 1`)
	assert.Contains(t, string(body), "devconsole_time_scale 1")
}

func TestServeBadAddress(t *testing.T) {
	_, err := Serve("256.0.0.1:bad", NewMetrics(), nil)
	assert.Error(t, err)
}

func TestTrackerAggregates(t *testing.T) {
	tr := NewTracker("s1")
	tr.Observe(commands.Execution{Line: "heal 1", Command: "heal", Outcome: commands.OutcomeNone, Duration: 3 * time.Millisecond})
	tr.Observe(commands.Execution{Line: "heal 2", Command: "heal", Outcome: commands.OutcomeNone, Duration: time.Millisecond})
	tr.Observe(commands.Execution{Line: "hp", Command: "hp", Outcome: commands.OutcomeNone, Duration: 5 * time.Millisecond})
	tr.Observe(commands.Execution{Line: "nope", Command: "nope", Outcome: commands.OutcomeCommandNotFound})

	s := tr.Current()
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 3, s.Outcomes["ok"])
	assert.Equal(t, 1, s.Outcomes["command_not_found"])
	assert.NotContains(t, s.Commands, "nope")
	assert.Equal(t, []string{"heal", "hp"}, s.TopCommands(5))
	assert.Equal(t, []string{"heal"}, s.TopCommands(1))

	require.Len(t, s.Slowest, 4)
	assert.Equal(t, "hp", s.Slowest[0].Line)
	assert.Equal(t, "heal 1", s.Slowest[1].Line)
}

func TestTrackerKeepsTopTenSlowest(t *testing.T) {
	tr := NewTracker("s")
	for i := 0; i < 25; i++ {
		tr.Observe(commands.Execution{Line: fmt.Sprint(i), Command: "x", Duration: time.Duration(i) * time.Millisecond})
	}
	s := tr.Current()
	require.Len(t, s.Slowest, maxSlowest)
	assert.Equal(t, "24", s.Slowest[0].Line)
	assert.Equal(t, "15", s.Slowest[9].Line)
}

func TestTrackerCurrentIsCopy(t *testing.T) {
	tr := NewTracker("s")
	tr.Observe(commands.Execution{Command: "a", Outcome: commands.OutcomeNone})
	s := tr.Current()
	s.Commands["a"] = 99
	assert.Equal(t, 1, tr.Current().Commands["a"])
}

func TestStatsCommand(t *testing.T) {
	tr := NewTracker("abc")
	d, out := newTestDispatcher(tr)
	_ = d.Execute("heal 1")
	_ = d.Execute("fail")

	reg := d.Registry()
	reg.Rescan(tr)
	require.NoError(t, d.Execute("stats"))

	lines := *out
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "session abc")
	assert.Contains(t, lines[0], "2 executed")
	assert.Contains(t, lines, "  invocation_error         1")
}
