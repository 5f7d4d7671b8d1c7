// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package timescale

import (
	"fmt"
	"math"
	"time"

	"github.com/jeranaias/devconsole/internal/commands"
	"github.com/jeranaias/devconsole/internal/easing"
)

// DescribeCommands exposes the controller to the console.
func (c *Controller) DescribeCommands() []*commands.Command {
	return []*commands.Command{
		commands.NewRead("timescale", "Current time scale", func() any { return c.Scale() }),
		commands.NewRead("timestate", "Current time mode", func() any { return string(c.State()) }),
		commands.NewRead("gametime", "Scaled time since start", func() any {
			return c.GameTime().Round(time.Millisecond)
		}),
		commands.NewInvoke("pause", "Freeze time", func(ctx *commands.Context, _ []commands.Value) error {
			if err := c.Pause(); err != nil {
				return err
			}
			ctx.Print("time paused")
			return nil
		}),
		commands.NewInvoke("unpause", "Resume time and cancel transitions", func(ctx *commands.Context, _ []commands.Value) error {
			c.Unpause()
			ctx.Print("time resumed")
			return nil
		}),
		commands.NewInvoke("hitstop", "Freeze time briefly", func(ctx *commands.Context, args []commands.Value) error {
			d, err := seconds(args[0].Float())
			if err != nil {
				return err
			}
			return c.HitStop(d)
		}, commands.FloatParam("seconds")),
		commands.NewInvoke("bullettime", "Ease into slow motion", func(ctx *commands.Context, args []commands.Value) error {
			d, err := seconds(args[0].Float())
			if err != nil {
				return err
			}
			return c.StartBulletTime(d, args[1].Float(), args[2].Bool())
		}, commands.FloatParam("duration"), commands.FloatParam("scale"), commands.BoolParam("ease")),
		commands.NewInvoke("bullettime_end", "Ease out of slow motion", func(ctx *commands.Context, args []commands.Value) error {
			d, err := seconds(args[0].Float())
			if err != nil {
				return err
			}
			return c.EndBulletTime(d, args[1].Float(), args[2].Bool())
		}, commands.FloatParam("duration"), commands.FloatParam("from"), commands.BoolParam("ease")),
		commands.NewInvoke("easing", "Set the curve for eased transitions", func(ctx *commands.Context, args []commands.Value) error {
			f, err := easing.ByName(args[0].Str())
			if err != nil {
				return err
			}
			c.SetCurve(f)
			ctx.Printf("easing set to %s", args[0].Str())
			return nil
		}, commands.StringParam("name")),
	}
}

// seconds converts a console argument to a duration within MaxDuration.
func seconds(s float64) (time.Duration, error) {
	if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 || s > MaxDuration.Seconds() {
		return 0, fmt.Errorf("%w: %g seconds outside [0, %g]", ErrInvalidArgument, s, MaxDuration.Seconds())
	}
	return time.Duration(s * float64(time.Second)), nil
}
