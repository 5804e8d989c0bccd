// -*- Mode: Go; indent-tabs-mode: t -*-

/*
 * Copyright (C) 2026 Canonical Ltd
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License version 3 as
 * published by the Free Software Foundation.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/jessevdk/go-flags"

	"github.com/AICP/device-sony-msm8974-common/dbusapi"
	"github.com/AICP/device-sony-msm8974-common/powerhal"
)

func init() {
	addCommand("hint", "Send a power hint", longHintHelp, func() flags.Commander { return &cmdHint{} })
	addCommand("interactive", "Switch the interactive state", "", func() flags.Commander { return &cmdInteractive{} })
	addCommand("feature", "Toggle a device feature", "", func() flags.Commander { return &cmdFeature{} })
	addCommand("status", "Show the state of the daemon", "", func() flags.Commander { return &cmdStatus{} })
}

var longHintHelp = `
The hint command sends a power hint to the running daemon. The hint is
one of ` + strings.Join(powerhal.HintNames(), ", ") + ` or a
numeric hint id. The optional data is the interaction length in
milliseconds, 1 or 0 to turn low power on or off, or the video encode
state.
`

func withClient(f func(c *dbusapi.Client) error) error {
	conn, err := connectBus(opts.Session)
	if err != nil {
		return err
	}
	defer conn.Close()
	return f(dbusapi.NewClient(conn))
}

type cmdHint struct {
	Positional struct {
		Hint string `positional-arg-name:"<hint>" required:"yes"`
		Data int32  `positional-arg-name:"<data>"`
	} `positional-args:"yes"`
}

func (x *cmdHint) Execute([]string) error {
	hint, err := powerhal.ParseHint(x.Positional.Hint)
	if err != nil {
		return err
	}
	return withClient(func(c *dbusapi.Client) error {
		return c.PowerHint(hint, x.Positional.Data)
	})
}

type cmdInteractive struct {
	Positional struct {
		State string `positional-arg-name:"<on|off>" required:"yes"`
	} `positional-args:"yes"`
}

func (x *cmdInteractive) Execute([]string) error {
	var on bool
	switch x.Positional.State {
	case "on":
		on = true
	case "off":
	default:
		return fmt.Errorf(`interactive state must be "on" or "off", got %q`, x.Positional.State)
	}
	return withClient(func(c *dbusapi.Client) error {
		return c.SetInteractive(on)
	})
}

type cmdFeature struct {
	Positional struct {
		Feature string `positional-arg-name:"<feature>" required:"yes"`
		State   int32  `positional-arg-name:"<state>" required:"yes"`
	} `positional-args:"yes"`
}

func (x *cmdFeature) Execute([]string) error {
	feature, err := powerhal.ParseFeature(x.Positional.Feature)
	if err != nil {
		return err
	}
	return withClient(func(c *dbusapi.Client) error {
		return c.SetFeature(feature, x.Positional.State)
	})
}

type cmdStatus struct{}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (x *cmdStatus) Execute([]string) error {
	return withClient(func(c *dbusapi.Client) error {
		st, err := c.Status()
		if err != nil {
			return err
		}

		var capped []string
		for cpu, set := range st.FreqSet {
			if set {
				capped = append(capped, fmt.Sprintf("cpu%d", cpu))
			}
		}
		if len(capped) == 0 {
			capped = []string{"-"}
		}
		groups := make([]string, 0, len(st.Handles))
		for g := range st.Handles {
			groups = append(groups, g)
		}
		sort.Strings(groups)
		handles := make([]string, 0, len(groups))
		for _, g := range groups {
			handles = append(handles, fmt.Sprintf("%s=%d", g, st.Handles[g]))
		}

		w := tabwriter.NewWriter(Stdout, 5, 3, 2, ' ', 0)
		defer w.Flush()
		fmt.Fprintf(w, "low-power:\t%s\n", onOff(st.LowPower))
		fmt.Fprintf(w, "capped:\t%s\n", strings.Join(capped, " "))
		fmt.Fprintf(w, "interactive:\t%s\n", st.Interactive)
		fmt.Fprintf(w, "display-boost:\t%s\n", onOff(st.DisplayBoost))
		fmt.Fprintf(w, "last-boost:\t%v\n", st.LastBoost)
		fmt.Fprintf(w, "handles:\t%s\n", strings.Join(handles, " "))
		return nil
	})
}
