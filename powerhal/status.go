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

package powerhal

import (
	"time"

	"github.com/AICP/device-sony-msm8974-common/resource"
)

// Status is a snapshot of the module state.
type Status struct {
	LowPower     bool                       `json:"low-power"`
	FreqSet      []bool                     `json:"freq-set"`
	Interactive  string                     `json:"interactive"`
	DisplayBoost bool                       `json:"display-boost"`
	LastBoost    time.Duration              `json:"last-boost"`
	Handles      map[string]resource.Handle `json:"handles"`
}

// Status returns a snapshot of the module state. Interactive is "unset",
// "on" or "off"; LastBoost is the monotonic instant of the last accepted
// interaction boost.
func (m *Module) Status() Status {
	m.lowPowerMu.Lock()
	st := Status{
		LowPower: m.lowPower,
		FreqSet:  append([]bool(nil), m.freqSet...),
	}
	m.lowPowerMu.Unlock()

	switch m.lastMode.Load() {
	case modeOn:
		st.Interactive = "on"
	case modeOff:
		st.Interactive = "off"
	default:
		st.Interactive = "unset"
	}
	st.DisplayBoost = m.displayBoost.Load()
	st.LastBoost = m.limiter.Last()
	st.Handles = make(map[string]resource.Handle)
	for _, g := range resource.Groups() {
		st.Handles[g.String()] = m.tracker.Handle(g)
	}
	return st
}
