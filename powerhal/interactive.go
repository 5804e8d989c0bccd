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
	"github.com/AICP/device-sony-msm8974-common/governor"
	"github.com/AICP/device-sony-msm8974-common/logger"
)

var currentGovernor = governor.Current

// SetInteractive tunes the active governor for the screen being on or off.
// Repeating the last state is a no-op. The state is recorded before the
// governor is looked at, so a failed lookup still counts as a transition.
func (m *Module) SetInteractive(on bool) {
	mode := modeOff
	if on {
		mode = modeOn
	}
	// recorded ahead of the governor lookup, as the stock HAL does
	if m.lastMode.Swap(mode) == mode {
		return
	}
	logger.Debugf("interactive %v", on)

	gov, err := currentGovernor(0)
	if err != nil {
		logger.Noticef("%v", err)
		return
	}
	if m.override(on, gov) {
		return
	}
	if err := m.tuner.Tune(gov, on); err != nil {
		logger.Noticef("cannot tune governor %q: %v", gov, err)
	}
}
