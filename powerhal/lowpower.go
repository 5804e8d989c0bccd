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
	"github.com/AICP/device-sony-msm8974-common/dirs"
	"github.com/AICP/device-sony-msm8974-common/display"
	"github.com/AICP/device-sony-msm8974-common/logger"
)

// setLowPower caps every cpu and lowers the display refresh rate, or lifts
// the cap and restores the refresh rate. The whole transition runs under
// lowPowerMu so concurrent transitions never interleave their writes.
//
// The minimum frequency lowered on enable is left alone on disable.
func (m *Module) setLowPower(enable bool) {
	m.lowPowerMu.Lock()
	defer m.lowPowerMu.Unlock()

	lp := m.cfg.LowPower
	m.lowPower = enable
	if enable {
		logger.Noticef("entering low power mode")
		for cpu := range m.freqSet {
			// a failed write leaves an earlier cap in place
			if m.capCPU(cpu) {
				m.freqSet[cpu] = true
			}
		}
		m.setRefreshMode(display.RefreshReduced)
		return
	}

	logger.Noticef("leaving low power mode")
	for cpu := range m.freqSet {
		if err := m.sink.Write(dirs.CPUFreqFile(cpu, "scaling_max_freq"), lp.NormalMaxFreq); err != nil {
			logger.Noticef("%v", err)
			continue
		}
		m.freqSet[cpu] = false
	}
	m.setRefreshMode(display.RefreshNormal)
}

// capCPU writes the low-power frequency bounds of cpu and reports whether
// the maximum was applied. Must be called with lowPowerMu held.
func (m *Module) capCPU(cpu int) bool {
	lp := m.cfg.LowPower
	if err := m.sink.Write(dirs.CPUFreqFile(cpu, "scaling_min_freq"), lp.MinFreq); err != nil {
		logger.Noticef("%v", err)
	}
	if err := m.sink.Write(dirs.CPUFreqFile(cpu, "scaling_max_freq"), lp.MaxFreq); err != nil {
		logger.Noticef("%v", err)
		return false
	}
	return true
}

func (m *Module) setRefreshMode(mode display.RefreshMode) {
	if err := m.refresh.SetRefreshMode(mode); err != nil {
		logger.Noticef("%v", err)
	}
}

// LowPowerEnabled reports whether low-power mode is on.
func (m *Module) LowPowerEnabled() bool {
	m.lowPowerMu.Lock()
	defer m.lowPowerMu.Unlock()
	return m.lowPower
}

// CPUOnline re-applies the low-power cap to a cpu that just came online,
// since its cpufreq policy starts over. It does nothing outside of
// low-power mode.
func (m *Module) CPUOnline(cpu int) {
	m.lowPowerMu.Lock()
	defer m.lowPowerMu.Unlock()

	if !m.lowPower {
		return
	}
	if cpu < 0 || cpu >= len(m.freqSet) {
		logger.Debugf("ignoring unknown cpu%d coming online", cpu)
		return
	}
	logger.Debugf("cpu%d online, re-applying low power cap", cpu)
	// the policy of an onlined cpu starts uncapped, so a failed write
	// means no cap
	m.freqSet[cpu] = m.capCPU(cpu)
}
