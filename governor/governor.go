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

// Package governor reads the active cpufreq governor and applies its
// interactive/non-interactive tunables.
package governor

import (
	"fmt"
	"path/filepath"

	"github.com/AICP/device-sony-msm8974-common/config"
	"github.com/AICP/device-sony-msm8974-common/dirs"
	"github.com/AICP/device-sony-msm8974-common/logger"
	"github.com/AICP/device-sony-msm8974-common/sysfs"
)

// Current returns the scaling governor of cpu.
func Current(cpu int) (string, error) {
	gov, err := sysfs.ReadString(dirs.CPUFreqFile(cpu, "scaling_governor"))
	if err != nil {
		return "", fmt.Errorf("cannot obtain scaling governor: %w", err)
	}
	if gov == "" {
		return "", fmt.Errorf("cannot obtain scaling governor: cpu%d reports none", cpu)
	}
	return gov, nil
}

// A Tuner adjusts a governor when the device becomes interactive or not.
type Tuner interface {
	Tune(governor string, interactive bool) error
}

// TableTuner writes the settings configured for each governor.
type TableTuner struct {
	sink     sysfs.Writer
	profiles map[string]config.GovernorProfile
}

// NewTableTuner returns a Tuner applying profiles through sink. Setting paths
// are relative to the global root directory.
func NewTableTuner(sink sysfs.Writer, profiles map[string]config.GovernorProfile) *TableTuner {
	return &TableTuner{sink: sink, profiles: profiles}
}

// Tune implements Tuner. Governors without a profile are left alone. Every
// setting is attempted, the first failure is returned.
func (t *TableTuner) Tune(governor string, interactive bool) error {
	profile, ok := t.profiles[governor]
	if !ok {
		logger.Debugf("no tunables for governor %q", governor)
		return nil
	}
	settings := profile.Off
	if interactive {
		settings = profile.On
	}

	var firstErr error
	for _, s := range settings {
		path := filepath.Join(dirs.GlobalRootDir, s.Path)
		if err := t.sink.Write(path, s.Value); err != nil {
			logger.Noticef("%v", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}
