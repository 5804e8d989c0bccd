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

package dirs

import (
	"fmt"
	"os"
	"path/filepath"
)

// the various file paths
var (
	GlobalRootDir string

	SysfsDir       string
	CPUSysfsDir    string
	SocIDFile      string
	ProcSysKernel  string
	DevInputDir    string
	PowerHALConfig string
)

const defaultConfigFile = "/etc/powerhal/powerhal.yaml"

// CPUFreqFile returns the path of the given cpufreq control of a cpu,
// e.g. CPUFreqFile(1, "scaling_max_freq").
func CPUFreqFile(cpu int, name string) string {
	return filepath.Join(CPUSysfsDir, fmt.Sprintf("cpu%d", cpu), "cpufreq", name)
}

// SchedKnob returns the path of a scheduler tunable under
// /proc/sys/kernel.
func SchedKnob(name string) string {
	return filepath.Join(ProcSysKernel, name)
}

// SetRootDir allows settings a new global root directory, this is useful
// for e.g. chroot operations and tests.
func SetRootDir(rootdir string) {
	if rootdir == "" {
		rootdir = "/"
	}
	GlobalRootDir = rootdir

	SysfsDir = filepath.Join(rootdir, "/sys")
	CPUSysfsDir = filepath.Join(SysfsDir, "/devices/system/cpu")
	SocIDFile = filepath.Join(SysfsDir, "/devices/soc0/soc_id")
	ProcSysKernel = filepath.Join(rootdir, "/proc/sys/kernel")
	DevInputDir = filepath.Join(rootdir, "/dev/input")
	PowerHALConfig = filepath.Join(rootdir, defaultConfigFile)
}

func init() {
	SetRootDir(os.Getenv("POWERHAL_GLOBAL_ROOT"))
}
