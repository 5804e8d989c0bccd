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

package osutil

import (
	"os"
	"strings"
)

var procCmdline = "/proc/cmdline"

// KernelCommandLineKeyValues returns a map of the requested keys found on
// the kernel command line. Keys without a value map to "".
func KernelCommandLineKeyValues(keys ...string) (map[string]string, error) {
	buf, err := os.ReadFile(procCmdline)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}
	m := make(map[string]string, len(keys))
	for _, arg := range strings.Fields(string(buf)) {
		key, value, _ := strings.Cut(arg, "=")
		if wanted[key] {
			m[key] = strings.Trim(value, `"`)
		}
	}
	return m, nil
}
