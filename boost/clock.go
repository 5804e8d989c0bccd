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

package boost

import (
	"time"

	"golang.org/x/sys/unix"
)

// A Clock reports monotonic instants as time since an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

type monotonicClock struct{}

var (
	clockGettime = unix.ClockGettime
	processStart = time.Now()
)

// Now reads CLOCK_MONOTONIC.
func (monotonicClock) Now() time.Duration {
	var ts unix.Timespec
	if err := clockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		// time.Since uses the runtime monotonic reading
		return time.Since(processStart)
	}
	return time.Duration(ts.Nano())
}

// Monotonic is the system monotonic clock.
var Monotonic Clock = monotonicClock{}
