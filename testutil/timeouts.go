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

package testutil

import (
	"os"
	"strconv"
	"time"
)

// HostScaledTimeout stretches a test timeout on slow hosts. The factor is
// taken from POWERHAL_TEST_TIMEOUT_SCALE, and race-enabled runs
// (GO_TEST_RACE=1) get at least 5x.
func HostScaledTimeout(t time.Duration) time.Duration {
	scale := 1
	if n, err := strconv.Atoi(os.Getenv("POWERHAL_TEST_TIMEOUT_SCALE")); err == nil && n > 1 {
		scale = n
	}
	if os.Getenv("GO_TEST_RACE") == "1" && scale < 5 {
		scale = 5
	}
	return t * time.Duration(scale)
}
