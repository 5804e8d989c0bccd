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
	"os"
	"time"

	"github.com/AICP/device-sony-msm8974-common/testutil"
)

var Run = run

type BusConn = busConn

func MockConnectBus(f func(session bool) (BusConn, error)) (restore func()) {
	return testutil.Mock(&connectBus, f)
}

func MockSdNotify(f func(unsetEnvironment bool, state string) (bool, error)) (restore func()) {
	return testutil.Mock(&sdNotify, f)
}

func MockSdWatchdogEnabled(f func(unsetEnvironment bool) (time.Duration, error)) (restore func()) {
	return testutil.Mock(&sdWatchdogEnabled, f)
}

func MockSignalNotify(f func(c chan<- os.Signal, sig ...os.Signal)) (restore func()) {
	return testutil.Mock(&signalNotify, f)
}
