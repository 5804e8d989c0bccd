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

package logger

import (
	"github.com/coreos/go-systemd/journal"

	"github.com/AICP/device-sony-msm8974-common/testutil"
)

func MockProcCmdlineInTests(use bool) (restore func()) {
	return testutil.Mock(&procCmdlineInTests, use)
}

func MockJournal(enabled bool, send func(msg string, pri journal.Priority, vars map[string]string) error) (restore func()) {
	r1 := testutil.Mock(&journalEnabled, func() bool { return enabled })
	r2 := testutil.Mock(&journalSend, send)
	return func() {
		r2()
		r1()
	}
}

// Current returns the installed logger.
func Current() Logger {
	lock.Lock()
	defer lock.Unlock()
	return logger
}
