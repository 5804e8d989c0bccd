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
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/check.v1"
)

// MockCmd is a fake executable placed first in PATH that records its
// invocations.
type MockCmd struct {
	binDir  string
	logFile string
	oldPath string
}

// The wrapper appends every argument, basename included, to the log file
// followed by a NUL, and one more NUL to end the call. Arguments may thus
// hold newlines.
const mockScript = `#!/bin/bash
{
	printf '%%s\0' "$(basename "$0")" "$@"
	printf '\0'
} >> %q
%s
`

// MockCommand creates a command named basename running script after
// logging its arguments. Restore must be called to clean up PATH.
func MockCommand(c *check.C, basename, script string) *MockCmd {
	binDir := c.MkDir()
	cmd := &MockCmd{
		binDir:  binDir,
		logFile: filepath.Join(binDir, basename+".log"),
		oldPath: os.Getenv("PATH"),
	}
	exe := filepath.Join(binDir, basename)
	if err := os.WriteFile(exe, []byte(fmt.Sprintf(mockScript, cmd.logFile, script)), 0755); err != nil {
		panic(fmt.Sprintf("cannot write mock command %q: %v", basename, err))
	}
	os.Setenv("PATH", binDir+":"+cmd.oldPath)
	return cmd
}

// Restore puts back the original PATH.
func (cmd *MockCmd) Restore() {
	os.Setenv("PATH", cmd.oldPath)
}

// Calls returns the recorded invocations, each with the command name first.
func (cmd *MockCmd) Calls() [][]string {
	raw, err := os.ReadFile(cmd.logFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		panic(err)
	}
	var calls [][]string
	for _, call := range bytes.Split(bytes.TrimSuffix(raw, []byte{0, 0}), []byte{0, 0}) {
		var args []string
		for _, arg := range bytes.Split(bytes.TrimSuffix(call, []byte{0}), []byte{0}) {
			args = append(args, string(arg))
		}
		calls = append(calls, args)
	}
	return calls
}

// ForgetCalls clears the recorded invocations.
func (cmd *MockCmd) ForgetCalls() {
	if err := os.Remove(cmd.logFile); err != nil && !os.IsNotExist(err) {
		panic(err)
	}
}
