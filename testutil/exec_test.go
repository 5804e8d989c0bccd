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

package testutil_test

import (
	"os/exec"

	. "gopkg.in/check.v1"

	. "github.com/AICP/device-sony-msm8974-common/testutil"
)

type mockCommandSuite struct{}

var _ = Suite(&mockCommandSuite{})

func (s *mockCommandSuite) TestMockCommand(c *C) {
	mock := MockCommand(c, "cmd", "true")
	defer mock.Restore()
	err := exec.Command("cmd", "first-run", "--arg1", "arg2", "a space").Run()
	c.Assert(err, IsNil)
	err = exec.Command("cmd", "second-run", "--arg1", "arg2", "a %s").Run()
	c.Assert(err, IsNil)
	c.Assert(mock.Calls(), DeepEquals, [][]string{
		{"cmd", "first-run", "--arg1", "arg2", "a space"},
		{"cmd", "second-run", "--arg1", "arg2", "a %s"},
	})
}

func (s *mockCommandSuite) TestMockCommandScriptAndForget(c *C) {
	mock := MockCommand(c, "service", `echo "service: Service SurfaceFlinger does not exist"; exit 1`)
	defer mock.Restore()

	out, err := exec.Command("service", "call", "SurfaceFlinger", "1016").CombinedOutput()
	c.Check(err, ErrorMatches, "exit status 1")
	c.Check(string(out), Equals, "service: Service SurfaceFlinger does not exist\n")
	c.Check(mock.Calls(), DeepEquals, [][]string{{"service", "call", "SurfaceFlinger", "1016"}})

	mock.ForgetCalls()
	c.Check(mock.Calls(), HasLen, 0)
}

func (s *mockCommandSuite) TestMockCommandConflictEcho(c *C) {
	mock := MockCommand(c, "do-not-swallow-echo-args", "")
	defer mock.Restore()

	c.Assert(exec.Command("do-not-swallow-echo-args", "-E", "-n", "-e").Run(), IsNil)
	c.Assert(mock.Calls(), DeepEquals, [][]string{
		{"do-not-swallow-echo-args", "-E", "-n", "-e"},
	})
}
