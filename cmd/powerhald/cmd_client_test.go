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

package main_test

import (
	"errors"

	. "gopkg.in/check.v1"

	powerhald "github.com/AICP/device-sony-msm8974-common/cmd/powerhald"
)

const busName = "org.aicp.PowerHAL"

func (s *powerhaldSuite) calls() [][]interface{} {
	return s.conn.object(busName).calls
}

func (s *powerhaldSuite) TestHint(c *C) {
	c.Assert(powerhald.Run([]string{"hint", "interaction", "1200"}), IsNil)
	c.Assert(powerhald.Run([]string{"hint", "low-power", "1"}), IsNil)
	c.Assert(powerhald.Run([]string{"hint", "0x110"}), IsNil)
	c.Check(s.calls(), DeepEquals, [][]interface{}{
		{"org.aicp.PowerHAL.PowerHint", uint32(2), int32(1200)},
		{"org.aicp.PowerHAL.PowerHint", uint32(5), int32(1)},
		{"org.aicp.PowerHAL.PowerHint", uint32(0x110), int32(0)},
	})
	c.Check(s.sessions, DeepEquals, []bool{false, false, false})
	c.Check(s.conn.closed, Equals, 3)
}

func (s *powerhaldSuite) TestHintSessionBus(c *C) {
	c.Assert(powerhald.Run([]string{"--session", "hint", "vsync"}), IsNil)
	c.Assert(powerhald.Run([]string{"hint", "vsync"}), IsNil)
	c.Check(s.sessions, DeepEquals, []bool{true, false})
}

func (s *powerhaldSuite) TestHintUnknown(c *C) {
	err := powerhald.Run([]string{"hint", "turbo"})
	c.Check(err, ErrorMatches, `unknown hint "turbo", .*`)
	c.Check(s.sessions, HasLen, 0)
}

func (s *powerhaldSuite) TestHintMissing(c *C) {
	err := powerhald.Run([]string{"hint"})
	c.Check(err, ErrorMatches, "the required argument .<hint>. was not provided")
}

func (s *powerhaldSuite) TestInteractive(c *C) {
	c.Assert(powerhald.Run([]string{"interactive", "on"}), IsNil)
	c.Assert(powerhald.Run([]string{"interactive", "off"}), IsNil)
	c.Check(s.calls(), DeepEquals, [][]interface{}{
		{"org.aicp.PowerHAL.SetInteractive", true},
		{"org.aicp.PowerHAL.SetInteractive", false},
	})

	err := powerhald.Run([]string{"interactive", "maybe"})
	c.Check(err, ErrorMatches, `interactive state must be "on" or "off", got "maybe"`)
}

func (s *powerhaldSuite) TestFeature(c *C) {
	c.Assert(powerhald.Run([]string{"feature", "double-tap-to-wake", "1"}), IsNil)
	c.Check(s.calls(), DeepEquals, [][]interface{}{
		{"org.aicp.PowerHAL.SetFeature", uint32(1), int32(1)},
	})

	err := powerhald.Run([]string{"feature", "glove-mode", "1"})
	c.Check(err, ErrorMatches, `unknown feature "glove-mode"`)
}

func (s *powerhaldSuite) TestDaemonNotRunning(c *C) {
	s.conn.object(busName).err = errors.New("The name org.aicp.PowerHAL was not provided by any .service files")
	err := powerhald.Run([]string{"interactive", "on"})
	c.Check(err, ErrorMatches, "cannot set interactive state: The name org.aicp.PowerHAL was not provided .*")
}

func (s *powerhaldSuite) TestConnectError(c *C) {
	restore := powerhald.MockConnectBus(func(bool) (powerhald.BusConn, error) {
		return nil, errors.New("cannot connect to the system bus: no such file or directory")
	})
	defer restore()

	err := powerhald.Run([]string{"status"})
	c.Check(err, ErrorMatches, "cannot connect to the system bus: no such file or directory")
}

func (s *powerhaldSuite) TestStatus(c *C) {
	s.conn.object(busName).body = []interface{}{`{"low-power":true,"freq-set":[true,false,true,true],"interactive":"on","display-boost":true,"last-boost":2500000000,"handles":{"big":2,"downmigrate":3,"little":1,"upmigrate":4}}`}

	c.Assert(powerhald.Run([]string{"status"}), IsNil)
	c.Check(s.stdout.String(), Equals, `low-power:      on
capped:         cpu0 cpu2 cpu3
interactive:    on
display-boost:  on
last-boost:     2.5s
handles:        big=2 downmigrate=3 little=1 upmigrate=4
`)
}

func (s *powerhaldSuite) TestStatusIdle(c *C) {
	s.conn.object(busName).body = []interface{}{`{"low-power":false,"freq-set":[false,false],"interactive":"unset","display-boost":false,"last-boost":0,"handles":{}}`}

	c.Assert(powerhald.Run([]string{"status"}), IsNil)
	c.Check(s.stdout.String(), Equals, `low-power:      off
capped:         -
interactive:    unset
display-boost:  off
last-boost:     0s
handles:        
`)
}
