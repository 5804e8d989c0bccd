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

package netlink_test

import (
	"strings"

	. "gopkg.in/check.v1"

	"github.com/AICP/device-sony-msm8974-common/osutil/udev/netlink"
)

type ueventSuite struct{}

var _ = Suite(&ueventSuite{})

func raw(fields ...string) []byte {
	return []byte(strings.Join(fields, "\x00") + "\x00")
}

func (s *ueventSuite) TestParseUEvent(c *C) {
	ev, err := netlink.ParseUEvent(raw(
		"online@/devices/system/cpu/cpu2",
		"ACTION=online",
		"DEVPATH=/devices/system/cpu/cpu2",
		"SUBSYSTEM=cpu",
		"SEQNUM=2569",
	))
	c.Assert(err, IsNil)
	c.Check(ev, DeepEquals, &cpuOnlineEvent)
	c.Check(ev.String(), Equals, "online@/devices/system/cpu/cpu2")
}

func (s *ueventSuite) TestParseUEventValueWithEquals(c *C) {
	ev, err := netlink.ParseUEvent(raw("change@/devices/virtual/misc/foo", "ARGS=a=b"))
	c.Assert(err, IsNil)
	c.Check(ev.Action, Equals, netlink.CHANGE)
	c.Check(ev.Env, DeepEquals, map[string]string{"ARGS": "a=b"})
}

func (s *ueventSuite) TestParseUEventErrors(c *C) {
	for _, t := range []struct {
		raw []byte
		err string
	}{
		{nil, "cannot parse uevent: empty message"},
		{raw("libudev"), `cannot parse uevent header "libudev": missing '@'`},
		{raw("explode@/devices/foo"), `cannot parse uevent header "explode@/devices/foo": unknown action "explode"`},
		{raw("add@/devices/foo", "NOVALUE"), `cannot parse uevent add@/devices/foo: invalid env entry "NOVALUE"`},
	} {
		_, err := netlink.ParseUEvent(t.raw)
		c.Check(err, ErrorMatches, t.err)
	}
}
