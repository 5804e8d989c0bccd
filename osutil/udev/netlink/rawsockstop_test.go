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
	"os"
	"time"

	. "gopkg.in/check.v1"

	"github.com/AICP/device-sony-msm8974-common/osutil/udev/netlink"
)

type rawSockStopperSuite struct{}

var _ = Suite(&rawSockStopperSuite{})

func (s *rawSockStopperSuite) TestReadableThenStop(c *C) {
	r, w, err := os.Pipe()
	c.Assert(err, IsNil)
	defer r.Close()
	defer w.Close()

	readableOrStop, stop, err := netlink.RawSockStopper(int(r.Fd()))
	c.Assert(err, IsNil)

	_, err = w.Write([]byte("x"))
	c.Assert(err, IsNil)
	readable, err := readableOrStop()
	c.Assert(err, IsNil)
	c.Check(readable, Equals, true)

	done := make(chan bool, 1)
	buf := make([]byte, 1)
	_, err = r.Read(buf)
	c.Assert(err, IsNil)
	go func() {
		readable, err := readableOrStop()
		c.Check(err, IsNil)
		done <- readable
	}()
	stop()
	select {
	case readable := <-done:
		c.Check(readable, Equals, false)
	case <-time.After(10 * time.Second):
		c.Fatal("readableOrStop did not return after stop")
	}
}
