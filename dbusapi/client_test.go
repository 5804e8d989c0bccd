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

package dbusapi_test

import (
	"errors"

	"github.com/godbus/dbus/v5"
	. "gopkg.in/check.v1"

	"github.com/AICP/device-sony-msm8974-common/dbusapi"
	"github.com/AICP/device-sony-msm8974-common/powerhal"
	"github.com/AICP/device-sony-msm8974-common/resource"
)

type fakeObject struct {
	dbus.BusObject

	calls [][]interface{}
	body  []interface{}
	err   error
}

func (o *fakeObject) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	o.calls = append(o.calls, append([]interface{}{method}, args...))
	return &dbus.Call{Body: o.body, Err: o.err}
}

type fakeBus struct {
	dest string
	path dbus.ObjectPath
	obj  *fakeObject
}

func (b *fakeBus) Object(dest string, path dbus.ObjectPath) dbus.BusObject {
	b.dest, b.path = dest, path
	return b.obj
}

type clientSuite struct {
	bus    *fakeBus
	client *dbusapi.Client
}

var _ = Suite(&clientSuite{})

func (s *clientSuite) SetUpTest(c *C) {
	s.bus = &fakeBus{obj: &fakeObject{}}
	s.client = dbusapi.NewClient(s.bus)
}

func (s *clientSuite) TestCalls(c *C) {
	c.Check(s.bus.dest, Equals, "org.aicp.PowerHAL")
	c.Check(s.bus.path, Equals, dbus.ObjectPath("/org/aicp/PowerHAL"))

	c.Assert(s.client.SetInteractive(true), IsNil)
	c.Assert(s.client.PowerHint(powerhal.HintInteraction, 300), IsNil)
	c.Assert(s.client.SetFeature(powerhal.FeatureDoubleTapToWake, 0), IsNil)
	c.Check(s.bus.obj.calls, DeepEquals, [][]interface{}{
		{"org.aicp.PowerHAL.SetInteractive", true},
		{"org.aicp.PowerHAL.PowerHint", uint32(2), int32(300)},
		{"org.aicp.PowerHAL.SetFeature", uint32(1), int32(0)},
	})
}

func (s *clientSuite) TestErrors(c *C) {
	s.bus.obj.err = errors.New("The name org.aicp.PowerHAL was not provided by any .service files")

	c.Check(s.client.SetInteractive(false), ErrorMatches, "cannot set interactive state: The name .*")
	c.Check(s.client.PowerHint(powerhal.HintLowPower, 1), ErrorMatches, "cannot send low-power hint: The name .*")
	c.Check(s.client.SetFeature(powerhal.FeatureDoubleTapToWake, 1), ErrorMatches, "cannot set double-tap-to-wake: The name .*")
	_, err := s.client.Status()
	c.Check(err, ErrorMatches, "cannot get status: The name .*")
}

func (s *clientSuite) TestStatus(c *C) {
	s.bus.obj.body = []interface{}{`{"low-power":true,"freq-set":[true,true],"interactive":"off","display-boost":true,"last-boost":1500000000,"handles":{"big":2}}`}

	st, err := s.client.Status()
	c.Assert(err, IsNil)
	c.Check(st.LowPower, Equals, true)
	c.Check(st.FreqSet, DeepEquals, []bool{true, true})
	c.Check(st.Interactive, Equals, "off")
	c.Check(st.DisplayBoost, Equals, true)
	c.Check(st.LastBoost.String(), Equals, "1.5s")
	c.Check(st.Handles["big"], Equals, resource.Handle(2))
	c.Check(s.bus.obj.calls, DeepEquals, [][]interface{}{{"org.aicp.PowerHAL.GetStatus"}})

	s.bus.obj.body = []interface{}{"not json"}
	_, err = s.client.Status()
	c.Check(err, ErrorMatches, "cannot decode status: .*")
}
