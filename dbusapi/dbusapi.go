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

// Package dbusapi exposes the power HAL entry points on the system bus.
package dbusapi

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"github.com/juju/ratelimit"
	"gopkg.in/tomb.v2"

	"github.com/AICP/device-sony-msm8974-common/config"
	"github.com/AICP/device-sony-msm8974-common/logger"
	"github.com/AICP/device-sony-msm8974-common/powerhal"
)

const (
	BusName    = "org.aicp.PowerHAL"
	ObjectPath = dbus.ObjectPath("/org/aicp/PowerHAL")
	Interface  = "org.aicp.PowerHAL"
)

const introspectionXML = `
<interface name='org.aicp.PowerHAL'>
	<method name='SetInteractive'>
		<arg type='b' name='on' direction='in'/>
	</method>
	<method name='PowerHint'>
		<arg type='u' name='hint' direction='in'/>
		<arg type='i' name='data' direction='in'/>
	</method>
	<method name='SetFeature'>
		<arg type='u' name='feature' direction='in'/>
		<arg type='i' name='state' direction='in'/>
	</method>
	<method name='GetStatus'>
		<arg type='s' name='status' direction='out'/>
	</method>
</interface>`

// ErrThrottled is returned to callers flooding PowerHint.
var ErrThrottled = errors.New("too many power hints, try again later")

// HAL is the subset of the power HAL reachable from the bus.
type HAL interface {
	SetInteractive(on bool)
	PowerHint(hint powerhal.Hint, data powerhal.Payload)
	SetFeature(feature powerhal.Feature, state int)
	Status() powerhal.Status
}

// PowerHAL implements the 'org.aicp.PowerHAL' DBus interface.
type PowerHAL struct {
	hal   HAL
	hints *ratelimit.Bucket
}

// NewPowerHAL returns the bus object for hal. PowerHint calls are limited
// to limits.HintRate per second with bursts of limits.HintBurst.
func NewPowerHAL(hal HAL, limits config.Bus) *PowerHAL {
	return &PowerHAL{
		hal:   hal,
		hints: ratelimit.NewBucketWithRate(limits.HintRate, limits.HintBurst),
	}
}

// Interface returns the name of the interface this object implements
func (p *PowerHAL) Interface() string {
	return Interface
}

// ObjectPath returns the path of the object
func (p *PowerHAL) ObjectPath() dbus.ObjectPath {
	return ObjectPath
}

// IntrospectionData gives the XML formatted introspection description
// of the DBus service.
func (p *PowerHAL) IntrospectionData() string {
	return introspectionXML
}

// SetInteractive implements the 'SetInteractive' method.
//
// Example usage: dbus-send --system --dest=org.aicp.PowerHAL --type=method_call --print-reply /org/aicp/PowerHAL org.aicp.PowerHAL.SetInteractive boolean:true
func (p *PowerHAL) SetInteractive(on bool) *dbus.Error {
	p.hal.SetInteractive(on)
	return nil
}

// PowerHint implements the 'PowerHint' method. The data argument is the
// interaction duration in milliseconds, the low-power enable flag or the
// video encode state, depending on the hint.
func (p *PowerHAL) PowerHint(hint uint32, data int32) *dbus.Error {
	if p.hints.TakeAvailable(1) == 0 {
		return dbus.MakeFailedError(ErrThrottled)
	}
	h := powerhal.Hint(hint)
	p.hal.PowerHint(h, powerhal.PayloadFor(h, data))
	return nil
}

// SetFeature implements the 'SetFeature' method.
func (p *PowerHAL) SetFeature(feature uint32, state int32) *dbus.Error {
	p.hal.SetFeature(powerhal.Feature(feature), int(state))
	return nil
}

// GetStatus implements the 'GetStatus' method, returning the state of the
// HAL as a JSON document.
func (p *PowerHAL) GetStatus() (string, *dbus.Error) {
	buf, err := json.Marshal(p.hal.Status())
	if err != nil {
		return "", dbus.MakeFailedError(fmt.Errorf("cannot marshal status: %v", err))
	}
	return string(buf), nil
}

type busConn interface {
	Export(v interface{}, path dbus.ObjectPath, iface string) error
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)
	Close() error
}

// Service owns the bus name and serves the PowerHAL object.
type Service struct {
	tomb tomb.Tomb
	conn busConn
	obj  *PowerHAL
}

// NewService returns a service exporting obj on conn.
func NewService(conn busConn, obj *PowerHAL) *Service {
	return &Service{conn: conn, obj: obj}
}

// Init exports the object and acquires the bus name.
func (s *Service) Init() error {
	// export the interfaces at the godbus API level first to avoid
	// the race between being able to handle a call to an interface
	// at the object level and the actual well-known object name
	// becoming available on the bus
	xml := "<node>" + s.obj.IntrospectionData() + introspect.IntrospectDataString + "</node>"
	if err := s.conn.Export(s.obj, s.obj.ObjectPath(), s.obj.Interface()); err != nil {
		return err
	}
	if err := s.conn.Export(introspect.Introspectable(xml), s.obj.ObjectPath(), "org.freedesktop.DBus.Introspectable"); err != nil {
		return err
	}

	// beyond this point the name is available and all handlers must
	// have been set up
	reply, err := s.conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return fmt.Errorf("cannot obtain bus name '%s'", BusName)
	}
	return nil
}

// Start serves calls until Stop is called.
func (s *Service) Start() {
	logger.Noticef("serving %s on the bus", BusName)

	s.tomb.Go(func() error {
		// Listen to keep our thread up and running. All DBus bits
		// are running in the background
		<-s.tomb.Dying()
		s.conn.Close()

		err := s.tomb.Err()
		if err != nil && err != tomb.ErrStillAlive {
			return err
		}
		return nil
	})
}

// Stop closes the connection.
func (s *Service) Stop() error {
	s.tomb.Kill(nil)
	return s.tomb.Wait()
}

// Dying is closed when the service is stopping.
func (s *Service) Dying() <-chan struct{} {
	return s.tomb.Dying()
}
