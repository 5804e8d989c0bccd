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

package display

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

// ObjectGetter is implemented by *dbus.Conn.
type ObjectGetter interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
}

// DBusCall requests refresh mode changes through a D-Bus method taking
// the refresh code as its only uint32 argument.
type DBusCall struct {
	conn        ObjectGetter
	destination string
	path        dbus.ObjectPath
	method      string
}

// NewDBusCall returns a DBusCall invoking iface.method on the object at
// path owned by destination.
func NewDBusCall(conn ObjectGetter, destination, path, iface, method string) *DBusCall {
	return &DBusCall{
		conn:        conn,
		destination: destination,
		path:        dbus.ObjectPath(path),
		method:      iface + "." + method,
	}
}

// SetRefreshMode implements RefreshSetter.
func (d *DBusCall) SetRefreshMode(mode RefreshMode) error {
	obj := d.conn.Object(d.destination, d.path)
	if call := obj.Call(d.method, 0, uint32(mode)); call.Err != nil {
		return fmt.Errorf("cannot set %v refresh mode via %s: %w", mode, d.destination, call.Err)
	}
	return nil
}
