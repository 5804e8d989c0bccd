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

// Package dbusutil opens the bus connections used by the power HAL daemon
// and its command line client.
package dbusutil

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

var (
	systemBusPrivate  = dbus.SystemBusPrivate
	sessionBusPrivate = dbus.SessionBusPrivate
)

func authAndHello(conn *dbus.Conn) (*dbus.Conn, error) {
	if err := conn.Auth(nil); err != nil {
		conn.Close()
		return nil, err
	}
	if err := conn.Hello(); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// SystemBusPrivate returns a new private connection to the system bus.
func SystemBusPrivate() (*dbus.Conn, error) {
	conn, err := systemBusPrivate()
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the system bus: %w", err)
	}
	return authAndHello(conn)
}

// SessionBusPrivate returns a new private connection to the session bus.
func SessionBusPrivate() (*dbus.Conn, error) {
	conn, err := sessionBusPrivate()
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the session bus: %w", err)
	}
	return authAndHello(conn)
}

// Connect returns a private connection to the session bus if session is
// set, to the system bus otherwise.
func Connect(session bool) (*dbus.Conn, error) {
	if session {
		return SessionBusPrivate()
	}
	return SystemBusPrivate()
}

// MockConnections replaces the connection constructors, for testing.
func MockConnections(system, session func(...dbus.ConnOption) (*dbus.Conn, error)) (restore func()) {
	oldSystem, oldSession := systemBusPrivate, sessionBusPrivate
	systemBusPrivate, sessionBusPrivate = system, session
	return func() {
		systemBusPrivate, sessionBusPrivate = oldSystem, oldSession
	}
}
