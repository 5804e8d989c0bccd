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

package dbusapi

import (
	"encoding/json"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/AICP/device-sony-msm8974-common/powerhal"
)

type objectGetter interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
}

// Client calls a running power HAL daemon.
type Client struct {
	obj dbus.BusObject
}

// NewClient returns a Client talking over conn.
func NewClient(conn objectGetter) *Client {
	return &Client{obj: conn.Object(BusName, ObjectPath)}
}

func (c *Client) call(method string, args ...interface{}) *dbus.Call {
	return c.obj.Call(Interface+"."+method, 0, args...)
}

// SetInteractive asks the daemon to switch the interactive state.
func (c *Client) SetInteractive(on bool) error {
	if err := c.call("SetInteractive", on).Err; err != nil {
		return fmt.Errorf("cannot set interactive state: %w", err)
	}
	return nil
}

// PowerHint sends a hint with its integer argument.
func (c *Client) PowerHint(hint powerhal.Hint, data int32) error {
	if err := c.call("PowerHint", uint32(hint), data).Err; err != nil {
		return fmt.Errorf("cannot send %v hint: %w", hint, err)
	}
	return nil
}

// SetFeature toggles a feature.
func (c *Client) SetFeature(feature powerhal.Feature, state int32) error {
	if err := c.call("SetFeature", uint32(feature), state).Err; err != nil {
		return fmt.Errorf("cannot set %v: %w", feature, err)
	}
	return nil
}

// Status fetches the state of the daemon.
func (c *Client) Status() (*powerhal.Status, error) {
	var doc string
	if err := c.call("GetStatus").Store(&doc); err != nil {
		return nil, fmt.Errorf("cannot get status: %w", err)
	}
	var st powerhal.Status
	if err := json.Unmarshal([]byte(doc), &st); err != nil {
		return nil, fmt.Errorf("cannot decode status: %w", err)
	}
	return &st, nil
}
