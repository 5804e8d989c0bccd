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

package netlink

import (
	"bytes"
	"fmt"
)

// KObjAction is the action of a uevent.
type KObjAction string

const (
	ADD     KObjAction = "add"
	REMOVE  KObjAction = "remove"
	CHANGE  KObjAction = "change"
	MOVE    KObjAction = "move"
	ONLINE  KObjAction = "online"
	OFFLINE KObjAction = "offline"
	BIND    KObjAction = "bind"
	UNBIND  KObjAction = "unbind"
)

func (a KObjAction) String() string {
	return string(a)
}

func parseAction(s string) (KObjAction, error) {
	a := KObjAction(s)
	switch a {
	case ADD, REMOVE, CHANGE, MOVE, ONLINE, OFFLINE, BIND, UNBIND:
		return a, nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// UEvent is a kernel object event.
type UEvent struct {
	Action KObjAction
	KObj   string
	Env    map[string]string
}

func (e UEvent) String() string {
	return fmt.Sprintf("%s@%s", e.Action, e.KObj)
}

// ParseUEvent parses a raw kernel uevent: a "action@devpath" header
// followed by NUL separated KEY=value pairs.
func ParseUEvent(raw []byte) (*UEvent, error) {
	fields := bytes.Split(raw, []byte{0})
	if len(fields) == 0 || len(fields[0]) == 0 {
		return nil, fmt.Errorf("cannot parse uevent: empty message")
	}

	header := string(fields[0])
	i := bytes.IndexByte(fields[0], '@')
	if i < 0 {
		return nil, fmt.Errorf("cannot parse uevent header %q: missing '@'", header)
	}
	action, err := parseAction(header[:i])
	if err != nil {
		return nil, fmt.Errorf("cannot parse uevent header %q: %v", header, err)
	}

	ev := &UEvent{
		Action: action,
		KObj:   header[i+1:],
		Env:    make(map[string]string, len(fields)-1),
	}
	for _, field := range fields[1:] {
		if len(field) == 0 {
			continue
		}
		k, v, ok := bytes.Cut(field, []byte{'='})
		if !ok {
			return nil, fmt.Errorf("cannot parse uevent %s: invalid env entry %q", ev, field)
		}
		ev.Env[string(k)] = string(v)
	}
	return ev, nil
}
