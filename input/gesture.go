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

package input

import (
	evdev "github.com/gvalkov/golang-evdev"
)

type point struct {
	x, y int32
}

// gesture turns raw touchscreen events into interaction notifications.
// The first finger down starts an interaction of unknown length. Once the
// last finger is up, the interaction ends in a fling if the first finger
// travelled past the drag threshold.
//
// Multitouch devices are followed per slot (ABS_MT_SLOT and
// ABS_MT_TRACKING_ID). Devices that never report a tracking id are treated
// as a single contact driven by BTN_TOUCH.
type gesture struct {
	threshold int32

	multitouch bool
	slot       int32
	pos        map[int32]point
	active     map[int32]bool
	// lead is the slot of the first finger, whose travel is measured
	lead int32

	began    bool // first finger went down, not reported yet
	ended    bool // last finger went up, not reported yet
	dragging bool

	haveOrigin bool
	origin     point
}

// action is what a completed input report amounts to.
type action int

const (
	actionNone action = iota
	actionTouch
	actionFling
)

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

func (g *gesture) contactDown(slot int32) {
	if g.active == nil {
		g.active = make(map[int32]bool)
	}
	if g.active[slot] {
		return
	}
	if len(g.active) == 0 {
		g.began = true
		g.dragging = false
		g.haveOrigin = false
		g.lead = slot
	}
	g.active[slot] = true
}

func (g *gesture) contactUp(slot int32) {
	if !g.active[slot] {
		return
	}
	delete(g.active, slot)
	if len(g.active) == 0 {
		g.ended = true
	}
}

func (g *gesture) setPos(x, y *int32) {
	if g.pos == nil {
		g.pos = make(map[int32]point)
	}
	p := g.pos[g.slot]
	if x != nil {
		p.x = *x
	}
	if y != nil {
		p.y = *y
	}
	g.pos[g.slot] = p
}

// feed consumes one event. Actions are only produced on SYN_REPORT, once
// the report is complete.
func (g *gesture) feed(ev evdev.InputEvent) action {
	switch ev.Type {
	case evdev.EV_KEY:
		// multitouch devices also send BTN_TOUCH, their slots are
		// authoritative
		if ev.Code == evdev.BTN_TOUCH && !g.multitouch {
			if ev.Value != 0 {
				g.contactDown(0)
			} else {
				g.contactUp(0)
			}
		}
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_MT_SLOT:
			g.slot = ev.Value
		case evdev.ABS_MT_TRACKING_ID:
			if !g.multitouch {
				g.multitouch = true
				// drop what BTN_TOUCH reported so far
				for slot := range g.active {
					delete(g.active, slot)
				}
			}
			if ev.Value >= 0 {
				g.contactDown(g.slot)
			} else {
				g.contactUp(g.slot)
			}
		case evdev.ABS_MT_POSITION_X:
			g.setPos(&ev.Value, nil)
		case evdev.ABS_MT_POSITION_Y:
			g.setPos(nil, &ev.Value)
		case evdev.ABS_X:
			// pointer emulation of the multitouch contacts
			if !g.multitouch {
				g.setPos(&ev.Value, nil)
			}
		case evdev.ABS_Y:
			if !g.multitouch {
				g.setPos(nil, &ev.Value)
			}
		}
	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT {
			return g.report()
		}
	}
	return actionNone
}

func (g *gesture) report() action {
	if g.active[g.lead] {
		p := g.pos[g.lead]
		if !g.haveOrigin {
			g.origin = p
			g.haveOrigin = true
		}
		if abs(p.x-g.origin.x) > g.threshold || abs(p.y-g.origin.y) > g.threshold {
			g.dragging = true
		}
	}

	switch {
	case g.began:
		g.began = false
		// a tap within a single report
		g.ended = false
		return actionTouch
	case g.ended:
		g.ended = false
		if g.dragging {
			g.dragging = false
			return actionFling
		}
	}
	return actionNone
}
