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

// Package resource keeps track of the timed resource overrides requested for
// each logical resource group.
package resource

import (
	"fmt"
	"sync"
	"time"

	"github.com/AICP/device-sony-msm8974-common/logger"
)

// Group is a logical resource group with its own override slot.
type Group int

const (
	GroupLittle Group = iota
	GroupBig
	GroupDownmigrate
	GroupUpmigrate

	numGroups
)

var groupNames = [numGroups]string{
	GroupLittle:      "little",
	GroupBig:         "big",
	GroupDownmigrate: "downmigrate",
	GroupUpmigrate:   "upmigrate",
}

func (g Group) String() string {
	if g < 0 || g >= numGroups {
		return fmt.Sprintf("group(%d)", int(g))
	}
	return groupNames[g]
}

// Groups returns all the groups in a stable order.
func Groups() []Group {
	return []Group{GroupLittle, GroupBig, GroupDownmigrate, GroupUpmigrate}
}

// Handle identifies an outstanding override, NoHandle means none.
type Handle int

const NoHandle Handle = 0

// Request asks for the resources to be applied for Duration.
type Request struct {
	Resources []int
	Duration  time.Duration
}

// A Locker applies timed resource overrides. When prior is a live handle
// previously returned by the Locker, the new request replaces that override
// instead of stacking a second one.
type Locker interface {
	Lock(prior Handle, req Request) (Handle, error)
}

// Tracker holds one handle slot per group.
type Tracker struct {
	locker Locker

	mu      [numGroups]sync.Mutex
	handles [numGroups]Handle
}

// NewTracker returns a Tracker delegating to locker.
func NewTracker(locker Locker) *Tracker {
	return &Tracker{locker: locker}
}

// Apply submits req for group g, passing the handle of the previous request
// of that group, and records the handle returned. A failed request clears
// the slot.
func (t *Tracker) Apply(g Group, req Request) Handle {
	if g < 0 || g >= numGroups {
		logger.Noticef("cannot apply resources to unknown %v", g)
		return NoHandle
	}

	t.mu[g].Lock()
	defer t.mu[g].Unlock()

	h, err := t.locker.Lock(t.handles[g], req)
	if err != nil {
		logger.Noticef("cannot apply %v resources %#x for %v: %v", g, req.Resources, req.Duration, err)
		h = NoHandle
	}
	t.handles[g] = h
	return h
}

// Handle returns the current handle of group g.
func (t *Tracker) Handle(g Group) Handle {
	if g < 0 || g >= numGroups {
		return NoHandle
	}
	t.mu[g].Lock()
	defer t.mu[g].Unlock()
	return t.handles[g]
}
