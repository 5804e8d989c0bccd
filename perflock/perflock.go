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

// Package perflock implements timed resource overrides on top of sysfs.
//
// Each lock writes the requested values to their control files, remembers
// what was there before and puts it back once the lock duration elapses.
// Locking again with a live handle replaces the override in place.
package perflock

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/AICP/device-sony-msm8974-common/logger"
	"github.com/AICP/device-sony-msm8974-common/resource"
	"github.com/AICP/device-sony-msm8974-common/sysfs"
)

// Target is where the values of an opcode go. The argument of a resource id
// is multiplied by Scale before being written to each path.
type Target struct {
	Paths []string
	Scale int
}

type stopper interface {
	Stop() bool
}

var (
	afterFunc = func(d time.Duration, f func()) stopper {
		return time.AfterFunc(d, f)
	}
	readValue = sysfs.ReadString
)

type savedValue struct {
	path  string
	value string
}

type lock struct {
	saved []savedValue
	timer stopper
}

// Facility hands out and expires resource locks.
type Facility struct {
	sink    sysfs.Writer
	targets map[resource.Opcode]Target

	mu    sync.Mutex
	next  resource.Handle
	locks map[resource.Handle]*lock
}

var _ resource.Locker = (*Facility)(nil)

// New returns a Facility writing through sink.
func New(sink sysfs.Writer, targets map[resource.Opcode]Target) *Facility {
	return &Facility{
		sink:    sink,
		targets: targets,
		locks:   make(map[resource.Handle]*lock),
	}
}

// Lock implements resource.Locker.
func (f *Facility) Lock(prior resource.Handle, req resource.Request) (resource.Handle, error) {
	if req.Duration <= 0 {
		return resource.NoHandle, fmt.Errorf("invalid lock duration %v", req.Duration)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	h := prior
	if old, ok := f.locks[prior]; ok && prior != resource.NoHandle {
		old.timer.Stop()
		f.restore(old)
	} else {
		f.next++
		h = f.next
	}

	l := &lock{}
	for _, id := range req.Resources {
		op, arg := resource.Decode(id)
		target, ok := f.targets[op]
		if !ok {
			logger.Noticef("ignoring unsupported resource %#x", id)
			continue
		}
		value := strconv.Itoa(arg * target.Scale)
		for _, path := range target.Paths {
			old, err := readValue(path)
			if err != nil {
				logger.Noticef("cannot read %s: %v", path, err)
				continue
			}
			if err := f.sink.Write(path, value); err != nil {
				logger.Noticef("%v", err)
				continue
			}
			l.saved = append(l.saved, savedValue{path: path, value: old})
		}
	}
	if len(l.saved) == 0 {
		delete(f.locks, h)
		return resource.NoHandle, errors.New("no resource could be applied")
	}

	l.timer = afterFunc(req.Duration, func() { f.expire(h, l) })
	f.locks[h] = l
	return h, nil
}

func (f *Facility) expire(h resource.Handle, l *lock) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.locks[h] != l {
		// replaced or released meanwhile
		return
	}
	f.restore(l)
	delete(f.locks, h)
}

// restore must be called with f.mu held.
func (f *Facility) restore(l *lock) {
	for i := len(l.saved) - 1; i >= 0; i-- {
		s := l.saved[i]
		if err := f.sink.Write(s.path, s.value); err != nil {
			logger.Noticef("cannot restore %s: %v", s.path, err)
		}
	}
}

// Active returns the number of locks currently held.
func (f *Facility) Active() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.locks)
}

// Close releases all the locks, restoring every overridden value.
func (f *Facility) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for h, l := range f.locks {
		l.timer.Stop()
		f.restore(l)
		delete(f.locks, h)
	}
}
