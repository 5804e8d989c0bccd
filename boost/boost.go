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

// Package boost decides whether an interaction should boost the CPUs and by
// how much, based on how recently the previous boost was accepted.
package boost

import (
	"math"
	"sync"
	"time"
)

const (
	// elapsed time since the last boost is clamped to this ceiling
	maxElapsed = 750 * time.Millisecond
	// interactions this close to the previous boost are suppressed
	// unless they predict a long fling
	flingWindow = 250 * time.Millisecond
	// hints at least this long are sustained flings
	sustainedFling = 750 * time.Millisecond

	shortHint   = 250 * time.Millisecond
	maxHint     = 5000 * time.Millisecond
	littleExtra = 750 * time.Millisecond

	maxUpmigrate = 95
	minUpmigrate = 20

	defaultLittleDuration      = 1500 * time.Millisecond
	defaultBigDuration         = 500 * time.Millisecond
	defaultDownmigrateDuration = 1000 * time.Millisecond
	defaultUpmigrateDuration   = 500 * time.Millisecond
)

// Decision is the outcome of evaluating an interaction.
type Decision struct {
	Accepted bool

	// Upmigrate and Downmigrate are the scheduler migration thresholds
	// (in percent of capacity) to apply while boosted.
	Upmigrate   int
	Downmigrate int

	LittleDuration      time.Duration
	BigDuration         time.Duration
	DownmigrateDuration time.Duration
	UpmigrateDuration   time.Duration
}

// Evaluate computes the decision for an interaction with the given duration
// hint happening elapsed after the last accepted boost. It has no side
// effects, see Limiter for the stateful version.
func Evaluate(elapsed, hint time.Duration) Decision {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > maxElapsed {
		elapsed = maxElapsed
	}
	if elapsed < flingWindow && hint <= sustainedFling {
		return Decision{}
	}

	us := float64(elapsed / time.Microsecond)
	max := float64(maxElapsed / time.Microsecond)
	up := maxUpmigrate - int(math.Round((maxUpmigrate-minUpmigrate)*(us*us)/(max*max)))
	if hint >= sustainedFling {
		up = minUpmigrate
	}

	d := Decision{
		Accepted:            true,
		Upmigrate:           up,
		Downmigrate:         up / 2,
		LittleDuration:      defaultLittleDuration,
		BigDuration:         defaultBigDuration,
		DownmigrateDuration: defaultDownmigrateDuration,
		UpmigrateDuration:   defaultUpmigrateDuration,
	}
	if hint > shortHint {
		if hint < maxHint {
			d.DownmigrateDuration = hint
			d.LittleDuration = hint + littleExtra
		} else {
			d.DownmigrateDuration = maxHint
			d.LittleDuration = maxHint + littleExtra
		}
	}
	return d
}

// Limiter holds the time of the last accepted boost.
type Limiter struct {
	mu   sync.Mutex
	last time.Duration
}

// Evaluate decides on an interaction observed at the monotonic instant now.
// When accepted, now becomes the last boost time; the decision and the update
// happen under the same lock so two concurrent interactions cannot both pass
// against a stale timestamp.
func (l *Limiter) Evaluate(now, hint time.Duration) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	d := Evaluate(now-l.last, hint)
	if d.Accepted && now > l.last {
		l.last = now
	}
	return d
}

// Last returns the monotonic instant of the last accepted boost, zero if
// none was accepted yet.
func (l *Limiter) Last() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.last
}
