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

// Package powerhal translates power hints from the host power service into
// cpufreq writes, timed resource boosts and display refresh changes.
//
// A Module exposes the four operations of the host table: Init,
// SetInteractive, PowerHint and SetFeature. None of them report errors,
// failures are logged and the remaining work carried on.
package powerhal

import (
	"fmt"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/AICP/device-sony-msm8974-common/boost"
	"github.com/AICP/device-sony-msm8974-common/config"
	"github.com/AICP/device-sony-msm8974-common/dirs"
	"github.com/AICP/device-sony-msm8974-common/display"
	"github.com/AICP/device-sony-msm8974-common/governor"
	"github.com/AICP/device-sony-msm8974-common/logger"
	"github.com/AICP/device-sony-msm8974-common/resource"
	"github.com/AICP/device-sony-msm8974-common/sysfs"
)

// InteractiveOverride gets the first go at an interactive state change.
// Returning true means the change was fully handled and the default
// governor tuning is skipped.
type InteractiveOverride func(on bool, governor string) (handled bool)

func noOverride(bool, string) bool { return false }

type nullLocker struct{}

func (nullLocker) Lock(resource.Handle, resource.Request) (resource.Handle, error) {
	return resource.NoHandle, fmt.Errorf("no resource lock facility")
}

// Options hold the collaborators of a Module. Unset fields get defaults.
type Options struct {
	Config *config.Config
	// Writer defaults to sysfs.Files.
	Writer sysfs.Writer
	// Clock defaults to boost.Monotonic.
	Clock boost.Clock
	// Locker receives interaction boosts; without it they are dropped.
	Locker resource.Locker
	// Refresh defaults to display.Nop.
	Refresh display.RefreshSetter
	// Tuner defaults to a governor.TableTuner over Config.Governors.
	Tuner governor.Tuner
	// Override defaults to never handling anything.
	Override InteractiveOverride
}

const (
	modeUnset int32 = -1
	modeOff   int32 = 0
	modeOn    int32 = 1
)

// Module is the power HAL instance. Use New to create one.
type Module struct {
	cfg      *config.Config
	sink     sysfs.Writer
	clock    boost.Clock
	refresh  display.RefreshSetter
	tuner    governor.Tuner
	override InteractiveOverride

	limiter boost.Limiter
	tracker *resource.Tracker

	lowPowerMu sync.Mutex
	lowPower   bool
	freqSet    []bool

	lastMode     atomic.Int32
	displayBoost atomic.Bool

	noopLog *rate.Limiter
}

// New returns a Module in its initial state: low-power mode off,
// interactive state unset and no boost recorded.
func New(opts Options) *Module {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	m := &Module{
		cfg:      cfg,
		sink:     opts.Writer,
		clock:    opts.Clock,
		refresh:  opts.Refresh,
		tuner:    opts.Tuner,
		override: opts.Override,
		freqSet:  make([]bool, cfg.CPUs),
		noopLog:  rate.NewLimiter(rate.Every(time.Second), 5),
	}
	if m.sink == nil {
		m.sink = sysfs.Files
	}
	if m.clock == nil {
		m.clock = boost.Monotonic
	}
	if m.refresh == nil {
		m.refresh = display.Nop{}
	}
	if m.tuner == nil {
		m.tuner = governor.NewTableTuner(m.sink, cfg.Governors)
	}
	if m.override == nil {
		m.override = noOverride
	}
	locker := opts.Locker
	if locker == nil {
		locker = nullLocker{}
	}
	m.tracker = resource.NewTracker(locker)
	m.lastMode.Store(modeUnset)
	return m
}

// UnreadableIdentifierError is returned when the SoC identifier cannot be
// obtained.
type UnreadableIdentifierError struct {
	Path string
	Err  error
}

func (e *UnreadableIdentifierError) Error() string {
	return fmt.Sprintf("cannot read soc id from %s: %v", e.Path, e.Err)
}

func (e *UnreadableIdentifierError) Unwrap() error {
	return e.Err
}

// ReadSocID returns the numeric SoC identifier.
func ReadSocID() (int, error) {
	s, err := sysfs.ReadString(dirs.SocIDFile)
	if err != nil {
		return 0, &UnreadableIdentifierError{Path: dirs.SocIDFile, Err: err}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, &UnreadableIdentifierError{Path: dirs.SocIDFile, Err: err}
	}
	return id, nil
}

// Init reads the SoC identifier and enables display boost for the SoCs in
// the allow-list. Failing to read the identifier leaves the flag as is.
func (m *Module) Init() {
	logger.Noticef("power HAL init")

	id, err := ReadSocID()
	if err != nil {
		logger.Noticef("%v", err)
		return
	}
	enabled := m.cfg.SocIDEnablesDisplayBoost(id)
	m.displayBoost.Store(enabled)
	logger.Debugf("soc id %d, display boost %v", id, enabled)
}

// DisplayBoost reports whether the SoC asked for display boost.
func (m *Module) DisplayBoost() bool {
	return m.displayBoost.Load()
}

// PowerHint dispatches hint. data may be nil.
func (m *Module) PowerHint(hint Hint, data Payload) {
	switch hint {
	case HintInteraction:
		var d time.Duration
		if ms, ok := data.(Duration); ok && ms > 0 {
			d = time.Duration(ms) * time.Millisecond
		}
		m.interaction(d)
	case HintVideoEncode:
		m.videoEncode(data)
	case HintLowPower:
		enable, _ := data.(Enable)
		m.setLowPower(bool(enable))
	case HintVsync, HintCPUBoost, HintLaunch:
		m.logNoop("ignoring %v hint", hint)
	default:
		m.logNoop("ignoring unrecognized %v", hint)
	}
}

func (m *Module) logNoop(format string, v ...interface{}) {
	if m.noopLog.Allow() {
		logger.Debugf(format, v...)
	}
}

// SetFeature toggles a device feature. Only double-tap-to-wake is known,
// and only when configured.
func (m *Module) SetFeature(feature Feature, state int) {
	if feature != FeatureDoubleTapToWake || !m.cfg.TapToWake.Enabled {
		logger.Debugf("ignoring unsupported %v", feature)
		return
	}

	value, what := "0", "disabled"
	if state != 0 {
		value, what = "1", "enabled"
	}
	logger.Noticef("double tap to wake is %s", what)
	path := filepath.Join(dirs.GlobalRootDir, m.cfg.TapToWake.ControlPath)
	if err := m.sink.Write(path, value); err != nil {
		logger.Noticef("%v", err)
	}
}
