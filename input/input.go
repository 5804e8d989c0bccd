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

// Package input feeds touchscreen activity to the power HAL as
// interaction hints.
package input

import (
	"errors"
	"fmt"
	"path/filepath"

	evdev "github.com/gvalkov/golang-evdev"
	"gopkg.in/tomb.v2"

	"github.com/AICP/device-sony-msm8974-common/config"
	"github.com/AICP/device-sony-msm8974-common/dirs"
	"github.com/AICP/device-sony-msm8974-common/logger"
	"github.com/AICP/device-sony-msm8974-common/powerhal"
)

// AutoDevice makes Open look for the first multi-touch capable device.
const AutoDevice = "auto"

// HintSink receives the interaction hints.
type HintSink interface {
	PowerHint(hint powerhal.Hint, data powerhal.Payload)
}

type device interface {
	Read() ([]evdev.InputEvent, error)
	Close() error
	String() string
}

type evdevDevice struct {
	*evdev.InputDevice
}

func (d evdevDevice) Close() error {
	return d.File.Close()
}

func (d evdevDevice) String() string {
	return fmt.Sprintf("%s (%s)", d.Fn, d.Name)
}

func isTouchscreen(dev *evdev.InputDevice) bool {
	for ct, codes := range dev.Capabilities {
		if ct.Type != evdev.EV_ABS {
			continue
		}
		for _, cc := range codes {
			if cc.Code == evdev.ABS_MT_POSITION_X {
				return true
			}
		}
	}
	return false
}

var (
	openDevice = func(path string) (device, error) {
		dev, err := evdev.Open(path)
		if err != nil {
			return nil, err
		}
		return evdevDevice{dev}, nil
	}

	findTouchscreen = func() (device, error) {
		devices, err := evdev.ListInputDevices(filepath.Join(dirs.DevInputDir, "event*"))
		if err != nil {
			return nil, fmt.Errorf("cannot list input devices: %v", err)
		}
		var found device
		for _, dev := range devices {
			if found == nil && isTouchscreen(dev) {
				found = evdevDevice{dev}
				continue
			}
			dev.File.Close()
		}
		if found == nil {
			return nil, ErrNoTouchscreen
		}
		return found, nil
	}
)

// ErrNoTouchscreen is returned by Open when no multi-touch device exists.
var ErrNoTouchscreen = errors.New("cannot find a touchscreen")

// TouchSource reads a touchscreen and turns touches and flings into
// interaction hints.
type TouchSource struct {
	sink    HintSink
	dev     device
	fling   powerhal.Duration
	gesture gesture

	tomb tomb.Tomb
}

// Open opens the device named in cfg, which may be AutoDevice.
func Open(cfg config.Input, sink HintSink) (*TouchSource, error) {
	var dev device
	var err error
	if cfg.Device == AutoDevice {
		dev, err = findTouchscreen()
	} else {
		dev, err = openDevice(cfg.Device)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open touch input: %w", err)
	}
	logger.Noticef("using touch input %s", dev)
	return &TouchSource{
		sink:    sink,
		dev:     dev,
		fling:   powerhal.Duration(cfg.FlingDurationMs),
		gesture: gesture{threshold: int32(cfg.DragThreshold)},
	}, nil
}

// Start reads the device in the background.
func (s *TouchSource) Start() {
	s.tomb.Go(s.loop)
}

// Stop closes the device and waits for the reader to finish.
func (s *TouchSource) Stop() error {
	s.tomb.Kill(nil)
	s.dev.Close()
	return s.tomb.Wait()
}

func (s *TouchSource) loop() error {
	for {
		events, err := s.dev.Read()
		if err != nil {
			select {
			case <-s.tomb.Dying():
				return nil
			default:
			}
			return fmt.Errorf("cannot read touch input %s: %w", s.dev, err)
		}
		for _, ev := range events {
			switch s.gesture.feed(ev) {
			case actionTouch:
				s.sink.PowerHint(powerhal.HintInteraction, powerhal.Duration(0))
			case actionFling:
				s.sink.PowerHint(powerhal.HintInteraction, s.fling)
			}
		}
	}
}
