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

// Package config loads the device description of the power HAL.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// LowPower holds the frequencies (kHz, as written to sysfs) used by
// low-power mode.
type LowPower struct {
	MinFreq       string `yaml:"min-freq"`
	MaxFreq       string `yaml:"max-freq"`
	NormalMaxFreq string `yaml:"normal-max-freq"`
}

// Interaction describes the boost applied on touch interaction.
type Interaction struct {
	LittleCPUs     []int `yaml:"little-cpus"`
	BigCPUs        []int `yaml:"big-cpus"`
	LittleBoostMHz int   `yaml:"little-boost-mhz"`
	BigBoostMHz    int   `yaml:"big-boost-mhz"`
}

// TapToWake configures the double-tap-to-wake feature.
type TapToWake struct {
	Enabled     bool   `yaml:"enabled"`
	ControlPath string `yaml:"control-path"`
}

// DBusTarget names a method taking the refresh code as a uint32.
type DBusTarget struct {
	Destination string `yaml:"destination"`
	Path        string `yaml:"path"`
	Interface   string `yaml:"interface"`
	Method      string `yaml:"method"`
}

// Refresh selects how display refresh-rate changes are requested.
type Refresh struct {
	// Backend is one of "service", "dbus" or "none".
	Backend string     `yaml:"backend"`
	Service string     `yaml:"service"`
	DBus    DBusTarget `yaml:"dbus"`
}

// Setting is a single control file write.
type Setting struct {
	Path  string `yaml:"path"`
	Value string `yaml:"value"`
}

// GovernorProfile holds the writes applied when the screen goes
// interactive (On) or not (Off) while a governor is active.
type GovernorProfile struct {
	On  []Setting `yaml:"on"`
	Off []Setting `yaml:"off"`
}

// Hotplug configures the cpu online watcher.
type Hotplug struct {
	Enabled bool `yaml:"enabled"`
}

// Input configures the touchscreen interaction source.
type Input struct {
	// Device is an evdev node or "auto" to pick the first touchscreen,
	// empty disables the source.
	Device string `yaml:"device"`
	// FlingDurationMs is the duration hint sent when a drag ends.
	FlingDurationMs int `yaml:"fling-duration-ms"`
	// DragThreshold is the travel, in device units, making a touch a drag.
	DragThreshold int `yaml:"drag-threshold"`
}

// Bus configures the D-Bus surface of the daemon.
type Bus struct {
	// HintRate is the number of PowerHint calls accepted per second,
	// HintBurst how many can arrive at once.
	HintRate  float64 `yaml:"hint-rate"`
	HintBurst int64   `yaml:"hint-burst"`
}

// Config is the device description.
type Config struct {
	CPUs               int                        `yaml:"cpus"`
	LowPower           LowPower                   `yaml:"low-power"`
	DisplayBoostSocIDs []int                      `yaml:"display-boost-soc-ids"`
	Interaction        Interaction                `yaml:"interaction"`
	TapToWake          TapToWake                  `yaml:"tap-to-wake"`
	Refresh            Refresh                    `yaml:"refresh"`
	Governors          map[string]GovernorProfile `yaml:"governors"`
	Hotplug            Hotplug                    `yaml:"hotplug"`
	Input              Input                      `yaml:"input"`
	Bus                Bus                        `yaml:"bus"`
}

// Default returns the msm8974 description.
func Default() *Config {
	return &Config{
		CPUs: 4,
		LowPower: LowPower{
			MinFreq:       "300000",
			MaxFreq:       "729600",
			NormalMaxFreq: "2265600",
		},
		DisplayBoostSocIDs: []int{178, 194, 210},
		Interaction: Interaction{
			LittleCPUs:     []int{0, 1},
			BigCPUs:        []int{2, 3},
			LittleBoostMHz: 1190,
			BigBoostMHz:    1497,
		},
		Refresh: Refresh{
			Backend: "service",
			Service: "SurfaceFlinger",
		},
		Input: Input{
			FlingDurationMs: 1500,
			DragThreshold:   48,
		},
		Bus: Bus{
			HintRate:  100,
			HintBurst: 20,
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	buf, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read configuration: %w", err)
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse configuration %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %q: %w", path, err)
	}
	return cfg, nil
}

func validFreq(name, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fmt.Errorf("%s must be a positive frequency in kHz, got %q", name, v)
	}
	return nil
}

func validCPUs(name string, cpus []int, total int) error {
	for _, cpu := range cpus {
		if cpu < 0 || cpu >= total {
			return fmt.Errorf("%s: cpu %d out of range [0, %d)", name, cpu, total)
		}
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.CPUs <= 0 {
		return fmt.Errorf("cpus must be positive, got %d", c.CPUs)
	}
	if err := validFreq("low-power.min-freq", c.LowPower.MinFreq); err != nil {
		return err
	}
	if err := validFreq("low-power.max-freq", c.LowPower.MaxFreq); err != nil {
		return err
	}
	if err := validFreq("low-power.normal-max-freq", c.LowPower.NormalMaxFreq); err != nil {
		return err
	}
	if err := validCPUs("interaction.little-cpus", c.Interaction.LittleCPUs, c.CPUs); err != nil {
		return err
	}
	if err := validCPUs("interaction.big-cpus", c.Interaction.BigCPUs, c.CPUs); err != nil {
		return err
	}
	if c.Interaction.LittleBoostMHz < 0 || c.Interaction.LittleBoostMHz > 0xffff ||
		c.Interaction.BigBoostMHz < 0 || c.Interaction.BigBoostMHz > 0xffff {
		return errors.New("interaction boost frequencies must be between 0 and 65535 MHz")
	}
	if c.TapToWake.Enabled && c.TapToWake.ControlPath == "" {
		return errors.New("tap-to-wake is enabled but has no control-path")
	}
	switch c.Refresh.Backend {
	case "service":
		if c.Refresh.Service == "" {
			return errors.New("refresh backend \"service\" needs a service name")
		}
	case "dbus":
		d := c.Refresh.DBus
		if d.Destination == "" || d.Path == "" || d.Interface == "" || d.Method == "" {
			return errors.New("refresh backend \"dbus\" needs destination, path, interface and method")
		}
	case "none", "":
	default:
		return fmt.Errorf("unknown refresh backend %q", c.Refresh.Backend)
	}
	for name, p := range c.Governors {
		for _, s := range append(append([]Setting(nil), p.On...), p.Off...) {
			if s.Path == "" {
				return fmt.Errorf("governor %q has a setting without path", name)
			}
		}
	}
	if c.Input.FlingDurationMs < 0 || c.Input.DragThreshold < 0 {
		return errors.New("input fling-duration-ms and drag-threshold cannot be negative")
	}
	if c.Bus.HintRate <= 0 || c.Bus.HintBurst <= 0 {
		return errors.New("bus hint-rate and hint-burst must be positive")
	}
	return nil
}

// SocIDEnablesDisplayBoost reports whether the soc id is in the display
// boost allow-list.
func (c *Config) SocIDEnablesDisplayBoost(id int) bool {
	for _, allowed := range c.DisplayBoostSocIDs {
		if id == allowed {
			return true
		}
	}
	return false
}
