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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/daemon"
	"github.com/jessevdk/go-flags"

	"github.com/AICP/device-sony-msm8974-common/config"
	"github.com/AICP/device-sony-msm8974-common/dbusapi"
	"github.com/AICP/device-sony-msm8974-common/dirs"
	"github.com/AICP/device-sony-msm8974-common/display"
	"github.com/AICP/device-sony-msm8974-common/hotplug"
	"github.com/AICP/device-sony-msm8974-common/input"
	"github.com/AICP/device-sony-msm8974-common/logger"
	"github.com/AICP/device-sony-msm8974-common/perflock"
	"github.com/AICP/device-sony-msm8974-common/powerhal"
	"github.com/AICP/device-sony-msm8974-common/resource"
	"github.com/AICP/device-sony-msm8974-common/sysfs"
)

func init() {
	const (
		short = "Run the power HAL daemon"
		long  = ""
	)

	addCommand("run", short, long, func() flags.Commander { return &cmdRun{} })
}

type cmdRun struct {
	Config string `long:"config" value-name:"<path>" description:"Device configuration (defaults to /etc/powerhal/powerhal.yaml)"`
}

var (
	sdNotify          = daemon.SdNotify
	sdWatchdogEnabled = daemon.SdWatchdogEnabled
	signalNotify      = signal.Notify
)

func lockTargets(cfg *config.Config) map[resource.Opcode]perflock.Target {
	minFreq := func(cpus []int) []string {
		paths := make([]string, 0, len(cpus))
		for _, cpu := range cpus {
			paths = append(paths, dirs.CPUFreqFile(cpu, "scaling_min_freq"))
		}
		return paths
	}
	return map[resource.Opcode]perflock.Target{
		// boosts are given in MHz, cpufreq wants kHz
		resource.OpMinFreqLittle:    {Paths: minFreq(cfg.Interaction.LittleCPUs), Scale: 1000},
		resource.OpMinFreqBig:       {Paths: minFreq(cfg.Interaction.BigCPUs), Scale: 1000},
		resource.OpSchedDownmigrate: {Paths: []string{dirs.SchedKnob("sched_downmigrate")}, Scale: 1},
		resource.OpSchedUpmigrate:   {Paths: []string{dirs.SchedKnob("sched_upmigrate")}, Scale: 1},
	}
}

func refreshSetter(r config.Refresh, conn busConn) display.RefreshSetter {
	switch r.Backend {
	case "service":
		return &display.ServiceCall{Service: r.Service}
	case "dbus":
		return display.NewDBusCall(conn, r.DBus.Destination, r.DBus.Path, r.DBus.Interface, r.DBus.Method)
	}
	return display.Nop{}
}

func notify(state string) {
	if _, err := sdNotify(false, state); err != nil {
		logger.Noticef("cannot notify systemd of %s: %v", state, err)
	}
}

func runWatchdog(dying <-chan struct{}) (*time.Ticker, error) {
	interval, err := sdWatchdogEnabled(false)
	if err != nil {
		return nil, err
	}
	// not running under systemd, or no watchdog configured
	if interval == 0 {
		return nil, nil
	}
	dur := interval / 2
	logger.Debugf("Setting up sd_notify() watchdog timer every %s", dur)
	wt := time.NewTicker(dur)

	go func() {
		for {
			select {
			case <-wt.C:
				notify("WATCHDOG=1")
			case <-dying:
				return
			}
		}
	}()

	return wt, nil
}

func (c *cmdRun) Execute([]string) error {
	t0 := time.Now().Truncate(time.Millisecond)

	ch := make(chan os.Signal, 2)
	signalNotify(ch, syscall.SIGINT, syscall.SIGTERM)

	path := c.Config
	if path == "" {
		path = dirs.PowerHALConfig
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	conn, err := connectBus(opts.Session)
	if err != nil {
		return err
	}

	facility := perflock.New(sysfs.Files, lockTargets(cfg))
	defer func() {
		if n := facility.Active(); n > 0 {
			logger.Noticef("releasing %d resource locks", n)
		}
		facility.Close()
	}()

	hal := powerhal.New(powerhal.Options{
		Config:  cfg,
		Locker:  facility,
		Refresh: refreshSetter(cfg.Refresh, conn),
	})
	hal.Init()

	svc := dbusapi.NewService(conn, dbusapi.NewPowerHAL(hal, cfg.Bus))
	if err := svc.Init(); err != nil {
		conn.Close()
		return err
	}
	svc.Start()
	defer func() {
		if err := svc.Stop(); err != nil {
			logger.Noticef("cannot stop bus service: %v", err)
		}
	}()

	if cfg.Hotplug.Enabled {
		w := hotplug.New(hal.CPUOnline)
		if err := w.Start(); err != nil {
			logger.Noticef("cannot watch cpu hotplug: %v", err)
		} else {
			defer w.Stop()
		}
	}

	if cfg.Input.Device != "" {
		src, err := input.Open(cfg.Input, hal)
		if err != nil {
			logger.Noticef("%v", err)
		} else {
			src.Start()
			defer src.Stop()
		}
	}

	watchdog, err := runWatchdog(svc.Dying())
	if err != nil {
		return fmt.Errorf("cannot run software watchdog: %v", err)
	}
	if watchdog != nil {
		defer watchdog.Stop()
	}

	notify("READY=1")
	logger.Debugf("activation done in %v", time.Now().Truncate(time.Millisecond).Sub(t0))

	select {
	case sig := <-ch:
		logger.Noticef("Exiting on %s signal.", sig)
	case <-svc.Dying():
		// something called Stop()
	}
	notify("STOPPING=1")
	return nil
}
