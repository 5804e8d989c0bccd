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

// Package hotplug watches the kernel uevent stream for cpus coming online.
package hotplug

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
	"gopkg.in/tomb.v2"

	"github.com/AICP/device-sony-msm8974-common/logger"
	"github.com/AICP/device-sony-msm8974-common/osutil/udev/netlink"
)

type ueventSource interface {
	// WaitReadable blocks until an event can be read, it returns false
	// once Stop was called.
	WaitReadable() (bool, error)
	ReadUEvent() (*netlink.UEvent, error)
	Stop()
	Close() error
}

type kernelSource struct {
	conn           *netlink.UEventConn
	readableOrStop func() (bool, error)
	stop           func()
}

func (k *kernelSource) WaitReadable() (bool, error)          { return k.readableOrStop() }
func (k *kernelSource) ReadUEvent() (*netlink.UEvent, error) { return k.conn.ReadUEvent() }
func (k *kernelSource) Stop()                                { k.stop() }
func (k *kernelSource) Close() error                         { return k.conn.Close() }

var openSource = func() (ueventSource, error) {
	conn := &netlink.UEventConn{}
	if err := conn.Connect(netlink.KernelEvent); err != nil {
		return nil, fmt.Errorf("cannot connect to the uevent socket: %w", err)
	}
	readableOrStop, stop, err := netlink.RawSockStopper(conn.Fd)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &kernelSource{conn: conn, readableOrStop: readableOrStop, stop: stop}, nil
}

const cpuDevpathPrefix = "/devices/system/cpu/cpu"

// cpuOnlineMatcher matches a cpu being onlined, or a cpu device being
// added, which comes up with a fresh cpufreq policy as well.
func cpuOnlineMatcher() netlink.Matcher {
	env := map[string]string{
		"SUBSYSTEM": "cpu",
		"DEVPATH":   cpuDevpathPrefix + `\d+`,
	}
	online, add := netlink.ONLINE.String(), netlink.ADD.String()
	return &netlink.RuleDefinitions{
		Rules: []netlink.RuleDefinition{
			{Action: &online, Env: env},
			{Action: &add, Env: env},
		},
	}
}

// Watcher calls a function for every cpu that comes online or is added.
type Watcher struct {
	online  func(cpu int)
	matcher netlink.Matcher

	src  ueventSource
	tomb tomb.Tomb
}

// New returns a Watcher calling online with the number of each cpu
// brought online. Use Start to begin watching.
func New(online func(cpu int)) *Watcher {
	return &Watcher{online: online, matcher: cpuOnlineMatcher()}
}

// Start opens the uevent socket and starts watching.
func (w *Watcher) Start() error {
	if err := w.matcher.Compile(); err != nil {
		return err
	}
	src, err := openSource()
	if err != nil {
		return err
	}
	w.src = src
	w.tomb.Go(w.loop)
	return nil
}

// Stop stops watching and closes the socket.
func (w *Watcher) Stop() error {
	if w.src == nil {
		return nil
	}
	w.tomb.Kill(nil)
	w.src.Stop()
	err := w.tomb.Wait()
	if cerr := w.src.Close(); err == nil {
		err = cerr
	}
	return err
}

func (w *Watcher) loop() error {
	for {
		readable, err := w.src.WaitReadable()
		if err != nil {
			return fmt.Errorf("cannot wait for uevents: %w", err)
		}
		if !readable {
			return nil
		}

		ev, err := w.src.ReadUEvent()
		if errors.Is(err, unix.EAGAIN) {
			continue
		}
		if err != nil {
			logger.Debugf("ignoring uevent: %v", err)
			continue
		}
		if !w.matcher.Evaluate(*ev) {
			continue
		}
		cpu, err := strconv.Atoi(strings.TrimPrefix(ev.Env["DEVPATH"], cpuDevpathPrefix))
		if err != nil {
			continue
		}
		logger.Debugf("cpu%d came online", cpu)
		w.online(cpu)
	}
}
