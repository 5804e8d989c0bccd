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

package main_test

import (
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/godbus/dbus/v5"
	. "gopkg.in/check.v1"

	powerhald "github.com/AICP/device-sony-msm8974-common/cmd/powerhald"
	"github.com/AICP/device-sony-msm8974-common/dbusapi"
	"github.com/AICP/device-sony-msm8974-common/dirs"
	"github.com/AICP/device-sony-msm8974-common/sysfs"
	"github.com/AICP/device-sony-msm8974-common/sysfs/sysfstest"
	"github.com/AICP/device-sony-msm8974-common/testutil"
)

type daemonRun struct {
	mu       sync.Mutex
	signals  chan<- os.Signal
	states   []string
	notified chan string
	done     chan error
}

func (s *powerhaldSuite) writeFile(c *C, path, content string) {
	c.Assert(os.MkdirAll(filepath.Dir(path), 0755), IsNil)
	c.Assert(os.WriteFile(path, []byte(content), 0644), IsNil)
}

func (s *powerhaldSuite) mockDevice(c *C) *sysfstest.Recorder {
	s.writeFile(c, dirs.SocIDFile, "194\n")
	for cpu := 0; cpu < 4; cpu++ {
		s.writeFile(c, dirs.CPUFreqFile(cpu, "scaling_min_freq"), "300000\n")
		s.writeFile(c, dirs.CPUFreqFile(cpu, "scaling_max_freq"), "2265600\n")
	}
	s.writeFile(c, dirs.SchedKnob("sched_downmigrate"), "90\n")
	s.writeFile(c, dirs.SchedKnob("sched_upmigrate"), "95\n")

	rec := sysfstest.New()
	old := sysfs.Files
	sysfs.Files = rec
	s.AddCleanup(func() { sysfs.Files = old })
	return rec
}

func value(c *C, rec *sysfstest.Recorder, path string) string {
	v, ok := rec.Value(path)
	c.Assert(ok, Equals, true, Commentf("%s not written", path))
	return v
}

func (s *powerhaldSuite) startDaemon(c *C, watchdog time.Duration, args ...string) *daemonRun {
	d := &daemonRun{
		notified: make(chan string, 100),
		done:     make(chan error, 1),
	}
	s.AddCleanup(powerhald.MockSignalNotify(func(ch chan<- os.Signal, sig ...os.Signal) {
		c.Check(sig, DeepEquals, []os.Signal{syscall.SIGINT, syscall.SIGTERM})
		d.mu.Lock()
		defer d.mu.Unlock()
		d.signals = ch
	}))
	s.AddCleanup(powerhald.MockSdNotify(func(unset bool, state string) (bool, error) {
		c.Check(unset, Equals, false)
		d.mu.Lock()
		d.states = append(d.states, state)
		d.mu.Unlock()
		select {
		case d.notified <- state:
		default:
		}
		return true, nil
	}))
	s.AddCleanup(powerhald.MockSdWatchdogEnabled(func(bool) (time.Duration, error) {
		return watchdog, nil
	}))

	go func() { d.done <- powerhald.Run(append([]string{"run"}, args...)) }()
	return d
}

func (d *daemonRun) waitFor(c *C, state string) {
	for {
		select {
		case st := <-d.notified:
			if st == state {
				return
			}
		case err := <-d.done:
			c.Fatalf("daemon exited early: %v", err)
		case <-time.After(testutil.HostScaledTimeout(10 * time.Second)):
			c.Fatalf("daemon did not notify %s", state)
		}
	}
}

func (d *daemonRun) stop(c *C) error {
	d.mu.Lock()
	ch := d.signals
	d.mu.Unlock()
	ch <- syscall.SIGTERM

	select {
	case err := <-d.done:
		return err
	case <-time.After(testutil.HostScaledTimeout(10 * time.Second)):
		c.Fatal("daemon did not stop")
	}
	return nil
}

func (s *powerhaldSuite) TestRunDaemon(c *C) {
	rec := s.mockDevice(c)
	cfg := filepath.Join(s.root, "powerhal.yaml")
	s.writeFile(c, cfg, "refresh:\n  backend: none\n")

	d := s.startDaemon(c, 0, "--config", cfg)
	d.waitFor(c, "READY=1")

	s.conn.mu.Lock()
	c.Check(s.conn.exported, DeepEquals, []string{
		"/org/aicp/PowerHAL org.aicp.PowerHAL",
		"/org/aicp/PowerHAL org.freedesktop.DBus.Introspectable",
	})
	c.Check(s.conn.names, DeepEquals, []string{"org.aicp.PowerHAL"})
	obj := s.conn.served["org.aicp.PowerHAL"].(*dbusapi.PowerHAL)
	s.conn.mu.Unlock()

	// hints reach the hardware through the exported object
	c.Assert(obj.PowerHint(5, 1), IsNil)
	for cpu := 0; cpu < 4; cpu++ {
		c.Check(value(c, rec, dirs.CPUFreqFile(cpu, "scaling_max_freq")), Equals, "729600")
	}
	c.Assert(obj.PowerHint(2, 5000), IsNil)
	c.Check(value(c, rec, dirs.CPUFreqFile(0, "scaling_min_freq")), Equals, "1190000")
	c.Check(value(c, rec, dirs.SchedKnob("sched_downmigrate")), Equals, "10")

	doc, derr := obj.GetStatus()
	c.Assert(derr, IsNil)
	c.Check(doc, Matches, `.*"low-power":true.*"display-boost":true.*`)

	c.Assert(d.stop(c), IsNil)
	d.mu.Lock()
	defer d.mu.Unlock()
	c.Check(d.states, DeepEquals, []string{"READY=1", "STOPPING=1"})
	c.Check(s.conn.closed, Equals, 1)
	c.Check(s.logbuf.String(), testutil.Contains, "Exiting on terminated signal.")
	c.Check(s.logbuf.String(), Matches, `(?s).*releasing [1-4] resource locks.*`)

	// boosts are undone on exit
	c.Check(value(c, rec, dirs.CPUFreqFile(0, "scaling_min_freq")), Equals, "300000")
	c.Check(value(c, rec, dirs.SchedKnob("sched_downmigrate")), Equals, "90")
}

func (s *powerhaldSuite) TestRunDaemonWatchdog(c *C) {
	s.mockDevice(c)

	d := s.startDaemon(c, 10*time.Millisecond, "--config", filepath.Join(s.root, "missing.yaml"))
	d.waitFor(c, "READY=1")
	d.waitFor(c, "WATCHDOG=1")
	c.Assert(d.stop(c), IsNil)
}

func (s *powerhaldSuite) TestRunBadConfig(c *C) {
	cfg := filepath.Join(s.root, "powerhal.yaml")
	s.writeFile(c, cfg, "cpus: -1\n")

	err := powerhald.Run([]string{"run", "--config", cfg})
	c.Check(err, ErrorMatches, `invalid configuration ".*/powerhal.yaml": cpus must be positive, got -1`)
	c.Check(s.sessions, HasLen, 0)
}

func (s *powerhaldSuite) TestRunBusNameTaken(c *C) {
	s.mockDevice(c)
	s.conn.reply = dbus.RequestNameReplyExists

	err := powerhald.Run([]string{"run", "--config", filepath.Join(s.root, "missing.yaml")})
	c.Check(err, ErrorMatches, "cannot obtain bus name 'org.aicp.PowerHAL'")
	c.Check(s.conn.closed, Equals, 1)
}
