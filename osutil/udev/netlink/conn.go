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

package netlink

import (
	"os"

	"golang.org/x/sys/unix"
)

// Mode determines event source: kernel events or udev-processed events.
// See libudev/libudev-monitor.c.
type Mode int

const (
	KernelEvent Mode = 1
	// Events that are processed by udev - much richer, with more attributes (such as vendor info, serial numbers and more).
	UdevEvent Mode = 2
)

// a single uevent is at most a few kilobytes
const readBufferSize = 64 * 1024

// Generic connection
type NetlinkConn struct {
	Fd   int
	Addr unix.SockaddrNetlink
	buf  []byte
}

type UEventConn struct {
	NetlinkConn
}

// Connect allow to connect to system socket AF_NETLINK with family NETLINK_KOBJECT_UEVENT to
// catch events about devices and cpus going on and offline.
func (c *UEventConn) Connect(mode Mode) (err error) {
	c.Fd, err = unix.Socket(unix.AF_NETLINK, unix.SOCK_RAW|unix.SOCK_CLOEXEC, unix.NETLINK_KOBJECT_UEVENT)
	if err != nil {
		return os.NewSyscallError("socket", err)
	}

	c.Addr = unix.SockaddrNetlink{
		Family: unix.AF_NETLINK,
		Groups: uint32(mode),
		Pid:    uint32(os.Getpid()),
	}

	if err := unix.Bind(c.Fd, &c.Addr); err != nil {
		unix.Close(c.Fd)
		return os.NewSyscallError("bind", err)
	}

	c.buf = make([]byte, readBufferSize)
	return nil
}

// Close allow to close file descriptor and socket bound
func (c *UEventConn) Close() error {
	return unix.Close(c.Fd)
}

// ReadMsg allow to read an entire uevent msg
func (c *UEventConn) ReadMsg() ([]byte, error) {
	n, _, err := unix.Recvfrom(c.Fd, c.buf, 0)
	if err != nil {
		return nil, err
	}
	// Extract only real data from buffer and return that
	return c.buf[:n], nil
}

// ReadUEvent reads and parses the next uevent.
func (c *UEventConn) ReadUEvent() (*UEvent, error) {
	msg, err := c.ReadMsg()
	if err != nil {
		return nil, err
	}
	return ParseUEvent(msg)
}
