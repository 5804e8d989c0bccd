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

// Package logger is the process-wide log of the power HAL. Messages go to
// the journal when running under systemd and to stderr otherwise.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/coreos/go-systemd/journal"

	"github.com/AICP/device-sony-msm8974-common/osutil"
)

// A Logger receives already formatted messages.
type Logger interface {
	// Notice is for messages an operator should see.
	Notice(msg string)
	// Debug is for boost decisions, skipped hints and the like.
	Debug(msg string)
}

// DefaultFlags are the flags of the console logger on a terminal.
const DefaultFlags = log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile

// SyslogIdentifier tags journal entries.
const SyslogIdentifier = "powerhald"

type nullLogger struct{}

func (nullLogger) Notice(string) {}
func (nullLogger) Debug(string)  {}

// NullLogger drops everything. It is the logger until setup.
var NullLogger Logger = nullLogger{}

var (
	logger Logger = NullLogger
	lock   sync.Mutex
)

// Noticef logs a notice.
func Noticef(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)

	lock.Lock()
	defer lock.Unlock()
	logger.Notice(msg)
}

// Debugf logs a debug message. It is dropped unless debugging is on.
func Debugf(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)

	lock.Lock()
	defer lock.Unlock()
	logger.Debug(msg)
}

// SetLogger sets the global logger.
func SetLogger(l Logger) {
	lock.Lock()
	defer lock.Unlock()
	logger = l
}

func mockWith(l Logger) (restore func()) {
	lock.Lock()
	old := logger
	logger = l
	lock.Unlock()
	return func() { SetLogger(old) }
}

// MockLogger replaces the logger with a console one writing to the
// returned buffer.
func MockLogger() (buf *bytes.Buffer, restore func()) {
	buf = &bytes.Buffer{}
	return buf, mockWith(New(buf, DefaultFlags))
}

// MockDebugLogger is MockLogger with debug messages always recorded.
func MockDebugLogger() (buf *bytes.Buffer, restore func()) {
	buf = &bytes.Buffer{}
	return buf, mockWith(&consoleLogger{log: log.New(buf, "", DefaultFlags), debug: true})
}

// debugEnabled reports whether debug output was asked for through the
// environment or the kernel command line.
func debugEnabled(forced bool) bool {
	return forced || osutil.GetenvBool("POWERHAL_DEBUG")
}

type consoleLogger struct {
	log   *log.Logger
	debug bool
}

func (l *consoleLogger) Debug(msg string) {
	if debugEnabled(l.debug) {
		l.log.Output(3, "DEBUG: "+msg)
	}
}

func (l *consoleLogger) Notice(msg string) {
	l.log.Output(3, msg)
}

// New returns a Logger writing lines to w with the given log flags.
func New(w io.Writer, flag int) Logger {
	return &consoleLogger{
		log:   log.New(w, "", flag),
		debug: debugOnKernelCmdline(),
	}
}

var (
	journalEnabled = journal.Enabled
	journalSend    = journal.Send
)

type journalLogger struct {
	debug bool
	// fallback for entries the journal refused
	stderr Logger
}

func (l *journalLogger) send(msg string, pri journal.Priority) error {
	return journalSend(msg, pri, map[string]string{"SYSLOG_IDENTIFIER": SyslogIdentifier})
}

func (l *journalLogger) Debug(msg string) {
	if !debugEnabled(l.debug) {
		return
	}
	if err := l.send(msg, journal.PriDebug); err != nil {
		l.stderr.Debug(msg)
	}
}

func (l *journalLogger) Notice(msg string) {
	if err := l.send(msg, journal.PriNotice); err != nil {
		l.stderr.Notice(msg)
	}
}

// SimpleSetup installs the journal logger when the journal socket is
// available and no terminal is attached, and a stderr logger otherwise.
func SimpleSetup() {
	if os.Getenv("TERM") != "" {
		SetLogger(New(os.Stderr, DefaultFlags))
		return
	}
	stderr := New(os.Stderr, log.Lshortfile)
	if !journalEnabled() {
		SetLogger(stderr)
		return
	}
	SetLogger(&journalLogger{debug: debugOnKernelCmdline(), stderr: stderr})
}

// tests skip /proc/cmdline unless they ask for it
var procCmdlineInTests = false

func debugOnKernelCmdline() bool {
	if osutil.IsTestBinary() && !procCmdlineInTests {
		return false
	}
	m, _ := osutil.KernelCommandLineKeyValues("powerhal.debug")
	return m["powerhal.debug"] == "1"
}
