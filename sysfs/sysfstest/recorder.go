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

// Package sysfstest provides a recording sysfs.Writer for tests.
package sysfstest

import (
	"fmt"
	"sync"

	"github.com/AICP/device-sony-msm8974-common/sysfs"
)

// Write is a single recorded write.
type Write struct {
	Path  string
	Value string
}

func (w Write) String() string {
	return fmt.Sprintf("%s=%s", w.Path, w.Value)
}

// Recorder is a sysfs.Writer that remembers every write in order and can be
// told to fail writes to given paths.
type Recorder struct {
	mu     sync.Mutex
	writes []Write
	fail   map[string]error
	values map[string]string

	// Hook, when set, is called for each write before it is recorded,
	// outside of the recorder lock.
	Hook func(path, value string)
}

var _ sysfs.Writer = (*Recorder)(nil)

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{
		fail:   make(map[string]error),
		values: make(map[string]string),
	}
}

// FailOn makes writes to path fail with err (wrapped in a *sysfs.IoError).
func (r *Recorder) FailOn(path string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail[path] = err
}

// Write implements sysfs.Writer.
func (r *Recorder) Write(path, value string) error {
	if r.Hook != nil {
		r.Hook(path, value)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, Write{Path: path, Value: value})
	if err := r.fail[path]; err != nil {
		return &sysfs.IoError{Path: path, Op: "write", Err: err}
	}
	r.values[path] = value
	return nil
}

// Writes returns a copy of all the writes seen so far.
func (r *Recorder) Writes() []Write {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Write(nil), r.writes...)
}

// Value returns the last successfully written value of path.
func (r *Recorder) Value(path string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.values[path]
	return v, ok
}

// Reset forgets all recorded writes, failures are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = nil
	r.values = make(map[string]string)
}
