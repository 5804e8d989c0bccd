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

// Package sysfs writes ASCII values to kernel control files.
package sysfs

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// A Writer writes a value to a control file.
type Writer interface {
	Write(path, value string) error
}

// IoError is returned when a control file cannot be opened or written.
type IoError struct {
	Path string
	// Op is either "open" or "write"
	Op  string
	Err error
}

func (e *IoError) Error() string {
	cause := e.Err
	var pathErr *os.PathError
	if errors.As(cause, &pathErr) {
		// the path is already part of the message
		cause = pathErr.Err
	}
	switch e.Op {
	case "open":
		return fmt.Sprintf("cannot open %s: %v", e.Path, cause)
	default:
		return fmt.Sprintf("cannot write to %s: %v", e.Path, cause)
	}
}

func (e *IoError) Unwrap() error {
	return e.Err
}

var osOpenFile = os.OpenFile

type fileWriter struct{}

// Write opens path write-only, writes value verbatim and closes it again.
// No newline is appended and the write is never retried.
func (fileWriter) Write(path, value string) error {
	f, err := osOpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return &IoError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	if _, err := f.Write([]byte(value)); err != nil {
		return &IoError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// Files is the Writer backed by the real filesystem.
var Files Writer = fileWriter{}

// ReadString reads a single line control file and returns its content
// without surrounding whitespace.
func ReadString(path string) (string, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(buf)), nil
}
