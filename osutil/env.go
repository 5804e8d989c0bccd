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

package osutil

import (
	"os"
	"strconv"
	"strings"
)

// GetenvBool parses the environment variable key as a boolean ("1",
// "true", "0", ...). An unset or unparsable value yields dflt when given,
// false otherwise.
func GetenvBool(key string, dflt ...bool) bool {
	fallback := len(dflt) > 0 && dflt[0]
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

// IsTestBinary reports whether this is a "go test" binary.
func IsTestBinary() bool {
	return strings.HasSuffix(os.Args[0], ".test")
}
