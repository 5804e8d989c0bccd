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

package powerhal

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Hint identifies a power hint sent by the host.
type Hint uint32

const (
	HintVsync       Hint = 0x00000001
	HintInteraction Hint = 0x00000002
	HintVideoEncode Hint = 0x00000003
	HintLowPower    Hint = 0x00000005
	HintLaunch      Hint = 0x00000008
	HintCPUBoost    Hint = 0x00000110
)

var hintNames = map[Hint]string{
	HintVsync:       "vsync",
	HintInteraction: "interaction",
	HintVideoEncode: "video-encode",
	HintLowPower:    "low-power",
	HintLaunch:      "launch",
	HintCPUBoost:    "cpu-boost",
}

func (h Hint) String() string {
	if name, ok := hintNames[h]; ok {
		return name
	}
	return fmt.Sprintf("hint(%#x)", uint32(h))
}

// HintNames returns the names understood by ParseHint.
func HintNames() []string {
	names := make([]string, 0, len(hintNames))
	for _, name := range hintNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseHint returns the hint with the given name, or the hint with the given
// numeric id (decimal or 0x prefixed hex).
func ParseHint(s string) (Hint, error) {
	for h, name := range hintNames {
		if name == s {
			return h, nil
		}
	}
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown hint %q, expected one of %s or a number", s, strings.Join(HintNames(), ", "))
	}
	return Hint(id), nil
}

// Payload is the optional data accompanying a hint.
type Payload interface {
	isPayload()
}

// Duration is the estimated length in milliseconds of an interaction.
type Duration int

// Enable turns low-power mode on or off.
type Enable bool

// Metadata is the "state=N" string describing a video encode event.
type Metadata string

func (Duration) isPayload() {}
func (Enable) isPayload()   {}
func (Metadata) isPayload() {}

// PayloadFor builds the payload of hint from a single integer argument, as
// carried over the bus and the command line.
func PayloadFor(hint Hint, arg int32) Payload {
	switch hint {
	case HintInteraction:
		return Duration(arg)
	case HintLowPower:
		return Enable(arg != 0)
	case HintVideoEncode:
		return Metadata(fmt.Sprintf("state=%d", arg))
	}
	return nil
}

// Feature identifies a device feature toggled by the host.
type Feature uint32

const (
	FeatureDoubleTapToWake Feature = 0x00000001
)

func (f Feature) String() string {
	if f == FeatureDoubleTapToWake {
		return "double-tap-to-wake"
	}
	return fmt.Sprintf("feature(%#x)", uint32(f))
}

// ParseFeature returns the feature with the given name or numeric id.
func ParseFeature(s string) (Feature, error) {
	if s == FeatureDoubleTapToWake.String() {
		return FeatureDoubleTapToWake, nil
	}
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown feature %q", s)
	}
	return Feature(id), nil
}
