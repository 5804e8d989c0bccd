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
	"strings"
	"time"

	"github.com/AICP/device-sony-msm8974-common/logger"
	"github.com/AICP/device-sony-msm8974-common/resource"
)

// interaction boosts both clusters and lowers the scheduler migration
// thresholds, unless the boost limiter suppresses it.
func (m *Module) interaction(hint time.Duration) {
	d := m.limiter.Evaluate(m.clock.Now(), hint)
	if !d.Accepted {
		logger.Debugf("interaction (hint %v) too close to the previous boost", hint)
		return
	}
	logger.Debugf("interaction boost: hint %v upmigrate %d downmigrate %d", hint, d.Upmigrate, d.Downmigrate)

	ia := m.cfg.Interaction
	m.tracker.Apply(resource.GroupLittle, resource.Request{
		Resources: []int{resource.Encode(resource.OpMinFreqLittle, ia.LittleBoostMHz)},
		Duration:  d.LittleDuration,
	})
	m.tracker.Apply(resource.GroupBig, resource.Request{
		Resources: []int{resource.Encode(resource.OpMinFreqBig, ia.BigBoostMHz)},
		Duration:  d.BigDuration,
	})
	m.tracker.Apply(resource.GroupDownmigrate, resource.Request{
		Resources: []int{resource.Encode(resource.OpSchedDownmigrate, d.Downmigrate)},
		Duration:  d.DownmigrateDuration,
	})
	m.tracker.Apply(resource.GroupUpmigrate, resource.Request{
		Resources: []int{resource.Encode(resource.OpSchedUpmigrate, d.Upmigrate)},
		Duration:  d.UpmigrateDuration,
	})
}

// VideoEncodeState is the state carried by a video encode hint.
type VideoEncodeState int

const (
	VideoEncodeUnknown VideoEncodeState = iota
	VideoEncodeStarted
	VideoEncodeStopped
	VideoEncodeHDRStarted
	VideoEncodeHDRStopped
)

func (s VideoEncodeState) String() string {
	switch s {
	case VideoEncodeStarted:
		return "started"
	case VideoEncodeStopped:
		return "stopped"
	case VideoEncodeHDRStarted:
		return "hdr-started"
	case VideoEncodeHDRStopped:
		return "hdr-stopped"
	}
	return "unknown"
}

// ParseVideoEncode extracts the state from video encode metadata such as
// "state=1". Unrecognized metadata yields VideoEncodeUnknown.
func ParseVideoEncode(md Metadata) VideoEncodeState {
	for _, field := range strings.Fields(strings.ReplaceAll(string(md), ",", " ")) {
		k, v, ok := strings.Cut(field, "=")
		if !ok || k != "state" {
			continue
		}
		switch v {
		case "0":
			return VideoEncodeStopped
		case "1":
			return VideoEncodeStarted
		case "2":
			return VideoEncodeHDRStarted
		case "3":
			return VideoEncodeHDRStopped
		}
	}
	return VideoEncodeUnknown
}

// videoEncode has no effect on this platform beyond being logged.
func (m *Module) videoEncode(data Payload) {
	md, _ := data.(Metadata)
	m.logNoop("video encode %v, nothing to do", ParseVideoEncode(md))
}
