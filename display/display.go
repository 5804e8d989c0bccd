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

// Package display asks the display composition service to change its
// refresh rate.
package display

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/AICP/device-sony-msm8974-common/osutil"
)

// RefreshMode is the transaction code understood by the composition
// service.
type RefreshMode uint32

const (
	// RefreshReduced lowers the refresh rate while in low-power mode.
	RefreshReduced RefreshMode = 1016
	// RefreshNormal restores the regular refresh rate.
	RefreshNormal RefreshMode = 1017
)

func (m RefreshMode) String() string {
	switch m {
	case RefreshReduced:
		return "reduced"
	case RefreshNormal:
		return "normal"
	}
	return fmt.Sprintf("refresh-mode(%d)", uint32(m))
}

// A RefreshSetter changes the display refresh mode.
type RefreshSetter interface {
	SetRefreshMode(mode RefreshMode) error
}

var serviceCallTimeout = 5 * time.Second

// ServiceCall invokes "service call <Service> <code>".
type ServiceCall struct {
	Service string
}

// SetRefreshMode implements RefreshSetter.
func (s *ServiceCall) SetRefreshMode(mode RefreshMode) error {
	ctx, cancel := context.WithTimeout(context.Background(), serviceCallTimeout)
	defer cancel()

	code := strconv.FormatUint(uint64(mode), 10)
	if err := osutil.RunCommand(ctx, "service", "call", s.Service, code); err != nil {
		return fmt.Errorf("cannot set %v refresh mode via %s: %w", mode, s.Service, err)
	}
	return nil
}

// Nop ignores refresh mode changes.
type Nop struct{}

func (Nop) SetRefreshMode(RefreshMode) error { return nil }
