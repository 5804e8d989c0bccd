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

package resource

import "fmt"

// Opcode selects what a resource id acts on. A resource id packs the opcode
// in the upper half and a 16 bit argument in the lower half.
type Opcode uint16

const (
	// OpMinFreqLittle and OpMinFreqBig raise the minimum frequency of a
	// cluster, the argument is in MHz.
	OpMinFreqLittle Opcode = 0x40
	OpMinFreqBig    Opcode = 0x41
	// OpSchedDownmigrate and OpSchedUpmigrate set the scheduler migration
	// thresholds, the argument is a percentage.
	OpSchedDownmigrate Opcode = 0x42
	OpSchedUpmigrate   Opcode = 0x43
)

func (op Opcode) String() string {
	switch op {
	case OpMinFreqLittle:
		return "min-freq-little"
	case OpMinFreqBig:
		return "min-freq-big"
	case OpSchedDownmigrate:
		return "sched-downmigrate"
	case OpSchedUpmigrate:
		return "sched-upmigrate"
	}
	return fmt.Sprintf("opcode(%#x)", uint16(op))
}

// Encode packs op and arg into a resource id.
func Encode(op Opcode, arg int) int {
	return int(op)<<16 | arg&0xffff
}

// Decode splits a resource id into its opcode and argument.
func Decode(id int) (Opcode, int) {
	return Opcode(id >> 16), id & 0xffff
}
