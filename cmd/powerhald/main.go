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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/godbus/dbus/v5"
	"github.com/jessevdk/go-flags"

	"github.com/AICP/device-sony-msm8974-common/dbusutil"
	"github.com/AICP/device-sony-msm8974-common/logger"
)

var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr

	opts options
)

type options struct {
	Session bool `long:"session" description:"Use the session bus instead of the system bus"`
}

const (
	shortHelp = "Power HAL for msm8974 devices"
	longHelp  = `
powerhald translates power hints into cpufreq, scheduler and display
refresh changes. The run command starts the daemon, the other commands
talk to a running daemon over D-Bus.
`
)

// busConn is the part of *dbus.Conn used by the commands.
type busConn interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	Export(v interface{}, path dbus.ObjectPath, iface string) error
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)
	Close() error
}

var connectBus = func(session bool) (busConn, error) {
	return dbusutil.Connect(session)
}

func init() {
	logger.SimpleSetup()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type cmdInfo struct {
	name, short, long string
	builder           func() flags.Commander
}

var commands []*cmdInfo

// addCommand registers a command, the builder is called for every parser
// so each run starts from zeroed arguments.
func addCommand(name, short, long string, builder func() flags.Commander) {
	commands = append(commands, &cmdInfo{
		name:    name,
		short:   short,
		long:    long,
		builder: builder,
	})
}

// Parser returns a new parser with all the commands.
func Parser() *flags.Parser {
	opts = options{}
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash|flags.PassAfterNonOption)
	parser.ShortDescription = shortHelp
	parser.LongDescription = longHelp
	for _, c := range commands {
		if _, err := parser.AddCommand(c.name, c.short, c.long, c.builder()); err != nil {
			panic(err)
		}
	}
	return parser
}

func run(args []string) error {
	_, err := Parser().ParseArgs(args)
	return err
}
