// This file is part of dgncore.
//
// dgncore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// dgncore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with dgncore.  If not, see <https://www.gnu.org/licenses/>.

// Command dgncore is a headless driver for the core: it loads a ROM
// image, runs it for a fixed number of ticks, and reports what
// happened. It exists to exercise the module end to end; a host that
// wants a GUI, audio output, or disk-image management builds its own
// front end on top of the hardware/machine package.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dgn32/dgncore/errors"
	"github.com/dgn32/dgncore/hardware/cpu"
	"github.com/dgn32/dgncore/hardware/instance"
	"github.com/dgn32/dgncore/hardware/machine"
	"github.com/dgn32/dgncore/hardware/preferences"
	"github.com/dgn32/dgncore/hardware/scheduler"
	"github.com/dgn32/dgncore/logger"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "dgncore: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flgs := flag.NewFlagSet("dgncore", flag.ExitOnError)
	arch := flgs.String("arch", string(preferences.ArchDragon32), "machine architecture: dragon32, dragon64, coco1, coco2")
	variant := flgs.String("cpu", "6809", "CPU variant: 6809, 6309")
	ramKB := flgs.Int("ram", 32, "installed RAM in kilobytes")
	romHighPath := flgs.String("romhigh", "", "path to the high 16K ROM image (Dragon 64 only)")
	ticks := flgs.Uint("ticks", 14318180, "oscillator ticks to run before stopping")
	prefsPath := flgs.String("prefs", "", "preferences file path (default: "+preferences.DefaultPrefsFile+")")
	echo := flgs.Bool("log", false, "echo the retained log to stderr on exit")

	if err := flgs.Parse(args); err != nil {
		return err
	}

	romArgs := flgs.Args()
	if len(romArgs) != 1 {
		return errors.Errorf(errors.ConfigNoROM)
	}

	romLow, err := os.ReadFile(romArgs[0])
	if err != nil {
		return err
	}

	var romHigh []byte
	if *romHighPath != "" {
		romHigh, err = os.ReadFile(*romHighPath)
		if err != nil {
			return err
		}
	}

	cpuVariant, err := parseVariant(*variant)
	if err != nil {
		return err
	}

	path := *prefsPath
	if path == "" {
		path = preferences.DefaultPrefsFile
	}
	ins, err := newInstance(path, *arch, *ramKB)
	if err != nil {
		return err
	}

	log := logger.NewLogger(1024)

	m, err := machine.New(ins, log, preferences.Architecture(*arch), cpuVariant, *ramKB, romLow, romHigh)
	if err != nil {
		return err
	}

	trap, ran := m.Run(scheduler.Tick(*ticks))

	fmt.Printf("ran %d ticks (requested %d)\n", ran, *ticks)
	if trap != nil {
		fmt.Printf("stopped on trap: %s\n", trap.Reason)
	}

	if *echo {
		log.Write(os.Stderr)
	}

	return nil
}

func parseVariant(s string) (cpu.Variant, error) {
	switch s {
	case "6809":
		return cpu.Variant6809, nil
	case "6309":
		return cpu.Variant6309, nil
	default:
		return 0, errors.Errorf(errors.ConfigError, "unsupported CPU variant: "+s)
	}
}

// newInstance loads (or creates, with defaults) the preferences file at
// path and overrides the architecture and RAM size from the command
// line, leaving every other preference at its persisted or default
// value.
func newInstance(path, arch string, ramKB int) (*instance.Instance, error) {
	ins, err := instance.NewInstance(0, path)
	if err != nil {
		return nil, err
	}
	if err := ins.Prefs.Architecture.Set(arch); err != nil {
		return nil, err
	}
	if err := ins.Prefs.RAMSize.Set(ramKB); err != nil {
		return nil, err
	}
	return ins, nil
}
