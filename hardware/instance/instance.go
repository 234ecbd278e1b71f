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

// Package instance defines those parts of the emulation that might change
// from instance to instance of the Machine type, but are not actually the
// Machine itself.
//
// Particularly useful when running more than one instance of the
// emulation in parallel (a headless regression harness, for example).
package instance

import (
	"github.com/dgn32/dgncore/hardware/preferences"
	"github.com/dgn32/dgncore/random"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of the Machine type, but are not actually the
// Machine itself.
type Instance struct {
	Prefs  *preferences.Preferences
	Random *random.Random
}

// NewInstance is the preferred method of initialisation for the Instance
// type. seed feeds the Random source; prefsPath is the file Preferences
// loads from and saves to.
func NewInstance(seed int64, prefsPath string) (*Instance, error) {
	ins := &Instance{
		Random: random.NewRandom(seed),
	}

	var err error
	ins.Prefs, err = preferences.NewPreferences(prefsPath)
	if err != nil {
		return nil, err
	}

	return ins, nil
}

// Normalise ensures the instance is in a known default state. Useful for
// regression testing where the initial state must be the same for every
// run of the test.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	ins.Prefs.SetDefaults()
}
