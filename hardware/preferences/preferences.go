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

// Package preferences collates the machine-configuration knobs that
// persist between runs: which architecture to emulate, the TV standard,
// installed RAM, and whether reset state should be randomised.
package preferences

import (
	"github.com/dgn32/dgncore/prefs"
)

// Architecture names a supported machine variant.
type Architecture string

// Supported architectures.
const (
	ArchDragon32 Architecture = "dragon32"
	ArchDragon64 Architecture = "dragon64"
	ArchCoCo1    Architecture = "coco1"
	ArchCoCo2    Architecture = "coco2"
)

// TVStandard names a supported video timing standard.
type TVStandard string

// Supported TV standards.
const (
	TVStandardNTSC TVStandard = "ntsc"
	TVStandardPAL  TVStandard = "pal"
)

// DefaultPrefsFile is the filename used when no explicit path is given to
// NewPreferences.
const DefaultPrefsFile = "dgncore.prefs"

// Preferences collates every persisted machine-configuration value.
type Preferences struct {
	dsk *prefs.Disk

	Architecture prefs.String
	TVStandard   prefs.String
	RAMSize      prefs.Int
	FastSound    prefs.Bool
	RandomState  prefs.Bool
}

// NewPreferences prepares a Preferences backed by the prefs file at path,
// loading any existing values from disk. A missing file is not an error;
// SetDefaults is applied before loading, so a fresh file has sane values.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, err
	}

	if err := p.dsk.Add("machine.architecture", &p.Architecture); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("machine.tvstandard", &p.TVStandard); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("machine.ramsize", &p.RAMSize); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("machine.fastsound", &p.FastSound); err != nil {
		return nil, err
	}
	if err := p.dsk.Add("machine.randomstate", &p.RandomState); err != nil {
		return nil, err
	}

	if err := p.dsk.Load(); err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults resets every value to its out-of-the-box default: a Dragon
// 32 with 32K of RAM on NTSC timing, fast-sound disabled, and randomised
// reset state enabled (matching real silicon's unpredictable power-on
// state).
func (p *Preferences) SetDefaults() {
	_ = p.Architecture.Set(string(ArchDragon32))
	_ = p.TVStandard.Set(string(TVStandardNTSC))
	_ = p.RAMSize.Set(32)
	_ = p.FastSound.Set(false)
	_ = p.RandomState.Set(true)
}

// Load reloads every value from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save writes every value to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
