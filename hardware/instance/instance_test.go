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

package instance_test

import (
	"path/filepath"
	"testing"

	"github.com/dgn32/dgncore/hardware/instance"
	"github.com/dgn32/dgncore/hardware/preferences"
	"github.com/dgn32/dgncore/test"
)

func TestNewInstanceLoadsPreferencesAndSeedsRandom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance.prefs")
	ins, err := instance.NewInstance(7, path)
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, ins.Prefs.Architecture.Get(), string(preferences.ArchDragon32))
	test.ExpectEquality(t, ins.Random.NoRewind(1), 0) // seeded, ZeroSeed off: a ceiling of 1 can only yield 0
}

func TestNormaliseForcesZeroSeedAndDefaultPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "normalise.prefs")
	ins, err := instance.NewInstance(123, path)
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, ins.Prefs.RAMSize.Set(64))
	ins.Normalise()

	test.ExpectEquality(t, ins.Prefs.RAMSize.Get(), 32)
	test.ExpectEquality(t, ins.Random.ZeroSeed, true)
	for i := 0; i < 16; i++ {
		test.ExpectEquality(t, ins.Random.NoRewind(1000), 0)
	}
}
