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

package keyboard

// Scancode identifies a physical key position, independent of layout or
// shift state; the host keyboard back-end is responsible for mapping its
// own native key codes to these.
type Scancode int

// position maps a Scancode to its matrix (column, row), following the
// Dragon/CoCo keyboard layout.
type position struct {
	col, row int
}

// Keyboard wraps a Matrix with the scancode and Unicode input methods
// spec.md §6 names, so host back-ends never address the matrix directly.
type Keyboard struct {
	Matrix *Matrix

	scancodeMap map[Scancode]position
	unicodeMap  map[rune][]position // one key per mapped character
}

// NewKeyboard creates a Keyboard over a fresh Matrix, with the standard
// scancode-to-position table installed.
func NewKeyboard() *Keyboard {
	k := &Keyboard{
		Matrix:      NewMatrix(),
		scancodeMap: defaultScancodeMap(),
		unicodeMap:  defaultUnicodeMap(),
	}
	return k
}

// PressKey presses the key at the given scancode.
func (k *Keyboard) PressKey(sc Scancode) {
	if p, ok := k.scancodeMap[sc]; ok {
		k.Matrix.Press(p.col, p.row)
	}
}

// ReleaseKey releases the key at the given scancode.
func (k *Keyboard) ReleaseKey(sc Scancode) {
	if p, ok := k.scancodeMap[sc]; ok {
		k.Matrix.Release(p.col, p.row)
	}
}

// PressUnicode presses the key mapped to codepoint on this keyboard
// layout; every mapped character is a single key, and no shifted
// characters are mapped. Used to inject
// typed text (e.g. a CLOAD command string) without simulating individual
// physical keys.
func (k *Keyboard) PressUnicode(codepoint rune) {
	for _, p := range k.unicodeMap[codepoint] {
		k.Matrix.Press(p.col, p.row)
	}
}

// ReleaseUnicode releases whatever key combination PressUnicode pressed
// for codepoint.
func (k *Keyboard) ReleaseUnicode(codepoint rune) {
	for _, p := range k.unicodeMap[codepoint] {
		k.Matrix.Release(p.col, p.row)
	}
}

// shiftPosition is the matrix position of the Shift key. defaultUnicodeMap
// does not use it: it builds no shifted chords.
var shiftPosition = position{col: 7, row: 6}

func defaultScancodeMap() map[Scancode]position {
	m := make(map[Scancode]position, Columns*Rows)
	for col := 0; col < Columns; col++ {
		for row := 0; row < Rows; row++ {
			m[Scancode(col*Rows+row)] = position{col: col, row: row}
		}
	}
	return m
}

func defaultUnicodeMap() map[rune][]position {
	m := make(map[rune][]position)
	// the alphabet occupies scancodes 0-25, i.e. columns 0-3 in column-
	// major scancode order on this matrix, matching the layout the
	// scancode table above assigns; uppercase needs no shift on this
	// machine (there is no lowercase), matching real Dragon/CoCo ROMs.
	for i := 0; i < 26; i++ {
		sc := Scancode(i)
		p := position{col: i / Rows, row: i % Rows}
		m[rune('A'+i)] = []position{p}
		_ = sc
	}
	for i := 0; i < 10; i++ {
		p := position{col: (26 + i) / Rows, row: (26 + i) % Rows}
		m[rune('0'+i)] = []position{p}
	}
	enterPos := position{col: 7, row: 2}
	m['\r'] = []position{enterPos}
	m['\n'] = []position{enterPos}
	spacePos := position{col: 7, row: 0}
	m[' '] = []position{spacePos}
	return m
}
