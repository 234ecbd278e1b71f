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

package vdg

// Colour is an index into the fixed 6847 palette. Conversion to RGB is a
// host concern; the core only ever produces these indices.
type Colour uint8

// The twelve named 6847 colours.
const (
	Green Colour = iota
	Yellow
	Blue
	Red
	Buff
	Cyan
	Magenta
	Orange
	Black
	DarkGreen
	DarkOrange
	BrightOrange
)

// Variant selects how BrightOrange is rendered.
type Variant int

// Supported VDG silicon variants.
const (
	Variant6847 Variant = iota
	Variant6847T1
)

// Resolve returns the colour actually emitted for c on the given
// variant: the 6847T1 renders BrightOrange as ordinary Orange.
func Resolve(c Colour, variant Variant) Colour {
	if c == BrightOrange && variant == Variant6847T1 {
		return Orange
	}
	return c
}

// The two CSS-selected graphics palettes, indexed
// by the 2-bit colour code used by CG/RG modes.
var graphicsPaletteCSS0 = [4]Colour{Green, Yellow, Blue, Red}
var graphicsPaletteCSS1 = [4]Colour{Buff, Cyan, Magenta, Orange}

// GraphicsColour resolves a 2-bit CG/RG colour code under the given CSS
// (colour set select) line state.
func GraphicsColour(code uint8, css bool) Colour {
	if css {
		return graphicsPaletteCSS1[code&0x3]
	}
	return graphicsPaletteCSS0[code&0x3]
}

// Semigraphics4Colour resolves the 3-bit colour field used by SG4/SG6
// block graphics (not CSS-gated; these select directly from the 8
// colours of both graphics palettes, Buff and Cyan included).
var semigraphicsPalette = [8]Colour{Green, Yellow, Blue, Red, Buff, Cyan, Magenta, Orange}

func Semigraphics4Colour(code uint8) Colour {
	return semigraphicsPalette[code&0x7]
}
