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

// Package prefs persists configuration values (machine architecture, RAM
// size, TV standard, and similar long-lived settings) to a simple text file
// of "key :: value" lines, one value per line, sorted by key.
package prefs

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// WarningBoilerPlate is written as the first line of every saved prefs
// file, ahead of the key/value lines.
const WarningBoilerPlate = "; this file is written automatically by dgncore. changes made while the emulator is running will be overwritten."

// Value is the loosely typed value passed to a Preference's Set function
// and returned by a Generic preference's getter.
type Value interface{}

// Preference is a single persistable value: something that can be set from
// a loosely typed Value (as read back from disk, or from the command
// line) and rendered as the string that is written to disk.
type Preference interface {
	Set(Value) error
	String() string
}

// Disk is a group of named Preference values that can be saved to, and
// loaded from, a single file.
type Disk struct {
	filename string
	entries  map[string]Preference
}

// NewDisk prepares a Disk that will save to, and load from, filename. The
// file is not touched until Save or Load is called.
func NewDisk(filename string) (*Disk, error) {
	if filename == "" {
		return nil, fmt.Errorf("prefs: no filename given")
	}
	return &Disk{
		filename: filename,
		entries:  make(map[string]Preference),
	}, nil
}

// Add registers p under key. Save and Load refer to p by this key.
func (d *Disk) Add(key string, p Preference) error {
	if _, ok := d.entries[key]; ok {
		return fmt.Errorf("prefs: duplicate entry (%s)", key)
	}
	d.entries[key] = p
	return nil
}

// Save writes every registered preference to disk, one "key :: value" line
// per entry, sorted alphabetically by key. Lines already in the file for
// keys not registered with this Disk are kept.
func (d *Disk) Save() error {
	values := make(map[string]string)
	if data, err := os.ReadFile(d.filename); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if strings.HasPrefix(line, ";") {
				continue
			}
			if parts := strings.SplitN(line, " :: ", 2); len(parts) == 2 {
				values[parts[0]] = parts[1]
			}
		}
	}
	for k, p := range d.entries {
		values[k] = p.String()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(WarningBoilerPlate)
	b.WriteString("\n")
	for _, k := range keys {
		b.WriteString(fmt.Sprintf("%s :: %s\n", k, values[k]))
	}

	return os.WriteFile(d.filename, []byte(b.String()), 0o644)
}

// Load reads the prefs file and applies each matched line to its
// registered Preference. Keys present in the file but not registered with
// this Disk are ignored. A missing file is not an error.
func (d *Disk) Load() error {
	data, err := os.ReadFile(d.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		parts := strings.SplitN(line, " :: ", 2)
		if len(parts) != 2 {
			continue
		}

		p, ok := d.entries[parts[0]]
		if !ok {
			continue
		}
		if err := p.Set(parts[1]); err != nil {
			return fmt.Errorf("prefs: %s: %w", parts[0], err)
		}
	}

	return nil
}

// Bool is a persistable boolean value.
type Bool struct {
	value bool
}

// Set accepts a bool directly, or a string as understood by
// strconv.ParseBool; an unrecognised string is treated as false rather than
// as an error, since prefs files are hand-editable.
func (b *Bool) Set(v Value) error {
	switch t := v.(type) {
	case bool:
		b.value = t
	case string:
		parsed, _ := strconv.ParseBool(t)
		b.value = parsed
	default:
		return fmt.Errorf("prefs: unsupported type (%T) for bool preference", v)
	}
	return nil
}

// Get returns the current value.
func (b *Bool) Get() bool {
	return b.value
}

// String implements the Preference interface.
func (b *Bool) String() string {
	return strconv.FormatBool(b.value)
}

// Int is a persistable integer value.
type Int struct {
	value int
}

// Set accepts an int directly, or a string parseable as a base-10 integer.
func (i *Int) Set(v Value) error {
	switch t := v.(type) {
	case int:
		i.value = t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
		i.value = n
	default:
		return fmt.Errorf("prefs: unsupported type (%T) for int preference", v)
	}
	return nil
}

// Get returns the current value.
func (i *Int) Get() int {
	return i.value
}

// String implements the Preference interface.
func (i *Int) String() string {
	return strconv.Itoa(i.value)
}

// Float is a persistable floating point value.
type Float struct {
	value float64
}

// Set accepts a float64 directly, or a string parseable as a float64.
func (f *Float) Set(v Value) error {
	switch t := v.(type) {
	case float64:
		f.value = t
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return fmt.Errorf("prefs: %w", err)
		}
		f.value = n
	default:
		return fmt.Errorf("prefs: unsupported type (%T) for float preference", v)
	}
	return nil
}

// Get returns the current value.
func (f *Float) Get() float64 {
	return f.value
}

// String implements the Preference interface.
func (f *Float) String() string {
	return strconv.FormatFloat(f.value, 'g', -1, 64)
}

// String is a persistable string value, optionally truncated to a maximum
// length.
type String struct {
	value  string
	maxLen int
}

// SetMaxLen bounds future values (and immediately crops the current value)
// to at most n runes. A value of zero removes the bound without restoring
// any previously cropped content.
func (s *String) SetMaxLen(n int) {
	s.maxLen = n
	s.crop()
}

func (s *String) crop() {
	if s.maxLen > 0 && len(s.value) > s.maxLen {
		s.value = s.value[:s.maxLen]
	}
}

// Set accepts a string, cropping it to the configured maximum length.
func (s *String) Set(v Value) error {
	t, ok := v.(string)
	if !ok {
		return fmt.Errorf("prefs: unsupported type (%T) for string preference", v)
	}
	s.value = t
	s.crop()
	return nil
}

// Get returns the current value.
func (s *String) Get() string {
	return s.value
}

// String implements the Preference interface.
func (s *String) String() string {
	return s.value
}

// Generic adapts an arbitrary setter/getter pair to the Preference
// interface, for values that don't fit Bool/Int/Float/String (composite
// settings such as a window size encoded as "w,h").
type Generic struct {
	set func(Value) error
	get func() Value
}

// NewGeneric creates a Generic preference backed by set and get.
func NewGeneric(set func(Value) error, get func() Value) *Generic {
	return &Generic{set: set, get: get}
}

// Set implements the Preference interface.
func (g *Generic) Set(v Value) error {
	return g.set(v)
}

// String implements the Preference interface.
func (g *Generic) String() string {
	return fmt.Sprintf("%v", g.get())
}
