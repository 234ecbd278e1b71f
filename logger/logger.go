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

// Package logger implements a small ring-buffer logger for the core. Log
// entries are kept in memory and flushed to an io.Writer on demand (Write or
// Tail) rather than written immediately, so that logging from the hot path
// (SAM decode, PIA register writes, scheduler dispatch) costs no I/O.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// Permission lets a caller gate whether a particular Log call is recorded.
// Components that log very frequently (e.g. the SAM on every bus cycle) can
// be wired to a Permission that is only true while a debug flag is set.
type Permission interface {
	AllowLogging() bool
}

type allowPermission struct{}

func (allowPermission) AllowLogging() bool { return true }

// Allow is a Permission that always allows logging.
var Allow Permission = allowPermission{}

type entry struct {
	tag    string
	detail string
}

// Logger is a fixed-capacity ring buffer of tag/detail entries.
type Logger struct {
	mu      sync.Mutex
	entries []entry
	limit   int
	next    int
	full    bool
}

// NewLogger creates a Logger that retains at most limit entries.
func NewLogger(limit int) *Logger {
	if limit < 1 {
		limit = 1
	}
	return &Logger{
		entries: make([]entry, limit),
		limit:   limit,
	}
}

func formatDetail(detail interface{}) string {
	switch v := detail.(type) {
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", detail)
	}
}

// Log records tag/detail if permission allows it.
func (l *Logger) Log(p Permission, tag string, detail interface{}) {
	if p != nil && !p.AllowLogging() {
		return
	}
	l.append(tag, formatDetail(detail))
}

// Logf is like Log but the detail is built with a format string.
func (l *Logger) Logf(p Permission, tag string, format string, args ...interface{}) {
	if p != nil && !p.AllowLogging() {
		return
	}
	l.append(tag, fmt.Sprintf(format, args...))
}

func (l *Logger) append(tag, detail string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries[l.next] = entry{tag: tag, detail: detail}
	l.next++
	if l.next >= l.limit {
		l.next = 0
		l.full = true
	}
}

// Clear empties the logger.
func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next = 0
	l.full = false
}

// ordered returns the entries in the order they were logged.
func (l *Logger) ordered() []entry {
	if !l.full {
		out := make([]entry, l.next)
		copy(out, l.entries[:l.next])
		return out
	}
	out := make([]entry, l.limit)
	n := copy(out, l.entries[l.next:])
	copy(out[n:], l.entries[:l.next])
	return out
}

// Write writes every retained entry to w, one "tag: detail" line each.
func (l *Logger) Write(w io.Writer) {
	l.mu.Lock()
	es := l.ordered()
	l.mu.Unlock()

	var b strings.Builder
	for _, e := range es {
		b.WriteString(e.tag)
		b.WriteString(": ")
		b.WriteString(e.detail)
		b.WriteString("\n")
	}
	io.WriteString(w, b.String())
}

// Tail writes the last n retained entries to w, or every entry if there are
// fewer than n.
func (l *Logger) Tail(w io.Writer, n int) {
	l.mu.Lock()
	es := l.ordered()
	l.mu.Unlock()

	if n < len(es) {
		es = es[len(es)-n:]
	}

	var b strings.Builder
	for _, e := range es {
		b.WriteString(e.tag)
		b.WriteString(": ")
		b.WriteString(e.detail)
		b.WriteString("\n")
	}
	io.WriteString(w, b.String())
}
