// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler

import (
	"fmt"
	"io"
	"strings"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

// Span marks the source range a diagnostic refers to. Start and Len select
// the tilde underline; Caret, when >= 0, places an extra '^' column on the
// following row. Hint is appended after the underline in parentheses.
type Span struct {
	Start int
	Len   int
	Caret int
	Hint  string
}

// Mark returns a plain underline span with no caret row.
func Mark(start, length int) Span {
	return Span{Start: start, Len: length, Caret: -1}
}

// Reporter renders caret/underline diagnostics:
//
//	source.k91:3:
//	Unknown register 'r9'
//	     |
//	   3 | LOAD R9, =5
//	     |      ~~ (registers are R0..R7, SP, FP)
//	          ^
//
// and keeps running error/warning counts so the caller can decide whether
// the unit is usable.
type Reporter struct {
	w     io.Writer
	file  string
	color bool

	errors   int
	warnings int
}

func NewReporter(w io.Writer, file string, color bool) *Reporter {
	return &Reporter{w: w, file: file, color: color}
}

func (r *Reporter) Errors() int   { return r.errors }
func (r *Reporter) Warnings() int { return r.warnings }

func (r *Reporter) Errorf(line int, text string, span Span, format string, args ...interface{}) {
	r.errors++
	r.emit(ansiRed, line, text, span, "Error: "+fmt.Sprintf(format, args...))
}

func (r *Reporter) Warnf(line int, text string, span Span, format string, args ...interface{}) {
	r.warnings++
	r.emit(ansiYellow, line, text, span, "Warning: "+fmt.Sprintf(format, args...))
}

// Infof renders a note in the diagnostic format without touching the
// counters.
func (r *Reporter) Infof(line int, text string, span Span, format string, args ...interface{}) {
	r.emit(ansiBold, line, text, span, "Info: "+fmt.Sprintf(format, args...))
}

func (r *Reporter) emit(color string, line int, text string, span Span, msg string) {
	header := fmt.Sprintf("%s:%d:", r.file, line)
	if r.color {
		header = ansiBold + header + ansiReset
		msg = color + msg + ansiReset
	}

	fmt.Fprintf(r.w, "%s\n%s\n", header, msg)
	fmt.Fprintf(r.w, "     |\n%4d | %s\n", line, text)

	if span.Start < 0 {
		span.Start = 0
	}
	if span.Len < 1 {
		span.Len = 1
	}

	under := strings.Repeat(" ", span.Start) + strings.Repeat("~", span.Len)
	if span.Hint != "" {
		under += " (" + span.Hint + ")"
	}
	if r.color {
		under = color + under + ansiReset
	}
	fmt.Fprintf(r.w, "     | %s\n", under)

	if span.Caret >= 0 {
		// The caret row has no gutter; 7 pads past "NNNN | ".
		fmt.Fprintf(r.w, "%s^\n", strings.Repeat(" ", 7+span.Caret))
	}
}
