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
	"strings"
)

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\v' || c == '\f' || c == '\r'
}

// isIdentChar reports whether c may appear in a symbol or label name.
func isIdentChar(c byte) bool {
	return c >= 'a' && c <= 'z' ||
		c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' ||
		c == '_' || c == '$'
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isIdentChar(s[i]) {
			return false
		}
	}
	return s[0] < '0' || s[0] > '9'
}

// isInteger matches an optionally signed decimal literal. Range checking is
// the caller's concern.
func isInteger(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isBlank(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isSpace(s[i]) {
			return false
		}
	}
	return true
}

// foldLower lowercases ASCII letters. The language is case-insensitive, so
// every line is folded once up front; offsets into the folded line match the
// original line byte for byte.
func foldLower(s string) string {
	var b []byte
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			if b == nil {
				b = []byte(s)
			}
			b[i] = c + 'a' - 'A'
		}
	}
	if b == nil {
		return s
	}
	return string(b)
}

// stripComment drops everything from the first ';' and trims trailing
// whitespace.
func stripComment(s string) string {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, " \t\v\f\r")
}

// trimView trims whitespace around s while keeping base pointing at the
// first retained byte of the original line.
func trimView(s string, base int) (string, int) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	s = s[i:]
	base += i
	for len(s) > 0 && isSpace(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s, base
}

// lineScanner walks a single folded source line. Positions are byte offsets
// into the line, usable directly as diagnostic columns.
type lineScanner struct {
	full string
	rest string
}

func newLineScanner(line string) *lineScanner {
	return &lineScanner{full: line, rest: line}
}

func (s *lineScanner) pos() int {
	return len(s.full) - len(s.rest)
}

func (s *lineScanner) skipSpaces() {
	i := 0
	for i < len(s.rest) && isSpace(s.rest[i]) {
		i++
	}
	s.rest = s.rest[i:]
}

func (s *lineScanner) empty() bool {
	s.skipSpaces()
	return len(s.rest) == 0
}

// popWord returns the next whitespace-delimited word and its column.
func (s *lineScanner) popWord() (word string, col int, ok bool) {
	s.skipSpaces()
	if len(s.rest) == 0 {
		return "", s.pos(), false
	}
	col = s.pos()
	i := 0
	for i < len(s.rest) && !isSpace(s.rest[i]) {
		i++
	}
	word = s.rest[:i]
	s.rest = s.rest[i:]
	return word, col, true
}

// splitComma consumes the remainder of the line as "FIRST , SECOND". Both
// parts come back trimmed with their columns; ok is false when the comma is
// missing or a part is empty.
func (s *lineScanner) splitComma() (first string, firstCol int, second string, secondCol int, ok bool) {
	s.skipSpaces()
	base := s.pos()
	rest := s.rest
	s.rest = ""

	i := strings.IndexByte(rest, ',')
	if i < 0 {
		return "", base, "", base, false
	}

	first, firstCol = trimView(rest[:i], base)
	second, secondCol = trimView(rest[i+1:], base+i+1)

	if first == "" || second == "" {
		return "", base, "", base, false
	}

	return first, firstCol, second, secondCol, true
}
