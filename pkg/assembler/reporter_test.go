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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporterFormat(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf, "test.k91", false)

	rep.Errorf(3, "LOAD R9, =5", Span{
		Start: 5,
		Len:   2,
		Caret: 5,
		Hint:  "registers are R0..R7, SP, FP",
	}, "Unknown register '%s'", "r9")

	want := strings.Join([]string{
		"test.k91:3:",
		"Error: Unknown register 'r9'",
		"     |",
		"   3 | LOAD R9, =5",
		"     |      ~~ (registers are R0..R7, SP, FP)",
		"            ^",
		"",
	}, "\n")

	assert.Equal(t, want, buf.String())
	assert.Equal(t, 1, rep.Errors())
	assert.Equal(t, 0, rep.Warnings())
}

func TestReporterNoCaret(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf, "f", false)

	rep.Warnf(1, "PUSH R1, =5", Mark(5, 2), "non-SP push")

	want := strings.Join([]string{
		"f:1:",
		"Warning: non-SP push",
		"     |",
		"   1 | PUSH R1, =5",
		"     |      ~~",
		"",
	}, "\n")

	assert.Equal(t, want, buf.String())
	assert.Equal(t, 1, rep.Warnings())
}

func TestReporterColor(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf, "f", true)

	rep.Errorf(1, "x", Mark(0, 1), "boom")

	out := buf.String()
	assert.Contains(t, out, ansiRed)
	assert.Contains(t, out, ansiBold)
	assert.Contains(t, out, ansiReset)
}

func TestReporterClampsSpan(t *testing.T) {
	var buf bytes.Buffer
	rep := NewReporter(&buf, "f", false)

	rep.Errorf(1, "x", Span{Start: -2, Len: 0, Caret: -1}, "boom")

	assert.Contains(t, buf.String(), "     | ~\n")
}
