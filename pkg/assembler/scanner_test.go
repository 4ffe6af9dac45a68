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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldLower(t *testing.T) {
	assert.Equal(t, "load r1, =5", foldLower("LoAd R1, =5"))
	assert.Equal(t, "already lower", foldLower("already lower"))
	assert.Equal(t, "", foldLower(""))
}

func TestFoldLowerKeepsOffsets(t *testing.T) {
	in := "Loop\tADD R1, =1"
	out := foldLower(in)
	assert.Equal(t, len(in), len(out))
}

func TestStripComment(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"load r1, =5 ; get five", "load r1, =5"},
		{"; full line comment", ""},
		{"load r1, =5   ", "load r1, =5"},
		{"", ""},
		{";;;", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, stripComment(tc.in), "input %q", tc.in)
	}
}

func TestPopWord(t *testing.T) {
	sc := newLineScanner("  load r1, =5")

	word, col, ok := sc.popWord()
	assert.True(t, ok)
	assert.Equal(t, "load", word)
	assert.Equal(t, 2, col)

	word, col, ok = sc.popWord()
	assert.True(t, ok)
	assert.Equal(t, "r1,", word)
	assert.Equal(t, 7, col)

	word, _, ok = sc.popWord()
	assert.True(t, ok)
	assert.Equal(t, "=5", word)

	_, _, ok = sc.popWord()
	assert.False(t, ok)
}

func TestSplitComma(t *testing.T) {
	sc := newLineScanner("load r1 , =5(r2)")
	sc.popWord()

	first, firstCol, second, secondCol, ok := sc.splitComma()
	assert.True(t, ok)
	assert.Equal(t, "r1", first)
	assert.Equal(t, 5, firstCol)
	assert.Equal(t, "=5(r2)", second)
	assert.Equal(t, 10, secondCol)
}

func TestSplitCommaMissing(t *testing.T) {
	sc := newLineScanner("r1 =5")
	_, _, _, _, ok := sc.splitComma()
	assert.False(t, ok)

	sc = newLineScanner("r1,")
	_, _, _, _, ok = sc.splitComma()
	assert.False(t, ok)

	sc = newLineScanner(", =5")
	_, _, _, _, ok = sc.splitComma()
	assert.False(t, ok)
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, isIdentifier("loop"))
	assert.True(t, isIdentifier("x_1$"))
	assert.True(t, isIdentifier("_start"))
	assert.False(t, isIdentifier("1abc"))
	assert.False(t, isIdentifier("a-b"))
	assert.False(t, isIdentifier(""))
}

func TestIsInteger(t *testing.T) {
	assert.True(t, isInteger("0"))
	assert.True(t, isInteger("-12"))
	assert.True(t, isInteger("+3"))
	assert.False(t, isInteger("-"))
	assert.False(t, isInteger("12a"))
	assert.False(t, isInteger(""))
}

func TestTrimView(t *testing.T) {
	s, base := trimView("  r1  ", 10)
	assert.Equal(t, "r1", s)
	assert.Equal(t, 12, base)
}
