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
	"io"
)

// CompileOptions configures a single Compile call. The zero value assembles
// with diagnostics on stdout and no color.
type CompileOptions struct {
	// Filename is used in diagnostic headers ("file:line:").
	Filename string

	// Output receives diagnostics. Defaults to os.Stdout.
	Output io.Writer

	// Color enables ANSI escapes in diagnostics.
	Color bool
}

// DataConstant is a DC initializer: the data-section address it was assigned
// and the value to place there.
type DataConstant struct {
	Address int32
	Value   int32
}

// Program is the immutable result of a successful Compile. Instructions are
// packed words (see pkg/encoding); Lines and LineOf let the interpreter cite
// source positions in runtime diagnostics.
type Program struct {
	Filename         string
	Instructions     []uint32
	Constants        []DataConstant
	DataSectionBytes int32

	Lines  []string // original source, split by line
	LineOf []int    // instruction index -> 1-based source line (0 = synthetic)
}

// SourceLine returns the 1-based line number and original text for the
// instruction at idx. Synthetic instructions (the safety-net HALT) return 0
// and an empty string.
func (p *Program) SourceLine(idx int) (int, string) {
	if idx < 0 || idx >= len(p.LineOf) {
		return 0, ""
	}

	line := p.LineOf[idx]

	if line < 1 || line > len(p.Lines) {
		return 0, ""
	}

	return line, p.Lines[line-1]
}

// SymTable is the optional debug view of the assembly-time tables, filled in
// for the caller when a non-nil pointer is passed to Compile. Symbols map
// DC/DS addresses and EQU values; Labels map instruction indices.
type SymTable struct {
	Symbols map[string]int32
	Labels  map[string]int16
}

// symTable is the working table; it lives only for the duration of a Compile
// call.
type symTable struct {
	symbols map[string]int32
	labels  map[string]int16
	values  []DataConstant

	// Data-section bump pointer. Starts at 1: address 0 is reserved so the
	// zero register's slot is never handed out.
	totalNumBytes int32
}

func newSymTable() symTable {
	return symTable{
		symbols:       make(map[string]int32),
		labels:        make(map[string]int16),
		totalNumBytes: 1,
	}
}

// unresolvedJump records a jump that referenced a label before its
// definition; the fix-up pass patches the instruction's value field.
type unresolvedJump struct {
	label  string
	index  int // instruction index to patch
	line   int // 1-based source line, for diagnostics
	col    int
	length int
}
