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

package machine

import (
	"io"
	"time"

	"github.com/lassandro/gottk91/pkg/assembler"
)

// DefaultStackSize is the number of stack slots allocated when Options
// leaves StackSize zero.
const DefaultStackSize = 1 << 20

// Options configures a Runtime. The zero value runs once with a default
// stack on stdin/stdout.
type Options struct {
	// StackSize is the stack slot count appended after the data section.
	StackSize int

	// BenchIterations reruns the program that many times under one clock.
	// Values below 1 are treated as 1.
	BenchIterations uint64

	// BenchIO keeps OUT writing during benchmark runs. IN always reads, or
	// iterations would starve.
	BenchIO bool

	// Input feeds IN. Defaults to os.Stdin.
	Input io.Reader

	// Output receives OUT lines. Defaults to os.Stdout.
	Output io.Writer
}

// Result reports a finished Execute call.
type Result struct {
	Iterations uint64
	Elapsed    time.Duration

	// SafetyHalt is set when execution ran off the end of the program into
	// the assembler's appended HALT.
	SafetyHalt bool
}

// Runtime is a loaded program plus its memory image:
//
//	Memory[0:9]  register file (R0..R5, SP, FP, ZR)
//	Memory[9:]   data section, then stack
//
// The register file fronts the address space so register and memory
// operands share one load path.
type Runtime struct {
	Memory  []int32
	Program *assembler.Program

	opts Options
}
