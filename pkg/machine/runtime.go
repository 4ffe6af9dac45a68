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

// Package machine executes assembled TTK91 programs.
package machine

import (
	"os"

	"github.com/golang/glog"

	"github.com/lassandro/gottk91/pkg/assembler"
	"github.com/lassandro/gottk91/pkg/encoding"
)

// NewRuntime builds the memory image for prog: the register file, the data
// section with DC constants in place, and the stack.
func NewRuntime(prog *assembler.Program, opts Options) *Runtime {
	if opts.StackSize <= 0 {
		opts.StackSize = DefaultStackSize
	}
	if opts.BenchIterations < 1 {
		opts.BenchIterations = 1
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	mem := make([]int32, encoding.NumRegisters+int(prog.DataSectionBytes)+opts.StackSize)
	for _, c := range prog.Constants {
		mem[encoding.NumRegisters+int(c.Address)] = c.Value
	}

	glog.V(1).Infof("runtime image: %d registers, %d data slots, %d stack slots",
		encoding.NumRegisters, prog.DataSectionBytes, opts.StackSize)

	return &Runtime{
		Memory:  mem,
		Program: prog,
		opts:    opts,
	}
}
