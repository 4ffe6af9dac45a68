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
	"fmt"

	"github.com/lassandro/gottk91/pkg/encoding"
)

// ExecError wraps a runtime fault with the source line of the faulting
// instruction, rendered in the same gutter format the assembler uses.
type ExecError struct {
	Line int    // 1-based source line, 0 when unknown (synthetic code)
	Text string // original source line
	Err  error
}

func (e *ExecError) Error() string {
	if e.Line < 1 {
		return fmt.Sprintf("Runtime error: %v", e.Err)
	}
	return fmt.Sprintf("Runtime error: %v\n     |\n%4d | %s", e.Err, e.Line, e.Text)
}

func (e *ExecError) Unwrap() error { return e.Err }

// fail ties a fault to the instruction at index at.
func (rt *Runtime) fail(at int32, err error) error {
	line, text := rt.Program.SourceLine(int(at))
	return &ExecError{Line: line, Text: text, Err: err}
}

type DivisionByZeroError struct {
	Op uint32 // OpDiv or OpMod
}

func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("division by zero in %s", encoding.OpcodeName(e.Op))
}

// OutOfBoundsError reports a memory access outside the data section and
// stack. Hop distinguishes the two dereferences of Indirect mode.
type OutOfBoundsError struct {
	Mode   uint32
	Addr   int32 // the offending computed address
	Base   int32 // index register contribution
	Offset int32 // 16-bit value field
	High   int32 // last valid address
	Store  bool
	Hop    int // 2 for the second Indirect dereference
}

func (e *OutOfBoundsError) Error() string {
	if e.Store {
		return fmt.Sprintf(
			"out of bounds store to address %d, valid addresses are 0..%d",
			e.Addr, e.High)
	}
	if e.Hop == 2 {
		return fmt.Sprintf(
			"out of bounds memory access in %s mode: pointer holds address %d, valid addresses are 0..%d",
			encoding.ModeName(e.Mode), e.Addr, e.High)
	}
	return fmt.Sprintf(
		"out of bounds memory access in %s mode: address %d (offset %d + register value %d), valid addresses are 0..%d",
		encoding.ModeName(e.Mode), e.Addr, e.Offset, e.Base, e.High)
}

type StackOverflowError struct {
	SP   int32
	High int32 // last stack slot
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("stack overflow: SP=%d, last stack slot is %d", e.SP, e.High)
}

type StackUnderflowError struct {
	SP  int32
	Low int32 // first stack slot
}

func (e *StackUnderflowError) Error() string {
	return fmt.Sprintf("stack underflow: SP=%d, stack starts at %d", e.SP, e.Low)
}

type InvalidJumpError struct {
	Target int32
	Size   int // instruction count
}

func (e *InvalidJumpError) Error() string {
	return fmt.Sprintf("jump target %d is outside the program (0..%d)",
		e.Target, e.Size-1)
}

type IllegalOpcodeError struct {
	Opcode uint32
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("illegal instruction (opcode %d)", e.Opcode)
}

type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("could not read an integer from input: %v", e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }
