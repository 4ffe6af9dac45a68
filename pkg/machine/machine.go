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
	"bufio"
	"fmt"
	"time"

	"github.com/golang/glog"

	"github.com/lassandro/gottk91/pkg/encoding"
)

// Execute runs the program BenchIterations times under a single clock.
// Registers, SP, FP and the comparison flag reset between iterations; the
// data section does not, matching a program that reruns over its own
// results. The first fault aborts the whole run.
func (rt *Runtime) Execute() (Result, error) {
	res := Result{Iterations: rt.opts.BenchIterations}

	ins := rt.Program.Instructions
	if len(ins) == 0 {
		return res, nil
	}

	regs := rt.Memory[:encoding.NumRegisters]
	mem := rt.Memory[encoding.NumRegisters:]
	high := int32(len(mem) - 1)

	// First stack slot sits right after the data section. SP starts one
	// below it so the first push lands on stackLow.
	stackLow := rt.Program.DataSectionBytes
	codeSize := uint32(len(ins))

	in := bufio.NewReader(rt.opts.Input)
	out := rt.opts.Output
	suppressOut := rt.opts.BenchIterations > 1 && !rt.opts.BenchIO

	glog.V(1).Infof("executing %d instruction(s), %d iteration(s)",
		len(ins), rt.opts.BenchIterations)

	start := time.Now()

	for iter := rt.opts.BenchIterations; iter > 0; iter-- {
		for r := range regs {
			regs[r] = 0
		}
		regs[encoding.SP] = stackLow - 1
		regs[encoding.FP] = stackLow - 1

		var compFlag int32
		var pc int32

	loop:
		for {
			at := pc
			word := ins[pc]
			pc++

			op := encoding.DecodeOpcode(word)
			mode := encoding.DecodeMode(word)
			dst := encoding.DecodeDst(word)
			src := encoding.DecodeSrc(word)
			value := int32(encoding.DecodeValue(word))

			// The loader: after this switch, value holds the operand for
			// every opcode. STORE is assembled one mode lower so value
			// comes out as the target address.
			switch mode {
			case encoding.ModeRegister:
				value += regs[src]

			case encoding.ModeDirect:
				addr := value + regs[src]
				if uint32(addr) > uint32(high) {
					return res, rt.fail(at, &OutOfBoundsError{
						Mode: mode, Addr: addr, Base: regs[src],
						Offset: value, High: high,
					})
				}
				value = mem[addr]

			case encoding.ModeIndirect:
				addr := value + regs[src]
				if uint32(addr) > uint32(high) {
					return res, rt.fail(at, &OutOfBoundsError{
						Mode: mode, Addr: addr, Base: regs[src],
						Offset: value, High: high,
					})
				}
				addr = mem[addr]
				if uint32(addr) > uint32(high) {
					return res, rt.fail(at, &OutOfBoundsError{
						Mode: mode, Addr: addr, High: high, Hop: 2,
					})
				}
				value = mem[addr]
			}

			switch op {
			case encoding.OpLoad:
				regs[dst] = value

			case encoding.OpStore:
				if uint32(value) > uint32(high) {
					return res, rt.fail(at, &OutOfBoundsError{
						Mode: mode, Addr: value, High: high, Store: true,
					})
				}
				mem[value] = regs[dst]

			case encoding.OpIn:
				var n int64
				if _, err := fmt.Fscan(in, &n); err != nil {
					return res, rt.fail(at, &InputError{Err: err})
				}
				regs[dst] = int32(n)

			case encoding.OpOut:
				if !suppressOut {
					fmt.Fprintln(out, regs[dst])
				}

			case encoding.OpAdd:
				regs[dst] += value
			case encoding.OpSub:
				regs[dst] -= value
			case encoding.OpMul:
				regs[dst] *= value
			case encoding.OpDiv:
				if value == 0 {
					return res, rt.fail(at, &DivisionByZeroError{Op: op})
				}
				regs[dst] /= value
			case encoding.OpMod:
				if value == 0 {
					return res, rt.fail(at, &DivisionByZeroError{Op: op})
				}
				regs[dst] %= value

			case encoding.OpAnd:
				regs[dst] &= value
			case encoding.OpOr:
				regs[dst] |= value
			case encoding.OpXor:
				regs[dst] ^= value
			case encoding.OpNot:
				regs[dst] = ^regs[dst]
			case encoding.OpShl:
				regs[dst] <<= uint32(value)
			case encoding.OpShr:
				regs[dst] = int32(uint32(regs[dst]) >> uint32(value))
			case encoding.OpShra:
				regs[dst] >>= uint32(value)

			case encoding.OpComp:
				compFlag = regs[dst] - value

			case encoding.OpJump, encoding.OpJles, encoding.OpJequ,
				encoding.OpJgre, encoding.OpJnles, encoding.OpJnequ,
				encoding.OpJngre:
				var taken bool
				switch op {
				case encoding.OpJump:
					taken = true
				case encoding.OpJles:
					taken = compFlag < 0
				case encoding.OpJequ:
					taken = compFlag == 0
				case encoding.OpJgre:
					taken = compFlag > 0
				case encoding.OpJnles:
					taken = compFlag >= 0
				case encoding.OpJnequ:
					taken = compFlag != 0
				case encoding.OpJngre:
					taken = compFlag <= 0
				}
				if taken {
					if uint32(value) >= codeSize {
						return res, rt.fail(at, &InvalidJumpError{
							Target: value, Size: len(ins),
						})
					}
					pc = value
				}

			case encoding.OpJneg, encoding.OpJzer, encoding.OpJpos,
				encoding.OpJnneg, encoding.OpJnzer, encoding.OpJnpos:
				r := regs[dst]
				var taken bool
				switch op {
				case encoding.OpJneg:
					taken = r < 0
				case encoding.OpJzer:
					taken = r == 0
				case encoding.OpJpos:
					taken = r > 0
				case encoding.OpJnneg:
					taken = r >= 0
				case encoding.OpJnzer:
					taken = r != 0
				case encoding.OpJnpos:
					taken = r <= 0
				}
				if taken {
					if uint32(value) >= codeSize {
						return res, rt.fail(at, &InvalidJumpError{
							Target: value, Size: len(ins),
						})
					}
					pc = value
				}

			case encoding.OpCall:
				// SP is a plain register; LOAD can aim it anywhere, so
				// every stack access checks both ends.
				if regs[encoding.SP] < stackLow-1 {
					return res, rt.fail(at, &StackUnderflowError{
						SP: regs[encoding.SP], Low: stackLow,
					})
				}
				if high-regs[encoding.SP] < 2 {
					return res, rt.fail(at, &StackOverflowError{
						SP: regs[encoding.SP], High: high,
					})
				}
				if uint32(value) >= codeSize {
					return res, rt.fail(at, &InvalidJumpError{
						Target: value, Size: len(ins),
					})
				}
				regs[encoding.SP]++
				mem[regs[encoding.SP]] = pc
				regs[encoding.SP]++
				mem[regs[encoding.SP]] = regs[encoding.FP]
				regs[encoding.FP] = regs[encoding.SP]
				pc = value

			case encoding.OpExit:
				if regs[encoding.SP] < stackLow+1 {
					return res, rt.fail(at, &StackUnderflowError{
						SP: regs[encoding.SP], Low: stackLow,
					})
				}
				if regs[encoding.SP] > high {
					return res, rt.fail(at, &StackOverflowError{
						SP: regs[encoding.SP], High: high,
					})
				}
				regs[encoding.FP] = mem[regs[encoding.SP]]
				regs[encoding.SP]--
				ret := mem[regs[encoding.SP]]
				regs[encoding.SP]--
				regs[encoding.SP] -= value
				if regs[encoding.SP] < stackLow-1 {
					return res, rt.fail(at, &StackUnderflowError{
						SP: regs[encoding.SP], Low: stackLow,
					})
				}
				// A negative parameter count inflates SP instead.
				if regs[encoding.SP] > high {
					return res, rt.fail(at, &StackOverflowError{
						SP: regs[encoding.SP], High: high,
					})
				}
				if uint32(ret) >= codeSize {
					return res, rt.fail(at, &InvalidJumpError{
						Target: ret, Size: len(ins),
					})
				}
				pc = ret

			case encoding.OpPush:
				if regs[encoding.SP] < stackLow-1 {
					return res, rt.fail(at, &StackUnderflowError{
						SP: regs[encoding.SP], Low: stackLow,
					})
				}
				if regs[encoding.SP] >= high {
					return res, rt.fail(at, &StackOverflowError{
						SP: regs[encoding.SP], High: high,
					})
				}
				regs[encoding.SP]++
				mem[regs[encoding.SP]] = value

			case encoding.OpPop:
				if regs[encoding.SP] < stackLow {
					return res, rt.fail(at, &StackUnderflowError{
						SP: regs[encoding.SP], Low: stackLow,
					})
				}
				if regs[encoding.SP] > high {
					return res, rt.fail(at, &StackOverflowError{
						SP: regs[encoding.SP], High: high,
					})
				}
				regs[src] = mem[regs[encoding.SP]]
				regs[encoding.SP]--

			case encoding.OpPushr:
				if regs[encoding.SP] < stackLow-1 {
					return res, rt.fail(at, &StackUnderflowError{
						SP: regs[encoding.SP], Low: stackLow,
					})
				}
				if high-regs[encoding.SP] < 6 {
					return res, rt.fail(at, &StackOverflowError{
						SP: regs[encoding.SP], High: high,
					})
				}
				for r := encoding.R0; r <= encoding.R5; r++ {
					regs[encoding.SP]++
					mem[regs[encoding.SP]] = regs[r]
				}

			case encoding.OpPopr:
				if regs[encoding.SP] < stackLow+5 {
					return res, rt.fail(at, &StackUnderflowError{
						SP: regs[encoding.SP], Low: stackLow,
					})
				}
				if regs[encoding.SP] > high {
					return res, rt.fail(at, &StackOverflowError{
						SP: regs[encoding.SP], High: high,
					})
				}
				for r := int(encoding.R5); r >= int(encoding.R0); r-- {
					regs[r] = mem[regs[encoding.SP]]
					regs[encoding.SP]--
				}

			case encoding.OpSvc, encoding.OpIret:
				// Reserved service-call mechanism; nothing to do.

			case encoding.OpHalt:
				res.SafetyHalt = int(at) == len(ins)-1
				break loop

			default:
				return res, rt.fail(at, &IllegalOpcodeError{Opcode: op})
			}
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}
