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
	"strconv"

	"github.com/golang/glog"

	"github.com/lassandro/gottk91/pkg/encoding"
)

type parserFn func(a *asm, op uint32, sc *lineScanner, lineNo int)

type mnemonic struct {
	op    uint32
	parse parserFn
}

var mnemonics = map[string]mnemonic{
	"nop": {encoding.OpXor, parseNop},

	"store": {encoding.OpStore, parseStore},
	"load":  {encoding.OpLoad, parseCommon},

	"in":  {encoding.OpIn, parseDevice},
	"out": {encoding.OpOut, parseDevice},

	"add": {encoding.OpAdd, parseCommon},
	"sub": {encoding.OpSub, parseCommon},
	"mul": {encoding.OpMul, parseCommon},
	"div": {encoding.OpDiv, parseCommon},
	"mod": {encoding.OpMod, parseCommon},

	"and":  {encoding.OpAnd, parseCommon},
	"or":   {encoding.OpOr, parseCommon},
	"xor":  {encoding.OpXor, parseCommon},
	"not":  {encoding.OpNot, parseNot},
	"shl":  {encoding.OpShl, parseCommon},
	"shr":  {encoding.OpShr, parseCommon},
	"shra": {encoding.OpShra, parseCommon},

	"comp": {encoding.OpComp, parseCommon},

	"jump":  {encoding.OpJump, parseJump},
	"jles":  {encoding.OpJles, parseJump},
	"jequ":  {encoding.OpJequ, parseJump},
	"jgre":  {encoding.OpJgre, parseJump},
	"jnles": {encoding.OpJnles, parseJump},
	"jnequ": {encoding.OpJnequ, parseJump},
	"jngre": {encoding.OpJngre, parseJump},

	"jneg":  {encoding.OpJneg, parseRegisterJump},
	"jzer":  {encoding.OpJzer, parseRegisterJump},
	"jpos":  {encoding.OpJpos, parseRegisterJump},
	"jnneg": {encoding.OpJnneg, parseRegisterJump},
	"jnzer": {encoding.OpJnzer, parseRegisterJump},
	"jnpos": {encoding.OpJnpos, parseRegisterJump},

	"call":  {encoding.OpCall, parseJump},
	"exit":  {encoding.OpExit, parseExit},
	"push":  {encoding.OpPush, parsePush},
	"pop":   {encoding.OpPop, parsePop},
	"pushr": {encoding.OpPushr, parseRegisterList},
	"popr":  {encoding.OpPopr, parseRegisterList},

	"svc": {encoding.OpSvc, parseSvc},

	// Not part of the official language, but accepted; a runtime no-op
	// like SVC.
	"iret": {encoding.OpIret, parseCommon},
}

// emit appends a packed instruction. R0 in the src field reads as zero
// everywhere the loader consults it, so it is rewritten to the dedicated
// zero register; STORE addresses through the real R0 and POP's src is a
// write target, so both keep it.
func (a *asm) emit(lineNo int, op, dst, src, mode uint32, value int16) {
	if src == encoding.R0 && op != encoding.OpStore && op != encoding.OpPop {
		src = encoding.ZR
	}

	if glog.V(2) {
		glog.Infof("%4d: %-5s dst=%s src=%s mode=%s value=%d",
			len(a.instructions), encoding.OpcodeName(op),
			encoding.RegisterName(dst), encoding.RegisterName(src),
			encoding.ModeName(mode), value)
	}

	a.instructions = append(a.instructions,
		encoding.Instruction(op, dst, src, mode, value))
	a.lineOf = append(a.lineOf, lineNo)
}

// twoOperands splits "REG, VALUE" and resolves the destination register.
func (a *asm) twoOperands(sc *lineScanner, lineNo int) (dst uint32, second string, secondCol int, ok bool) {
	first, firstCol, second, secondCol, ok := sc.splitComma()
	if !ok {
		a.errorf(lineNo, Mark(sc.pos(), 1),
			"Expected two operands separated by ','")
		return 0, "", 0, false
	}
	dst, ok = a.parseRegisterToken(lineNo, first, firstCol)
	return dst, second, secondCol, ok
}

func parseCommon(a *asm, op uint32, sc *lineScanner, lineNo int) {
	dst, second, secondCol, ok := a.twoOperands(sc, lineNo)
	if !ok {
		return
	}

	opnd, ok := a.parseOperand(lineNo, second, secondCol)
	if !ok {
		return
	}

	a.warnSuspectDirect(lineNo, opnd, second, secondCol)
	a.emit(lineNo, op, dst, opnd.src, opnd.mode, opnd.value)
}

// warnSuspectDirect flags `LOAD R1, 32` style operands that address past the
// data section with no index register. Nine times out of ten the author
// meant the immediate.
func (a *asm) warnSuspectDirect(lineNo int, opnd operand, text string, col int) {
	if opnd.mode != encoding.ModeDirect ||
		opnd.indexed || opnd.registerBody ||
		int32(opnd.value) < a.st.totalNumBytes {
		return
	}
	a.warnf(lineNo, Span{
		Start: col,
		Len:   len(text),
		Caret: -1,
		Hint:  "did you mean '=" + text + "'?",
	}, "Address %d is outside the data section", opnd.value)
}

// parseStore accepts the same operand grammar as LOAD but requires a memory
// target, then steps the mode down one level so the loader computes the
// target address instead of its contents.
func parseStore(a *asm, op uint32, sc *lineScanner, lineNo int) {
	dst, second, secondCol, ok := a.twoOperands(sc, lineNo)
	if !ok {
		return
	}

	opnd, ok := a.parseOperand(lineNo, second, secondCol)
	if !ok {
		return
	}

	switch opnd.mode {
	case encoding.ModeDirect:
		opnd.mode = encoding.ModeRegister
	case encoding.ModeIndirect:
		opnd.mode = encoding.ModeDirect
	default:
		a.errorf(lineNo, Mark(secondCol, len(second)),
			"STORE needs a memory address, not '%s'", second)
		return
	}

	a.emit(lineNo, op, dst, opnd.src, opnd.mode, opnd.value)
}

// parseDevice handles IN and OUT. The only devices are =KBD (integer input)
// and =CRT (integer output).
func parseDevice(a *asm, op uint32, sc *lineScanner, lineNo int) {
	dst, second, secondCol, ok := a.twoOperands(sc, lineNo)
	if !ok {
		return
	}

	var device int16
	switch {
	case op == encoding.OpIn && second == "=kbd":
		device = encoding.DevKBD
	case op == encoding.OpOut && second == "=crt":
		device = encoding.DevCRT
	default:
		valid := "=KBD"
		if op == encoding.OpOut {
			valid = "=CRT"
		}
		a.errorf(lineNo, Mark(secondCol, len(second)),
			"Unknown device '%s' for %s, the valid device is %s",
			second, encoding.OpcodeName(op), valid)
		return
	}

	a.emit(lineNo, op, dst, encoding.R0, encoding.ModeImmediate, device)
}

func parseNop(a *asm, op uint32, sc *lineScanner, lineNo int) {
	if !sc.empty() {
		a.errorf(lineNo, Mark(sc.pos(), len(sc.rest)),
			"NOP takes no operands")
		return
	}
	a.emit(lineNo, op, encoding.R0, encoding.R0, encoding.ModeImmediate, 0)
}

func parseNot(a *asm, op uint32, sc *lineScanner, lineNo int) {
	word, col, ok := sc.popWord()
	if !ok {
		a.errorf(lineNo, Mark(sc.pos(), 1), "NOT needs a register")
		return
	}
	reg, ok := a.parseRegisterToken(lineNo, word, col)
	if !ok {
		return
	}
	if !sc.empty() {
		a.errorf(lineNo, Mark(sc.pos(), len(sc.rest)),
			"Unexpected '%s' after NOT", sc.rest)
		return
	}
	a.emit(lineNo, op, reg, encoding.R0, encoding.ModeImmediate, 0)
}

// makeJump resolves a jump target: a known label emits its instruction
// index, a bare integer is taken literally, and an unknown identifier is
// queued for the fix-up pass with a zero placeholder.
func (a *asm) makeJump(lineNo int, op, dst uint32, target string, col int) {
	if idx, ok := a.st.labels[target]; ok {
		a.emit(lineNo, op, dst, encoding.R0, encoding.ModeImmediate, idx)
		return
	}

	if isInteger(target) {
		v, err := strconv.ParseInt(target, 10, 64)
		if err != nil || v > maxLiteral {
			a.errorf(lineNo, Mark(col, len(target)),
				"Jump address %s is out of range", target)
			return
		}
		if v < 0 {
			a.errorf(lineNo, Mark(col, len(target)),
				"Jump address cannot be negative")
			return
		}
		a.emit(lineNo, op, dst, encoding.R0, encoding.ModeImmediate, int16(v))
		return
	}

	if !isIdentifier(target) {
		a.errorf(lineNo, Mark(col, len(target)),
			"Invalid jump target '%s'", target)
		return
	}

	a.unresolved = append(a.unresolved, unresolvedJump{
		label:  target,
		index:  len(a.instructions),
		line:   lineNo,
		col:    col,
		length: len(target),
	})
	a.emit(lineNo, op, dst, encoding.R0, encoding.ModeImmediate, 0)
}

// parseJump handles the comparison-flag jumps and CALL, which take a bare
// target.
func parseJump(a *asm, op uint32, sc *lineScanner, lineNo int) {
	target, col, ok := sc.popWord()
	if !ok {
		a.errorf(lineNo, Mark(sc.pos(), 1), "Missing jump target")
		return
	}
	if !sc.empty() {
		a.errorf(lineNo, Mark(sc.pos(), len(sc.rest)),
			"Unexpected '%s' after jump target", sc.rest)
		return
	}
	a.makeJump(lineNo, op, encoding.R0, target, col)
}

// parseRegisterJump handles the register-sign jumps, which take
// "REG, target".
func parseRegisterJump(a *asm, op uint32, sc *lineScanner, lineNo int) {
	first, firstCol, second, secondCol, ok := sc.splitComma()
	if !ok {
		a.errorf(lineNo, Mark(sc.pos(), 1),
			"Expected a register and a jump target separated by ','")
		return
	}
	reg, ok := a.parseRegisterToken(lineNo, first, firstCol)
	if !ok {
		return
	}
	a.makeJump(lineNo, op, reg, second, secondCol)
}

func parseExit(a *asm, op uint32, sc *lineScanner, lineNo int) {
	dst, second, secondCol, ok := a.twoOperands(sc, lineNo)
	if !ok {
		return
	}

	opnd, ok := a.parseOperand(lineNo, second, secondCol)
	if !ok {
		return
	}
	if opnd.mode != encoding.ModeImmediate {
		a.errorf(lineNo, Span{
			Start: secondCol,
			Len:   len(second),
			Caret: -1,
			Hint:  "write '=" + second + "'",
		}, "EXIT takes an immediate parameter count")
		return
	}

	a.emit(lineNo, op, dst, opnd.src, opnd.mode, opnd.value)
}

func parsePush(a *asm, op uint32, sc *lineScanner, lineNo int) {
	dst, second, secondCol, ok := a.stackOperands(sc, lineNo, "PUSH")
	if !ok {
		return
	}

	opnd, ok := a.parseOperand(lineNo, second, secondCol)
	if !ok {
		return
	}

	a.emit(lineNo, op, dst, opnd.src, opnd.mode, opnd.value)
}

func parsePop(a *asm, op uint32, sc *lineScanner, lineNo int) {
	dst, second, secondCol, ok := a.stackOperands(sc, lineNo, "POP")
	if !ok {
		return
	}

	target, ok := a.parseRegisterToken(lineNo, second, secondCol)
	if !ok {
		return
	}

	// The popped value lands in the register carried by the src field.
	a.emit(lineNo, op, dst, target, encoding.ModeImmediate, 0)
}

// stackOperands is twoOperands plus the non-SP warning shared by PUSH/POP.
func (a *asm) stackOperands(sc *lineScanner, lineNo int, name string) (uint32, string, int, bool) {
	first, firstCol, second, secondCol, ok := sc.splitComma()
	if !ok {
		a.errorf(lineNo, Mark(sc.pos(), 1),
			"Expected two operands separated by ','")
		return 0, "", 0, false
	}
	dst, ok := a.parseRegisterToken(lineNo, first, firstCol)
	if !ok {
		return 0, "", 0, false
	}
	if dst != encoding.SP {
		a.warnf(lineNo, Mark(firstCol, len(first)),
			"%s always operates on the stack, the first operand should be SP",
			name)
	}
	return dst, second, secondCol, true
}

// parseRegisterList handles PUSHR/POPR, which save or restore R0..R5 and
// take at most one (ignored at runtime) register operand.
func parseRegisterList(a *asm, op uint32, sc *lineScanner, lineNo int) {
	dst := encoding.R0
	if word, col, ok := sc.popWord(); ok {
		reg, regOk := a.parseRegisterToken(lineNo, word, col)
		if !regOk {
			return
		}
		dst = reg
	}
	if !sc.empty() {
		a.errorf(lineNo, Mark(sc.pos(), len(sc.rest)),
			"Unexpected '%s' after %s", sc.rest, encoding.OpcodeName(op))
		return
	}
	a.emit(lineNo, op, dst, encoding.R0, encoding.ModeImmediate, 0)
}

// parseSvc handles supervisor calls. "=halt" assembles straight to HALT;
// anything else is treated as a service routine address like CALL.
func parseSvc(a *asm, op uint32, sc *lineScanner, lineNo int) {
	first, firstCol, second, secondCol, ok := sc.splitComma()
	if !ok {
		a.errorf(lineNo, Mark(sc.pos(), 1),
			"Expected two operands separated by ','")
		return
	}
	reg, ok := a.parseRegisterToken(lineNo, first, firstCol)
	if !ok {
		return
	}

	if second == "=halt" {
		a.emit(lineNo, encoding.OpHalt, reg, encoding.R0,
			encoding.ModeImmediate, 0)
		return
	}

	a.makeJump(lineNo, op, reg, second, secondCol)
}
