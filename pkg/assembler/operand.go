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
	"strings"

	"github.com/lassandro/gottk91/pkg/encoding"
)

// maxLiteral bounds integer literals and symbol values placed in the 16-bit
// value field. The range is kept symmetric.
const maxLiteral = 32767

var registersByName = map[string]uint32{
	"r0": encoding.R0,
	"r1": encoding.R1,
	"r2": encoding.R2,
	"r3": encoding.R3,
	"r4": encoding.R4,
	"r5": encoding.R5,
	"r6": encoding.R6,
	"r7": encoding.R7,
	"sp": encoding.SP,
	"fp": encoding.FP,
}

// operand is a parsed second operand, normalized so that the interpreter's
// mode loader yields the operand *value* for every opcode (STORE rewrites
// afterwards).
type operand struct {
	mode  uint32
	src   uint32
	value int16

	registerBody bool // operand body was a bare register
	indexed      bool // explicit (Rx) index present
}

// parseOperand parses the VALUE part of an instruction: an optional '=' or
// '@' sigil, then an integer, symbol or register, then an optional (Rx)
// index. base is the operand's column in the source line.
//
//	=V       Immediate      =V(Rx)  Register
//	V        Direct         V(Rx)   Direct
//	Rx       Register       @V      Indirect
//	@V(Rx)   Indirect       @Rx     Direct
func (a *asm) parseOperand(lineNo int, text string, base int) (operand, bool) {
	var op operand

	text, base = trimView(text, base)
	if text == "" {
		a.errorf(lineNo, Mark(base, 1), "Expected a value, register or symbol")
		return op, false
	}

	var sigil byte
	if text[0] == '=' || text[0] == '@' {
		sigil = text[0]
		text = text[1:]
		base++
		for len(text) > 0 && isSpace(text[0]) {
			text = text[1:]
			base++
		}
		if text == "" {
			a.errorf(lineNo, Mark(base-1, 1),
				"Expected a value after '%c'", sigil)
			return op, false
		}
	}

	// Body runs until the index part.
	i := 0
	for i < len(text) && text[i] != '(' && !isSpace(text[i]) {
		i++
	}
	body := text[:i]
	rest, restCol := trimView(text[i:], base+i)

	bodyReg, isReg := registersByName[body]

	switch {
	case isInteger(body):
		v, err := strconv.ParseInt(body, 10, 64)
		if err != nil || v > maxLiteral || v < -maxLiteral {
			a.errorf(lineNo, Mark(base, len(body)),
				"Integer %s is out of range, the allowed range is -32767..32767",
				body)
			return op, false
		}
		op.value = int16(v)

	case isReg:
		op.registerBody = true
		op.src = bodyReg
		a.warnReservedRegister(lineNo, body, base)

	case isIdentifier(body):
		v, ok := a.st.symbols[body]
		if !ok {
			a.errorf(lineNo, Mark(base, len(body)),
				"Variable or symbol '%s' does not exist", body)
			return op, false
		}
		if v > maxLiteral || v < -maxLiteral {
			a.errorf(lineNo, Mark(base, len(body)),
				"Value of '%s' (%d) does not fit in an instruction", body, v)
			return op, false
		}
		op.value = int16(v)

	default:
		a.errorf(lineNo, Mark(base, maxInt(len(body), 1)),
			"Expected a value, register or symbol")
		return op, false
	}

	if strings.HasPrefix(rest, "(") {
		if op.registerBody {
			a.errorf(lineNo, Mark(restCol, 1),
				"A register cannot take an index register")
			return op, false
		}
		j := strings.IndexByte(rest, ')')
		if j < 0 {
			a.errorf(lineNo, Mark(restCol, len(rest)),
				"Missing ')' after index register")
			return op, false
		}
		inner, innerCol := trimView(rest[1:j], restCol+1)
		reg, ok := registersByName[inner]
		if !ok {
			a.errorf(lineNo, Mark(innerCol, maxInt(len(inner), 1)),
				"Unknown register '%s'", inner)
			return op, false
		}
		op.indexed = true
		op.src = reg
		a.warnReservedRegister(lineNo, inner, innerCol)
		rest, restCol = trimView(rest[j+1:], restCol+j+1)
	}

	if rest != "" {
		a.errorf(lineNo, Mark(restCol, len(rest)),
			"Unexpected '%s' after operand", rest)
		return op, false
	}

	switch sigil {
	case '=':
		if op.registerBody {
			a.errorf(lineNo, Span{
				Start: base - 1,
				Len:   len(body) + 1,
				Caret: -1,
				Hint:  "use =0(" + body + ") to take the register's value",
			}, "'=' cannot be applied to a register")
			return op, false
		}
		if op.indexed {
			op.mode = encoding.ModeRegister
		} else {
			op.mode = encoding.ModeImmediate
		}

	case '@':
		if op.registerBody {
			op.mode = encoding.ModeDirect
			op.value = 0
		} else {
			op.mode = encoding.ModeIndirect
		}

	default:
		if op.registerBody {
			op.mode = encoding.ModeRegister
			op.value = 0
		} else {
			op.mode = encoding.ModeDirect
		}
	}

	return op, true
}

// parseRegisterToken resolves a register used as a first operand.
func (a *asm) parseRegisterToken(lineNo int, word string, col int) (uint32, bool) {
	reg, ok := registersByName[word]
	if !ok {
		a.errorf(lineNo, Span{
			Start: col,
			Len:   maxInt(len(word), 1),
			Caret: col,
			Hint:  "registers are R0..R7, SP, FP",
		}, "Unknown register '%s'", word)
		return 0, false
	}
	a.warnReservedRegister(lineNo, word, col)
	return reg, true
}

// warnReservedRegister flags SP/FP spelled as plain registers, wherever
// they appear. That spelling usually means the program is about to trash
// its own stack.
func (a *asm) warnReservedRegister(lineNo int, word string, col int) {
	if word != "r6" && word != "r7" {
		return
	}
	role := "stack pointer"
	if word == "r7" {
		role = "frame pointer"
	}
	a.warnf(lineNo, Mark(col, len(word)),
		"'%s' is the %s, consider writing '%s'",
		strings.ToUpper(word), role,
		encoding.RegisterName(registersByName[word]))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
