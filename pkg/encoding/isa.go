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

package encoding

// Opcodes. The OpF* slots are reserved for extensions (float arithmetic,
// conversions, transcendentals); the assembler never emits them and the
// interpreter treats them as illegal instructions. OpIret assembles from the
// unofficial IRET mnemonic and is a runtime no-op alongside OpSvc.
const (
	OpStore uint32 = iota
	OpLoad

	OpIn
	OpOut

	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod

	OpFAdd
	OpFSub
	OpFMul
	OpFDiv
	OpFMod

	OpItof
	OpFtoi

	OpSqrtf
	OpRsqrtf
	OpSinf
	OpCosf
	OpTanf
	OpAsinf
	OpAcosf
	OpAtanf
	OpLog2f
	OpLog10f
	OpLnf
	OpAbsf

	OpAnd
	OpOr
	OpXor
	OpNot
	OpShl
	OpShr
	OpShra

	OpComp

	// Jumps consulting the comparison flag
	OpJump
	OpJles
	OpJequ
	OpJgre
	OpJnles
	OpJnequ
	OpJngre

	// Jumps consulting a register
	OpJneg
	OpJzer
	OpJpos
	OpJnneg
	OpJnzer
	OpJnpos

	OpCall
	OpExit
	OpPush
	OpPop
	OpPushr
	OpPopr

	OpSvc
	OpIret

	OpHalt

	NumOpcodes // not an opcode
)

// Register indices. ZR is the internal zero register; it fits the 4-bit src
// field but can never be encoded as a destination.
const (
	R0 uint32 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	ZR

	SP = R6 // stack pointer
	FP = R7 // frame pointer

	NumRegisters = 9
)

// Addressing modes
const (
	ModeImmediate uint32 = iota
	ModeRegister
	ModeDirect
	ModeIndirect
)

// Device ids, carried in the value field of IN/OUT.
const (
	DevKBD int16 = 0 // integer input
	DevCRT int16 = 0 // integer output
)

var opcodeNames = map[uint32]string{
	OpStore: "STORE",
	OpLoad:  "LOAD",
	OpIn:    "IN",
	OpOut:   "OUT",

	OpAdd: "ADD",
	OpSub: "SUB",
	OpMul: "MUL",
	OpDiv: "DIV",
	OpMod: "MOD",

	OpAnd:  "AND",
	OpOr:   "OR",
	OpXor:  "XOR",
	OpNot:  "NOT",
	OpShl:  "SHL",
	OpShr:  "SHR",
	OpShra: "SHRA",

	OpComp: "COMP",

	OpJump:  "JUMP",
	OpJles:  "JLES",
	OpJequ:  "JEQU",
	OpJgre:  "JGRE",
	OpJnles: "JNLES",
	OpJnequ: "JNEQU",
	OpJngre: "JNGRE",

	OpJneg:  "JNEG",
	OpJzer:  "JZER",
	OpJpos:  "JPOS",
	OpJnneg: "JNNEG",
	OpJnzer: "JNZER",
	OpJnpos: "JNPOS",

	OpCall:  "CALL",
	OpExit:  "EXIT",
	OpPush:  "PUSH",
	OpPop:   "POP",
	OpPushr: "PUSHR",
	OpPopr:  "POPR",

	OpSvc:  "SVC",
	OpIret: "IRET",

	OpHalt: "HALT",
}

// OpcodeName returns the mnemonic for op, or "<unknown>" for reserved slots.
func OpcodeName(op uint32) string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "<unknown>"
}

var registerNames = [NumRegisters]string{
	"R0", "R1", "R2", "R3", "R4", "R5", "SP", "FP", "ZR",
}

func RegisterName(reg uint32) string {
	if reg < NumRegisters {
		return registerNames[reg]
	}
	return "<invalid>"
}

var modeNames = [4]string{"Immediate", "Register", "Direct", "Indirect"}

func ModeName(mode uint32) string {
	if mode < 4 {
		return modeNames[mode]
	}
	return "<invalid>"
}
