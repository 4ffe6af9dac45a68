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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeRoundTrip(t *testing.T) {
	for op := uint32(0); op < NumOpcodes; op++ {
		assert.Equal(t, op, DecodeOpcode(EncodeOpcode(op)))
	}
}

func TestModeRoundTrip(t *testing.T) {
	for _, mode := range []uint32{
		ModeImmediate, ModeRegister, ModeDirect, ModeIndirect,
	} {
		assert.Equal(t, mode, DecodeMode(EncodeMode(mode)))
	}
}

func TestDstRoundTrip(t *testing.T) {
	for dst := R0; dst <= FP; dst++ {
		assert.Equal(t, dst, DecodeDst(EncodeDst(dst)))
	}
}

func TestSrcRoundTrip(t *testing.T) {
	// src has a fourth bit for the zero register
	for src := R0; src <= ZR; src++ {
		assert.Equal(t, src, DecodeSrc(EncodeSrc(src)))
	}
}

func TestValueRoundTrip(t *testing.T) {
	for _, value := range []int16{
		-32768, -32767, -1, 0, 1, 255, 256, 32766, 32767,
	} {
		assert.Equal(t, value, DecodeValue(EncodeValue(value)))
	}
}

func TestFieldsDoNotOverlap(t *testing.T) {
	word := Instruction(NumOpcodes-1, FP, ZR, ModeIndirect, -1)

	assert.Equal(t, NumOpcodes-1, DecodeOpcode(word))
	assert.Equal(t, FP, DecodeDst(word))
	assert.Equal(t, ZR, DecodeSrc(word))
	assert.Equal(t, ModeIndirect, DecodeMode(word))
	assert.Equal(t, int16(-1), DecodeValue(word))
}

// The bit layout is a wire contract, not an implementation detail.
func TestKnownLayout(t *testing.T) {
	word := Instruction(OpLoad, R1, R2, ModeDirect, 5)

	want := OpLoad |
		ModeDirect<<6 |
		R1<<8 |
		R2<<11 |
		uint32(5)<<15

	assert.Equal(t, want, word)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "LOAD", OpcodeName(OpLoad))
	assert.Equal(t, "HALT", OpcodeName(OpHalt))
	assert.Equal(t, "<unknown>", OpcodeName(OpSinf))

	assert.Equal(t, "SP", RegisterName(SP))
	assert.Equal(t, "ZR", RegisterName(ZR))
	assert.Equal(t, "<invalid>", RegisterName(12))

	assert.Equal(t, "Indirect", ModeName(ModeIndirect))
}
