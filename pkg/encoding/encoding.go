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

// Packed instruction word:
//
//	| value (16)      | src (4) | dst (3) | mode (2) | opcode (6) |
//	31               15        11        8          6            0
//
// The value field holds an immediate, an address offset, a jump target or a
// device id depending on the opcode. Bit 31 is unused.
const (
	OpcodeBits = 6
	ModeBits   = 2
	DstBits    = 3
	SrcBits    = 4 // one extra bit to fit the zero register
	ValueBits  = 16
)

const (
	opcodeOffset = 0
	modeOffset   = opcodeOffset + OpcodeBits
	dstOffset    = modeOffset + ModeBits
	srcOffset    = dstOffset + DstBits
	valueOffset  = srcOffset + SrcBits
)

func EncodeOpcode(op uint32) uint32 {
	return (op & (1<<OpcodeBits - 1)) << opcodeOffset
}

func DecodeOpcode(word uint32) uint32 {
	return (word >> opcodeOffset) & (1<<OpcodeBits - 1)
}

func EncodeMode(mode uint32) uint32 {
	return (mode & (1<<ModeBits - 1)) << modeOffset
}

func DecodeMode(word uint32) uint32 {
	return (word >> modeOffset) & (1<<ModeBits - 1)
}

func EncodeDst(dst uint32) uint32 {
	return (dst & (1<<DstBits - 1)) << dstOffset
}

func DecodeDst(word uint32) uint32 {
	return (word >> dstOffset) & (1<<DstBits - 1)
}

func EncodeSrc(src uint32) uint32 {
	return (src & (1<<SrcBits - 1)) << srcOffset
}

func DecodeSrc(word uint32) uint32 {
	return (word >> srcOffset) & (1<<SrcBits - 1)
}

func EncodeValue(value int16) uint32 {
	return uint32(uint16(value)) << valueOffset
}

func DecodeValue(word uint32) int16 {
	return int16(uint16(word >> valueOffset))
}

// Instruction packs a complete instruction word.
func Instruction(op, dst, src, mode uint32, value int16) uint32 {
	return EncodeOpcode(op) |
		EncodeDst(dst) |
		EncodeSrc(src) |
		EncodeMode(mode) |
		EncodeValue(value)
}
