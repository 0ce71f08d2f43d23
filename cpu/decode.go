// Copyright © 2019 mg
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cpu

// addrModeFunc computes the operand for one instruction and advances
// PC past whatever bytes it consumes.
type addrModeFunc func(c *CPU) operand

// execFunc performs the instruction's effect given its operand. The
// raw opcode byte is passed through so the shared RMB/SMB/BBR/BBS
// handlers can recover the bit index encoded in the opcode nibble.
type execFunc func(c *CPU, op operand, opcode uint8)

type decodeEntry struct {
	name string
	mode addrModeFunc
	exec execFunc
}

// decodeTable is the opcode -> (addressing mode, execute) dispatch
// table. It is built once at init time from two parallel descriptions
// (documented 6502 opcodes, then 65C02 additions layered on top of
// the unmapped cells) rather than a single 256-entry literal, so that
// each opcode's mode and mnemonic stay next to each other in source.
// Every cell not explicitly assigned defaults to NOP/implied, per the
// "unmapped cells map to NOP" rule.
var decodeTable [256]decodeEntry

func init() {
	for i := range decodeTable {
		decodeTable[i] = decodeEntry{"NOP", amImplied, execNOP}
	}

	set := func(opcode uint8, name string, mode addrModeFunc, exec execFunc) {
		decodeTable[opcode] = decodeEntry{name, mode, exec}
	}

	// Documented NMOS 6502 instruction set.
	set(0x00, "BRK", amImplied, execBRK)
	set(0x01, "ORA", amIndexedIndirectX, execORA)
	set(0x05, "ORA", amZeroPage, execORA)
	set(0x06, "ASL", amZeroPage, execASL)
	set(0x08, "PHP", amImplied, execPHP)
	set(0x09, "ORA", amImmediate, execORA)
	set(0x0A, "ASL", amAccumulator, execASL)
	set(0x0D, "ORA", amAbsolute, execORA)
	set(0x0E, "ASL", amAbsolute, execASL)

	set(0x10, "BPL", amRelative, execBPL)
	set(0x11, "ORA", amIndirectIndexedY, execORA)
	set(0x15, "ORA", amZeroPageX, execORA)
	set(0x16, "ASL", amZeroPageX, execASL)
	set(0x18, "CLC", amImplied, execCLC)
	set(0x19, "ORA", amAbsoluteY, execORA)
	set(0x1D, "ORA", amAbsoluteX, execORA)
	set(0x1E, "ASL", amAbsoluteX, execASL)

	set(0x20, "JSR", amAbsolute, execJSR)
	set(0x21, "AND", amIndexedIndirectX, execAND)
	set(0x24, "BIT", amZeroPage, execBIT)
	set(0x25, "AND", amZeroPage, execAND)
	set(0x26, "ROL", amZeroPage, execROL)
	set(0x28, "PLP", amImplied, execPLP)
	set(0x29, "AND", amImmediate, execAND)
	set(0x2A, "ROL", amAccumulator, execROL)
	set(0x2C, "BIT", amAbsolute, execBIT)
	set(0x2D, "AND", amAbsolute, execAND)
	set(0x2E, "ROL", amAbsolute, execROL)

	set(0x30, "BMI", amRelative, execBMI)
	set(0x31, "AND", amIndirectIndexedY, execAND)
	set(0x35, "AND", amZeroPageX, execAND)
	set(0x36, "ROL", amZeroPageX, execROL)
	set(0x38, "SEC", amImplied, execSEC)
	set(0x39, "AND", amAbsoluteY, execAND)
	set(0x3D, "AND", amAbsoluteX, execAND)
	set(0x3E, "ROL", amAbsoluteX, execROL)

	set(0x40, "RTI", amImplied, execRTI)
	set(0x41, "EOR", amIndexedIndirectX, execEOR)
	set(0x45, "EOR", amZeroPage, execEOR)
	set(0x46, "LSR", amZeroPage, execLSR)
	set(0x48, "PHA", amImplied, execPHA)
	set(0x49, "EOR", amImmediate, execEOR)
	set(0x4A, "LSR", amAccumulator, execLSR)
	set(0x4C, "JMP", amAbsolute, execJMP)
	set(0x4D, "EOR", amAbsolute, execEOR)
	set(0x4E, "LSR", amAbsolute, execLSR)

	set(0x50, "BVC", amRelative, execBVC)
	set(0x51, "EOR", amIndirectIndexedY, execEOR)
	set(0x55, "EOR", amZeroPageX, execEOR)
	set(0x56, "LSR", amZeroPageX, execLSR)
	set(0x58, "CLI", amImplied, execCLI)
	set(0x59, "EOR", amAbsoluteY, execEOR)
	set(0x5D, "EOR", amAbsoluteX, execEOR)
	set(0x5E, "LSR", amAbsoluteX, execLSR)

	set(0x60, "RTS", amImplied, execRTS)
	set(0x61, "ADC", amIndexedIndirectX, execADC)
	set(0x65, "ADC", amZeroPage, execADC)
	set(0x66, "ROR", amZeroPage, execROR)
	set(0x68, "PLA", amImplied, execPLA)
	set(0x69, "ADC", amImmediate, execADC)
	set(0x6A, "ROR", amAccumulator, execROR)
	set(0x6C, "JMP", amIndirect, execJMP)
	set(0x6D, "ADC", amAbsolute, execADC)
	set(0x6E, "ROR", amAbsolute, execROR)

	set(0x70, "BVS", amRelative, execBVS)
	set(0x71, "ADC", amIndirectIndexedY, execADC)
	set(0x75, "ADC", amZeroPageX, execADC)
	set(0x76, "ROR", amZeroPageX, execROR)
	set(0x78, "SEI", amImplied, execSEI)
	set(0x79, "ADC", amAbsoluteY, execADC)
	set(0x7D, "ADC", amAbsoluteX, execADC)
	set(0x7E, "ROR", amAbsoluteX, execROR)

	set(0x81, "STA", amIndexedIndirectX, execSTA)
	set(0x84, "STY", amZeroPage, execSTY)
	set(0x85, "STA", amZeroPage, execSTA)
	set(0x86, "STX", amZeroPage, execSTX)
	set(0x88, "DEY", amImplied, execDEY)
	set(0x8A, "TXA", amImplied, execTXA)
	set(0x8C, "STY", amAbsolute, execSTY)
	set(0x8D, "STA", amAbsolute, execSTA)
	set(0x8E, "STX", amAbsolute, execSTX)

	set(0x90, "BCC", amRelative, execBCC)
	set(0x91, "STA", amIndirectIndexedY, execSTA)
	set(0x94, "STY", amZeroPageX, execSTY)
	set(0x95, "STA", amZeroPageX, execSTA)
	set(0x96, "STX", amZeroPageY, execSTX)
	set(0x98, "TYA", amImplied, execTYA)
	set(0x99, "STA", amAbsoluteY, execSTA)
	set(0x9A, "TXS", amImplied, execTXS)
	set(0x9D, "STA", amAbsoluteX, execSTA)

	set(0xA0, "LDY", amImmediate, execLDY)
	set(0xA1, "LDA", amIndexedIndirectX, execLDA)
	set(0xA2, "LDX", amImmediate, execLDX)
	set(0xA4, "LDY", amZeroPage, execLDY)
	set(0xA5, "LDA", amZeroPage, execLDA)
	set(0xA6, "LDX", amZeroPage, execLDX)
	set(0xA8, "TAY", amImplied, execTAY)
	set(0xA9, "LDA", amImmediate, execLDA)
	set(0xAA, "TAX", amImplied, execTAX)
	set(0xAC, "LDY", amAbsolute, execLDY)
	set(0xAD, "LDA", amAbsolute, execLDA)
	set(0xAE, "LDX", amAbsolute, execLDX)

	set(0xB0, "BCS", amRelative, execBCS)
	set(0xB1, "LDA", amIndirectIndexedY, execLDA)
	set(0xB4, "LDY", amZeroPageX, execLDY)
	set(0xB5, "LDA", amZeroPageX, execLDA)
	set(0xB6, "LDX", amZeroPageY, execLDX)
	set(0xB8, "CLV", amImplied, execCLV)
	set(0xB9, "LDA", amAbsoluteY, execLDA)
	set(0xBA, "TSX", amImplied, execTSX)
	set(0xBC, "LDY", amAbsoluteX, execLDY)
	set(0xBD, "LDA", amAbsoluteX, execLDA)
	set(0xBE, "LDX", amAbsoluteY, execLDX)

	set(0xC0, "CPY", amImmediate, execCPY)
	set(0xC1, "CMP", amIndexedIndirectX, execCMP)
	set(0xC4, "CPY", amZeroPage, execCPY)
	set(0xC5, "CMP", amZeroPage, execCMP)
	set(0xC6, "DEC", amZeroPage, execDEC)
	set(0xC8, "INY", amImplied, execINY)
	set(0xC9, "CMP", amImmediate, execCMP)
	set(0xCA, "DEX", amImplied, execDEX)
	set(0xCC, "CPY", amAbsolute, execCPY)
	set(0xCD, "CMP", amAbsolute, execCMP)
	set(0xCE, "DEC", amAbsolute, execDEC)

	set(0xD0, "BNE", amRelative, execBNE)
	set(0xD1, "CMP", amIndirectIndexedY, execCMP)
	set(0xD5, "CMP", amZeroPageX, execCMP)
	set(0xD6, "DEC", amZeroPageX, execDEC)
	set(0xD8, "CLD", amImplied, execCLD)
	set(0xD9, "CMP", amAbsoluteY, execCMP)
	set(0xDD, "CMP", amAbsoluteX, execCMP)
	set(0xDE, "DEC", amAbsoluteX, execDEC)

	set(0xE0, "CPX", amImmediate, execCPX)
	set(0xE1, "SBC", amIndexedIndirectX, execSBC)
	set(0xE4, "CPX", amZeroPage, execCPX)
	set(0xE5, "SBC", amZeroPage, execSBC)
	set(0xE6, "INC", amZeroPage, execINC)
	set(0xE8, "INX", amImplied, execINX)
	set(0xE9, "SBC", amImmediate, execSBC)
	set(0xEA, "NOP", amImplied, execNOP)
	set(0xEC, "CPX", amAbsolute, execCPX)
	set(0xED, "SBC", amAbsolute, execSBC)
	set(0xEE, "INC", amAbsolute, execINC)

	set(0xF0, "BEQ", amRelative, execBEQ)
	set(0xF1, "SBC", amIndirectIndexedY, execSBC)
	set(0xF5, "SBC", amZeroPageX, execSBC)
	set(0xF6, "INC", amZeroPageX, execINC)
	set(0xF8, "SED", amImplied, execSED)
	set(0xF9, "SBC", amAbsoluteY, execSBC)
	set(0xFD, "SBC", amAbsoluteX, execSBC)
	set(0xFE, "INC", amAbsoluteX, execINC)

	// 65C02 additions layered over the cells the NMOS table left
	// unmapped (undocumented-opcode slots are out of scope and stay
	// NOP per the default above).
	set(0x04, "TSB", amZeroPage, execTSB)
	set(0x0C, "TSB", amAbsolute, execTSB)
	set(0x14, "TRB", amZeroPage, execTRB)
	set(0x1C, "TRB", amAbsolute, execTRB)
	set(0x1A, "INC", amAccumulator, execINC)
	set(0x3A, "DEC", amAccumulator, execDEC)
	set(0x34, "BIT", amZeroPageX, execBIT)
	set(0x3C, "BIT", amAbsoluteX, execBIT)
	set(0x89, "BIT", amImmediate, execBIT)

	set(0x12, "ORA", amZeroPageIndirect, execORA)
	set(0x32, "AND", amZeroPageIndirect, execAND)
	set(0x52, "EOR", amZeroPageIndirect, execEOR)
	set(0x72, "ADC", amZeroPageIndirect, execADC)
	set(0x92, "STA", amZeroPageIndirect, execSTA)
	set(0xB2, "LDA", amZeroPageIndirect, execLDA)
	set(0xD2, "CMP", amZeroPageIndirect, execCMP)
	set(0xF2, "SBC", amZeroPageIndirect, execSBC)

	set(0x80, "BRA", amRelative, execBRA)
	set(0x5A, "PHY", amImplied, execPHY)
	set(0x7A, "PLY", amImplied, execPLY)
	set(0xDA, "PHX", amImplied, execPHX)
	set(0xFA, "PLX", amImplied, execPLX)

	set(0x64, "STZ", amZeroPage, execSTZ)
	set(0x74, "STZ", amZeroPageX, execSTZ)
	set(0x9C, "STZ", amAbsolute, execSTZ)
	set(0x9E, "STZ", amAbsoluteX, execSTZ)

	set(0x7C, "JMP", amAbsoluteIndexedIndirect, execJMP)

	set(0xCB, "WAI", amImplied, execWAI)
	set(0xDB, "STP", amImplied, execSTP)

	for n := uint8(0); n < 8; n++ {
		set(0x07+n<<4, "RMB", amZeroPage, execRMB)
		set(0x87+n<<4, "SMB", amZeroPage, execSMB)
		set(0x0F+n<<4, "BBR", amZeroPageBitBranch, execBBR)
		set(0x8F+n<<4, "BBS", amZeroPageBitBranch, execBBS)
	}
}
