package cpu

// fields holds the operand slices of a 16-bit instruction word. Which
// fields are meaningful depends on the instruction; x and y are always
// 4-bit and therefore valid register indices by construction.
type fields struct {
	x   byte   // bits 8-11, first register operand
	y   byte   // bits 4-7, second register operand
	n   byte   // bits 0-3, sprite height
	kk  byte   // bits 0-7, immediate byte
	nnn uint16 // bits 0-11, address
}

func decode(opcode uint16) fields {
	return fields{
		x:   byte(opcode>>8) & 0x0F,
		y:   byte(opcode>>4) & 0x0F,
		n:   byte(opcode) & 0x0F,
		kk:  byte(opcode),
		nnn: opcode & 0x0FFF,
	}
}
