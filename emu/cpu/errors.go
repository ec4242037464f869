package cpu

import "fmt"

// UnknownOpcodeError is returned by RunCycle when the fetched word
// matches no instruction within a recognized family. PC is the address
// the word was fetched from.
type UnknownOpcodeError struct {
	PC     uint16
	Opcode uint16
}

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04X at 0x%03X", e.Opcode, e.PC)
}

// ROMTooLargeError is returned by LoadROM when the image does not fit
// between RomStart and the end of memory.
type ROMTooLargeError struct {
	Size int
}

func (e ROMTooLargeError) Error() string {
	return fmt.Sprintf("ROM is %d bytes, limit is %d", e.Size, maxRomSize)
}

// StackOverflowError is returned when a call is executed with all
// sixteen stack slots in use.
type StackOverflowError struct {
	PC uint16
}

func (e StackOverflowError) Error() string {
	return fmt.Sprintf("call at 0x%03X overflows the 16-entry stack", e.PC)
}

// StackUnderflowError is returned when a return is executed with an
// empty stack.
type StackUnderflowError struct {
	PC uint16
}

func (e StackUnderflowError) Error() string {
	return fmt.Sprintf("return at 0x%03X with an empty stack", e.PC)
}

// MemoryOutOfBoundsError is returned when an instruction fetch or an
// index-relative access (sprite source, BCD store, block load/store)
// would extend past the end of memory. Address is the first byte past
// the valid range that the access touched.
type MemoryOutOfBoundsError struct {
	PC      uint16
	Address uint32
}

func (e MemoryOutOfBoundsError) Error() string {
	return fmt.Sprintf("memory access at 0x%X out of bounds (pc 0x%03X)", e.Address, e.PC)
}
