// Package cpu implements the CHIP-8 processor: 4K of memory, sixteen
// 8-bit registers, a sixteen-deep call stack, two countdown timers, a
// 64x32 monochrome framebuffer and a 16-key pad, driven one
// fetch-decode-execute cycle at a time by the host.
package cpu

// Framebuffer dimensions.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

const (
	// MemorySize is the full CHIP-8 address space.
	MemorySize = 4096
	// NumRegisters is the number of general registers V0..VF.
	NumRegisters = 16
	// NumKeys is the number of keys on the hex pad.
	NumKeys = 16
	// StackDepth is the call stack capacity.
	StackDepth = 16

	// RomStart is where ROM images are loaded and execution begins.
	RomStart = 0x200

	maxRomSize = MemorySize - RomStart
	glyphSize  = 5
	flag       = 0xF
)

// Processor holds the complete machine state. All mutation happens
// inside RunCycle, except for the two host write points: LoadROM and
// SetKey. The processor itself is single-threaded; hosts driving the
// cycle loop and input from different goroutines must synchronize.
type Processor struct {
	memory     [MemorySize]byte
	v          [NumRegisters]byte
	index      uint16
	pc         uint16
	stack      [StackDepth]uint16
	sp         byte
	delayTimer byte
	soundTimer byte
	display    [DisplayWidth * DisplayHeight]bool
	draw       bool
	keypad     [NumKeys]bool

	// Set by Fx0A when no key is down; RunCycle then polls the pad
	// instead of dispatching until a key arrives.
	waitingForKey bool
	waitReg       byte

	rand RandomSource
}

// New returns a processor with the font glyphs preloaded and the
// program counter at RomStart, using an entropy-seeded random source.
func New() *Processor {
	return NewWithRandom(newEntropySource())
}

// NewWithRandom is New with the random source supplied by the caller,
// so tests can script the bytes consumed by Cxkk.
func NewWithRandom(src RandomSource) *Processor {
	p := &Processor{
		pc:   RomStart,
		draw: true,
		rand: src,
	}
	copy(p.memory[:], fontSet[:])
	return p
}

// LoadROM copies a raw ROM image into memory at RomStart. Opcodes are
// consumed big-endian, two bytes at a time, starting there.
func (p *Processor) LoadROM(rom []byte) error {
	if len(rom) > maxRomSize {
		return ROMTooLargeError{Size: len(rom)}
	}
	copy(p.memory[RomStart:], rom)
	return nil
}

// SetKey records whether a pad key is currently held. Indices outside
// the 16-key pad are ignored.
func (p *Processor) SetKey(key byte, pressed bool) {
	if key >= NumKeys {
		return
	}
	p.keypad[key] = pressed
}

// PC returns the current program counter.
func (p *Processor) PC() uint16 {
	return p.pc
}

// Opcode returns the two-byte instruction word at the program counter,
// or 0 if the counter sits past the end of memory. Together with PC
// this is the diagnostic view of what executes next.
func (p *Processor) Opcode() uint16 {
	if int(p.pc)+1 >= MemorySize {
		return 0
	}
	return uint16(p.memory[p.pc])<<8 | uint16(p.memory[p.pc+1])
}

// IndexRegister returns the current value of the index register.
func (p *Processor) IndexRegister() uint16 {
	return p.index
}

// Registers returns a copy of the sixteen general registers.
func (p *Processor) Registers() [NumRegisters]byte {
	return p.v
}

// Memory returns a copy of the full address space.
func (p *Processor) Memory() [MemorySize]byte {
	return p.memory
}

// Pixel reports whether the framebuffer pixel at (x, y) is set.
func (p *Processor) Pixel(x, y int) bool {
	return p.display[y*DisplayWidth+x]
}

// DrawFlag reports whether the framebuffer changed since the host last
// cleared the flag.
func (p *Processor) DrawFlag() bool {
	return p.draw
}

// ClearDrawFlag is called by the host after presenting a frame.
func (p *Processor) ClearDrawFlag() {
	p.draw = false
}

// DelayTimer returns the delay timer value.
func (p *Processor) DelayTimer() byte {
	return p.delayTimer
}

// SoundTimer returns the sound timer value. The host sounds its buzzer
// while this is nonzero.
func (p *Processor) SoundTimer() byte {
	return p.soundTimer
}

// WaitingForKey reports whether the processor is parked on an Fx0A
// instruction waiting for a key press.
func (p *Processor) WaitingForKey() bool {
	return p.waitingForKey
}

func (p *Processor) tickTimers() {
	if p.delayTimer > 0 {
		p.delayTimer--
	}
	if p.soundTimer > 0 {
		p.soundTimer--
	}
}
