package cpu

// RunCycle executes one fetch-decode-execute cycle: it reads the
// big-endian word at the program counter, advances the counter by two,
// dispatches on the top nibble and finally decrements both timers.
// Jumps, calls and skips overwrite the counter after the baseline
// advance, so their targets are absolute addresses.
//
// While the processor is waiting on Fx0A the cycle only polls the
// keypad; the counter stays parked on the Fx0A word until a key is
// down, so repeated cycles with no key leave the counter unchanged.
//
// A decode or bounds failure is returned before the timer decrement
// and leaves the rest of the state as the faulting instruction left
// it; the host decides whether to halt or carry on.
func (p *Processor) RunCycle() error {
	if p.waitingForKey {
		for i, pressed := range p.keypad {
			if pressed {
				p.v[p.waitReg] = byte(i)
				p.waitingForKey = false
				p.pc += 2
				break
			}
		}
		p.tickTimers()
		return nil
	}

	if int(p.pc)+1 >= MemorySize {
		return MemoryOutOfBoundsError{PC: p.pc, Address: uint32(p.pc) + 1}
	}

	opcode := p.Opcode()
	pc := p.pc
	p.pc += 2

	if err := p.execute(pc, opcode); err != nil {
		return err
	}

	p.tickTimers()
	return nil
}

func (p *Processor) execute(pc, opcode uint16) error {
	f := decode(opcode)

	switch opcode >> 12 {
	case 0x0:
		switch f.kk {
		case 0xE0: // 00E0: clear the display
			p.display = [DisplayWidth * DisplayHeight]bool{}
			p.draw = true
		case 0xEE: // 00EE: return from subroutine
			if p.sp == 0 {
				return StackUnderflowError{PC: pc}
			}
			p.sp--
			p.pc = p.stack[p.sp]
		default:
			// 0nnn: machine code routine on the original hardware,
			// ignored by interpreters.
		}
	case 0x1: // 1nnn: jump
		p.pc = f.nnn
	case 0x2: // 2nnn: call subroutine
		if p.sp == StackDepth {
			return StackOverflowError{PC: pc}
		}
		p.stack[p.sp] = p.pc
		p.sp++
		p.pc = f.nnn
	case 0x3: // 3xkk: skip if Vx == kk
		if p.v[f.x] == f.kk {
			p.pc += 2
		}
	case 0x4: // 4xkk: skip if Vx != kk
		if p.v[f.x] != f.kk {
			p.pc += 2
		}
	case 0x5: // 5xy0: skip if Vx == Vy
		if p.v[f.x] == p.v[f.y] {
			p.pc += 2
		}
	case 0x6: // 6xkk: Vx = kk
		p.v[f.x] = f.kk
	case 0x7: // 7xkk: Vx += kk, no carry
		p.v[f.x] += f.kk
	case 0x8:
		return p.executeALU(pc, opcode, f)
	case 0x9: // 9xy0: skip if Vx != Vy
		if p.v[f.x] != p.v[f.y] {
			p.pc += 2
		}
	case 0xA: // Annn: I = nnn
		p.index = f.nnn
	case 0xB: // Bnnn: jump to nnn + V0
		p.pc = f.nnn + uint16(p.v[0])
	case 0xC: // Cxkk: Vx = random byte AND kk
		p.v[f.x] = p.rand.NextByte() & f.kk
	case 0xD:
		return p.executeDraw(pc, f)
	case 0xE:
		key := p.v[f.x] & 0x0F
		switch f.kk {
		case 0x9E: // Ex9E: skip if key Vx is down
			if p.keypad[key] {
				p.pc += 2
			}
		case 0xA1: // ExA1: skip if key Vx is up
			if !p.keypad[key] {
				p.pc += 2
			}
		default:
			return UnknownOpcodeError{PC: pc, Opcode: opcode}
		}
	case 0xF:
		return p.executeMisc(pc, opcode, f)
	}
	return nil
}

// executeALU handles the 8xy_ register-to-register family. The shift
// instructions capture the shifted-out bit in VF before mutating Vx.
func (p *Processor) executeALU(pc, opcode uint16, f fields) error {
	switch f.n {
	case 0x0: // 8xy0: Vx = Vy
		p.v[f.x] = p.v[f.y]
	case 0x1: // 8xy1: Vx |= Vy
		p.v[f.x] |= p.v[f.y]
	case 0x2: // 8xy2: Vx &= Vy
		p.v[f.x] &= p.v[f.y]
	case 0x3: // 8xy3: Vx ^= Vy
		p.v[f.x] ^= p.v[f.y]
	case 0x4: // 8xy4: Vx += Vy, VF = carry
		sum := uint16(p.v[f.x]) + uint16(p.v[f.y])
		p.v[f.x] = byte(sum)
		if sum > 0xFF {
			p.v[flag] = 1
		} else {
			p.v[flag] = 0
		}
	case 0x5: // 8xy5: Vx -= Vy, VF = NOT borrow
		borrow := p.v[f.y] > p.v[f.x]
		p.v[f.x] -= p.v[f.y]
		if borrow {
			p.v[flag] = 0
		} else {
			p.v[flag] = 1
		}
	case 0x6: // 8xy6: Vx >>= 1, VF = shifted-out bit
		p.v[flag] = p.v[f.x] & 0x1
		p.v[f.x] >>= 1
	case 0x7: // 8xy7: Vx = Vy - Vx, VF = NOT borrow
		borrow := p.v[f.x] > p.v[f.y]
		p.v[f.x] = p.v[f.y] - p.v[f.x]
		if borrow {
			p.v[flag] = 0
		} else {
			p.v[flag] = 1
		}
	case 0xE: // 8xyE: Vx <<= 1, VF = shifted-out bit
		p.v[flag] = p.v[f.x] >> 7
		p.v[f.x] <<= 1
	default:
		return UnknownOpcodeError{PC: pc, Opcode: opcode}
	}
	return nil
}

// executeDraw handles Dxyn: XOR an n-row sprite read from memory at I
// onto the framebuffer at (Vx, Vy). Coordinates wrap around the screen
// edges; VF reports whether any set pixel was erased.
func (p *Processor) executeDraw(pc uint16, f fields) error {
	if int(p.index)+int(f.n) > MemorySize {
		return MemoryOutOfBoundsError{PC: pc, Address: uint32(p.index) + uint32(f.n) - 1}
	}

	p.draw = true
	p.v[flag] = 0
	for row := 0; row < int(f.n); row++ {
		sprite := p.memory[int(p.index)+row]
		for bit := 0; bit < 8; bit++ {
			if sprite&(0x80>>bit) == 0 {
				continue
			}
			x := (int(p.v[f.x]) + bit) % DisplayWidth
			y := (int(p.v[f.y]) + row) % DisplayHeight
			pixel := y*DisplayWidth + x
			if p.display[pixel] {
				p.v[flag] = 1
			}
			p.display[pixel] = !p.display[pixel]
		}
	}
	return nil
}

// executeMisc handles the Fx__ family: timers, keypad wait, index
// arithmetic, font lookup, BCD and block register transfers.
func (p *Processor) executeMisc(pc, opcode uint16, f fields) error {
	switch f.kk {
	case 0x07: // Fx07: Vx = delay timer
		p.v[f.x] = p.delayTimer
	case 0x0A: // Fx0A: wait for a key press, store its index in Vx
		for i, pressed := range p.keypad {
			if pressed {
				p.v[f.x] = byte(i)
				return nil
			}
		}
		// No key down: park on this instruction until one arrives.
		p.waitingForKey = true
		p.waitReg = f.x
		p.pc -= 2
	case 0x15: // Fx15: delay timer = Vx
		p.delayTimer = p.v[f.x]
	case 0x18: // Fx18: sound timer = Vx
		p.soundTimer = p.v[f.x]
	case 0x1E: // Fx1E: I += Vx
		p.index += uint16(p.v[f.x])
	case 0x29: // Fx29: I = address of the font glyph for digit Vx
		p.index = glyphSize * uint16(p.v[f.x])
	case 0x33: // Fx33: memory[I..I+2] = BCD of Vx
		if int(p.index)+3 > MemorySize {
			return MemoryOutOfBoundsError{PC: pc, Address: uint32(p.index) + 2}
		}
		p.memory[p.index] = p.v[f.x] / 100
		p.memory[p.index+1] = p.v[f.x] / 10 % 10
		p.memory[p.index+2] = p.v[f.x] % 10
	case 0x55: // Fx55: memory[I..I+x] = V0..Vx
		if int(p.index)+int(f.x)+1 > MemorySize {
			return MemoryOutOfBoundsError{PC: pc, Address: uint32(p.index) + uint32(f.x)}
		}
		copy(p.memory[p.index:], p.v[:f.x+1])
	case 0x65: // Fx65: V0..Vx = memory[I..I+x]
		if int(p.index)+int(f.x)+1 > MemorySize {
			return MemoryOutOfBoundsError{PC: pc, Address: uint32(p.index) + uint32(f.x)}
		}
		copy(p.v[:f.x+1], p.memory[p.index:])
	default:
		return UnknownOpcodeError{PC: pc, Opcode: opcode}
	}
	return nil
}
