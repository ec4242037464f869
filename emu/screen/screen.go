// Package screen renders the processor framebuffer in a pixelgl window
// and feeds keyboard state back into the 16-key pad.
package screen

import (
	"fmt"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"

	"chip8/emu/cpu"
)

// keyMap lays the hex pad onto the left of a QWERTY keyboard:
//
//	Keypad         Keyboard
//	+-+-+-+-+      +-+-+-+-+
//	|1|2|3|C|      |1|2|3|4|
//	+-+-+-+-+      +-+-+-+-+
//	|4|5|6|D|      |Q|W|E|R|
//	+-+-+-+-+  =>  +-+-+-+-+
//	|7|8|9|E|      |A|S|D|F|
//	+-+-+-+-+      +-+-+-+-+
//	|A|0|B|F|      |Z|X|C|V|
//	+-+-+-+-+      +-+-+-+-+
var keyMap = map[pixelgl.Button]byte{
	pixelgl.Key1: 0x1, pixelgl.Key2: 0x2, pixelgl.Key3: 0x3, pixelgl.Key4: 0xC,
	pixelgl.KeyQ: 0x4, pixelgl.KeyW: 0x5, pixelgl.KeyE: 0x6, pixelgl.KeyR: 0xD,
	pixelgl.KeyA: 0x7, pixelgl.KeyS: 0x8, pixelgl.KeyD: 0x9, pixelgl.KeyF: 0xE,
	pixelgl.KeyZ: 0xA, pixelgl.KeyX: 0x0, pixelgl.KeyC: 0xB, pixelgl.KeyV: 0xF,
}

// Window wraps the pixelgl window driving one emulator display.
type Window struct {
	win   *pixelgl.Window
	imd   *imdraw.IMDraw
	scale float64
}

// New opens a fixed-size window scaled up from the 64x32 framebuffer.
// Must run on the main thread, inside pixelgl.Run.
func New(title string, scale float64) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, cpu.DisplayWidth*scale, cpu.DisplayHeight*scale),
		VSync:  true,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, err
	}
	return &Window{
		win:   win,
		imd:   imdraw.New(nil),
		scale: scale,
	}, nil
}

// Closed reports whether the window was closed or Escape pressed.
func (w *Window) Closed() bool {
	return w.win.Closed() || w.win.JustPressed(pixelgl.KeyEscape)
}

// Update pumps window events. Call once per frame.
func (w *Window) Update() {
	w.win.Update()
}

// UpdateKeys copies the current keyboard state into the processor's
// keypad. Shift+/ dumps the program counter and the opcode it points
// at, for poking at a stuck ROM.
func (w *Window) UpdateKeys(p *cpu.Processor) {
	for button, key := range keyMap {
		p.SetKey(key, w.win.Pressed(button))
	}

	shift := w.win.Pressed(pixelgl.KeyLeftShift) || w.win.Pressed(pixelgl.KeyRightShift)
	if shift && w.win.JustPressed(pixelgl.KeySlash) {
		fmt.Printf("pc = 0x%03X, opcode = 0x%04X\n", p.PC(), p.Opcode())
	}
}

// Render draws one white quad per set framebuffer pixel on a black
// background. The framebuffer's origin is top-left, the window's is
// bottom-left, so rows are flipped.
func (w *Window) Render(p *cpu.Processor) {
	w.win.Clear(colornames.Black)
	w.imd.Clear()
	w.imd.Color = colornames.White

	for y := 0; y < cpu.DisplayHeight; y++ {
		for x := 0; x < cpu.DisplayWidth; x++ {
			if !p.Pixel(x, y) {
				continue
			}
			top := float64(cpu.DisplayHeight-y) * w.scale
			left := float64(x) * w.scale
			w.imd.Push(
				pixel.V(left, top-w.scale),
				pixel.V(left+w.scale, top),
			)
			w.imd.Rectangle(0)
		}
	}

	w.imd.Draw(w.win)
}
