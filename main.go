package main

import (
	"chip8/cmd"

	"github.com/faiface/pixel/pixelgl"
)

func main() {
	// pixelgl needs the main thread; everything runs inside it.
	pixelgl.Run(cmd.Execute)
}
