package cmd

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"chip8/emu/audio"
	"chip8/emu/cpu"
	"chip8/emu/screen"
)

var startCmd = &cobra.Command{
	Use:   "start `path/ROM`",
	Short: "load a ROM and start the emulator",
	Args:  cobra.ExactArgs(1),
	Run:   Start,
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().IntP("refresh", "r", 60, "frames per second")
	startCmd.Flags().IntP("cycles", "c", 10, "processor cycles per frame")
	startCmd.Flags().Float64P("scale", "s", 10, "window pixels per display pixel")
	viper.BindPFlag("refresh", startCmd.Flags().Lookup("refresh"))
	viper.BindPFlag("cycles", startCmd.Flags().Lookup("cycles"))
	viper.BindPFlag("scale", startCmd.Flags().Lookup("scale"))
}

// chip8 start 'path/to/ROM' -r 60 -c 10
func Start(cmd *cobra.Command, args []string) {
	romPath := args[0]

	rom, err := ioutil.ReadFile(romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading ROM: %v\n", err)
		os.Exit(1)
	}

	proc := cpu.New()
	if err := proc.LoadROM(rom); err != nil {
		fmt.Fprintf(os.Stderr, "error loading ROM: %v\n", err)
		os.Exit(1)
	}

	win, err := screen.New("CHIP-8 - "+filepath.Base(romPath), viper.GetFloat64("scale"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening window: %v\n", err)
		os.Exit(1)
	}

	// Run without sound if the speaker cannot be opened.
	beeper, err := audio.NewBeeper()
	if err != nil {
		fmt.Fprintf(os.Stderr, "audio disabled: %v\n", err)
	}

	ticker := time.NewTicker(time.Second / time.Duration(viper.GetInt("refresh")))
	defer ticker.Stop()

	cycles := viper.GetInt("cycles")
	for !win.Closed() {
		win.UpdateKeys(proc)

		for i := 0; i < cycles; i++ {
			if err := proc.RunCycle(); err != nil {
				fmt.Fprintf(os.Stderr, "emulation halted: %v\n", err)
				os.Exit(1)
			}
		}

		if proc.DrawFlag() {
			win.Render(proc)
			proc.ClearDrawFlag()
		}
		if beeper != nil {
			beeper.SetPlaying(proc.SoundTimer() > 0)
		}

		win.Update()
		<-ticker.C
	}
}
