// Command goboy is a headless runner for the gomeboy core: it loads a
// ROM, steps the emulation for a fixed number of frames, and flushes
// battery-backed RAM and any pending printer output to disk. It has no
// window and no audio backend of its own; it exists to drive and
// inspect the core from a shell rather than to play games.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gomeboy/internal/gameboy"
	"github.com/thelolagemann/gomeboy/internal/serial/accessories"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "goboy"
	app.Usage = "goboy [options] <ROM file>"
	app.Description = "A headless runner for the gomeboy emulation core"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "cgb",
			Usage: "emulate CGB hardware instead of DMG",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "number of frames to run before exiting",
			Value: 60,
		},
		cli.StringFlag{
			Name:  "save",
			Usage: "path to load/flush battery-backed RAM (defaults to <rom>.gbsave)",
		},
		cli.BoolFlag{
			Name:  "skip-checksum",
			Usage: "skip cartridge header checksum verification",
		},
		cli.BoolFlag{
			Name:  "printer",
			Usage: "attach a Game Boy Printer to the serial port and dump any printed page",
		},
		cli.StringFlag{
			Name:  "printer-out",
			Usage: "path to write the printer's last page (defaults to <rom>.pgm)",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable debug logging",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("no ROM path provided")
	}
	romPath := c.Args().Get(0)

	log := logrus.New()
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	opts := []gameboy.Option{gameboy.WithLogger(log)}
	if c.Bool("skip-checksum") {
		opts = append(opts, gameboy.SkipChecksum())
	}

	var printer *accessories.Printer
	if c.Bool("printer") {
		printer = accessories.NewPrinter()
		opts = append(opts, gameboy.WithPrinter(printer))
	}

	var device *gameboy.Device
	if c.Bool("cgb") {
		device, err = gameboy.NewColor(rom, opts...)
	} else {
		device, err = gameboy.NewClassic(rom, opts...)
	}
	if err != nil {
		return fmt.Errorf("constructing device: %w", err)
	}

	savePath := c.String("save")
	if savePath == "" {
		savePath = romSidecarPath(romPath, ".gbsave")
	}
	if data, err := os.ReadFile(savePath); err == nil {
		if err := device.LoadRAM(data); err != nil {
			log.WithError(err).Warn("failed to load save file, starting with blank RAM")
		} else {
			log.WithField("path", savePath).Info("loaded save file")
		}
	}

	frames := c.Int("frames")
	log.WithFields(logrus.Fields{"rom": romPath, "frames": frames}).Info("running")

	for f := 0; f < frames; f++ {
		for !device.HasFrame() {
			device.Step()
		}
		device.Frame()
	}

	if device.CheckAndResetRAMUpdated() {
		if err := os.WriteFile(savePath, device.DumpRAM(), 0644); err != nil {
			return fmt.Errorf("flushing save file: %w", err)
		}
		log.WithField("path", savePath).Info("flushed save file")
	}

	if printer != nil && printer.HasImage() {
		printerOut := c.String("printer-out")
		if printerOut == "" {
			printerOut = romSidecarPath(romPath, ".pgm")
		}
		if err := os.WriteFile(printerOut, printer.Image(), 0644); err != nil {
			return fmt.Errorf("writing printer output: %w", err)
		}
		log.WithField("path", printerOut).Info("wrote printer page")
	}

	return nil
}

// romSidecarPath replaces romPath's extension with ext.
func romSidecarPath(romPath, ext string) string {
	base := strings.TrimSuffix(romPath, filepath.Ext(romPath))
	return base + ext
}
