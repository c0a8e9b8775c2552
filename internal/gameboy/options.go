package gameboy

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gomeboy/internal/serial/accessories"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// config accumulates the effect of every Option before a Device is
// constructed.
type config struct {
	now          func() time.Time
	model        types.Model
	isGBC        bool
	skipChecksum bool
	log          *logrus.Logger
	printer      *accessories.Printer
}

// Option configures a Device at construction time. Options are applied
// in order, after the default configuration for NewClassic/NewColor and
// before any hardware component is built.
type Option func(*config)

// WithModel overrides the hardware model NewClassic/NewColor would
// otherwise pick (DMGABC or CGBABC respectively). This only changes the
// initial register values and model-dependent quirks; CGB-only features
// (VRAM/WRAM banking, double speed) are still gated on whether NewClassic
// or NewColor was called.
func WithModel(m types.Model) Option {
	return func(c *config) {
		c.model = m
	}
}

// SkipChecksum disables header-checksum verification. Some homebrew ROMs
// ship with an intentionally invalid checksum.
func SkipChecksum() Option {
	return func(c *config) {
		c.skipChecksum = true
	}
}

// WithRTCNow overrides the wall-clock function consulted by an MBC3
// cartridge's real-time clock. Tests supply a fixed clock so RTC
// behaviour is reproducible.
func WithRTCNow(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

// WithLogger overrides the Device's default logger.
func WithLogger(log *logrus.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithPrinter attaches a Game Boy Printer to the serial port at
// construction time, equivalent to calling SetSerialCallback(printer.Feed)
// once the Device exists.
func WithPrinter(printer *accessories.Printer) Option {
	return func(c *config) {
		c.printer = printer
	}
}
