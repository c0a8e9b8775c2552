// Package gameboy wires together the individual hardware components -
// MMU, CPU, PPU, APU, timer, joypad, serial and cartridge - into a single
// Device that a host can drive one instruction at a time. It owns no
// window, no audio backend and spawns no goroutines of its own beyond
// what the PPU's own scanline renderer starts; everything else is driven
// synchronously from Step.
package gameboy

import (
	"time"

	"github.com/cespare/xxhash"
	"github.com/sirupsen/logrus"
	"github.com/thelolagemann/gomeboy/internal/apu"
	"github.com/thelolagemann/gomeboy/internal/cartridge"
	"github.com/thelolagemann/gomeboy/internal/cpu"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/joypad"
	"github.com/thelolagemann/gomeboy/internal/mmu"
	"github.com/thelolagemann/gomeboy/internal/ppu"
	"github.com/thelolagemann/gomeboy/internal/scheduler"
	"github.com/thelolagemann/gomeboy/internal/serial"
	"github.com/thelolagemann/gomeboy/internal/timer"
	"github.com/thelolagemann/gomeboy/internal/types"
)

const (
	// ScreenWidth is the width of the Game Boy screen, in pixels.
	ScreenWidth = ppu.ScreenWidth
	// ScreenHeight is the height of the Game Boy screen, in pixels.
	ScreenHeight = ppu.ScreenHeight
)

// Device is a complete, runnable Game Boy.
//
// It is not safe for concurrent use: Step, KeyDown/KeyUp and the
// Attach/Dump/Serialize family are all meant to be called from a single
// host loop.
type Device struct {
	Cart *cartridge.Cartridge
	MMU  *mmu.MMU
	CPU  *cpu.CPU

	ppu  *ppu.PPU
	apu  *apu.APU
	pad  *joypad.State
	tim  *timer.Controller
	ser  *serial.Controller
	irq  *interrupts.Service
	sch  *scheduler.Scheduler
	hdma *ppu.HDMA

	model types.Model
	log   *logrus.Logger

	lastRAMHash uint64
	haveRAMHash bool
}

// NewClassic returns a Device emulating the original DMG hardware.
func NewClassic(rom []byte, opts ...Option) (*Device, error) {
	return newDevice(rom, types.DMGABC, false, opts...)
}

// NewColor returns a Device emulating CGB hardware. If the cartridge does
// not advertise CGB support, it runs in DMG compatibility mode on the CGB
// hardware, matching how a real CGB console behaves with an older
// cartridge.
func NewColor(rom []byte, opts ...Option) (*Device, error) {
	return newDevice(rom, types.CGBABC, true, opts...)
}

func newDevice(rom []byte, model types.Model, isGBC bool, opts ...Option) (*Device, error) {
	cfg := &config{
		now:   time.Now,
		model: model,
		isGBC: isGBC,
		log:   newDefaultLogger(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	now := func() int64 { return cfg.now().Unix() }
	cart, err := cartridge.NewCartridge(rom, now, cfg.skipChecksum)
	if err != nil {
		return nil, err
	}

	if !cfg.isGBC && cart.Header().GameboyColorOnly() {
		return nil, cartridge.ErrModeMismatch
	}

	gbcCompat := cfg.isGBC && !cart.Header().GameboyColor()

	d := &Device{
		Cart:  cart,
		model: cfg.model,
		log:   cfg.log,
	}

	d.irq = interrupts.NewService()
	d.sch = scheduler.NewScheduler()
	d.apu = apu.NewAPU()
	d.apu.SetModel(d.model)
	d.MMU = mmu.NewMMU(cart, d.apu, cfg.isGBC, gbcCompat)
	d.MMU.Log = cfg.log
	d.pad = joypad.New(d.irq)
	d.tim = timer.NewController(d.irq, d.sch)
	d.ser = serial.NewController(d.irq)
	d.ppu = ppu.New(d.MMU, d.irq)

	d.hdma = ppu.NewHDMA(d.MMU, d.ppu, d.sch)
	d.ppu.AttachHDMA(d.hdma)

	d.MMU.AttachVideo(d.ppu)
	d.MMU.AttachRegisters(types.CollectHardwareRegisters())
	d.apu.AttachBus(d.MMU)

	d.CPU = cpu.NewCPU(d.MMU, d.irq, d.tim, d.ppu, d.apu, d.ser, d.sch)
	d.resetToEntryPoint()

	if !cfg.isGBC || gbcCompat {
		d.ppu.LoadCompatibilityPalette()
	}

	d.ppu.StartRendering()

	if cfg.printer != nil {
		printer := cfg.printer
		d.ser.SetCallback(func(out uint8) (uint8, bool) {
			return printer.Feed(out), true
		})
	}

	return d, nil
}

// resetToEntryPoint seeds the CPU's registers the way the boot ROM would
// leave them at PC=0x0100; this tree has no boot ROM image to execute.
func (d *Device) resetToEntryPoint() {
	regs := d.model.Registers()
	d.CPU.A, d.CPU.F = regs[0], regs[1]
	d.CPU.B, d.CPU.C = regs[2], regs[3]
	d.CPU.D, d.CPU.E = regs[4], regs[5]
	d.CPU.H, d.CPU.L = regs[6], regs[7]
	d.CPU.SP = 0xFFFE
	d.CPU.PC = 0x0100
}

// Step advances the Device by a single CPU instruction and returns the
// number of T-cycles it took. The PPU, APU, timer, DMA/HDMA engines and
// scheduler are all ticked internally as a side effect.
func (d *Device) Step() uint8 {
	return d.CPU.Step()
}

// KeyDown presses the given button.
func (d *Device) KeyDown(button joypad.Button) {
	d.pad.Press(button)
}

// KeyUp releases the given button.
func (d *Device) KeyUp(button joypad.Button) {
	d.pad.Release(button)
}

// SetAudioPlayer attaches the host's audio sink. Until one is attached,
// generated samples are discarded.
func (d *Device) SetAudioPlayer(player apu.AudioPlayer) {
	d.apu.SetAudioPlayer(player)
}

// ClearAudioPlayer detaches the current audio sink, if any.
func (d *Device) ClearAudioPlayer() {
	d.apu.ClearAudioPlayer()
}

// SetSerialCallback attaches a link-cable partner, or an accessory such
// as accessories.Printer, to the serial port.
func (d *Device) SetSerialCallback(cb serial.Callback) {
	d.ser.SetCallback(cb)
}

// ClearSerialCallback detaches the serial port's link partner.
func (d *Device) ClearSerialCallback() {
	d.ser.ClearCallback()
}

// SyncAudio tells the mixer that its next sample belongs to a host that
// is ready to consume it: the APU will honour the attached AudioPlayer's
// underflow state for that one sample instead of flushing unconditionally.
// It does not power the APU on or off; a game that wrote 0 to NR52 stays
// silent regardless of how often a host calls SyncAudio.
func (d *Device) SyncAudio() {
	d.apu.SyncAudio()
}

// HasFrame reports whether a new frame is ready in Frame.
func (d *Device) HasFrame() bool {
	return d.ppu.HasFrame()
}

// Frame returns the most recently completed frame and clears the ready
// flag. Pixels are packed [row][col][3]uint8 RGB.
func (d *Device) Frame() [ScreenHeight][ScreenWidth][3]uint8 {
	frame := d.ppu.PreparedFrame
	d.ppu.ClearRefresh()
	return frame
}

// CheckAndResetRAMUpdated reports whether the cartridge's battery-backed
// RAM has changed since the last call, clearing the flag as a side
// effect. It hashes the RAM payload with xxhash rather than trusting the
// MBC's raw dirty bit, so a write that round-trips to the same bytes -
// a save state loaded back over itself, for instance - does not trigger
// a spurious flush.
func (d *Device) CheckAndResetRAMUpdated() bool {
	if !d.Cart.IsBatteryBacked() {
		return false
	}
	// drain the MBC's own dirty bit so it doesn't accumulate across
	// calls; the hash comparison below is authoritative.
	d.Cart.CheckAndResetRAMUpdated()

	sum := xxhash.Sum64(d.Cart.DumpRAM())
	changed := !d.haveRAMHash || sum != d.lastRAMHash
	d.lastRAMHash = sum
	d.haveRAMHash = true
	return changed
}

// DumpRAM returns the cartridge's battery-backed RAM, suitable for
// writing to a save file. It returns nil if the cartridge has no
// battery-backed RAM.
func (d *Device) DumpRAM() []byte {
	if !d.Cart.IsBatteryBacked() {
		return nil
	}
	return d.Cart.DumpRAM()
}

// LoadRAM restores battery-backed RAM previously returned by DumpRAM.
func (d *Device) LoadRAM(data []byte) error {
	return d.Cart.LoadRAM(data)
}

// Serialize captures the Device's execution state - everything needed to
// resume emulation from this exact point, other than the cartridge
// ROM/RAM and any host-side callbacks - as a byte slice.
func (d *Device) Serialize() []byte {
	s := types.NewState()
	for _, stater := range d.staters() {
		stater.Save(s)
	}
	return s.Bytes()
}

// Deserialize restores a state previously produced by Serialize. The
// subsystems are loaded in the same fixed order they were saved in.
func (d *Device) Deserialize(data []byte) error {
	s := types.StateFromBytes(data)
	for _, stater := range d.staters() {
		stater.Load(s)
	}
	return nil
}

// staters lists every subsystem that participates in Serialize, in a
// fixed order. The attached audio sink and serial callback are host-side
// concerns and are never part of the saved state.
func (d *Device) staters() []types.Stater {
	return []types.Stater{
		d.CPU,
		d.irq,
		d.MMU,
		d.pad,
		d.tim,
		d.ser,
	}
}

func newDefaultLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
	}
	return l
}
