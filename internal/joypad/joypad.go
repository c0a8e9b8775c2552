// Package joypad provides an emulation of the Game Boy joypad. It is
// responsible for reading back the state of the buttons through the
// select matrix at 0xFF00, and for raising the joypad interrupt when a
// pressed button becomes visible on the selected row.
package joypad

import (
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonRight is the Right button, bit 0 of the direction row.
	ButtonRight Button = iota
	// ButtonLeft is the Left button, bit 1 of the direction row.
	ButtonLeft
	// ButtonUp is the Up button, bit 2 of the direction row.
	ButtonUp
	// ButtonDown is the Down button, bit 3 of the direction row.
	ButtonDown
	// ButtonA is the A button, bit 0 of the action row.
	ButtonA
	// ButtonB is the B button, bit 1 of the action row.
	ButtonB
	// ButtonSelect is the Select button, bit 2 of the action row.
	ButtonSelect
	// ButtonStart is the Start button, bit 3 of the action row.
	ButtonStart
)

// State represents the state of the joypad. The two 4-bit rows are
// active-low: a cleared bit is a held button. The register shadow holds
// the row-select bits (4 and 5, also active-low) in its high nibble and
// the merged row readback in its low nibble.
type State struct {
	directions uint8
	actions    uint8
	register   uint8

	irq *interrupts.Service
}

// New returns a new joypad state and registers the P1 (0xFF00) hardware
// register for it.
func New(irq *interrupts.Service) *State {
	s := &State{
		directions: 0x0F,
		actions:    0x0F,
		register:   0xFF,
		irq:        irq,
	}
	types.RegisterHardware(types.P1, s.Write, s.Read)
	return s
}

// Read returns the current value of the P1 register: the row-select
// bits as last written, the merged button rows in the low nibble, and
// the unused bits 6-7 high.
func (s *State) Read() uint8 {
	return s.register
}

// Write updates the row-select bits; bits outside 4-5 are ignored.
func (s *State) Write(value uint8) {
	s.register = (s.register & 0xCF) | (value & 0x30)
	s.update()
}

// update recomputes the low nibble of the register from the selected
// rows, requesting the joypad interrupt when a pressed button first
// becomes visible.
func (s *State) update() {
	old := s.register & 0x0F
	merged := uint8(0x0F)

	if s.register&0x10 == 0 {
		merged &= s.directions
	}
	if s.register&0x20 == 0 {
		merged &= s.actions
	}

	if old == 0x0F && merged != 0x0F {
		s.irq.Request(interrupts.JoypadFlag)
	}

	s.register = (s.register & 0xF0) | merged
}

// row returns the row and bit mask the given button lives on.
func (s *State) row(button Button) (*uint8, uint8) {
	if button <= ButtonDown {
		return &s.directions, 1 << button
	}
	return &s.actions, 1 << (button - ButtonA)
}

// Press presses the given button, requesting the joypad interrupt if
// the game has its row selected.
func (s *State) Press(button Button) {
	row, mask := s.row(button)
	*row &^= mask
	s.update()
}

// Release releases the given button.
func (s *State) Release(button Button) {
	row, mask := s.row(button)
	*row |= mask
	s.update()
}

var _ types.Stater = (*State)(nil)

// Load restores the joypad's register shadow and button rows.
func (s *State) Load(state *types.State) {
	s.register = state.Read8()
	s.directions = state.Read8()
	s.actions = state.Read8()
}

// Save writes the joypad's register shadow and button rows.
func (s *State) Save(state *types.State) {
	state.Write8(s.register)
	state.Write8(s.directions)
	state.Write8(s.actions)
}
