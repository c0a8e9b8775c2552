package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/types"
)

func newTestJoypad(t *testing.T) (*State, *interrupts.Service) {
	t.Helper()
	irq := interrupts.NewService()
	pad := New(irq)
	// drain the global hardware-register table so registrations don't
	// leak between tests
	types.CollectHardwareRegisters()
	return pad, irq
}

func TestActionButtons(t *testing.T) {
	pad, _ := newTestJoypad(t)

	actions := []Button{ButtonA, ButtonB, ButtonSelect, ButtonStart}
	for i, button := range actions {
		pad.Press(button)

		pad.Write(0x00)
		assert.EqualValues(t, 0xCF&^(1<<i), pad.Read(), "both rows selected")

		pad.Write(0x10)
		assert.EqualValues(t, 0xDF&^(1<<i), pad.Read(), "action row selected")

		pad.Write(0x20)
		assert.EqualValues(t, 0xEF, pad.Read(), "direction row selected")

		pad.Write(0x30)
		assert.EqualValues(t, 0xFF, pad.Read(), "no row selected")

		pad.Release(button)
	}
}

func TestDirectionButtons(t *testing.T) {
	pad, _ := newTestJoypad(t)

	directions := []Button{ButtonRight, ButtonLeft, ButtonUp, ButtonDown}
	for i, button := range directions {
		pad.Press(button)

		pad.Write(0x00)
		assert.EqualValues(t, 0xCF&^(1<<i), pad.Read(), "both rows selected")

		pad.Write(0x10)
		assert.EqualValues(t, 0xDF, pad.Read(), "action row selected")

		pad.Write(0x20)
		assert.EqualValues(t, 0xEF&^(1<<i), pad.Read(), "direction row selected")

		pad.Write(0x30)
		assert.EqualValues(t, 0xFF, pad.Read(), "no row selected")

		pad.Release(button)
	}
}

func TestInterruptOnPress(t *testing.T) {
	pad, irq := newTestJoypad(t)

	// pressing a button on an unselected row must not interrupt
	pad.Write(0x20) // direction row selected
	pad.Press(ButtonA)
	assert.Zero(t, irq.Flag&(1<<interrupts.JoypadFlag))
	pad.Release(ButtonA)

	// pressing one on the selected row must
	pad.Press(ButtonRight)
	assert.NotZero(t, irq.Flag&(1<<interrupts.JoypadFlag))
}

func TestInterruptOnRowSelect(t *testing.T) {
	pad, irq := newTestJoypad(t)

	// a held button becoming visible through a row-select write also
	// fires the interrupt
	pad.Write(0x30)
	pad.Press(ButtonStart)
	assert.Zero(t, irq.Flag&(1<<interrupts.JoypadFlag))

	pad.Write(0x10)
	assert.NotZero(t, irq.Flag&(1<<interrupts.JoypadFlag))
}
