package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/types"
)

func newTestSerial(t *testing.T) (*Controller, *interrupts.Service, types.HardwareRegisters) {
	t.Helper()
	irq := interrupts.NewService()
	ser := NewController(irq)
	return ser, irq, types.CollectHardwareRegisters()
}

func TestTransferWithPeer(t *testing.T) {
	ser, irq, regs := newTestSerial(t)

	var sent uint8
	ser.SetCallback(func(out uint8) (uint8, bool) {
		sent = out
		return 0x55, true
	})

	regs.Write(types.SB, 0xAB)
	regs.Write(types.SC, 0x81)

	assert.EqualValues(t, 0xAB, sent, "peer sees the byte held in SB")
	assert.EqualValues(t, 0x55, regs.Read(types.SB), "peer's reply replaces SB")
	assert.NotZero(t, irq.Flag&(1<<interrupts.SerialFlag))
}

func TestTransferWithoutPeer(t *testing.T) {
	ser, irq, regs := newTestSerial(t)

	regs.Write(types.SB, 0xAB)
	regs.Write(types.SC, 0x81)
	assert.EqualValues(t, 0xAB, regs.Read(types.SB), "no peer, SB unchanged")
	assert.Zero(t, irq.Flag&(1<<interrupts.SerialFlag))

	// a peer that declines to answer behaves the same
	ser.SetCallback(func(out uint8) (uint8, bool) { return 0, false })
	regs.Write(types.SC, 0x81)
	assert.EqualValues(t, 0xAB, regs.Read(types.SB))
	assert.Zero(t, irq.Flag&(1<<interrupts.SerialFlag))
}

func TestControlReadsHighBits(t *testing.T) {
	_, _, regs := newTestSerial(t)

	regs.Write(types.SC, 0x00)
	assert.EqualValues(t, 0x7E, regs.Read(types.SC))
}

func TestClearCallback(t *testing.T) {
	ser, irq, regs := newTestSerial(t)

	called := false
	ser.SetCallback(func(out uint8) (uint8, bool) {
		called = true
		return 0, true
	})
	ser.ClearCallback()

	regs.Write(types.SC, 0x81)
	require.False(t, called)
	assert.Zero(t, irq.Flag&(1<<interrupts.SerialFlag))
}
