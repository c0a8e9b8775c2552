// Package serial provides the Game Boy's link cable port. Real hardware
// shifts data one bit at a time against an external clock; since
// nothing outside the cable can observe that timing, the controller
// here models a transfer as an atomic byte-for-byte exchange that
// happens the instant SC requests one using the internal clock.
package serial

import (
	"github.com/thelolagemann/gomeboy/internal/interrupts"
	"github.com/thelolagemann/gomeboy/internal/types"
)

// Callback is invoked synchronously whenever the Game Boy starts a
// transfer with the internal clock. out is the byte currently held in
// SB. If a link partner is attached, it returns the byte shifted back
// and ok true. If ok is false, SB is left unchanged and no interrupt is
// raised, matching real hardware transmitting into an open cable.
type Callback func(out uint8) (in uint8, ok bool)

// Controller is the Game Boy side of the link cable. It registers SB
// (0xFF01) and SC (0xFF02) and drives an attached Callback.
type Controller struct {
	data    uint8
	control uint8

	irq      *interrupts.Service
	callback Callback
}

// NewController returns a new link cable controller.
func NewController(irq *interrupts.Service) *Controller {
	c := &Controller{
		irq:     irq,
		control: 0x7E,
	}
	types.RegisterHardware(types.SB, func(v uint8) {
		c.data = v
	}, func() uint8 {
		return c.data
	})
	types.RegisterHardware(types.SC, func(v uint8) {
		c.control = v | 0b0111_1110
		if v&0x81 == 0x81 {
			c.transfer()
		}
	}, func() uint8 {
		return c.control
	})
	return c
}

// SetCallback attaches the link partner. Attaching again replaces any
// previous callback.
func (c *Controller) SetCallback(cb Callback) {
	c.callback = cb
}

// ClearCallback detaches the link partner.
func (c *Controller) ClearCallback() {
	c.callback = nil
}

func (c *Controller) transfer() {
	if c.callback != nil {
		if in, ok := c.callback(c.data); ok {
			c.data = in
			c.irq.Request(interrupts.SerialFlag)
		}
	}
	c.control &^= types.Bit7
}

var _ types.Stater = (*Controller)(nil)

// Save writes SB and SC to state. The attached callback, if any, is a
// host-side concern and is not part of the saved state.
func (c *Controller) Save(state *types.State) {
	state.Write8(c.data)
	state.Write8(c.control)
}

// Load restores SB and SC from state.
func (c *Controller) Load(state *types.State) {
	c.data = state.Read8()
	c.control = state.Read8()
}
