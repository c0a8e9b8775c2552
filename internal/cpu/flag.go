package cpu

import "github.com/thelolagemann/gomeboy/pkg/utils"

type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F = utils.Reset(c.F, flag)
	c.F &= 0xF0
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F = utils.Set(c.F, flag)
	c.F &= 0xF0 // the lower 4 bits of the F register are always 0
}

// setFlags rewrites the F register from the four flag results of an
// operation.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	v := uint8(0)
	if zero {
		v |= 1 << FlagZero
	}
	if subtract {
		v |= 1 << FlagSubtract
	}
	if halfCarry {
		v |= 1 << FlagHalfCarry
	}
	if carry {
		v |= 1 << FlagCarry
	}
	c.F = v
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&(1<<flag) != 0
}
