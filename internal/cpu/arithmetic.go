package cpu

// add adds the given value (plus the carry flag, if carry is true) to the
// A Register.
//
//	ADD A, n / ADC A, n
//	n = A, B, C, D, E, H, L, (HL), d8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(value uint8, carry bool) {
	carryIn := uint8(0)
	if carry && c.isFlagSet(FlagCarry) {
		carryIn = 1
	}
	result := uint16(c.A) + uint16(value) + uint16(carryIn)
	c.setFlags(
		result&0xFF == 0,
		false,
		(c.A&0xF)+(value&0xF)+carryIn > 0xF,
		result > 0xFF,
	)
	c.A = uint8(result)
}

// sub subtracts the given value (plus the carry flag, if carry is true)
// from the A Register.
//
//	SUB n / SBC A, n
//	n = A, B, C, D, E, H, L, (HL), d8
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(value uint8, carry bool) {
	carryIn := uint8(0)
	if carry && c.isFlagSet(FlagCarry) {
		carryIn = 1
	}
	result := int16(c.A) - int16(value) - int16(carryIn)
	c.setFlags(
		result&0xFF == 0,
		true,
		int16(c.A&0xF)-int16(value&0xF)-int16(carryIn) < 0,
		result < 0,
	)
	c.A = uint8(result)
}

// increment increments the given value by 1.
//
//	INC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Not affected.
func (c *CPU) increment(value uint8) uint8 {
	incremented := value + 1
	c.setFlags(incremented == 0, false, value&0xF == 0xF, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement decrements the given value by 1.
//
//	DEC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(value uint8) uint8 {
	decremented := value - 1
	c.setFlags(decremented == 0, true, value&0xF == 0, c.isFlagSet(FlagCarry))
	return decremented
}

// incrementNN increments the given RegisterPair by 1. The 16-bit
// increment spends one internal machine cycle with no bus activity.
//
//	INC nn
//	nn = BC, DE, HL
func (c *CPU) incrementNN(register *RegisterPair) {
	c.handleOAMCorruption(register.Uint16())
	register.SetUint16(register.Uint16() + 1)
	c.tickCycle()
}

// decrementNN decrements the given RegisterPair by 1.
//
//	DEC nn
//	nn = BC, DE, HL
func (c *CPU) decrementNN(register *RegisterPair) {
	c.handleOAMCorruption(register.Uint16())
	register.SetUint16(register.Uint16() - 1)
	c.tickCycle()
}

// addHLRR adds the given RegisterPair to the HL RegisterPair.
//
//	ADD HL, rr
//	rr = BC, DE, HL
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHLRR(register *RegisterPair) {
	c.HL.SetUint16(c.addUint16(c.HL.Uint16(), register.Uint16()))
	c.tickCycle()
}
