package cpu

// rotateLeftCarry rotates the given value left by 1 bit. Bit 7 is copied
// to both the carry flag and the least significant bit.
//
//	RLC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftCarry(value uint8) uint8 {
	carry := value >> 7
	rotated := value<<1 | carry
	c.setFlags(rotated == 0, false, false, carry == 1)
	return rotated
}

// rotateRightCarry rotates the given value right by 1 bit. Bit 0 is
// copied to both the carry flag and the most significant bit.
//
//	RRC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightCarry(value uint8) uint8 {
	carry := value & 1
	rotated := value>>1 | carry<<7
	c.setFlags(rotated == 0, false, false, carry == 1)
	return rotated
}

// rotateLeftThroughCarry rotates the given value left by 1 bit through
// the carry flag.
//
//	RL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry(value uint8) uint8 {
	rotated := value << 1
	if c.isFlagSet(FlagCarry) {
		rotated |= 1
	}
	c.setFlags(rotated == 0, false, false, value&0x80 != 0)
	return rotated
}

// rotateRightThroughCarry rotates the given value right by 1 bit through
// the carry flag.
//
//	RR n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightThroughCarry(value uint8) uint8 {
	rotated := value >> 1
	if c.isFlagSet(FlagCarry) {
		rotated |= 0x80
	}
	c.setFlags(rotated == 0, false, false, value&1 != 0)
	return rotated
}

// rotateLeftCarryAccumulator rotates the A Register left by 1 bit, bit 7
// going to both the carry flag and bit 0. Unlike the CB-prefixed
// rotates, the zero flag is always reset.
//
//	RLCA
func (c *CPU) rotateLeftCarryAccumulator() {
	carry := c.A >> 7
	c.A = c.A<<1 | carry
	c.setFlags(false, false, false, carry == 1)
}

// rotateLeftAccumulatorThroughCarry rotates the A Register left by 1 bit
// through the carry flag. The zero flag is always reset.
//
//	RLA
func (c *CPU) rotateLeftAccumulatorThroughCarry() {
	carry := c.A&0x80 != 0
	c.A <<= 1
	if c.isFlagSet(FlagCarry) {
		c.A |= 1
	}
	c.setFlags(false, false, false, carry)
}

// rotateRightAccumulator rotates the A Register right by 1 bit, bit 0
// going to both the carry flag and bit 7. The zero flag is always reset.
//
//	RRCA
func (c *CPU) rotateRightAccumulator() {
	carry := c.A & 1
	c.A = c.A>>1 | carry<<7
	c.setFlags(false, false, false, carry == 1)
}

// rotateRightAccumulatorThroughCarry rotates the A Register right by 1
// bit through the carry flag. The zero flag is always reset.
//
//	RRA
func (c *CPU) rotateRightAccumulatorThroughCarry() {
	carry := c.A&1 != 0
	c.A >>= 1
	if c.isFlagSet(FlagCarry) {
		c.A |= 0x80
	}
	c.setFlags(false, false, false, carry)
}
