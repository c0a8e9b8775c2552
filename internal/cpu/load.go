package cpu

// loadRegisterToRegister copies the value of the source Register into the
// destination Register.
//
//	LD r, r'
//	r, r' = A, B, C, D, E, H, L
func (c *CPU) loadRegisterToRegister(register *Register, value *Register) {
	*register = *value
}

// loadRegister8 loads the next operand byte into the given Register.
//
//	LD r, d8
//	r = A, B, C, D, E, H, L
func (c *CPU) loadRegister8(reg *Register) {
	*reg = c.readOperand()
}

// loadRegister16 loads the next two operand bytes into the given
// RegisterPair, low byte first.
//
//	LD rr, d16
//	rr = BC, DE, HL
func (c *CPU) loadRegister16(reg *RegisterPair) {
	low := c.readOperand()
	high := c.readOperand()
	reg.SetUint16(uint16(high)<<8 | uint16(low))
}

// loadMemoryToRegister loads the value at the given memory address into
// the given Register.
//
//	LD r, (rr)
//	r = A, B, C, D, E, H, L
func (c *CPU) loadMemoryToRegister(reg *Register, address uint16) {
	*reg = c.readByte(address)
}

// loadRegisterToMemory stores the given Register value at the given
// memory address.
//
//	LD (rr), r
//	r = A, B, C, D, E, H, L
func (c *CPU) loadRegisterToMemory(value Register, address uint16) {
	c.writeByte(address, value)
}

// loadRegisterToHardware stores the given Register value in the hardware
// register at 0xFF00 + offset.
//
//	LDH (a8), A
//	LD (C), A
func (c *CPU) loadRegisterToHardware(value Register, offset uint8) {
	c.writeByte(0xFF00+uint16(offset), value)
}

// pushNN pushes the two given bytes onto the stack, high byte first. The
// stack-pointer adjustment spends one internal machine cycle before the
// bus writes.
//
//	PUSH nn
//	nn = AF, BC, DE, HL
func (c *CPU) pushNN(high, low uint8) {
	c.tickCycle()
	c.push(high, low)
}

// popNN pops two bytes off the stack into the given Register halves, low
// byte first.
//
//	POP nn
//	nn = AF, BC, DE, HL
func (c *CPU) popNN(high, low *uint8) {
	*low = c.readByte(c.SP)
	c.SP++
	*high = c.readByte(c.SP)
	c.SP++
}
