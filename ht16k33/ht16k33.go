// Package ht16k33 defines the command encoding of the Holtek HT16K33
// 16*8 LED controller, the chip behind the common LED matrix and
// seven-segment "backpack" boards.
//
// Every transaction on the bus starts with a command byte: the upper
// bits select the command, the lower bits carry that command's options
// or a display RAM address offset OR'd over the base command.
package ht16k33

// RowsSize is the number of addressable display RAM rows on the chip.
const RowsSize = 16

// DefaultAddr is the 7-bit bus address with all three address pins
// left open.
const DefaultAddr uint16 = 0x70

// Command bytes.
const (
	CmdDispRAM   byte = 0x00 // display data address pointer
	CmdSystem    byte = 0x20 // system setup (oscillator)
	CmdKeyRAM    byte = 0x40 // key data address pointer
	CmdINTFlag   byte = 0x60 // INT flag address pointer
	CmdDispSetup byte = 0x80 // display setup (on/off, blink)
	CmdRowInt    byte = 0xA0 // ROW/INT output pin function
	CmdDimming   byte = 0xE0 // digital dimming (pulse width)
)

// System setup options.
const (
	OscillatorOff byte = 0x00
	OscillatorOn  byte = 0x01
)

// Display setup options.
const (
	DisplayOff  byte = 0x00
	DisplayOn   byte = 0x01
	Blink2Hz    byte = 0x02
	Blink1Hz    byte = 0x04
	BlinkHalfHz byte = 0x06
)

// DispRAMAddr returns the display data address pointer command
// selecting row. Only the low 4 bits of row are significant.
func DispRAMAddr(row byte) byte {
	return CmdDispRAM | (row & 0x0F)
}

// DimmingSet returns the dimming command for a duty level of 0 (1/16
// duty, dimmest) through 15 (16/16 duty).
func DimmingSet(level byte) byte {
	return CmdDimming | (level & 0x0F)
}

// BlinkRate returns the display setup command for the given blink
// option bits, keeping the display on.
func BlinkRate(rate byte) byte {
	return CmdDispSetup | DisplayOn | (rate & 0x06)
}
