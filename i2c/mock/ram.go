package mock

import (
	"fmt"

	"backpack/ht16k33"
)

// ramOffset recovers the starting row from a display data address
// pointer command. The offset is OR'd over the base command on the
// wire, so XOR against the base isolates it again.
func ramOffset(command byte) (int, error) {
	offset := int(command ^ ht16k33.CmdDispRAM)
	if offset >= ht16k33.RowsSize {
		return 0, fmt.Errorf("mock: command $%02x does not address display RAM: %w", command, ErrMock)
	}
	return offset, nil
}

// ramWrite stores data starting at offset. The chip auto-increments
// its address pointer after every byte and wraps it past the last row,
// so the modulo applies per step, not once at the end.
func ramWrite(ram *[ht16k33.RowsSize]byte, offset int, data []byte) {
	for _, value := range data {
		ram[offset] = value
		offset = (offset + 1) % len(ram)
	}
}

// ramRead fills buf from ram starting at offset, with the same
// per-step auto-increment and wrap. buf may be longer than the RAM;
// the read keeps wrapping around for as long as the caller asks.
func ramRead(ram *[ht16k33.RowsSize]byte, offset int, buf []byte) {
	for i := range buf {
		buf[i] = ram[offset]
		offset = (offset + 1) % len(ram)
	}
}
