package uartbridge

import "errors"

// Bridge firmware framing. Every request is a fixed 8-byte header with
// any write payload following immediately; the firmware answers with a
// single status byte, then the requested read data.
//
//	0..3  magic "I2CB"
//	4     opcode
//	5     7-bit device address
//	6     write payload length
//	7     read length
const (
	headerLen  = 8
	maxDataLen = 255

	OpNOP  byte = 0x00
	OpTX   byte = 0x01
	OpINFO byte = 0x02

	StatusOK       byte = 0x00
	StatusNAK      byte = 0x01
	StatusBadFrame byte = 0x02
)

var magic = [4]byte{'I', '2', 'C', 'B'}

var ErrFrameTooLarge = errors.New("uartbridge: transfer exceeds one frame")

// txFrame builds an OpTX request frame for a write of wbuf followed by
// a read of rlen bytes; either side may be empty.
func txFrame(addr uint16, wbuf []byte, rlen int) ([]byte, error) {
	if len(wbuf) > maxDataLen || rlen > maxDataLen {
		return nil, ErrFrameTooLarge
	}

	frame := make([]byte, 0, headerLen+len(wbuf))
	frame = append(frame, magic[:]...)
	frame = append(frame, OpTX, byte(addr), byte(len(wbuf)), byte(rlen))
	frame = append(frame, wbuf...)
	return frame, nil
}

// infoFrame builds the OpINFO probe request; the firmware answers with
// status plus its two version bytes.
func infoFrame() []byte {
	return []byte{magic[0], magic[1], magic[2], magic[3], OpINFO, 0, 0, 2}
}
