package i2c

// Response reports the outcome of a completed read or write request.
type Response struct {
	IsWrite bool // was the request a read or write?
	Addr    uint16
	Data    []byte // the data that was read or written
}

type Completed func(Response)

// WriteRequest writes Data to the device at Addr. The first byte of
// Data is conventionally the device's command/address byte.
type WriteRequest struct {
	Addr      uint16
	Data      []byte
	Completed Completed
}

// ReadRequest performs an address-setup write of Command followed by
// a read of Size bytes from the device at Addr, as one transaction.
type ReadRequest struct {
	Addr      uint16
	Command   byte
	Size      uint8
	Completed Completed
}
