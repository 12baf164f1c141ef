package i2c

// Op is a single element of a bus transaction: either a write of Buf
// to the device or a read that fills Buf from the device.
type Op struct {
	// IsRead selects the direction; when false, Buf is written out.
	IsRead bool
	Buf    []byte
}

// Write returns a write operation carrying p.
func Write(p []byte) Op { return Op{Buf: p} }

// Read returns a read operation filling p.
func Read(p []byte) Op { return Op{IsRead: true, Buf: p} }

// Represents a synchronous connection to a single I2C bus.
// A Bus has no internal locking; callers that share one Bus across
// goroutines must serialize access themselves, or wrap the Bus in a
// Queue which executes commands in order on one goroutine.
type Bus interface {
	// Closes the bus connection.
	Close() error

	// Tx performs ops against the device at addr as one bus
	// transaction, in order, with a repeated START between operations
	// and a STOP at the end. Implementations must not reorder the
	// operations; in particular a write/read pair stays adjacent.
	Tx(addr uint16, ops []Op) error
}

// WriteBytes performs a single-write transaction.
func WriteBytes(b Bus, addr uint16, p []byte) error {
	return b.Tx(addr, []Op{Write(p)})
}

// WriteRead performs a write followed by a read in one transaction,
// the usual register/pointer-setup access shape.
func WriteRead(b Bus, addr uint16, w []byte, r []byte) error {
	return b.Tx(addr, []Op{Write(w), Read(r)})
}
