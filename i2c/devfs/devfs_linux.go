//go:build linux

package devfs

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"backpack/i2c"
)

const driverName = "devfs"

// ioctls and message flags from the kernel's i2c-dev interface.
const (
	ioctlFuncs = 0x0705 // I2C_FUNCS
	ioctlRdwr  = 0x0707 // I2C_RDWR

	flagRead = 0x0001 // I2C_M_RD

	funcI2C = 0x00000001 // I2C_FUNC_I2C
)

// i2cMsg mirrors struct i2c_msg; the kernel reads the vector of these
// passed through I2C_RDWR.
type i2cMsg struct {
	addr  uint16
	flags uint16
	len   uint16
	buf   uintptr
}

type rdwrIoctlData struct {
	msgs  uintptr
	nmsgs uint32
}

type Driver struct{}

// Open opens a kernel I2C character device, e.g. "/dev/i2c-1".
func (d *Driver) Open(name string) (i2c.Bus, error) {
	f, err := os.OpenFile(name, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("devfs: %w", err)
	}

	b := &Bus{f: f}
	if err = b.ioctl(ioctlFuncs, uintptr(unsafe.Pointer(&b.funcs))); err != nil {
		f.Close()
		return nil, fmt.Errorf("devfs: %s: query adapter functionality: %w", name, err)
	}
	if b.funcs&funcI2C == 0 {
		f.Close()
		return nil, fmt.Errorf("devfs: %s: adapter does not support plain I2C transfers", name)
	}

	return b, nil
}

type Bus struct {
	f     *os.File
	funcs uint64
}

func (b *Bus) Close() error {
	return b.f.Close()
}

// Tx issues ops as one I2C_RDWR transfer so the kernel keeps a
// repeated START between the operations.
func (b *Bus) Tx(addr uint16, ops []i2c.Op) error {
	if len(ops) == 0 {
		return nil
	}

	msgs := make([]i2cMsg, len(ops))
	for i, op := range ops {
		msgs[i].addr = addr
		msgs[i].len = uint16(len(op.Buf))
		if op.IsRead {
			msgs[i].flags = flagRead
		}
		if len(op.Buf) > 0 {
			msgs[i].buf = uintptr(unsafe.Pointer(&op.Buf[0]))
		}
	}

	data := rdwrIoctlData{
		msgs:  uintptr(unsafe.Pointer(&msgs[0])),
		nmsgs: uint32(len(msgs)),
	}
	if err := b.ioctl(ioctlRdwr, uintptr(unsafe.Pointer(&data))); err != nil {
		return fmt.Errorf("devfs: transfer with device $%02x failed: %w", addr, err)
	}
	return nil
}

func (b *Bus) ioctl(req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, b.f.Fd(), req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}

func init() {
	i2c.Register(driverName, &Driver{})
}
