// Package uartbridge drives an I2C bus hanging off a UART-to-I2C
// bridge: a small companion firmware on a USB serial port that
// executes framed bus transactions on the host's behalf. It registers
// as the "uartbridge" driver.
package uartbridge

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"backpack/i2c"
)

const driverName = "uartbridge"

var (
	ErrNoBridgeFound = errors.New("uartbridge: no bridge found among serial ports")

	// Try all the common baud rates in descending order:
	baudRates = []int{
		921600,
		460800,
		230400,
		115200,
		57600,
		38400,
		19200,
		9600,
	}
)

// DetectDevice scans USB serial ports for the bridge firmware's serial
// number prefix.
func DetectDevice() (portName string, err error) {
	var ports []*enumerator.PortDetails

	portName = ""

	ports, err = enumerator.GetDetailedPortsList()
	if err != nil {
		return
	}

	for _, port := range ports {
		if !port.IsUSB {
			continue
		}

		if strings.HasPrefix(port.SerialNumber, "I2CB") {
			portName = port.Name
			err = nil
			return
		}
	}

	return
}

type Driver struct{}

// Open connects to the bridge. name is "port" or "port;baud"; an empty
// port autodetects.
func (d *Driver) Open(name string) (i2c.Bus, error) {
	var err error

	parts := strings.Split(name, ";")

	portName := parts[0]
	if portName == "" {
		portName, err = DetectDevice()
		if err != nil {
			return nil, err
		}
	}
	if portName == "" {
		return nil, ErrNoBridgeFound
	}

	baudRequest := baudRates[0]
	if len(parts) > 1 {
		if n, e := strconv.Atoi(parts[1]); e == nil {
			baudRequest = n
		}
	}

	f := serial.Port(nil)
	for _, baud := range baudRates {
		if baud > baudRequest {
			continue
		}

		f, err = serial.Open(portName, &serial.Mode{
			BaudRate: baud,
			DataBits: 8,
			Parity:   serial.NoParity,
			StopBits: serial.OneStopBit,
		})
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("uartbridge: failed to open serial port at any baud rate: %w", err)
	}

	b := &Bus{f: f}
	if err = b.probe(); err != nil {
		f.Close()
		return nil, err
	}

	return b, nil
}

type Bus struct {
	f serial.Port
}

func (b *Bus) Close() (err error) {
	err = b.f.Close()
	if err != nil {
		return fmt.Errorf("uartbridge: could not close serial port: %w", err)
	}
	return
}

// probe verifies the firmware answers an INFO request before any bus
// traffic goes out.
func (b *Bus) probe() error {
	if err := sendSerial(b.f, infoFrame()); err != nil {
		return fmt.Errorf("uartbridge: INFO send: %w", err)
	}

	rsp := make([]byte, 3)
	if err := recvSerial(b.f, rsp, len(rsp)); err != nil {
		return fmt.Errorf("uartbridge: INFO response: %w", err)
	}
	if rsp[0] != StatusOK {
		return fmt.Errorf("uartbridge: INFO status $%02x", rsp[0])
	}

	log.Printf("uartbridge: firmware %d.%d\n", rsp[1], rsp[2])
	return nil
}

// Tx maps the operation list onto bridge TX frames. A write op
// followed by a read op shares one frame so the firmware keeps a
// repeated START between them on the wire.
func (b *Bus) Tx(addr uint16, ops []i2c.Op) error {
	for i := 0; i < len(ops); i++ {
		var wbuf, rbuf []byte
		if ops[i].IsRead {
			rbuf = ops[i].Buf
		} else {
			wbuf = ops[i].Buf
			if i+1 < len(ops) && ops[i+1].IsRead {
				rbuf = ops[i+1].Buf
				i++
			}
		}

		if err := b.tx(addr, wbuf, rbuf); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bus) tx(addr uint16, wbuf, rbuf []byte) error {
	frame, err := txFrame(addr, wbuf, len(rbuf))
	if err != nil {
		return err
	}

	if err = sendSerial(b.f, frame); err != nil {
		return &i2c.TerminalError{Err: fmt.Errorf("uartbridge: send: %w", err)}
	}

	rsp := make([]byte, 1+len(rbuf))
	if err = recvSerial(b.f, rsp, len(rsp)); err != nil {
		return &i2c.TerminalError{Err: fmt.Errorf("uartbridge: receive: %w", err)}
	}

	switch rsp[0] {
	case StatusOK:
	case StatusNAK:
		return fmt.Errorf("uartbridge: device $%02x did not acknowledge", addr)
	default:
		return fmt.Errorf("uartbridge: status $%02x", rsp[0])
	}

	copy(rbuf, rsp[1:])
	return nil
}

func init() {
	i2c.Register(driverName, &Driver{})
}
