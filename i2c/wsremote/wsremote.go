// Package wsremote drives an I2C bus exported by a remote helper
// daemon over a WebSocket, with JSON-framed commands and hex-encoded
// payloads. It registers as the "wsremote" driver; the bus name is the
// daemon's URL, e.g. "ws://rpi.local:8190/i2c/1".
package wsremote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"syscall"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"

	"backpack/i2c"
	"backpack/util"
)

const driverName = "wsremote"

type Driver struct{}

func (d *Driver) Open(name string) (i2c.Bus, error) {
	b := &Bus{urlstr: name}
	if err := b.dial(); err != nil {
		return nil, err
	}
	return b, nil
}

type Bus struct {
	urlstr string

	ws      net.Conn
	r       *wsutil.Reader
	w       *wsutil.Writer
	encoder *json.Encoder
	decoder *json.Decoder
}

type busCommand struct {
	Opcode string  `json:"Opcode"`
	Addr   uint16  `json:"Addr"`
	Ops    []busOp `json:"Ops,omitempty"`
}

type busOp struct {
	Read bool          `json:"Read,omitempty"`
	Len  int           `json:"Len,omitempty"`
	Data util.HexBytes `json:"Data,omitempty"`
}

type busResult struct {
	Status  string          `json:"Status"`
	Results []util.HexBytes `json:"Results,omitempty"`
}

// makeCommand translates an operation list into the wire command; read
// ops send only their length, write ops send their payload.
func makeCommand(addr uint16, ops []i2c.Op) busCommand {
	cmd := busCommand{
		Opcode: "Tx",
		Addr:   addr,
		Ops:    make([]busOp, 0, len(ops)),
	}
	for _, op := range ops {
		if op.IsRead {
			cmd.Ops = append(cmd.Ops, busOp{Read: true, Len: len(op.Buf)})
		} else {
			cmd.Ops = append(cmd.Ops, busOp{Data: util.HexBytes(op.Buf)})
		}
	}
	return cmd
}

func (b *Bus) dial() (err error) {
	log.Printf("wsremote: dial %s\n", b.urlstr)
	b.ws, _, _, err = ws.Dial(context.Background(), b.urlstr)
	if err != nil {
		err = fmt.Errorf("wsremote: dial: %w", err)
		return
	}

	b.r = wsutil.NewClientSideReader(b.ws)
	b.w = wsutil.NewWriter(b.ws, ws.StateClientSide, ws.OpText)
	b.encoder = json.NewEncoder(b.w)
	b.decoder = json.NewDecoder(b.r)
	return
}

func (b *Bus) Close() (err error) {
	if b.ws != nil {
		err = b.ws.Close()
	}

	b.ws = nil
	b.r = nil
	b.w = nil
	b.encoder = nil
	b.decoder = nil

	return
}

func (b *Bus) Tx(addr uint16, ops []i2c.Op) (err error) {
	if b.ws == nil {
		if err = b.dial(); err != nil {
			return
		}
	}

	cmd := makeCommand(addr, ops)
	if err = b.send(cmd); err != nil {
		return
	}

	var res busResult
	if err = b.decoder.Decode(&res); err != nil {
		err = b.fail(fmt.Errorf("wsremote: %s result decode: %w", cmd.Opcode, err))
		return
	}
	if res.Status != "ok" {
		err = fmt.Errorf("wsremote: remote bus error: %s", res.Status)
		return
	}

	// distribute read results back into the read ops, in order:
	ri := 0
	for _, op := range ops {
		if !op.IsRead {
			continue
		}
		if ri >= len(res.Results) {
			err = fmt.Errorf("wsremote: missing read result %d", ri)
			return
		}
		copy(op.Buf, res.Results[ri])
		ri++
	}
	return
}

func (b *Bus) send(cmd busCommand) (err error) {
	err = b.encoder.Encode(cmd)
	if err != nil {
		err = b.fail(fmt.Errorf("wsremote: %s command encode: %w", cmd.Opcode, err))
		return
	}

	err = b.w.Flush()
	if err != nil {
		err = b.fail(fmt.Errorf("wsremote: %s command flush: %w", cmd.Opcode, err))
		return
	}
	return
}

// fail tears the socket down on non-temporary socket errors and marks
// the error terminal so a queue stops issuing commands.
func (b *Bus) fail(err error) error {
	var serr syscall.Errno
	if errors.As(err, &serr) && !serr.Temporary() {
		b.Close()
		return &i2c.TerminalError{Err: err}
	}
	return err
}

func init() {
	i2c.Register(driverName, &Driver{})
}
