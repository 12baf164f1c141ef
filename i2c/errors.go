package i2c

import (
	"errors"
	"fmt"
)

var ErrBusClosed = errors.New("i2c: bus closed")

// TerminalError marks an error after which the bus connection is dead:
// device unplugged, socket torn down. A Queue stops executing commands
// once a command returns one.
type TerminalError struct {
	Err error
}

func (e *TerminalError) Unwrap() error { return e.Err }
func (e *TerminalError) Error() string {
	if e.Err == nil {
		return "i2c: terminal bus error"
	}
	return fmt.Sprintf("i2c: terminal bus error: %v", e.Err)
}
