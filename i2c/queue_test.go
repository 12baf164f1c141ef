package i2c

import (
	"errors"
	"log"
	"sync"
	"testing"
	"time"

	"backpack/util"
)

// recordBus records every transaction it sees, in order.
type recordBus struct {
	mu     sync.Mutex
	txs    [][]Op
	closed bool
	txErr  error
}

func (b *recordBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

func (b *recordBus) Tx(addr uint16, ops []Op) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.txErr != nil {
		return b.txErr
	}
	cp := make([]Op, len(ops))
	copy(cp, ops)
	b.txs = append(b.txs, cp)
	return nil
}

func (b *recordBus) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

func (b *recordBus) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.txs)
}

func TestQueueExecutesInOrder(t *testing.T) {
	prev := log.Writer()
	log.SetOutput(util.NewTestingLogger(t))
	defer log.SetOutput(prev)

	bus := &recordBus{}
	q := NewQueue("record", bus)

	var mu sync.Mutex
	var order []byte
	done := make(chan struct{})

	var reqs []WriteRequest
	for i := byte(0); i < 5; i++ {
		i := i
		reqs = append(reqs, WriteRequest{
			Addr: 0x70,
			Data: []byte{0x00, i},
			Completed: func(rsp Response) {
				mu.Lock()
				order = append(order, i)
				if len(order) == 5 {
					close(done)
				}
				mu.Unlock()
			},
		})
	}

	if err := q.MakeWriteCommands(reqs...).EnqueueTo(q); err != nil {
		t.Fatal(err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("writes did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	for i := byte(0); i < 5; i++ {
		if order[i] != i {
			t.Errorf("completion order[%d] = %d, expected %d", i, order[i], i)
		}
	}
	if actual, expected := bus.count(), 5; actual != expected {
		t.Errorf("transaction count = %d, expected %d", actual, expected)
	}
}

func TestQueueClosesBus(t *testing.T) {
	prev := log.Writer()
	log.SetOutput(util.NewTestingLogger(t))
	defer log.SetOutput(prev)

	bus := &recordBus{}
	q := NewQueue("record", bus)

	if err := q.Close(); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(time.Second)
	for !bus.isClosed() {
		if time.Now().After(deadline) {
			t.Fatal("queue never closed the bus")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestQueueStopsOnTerminalError(t *testing.T) {
	prev := log.Writer()
	log.SetOutput(util.NewTestingLogger(t))
	defer log.SetOutput(prev)

	bus := &recordBus{txErr: &TerminalError{Err: errors.New("unplugged")}}
	q := NewQueue("record", bus)

	done := make(chan error, 1)
	err := q.Enqueue(CommandWithCompletion{
		Command: q.MakeWriteCommands(WriteRequest{Addr: 0x70, Data: []byte{0}})[0].Command,
		Completion: func(_ Command, err error) {
			done <- err
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-done:
		var terr *TerminalError
		if !errors.As(err, &terr) {
			t.Errorf("error should be terminal, found [%v]", err)
		}
	case <-time.After(time.Second):
		t.Fatal("completion never fired")
	}

	// the terminal error shuts the queue down and closes the bus:
	deadline := time.Now().Add(time.Second)
	for !bus.isClosed() {
		if time.Now().After(deadline) {
			t.Fatal("queue never closed the bus after terminal error")
		}
		time.Sleep(time.Millisecond)
	}
}
