package i2c

import (
	"errors"
	"fmt"
	"log"
)

const chanSize = 8

// Queue is the asynchronous calling convention over a Bus: commands
// are enqueued and executed one at a time, in order, on a dedicated
// goroutine. Each command wraps the same synchronous Bus call it
// corresponds to, so the observable semantics are identical; only the
// delivery of results moves to the request's Completed callback.
type Queue interface {
	// Bus returns the underlying bus. Only Command implementations
	// may touch it; everything else goes through Enqueue.
	Bus() Bus

	// Enqueues a CloseCommand; the queue shuts down and closes the
	// bus after the commands ahead of it have executed.
	Close() error

	Enqueue(cmd CommandWithCompletion) error

	MakeWriteCommands(reqs ...WriteRequest) CommandSequence
	MakeReadCommands(reqs ...ReadRequest) CommandSequence
}

type busQueue struct {
	// driver name, used as a log prefix
	name string

	bus Bus

	// command execution queue:
	cq       chan CommandWithCompletion
	cqClosed bool
}

// NewQueue starts a command queue over bus. The queue takes ownership
// of bus and closes it when the queue shuts down.
func NewQueue(name string, bus Bus) Queue {
	if bus == nil {
		panic("i2c: queue bus must not be nil")
	}

	q := &busQueue{
		name: name,
		bus:  bus,
		cq:   make(chan CommandWithCompletion, chanSize),
	}
	go q.handleQueue()
	return q
}

func (q *busQueue) Bus() Bus { return q.bus }

func (q *busQueue) Close() error {
	return q.Enqueue(CommandWithCompletion{Command: &CloseCommand{}})
}

func (q *busQueue) Enqueue(cmd CommandWithCompletion) (err error) {
	// FIXME: no great way I can figure out how to avoid panic on closed channel send below.
	defer func() {
		if recover() != nil {
			err = fmt.Errorf("%s: %w", q.name, ErrBusClosed)
		}
	}()

	if q.cqClosed {
		err = fmt.Errorf("%s: %w", q.name, ErrBusClosed)
		return
	}

	q.cq <- cmd
	return
}

func (q *busQueue) handleQueue() {
	q.cqClosed = false
	var err error
	doClose := func() {
		if q.cqClosed {
			return
		}

		if err != nil {
			log.Printf("%s: %v\n", q.name, err)
		}

		if err = q.bus.Close(); err != nil {
			log.Printf("%s: %v\n", q.name, err)
		}

		q.cqClosed = true
		close(q.cq)
	}
	defer doClose()

	for pair := range q.cq {
		cmd := pair.Command
		if cmd == nil {
			break
		}

		terminal := false

		if _, ok := cmd.(*CloseCommand); ok {
			terminal = true
		}
		if _, ok := cmd.(*DrainQueueCommand); ok {
			for len(q.cq) > 0 {
				<-q.cq
			}
		}

		err = cmd.Execute(q)
		var terr *TerminalError
		if err != nil && errors.As(err, &terr) {
			terminal = true
		}
		if pair.Completion != nil {
			pair.Completion(cmd, err)
		} else if err != nil {
			log.Println(err)
		}

		if terminal {
			break
		}
	}
}

func (q *busQueue) MakeWriteCommands(reqs ...WriteRequest) CommandSequence {
	seq := make(CommandSequence, 0, len(reqs))
	for _, req := range reqs {
		seq = append(seq, CommandWithCompletion{Command: &writeCommand{req}})
	}
	return seq
}

func (q *busQueue) MakeReadCommands(reqs ...ReadRequest) CommandSequence {
	seq := make(CommandSequence, 0, len(reqs))
	for _, req := range reqs {
		seq = append(seq, CommandWithCompletion{Command: &readCommand{req}})
	}
	return seq
}

type writeCommand struct {
	Request WriteRequest
}

func (c *writeCommand) Execute(queue Queue) error {
	req := &c.Request
	if err := WriteBytes(queue.Bus(), req.Addr, req.Data); err != nil {
		return err
	}

	if req.Completed != nil {
		req.Completed(Response{
			IsWrite: true,
			Addr:    req.Addr,
			Data:    req.Data,
		})
	}
	return nil
}

type readCommand struct {
	Request ReadRequest
}

func (c *readCommand) Execute(queue Queue) error {
	req := &c.Request
	data := make([]byte, req.Size)
	if err := WriteRead(queue.Bus(), req.Addr, []byte{req.Command}, data); err != nil {
		return err
	}

	if req.Completed != nil {
		req.Completed(Response{
			IsWrite: false,
			Addr:    req.Addr,
			Data:    data,
		})
	}
	return nil
}
