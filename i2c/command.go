package i2c

// Command is one unit of work executed in order on a queue's
// goroutine.
type Command interface {
	Execute(queue Queue) error
}

type Completion func(Command, error)

type CommandWithCompletion struct {
	Command    Command
	Completion Completion
}

type CommandSequence []CommandWithCompletion

func (seq CommandSequence) EnqueueTo(queue Queue) (err error) {
	for _, cmd := range seq {
		err = queue.Enqueue(cmd)
		if err != nil {
			return
		}
	}
	return
}

type NoOpCommand struct{}

func (c *NoOpCommand) Execute(queue Queue) error {
	return nil
}

// Special Command to close the bus connection
type CloseCommand struct{}

func (c *CloseCommand) Execute(queue Queue) error {
	return nil
}

// Special Command to drop any Commands already queued behind it
// without executing them
type DrainQueueCommand struct{}

func (c *DrainQueueCommand) Execute(queue Queue) error {
	return nil
}
