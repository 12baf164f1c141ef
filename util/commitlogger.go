package util

// CommitLogger buffers writes and hands each completed line to
// Committer, for routing log output somewhere line-oriented.
type CommitLogger struct {
	Committer func(p []byte)
	buf       []byte
}

func (l *CommitLogger) Write(p []byte) (n int, err error) {
	l.buf = append(l.buf, p...)
	if len(p) > 0 && p[len(p)-1] == '\n' {
		// drop the trailing newline; committers add their own
		l.buf = l.buf[:len(l.buf)-1]
		l.Commit()
	}
	return len(p), nil
}

func (l *CommitLogger) Commit() {
	if l.Committer != nil {
		l.Committer(l.buf)
	}
	l.Reset()
}

func (l *CommitLogger) Reset() {
	l.buf = l.buf[:0]
}
