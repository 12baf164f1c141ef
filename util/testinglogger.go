package util

import "testing"

// NewTestingLogger returns a writer that forwards each log line to
// tb.Log, for use with log.SetOutput in tests.
func NewTestingLogger(tb testing.TB) *CommitLogger {
	return &CommitLogger{
		Committer: func(p []byte) {
			tb.Log(string(p))
		},
	}
}
