// Package logging defines the logger role handed to clients and the
// execution pipeline.
package logging

import (
	"fmt"
	"io"
	"log"
	"sync"
	"time"
)

type Logger interface {
	Printf(format string, args ...any)
}

type nullLogger struct{}

func (nullLogger) Printf(string, ...any) {}

// Null returns a Logger that discards everything.
func Null() Logger { return nullLogger{} }

// New returns a Logger writing to w through the standard library logger.
func New(w io.Writer, prefix string) Logger {
	return log.New(w, prefix, log.LstdFlags)
}

type CapturedMessage struct {
	Time    time.Time
	Message string
}

// CapturingLogger keeps every message in memory.
type CapturingLogger struct {
	output []CapturedMessage
	lock   sync.Mutex
}

func (l *CapturingLogger) Printf(format string, args ...any) {
	l.lock.Lock()
	l.output = append(l.output, CapturedMessage{Time: time.Now(), Message: fmt.Sprintf(format, args...)})
	l.lock.Unlock()
}

func (l *CapturingLogger) Output() []CapturedMessage {
	l.lock.Lock()
	ret := append([]CapturedMessage(nil), l.output...)
	l.lock.Unlock()
	return ret
}

// Messages returns the captured message texts.
func (l *CapturingLogger) Messages() []string {
	out := l.Output()
	msgs := make([]string, len(out))
	for i, m := range out {
		msgs[i] = m.Message
	}
	return msgs
}
