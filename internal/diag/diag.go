// Package diag writes failure records to the operating system's diagnostic log.
//
// Every write is best-effort: a sink that cannot be opened degrades to Nop, and
// Report swallows write errors so telemetry never breaks the monitored operation.
package diag

import (
	"fmt"
)

// Sink receives error-level diagnostic records
type Sink interface {
	Error(msg string) error
}

// Nop discards every record
type Nop struct{}

func (Nop) Error(string) error { return nil }

// Report writes one record for a failed operation and ignores sink failures
func Report(s Sink, op string, err error) {
	if s == nil || err == nil {
		return
	}
	_ = s.Error(fmt.Sprintf("ipmon operation=%q error=%q", op, err.Error()))
}

// Open returns the platform sink for source in channel, or Nop if unavailable
func Open(source, channel string) Sink {
	s, err := openPlatform(source, channel)
	if err != nil {
		return Nop{}
	}
	return s
}
