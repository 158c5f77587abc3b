//go:build unix

package diag

import (
	"log/syslog"
)

// On Unix the channel has no equivalent; records go to the user facility tagged with source.
func openPlatform(source, _ string) (Sink, error) {
	w, err := syslog.New(syslog.LOG_ERR|syslog.LOG_USER, source)
	if err != nil {
		return nil, err
	}
	return syslogSink{w: w}, nil
}

type syslogSink struct {
	w *syslog.Writer
}

func (s syslogSink) Error(msg string) error {
	return s.w.Err(msg)
}
