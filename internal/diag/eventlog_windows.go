//go:build windows

package diag

import (
	"golang.org/x/sys/windows/registry"
	"golang.org/x/sys/windows/svc/eventlog"
)

const (
	eventID         = 1001
	eventLogRoot    = `SYSTEM\CurrentControlSet\Services\EventLog\`
	applicationLog  = "Application"
	eventCreatePath = `%SystemRoot%\System32\EventCreate.exe`
)

func openPlatform(source, channel string) (Sink, error) {
	ensureSource(source, channel)

	l, err := eventlog.Open(source)
	if err != nil {
		return nil, err
	}
	return eventLogSink{l: l}, nil
}

// ensureSource registers source under channel if it is missing.
// Registration needs administrator rights; failure is ignored.
func ensureSource(source, channel string) {
	if channel == "" {
		channel = applicationLog
	}
	keyPath := eventLogRoot + channel + `\` + source

	if k, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, registry.QUERY_VALUE); err == nil {
		k.Close()
		return
	}

	types := uint32(eventlog.Error | eventlog.Warning | eventlog.Info)
	if channel == applicationLog {
		_ = eventlog.InstallAsEventCreate(source, types)
		return
	}

	k, _, err := registry.CreateKey(registry.LOCAL_MACHINE, keyPath, registry.SET_VALUE)
	if err != nil {
		return
	}
	defer k.Close()

	_ = k.SetExpandStringValue("EventMessageFile", eventCreatePath)
	_ = k.SetDWordValue("TypesSupported", types)
	_ = k.SetDWordValue("CustomSource", 1)
}

type eventLogSink struct {
	l *eventlog.Log
}

func (s eventLogSink) Error(msg string) error {
	return s.l.Error(eventID, msg)
}
