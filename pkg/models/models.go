package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// UnknownInterface is used when the owning adapter of an address cannot be resolved
const UnknownInterface = "<Unknown Interface>"

// TimestampLayout is the stored timestamp format (local wall-clock, seconds precision)
const TimestampLayout = "2006-01-02 15:04:05"

// MaxLogEntries bounds the number of entries kept in the history file
const MaxLogEntries = 100

// AddressRecord represents one observed interface/address pair
type AddressRecord struct {
	Interface string `json:"interface" yaml:"interface"`
	IPAddress string `json:"ipAddress" yaml:"ipAddress"`
}

// LogEntry represents one timestamped snapshot in the history file
type LogEntry struct {
	Timestamp string          `json:"timestamp" yaml:"timestamp"`
	Addresses []AddressRecord `json:"addresses" yaml:"addresses"`
}

// LogHistory is the stored history, newest entry first
type LogHistory []LogEntry

// NewLogEntry builds an entry stamped with t
func NewLogEntry(t time.Time, addresses []AddressRecord) LogEntry {
	return LogEntry{
		Timestamp: t.Format(TimestampLayout),
		Addresses: addresses,
	}
}

// Time parses the entry timestamp as local time
func (e LogEntry) Time() (time.Time, error) {
	return time.ParseInLocation(TimestampLayout, e.Timestamp, time.Local)
}

// UnmarshalJSON accepts a single address object where an array is expected.
// Older writers collapsed one-element arrays into a bare object.
func (e *LogEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Timestamp string          `json:"timestamp"`
		Addresses json.RawMessage `json:"addresses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Timestamp = raw.Timestamp
	e.Addresses = nil

	addrs := bytes.TrimSpace(raw.Addresses)
	switch {
	case len(addrs) == 0 || bytes.Equal(addrs, []byte("null")):
		return nil
	case addrs[0] == '{':
		var single AddressRecord
		if err := json.Unmarshal(addrs, &single); err != nil {
			return err
		}
		e.Addresses = []AddressRecord{single}
		return nil
	default:
		return json.Unmarshal(addrs, &e.Addresses)
	}
}

// Latest returns the newest entry, or false if the history is empty
func (h LogHistory) Latest() (LogEntry, bool) {
	if len(h) == 0 {
		return LogEntry{}, false
	}
	return h[0], true
}
