package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingSink struct {
	msgs []string
	err  error
}

func (r *recordingSink) Error(msg string) error {
	r.msgs = append(r.msgs, msg)
	return r.err
}

func TestReportWritesRecord(t *testing.T) {
	s := &recordingSink{}
	Report(s, "check", errors.New("boom"))

	assert.Equal(t, []string{`ipmon operation="check" error="boom"`}, s.msgs)
}

func TestReportSwallowsSinkFailure(t *testing.T) {
	s := &recordingSink{err: errors.New("event log unavailable")}

	assert.NotPanics(t, func() {
		Report(s, "check", errors.New("boom"))
	})
	assert.Len(t, s.msgs, 1)
}

func TestReportIgnoresNil(t *testing.T) {
	s := &recordingSink{}
	Report(s, "check", nil)
	Report(nil, "check", errors.New("boom"))

	assert.Empty(t, s.msgs)
}

func TestOpenNeverFails(t *testing.T) {
	assert.NotNil(t, Open("IPMonitorTest", "Application"))
}
