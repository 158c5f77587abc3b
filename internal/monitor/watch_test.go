package monitor

import (
	"bytes"
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipmon/internal/history"
	"ipmon/pkg/models"
)

type countingReader struct {
	calls atomic.Int32
}

func (c *countingReader) Snapshot() ([]models.AddressRecord, error) {
	c.calls.Add(1)
	return []models.AddressRecord{{Interface: "WLAN", IPAddress: "192.168.1.5"}}, nil
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestWatchRejectsBadInterval(t *testing.T) {
	store := history.NewStore(filepath.Join(t.TempDir(), "h.json"), 0, nil)
	m := New(&countingReader{}, store, Options{Out: &bytes.Buffer{}})

	assert.Error(t, m.Watch(context.Background(), 0, nil, CheckOptions{Silent: true}))
}

func TestWatchChecksOnStartupAndEvents(t *testing.T) {
	reader := &countingReader{}
	store := history.NewStore(filepath.Join(t.TempDir(), "h.json"), 0, nil)
	m := New(reader, store, Options{Out: &bytes.Buffer{}})

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- m.Watch(ctx, time.Hour, events, CheckOptions{Silent: true})
	}()

	require.Eventually(t, func() bool { return reader.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	events <- struct{}{}
	require.Eventually(t, func() bool { return reader.calls.Load() == 2 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)

	h, err := store.Read()
	require.NoError(t, err)
	assert.Len(t, h, 1)
}

func TestFollowReprintsOnWrite(t *testing.T) {
	out := &syncBuffer{}
	store := history.NewStore(filepath.Join(t.TempDir(), "logs", "h.json"), 0, nil)
	m := New(&countingReader{}, store, Options{Out: out})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- m.Follow(ctx)
	}()

	require.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("No IP log entries found."))
	}, 2*time.Second, 10*time.Millisecond)

	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, store.Write(models.LogHistory{{
		Timestamp: time.Now().Format(models.TimestampLayout),
		Addresses: []models.AddressRecord{{Interface: "WLAN", IPAddress: "192.168.50.7"}},
	}}))

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("192.168.50.7"))
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
