package monitor

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"ipmon/pkg/utils"
)

// Watch runs CheckAndRecord at start, on every tick of interval and whenever
// events fires, until ctx is done. Checks never overlap.
func (m *Monitor) Watch(ctx context.Context, interval time.Duration, events <-chan struct{}, opts CheckOptions) error {
	if interval <= 0 {
		return fmt.Errorf("watch interval must be positive, got %s", interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.watchCheck(opts, "startup")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			m.watchCheck(opts, "interval")

		case _, ok := <-events:
			if !ok {
				// Address events are gone; keep polling on the ticker
				events = nil
				continue
			}
			m.watchCheck(opts, "address event")
		}
	}
}

func (m *Monitor) watchCheck(opts CheckOptions, trigger string) {
	changed, err := m.CheckAndRecord(opts)
	if err != nil {
		m.logger.Warn("Scheduled IP check failed", zap.String("trigger", trigger), zap.Error(err))
		return
	}
	m.logger.Debug("Scheduled IP check", zap.String("trigger", trigger), zap.Bool("changed", changed))
}

// Follow prints the latest entry, then prints it again each time the history
// file is rewritten, until ctx is done.
func (m *Monitor) Follow(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	utils.CheckWarn(m.logger, m.ShowLatest(), "Failed to show latest IP log")

	// Writes replace the file via rename, so watch the directory
	dir := filepath.Dir(m.store.Path())
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target, _ := filepath.Abs(m.store.Path())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			absEventPath, _ := filepath.Abs(event.Name)
			if absEventPath != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			m.logger.Debug("IP log modified", zap.String("file", event.Name))
			fmt.Fprintln(m.out)
			utils.CheckWarn(m.logger, m.ShowLatest(), "Failed to show latest IP log")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			m.logger.Warn("File watcher error", zap.Error(err))
		}
	}
}
