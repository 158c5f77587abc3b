package monitor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"ipmon/internal/diag"
	"ipmon/internal/display"
	"ipmon/internal/history"
	"ipmon/pkg/models"
	"ipmon/pkg/utils"
)

// Snapshotter produces the current interface/address pairs
type Snapshotter interface {
	Snapshot() ([]models.AddressRecord, error)
}

// Options configures a Monitor. Zero values select defaults.
type Options struct {
	Out        io.Writer
	Logger     *zap.Logger
	Diag       diag.Sink
	Clock      func() time.Time
	Priorities display.Priorities
}

// CheckOptions controls the output of CheckAndRecord
type CheckOptions struct {
	ShowCurrent bool
	ShowChange  bool
	Silent      bool
}

// Monitor records IP changes to the history file and shows the latest state
type Monitor struct {
	reader     Snapshotter
	store      *history.Store
	out        io.Writer
	logger     *zap.Logger
	diag       diag.Sink
	clock      func() time.Time
	priorities display.Priorities
}

// New creates a monitor reading from reader and persisting through store
func New(reader Snapshotter, store *history.Store, opts Options) *Monitor {
	m := &Monitor{
		reader:     reader,
		store:      store,
		out:        opts.Out,
		logger:     opts.Logger,
		diag:       opts.Diag,
		clock:      opts.Clock,
		priorities: opts.Priorities,
	}

	if m.out == nil {
		m.out = os.Stdout
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.diag == nil {
		m.diag = diag.Nop{}
	}
	if m.clock == nil {
		m.clock = time.Now
	}
	if m.priorities == (display.Priorities{}) {
		m.priorities = display.DefaultPriorities()
	}

	return m
}

// CheckAndRecord takes a snapshot, appends it to the history if it differs
// from the newest entry, and reports whether a change was detected.
//
// A failed write is reported but does not alter the result: detection and
// persistence are separate outcomes. In silent mode nothing is printed and
// environment failures are not returned.
func (m *Monitor) CheckAndRecord(opts CheckOptions) (bool, error) {
	current, err := m.reader.Snapshot()
	if err != nil {
		return false, m.fail(opts, "snapshot", err)
	}

	if opts.ShowCurrent && !opts.Silent {
		fmt.Fprintln(m.out, "Current IP addresses:")
		if err := display.Render(m.out, current, m.priorities); err != nil {
			m.logger.Warn("Failed to display current addresses", zap.Error(err))
		}
	}

	unlock, err := m.store.Lock()
	if err != nil {
		if errors.Is(err, history.ErrLogDir) {
			return false, m.fail(opts, "lock", err)
		}
		m.logger.Warn("Proceeding without history lock", zap.Error(err))
		unlock = func() {}
	}
	changed, err := m.record(current)
	unlock()
	if err != nil {
		return false, m.fail(opts, "read", err)
	}

	if opts.ShowChange && !opts.Silent {
		if changed {
			fmt.Fprintln(m.out, "IP addresses updated.")
		} else {
			fmt.Fprintln(m.out, "IP addresses unchanged.")
		}
		if err := m.ShowLatest(); err != nil {
			m.logger.Error("Failed to show latest IP log", zap.Error(err))
		}
	}

	return changed, nil
}

// record runs the read-compare-write cycle; only a read failure is returned
func (m *Monitor) record(current []models.AddressRecord) (bool, error) {
	hist, err := m.store.Read()
	if err != nil {
		return false, err
	}

	var previous []models.AddressRecord
	if latest, ok := hist.Latest(); ok {
		previous = latest.Addresses
	}

	if !Changed(current, previous) {
		m.logger.Debug("IP addresses unchanged", zap.Int("addresses", len(current)))
		return false, nil
	}

	entry := models.NewLogEntry(m.clock(), current)
	hist = m.store.Append(entry, hist)

	if err := m.store.Write(hist); err != nil {
		diag.Report(m.diag, "write", err)
		m.logger.Warn("Failed to save IP log", zap.String("file", m.store.Path()), zap.Error(err))
		return true, nil
	}

	m.logger.Info("IP change recorded",
		zap.String("timestamp", entry.Timestamp),
		zap.Int("addresses", len(current)),
		zap.Int("entries", len(hist)))
	return true, nil
}

// fail reports an environment error to the diagnostic log and decides what
// the caller sees
func (m *Monitor) fail(opts CheckOptions, op string, err error) error {
	diag.Report(m.diag, op, err)
	if opts.Silent {
		return nil
	}
	m.logger.Error("IP check failed", zap.String("operation", op), zap.Error(err))
	return utils.WrapError(err, "ip check failed")
}

// ShowLatest prints the newest history entry with the time elapsed since it.
// Failures are reported to the diagnostic log before being returned.
func (m *Monitor) ShowLatest() error {
	if err := m.showLatest(); err != nil {
		diag.Report(m.diag, "show-latest", err)
		return err
	}
	return nil
}

func (m *Monitor) showLatest() error {
	hist, err := m.store.Read()
	if err != nil {
		return err
	}

	latest, ok := hist.Latest()
	if !ok {
		fmt.Fprintln(m.out, "No IP log entries found.")
		return nil
	}

	recorded, err := latest.Time()
	if err != nil {
		return fmt.Errorf("invalid timestamp %q in IP log: %w", latest.Timestamp, err)
	}

	fmt.Fprintf(m.out, "Latest IP record: %s\n", latest.Timestamp)
	fmt.Fprintf(m.out, "Time since change: %s\n", FormatElapsed(m.clock().Sub(recorded)))
	return display.Render(m.out, latest.Addresses, m.priorities)
}

// History returns every stored entry, newest first
func (m *Monitor) History() (models.LogHistory, error) {
	hist, err := m.store.Read()
	if err != nil {
		diag.Report(m.diag, "history", err)
		return nil, err
	}
	return hist, nil
}

// FormatElapsed renders d as floored hours plus remaining minutes
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%d hours %d minutes", hours, minutes)
}
