package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"ipmon/pkg/models"
)

// ErrLogDir is returned when the log directory cannot be created
var ErrLogDir = errors.New("failed to create log directory")

// Store owns the on-disk history file
type Store struct {
	path       string
	maxEntries int
	logger     *zap.Logger
}

// NewStore creates a store for the history file at path.
// maxEntries <= 0 selects models.MaxLogEntries.
func NewStore(path string, maxEntries int, logger *zap.Logger) *Store {
	if maxEntries <= 0 {
		maxEntries = models.MaxLogEntries
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:       path,
		maxEntries: maxEntries,
		logger:     logger,
	}
}

// Path returns the history file path
func (s *Store) Path() string {
	return s.path
}

// Read loads the full history. Missing, unreadable, empty and malformed files
// all yield an empty history; a corrupt file is left in place until the next Write.
func (s *Store) Read() (models.LogHistory, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Unable to read IP log, starting with empty history",
				zap.String("file", s.path), zap.Error(err))
		}
		return models.LogHistory{}, nil
	}

	history, err := decode(data)
	if err != nil {
		s.logger.Warn("IP log is corrupt, starting with empty history",
			zap.String("file", s.path), zap.Error(err))
		return models.LogHistory{}, nil
	}

	s.logger.Debug("IP log loaded", zap.String("file", s.path), zap.Int("entries", len(history)))
	return history, nil
}

// decode accepts an array of entries, a single entry object, or nothing at all
func decode(data []byte) (models.LogHistory, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return models.LogHistory{}, nil
	}

	if data[0] == '{' {
		var entry models.LogEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, err
		}
		return models.LogHistory{entry}, nil
	}

	var history models.LogHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	if history == nil {
		history = models.LogHistory{}
	}
	return history, nil
}

// Write replaces the history file with history
func (s *Store) Write(history models.LogHistory) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	if history == nil {
		history = models.LogHistory{}
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal IP log: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write IP log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write IP log: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace IP log %s: %w", s.path, err)
	}

	s.logger.Debug("IP log saved", zap.String("file", s.path), zap.Int("entries", len(history)))
	return nil
}

// Append prepends entry and drops the oldest entries beyond the store limit
func (s *Store) Append(entry models.LogEntry, history models.LogHistory) models.LogHistory {
	return Append(entry, history, s.maxEntries)
}

// Append prepends entry to history and keeps at most limit entries
func Append(entry models.LogEntry, history models.LogHistory, limit int) models.LogHistory {
	if limit <= 0 {
		limit = models.MaxLogEntries
	}

	size := len(history) + 1
	if size > limit {
		size = limit
	}

	result := make(models.LogHistory, 0, size)
	result = append(result, entry)
	for _, e := range history {
		if len(result) >= limit {
			break
		}
		result = append(result, e)
	}
	return result
}

// ensureDir creates the parent directory of the history file
func (s *Store) ensureDir() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w %s: %w", ErrLogDir, dir, err)
	}
	return nil
}
