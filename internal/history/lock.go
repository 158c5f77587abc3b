package history

import (
	"fmt"
	"os"
)

// Lock takes an exclusive advisory lock on a sidecar file next to the history,
// blocking until it is available. The returned func releases it.
func (s *Store) Lock() (func(), error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(s.path+".lock", os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := lockFile(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to lock %s: %w", f.Name(), err)
	}

	return func() {
		unlockFile(f)
		f.Close()
	}, nil
}
