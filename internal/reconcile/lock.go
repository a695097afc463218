package reconcile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another run holds the output lock.
var ErrLocked = errors.New("another reconciliation run is writing this output")

// outputLock guards an output file against concurrent runs.
type outputLock struct {
	path string
	lock *flock.Flock
}

func acquireOutputLock(path string) (*outputLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	l := &outputLock{path: path, lock: flock.New(path)}
	ok, err := l.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, path)
	}
	return l, nil
}

func (l *outputLock) release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
