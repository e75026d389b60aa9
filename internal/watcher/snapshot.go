package watcher

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// fileSnapshot is the per-path memory used to suppress spurious
// re-notifications that did not change content.
type fileSnapshot struct {
	mtimeNano int64
	size      int64
}

// SnapshotTracker remembers (mtime, size) per absolute path. Entries for
// vanished files are removed; the map otherwise grows with the number of
// distinct paths touched during the process lifetime, which is acceptable
// for a directory of configuration files.
type SnapshotTracker struct {
	mu      sync.Mutex
	entries map[string]fileSnapshot
	logger  zerolog.Logger
}

// NewSnapshotTracker creates an empty tracker.
func NewSnapshotTracker(logger zerolog.Logger) *SnapshotTracker {
	return &SnapshotTracker{
		entries: make(map[string]fileSnapshot),
		logger:  logger.With().Str("component", "SnapshotTracker").Logger(),
	}
}

// HasRealChange reports whether stat info indicates an actual content
// change for the path. A missing file always counts as a real change and
// clears its entry. Two rapid saves landing on identical (mtime, size) are
// suppressed; accepted behavior on filesystems with coarse timestamps.
func (st *SnapshotTracker) HasRealChange(path string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	info, err := os.Stat(path)
	if err != nil {
		delete(st.entries, path)
		return true
	}

	current := fileSnapshot{
		mtimeNano: info.ModTime().UnixNano(),
		size:      info.Size(),
	}
	if previous, ok := st.entries[path]; ok && previous == current {
		return false
	}

	st.entries[path] = current
	return true
}
