package watcher

import (
	"os"
	"regexp"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// allowedOps is the fixed allow-set of event kinds worth re-evaluating:
// content writes, creations, and moves. Chmod and Remove are excluded; a
// removed file surfaces through the Rename/Write the editor performs, or on
// the next qualifying event for its path.
const allowedOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// EventFilter decides which raw filesystem events qualify as change
// signals. The pipeline per event: op allow-set, include/exclude patterns
// against the absolute path, then (mtime, size) snapshot dedup.
type EventFilter struct {
	include   *regexp.Regexp
	exclude   *regexp.Regexp
	snapshots *SnapshotTracker
	logger    zerolog.Logger
}

// NewEventFilter creates a filter. Either pattern may be empty to disable
// that rule.
func NewEventFilter(includePattern, excludePattern string, logger zerolog.Logger) (*EventFilter, error) {
	f := &EventFilter{
		snapshots: NewSnapshotTracker(logger),
		logger:    logger.With().Str("component", "EventFilter").Logger(),
	}

	var err error
	if includePattern != "" {
		if f.include, err = regexp.Compile(includePattern); err != nil {
			return nil, err
		}
	}
	if excludePattern != "" {
		if f.exclude, err = regexp.Compile(excludePattern); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Accept reports whether the event should be forwarded to the debouncer.
func (f *EventFilter) Accept(event fsnotify.Event) bool {
	if event.Op&allowedOps == 0 {
		return false
	}

	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		return false
	}

	path := event.Name
	if f.include != nil && !f.include.MatchString(path) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(path) {
		return false
	}

	if !f.snapshots.HasRealChange(path) {
		f.logger.Debug().Str("path", path).Msg("Skipping event; metadata unchanged")
		return false
	}

	f.logger.Debug().Str("path", path).Str("op", event.Op.String()).Msg("File changed")
	return true
}
