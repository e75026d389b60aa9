package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/aleister1102/piholewatch/internal/config"
	"github.com/aleister1102/piholewatch/internal/debounce"
	"github.com/aleister1102/piholewatch/internal/errorwrapper"
	"github.com/aleister1102/piholewatch/internal/hasher"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Checker runs one change-detection pass. Satisfied by hasher.Pipeline.
type Checker interface {
	Check(ctx context.Context) hasher.CheckResult
}

// Service subscribes to raw filesystem notifications under the watch root,
// filters them, debounces the survivors, and on each settled burst runs one
// hash check, triggering the on-change command when the configuration
// actually changed.
type Service struct {
	config    *config.WatchConfig
	logger    zerolog.Logger
	checker   Checker
	filter    *EventFilter
	runner    *CommandRunner
	fsWatcher *fsnotify.Watcher
	debouncer *debounce.Debouncer
	wg        sync.WaitGroup
	stopOnce  sync.Once
}

// NewService creates a watcher service. The include/exclude patterns are
// compiled here so configuration errors surface before watching begins.
func NewService(cfg *config.WatchConfig, checker Checker, logger zerolog.Logger) (*Service, error) {
	serviceLogger := logger.With().Str("service", "ChangeWatcher").Logger()

	filter, err := NewEventFilter(cfg.IncludePattern, cfg.ExcludePattern, serviceLogger)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "invalid watch pattern")
	}

	return &Service{
		config:  cfg,
		logger:  serviceLogger,
		checker: checker,
		filter:  filter,
		runner:  NewCommandRunner(serviceLogger),
	}, nil
}

// Start begins watching the configured root recursively. It returns once
// the watch is established; event handling continues on background
// goroutines until Stop is called.
func (s *Service) Start() error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errorwrapper.WrapError(err, "failed to create filesystem watcher")
	}
	s.fsWatcher = fsWatcher

	if err := s.addRecursive(s.config.WatchDir); err != nil {
		_ = fsWatcher.Close()
		return errorwrapper.WrapError(err, "failed to watch "+s.config.WatchDir)
	}

	s.debouncer = debounce.NewDebouncer(s.config.Debounce(), s.onQuietPeriod, s.logger)

	s.wg.Add(1)
	go s.eventLoop()

	s.logger.Info().Str("watch_dir", s.config.WatchDir).Dur("debounce", s.config.Debounce()).Msg("Watching for configuration changes")
	return nil
}

// Stop shuts the service down: the filesystem subscription first, then the
// debouncer. Safe to call more than once.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info().Msg("Shutting down watcher")
		if s.fsWatcher != nil {
			_ = s.fsWatcher.Close()
		}
		s.wg.Wait()
		if s.debouncer != nil {
			s.debouncer.Stop()
		}
		s.logger.Info().Msg("Watcher stopped")
	})
}

// addRecursive registers the directory and all of its subdirectories.
func (s *Service) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return s.fsWatcher.Add(path)
		}
		return nil
	})
}

func (s *Service) eventLoop() {
	defer s.wg.Done()
	for {
		select {
		case event, ok := <-s.fsWatcher.Events:
			if !ok {
				return
			}
			s.handleEvent(event)
		case err, ok := <-s.fsWatcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn().Err(err).Msg("Filesystem watch error")
		}
	}
}

func (s *Service) handleEvent(event fsnotify.Event) {
	// Directories created under the root join the watch; their own events
	// never qualify as change signals.
	if event.Op&fsnotify.Create != 0 {
		if added := s.maybeWatchNewDir(event.Name); added {
			return
		}
	}

	if s.filter.Accept(event) {
		s.debouncer.Notify()
	}
}

func (s *Service) maybeWatchNewDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if err := s.addRecursive(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("Failed to watch new directory")
	}
	return true
}

// onQuietPeriod runs on the debouncer's goroutine after each settled burst.
// A slow check blocks further coalesced callbacks until it returns; at most
// one check is in flight at a time.
func (s *Service) onQuietPeriod() {
	s.logger.Info().Msg("Debounced change detected; running hash check")

	result := s.checker.Check(context.Background())
	if result.Message != "" {
		s.logger.Info().Msg(result.Message)
	}
	if result.SummaryHash != "" {
		s.logger.Info().Str("hash", result.SummaryHash).Msg("Current config hash")
	}

	switch result.Status {
	case hasher.StatusChanged:
		s.runOnChangeCommand()
	case hasher.StatusUnchanged:
		s.logger.Info().Msg("Configuration unchanged. Skipping sync.")
	default:
		s.logger.Info().Str("status", result.Status.String()).Msg("Hash check did not detect a change; skipping sync")
	}
}

// runOnChangeCommand makes exactly one launch attempt; failures are logged
// and the watcher keeps waiting for the next coalesced signal.
func (s *Service) runOnChangeCommand() {
	if s.config.OnChangeCmd == "" {
		s.logger.Info().Msg("No on-change command configured; skipping")
		return
	}
	if err := s.runner.Run(s.config.OnChangeCmd); err != nil {
		s.logger.Error().Err(err).Msg("Failed to run on-change command")
	}
}
