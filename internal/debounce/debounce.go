package debounce

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Debouncer collapses a bursty stream of Notify calls into a single callback
// invocation per settled burst. The quiet window slides: every Notify while
// a burst is accumulating re-arms the deadline, so the callback fires only
// after a full quiet period with no new signals. The callback always runs on
// the debouncer's own goroutine, never the notifier's, and at most one
// invocation is in flight at a time.
type Debouncer struct {
	quiet    time.Duration
	callback func()
	signals  chan struct{}
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	logger   zerolog.Logger
}

// NewDebouncer creates a debouncer and starts its run loop. The callback is
// invoked with no arguments after each settled burst.
func NewDebouncer(quiet time.Duration, callback func(), logger zerolog.Logger) *Debouncer {
	d := &Debouncer{
		quiet:    quiet,
		callback: callback,
		signals:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		logger:   logger.With().Str("component", "Debouncer").Logger(),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Notify records that an event occurred now. Safe to call concurrently from
// any goroutine; signals arriving while one is already pending coalesce.
func (d *Debouncer) Notify() {
	select {
	case <-d.stopCh:
		return
	default:
	}

	select {
	case d.signals <- struct{}{}:
		d.logger.Debug().Msg("Debouncer notified")
	default:
		// A signal is already pending; this one folds into the same burst.
	}
}

// Stop requests shutdown and waits for the run loop to exit. No callback
// invocation begins after Stop returns; one already executing is allowed to
// finish. Idempotent.
func (d *Debouncer) Stop() {
	d.stopOnce.Do(func() {
		close(d.stopCh)
	})
	d.wg.Wait()
}

// run is the debouncer's single logical loop: idle until a signal arrives,
// then accumulate until the sliding deadline elapses, invoke, return to idle.
func (d *Debouncer) run() {
	defer d.wg.Done()
	for {
		select {
		case <-d.stopCh:
			return
		case <-d.signals:
			if !d.accumulate() {
				return
			}
		}
	}
}

// accumulate waits out the sliding quiet window, re-arming the deadline on
// every new signal, then invokes the callback. Returns false when shutdown
// was requested before the callback could fire.
func (d *Debouncer) accumulate() bool {
	timer := time.NewTimer(d.quiet)
	defer timer.Stop()

	for {
		select {
		case <-d.stopCh:
			return false
		case <-d.signals:
			if !timer.Stop() {
				<-timer.C
			}
			timer.Reset(d.quiet)
		case <-timer.C:
			// A stop racing with the deadline must win: no callback starts
			// once shutdown has been requested.
			select {
			case <-d.stopCh:
				return false
			default:
			}
			d.invoke()
			return true
		}
	}
}

func (d *Debouncer) invoke() {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error().Interface("panic", r).Msg("Debounce callback panicked; returning to idle")
		}
	}()
	d.logger.Debug().Msg("Quiet period elapsed; invoking callback")
	d.callback()
}
