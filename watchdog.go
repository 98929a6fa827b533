package mosaic

import (
	"sync"
	"time"
)

// Watchdog observes the mount container's liveness. Start hands it a check
// probe and a detach notification; implementations call onDetach whenever
// the probe transitions from attached to detached. The core functions fully
// without a watchdog; it only adds automatic recovery.
type Watchdog interface {
	Start(check func() bool, onDetach func())
	Stop()
}

// PollingWatchdog probes container liveness on a fixed interval. It is the
// server-side stand-in for DOM mutation observation: hosts with real
// mutation notifications can implement Watchdog directly instead.
type PollingWatchdog struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewPollingWatchdog creates a watchdog probing every interval. A
// non-positive interval defaults to one second.
func NewPollingWatchdog(interval time.Duration) *PollingWatchdog {
	if interval <= 0 {
		interval = time.Second
	}
	return &PollingWatchdog{interval: interval}
}

// Start implements Watchdog. A second Start without an intervening Stop is
// a no-op.
func (w *PollingWatchdog) Start(check func() bool, onDetach func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop != nil {
		return
	}
	w.stop = make(chan struct{})
	go w.run(w.stop, check, onDetach)
}

func (w *PollingWatchdog) run(stop chan struct{}, check func() bool, onDetach func()) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	attached := true
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			live := check()
			if attached && !live {
				onDetach()
			}
			attached = live
		}
	}
}

// Stop implements Watchdog; idempotent.
func (w *PollingWatchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stop != nil {
		close(w.stop)
		w.stop = nil
	}
}
