package driver

import (
	"sync"
	"time"
)

// Handle identifies a live schedule
type Handle uint64

// Scheduler calls a function repeatedly at a fixed interval until cancelled
type Scheduler interface {
	Schedule(interval time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// TickerScheduler runs each schedule on its own time.Ticker goroutine
type TickerScheduler struct {
	mu     sync.Mutex
	next   Handle
	active map[Handle]chan struct{}
}

// NewTickerScheduler creates a scheduler backed by time.Ticker
func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{active: make(map[Handle]chan struct{})}
}

// Schedule starts calling fn every interval
func (s *TickerScheduler) Schedule(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}

	s.mu.Lock()
	s.next++
	h := s.next
	stop := make(chan struct{})
	s.active[h] = stop
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	return h
}

// Cancel stops a schedule. Unknown or already cancelled handles are ignored.
func (s *TickerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stop, ok := s.active[h]; ok {
		close(stop)
		delete(s.active, h)
	}
}

// Active returns the number of live schedules
func (s *TickerScheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Stop cancels every live schedule
func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for h, stop := range s.active {
		close(stop)
		delete(s.active, h)
	}
}
