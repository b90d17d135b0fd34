package papi

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"k8s.io/klog/v2"
)

// CounterSet counts a fixed list of events over repeated windows. Readings of every
// window are added to running totals, so the totals cover all windows since the set
// was built.
type CounterSet struct {
	session *Session
	events  []*EventDescriptor
	codes   []int32

	mu     sync.Mutex
	totals []int64
	open   bool
}

// NewCounterSet resolves events through cat and binds them in order. Nothing is
// counted until Open.
func NewCounterSet(cat *Catalog, events ...Event) (*CounterSet, error) {
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	s := &CounterSet{
		session: cat.session,
		events:  make([]*EventDescriptor, len(events)),
		codes:   make([]int32, len(events)),
		totals:  make([]int64, len(events)),
	}
	for i, e := range events {
		if e == nil {
			return nil, fmt.Errorf("event %d is nil", i)
		}
		ev, err := e.resolve(cat)
		if err != nil {
			return nil, err
		}
		if ev == nil {
			return nil, fmt.Errorf("event %d is nil", i)
		}
		s.events[i] = ev
		s.codes[i] = int32(ev.Code)
	}
	return s, nil
}

// Events returns the bound events in counting order.
func (s *CounterSet) Events() []*EventDescriptor {
	return append([]*EventDescriptor(nil), s.events...)
}

// IsOpen reports whether a window is open.
func (s *CounterSet) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Open starts a counting window. The calling goroutine stays locked to its OS
// thread until Close, because the library counts per thread.
func (s *CounterSet) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return ErrAlreadyOpen
	}
	if err := s.session.EnsureInitialized(CurrentVersion); err != nil {
		return err
	}
	if err := s.session.acquire(s); err != nil {
		return err
	}

	runtime.LockOSThread()
	if code := s.session.lib.StartCounters(s.codes); !ok(code) {
		runtime.UnlockOSThread()
		s.session.release(s)
		return s.session.counterError("start counters", code)
	}
	s.open = true
	klog.V(4).Infof("opened counting window for %v on thread %d", s.events, threadID())
	return nil
}

// Close stops the window and adds its readings to the totals. When the library
// fails to stop, the totals are left unchanged but the window is still closed.
func (s *CounterSet) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return ErrNotOpen
	}
	values := make([]int64, len(s.codes))
	code := s.session.lib.StopCounters(values)

	s.open = false
	s.session.release(s)
	runtime.UnlockOSThread()

	if !ok(code) {
		return s.session.counterError("stop counters", code)
	}
	for i, v := range values {
		s.totals[i] += v
	}
	klog.V(4).Infof("closed counting window for %v: %v", s.events, values)
	return nil
}

// Read returns the counts accrued since the window opened or since the previous
// Read, and adds them to the totals. The window stays open.
func (s *CounterSet) Read() ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return nil, ErrNotOpen
	}
	values := make([]int64, len(s.codes))
	if code := s.session.lib.ReadCounters(values); !ok(code) {
		return nil, s.session.counterError("read counters", code)
	}
	for i, v := range values {
		s.totals[i] += v
	}
	return values, nil
}

// Totals returns the accumulated counts in counting order.
func (s *CounterSet) Totals() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.totals...)
}

// Snapshot maps each event symbol to its accumulated count as of the last Close or
// Read. If two bound events share a symbol the later one wins.
func (s *CounterSet) Snapshot() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[string]int64, len(s.events))
	for i, ev := range s.events {
		snap[ev.Symbol] = s.totals[i]
	}
	return snap
}

// Measure counts over fn. The window is closed however fn exits; a panic in fn is
// re-raised after closing. If both fn and Close fail, the returned error holds both,
// fn's first.
func (s *CounterSet) Measure(fn func() error) (err error) {
	if err := s.Open(); err != nil {
		return err
	}

	closed := false
	defer func() {
		if closed {
			return
		}
		if cerr := s.Close(); cerr != nil {
			klog.Errorf("failed to close counting window after panic: %v", cerr)
		}
	}()

	err = fn()
	closed = true
	return multierr.Append(err, s.Close())
}
