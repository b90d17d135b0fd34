package papi

import (
	"sync"
	"sync/atomic"

	"github.com/Rouzip/gopapi/pkg/libpapi"
	"k8s.io/klog/v2"
)

// Session owns the initialization of one loaded library. Counting windows are
// exclusive across the whole process. Initialization is one-way: once it succeeds
// the session stays initialized for the life of the process.
type Session struct {
	lib Library

	mu          sync.Mutex
	initialized bool
	version     Version

	catalogOnce sync.Once
	catalog     *Catalog
}

// countingWindow is the set holding the counting context, nil when idle. The
// library counts through one implicit context, so the slot is shared by every
// session in the process.
var countingWindow atomic.Pointer[CounterSet]

// NewSession wraps lib. No native call is made until the session is used.
func NewSession(lib Library) *Session {
	return &Session{lib: lib}
}

// EnsureInitialized initializes the library with the requested version unless the
// session is already initialized, in which case it does nothing.
func (s *Session) EnsureInitialized(requested Version) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		if requested != s.version {
			klog.Warningf("papi already initialized at %s, accepting request for %s", s.version, requested)
		}
		return nil
	}

	if s.lib.IsInitialized() {
		klog.V(2).Infof("papi initialized outside this session, assuming %s", requested)
		s.initialized, s.version = true, requested
		return nil
	}

	actual := s.lib.LibraryInit(int32(requested))
	switch {
	case actual < 0:
		return &InitializationError{Code: actual, Message: s.lib.Strerror(actual)}
	case Version(actual) != requested:
		return &VersionMismatchError{Requested: requested, Actual: Version(actual)}
	}
	s.initialized, s.version = true, requested
	klog.V(2).Infof("papi initialized at %s", requested)
	return nil
}

// Initialized reports the negotiated version once the session is initialized.
func (s *Session) Initialized() (Version, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version, s.initialized
}

// NumCounters returns the number of hardware counters available.
func (s *Session) NumCounters() (int, error) {
	if err := s.EnsureInitialized(CurrentVersion); err != nil {
		return 0, err
	}
	n := s.lib.NumCounters()
	if n < 0 {
		return 0, s.counterError("count hardware counters", n)
	}
	return int(n), nil
}

// NumComponents returns the number of components compiled into the library.
func (s *Session) NumComponents() (int, error) {
	if err := s.EnsureInitialized(CurrentVersion); err != nil {
		return 0, err
	}
	n := s.lib.NumComponents()
	if n < 0 {
		return 0, s.counterError("count components", n)
	}
	return int(n), nil
}

// Catalog returns the session's event catalog.
func (s *Session) Catalog() *Catalog {
	s.catalogOnce.Do(func() {
		s.catalog = &Catalog{session: s}
	})
	return s.catalog
}

func (s *Session) counterError(op string, code int32) *CounterError {
	return &CounterError{Op: op, Code: code, Message: s.lib.Strerror(code)}
}

// acquire claims the process-wide counting context for set.
func (s *Session) acquire(set *CounterSet) error {
	if countingWindow.CompareAndSwap(nil, set) {
		return nil
	}
	if countingWindow.Load() == set {
		return ErrAlreadyOpen
	}
	return ErrCountingBusy
}

func (s *Session) release(set *CounterSet) {
	if !countingWindow.CompareAndSwap(set, nil) {
		klog.Warningf("papi counting context released by %p, which does not hold it", set)
	}
}

func ok(code int32) bool {
	return code == libpapi.OK
}
