package papi

import (
	"sync"

	"github.com/Rouzip/gopapi/pkg/libpapi"
	"k8s.io/klog/v2"
)

// Library is the set of PAPI entry points this package calls. Status results follow
// the library's convention: libpapi.OK on success, a negative code otherwise.
// *libpapi.Library implements it.
type Library interface {
	IsInitialized() bool
	LibraryInit(version int32) int32
	NumCounters() int32
	NumComponents() int32
	StartCounters(codes []int32) int32
	StopCounters(values []int64) int32
	ReadCounters(values []int64) int32
	QueryEvent(code int32) int32
	GetEventInfo(code int32, info *libpapi.EventInfo) int32
	EnumEvent(code *int32, modifier int32) int32
	Strerror(code int32) string
}

var _ Library = (*libpapi.Library)(nil)

// DefaultLibraryPath is the shared object Default loads.
const DefaultLibraryPath = "libpapi.so"

var (
	defaultMu      sync.Mutex
	defaultPath    string
	defaultSession *Session
)

// Open returns the process-wide session, loading the library at path on first use.
// Once a load has succeeded every later call returns that session, whatever path it
// names. A failed load is not remembered, so a later call may try again.
func Open(path string) (*Session, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultSession != nil {
		if path != defaultPath {
			klog.Warningf("papi already loaded from %s, ignoring %s", defaultPath, path)
		}
		return defaultSession, nil
	}

	lib, err := libpapi.Open(path)
	if err != nil {
		return nil, &LibraryUnavailableError{Path: path, Err: err}
	}
	defaultPath = path
	defaultSession = NewSession(lib)
	return defaultSession, nil
}

// Default is Open(DefaultLibraryPath).
func Default() (*Session, error) {
	return Open(DefaultLibraryPath)
}
