package papi

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyOpen is returned by Open on a set whose window is open.
	ErrAlreadyOpen = errors.New("counting window already open")
	// ErrCountingBusy is returned by Open while another set in the process holds
	// the counting context. It wraps ErrAlreadyOpen.
	ErrCountingBusy = fmt.Errorf("%w: counting context held by another counter set", ErrAlreadyOpen)
	// ErrNotOpen is returned by Close and Read on a set without an open window.
	ErrNotOpen = errors.New("counting window not open")
	// ErrNoEvents is returned when a counter set is built without events.
	ErrNoEvents = errors.New("counter set requires at least one event")
)

// LibraryUnavailableError reports that the shared library could not be loaded.
type LibraryUnavailableError struct {
	Path string
	Err  error
}

func (e *LibraryUnavailableError) Error() string {
	return fmt.Sprintf("papi library %s unavailable: %v", e.Path, e.Err)
}

func (e *LibraryUnavailableError) Unwrap() error { return e.Err }

// InitializationError reports a negative result from PAPI_library_init.
type InitializationError struct {
	Code    int32
	Message string
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("failed to initialize papi: error code %d (%s)", e.Code, e.Message)
}

// VersionMismatchError reports that the library negotiated a different version
// than the one requested.
type VersionMismatchError struct {
	Requested Version
	Actual    Version
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("papi version mismatch: requested %s, library reports %s", e.Requested, e.Actual)
}

// NotFoundError reports a symbol that matches no native or preset event.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("papi event %q not found", e.Name)
}

// CounterError carries a failing status from a native entry point together with the
// library's description of it.
type CounterError struct {
	Op      string
	Code    int32
	Message string
}

func (e *CounterError) Error() string {
	return fmt.Sprintf("failed to %s: papi error code %d (%s)", e.Op, e.Code, e.Message)
}
