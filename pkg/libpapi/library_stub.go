//go:build !linux || !cgo
// +build !linux !cgo

package libpapi

import (
	"errors"
	"fmt"
)

var errUnsupported = errors.New("libpapi requires cgo on linux")

// Library is unavailable in this build; Open always fails.
type Library struct{}

func Open(path string) (*Library, error) {
	return nil, fmt.Errorf("failed to load %s: %w", path, errUnsupported)
}

func (l *Library) Path() string { return "" }
func (l *Library) IsInitialized() bool { return false }
func (l *Library) LibraryInit(version int32) int32 { return ENOINIT }
func (l *Library) NumCounters() int32 { return ENOINIT }
func (l *Library) NumComponents() int32 { return ENOINIT }
func (l *Library) StartCounters(codes []int32) int32 { return ENOINIT }
func (l *Library) StopCounters(values []int64) int32 { return ENOINIT }
func (l *Library) ReadCounters(values []int64) int32 { return ENOINIT }
func (l *Library) QueryEvent(code int32) int32 { return ENOINIT }
func (l *Library) GetEventInfo(code int32, info *EventInfo) int32 { return ENOINIT }
func (l *Library) EnumEvent(code *int32, modifier int32) int32 { return ENOINIT }
func (l *Library) Strerror(code int32) string { return errUnsupported.Error() }
