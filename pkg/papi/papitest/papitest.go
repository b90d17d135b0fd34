// Package papitest provides a scriptable stand-in for the PAPI library.
// This package is only meant for tests.
package papitest

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Rouzip/gopapi/pkg/libpapi"
)

// Event describes one event the fake library exposes.
type Event struct {
	Code       uint32
	Symbol     string
	ShortDescr string
	LongDescr  string
	Units      string
	Derived    string
	Postfix    string
	Note       string
	Component  int32
	TermCodes  []uint32
	TermNames  []string
}

// Preset returns a preset event with the given table index.
func Preset(index uint32, symbol string) Event {
	return Event{Code: libpapi.PresetMask | index, Symbol: symbol}
}

// Native returns a native event with the given table index.
func Native(index uint32, symbol string) Event {
	return Event{Code: libpapi.NativeMask | index, Symbol: symbol}
}

// Library is a fake PAPI library. Its exported fields script results and may be set
// before use; the recorded calls are read through Calls and Started.
type Library struct {
	// InitResult, when non-nil, is returned by LibraryInit instead of echoing the
	// requested version.
	InitResult *int32
	// AlreadyInitialized makes IsInitialized report true before any LibraryInit.
	AlreadyInitialized bool

	Counters   int32
	Components int32

	StartStatus int32
	StopStatus  int32
	ReadStatus  int32
	InfoStatus  int32

	mu       sync.Mutex
	events   []Event
	byCode   map[uint32]Event
	readings [][]int64
	running  []int32
	inited   bool
	calls    map[string]int
	started  [][]int32
}

// New returns a fake library exposing events. Events are enumerated in code order.
func New(events ...Event) *Library {
	l := &Library{
		Counters:   4,
		Components: 1,
		byCode:     make(map[uint32]Event),
		calls:      make(map[string]int),
	}
	for _, ev := range events {
		l.events = append(l.events, ev)
		l.byCode[ev.Code] = ev
	}
	sort.Slice(l.events, func(i, j int) bool { return l.events[i].Code < l.events[j].Code })
	return l
}

// QueueReadings appends the values returned by the next StopCounters or
// ReadCounters call. Without queued values those calls report zeros.
func (l *Library) QueueReadings(values ...[]int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.readings = append(l.readings, values...)
}

// Calls returns how often the named entry point was called, e.g. "StartCounters".
func (l *Library) Calls(name string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[name]
}

// Started returns the code lists passed to StartCounters, in call order.
func (l *Library) Started() [][]int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([][]int32, len(l.started))
	for i, codes := range l.started {
		out[i] = append([]int32(nil), codes...)
	}
	return out
}

// Running reports whether counters are started.
func (l *Library) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running != nil
}

func (l *Library) record(name string) {
	l.calls[name]++
}

func (l *Library) IsInitialized() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("IsInitialized")
	return l.inited || l.AlreadyInitialized
}

func (l *Library) LibraryInit(version int32) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("LibraryInit")
	if l.InitResult != nil {
		if *l.InitResult == version {
			l.inited = true
		}
		return *l.InitResult
	}
	l.inited = true
	return version
}

func (l *Library) NumCounters() int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("NumCounters")
	return l.Counters
}

func (l *Library) NumComponents() int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("NumComponents")
	return l.Components
}

func (l *Library) StartCounters(codes []int32) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("StartCounters")
	l.started = append(l.started, append([]int32(nil), codes...))
	switch {
	case l.StartStatus != libpapi.OK:
		return l.StartStatus
	case l.running != nil:
		return libpapi.EISRUN
	case len(codes) == 0:
		return libpapi.EINVAL
	case int32(len(codes)) > l.Counters:
		return libpapi.ECNFLCT
	}
	for _, c := range codes {
		if _, found := l.byCode[uint32(c)]; !found {
			return libpapi.ENOEVNT
		}
	}
	l.running = append([]int32(nil), codes...)
	return libpapi.OK
}

func (l *Library) StopCounters(values []int64) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("StopCounters")
	if l.StopStatus != libpapi.OK {
		l.running = nil
		return l.StopStatus
	}
	if status := l.fill(values); status != libpapi.OK {
		return status
	}
	l.running = nil
	return libpapi.OK
}

func (l *Library) ReadCounters(values []int64) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("ReadCounters")
	if l.ReadStatus != libpapi.OK {
		return l.ReadStatus
	}
	return l.fill(values)
}

func (l *Library) fill(values []int64) int32 {
	if l.running == nil {
		return libpapi.ENOTRUN
	}
	if len(values) != len(l.running) {
		return libpapi.EINVAL
	}
	for i := range values {
		values[i] = 0
	}
	if len(l.readings) > 0 {
		copy(values, l.readings[0])
		l.readings = l.readings[1:]
	}
	return libpapi.OK
}

func (l *Library) QueryEvent(code int32) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("QueryEvent")
	if _, found := l.byCode[uint32(code)]; !found {
		return libpapi.ENOEVNT
	}
	return libpapi.OK
}

func (l *Library) GetEventInfo(code int32, info *libpapi.EventInfo) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("GetEventInfo")
	if l.InfoStatus != libpapi.OK {
		return l.InfoStatus
	}
	ev, found := l.byCode[uint32(code)]
	if !found {
		return libpapi.ENOEVNT
	}
	*info = libpapi.EventInfo{}
	info.EventCode = ev.Code
	info.ComponentIndex = ev.Component
	libpapi.SetCString(info.Symbol[:], ev.Symbol)
	libpapi.SetCString(info.ShortDescr[:], ev.ShortDescr)
	libpapi.SetCString(info.LongDescr[:], ev.LongDescr)
	libpapi.SetCString(info.Units[:], ev.Units)
	libpapi.SetCString(info.Derived[:], ev.Derived)
	libpapi.SetCString(info.Postfix[:], ev.Postfix)
	libpapi.SetCString(info.Note[:], ev.Note)
	for i := 0; i < len(ev.TermCodes) && i < libpapi.MaxInfoTerms; i++ {
		info.Code[i] = ev.TermCodes[i]
		if i < len(ev.TermNames) {
			libpapi.SetCString(info.Name[i][:], ev.TermNames[i])
		}
		info.Count++
	}
	return libpapi.OK
}

// EnumEvent moves code to the next event of the same origin.
func (l *Library) EnumEvent(code *int32, modifier int32) int32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("EnumEvent")
	if modifier != libpapi.EnumAll {
		return libpapi.EINVAL
	}
	cur := uint32(*code)
	origin := cur & (libpapi.PresetMask | libpapi.NativeMask)
	for _, ev := range l.events {
		if ev.Code > cur && ev.Code&(libpapi.PresetMask|libpapi.NativeMask) == origin {
			*code = int32(ev.Code)
			return libpapi.OK
		}
	}
	return libpapi.ENOEVNT
}

var messages = map[int32]string{
	libpapi.EINVAL:  "Invalid argument",
	libpapi.ENOEVNT: "Event does not exist",
	libpapi.ECNFLCT: "Event exists, but cannot be counted due to counter resource limitations",
	libpapi.ENOTRUN: "EventSet is currently not running",
	libpapi.EISRUN:  "EventSet is currently counting",
	libpapi.ENOCNTR: "Hardware does not support performance counters",
	libpapi.ESYS:    "A System/C library call failed",
	libpapi.ENOINIT: "PAPI hasn't been initialized yet",
}

func (l *Library) Strerror(code int32) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("Strerror")
	if msg, found := messages[code]; found {
		return msg
	}
	return fmt.Sprintf("Unknown error code %d", code)
}

// Int32 returns a pointer to v, for InitResult.
func Int32(v int32) *int32 {
	return &v
}
