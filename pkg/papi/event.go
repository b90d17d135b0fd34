package papi

import (
	"fmt"

	"github.com/Rouzip/gopapi/pkg/libpapi"
)

// Origin tells native events apart from preset events by the high bits of their
// code.
type Origin int

const (
	UnknownOrigin Origin = iota
	Native
	Preset
)

func (o Origin) mask() (uint32, bool) {
	switch o {
	case Native:
		return libpapi.NativeMask, true
	case Preset:
		return libpapi.PresetMask, true
	}
	return 0, false
}

func (o Origin) String() string {
	switch o {
	case Native:
		return "native"
	case Preset:
		return "preset"
	}
	return fmt.Sprintf("Origin(%d)", int(o))
}

// OriginOf classifies an event code.
func OriginOf(code uint32) Origin {
	switch {
	case code&libpapi.PresetMask != 0 && code&libpapi.NativeMask == 0:
		return Preset
	case code&libpapi.NativeMask != 0 && code&libpapi.PresetMask == 0:
		return Native
	}
	return UnknownOrigin
}

// Term is one of the native events a derived event is computed from.
type Term struct {
	Code uint32
	Name string
}

// EventDescriptor is the decoded description of one event. Descriptors are only
// produced by a Catalog and must not be modified.
type EventDescriptor struct {
	Code           uint32
	Symbol         string
	ShortDescr     string
	LongDescr      string
	ComponentIndex int32
	Units          string
	Location       int32
	DataType       int32
	ValueType      int32
	TimeScope      int32
	UpdateType     int32
	UpdateFreq     int32
	EventType      uint32
	Derived        string
	Postfix        string
	Terms          []Term
	Note           string
}

func newEventDescriptor(info *libpapi.EventInfo) *EventDescriptor {
	n := int(info.Count)
	if n > libpapi.MaxInfoTerms {
		n = libpapi.MaxInfoTerms
	}
	var terms []Term
	if n > 0 {
		terms = make([]Term, n)
		for i := range terms {
			terms[i] = Term{
				Code: info.Code[i],
				Name: libpapi.CString(info.Name[i][:]),
			}
		}
	}
	return &EventDescriptor{
		Code:           info.EventCode,
		Symbol:         libpapi.CString(info.Symbol[:]),
		ShortDescr:     libpapi.CString(info.ShortDescr[:]),
		LongDescr:      libpapi.CString(info.LongDescr[:]),
		ComponentIndex: info.ComponentIndex,
		Units:          libpapi.CString(info.Units[:]),
		Location:       info.Location,
		DataType:       info.DataType,
		ValueType:      info.ValueType,
		TimeScope:      info.TimeScope,
		UpdateType:     info.UpdateType,
		UpdateFreq:     info.UpdateFreq,
		EventType:      info.EventType,
		Derived:        libpapi.CString(info.Derived[:]),
		Postfix:        libpapi.CString(info.Postfix[:]),
		Terms:          terms,
		Note:           libpapi.CString(info.Note[:]),
	}
}

// Origin reports whether the event is native or preset.
func (e *EventDescriptor) Origin() Origin {
	return OriginOf(e.Code)
}

func (e *EventDescriptor) String() string {
	return fmt.Sprintf("%s(%#08x)", e.Symbol, e.Code)
}

// Event is anything a CounterSet can be built from: a descriptor obtained from the
// catalog, or an EventName resolved through it.
type Event interface {
	resolve(c *Catalog) (*EventDescriptor, error)
}

// EventName is an event symbol such as "PAPI_TOT_CYC".
type EventName string

func (n EventName) resolve(c *Catalog) (*EventDescriptor, error) {
	return c.FindBySymbol(string(n))
}

func (e *EventDescriptor) resolve(*Catalog) (*EventDescriptor, error) {
	return e, nil
}

// EventNames converts symbols into Events.
func EventNames(names ...string) []Event {
	events := make([]Event, len(names))
	for i, n := range names {
		events[i] = EventName(n)
	}
	return events
}
