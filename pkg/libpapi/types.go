package libpapi

import "bytes"

// Status codes returned by the PAPI entry points.
// See papi.h, "Return Codes".
const (
	OK         = 0   /* No error */
	EINVAL     = -1  /* Invalid argument */
	ENOMEM     = -2  /* Insufficient memory */
	ESYS       = -3  /* A System/C library call failed */
	ECMP       = -4  /* Not supported by component */
	ECLOST     = -5  /* Access to the counters was lost or interrupted */
	EBUG       = -6  /* Internal error, please send mail to the developers */
	ENOEVNT    = -7  /* Event does not exist */
	ECNFLCT    = -8  /* Event exists, but cannot be counted due to counter resource limitations */
	ENOTRUN    = -9  /* EventSet is currently not running */
	EISRUN     = -10 /* EventSet is currently counting */
	ENOEVST    = -11 /* No such EventSet Available */
	ENOTPRESET = -12 /* Event in argument is not a valid preset */
	ENOCNTR    = -13 /* Hardware does not support performance counters */
	EMISC      = -14 /* Unknown error code */
	EPERM      = -15 /* Permission level does not permit operation */
	ENOINIT    = -16 /* PAPI hasn't been initialized yet */
)

// Event code origin bits.
const (
	PresetMask uint32 = 0x80000000
	NativeMask uint32 = 0x40000000
)

// Modifiers for PAPI_enum_event.
const (
	EnumEvents = 0
	EnumAll    = EnumEvents
)

// Capacities of the fixed buffers in PAPI_event_info_t.
const (
	MaxStrLen      = 128
	MinStrLen      = 64
	HugeStrLen     = 1024
	MaxInfoTerms   = 12
	Max2StrLen     = 2 * MaxStrLen
	EventInfoBytes = 6680
)

// EventInfo mirrors PAPI_event_info_t byte for byte so that a pointer to it can be
// handed to PAPI_get_event_info. Every field is 4-byte aligned, so the Go and C
// layouts agree without padding.
type EventInfo struct {
	EventCode      uint32
	Symbol         [HugeStrLen]byte
	ShortDescr     [MinStrLen]byte
	LongDescr      [HugeStrLen]byte
	ComponentIndex int32
	Units          [MinStrLen]byte
	Location       int32
	DataType       int32
	ValueType      int32
	TimeScope      int32
	UpdateType     int32
	UpdateFreq     int32
	Count          uint32 /* number of terms in Code and Name */
	EventType      uint32
	Derived        [MinStrLen]byte
	Postfix        [Max2StrLen]byte
	Code           [MaxInfoTerms]uint32
	Name           [MaxInfoTerms][Max2StrLen]byte
	Note           [HugeStrLen]byte
}

// CString decodes a NUL terminated fixed buffer. A buffer without a terminator is
// taken whole.
func CString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

// SetCString stores s into a fixed buffer, truncating so that the terminator fits.
func SetCString(dst []byte, s string) {
	n := copy(dst[:len(dst)-1], s)
	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
}
