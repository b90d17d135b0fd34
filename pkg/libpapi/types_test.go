package libpapi

import (
	"testing"
	"unsafe"
)

func TestEventInfoLayout(t *testing.T) {
	if got := unsafe.Sizeof(EventInfo{}); got != EventInfoBytes {
		t.Fatalf("sizeof(EventInfo) = %d, want %d", got, EventInfoBytes)
	}

	var info EventInfo
	offsets := []struct {
		field string
		got   uintptr
		want  uintptr
	}{
		{"Symbol", unsafe.Offsetof(info.Symbol), 4},
		{"ShortDescr", unsafe.Offsetof(info.ShortDescr), 1028},
		{"LongDescr", unsafe.Offsetof(info.LongDescr), 1092},
		{"ComponentIndex", unsafe.Offsetof(info.ComponentIndex), 2116},
		{"Units", unsafe.Offsetof(info.Units), 2120},
		{"Location", unsafe.Offsetof(info.Location), 2184},
		{"Count", unsafe.Offsetof(info.Count), 2208},
		{"Derived", unsafe.Offsetof(info.Derived), 2216},
		{"Postfix", unsafe.Offsetof(info.Postfix), 2280},
		{"Code", unsafe.Offsetof(info.Code), 2536},
		{"Name", unsafe.Offsetof(info.Name), 2584},
		{"Note", unsafe.Offsetof(info.Note), 5656},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offsetof(%s) = %d, want %d", o.field, o.got, o.want)
		}
	}
}

func TestCString(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", []byte{0, 0, 0}, ""},
		{"terminated", []byte{'P', 'A', 'P', 'I', 0, 'x'}, "PAPI"},
		{"unterminated", []byte{'a', 'b', 'c'}, "abc"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CString(tt.in); got != tt.want {
				t.Errorf("CString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSetCString(t *testing.T) {
	var buf [8]byte
	for i := range buf {
		buf[i] = 'z'
	}
	SetCString(buf[:], "PAPI_TOT_CYC")
	if got := CString(buf[:]); got != "PAPI_TO" {
		t.Errorf("truncated = %q, want %q", got, "PAPI_TO")
	}

	SetCString(buf[:], "ab")
	if got := CString(buf[:]); got != "ab" {
		t.Errorf("short = %q, want %q", got, "ab")
	}
	if buf[7] != 0 {
		t.Errorf("tail not cleared: %q", buf[:])
	}
}
