package papi

import (
	"errors"
	"sync"
	"testing"

	"github.com/Rouzip/gopapi/pkg/libpapi"
	"github.com/Rouzip/gopapi/pkg/papi/papitest"
	"github.com/google/go-cmp/cmp"
)

func testLibrary() *papitest.Library {
	cyc := papitest.Preset(0x3b, "PAPI_TOT_CYC")
	cyc.ShortDescr = "Total cycles"
	cyc.Units = "cycles"
	cyc.TermCodes = []uint32{libpapi.NativeMask | 1}
	cyc.TermNames = []string{"CPU_CLK_UNHALTED"}
	return papitest.New(
		papitest.Preset(0x00, "PAPI_L1_DCM"),
		papitest.Preset(0x32, "PAPI_TOT_INS"),
		cyc,
		papitest.Native(0x1, "CPU_CLK_UNHALTED"),
		papitest.Native(0x2, "INST_RETIRED"),
		papitest.Native(0x7, "PAPI_L1_DCM"),
	)
}

func symbols(events []*EventDescriptor) []string {
	var out []string
	for _, ev := range events {
		out = append(out, ev.Symbol)
	}
	return out
}

func TestEnumerate(t *testing.T) {
	cat := NewSession(testLibrary()).Catalog()

	tests := []struct {
		origin Origin
		want   []string
	}{
		{Native, []string{"CPU_CLK_UNHALTED", "INST_RETIRED", "PAPI_L1_DCM"}},
		{Preset, []string{"PAPI_L1_DCM", "PAPI_TOT_INS", "PAPI_TOT_CYC"}},
	}
	for _, tt := range tests {
		t.Run(tt.origin.String(), func(t *testing.T) {
			events, err := cat.Events(tt.origin)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, symbols(events)); diff != "" {
				t.Errorf("Events(%s) mismatch (-want +got):\n%s", tt.origin, diff)
			}
			for _, ev := range events {
				if ev.Origin() != tt.origin {
					t.Errorf("%s has origin %s, want %s", ev, ev.Origin(), tt.origin)
				}
				native := ev.Code&libpapi.NativeMask != 0
				preset := ev.Code&libpapi.PresetMask != 0
				if native == preset {
					t.Errorf("%s: native bit %v, preset bit %v", ev, native, preset)
				}
			}
		})
	}
}

func TestEnumerateInitializes(t *testing.T) {
	lib := testLibrary()
	it := NewSession(lib).Catalog().Enumerate(Preset)
	if lib.Calls("LibraryInit") != 0 {
		t.Fatal("Enumerate initialized eagerly")
	}
	if !it.Next() {
		t.Fatalf("Next() = false, err %v", it.Err())
	}
	if lib.Calls("LibraryInit") != 1 {
		t.Errorf("LibraryInit called %d times, want 1", lib.Calls("LibraryInit"))
	}
}

func TestEnumerateDoesNotRestart(t *testing.T) {
	it := NewSession(testLibrary()).Catalog().Enumerate(Native)
	n := 0
	for it.Next() {
		n++
	}
	if n != 3 {
		t.Fatalf("got %d events, want 3", n)
	}
	if it.Next() || it.Event() != nil {
		t.Error("exhausted iterator yielded again")
	}
}

func TestEnumerateSkipsUnavailable(t *testing.T) {
	// Only the seed code is absent; the walk still reaches the rest of the table.
	lib := papitest.New(papitest.Preset(0x5, "PAPI_BR_MSP"))
	events, err := NewSession(lib).Catalog().Events(Preset)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"PAPI_BR_MSP"}, symbols(events)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEnumerateInfoFailure(t *testing.T) {
	lib := testLibrary()
	lib.InfoStatus = libpapi.ESYS
	_, err := NewSession(lib).Catalog().Events(Preset)
	var cerr *CounterError
	if !errors.As(err, &cerr) || cerr.Code != libpapi.ESYS {
		t.Errorf("Events() error = %v, want ESYS", err)
	}
}

func TestEnumerateUnknownOrigin(t *testing.T) {
	_, err := NewSession(testLibrary()).Catalog().Events(UnknownOrigin)
	if err == nil {
		t.Error("Events(UnknownOrigin) succeeded")
	}
}

func TestEventDescriptorDecode(t *testing.T) {
	ev, err := NewSession(testLibrary()).Catalog().FindBySymbol("PAPI_TOT_CYC")
	if err != nil {
		t.Fatal(err)
	}
	want := &EventDescriptor{
		Code:       libpapi.PresetMask | 0x3b,
		Symbol:     "PAPI_TOT_CYC",
		ShortDescr: "Total cycles",
		Units:      "cycles",
		Terms:      []Term{{Code: libpapi.NativeMask | 1, Name: "CPU_CLK_UNHALTED"}},
	}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Errorf("descriptor mismatch (-want +got):\n%s", diff)
	}
}

func TestFindBySymbol(t *testing.T) {
	cat := NewSession(testLibrary()).Catalog()

	ev, err := cat.FindBySymbol("PAPI_TOT_INS")
	if err != nil {
		t.Fatal(err)
	}
	if ev.Code != libpapi.PresetMask|0x32 {
		t.Errorf("PAPI_TOT_INS code = %#x", ev.Code)
	}

	// Native events are searched first.
	ev, err = cat.FindBySymbol("PAPI_L1_DCM")
	if err != nil {
		t.Fatal(err)
	}
	if ev.Origin() != Native {
		t.Errorf("PAPI_L1_DCM resolved to %s event, want native", ev.Origin())
	}

	if _, err := cat.FindBySymbol("papi_tot_ins"); err == nil {
		t.Error("lookup is not case sensitive")
	}
}

func TestFindBySymbolNotFound(t *testing.T) {
	lib := testLibrary()
	cat := NewSession(lib).Catalog()

	_, err := cat.FindBySymbol("NO_SUCH_EVENT")
	var nerr *NotFoundError
	if !errors.As(err, &nerr) || nerr.Name != "NO_SUCH_EVENT" {
		t.Fatalf("FindBySymbol = %v, want *NotFoundError", err)
	}
	for _, fn := range []string{"StartCounters", "StopCounters", "ReadCounters"} {
		if n := lib.Calls(fn); n != 0 {
			t.Errorf("%s called %d times", fn, n)
		}
	}
}

func TestIndex(t *testing.T) {
	lib := testLibrary()
	cat := NewSession(lib).Catalog()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cat.Index(); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	queries := lib.Calls("QueryEvent")

	index, err := cat.Index()
	if err != nil {
		t.Fatal(err)
	}
	if len(index) != 5 {
		t.Errorf("len(index) = %d, want 5", len(index))
	}
	if index["PAPI_L1_DCM"].Origin() != Native {
		t.Error("preset event shadows native event in index")
	}
	if lib.Calls("QueryEvent") != queries {
		t.Error("second Index() walked the library again")
	}

	if ev, err := cat.Lookup("INST_RETIRED"); err != nil || ev.Code != libpapi.NativeMask|2 {
		t.Errorf("Lookup(INST_RETIRED) = %v, %v", ev, err)
	}
	var nerr *NotFoundError
	if _, err := cat.Lookup("NOPE"); !errors.As(err, &nerr) {
		t.Errorf("Lookup(NOPE) error = %v, want *NotFoundError", err)
	}
}

func TestIndexFailureNotCached(t *testing.T) {
	lib := testLibrary()
	lib.InfoStatus = libpapi.ESYS
	cat := NewSession(lib).Catalog()
	if _, err := cat.Index(); err == nil {
		t.Fatal("Index() succeeded")
	}
	lib.InfoStatus = libpapi.OK
	if _, err := cat.Index(); err != nil {
		t.Errorf("Index() after recovery: %v", err)
	}
}
