//go:build linux && cgo
// +build linux,cgo

package libpapi

import (
	"fmt"
	"unsafe"

	"k8s.io/klog/v2"
)

// #cgo LDFLAGS: -ldl
// #include <dlfcn.h>
// #include <stdlib.h>
//
// typedef int (*papi_void_fn)(void);
// typedef int (*papi_int_fn)(int);
// typedef int (*papi_codes_fn)(int *, int);
// typedef int (*papi_values_fn)(long long *, int);
// typedef int (*papi_info_fn)(int, void *);
// typedef int (*papi_enum_fn)(int *, int);
// typedef char *(*papi_strerror_fn)(int);
//
// static int call_void(void *fn) { return ((papi_void_fn)fn)(); }
// static int call_int(void *fn, int a) { return ((papi_int_fn)fn)(a); }
// static int call_codes(void *fn, int *codes, int n) { return ((papi_codes_fn)fn)(codes, n); }
// static int call_values(void *fn, long long *values, int n) { return ((papi_values_fn)fn)(values, n); }
// static int call_info(void *fn, int code, void *info) { return ((papi_info_fn)fn)(code, info); }
// static int call_enum(void *fn, int *code, int modifier) { return ((papi_enum_fn)fn)(code, modifier); }
// static char *call_strerror(void *fn, int code) { return ((papi_strerror_fn)fn)(code); }
import "C"

// Library holds the entry points resolved from a loaded libpapi shared object.
// The shared object is never unloaded.
type Library struct {
	path   string
	handle unsafe.Pointer

	isInitialized unsafe.Pointer
	libraryInit   unsafe.Pointer
	numCounters   unsafe.Pointer
	numComponents unsafe.Pointer
	startCounters unsafe.Pointer
	stopCounters  unsafe.Pointer
	readCounters  unsafe.Pointer
	queryEvent    unsafe.Pointer
	getEventInfo  unsafe.Pointer
	enumEvent     unsafe.Pointer
	strerror      unsafe.Pointer
}

// Open loads the shared object at path with dlopen and resolves every entry point.
func Open(path string) (*Library, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	handle := C.dlopen(cpath, C.RTLD_NOW|C.RTLD_GLOBAL)
	if handle == nil {
		return nil, fmt.Errorf("failed to load %s: %s", path, C.GoString(C.dlerror()))
	}

	lib := &Library{path: path, handle: handle}
	symbols := []struct {
		name string
		fn   *unsafe.Pointer
	}{
		{"PAPI_is_initialized", &lib.isInitialized},
		{"PAPI_library_init", &lib.libraryInit},
		{"PAPI_num_counters", &lib.numCounters},
		{"PAPI_num_components", &lib.numComponents},
		{"PAPI_start_counters", &lib.startCounters},
		{"PAPI_stop_counters", &lib.stopCounters},
		{"PAPI_read_counters", &lib.readCounters},
		{"PAPI_query_event", &lib.queryEvent},
		{"PAPI_get_event_info", &lib.getEventInfo},
		{"PAPI_enum_event", &lib.enumEvent},
		{"PAPI_strerror", &lib.strerror},
	}
	for _, sym := range symbols {
		cname := C.CString(sym.name)
		fn := C.dlsym(handle, cname)
		C.free(unsafe.Pointer(cname))
		if fn == nil {
			C.dlclose(handle)
			return nil, fmt.Errorf("failed to resolve %s in %s", sym.name, path)
		}
		*sym.fn = fn
	}
	klog.V(2).Infof("loaded %s", path)
	return lib, nil
}

// Path returns the path the library was loaded from.
func (l *Library) Path() string {
	return l.path
}

func (l *Library) IsInitialized() bool {
	return C.call_void(l.isInitialized) != 0
}

func (l *Library) LibraryInit(version int32) int32 {
	return int32(C.call_int(l.libraryInit, C.int(version)))
}

func (l *Library) NumCounters() int32 {
	return int32(C.call_void(l.numCounters))
}

func (l *Library) NumComponents() int32 {
	return int32(C.call_void(l.numComponents))
}

func (l *Library) StartCounters(codes []int32) int32 {
	if len(codes) == 0 {
		return EINVAL
	}
	return int32(C.call_codes(l.startCounters, (*C.int)(unsafe.Pointer(&codes[0])), C.int(len(codes))))
}

func (l *Library) StopCounters(values []int64) int32 {
	if len(values) == 0 {
		return EINVAL
	}
	return int32(C.call_values(l.stopCounters, (*C.longlong)(unsafe.Pointer(&values[0])), C.int(len(values))))
}

func (l *Library) ReadCounters(values []int64) int32 {
	if len(values) == 0 {
		return EINVAL
	}
	return int32(C.call_values(l.readCounters, (*C.longlong)(unsafe.Pointer(&values[0])), C.int(len(values))))
}

func (l *Library) QueryEvent(code int32) int32 {
	return int32(C.call_int(l.queryEvent, C.int(code)))
}

func (l *Library) GetEventInfo(code int32, info *EventInfo) int32 {
	return int32(C.call_info(l.getEventInfo, C.int(code), unsafe.Pointer(info)))
}

func (l *Library) EnumEvent(code *int32, modifier int32) int32 {
	c := C.int(*code)
	ret := C.call_enum(l.enumEvent, &c, C.int(modifier))
	*code = int32(c)
	return int32(ret)
}

func (l *Library) Strerror(code int32) string {
	s := C.call_strerror(l.strerror, C.int(code))
	if s == nil {
		return fmt.Sprintf("unknown error %d", code)
	}
	return C.GoString(s)
}
