// Package papi binds the PAPI performance-counter library.
//
// A Session owns the one-time initialization of the library. Its Catalog
// enumerates the native and preset events the library knows about and resolves
// them by symbol. A CounterSet binds a fixed list of events and counts them over
// repeated windows, accumulating the readings of every window:
//
//	s, err := papi.Default()
//	if err != nil {
//		klog.Fatal(err)
//	}
//	set, err := papi.NewCounterSet(s.Catalog(), papi.EventName("PAPI_TOT_CYC"), papi.EventName("PAPI_TOT_INS"))
//	if err != nil {
//		klog.Fatal(err)
//	}
//	err = set.Measure(func() error {
//		work()
//		return nil
//	})
//	klog.Info(set.Snapshot())
//
// The library counts through a single implicit context per thread, so only one
// CounterSet of a Session may have an open window at a time, and a window pins
// the calling goroutine to its OS thread until it is closed.
package papi
