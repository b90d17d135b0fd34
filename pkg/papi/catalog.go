package papi

import (
	"fmt"
	"sync"

	"github.com/Rouzip/gopapi/pkg/libpapi"
	"golang.org/x/sync/singleflight"
	"k8s.io/klog/v2"
)

// Catalog discovers the events of a session's library. It reads library state only
// and may be used from several goroutines.
type Catalog struct {
	session *Session

	group   singleflight.Group
	indexMu sync.RWMutex
	index   map[string]*EventDescriptor
}

// EventIterator walks the library's enumeration table for one origin. It yields
// each event once and cannot be restarted.
//
//	it := cat.Enumerate(papi.Preset)
//	for it.Next() {
//		ev := it.Event()
//		...
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type EventIterator struct {
	session *Session
	origin  Origin
	cursor  int32
	started bool
	done    bool
	event   *EventDescriptor
	err     error
}

// Enumerate returns an iterator over the events of origin.
func (c *Catalog) Enumerate(origin Origin) *EventIterator {
	it := &EventIterator{session: c.session, origin: origin}
	mask, known := origin.mask()
	if !known {
		it.err = fmt.Errorf("unknown event origin %s", origin)
		it.done = true
		return it
	}
	it.cursor = int32(mask)
	return it
}

// Next advances to the next event the library reports as available.
func (it *EventIterator) Next() bool {
	lib := it.session.lib
	for !it.done {
		if !it.started {
			if err := it.session.EnsureInitialized(CurrentVersion); err != nil {
				it.err = err
				it.done = true
				break
			}
			it.started = true
		} else if !ok(lib.EnumEvent(&it.cursor, libpapi.EnumAll)) {
			it.done = true
			break
		}

		if !ok(lib.QueryEvent(it.cursor)) {
			continue
		}
		var info libpapi.EventInfo
		if code := lib.GetEventInfo(it.cursor, &info); !ok(code) {
			it.err = it.session.counterError(fmt.Sprintf("get event info for %#08x", uint32(it.cursor)), code)
			it.done = true
			break
		}
		it.event = newEventDescriptor(&info)
		return true
	}
	it.event = nil
	return false
}

// Event returns the event Next stopped at.
func (it *EventIterator) Event() *EventDescriptor {
	return it.event
}

// Err returns the error that ended the iteration, if any.
func (it *EventIterator) Err() error {
	return it.err
}

// Events collects every event of origin.
func (c *Catalog) Events(origin Origin) ([]*EventDescriptor, error) {
	var events []*EventDescriptor
	it := c.Enumerate(origin)
	for it.Next() {
		events = append(events, it.Event())
	}
	return events, it.Err()
}

// FindBySymbol walks native events, then preset events, and returns the first whose
// symbol equals name. Every call walks the library again; use Lookup for repeated
// resolution.
func (c *Catalog) FindBySymbol(name string) (*EventDescriptor, error) {
	for _, origin := range []Origin{Native, Preset} {
		it := c.Enumerate(origin)
		for it.Next() {
			if ev := it.Event(); ev.Symbol == name {
				return ev, nil
			}
		}
		if err := it.Err(); err != nil {
			return nil, err
		}
	}
	return nil, &NotFoundError{Name: name}
}

// Index returns every event keyed by symbol, built on first use. A native event
// shadows a preset event of the same symbol, as in FindBySymbol. The returned map is
// shared and must not be modified.
func (c *Catalog) Index() (map[string]*EventDescriptor, error) {
	c.indexMu.RLock()
	index := c.index
	c.indexMu.RUnlock()
	if index != nil {
		return index, nil
	}

	v, err, _ := c.group.Do("index", func() (interface{}, error) {
		c.indexMu.RLock()
		index := c.index
		c.indexMu.RUnlock()
		if index != nil {
			return index, nil
		}

		index = make(map[string]*EventDescriptor)
		for _, origin := range []Origin{Native, Preset} {
			it := c.Enumerate(origin)
			for it.Next() {
				ev := it.Event()
				if _, seen := index[ev.Symbol]; !seen {
					index[ev.Symbol] = ev
				}
			}
			if err := it.Err(); err != nil {
				return nil, err
			}
		}
		klog.V(4).Infof("indexed %d papi events", len(index))

		c.indexMu.Lock()
		c.index = index
		c.indexMu.Unlock()
		return index, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]*EventDescriptor), nil
}

// Lookup resolves name through Index.
func (c *Catalog) Lookup(name string) (*EventDescriptor, error) {
	index, err := c.Index()
	if err != nil {
		return nil, err
	}
	ev, found := index[name]
	if !found {
		return nil, &NotFoundError{Name: name}
	}
	return ev, nil
}
