package exporter

import (
	"fmt"
	"net/http"

	"github.com/Rouzip/gopapi/pkg/papi"
	json "github.com/goccy/go-json"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"k8s.io/klog/v2"
)

type eventJSON struct {
	Symbol     string     `json:"symbol"`
	Code       string     `json:"code"`
	Origin     string     `json:"origin"`
	ShortDescr string     `json:"short_descr,omitempty"`
	LongDescr  string     `json:"long_descr,omitempty"`
	Units      string     `json:"units,omitempty"`
	Derived    string     `json:"derived,omitempty"`
	Terms      []termJSON `json:"terms,omitempty"`
}

type termJSON struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func newEventJSON(ev *papi.EventDescriptor) eventJSON {
	out := eventJSON{
		Symbol:     ev.Symbol,
		Code:       fmt.Sprintf("%#08x", ev.Code),
		Origin:     ev.Origin().String(),
		ShortDescr: ev.ShortDescr,
		LongDescr:  ev.LongDescr,
		Units:      ev.Units,
		Derived:    ev.Derived,
	}
	for _, t := range ev.Terms {
		out.Terms = append(out.Terms, termJSON{Code: fmt.Sprintf("%#08x", t.Code), Name: t.Name})
	}
	return out
}

// EventsHandler serves every event of cat as a JSON array sorted by symbol.
func EventsHandler(cat *papi.Catalog) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		index, err := cat.Index()
		if err != nil {
			klog.Errorf("failed to index events: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		names := maps.Keys(index)
		slices.Sort(names)

		events := make([]eventJSON, 0, len(names))
		for _, name := range names {
			events = append(events, newEventJSON(index[name]))
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(events); err != nil {
			klog.Errorf("failed to write events: %v", err)
		}
	})
}
