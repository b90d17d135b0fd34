// Package exporter measures configured counter sets on a schedule and publishes
// their totals as Prometheus metrics.
package exporter

import (
	"context"
	"fmt"
	"time"

	"github.com/Rouzip/gopapi/pkg/config"
	"github.com/Rouzip/gopapi/pkg/metrics"
	"github.com/Rouzip/gopapi/pkg/papi"
	"github.com/Rouzip/gopapi/pkg/workload"
	"go.uber.org/multierr"
	"k8s.io/apimachinery/pkg/util/wait"
	"k8s.io/klog/v2"
)

// Group is one counter set together with the kernel it counts over.
type Group struct {
	Name    string
	Set     *papi.CounterSet
	Kernel  workload.Kernel
	Windows int
}

// Exporter profiles its groups on a fixed interval.
type Exporter struct {
	groups   []*Group
	interval time.Duration
}

// New resolves every configured group against cat. Groups share the session's
// counting context and are measured one after another.
func New(cat *papi.Catalog, cfg *config.Config) (*Exporter, error) {
	e := &Exporter{interval: cfg.Interval}
	for _, g := range cfg.Groups {
		events := make([]papi.Event, 0, len(g.Events))
		for _, name := range g.Events {
			ev, err := cat.Lookup(name)
			if err != nil {
				metrics.RecordFailure(g.Name, "build")
				return nil, fmt.Errorf("group %q: %w", g.Name, err)
			}
			events = append(events, ev)
		}
		set, err := papi.NewCounterSet(cat, events...)
		if err != nil {
			metrics.RecordFailure(g.Name, "build")
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		size, thrash, err := g.Sizes()
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		kernel, err := workload.NewDot(size, thrash)
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", g.Name, err)
		}
		e.groups = append(e.groups, &Group{
			Name:    g.Name,
			Set:     set,
			Kernel:  kernel,
			Windows: g.Windows(),
		})
	}
	return e, nil
}

// Groups returns the measured groups in configuration order.
func (e *Exporter) Groups() []*Group {
	return e.groups
}

// Profile measures every group once and publishes the totals. A failing group does
// not stop the others.
func (e *Exporter) Profile() error {
	var errs error
	for _, g := range e.groups {
		if err := g.profile(); err != nil {
			klog.Errorf("failed to profile %s: %v", g.Name, err)
			errs = multierr.Append(errs, fmt.Errorf("group %q: %w", g.Name, err))
		}
		snapshot := g.Set.Snapshot()
		metrics.RecordSnapshot(g.Name, snapshot)
		klog.Infof("%s over %s: %v", g.Name, g.Kernel.Name(), snapshot)
	}
	return errs
}

func (g *Group) profile() error {
	for i := 0; i < g.Windows; i++ {
		start := time.Now()
		if err := g.Set.Measure(g.Kernel.Run); err != nil {
			metrics.RecordFailure(g.Name, "measure")
			return err
		}
		metrics.RecordWindow(g.Name, time.Since(start))
	}
	return nil
}

// Run profiles every interval until ctx is done.
func (e *Exporter) Run(ctx context.Context) {
	wait.UntilWithContext(ctx, func(ctx context.Context) {
		if err := e.Profile(); err != nil {
			klog.V(2).Infof("profiling round failed: %v", err)
		}
	}, e.interval)
}
