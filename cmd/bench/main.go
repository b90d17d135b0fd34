package main

import (
	goflag "flag"
	"net/http"
	"sync"

	"github.com/Rouzip/gopapi/pkg/config"
	"github.com/Rouzip/gopapi/pkg/exporter"
	"github.com/Rouzip/gopapi/pkg/papi"
	"github.com/Rouzip/gopapi/pkg/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

var (
	configPath = flag.String("config", "", "path of the YAML configuration")
	library    = flag.String("library", "", "PAPI shared object, overrides the configuration")
	listen     = flag.String("listen", "", "metrics listen address, overrides the configuration")
)

// count events over the configured kernels and serve them as metrics
func main() {
	klog.InitFlags(nil)
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	flag.Parse()
	defer klog.Flush()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			klog.Fatal(err)
		}
	}
	if *library != "" {
		cfg.Library = *library
	}
	if *listen != "" {
		cfg.Listen = *listen
	}
	version, err := cfg.PAPIVersion()
	if err != nil {
		klog.Fatal(err)
	}

	session, err := papi.Open(cfg.Library)
	if err != nil {
		klog.Fatal(err)
	}
	if err := session.EnsureInitialized(version); err != nil {
		klog.Fatal(err)
	}
	if n, err := session.NumCounters(); err != nil {
		klog.Warningf("failed to count hardware counters: %v", err)
	} else {
		klog.Infof("papi %s initialized, %d hardware counters", version, n)
	}

	exp, err := exporter.New(session.Catalog(), cfg)
	if err != nil {
		klog.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	ctx := utils.SetUpContext()
	go func() {
		defer wg.Done()
		exp.Run(ctx)
	}()

	http.Handle("/metrics", promhttp.Handler())
	http.Handle("/events", exporter.EventsHandler(session.Catalog()))
	go func() {
		if err := http.ListenAndServe(cfg.Listen, nil); err != nil {
			klog.Fatal(err)
		}
	}()
	wg.Wait()
}
