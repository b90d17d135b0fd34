package utils

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"k8s.io/klog/v2"
)

// SetUpContext returns a context cancelled on the first SIGINT or SIGTERM. A second
// signal exits the process.
func SetUpContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-ch
		klog.Infof("received %s, shutting down", sig)
		cancel()
		<-ch
		klog.Flush()
		os.Exit(1)
	}()
	return ctx
}
