package cmd

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/mintel/healthcheck"                  // Healthchecks framework.
	"github.com/prometheus/client_golang/prometheus" // Prometheus metrics.
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerFlags represents a set of flags for setting up
// a server with healthchecks and Prometheus metrics.
type ServerFlags struct {
	Port            uint16        // Port to serve health checks and Prometheus metrics on.
	LivePath        string        // HTTP path to serve the liveness healthcheck at.
	ReadyPath       string        // HTTP path to serve the readiness healthcheck at.
	MetricsPath     string        // HTTP path to serve Prometheus metrics at.
	ShutdownTimeout time.Duration // Time to wait for open connections when stopping.
}

// NewServerFlags returns a new ServerFlags.
func NewServerFlags(app Flagger, port int) *ServerFlags {
	var f ServerFlags

	app.Flag("serve.port", "Port on which to expose healthchecks and Prometheus metrics.").
		Envar("SERVE_PORT").
		Default(strconv.Itoa(port)).
		Uint16Var(&f.Port)

	app.Flag("serve.metrics", "Path at which to serve Prometheus metrics.").
		Default("/metrics").
		StringVar(&f.MetricsPath)

	app.Flag("serve.live", "Path at which to serve liveness healthcheck.").
		Default("/livez").
		StringVar(&f.LivePath)

	app.Flag("serve.ready", "Path at which to serve readiness healthcheck.").
		Default("/readyz").
		StringVar(&f.ReadyPath)

	app.Flag("serve.shutdown-timeout", "Time to wait for open connections to close on shutdown.").
		Hidden().
		Default("5s").
		DurationVar(&f.ShutdownTimeout)

	return &f
}

// ConfigureMux sets a mux to serve healthchecks and Prometheus metrics
// based on the path flags in f. If mux is nil a new one is created.
func (f *ServerFlags) ConfigureMux(mux *http.ServeMux, h healthcheck.Handler, g prometheus.Gatherer) *http.ServeMux {
	if mux == nil {
		mux = http.NewServeMux()
	}
	mux.Handle(f.MetricsPath, promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	mux.HandleFunc(f.LivePath, h.LiveEndpoint)
	mux.HandleFunc(f.ReadyPath, h.ReadyEndpoint)
	return mux
}

// NewServer returns a new HTTP server configured to listen on the
// port defined by the Port flag.
func (f *ServerFlags) NewServer(h http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", f.Port),
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Shutdown stops s, giving open connections up to the
// ShutdownTimeout to close before forcibly stopping it.
// If ShutdownTimeout <= 0, it waits indefinitely.
func (f *ServerFlags) Shutdown(s *http.Server) error {
	ctx := context.Background()
	if f.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.ShutdownTimeout)
		defer cancel()
	}
	return s.Shutdown(ctx)
}
