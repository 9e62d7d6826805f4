// Package metric exposes Prometheus counters for widget activity.
package metric

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/a11yfy/internal/logging"
)

const (
	namespace       = "a11yfy"
	shutdownTimeout = 2 * time.Second
)

type IncrementalCounter interface {
	Increment(val ...string)
}

type Counter struct {
	Name string
	Help string

	vec *prometheus.CounterVec
}

func (c *Counter) Increment(val ...string) {
	c.vec.WithLabelValues(val...).Inc()
}

func NewCounterWithRegistry(reg prometheus.Registerer, name, help string, labels ...string) IncrementalCounter {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)

	reg.MustRegister(counter)

	return &Counter{
		Name: name,
		Help: help,
		vec:  counter,
	}
}

// Set holds the counters updated by the TUI. Each Set owns its registry so
// tests and multiple programs never collide on the default one.
type Set struct {
	Keys          IncrementalCounter // key, handled
	FocusMoves    IncrementalCounter // cause
	Announcements IncrementalCounter // politeness

	registry *prometheus.Registry
}

func NewSet() *Set {
	reg := prometheus.NewRegistry()
	return &Set{
		Keys:          NewCounterWithRegistry(reg, "keys_total", "Key events delivered to the menubar.", "key", "handled"),
		FocusMoves:    NewCounterWithRegistry(reg, "focus_moves_total", "Focus changes inside the menubar.", "cause"),
		Announcements: NewCounterWithRegistry(reg, "announcements_total", "Live region announcements.", "politeness"),
		registry:      reg,
	}
}

// Handler serves the set's registry in the Prometheus text format.
func (s *Set) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen %s: %w", addr, err)
	}
	logging.Trace("metrics.serve", map[string]interface{}{"addr": listener.Addr().String()})

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.Error(err)
		}
		return nil
	})
	return g.Wait()
}
