// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/routebuilder"
)

// Provider represents the available metrics providers.
type Provider string

const (
	// PrometheusProvider exposes metrics through [Recorder.Handler] (default).
	PrometheusProvider Provider = "prometheus"
	// OTLPProvider pushes metrics to an OTLP HTTP collector.
	OTLPProvider Provider = "otlp"
	// StdoutProvider prints metrics as JSON (development/testing).
	StdoutProvider Provider = "stdout"
)

const meterName = "rivaas.dev/routebuilder"

var _ routebuilder.Observer = (*Recorder)(nil)

// Recorder records registry outcomes as OpenTelemetry counters.
// All methods are safe for concurrent use.
type Recorder struct {
	meter              metric.Meter
	meterProvider      metric.MeterProvider
	prometheusHandler  http.Handler
	prometheusRegistry *promclient.Registry
	eventHandler       routebuilder.EventHandler

	matchCount    metric.Int64Counter
	generateCount metric.Int64Counter

	serviceName     string
	serviceNameAttr attribute.KeyValue

	otlpEndpoint   string
	stdoutWriter   io.Writer
	exportInterval time.Duration

	provider            Provider
	providerSetCount    int  // Tracks how many times a provider option was called
	customMeterProvider bool // If true, the caller owns the meter provider
	registerGlobal      bool // If true, sets otel.SetMeterProvider()
	isShuttingDown      atomic.Bool
}

// New creates a [Recorder] with the given options.
// It returns an error if the options conflict or the provider fails to
// initialize.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		serviceName:    "rivaas-service",
		provider:       PrometheusProvider,
		exportInterval: 30 * time.Second,
		eventHandler:   func(routebuilder.Event) {},
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	r.serviceNameAttr = attribute.String("service.name", r.serviceName)

	if err := r.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize metrics: %v", err))
	}
	return r
}

func (r *Recorder) validate() error {
	if r.providerSetCount > 1 {
		return errors.New("conflicting provider options: only one of WithPrometheus, WithOTLP, or WithStdout can be used")
	}
	if r.serviceName == "" {
		return errors.New("service name cannot be empty")
	}
	if r.exportInterval <= 0 {
		return fmt.Errorf("export interval must be positive, got %s", r.exportInterval)
	}
	if r.exportInterval < time.Second {
		r.emitWarning("Export interval is very low, may cause high CPU usage", "interval", r.exportInterval)
	}

	switch r.provider {
	case PrometheusProvider, StdoutProvider:
	case OTLPProvider:
		if r.otlpEndpoint == "" {
			r.emitWarning("OTLP endpoint not specified, will use default", "default", "http://localhost:4318")
			r.otlpEndpoint = "http://localhost:4318"
		}
	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}

	return nil
}

// Handler returns the Prometheus scrape handler.
// It fails unless the recorder uses [PrometheusProvider].
func (r *Recorder) Handler() (http.Handler, error) {
	if r.prometheusHandler == nil {
		return nil, fmt.Errorf("handler only available with Prometheus provider, current provider: %s", r.Provider())
	}
	return r.prometheusHandler, nil
}

// Provider returns the metrics provider in use, or "" for a caller-supplied
// meter provider.
func (r *Recorder) Provider() Provider {
	if r.customMeterProvider {
		return ""
	}
	return r.provider
}

// ServiceName returns the service name attached to every measurement.
func (r *Recorder) ServiceName() string {
	return r.serviceName
}

// ForceFlush exports pending measurements of push providers.
// It is a no-op for caller-supplied meter providers and after [Recorder.Shutdown].
func (r *Recorder) ForceFlush(ctx context.Context) error {
	if r.customMeterProvider || r.isShuttingDown.Load() {
		return nil
	}

	if mp, ok := r.meterProvider.(*sdkmetric.MeterProvider); ok {
		if err := mp.ForceFlush(ctx); err != nil {
			return fmt.Errorf("metrics force flush: %w", err)
		}
	}
	return nil
}

// Shutdown flushes and stops the meter provider created by the recorder.
// Caller-supplied providers are left alone. Shutdown is idempotent.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if !r.isShuttingDown.CompareAndSwap(false, true) {
		return nil
	}

	if r.customMeterProvider {
		r.emitDebug("Skipping shutdown of custom meter provider (managed by user)")
		return nil
	}

	mp, ok := r.meterProvider.(*sdkmetric.MeterProvider)
	if !ok {
		return nil
	}

	if err := mp.ForceFlush(ctx); err != nil {
		r.emitWarning("metrics flush warning", "error", err)
	}
	if err := mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	r.emitDebug("Meter provider shut down successfully")

	return nil
}

func (r *Recorder) emitError(msg string, args ...any) {
	r.eventHandler(routebuilder.Event{Type: routebuilder.EventError, Message: msg, Args: args})
}

func (r *Recorder) emitWarning(msg string, args ...any) {
	r.eventHandler(routebuilder.Event{Type: routebuilder.EventWarning, Message: msg, Args: args})
}

func (r *Recorder) emitDebug(msg string, args ...any) {
	r.eventHandler(routebuilder.Event{Type: routebuilder.EventDebug, Message: msg, Args: args})
}
