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
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"

	"rivaas.dev/routebuilder"
)

// Option defines functional options for Recorder configuration.
type Option func(*Recorder)

// WithMeterProvider records into a caller-managed [metric.MeterProvider].
// Provider options ([WithPrometheus], [WithOTLP], [WithStdout]) are ignored
// and the recorder never shuts the provider down.
//
// Example:
//
//	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
//	recorder := metrics.MustNew(metrics.WithMeterProvider(mp))
//	defer mp.Shutdown(context.Background())
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(r *Recorder) {
		r.meterProvider = provider
		r.customMeterProvider = true
	}
}

// WithGlobalMeterProvider registers the recorder's meter provider as the
// global OpenTelemetry meter provider via otel.SetMeterProvider().
func WithGlobalMeterProvider() Option {
	return func(r *Recorder) {
		r.registerGlobal = true
	}
}

// WithServiceName sets the service.name attribute of every measurement.
func WithServiceName(name string) Option {
	return func(r *Recorder) {
		r.serviceName = name
	}
}

// WithExportInterval sets the export interval for OTLP and stdout metrics.
func WithExportInterval(interval time.Duration) Option {
	return func(r *Recorder) {
		r.exportInterval = interval
	}
}

// WithEventHandler sets the handler for internal operational events.
func WithEventHandler(handler routebuilder.EventHandler) Option {
	return func(r *Recorder) {
		if handler != nil {
			r.eventHandler = handler
		}
	}
}

// WithLogger logs internal operational events to logger.
// This is a convenience wrapper around [WithEventHandler].
func WithLogger(logger *slog.Logger) Option {
	return WithEventHandler(routebuilder.DefaultEventHandler(logger))
}

// WithPrometheus selects [PrometheusProvider]. Serve the metrics with
// [Recorder.Handler].
//
// Example:
//
//	recorder := metrics.MustNew(metrics.WithPrometheus())
//	handler, _ := recorder.Handler()
//	mux.Handle("/metrics", handler)
func WithPrometheus() Option {
	return func(r *Recorder) {
		r.provider = PrometheusProvider
		r.providerSetCount++
	}
}

// WithOTLP selects [OTLPProvider] with the collector endpoint
// (e.g. "http://localhost:4318"). An http:// endpoint disables TLS.
func WithOTLP(endpoint string) Option {
	return func(r *Recorder) {
		r.provider = OTLPProvider
		r.providerSetCount++
		r.otlpEndpoint = endpoint
	}
}

// WithStdout selects [StdoutProvider], writing to w (os.Stdout if nil).
//
// Example:
//
//	recorder := metrics.MustNew(
//	    metrics.WithStdout(nil),
//	    metrics.WithExportInterval(5*time.Second),
//	)
func WithStdout(w io.Writer) Option {
	return func(r *Recorder) {
		r.provider = StdoutProvider
		r.providerSetCount++
		r.stdoutWriter = w
	}
}
