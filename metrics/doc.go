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

// Package metrics counts route matches and path generations with
// OpenTelemetry.
//
// A [Recorder] implements [routebuilder.Observer]; pass it to the registry
// with [routebuilder.WithObserver]:
//
//	recorder := metrics.MustNew(metrics.WithServiceName("blog"))
//	defer recorder.Shutdown(context.Background())
//
//	r := routebuilder.MustNew(routebuilder.WithObserver(recorder))
//
//	handler, _ := recorder.Handler()
//	http.Handle("/metrics", handler)
//
// Two counters are recorded, both labeled with route and result:
//   - routebuilder.matches: result is "hit" or "miss"; misses use the
//     route label [UnmatchedRoute]
//   - routebuilder.generations: result is "ok" or "error"
//
// # Providers
//
//   - [PrometheusProvider] (default): served by [Recorder.Handler]
//   - [OTLPProvider]: pushed to an OTLP HTTP collector
//   - [StdoutProvider]: printed as JSON, for development
//
// [WithMeterProvider] uses a caller-managed provider instead; the recorder
// then never shuts it down.
//
// This package does not set the global OpenTelemetry meter provider unless
// [WithGlobalMeterProvider] is given.
package metrics
