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
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names.
const (
	MatchCounterName    = "routebuilder.matches"
	GenerateCounterName = "routebuilder.generations"
)

// UnmatchedRoute is the route label of a match that found no route.
const UnmatchedRoute = "_unmatched"

// Result label values.
const (
	ResultHit   = "hit"
	ResultMiss  = "miss"
	ResultOK    = "ok"
	ResultError = "error"
)

func (r *Recorder) initializeMetrics() error {
	r.meter = r.meterProvider.Meter(meterName)

	var err error
	r.matchCount, err = r.meter.Int64Counter(
		MatchCounterName,
		metric.WithDescription("Number of paths matched against the registry"),
	)
	if err != nil {
		r.emitError("Failed to create counter", "name", MatchCounterName, "error", err)
		return fmt.Errorf("failed to create %s counter: %w", MatchCounterName, err)
	}

	r.generateCount, err = r.meter.Int64Counter(
		GenerateCounterName,
		metric.WithDescription("Number of paths generated from named routes"),
	)
	if err != nil {
		r.emitError("Failed to create counter", "name", GenerateCounterName, "error", err)
		return fmt.Errorf("failed to create %s counter: %w", GenerateCounterName, err)
	}

	return nil
}

// ObserveMatch counts one Match call. An empty name counts as [UnmatchedRoute].
func (r *Recorder) ObserveMatch(name string, ok bool) {
	if r.isShuttingDown.Load() {
		return
	}

	result := ResultHit
	if !ok {
		result = ResultMiss
	}
	if name == "" {
		name = UnmatchedRoute
	}

	r.matchCount.Add(context.Background(), 1, metric.WithAttributes(
		r.serviceNameAttr,
		attribute.String("route", name),
		attribute.String("result", result),
	))
}

// ObserveGenerate counts one path generation.
func (r *Recorder) ObserveGenerate(name string, ok bool) {
	if r.isShuttingDown.Load() {
		return
	}

	result := ResultOK
	if !ok {
		result = ResultError
	}

	r.generateCount.Add(context.Background(), 1, metric.WithAttributes(
		r.serviceNameAttr,
		attribute.String("route", name),
		attribute.String("result", result),
	))
}
