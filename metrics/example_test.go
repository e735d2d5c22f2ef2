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

package metrics_test

import (
	"context"
	"net/http"

	"rivaas.dev/routebuilder"
	"rivaas.dev/routebuilder/metrics"
)

// Example demonstrates exposing registry metrics to Prometheus.
func Example() {
	recorder := metrics.MustNew(
		metrics.WithPrometheus(),
		metrics.WithServiceName("blog"),
	)
	defer recorder.Shutdown(context.Background())

	r := routebuilder.MustNew(routebuilder.WithObserver(recorder)).
		MustAdd("home", "/", nil).
		MustAdd("post", "/post/:id", nil)
	r.Match("/post/1")

	handler, err := recorder.Handler()
	if err != nil {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
}
