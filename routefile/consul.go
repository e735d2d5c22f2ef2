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

package routefile

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/consul/api"

	"rivaas.dev/routebuilder"
)

// ErrKeyNotFound indicates that a Consul key holding a route table does not exist.
var ErrKeyNotFound = errors.New("consul key not found")

// ConsulKV is the subset of the Consul KV API used to read route tables.
// *api.KV satisfies it.
type ConsulKV interface {
	Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error)
}

// NewConsulKV returns the KV client of a Consul agent configured from the
// environment:
//   - CONSUL_HTTP_ADDR: address of the Consul server (e.g. "http://localhost:8500")
//   - CONSUL_HTTP_TOKEN: access token (optional)
func NewConsulKV() (ConsulKV, error) {
	client, err := api.NewClient(api.DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}
	return client.KV(), nil
}

// LoadConsul reads route definitions stored as a document under key in
// Consul's KV store. The document is decoded, validated and merged exactly
// like a route file.
//
// Errors are of type [*Error]; a missing key matches [ErrKeyNotFound].
func LoadConsul(ctx context.Context, kv ConsulKV, key string, format Format) ([]routebuilder.Definition, error) {
	source := "consul:" + key

	pair, _, err := kv.Get(key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, newError(source, "read", fmt.Errorf("failed to get consul key: %w", err))
	}
	if pair == nil {
		return nil, newError(source, "read", ErrKeyNotFound)
	}

	return parse(source, pair.Value, format)
}
