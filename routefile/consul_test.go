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

//go:build !integration

package routefile

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/consul/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/routebuilder"
)

type fakeKV struct {
	pairs map[string][]byte
	err   error
	ctx   context.Context
}

func (f *fakeKV) Get(key string, q *api.QueryOptions) (*api.KVPair, *api.QueryMeta, error) {
	f.ctx = q.Context()
	if f.err != nil {
		return nil, nil, f.err
	}
	v, ok := f.pairs[key]
	if !ok {
		return nil, &api.QueryMeta{}, nil
	}
	return &api.KVPair{Key: key, Value: v}, &api.QueryMeta{LastIndex: 1}, nil
}

// LoadConsul Tests

func TestLoadConsul(t *testing.T) {
	t.Parallel()

	kv := &fakeKV{pairs: map[string][]byte{
		"blog/routes": []byte(`{"routes": [{"name": "home", "path": "/"}, {"name": "post", "path": "/post/:id"}]}`),
	}}

	ctx := context.WithValue(context.Background(), struct{}{}, "marker")
	defs, err := LoadConsul(ctx, kv, "blog/routes", FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []routebuilder.Definition{
		{Name: "home", Path: "/"},
		{Name: "post", Path: "/post/:id"},
	}, defs)
	assert.Equal(t, ctx, kv.ctx, "query carries the caller's context")
}

func TestLoadConsul_MissingKey(t *testing.T) {
	t.Parallel()

	_, err := LoadConsul(context.Background(), &fakeKV{}, "blog/routes", FormatYAML)
	require.ErrorIs(t, err, ErrKeyNotFound)

	var fileErr *Error
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "consul:blog/routes", fileErr.Source)
	assert.Equal(t, "read", fileErr.Operation)
}

func TestLoadConsul_QueryError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	_, err := LoadConsul(context.Background(), &fakeKV{err: boom}, "blog/routes", FormatYAML)
	require.ErrorIs(t, err, boom)
}

func TestLoadConsul_InvalidDocument(t *testing.T) {
	t.Parallel()

	kv := &fakeKV{pairs: map[string][]byte{"blog/routes": []byte("routes:\n  - name: home\n")}}
	_, err := LoadConsul(context.Background(), kv, "blog/routes", FormatYAML)

	var fileErr *Error
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "validate", fileErr.Operation)
}

func TestNewConsulKV(t *testing.T) {
	t.Setenv("CONSUL_HTTP_ADDR", "127.0.0.1:8500")

	kv, err := NewConsulKV()
	require.NoError(t, err)
	assert.IsType(t, &api.KV{}, kv)
}
